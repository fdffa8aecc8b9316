package models

import "time"

// DocumentoCliente is one uploaded file attached to a trámite.
type DocumentoCliente struct {
	ID            uint   `gorm:"primaryKey"`
	ClienteID     uint   `gorm:"index;not null"`
	RutaArchivo   string `gorm:"size:255;not null"` // path on disk (uuid-named)
	NombreArchivo string `gorm:"size:255;not null"` // display name
	CreatedAt     time.Time

	Cliente Cliente `gorm:"constraint:OnDelete:CASCADE"`
}

func (DocumentoCliente) TableName() string { return "documentos_cliente" }
