package models

import "time"

// HistorialCambio records every mutating operation for auditing.
// UsuarioID is nil when the action was performed by the system itself.
type HistorialCambio struct {
	ID          uint   `gorm:"primaryKey"`
	UsuarioID   *uint  `gorm:"index"`
	Descripcion string `gorm:"size:512;not null"`
	Fecha       time.Time `gorm:"index;autoCreateTime"`

	Usuario *Usuario `gorm:"foreignKey:UsuarioID;constraint:OnDelete:SET NULL"`
}

func (HistorialCambio) TableName() string { return "historial_cambios" }
