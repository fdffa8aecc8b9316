package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Cliente represents one trámite (case file) of the agency.
//
// Restante is a stored snapshot only: it is always refreshed by re-running
// the full formula (see finance.Restante) after any write that could affect
// it, never patched incrementally. The authoritative value is the derived one.
type Cliente struct {
	ID                   uint                `gorm:"primaryKey"`
	Nombre               string              `gorm:"size:128;not null"`
	Integrantes          int                 `gorm:"default:1"`
	NumeroRecibo         string              `gorm:"size:64"`
	EstadoTramite        string              `gorm:"size:64;index"`
	FechaInicioTramite   *time.Time          `gorm:"index"`
	FechaCitaCAS         *time.Time
	FechaCitaConsular    *time.Time
	CostoTotalTramite    decimal.NullDecimal `gorm:"type:decimal(12,2)"` // unset until quoted
	CostoTotalDocumentos decimal.NullDecimal `gorm:"type:decimal(12,2)"`
	AbonoInicial         decimal.Decimal     `gorm:"type:decimal(12,2);default:0"`
	Restante             decimal.Decimal     `gorm:"type:decimal(12,2);default:0"`
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

func (Cliente) TableName() string { return "clientes" }
