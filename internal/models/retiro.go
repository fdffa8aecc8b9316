package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// RetiroSocio is a partner's draw against profit. Rows are only ever
// created or deleted, never edited in place.
type RetiroSocio struct {
	ID        uint            `gorm:"primaryKey"`
	Socio     string          `gorm:"size:64;index;not null"`
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Fecha     time.Time       `gorm:"index;not null"`
	CreatedAt time.Time
}

func (RetiroSocio) TableName() string { return "retiros_socios" }
