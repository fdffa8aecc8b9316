package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos canónicos de movimiento. El monto se guarda siempre positivo;
// el signo lo implica el tipo.
const (
	TipoIngreso   = "ingreso"
	TipoEgreso    = "egreso"
	TipoAbono     = "abono"     // pago parcial acreditado a un trámite
	TipoDocumento = "documento" // cobro por documentos de un trámite
	TipoRetiro    = "retiro"    // retiro general registrado en finanzas
)

// Formas de pago aceptadas (opcional en un movimiento).
const (
	PagoEfectivo      = "efectivo"
	PagoTransferencia = "transferencia"
)

// Movimiento represents a single financial movement in the finanzas table.
type Movimiento struct {
	ID        uint            `gorm:"primaryKey"`
	Tipo      string          `gorm:"size:16;index;not null"`
	Concepto  string          `gorm:"size:255"`
	Fecha     time.Time       `gorm:"index;not null"` // calendar date, no time-of-day semantics
	Monto     decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	ClientID  *uint           `gorm:"index"` // nil when not tied to a trámite
	FormaPago string          `gorm:"size:16"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE"`
}

func (Movimiento) TableName() string { return "finanzas" }

// TipoValido reports whether tipo belongs to the canonical set.
func TipoValido(tipo string) bool {
	switch tipo {
	case TipoIngreso, TipoEgreso, TipoAbono, TipoDocumento, TipoRetiro:
		return true
	}
	return false
}
