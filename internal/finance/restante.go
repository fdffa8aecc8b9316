package finance

import (
	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

// EsCredito reports whether a movement type counts toward what a cliente
// has already paid. Only abonos and ingresos are credit; the old habit
// of sometimes counting documentos here produced inconsistent saldos,
// so documento is deliberately excluded.
func EsCredito(tipo string) bool {
	return tipo == models.TipoAbono || tipo == models.TipoIngreso
}

// Restante computes the outstanding balance of a single cliente:
//
//	costo_total_tramite + costo_total_documentos - abono_inicial - Σ créditos del cliente
//
// Unset cost fields contribute zero, never an error. Movements tied to
// other clientes (or to none) are ignored regardless of what the caller
// passes in, so the slice may be the full finanzas table.
func Restante(c models.Cliente, movimientos []models.Movimiento) decimal.Decimal {
	total := decimal.Zero
	if c.CostoTotalTramite.Valid {
		total = total.Add(c.CostoTotalTramite.Decimal)
	}
	if c.CostoTotalDocumentos.Valid {
		total = total.Add(c.CostoTotalDocumentos.Decimal)
	}
	total = total.Sub(c.AbonoInicial)

	for _, m := range movimientos {
		if m.ClientID == nil || *m.ClientID != c.ID {
			continue
		}
		if !EsCredito(m.Tipo) {
			continue
		}
		total = total.Sub(m.Monto)
	}
	return total
}

// SaldoRestante sums Restante over every cliente. It is a point-in-time
// snapshot of all outstanding debt and is never date-filtered.
func SaldoRestante(clientes []models.Cliente, movimientos []models.Movimiento) decimal.Decimal {
	total := decimal.Zero
	for _, c := range clientes {
		total = total.Add(Restante(c, movimientos))
	}
	return total
}
