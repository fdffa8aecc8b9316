package finance

import (
	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

// Resumen holds the KPI rollup for a date range. Every monetary field is
// decimal-exact; formatting to two decimals happens only at the response.
type Resumen struct {
	IngresoTotal       decimal.Decimal // ingresos + abonos + documentos
	AbonosTotales      decimal.Decimal
	DocumentosTotales  decimal.Decimal
	EgresoTotal        decimal.Decimal // egresos + retiros
	BalanceGeneral     decimal.Decimal // ingreso_total - egreso_total
	TramitesIniciados  int             // clientes whose trámite started in range
	TotalEfectivo      decimal.Decimal // ingresos cobrados en efectivo
	TotalTransferencia decimal.Decimal // ingresos cobrados por transferencia
	SaldoRestante      decimal.Decimal // global snapshot, NOT range-filtered
}

// NuevoResumen computes the KPI rollup for r. The movimiento and cliente
// slices are the full tables: the range filter is applied here so that
// SaldoRestante can still be derived globally from the same inputs.
func NuevoResumen(r Rango, movimientos []models.Movimiento, clientes []models.Cliente) Resumen {
	var res Resumen
	res.IngresoTotal = decimal.Zero
	res.AbonosTotales = decimal.Zero
	res.DocumentosTotales = decimal.Zero
	res.EgresoTotal = decimal.Zero
	res.TotalEfectivo = decimal.Zero
	res.TotalTransferencia = decimal.Zero

	for _, m := range movimientos {
		if !r.Contiene(m.Fecha) {
			continue
		}
		switch m.Tipo {
		case models.TipoIngreso:
			res.IngresoTotal = res.IngresoTotal.Add(m.Monto)
			switch m.FormaPago {
			case models.PagoEfectivo:
				res.TotalEfectivo = res.TotalEfectivo.Add(m.Monto)
			case models.PagoTransferencia:
				res.TotalTransferencia = res.TotalTransferencia.Add(m.Monto)
			}
		case models.TipoAbono:
			res.IngresoTotal = res.IngresoTotal.Add(m.Monto)
			res.AbonosTotales = res.AbonosTotales.Add(m.Monto)
		case models.TipoDocumento:
			res.IngresoTotal = res.IngresoTotal.Add(m.Monto)
			res.DocumentosTotales = res.DocumentosTotales.Add(m.Monto)
		case models.TipoEgreso, models.TipoRetiro:
			res.EgresoTotal = res.EgresoTotal.Add(m.Monto)
		}
	}
	res.BalanceGeneral = res.IngresoTotal.Sub(res.EgresoTotal)

	for _, c := range clientes {
		if c.FechaInicioTramite != nil && r.Contiene(*c.FechaInicioTramite) {
			res.TramitesIniciados++
		}
	}

	res.SaldoRestante = SaldoRestante(clientes, movimientos)
	return res
}

// Serie is the daily chart form of the rollup. The four slices are
// aligned: index i of each refers to Labels[i], and their common length
// is the number of calendar days in the range, inclusive.
type Serie struct {
	Labels   []string
	Ingresos []decimal.Decimal
	Egresos  []decimal.Decimal
	Tramites []int
}

// NuevaSerie buckets movements and new trámites per calendar day. Days
// with no activity contribute zeros, not absent entries, and the buckets
// follow the same tipo mapping as NuevoResumen so the series sums to the
// rollup totals.
func NuevaSerie(r Rango, movimientos []models.Movimiento, clientes []models.Cliente) Serie {
	labels := r.Dias()
	idx := make(map[string]int, len(labels))
	for i, d := range labels {
		idx[d] = i
	}

	s := Serie{
		Labels:   labels,
		Ingresos: make([]decimal.Decimal, len(labels)),
		Egresos:  make([]decimal.Decimal, len(labels)),
		Tramites: make([]int, len(labels)),
	}
	for i := range labels {
		s.Ingresos[i] = decimal.Zero
		s.Egresos[i] = decimal.Zero
	}

	for _, m := range movimientos {
		i, ok := idx[m.Fecha.Format(FechaLayout)]
		if !ok {
			continue
		}
		switch m.Tipo {
		case models.TipoIngreso, models.TipoAbono, models.TipoDocumento:
			s.Ingresos[i] = s.Ingresos[i].Add(m.Monto)
		case models.TipoEgreso, models.TipoRetiro:
			s.Egresos[i] = s.Egresos[i].Add(m.Monto)
		}
	}

	for _, c := range clientes {
		if c.FechaInicioTramite == nil {
			continue
		}
		if i, ok := idx[c.FechaInicioTramite.Format(FechaLayout)]; ok {
			s.Tramites[i]++
		}
	}
	return s
}
