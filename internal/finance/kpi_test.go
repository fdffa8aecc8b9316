package finance

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

func rango(t *testing.T, inicio, fin string) Rango {
	t.Helper()
	r, err := NuevoRango(inicio, fin)
	if err != nil {
		t.Fatalf("NuevoRango(%s, %s): %v", inicio, fin, err)
	}
	return r
}

func clienteIniciado(id uint, fechaStr string) models.Cliente {
	f := fecha(fechaStr)
	return models.Cliente{ID: id, Nombre: "c", FechaInicioTramite: &f}
}

func TestNuevoResumen_Buckets(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-02", "5000", nil),
		mov(2, models.TipoAbono, "2024-01-03", "300", ptr(1)),
		mov(3, models.TipoDocumento, "2024-01-04", "150", ptr(1)),
		mov(4, models.TipoEgreso, "2024-01-05", "2000", nil),
		mov(5, models.TipoRetiro, "2024-01-06", "500", nil),
		// fuera de rango: no debe contar
		mov(6, models.TipoIngreso, "2024-02-01", "9999", nil),
	}
	clientes := []models.Cliente{
		clienteIniciado(1, "2024-01-10"),
		clienteIniciado(2, "2023-12-31"),
	}

	res := NuevoResumen(r, movs, clientes)

	if !res.IngresoTotal.Equal(monto("5450")) {
		t.Errorf("IngresoTotal = %s, want 5450", res.IngresoTotal)
	}
	if !res.AbonosTotales.Equal(monto("300")) {
		t.Errorf("AbonosTotales = %s, want 300", res.AbonosTotales)
	}
	if !res.DocumentosTotales.Equal(monto("150")) {
		t.Errorf("DocumentosTotales = %s, want 150", res.DocumentosTotales)
	}
	if !res.EgresoTotal.Equal(monto("2500")) {
		t.Errorf("EgresoTotal = %s, want 2500", res.EgresoTotal)
	}
	if !res.BalanceGeneral.Equal(monto("2950")) {
		t.Errorf("BalanceGeneral = %s, want 2950", res.BalanceGeneral)
	}
	if res.TramitesIniciados != 1 {
		t.Errorf("TramitesIniciados = %d, want 1", res.TramitesIniciados)
	}
}

func TestNuevoResumen_FormaPagoSplit(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		{ID: 1, Tipo: models.TipoIngreso, Fecha: fecha("2024-01-02"), Monto: monto("100"), FormaPago: models.PagoEfectivo},
		{ID: 2, Tipo: models.TipoIngreso, Fecha: fecha("2024-01-03"), Monto: monto("200"), FormaPago: models.PagoTransferencia},
		{ID: 3, Tipo: models.TipoIngreso, Fecha: fecha("2024-01-04"), Monto: monto("50")}, // sin forma de pago
		{ID: 4, Tipo: models.TipoAbono, Fecha: fecha("2024-01-05"), Monto: monto("70"), FormaPago: models.PagoEfectivo},
	}

	res := NuevoResumen(r, movs, nil)
	if !res.TotalEfectivo.Equal(monto("100")) {
		t.Errorf("TotalEfectivo = %s, want 100 (solo ingresos)", res.TotalEfectivo)
	}
	if !res.TotalTransferencia.Equal(monto("200")) {
		t.Errorf("TotalTransferencia = %s, want 200", res.TotalTransferencia)
	}
}

// SaldoRestante is a global snapshot: the KPI range must not affect it.
func TestNuevoResumen_SaldoRestanteGlobal(t *testing.T) {
	clientes := []models.Cliente{
		{ID: 1, CostoTotalTramite: nullMonto("1000")},
	}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2020-06-15", "400", ptr(1)), // far outside both ranges
	}

	narrow := NuevoResumen(rango(t, "2024-01-01", "2024-01-02"), movs, clientes)
	wide := NuevoResumen(rango(t, "2019-01-01", "2024-12-31"), movs, clientes)

	if !narrow.SaldoRestante.Equal(monto("600")) {
		t.Errorf("SaldoRestante (narrow) = %s, want 600", narrow.SaldoRestante)
	}
	if !narrow.SaldoRestante.Equal(wide.SaldoRestante) {
		t.Errorf("SaldoRestante depends on range: %s vs %s", narrow.SaldoRestante, wide.SaldoRestante)
	}
}

// KPI additivity: totals over [a,c] equal [a,b] + [b+1,c].
func TestNuevoResumen_Additivity(t *testing.T) {
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-01", "10.10", nil),
		mov(2, models.TipoIngreso, "2024-01-10", "20.20", nil),
		mov(3, models.TipoAbono, "2024-01-15", "5.05", ptr(1)),
		mov(4, models.TipoIngreso, "2024-01-16", "7.77", nil),
		mov(5, models.TipoDocumento, "2024-01-31", "2.23", ptr(1)),
	}

	whole := NuevoResumen(rango(t, "2024-01-01", "2024-01-31"), movs, nil)
	left := NuevoResumen(rango(t, "2024-01-01", "2024-01-15"), movs, nil)
	right := NuevoResumen(rango(t, "2024-01-16", "2024-01-31"), movs, nil)

	sum := left.IngresoTotal.Add(right.IngresoTotal)
	if !whole.IngresoTotal.Equal(sum) {
		t.Errorf("IngresoTotal[a,c] = %s, partitions sum to %s", whole.IngresoTotal, sum)
	}
}

func TestNuevoResumen_Idempotent(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-02", "123.45", nil),
		mov(2, models.TipoEgreso, "2024-01-03", "67.89", nil),
	}
	a := NuevoResumen(r, movs, nil)
	b := NuevoResumen(r, movs, nil)
	if !a.BalanceGeneral.Equal(b.BalanceGeneral) || a.TramitesIniciados != b.TramitesIniciados {
		t.Errorf("rollup not idempotent: %+v vs %+v", a, b)
	}
}

func TestNuevaSerie_Alignment(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-10")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-03", "100", nil),
		mov(2, models.TipoEgreso, "2024-01-03", "40", nil),
		mov(3, models.TipoAbono, "2024-01-07", "60", ptr(1)),
	}
	clientes := []models.Cliente{clienteIniciado(1, "2024-01-05")}

	s := NuevaSerie(r, movs, clientes)

	if len(s.Labels) != 10 {
		t.Fatalf("Labels len = %d, want 10", len(s.Labels))
	}
	if len(s.Ingresos) != 10 || len(s.Egresos) != 10 || len(s.Tramites) != 10 {
		t.Fatalf("series not aligned: %d/%d/%d/%d",
			len(s.Labels), len(s.Ingresos), len(s.Egresos), len(s.Tramites))
	}
	if s.Labels[0] != "2024-01-01" || s.Labels[9] != "2024-01-10" {
		t.Errorf("label bounds = %s..%s", s.Labels[0], s.Labels[9])
	}
	if !s.Ingresos[2].Equal(monto("100")) {
		t.Errorf("Ingresos[2024-01-03] = %s, want 100", s.Ingresos[2])
	}
	if !s.Egresos[2].Equal(monto("40")) {
		t.Errorf("Egresos[2024-01-03] = %s, want 40", s.Egresos[2])
	}
	if s.Tramites[4] != 1 {
		t.Errorf("Tramites[2024-01-05] = %d, want 1", s.Tramites[4])
	}
	// a gap day stays zero, not absent
	if !s.Ingresos[1].Equal(decimal.Zero) || s.Tramites[1] != 0 {
		t.Errorf("gap day not zero: ingresos=%s tramites=%d", s.Ingresos[1], s.Tramites[1])
	}
}

// The daily series must sum to the rollup totals over the same range.
func TestNuevaSerie_SumsMatchResumen(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-02", "5000", nil),
		mov(2, models.TipoAbono, "2024-01-03", "300", ptr(1)),
		mov(3, models.TipoDocumento, "2024-01-04", "150", ptr(1)),
		mov(4, models.TipoEgreso, "2024-01-05", "2000", nil),
		mov(5, models.TipoRetiro, "2024-01-06", "500", nil),
	}
	res := NuevoResumen(r, movs, nil)
	s := NuevaSerie(r, movs, nil)

	sumIng := decimal.Zero
	sumEgr := decimal.Zero
	for i := range s.Labels {
		sumIng = sumIng.Add(s.Ingresos[i])
		sumEgr = sumEgr.Add(s.Egresos[i])
	}
	if !sumIng.Equal(res.IngresoTotal) {
		t.Errorf("serie ingresos sum = %s, resumen = %s", sumIng, res.IngresoTotal)
	}
	if !sumEgr.Equal(res.EgresoTotal) {
		t.Errorf("serie egresos sum = %s, resumen = %s", sumEgr, res.EgresoTotal)
	}
}
