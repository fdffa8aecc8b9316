package finance

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

var socios = []string{"Liz", "Alberto"}

func retiro(socio, fechaStr, montoStr string) models.RetiroSocio {
	return models.RetiroSocio{Socio: socio, Fecha: fecha(fechaStr), Monto: monto(montoStr)}
}

// Concrete scenario: 5000 ingreso, 2000 egreso, Liz withdrew 500.
func TestNuevoReparto_Scenario(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-10", "5000", nil),
		mov(2, models.TipoEgreso, "2024-01-12", "2000", nil),
	}
	retiros := []models.RetiroSocio{retiro("Liz", "2024-01-15", "500")}

	rep, err := NuevoReparto(r, socios, movs, retiros)
	if err != nil {
		t.Fatalf("NuevoReparto: %v", err)
	}
	if !rep.UtilidadNeta.Equal(monto("3000")) {
		t.Errorf("UtilidadNeta = %s, want 3000", rep.UtilidadNeta)
	}
	if !rep.Partes[0].Disponible.Equal(monto("1000")) {
		t.Errorf("Disponible[Liz] = %s, want 1000", rep.Partes[0].Disponible)
	}
	if !rep.Partes[1].Disponible.Equal(monto("1500")) {
		t.Errorf("Disponible[Alberto] = %s, want 1500", rep.Partes[1].Disponible)
	}
	if !rep.Partes[0].Retirado.Equal(monto("500")) {
		t.Errorf("Retirado[Liz] = %s, want 500", rep.Partes[0].Retirado)
	}
}

// Abonos, documentos and retiros are excluded: profit is operating only.
func TestNuevoReparto_OperatingOnly(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-10", "100", nil),
		mov(2, models.TipoAbono, "2024-01-11", "999", ptr(1)),
		mov(3, models.TipoDocumento, "2024-01-12", "999", ptr(1)),
		mov(4, models.TipoRetiro, "2024-01-13", "999", nil),
		mov(5, models.TipoEgreso, "2024-01-14", "30", nil),
	}
	rep, err := NuevoReparto(r, socios, movs, nil)
	if err != nil {
		t.Fatalf("NuevoReparto: %v", err)
	}
	if !rep.UtilidadNeta.Equal(monto("70")) {
		t.Errorf("UtilidadNeta = %s, want 70", rep.UtilidadNeta)
	}
}

// A socio can overdraw a flat period: Disponible goes negative, no error.
func TestNuevoReparto_OverdrawOnZeroProfit(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	retiros := []models.RetiroSocio{retiro("Alberto", "2024-01-05", "250")}

	rep, err := NuevoReparto(r, socios, nil, retiros)
	if err != nil {
		t.Fatalf("NuevoReparto: %v", err)
	}
	if !rep.UtilidadNeta.IsZero() {
		t.Errorf("UtilidadNeta = %s, want 0", rep.UtilidadNeta)
	}
	if !rep.Partes[1].Disponible.Equal(monto("-250")) {
		t.Errorf("Disponible[Alberto] = %s, want -250", rep.Partes[1].Disponible)
	}
	if !rep.Partes[0].Disponible.IsZero() {
		t.Errorf("Disponible[Liz] = %s, want 0", rep.Partes[0].Disponible)
	}
}

// Reparto symmetry: Σ disponible == utilidad − Σ retirado, for any socio count.
func TestNuevoReparto_Symmetry(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	movs := []models.Movimiento{
		mov(1, models.TipoIngreso, "2024-01-02", "100.01", nil), // not divisible by 3
	}
	retiros := []models.RetiroSocio{
		retiro("A", "2024-01-03", "10"),
		retiro("B", "2024-01-04", "20.55"),
	}
	tres := []string{"A", "B", "C"}

	rep, err := NuevoReparto(r, tres, movs, retiros)
	if err != nil {
		t.Fatalf("NuevoReparto: %v", err)
	}

	sumDisp := decimal.Zero
	sumRet := decimal.Zero
	for _, p := range rep.Partes {
		sumDisp = sumDisp.Add(p.Disponible)
		sumRet = sumRet.Add(p.Retirado)
	}
	want := rep.UtilidadNeta.Sub(sumRet)
	if !sumDisp.Equal(want) {
		t.Errorf("Σdisponible = %s, want %s", sumDisp, want)
	}
}

// Withdrawals outside the range or by unknown socios are ignored.
func TestNuevoReparto_FiltersRetiros(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	retiros := []models.RetiroSocio{
		retiro("Liz", "2023-12-31", "100"),   // out of range
		retiro("Nadie", "2024-01-10", "100"), // not a configured socio
		retiro("Liz", "2024-01-10", "40"),
	}
	rep, err := NuevoReparto(r, socios, nil, retiros)
	if err != nil {
		t.Fatalf("NuevoReparto: %v", err)
	}
	if !rep.Partes[0].Retirado.Equal(monto("40")) {
		t.Errorf("Retirado[Liz] = %s, want 40", rep.Partes[0].Retirado)
	}
}

func TestNuevoReparto_SinSocios(t *testing.T) {
	r := rango(t, "2024-01-01", "2024-01-31")
	_, err := NuevoReparto(r, nil, nil, nil)
	if !errors.Is(err, ErrSinSocios) {
		t.Errorf("error = %v, want ErrSinSocios", err)
	}
}
