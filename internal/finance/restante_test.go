package finance

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

func fecha(s string) time.Time {
	t, err := time.Parse(FechaLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func monto(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nullMonto(s string) decimal.NullDecimal {
	return decimal.NullDecimal{Decimal: decimal.RequireFromString(s), Valid: true}
}

func mov(id uint, tipo, fechaStr, montoStr string, clientID *uint) models.Movimiento {
	return models.Movimiento{
		ID:       id,
		Tipo:     tipo,
		Fecha:    fecha(fechaStr),
		Monto:    monto(montoStr),
		ClientID: clientID,
	}
}

func ptr(id uint) *uint { return &id }

// A cliente with no movements and no quoted costs owes exactly zero.
func TestRestante_ZeroRange(t *testing.T) {
	c := models.Cliente{ID: 1, Nombre: "Nuevo"}
	got := Restante(c, nil)
	if !got.IsZero() {
		t.Errorf("Restante = %s, want 0", got)
	}
}

// Concrete scenario: 1000 + 200 - 100 - 300 - 150 = 650.
func TestRestante_Formula(t *testing.T) {
	c := models.Cliente{
		ID:                   7,
		CostoTotalTramite:    nullMonto("1000"),
		CostoTotalDocumentos: nullMonto("200"),
		AbonoInicial:         monto("100"),
	}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-01-05", "300", ptr(7)),
		mov(2, models.TipoAbono, "2024-01-12", "150", ptr(7)),
	}
	got := Restante(c, movs)
	if !got.Equal(monto("650")) {
		t.Errorf("Restante = %s, want 650", got)
	}
}

// Only credit kinds (abono, ingreso) reduce the balance.
func TestRestante_IgnoresNonCreditKinds(t *testing.T) {
	c := models.Cliente{ID: 3, CostoTotalTramite: nullMonto("500")}
	movs := []models.Movimiento{
		mov(1, models.TipoDocumento, "2024-01-01", "100", ptr(3)),
		mov(2, models.TipoEgreso, "2024-01-02", "50", ptr(3)),
		mov(3, models.TipoRetiro, "2024-01-03", "25", ptr(3)),
		mov(4, models.TipoIngreso, "2024-01-04", "200", ptr(3)),
	}
	got := Restante(c, movs)
	if !got.Equal(monto("300")) {
		t.Errorf("Restante = %s, want 300 (only the ingreso should credit)", got)
	}
}

// Movements for other clientes, or tied to none, must not affect the balance.
func TestRestante_OtherClientsUnaffected(t *testing.T) {
	c := models.Cliente{ID: 1, CostoTotalTramite: nullMonto("400")}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-01-01", "100", ptr(2)),
		mov(2, models.TipoAbono, "2024-01-01", "100", nil),
	}
	got := Restante(c, movs)
	if !got.Equal(monto("400")) {
		t.Errorf("Restante = %s, want 400", got)
	}
}

// Balance conservation: a new credit of X decreases the balance by exactly X.
func TestRestante_Conservation(t *testing.T) {
	c := models.Cliente{ID: 5, CostoTotalTramite: nullMonto("900.50")}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-01-01", "100.25", ptr(5)),
	}
	before := Restante(c, movs)

	movs = append(movs, mov(2, models.TipoIngreso, "2024-01-02", "33.33", ptr(5)))
	after := Restante(c, movs)

	if !before.Sub(after).Equal(monto("33.33")) {
		t.Errorf("balance decreased by %s, want 33.33", before.Sub(after))
	}
}

// Removing a credit must be reflected on the next derivation; there is no cache.
func TestRestante_DeleteReflectedImmediately(t *testing.T) {
	c := models.Cliente{ID: 2, CostoTotalTramite: nullMonto("800")}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-01-01", "300", ptr(2)),
		mov(2, models.TipoAbono, "2024-01-02", "200", ptr(2)),
	}
	if got := Restante(c, movs); !got.Equal(monto("300")) {
		t.Fatalf("Restante = %s, want 300", got)
	}
	// delete the second abono
	if got := Restante(c, movs[:1]); !got.Equal(monto("500")) {
		t.Errorf("Restante after delete = %s, want 500", got)
	}
}

func TestRestante_Idempotent(t *testing.T) {
	c := models.Cliente{ID: 9, CostoTotalTramite: nullMonto("123.45"), AbonoInicial: monto("23.45")}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-03-01", "10.00", ptr(9)),
	}
	first := Restante(c, movs)
	second := Restante(c, movs)
	if !first.Equal(second) {
		t.Errorf("Restante not idempotent: %s vs %s", first, second)
	}
}

func TestSaldoRestante_SumsAllClientes(t *testing.T) {
	clientes := []models.Cliente{
		{ID: 1, CostoTotalTramite: nullMonto("100")},
		{ID: 2, CostoTotalTramite: nullMonto("250"), AbonoInicial: monto("50")},
	}
	movs := []models.Movimiento{
		mov(1, models.TipoAbono, "2024-01-01", "40", ptr(1)),
	}
	got := SaldoRestante(clientes, movs)
	if !got.Equal(monto("260")) { // (100-40) + (250-50)
		t.Errorf("SaldoRestante = %s, want 260", got)
	}
}
