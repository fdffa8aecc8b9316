package handler

import (
	"net/http"
	"testing"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/models"

	"github.com/shopspring/decimal"
)

func mustFecha(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := time.Parse(fechaLayout, s)
	if err != nil {
		t.Fatalf("parse fecha %q: %v", s, err)
	}
	return d
}

func TestUpdateCliente_AbonoInicialNegativo(t *testing.T) {
	db := testDB(t)
	r := testEngine()
	h := NewClienteHandler(db)
	r.PUT("/clientes/:id", h.UpdateCliente)

	cliente := models.Cliente{Nombre: "García", AbonoInicial: decimal.RequireFromString("100")}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatalf("seed cliente: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, "/clientes/1", map[string]string{
		"abono_inicial": "-50",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body %s)", w.Code, http.StatusBadRequest, w.Body)
	}

	var got models.Cliente
	if err := db.First(&got, cliente.ID).Error; err != nil {
		t.Fatalf("reload cliente: %v", err)
	}
	if want := decimal.RequireFromString("100"); !got.AbonoInicial.Equal(want) {
		t.Errorf("abono inicial = %s, want %s unchanged", got.AbonoInicial, want)
	}
}

func TestUpdateCliente_CostoNegativo(t *testing.T) {
	db := testDB(t)
	r := testEngine()
	h := NewClienteHandler(db)
	r.PUT("/clientes/:id", h.UpdateCliente)

	cliente := models.Cliente{Nombre: "Flores"}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatalf("seed cliente: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, "/clientes/1", map[string]string{
		"costo_total_tramite": "-1000",
	})
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d (body %s)", w.Code, http.StatusBadRequest, w.Body)
	}
}

func TestUpdateCliente_AbonoInicialCero(t *testing.T) {
	db := testDB(t)
	r := testEngine()
	h := NewClienteHandler(db)
	r.PUT("/clientes/:id", h.UpdateCliente)

	cliente := models.Cliente{Nombre: "Ruiz", AbonoInicial: decimal.RequireFromString("100")}
	if err := db.Create(&cliente).Error; err != nil {
		t.Fatalf("seed cliente: %v", err)
	}

	w := doJSON(t, r, http.MethodPut, "/clientes/1", map[string]string{
		"abono_inicial": "0",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want %d (body %s)", w.Code, http.StatusOK, w.Body)
	}

	var got models.Cliente
	if err := db.First(&got, cliente.ID).Error; err != nil {
		t.Fatalf("reload cliente: %v", err)
	}
	if !got.AbonoInicial.IsZero() {
		t.Errorf("abono inicial = %s, want 0", got.AbonoInicial)
	}
}
