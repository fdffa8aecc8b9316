package util

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// montoMaximo limits a single movement to ten million.
var montoMaximo = decimal.NewFromInt(10000000)

// ParseMonto parses a monetary amount sent as a string and validates it:
// positive, at most two decimals, below the ceiling.
func ParseMonto(s string) (decimal.Decimal, error) {
	d, err := parseMonto(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.LessThanOrEqual(decimal.Zero) {
		return decimal.Decimal{}, fmt.Errorf("el monto debe ser positivo, se recibió %s", d)
	}
	return d, nil
}

// ParseMontoNoNegativo is ParseMonto but admits zero, for fields like
// abono inicial and the quoted costs where zero is a valid state.
func ParseMontoNoNegativo(s string) (decimal.Decimal, error) {
	d, err := parseMonto(s)
	if err != nil {
		return decimal.Decimal{}, err
	}
	if d.IsNegative() {
		return decimal.Decimal{}, fmt.Errorf("el monto no puede ser negativo, se recibió %s", d)
	}
	return d, nil
}

func parseMonto(s string) (decimal.Decimal, error) {
	if s == "" {
		return decimal.Decimal{}, fmt.Errorf("monto vacío")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("monto inválido %q: %w", s, err)
	}
	if d.GreaterThanOrEqual(montoMaximo) {
		return decimal.Decimal{}, fmt.Errorf("monto demasiado grande: %s", d)
	}
	if d.Exponent() < -2 {
		return decimal.Decimal{}, fmt.Errorf("el monto admite máximo dos decimales: %s", d)
	}
	return d, nil
}

// ValidateFecha checks a YYYY-MM-DD date string.
func ValidateFecha(fechaStr string) error {
	if fechaStr == "" {
		return fmt.Errorf("fecha vacía")
	}
	if _, err := time.Parse("2006-01-02", fechaStr); err != nil {
		return fmt.Errorf("formato de fecha inválido: %w", err)
	}
	return nil
}

// ValidateSocio checks that a partner name belongs to the configured set.
func ValidateSocio(socio string, socios []string) error {
	if socio == "" {
		return fmt.Errorf("socio vacío")
	}
	for _, s := range socios {
		if s == socio {
			return nil
		}
	}
	return fmt.Errorf("socio desconocido: %s", socio)
}
