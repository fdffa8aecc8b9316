// Package finance implements the aggregation engine of the system:
// saldo restante per cliente, KPI rollups over a date range, the daily
// chart series and the reparto de utilidades between socios.
//
// Everything here is a pure derivation over rows already fetched from
// the store. Nothing is cached: two calls with the same inputs return
// the same outputs, and any stored snapshot (clientes.restante) is
// refreshed by re-running these formulas, never patched incrementally.
package finance

import (
	"errors"
	"fmt"
	"time"
)

// FechaLayout is the calendar-date format used across the API (YYYY-MM-DD).
const FechaLayout = "2006-01-02"

// ErrRangoInvalido is returned when a date range is malformed or its end
// precedes its start. Ranges are rejected, never swapped or clamped.
var ErrRangoInvalido = errors.New("rango de fechas inválido")

// Rango is a closed calendar-date range [Inicio, Fin], both inclusive.
type Rango struct {
	Inicio time.Time
	Fin    time.Time
}

// NuevoRango parses a range from its query-string form. An empty inicio
// defaults to 1970-01-01 and an empty fin defaults to today, matching
// the "unbounded" ranges the dashboard sends.
func NuevoRango(inicio, fin string) (Rango, error) {
	var r Rango

	if inicio == "" {
		r.Inicio = time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse(FechaLayout, inicio)
		if err != nil {
			return Rango{}, fmt.Errorf("%w: fecha inicio %q", ErrRangoInvalido, inicio)
		}
		r.Inicio = t
	}

	if fin == "" {
		now := time.Now()
		r.Fin = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	} else {
		t, err := time.Parse(FechaLayout, fin)
		if err != nil {
			return Rango{}, fmt.Errorf("%w: fecha fin %q", ErrRangoInvalido, fin)
		}
		r.Fin = t
	}

	if r.Fin.Before(r.Inicio) {
		return Rango{}, fmt.Errorf("%w: fin %s anterior a inicio %s",
			ErrRangoInvalido, r.Fin.Format(FechaLayout), r.Inicio.Format(FechaLayout))
	}
	return r, nil
}

// Contiene reports whether the calendar date of t falls inside the range.
func (r Rango) Contiene(t time.Time) bool {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return !d.Before(r.Inicio) && !d.After(r.Fin)
}

// Dias returns one YYYY-MM-DD label per calendar day in the range,
// inclusive on both ends. Days without activity are still present.
func (r Rango) Dias() []string {
	var dias []string
	for d := r.Inicio; !d.After(r.Fin); d = d.AddDate(0, 0, 1) {
		dias = append(dias, d.Format(FechaLayout))
	}
	return dias
}
