package finance

import (
	"errors"
	"testing"
	"time"
)

func TestNuevoRango_Valid(t *testing.T) {
	r, err := NuevoRango("2024-01-01", "2024-01-31")
	if err != nil {
		t.Fatalf("NuevoRango() error = %v, want nil", err)
	}
	if got := r.Inicio.Format(FechaLayout); got != "2024-01-01" {
		t.Errorf("Inicio = %s, want 2024-01-01", got)
	}
	if got := r.Fin.Format(FechaLayout); got != "2024-01-31" {
		t.Errorf("Fin = %s, want 2024-01-31", got)
	}
}

func TestNuevoRango_Defaults(t *testing.T) {
	r, err := NuevoRango("", "")
	if err != nil {
		t.Fatalf("NuevoRango(\"\", \"\") error = %v, want nil", err)
	}
	if got := r.Inicio.Format(FechaLayout); got != "1970-01-01" {
		t.Errorf("default Inicio = %s, want 1970-01-01", got)
	}
	today := time.Now().Format(FechaLayout)
	if got := r.Fin.Format(FechaLayout); got != today {
		t.Errorf("default Fin = %s, want %s", got, today)
	}
}

func TestNuevoRango_FinBeforeInicio(t *testing.T) {
	_, err := NuevoRango("2024-02-01", "2024-01-01")
	if !errors.Is(err, ErrRangoInvalido) {
		t.Errorf("NuevoRango() error = %v, want ErrRangoInvalido", err)
	}
}

func TestNuevoRango_Unparseable(t *testing.T) {
	testCases := [][2]string{
		{"01/02/2024", ""},
		{"", "2024-13-40"},
		{"2024-1-1", ""},
	}
	for _, tc := range testCases {
		_, err := NuevoRango(tc[0], tc[1])
		if !errors.Is(err, ErrRangoInvalido) {
			t.Errorf("NuevoRango(%q, %q) error = %v, want ErrRangoInvalido", tc[0], tc[1], err)
		}
	}
}

func TestRango_Dias(t *testing.T) {
	r, _ := NuevoRango("2024-02-27", "2024-03-02")
	dias := r.Dias()
	want := []string{"2024-02-27", "2024-02-28", "2024-02-29", "2024-03-01", "2024-03-02"}
	if len(dias) != len(want) {
		t.Fatalf("Dias() len = %d, want %d", len(dias), len(want))
	}
	for i := range want {
		if dias[i] != want[i] {
			t.Errorf("Dias()[%d] = %s, want %s", i, dias[i], want[i])
		}
	}
}

func TestRango_Contiene(t *testing.T) {
	r, _ := NuevoRango("2024-01-10", "2024-01-20")
	testCases := []struct {
		fecha string
		want  bool
	}{
		{"2024-01-10", true}, // inclusive start
		{"2024-01-20", true}, // inclusive end
		{"2024-01-15", true},
		{"2024-01-09", false},
		{"2024-01-21", false},
	}
	for _, tc := range testCases {
		d, _ := time.Parse(FechaLayout, tc.fecha)
		if got := r.Contiene(d); got != tc.want {
			t.Errorf("Contiene(%s) = %v, want %v", tc.fecha, got, tc.want)
		}
	}
}
