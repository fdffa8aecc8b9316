package finance

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/Roezin7/SistemaGestion/internal/models"
)

// ErrSinSocios is returned when the reparto is computed with an empty
// socio list; the set comes from configuration and must not be empty.
var ErrSinSocios = errors.New("no hay socios configurados para el reparto")

// ParteSocio is one partner's slice of the reparto.
type ParteSocio struct {
	Socio      string
	Retirado   decimal.Decimal // withdrawals by this socio in range
	Disponible decimal.Decimal // equal share minus Retirado; may be negative
}

// Reparto is the profit split over a range, net of per-socio withdrawals.
type Reparto struct {
	UtilidadNeta decimal.Decimal
	Partes       []ParteSocio // same order as the configured socio list
}

// NuevoReparto splits the net operating profit of the range equally among
// the configured socios, subtracting what each already withdrew in range.
//
// Utilidad counts only ingresos minus egresos: abonos, documentos and
// retiros are cash movements, not operating profit. The equal shares are
// rounded to centavos and the last socio absorbs the rounding residue, so
// the shares always sum exactly to the utilidad. A socio that withdrew
// more than their share in a flat period simply shows a negative
// Disponible; that is an overdraw, not an error.
func NuevoReparto(r Rango, socios []string, movimientos []models.Movimiento, retiros []models.RetiroSocio) (Reparto, error) {
	if len(socios) == 0 {
		return Reparto{}, ErrSinSocios
	}

	ingresos := decimal.Zero
	egresos := decimal.Zero
	for _, m := range movimientos {
		if !r.Contiene(m.Fecha) {
			continue
		}
		switch m.Tipo {
		case models.TipoIngreso:
			ingresos = ingresos.Add(m.Monto)
		case models.TipoEgreso:
			egresos = egresos.Add(m.Monto)
		}
	}
	utilidad := ingresos.Sub(egresos)

	retirado := make(map[string]decimal.Decimal, len(socios))
	for _, s := range socios {
		retirado[s] = decimal.Zero
	}
	for _, ret := range retiros {
		if !r.Contiene(ret.Fecha) {
			continue
		}
		if _, ok := retirado[ret.Socio]; ok {
			retirado[ret.Socio] = retirado[ret.Socio].Add(ret.Monto)
		}
	}

	n := decimal.NewFromInt(int64(len(socios)))
	parte := utilidad.DivRound(n, 2)

	rep := Reparto{UtilidadNeta: utilidad, Partes: make([]ParteSocio, 0, len(socios))}
	asignado := decimal.Zero
	for i, s := range socios {
		share := parte
		if i == len(socios)-1 {
			share = utilidad.Sub(asignado)
		}
		asignado = asignado.Add(share)
		rep.Partes = append(rep.Partes, ParteSocio{
			Socio:      s,
			Retirado:   retirado[s],
			Disponible: share.Sub(retirado[s]),
		})
	}
	return rep, nil
}
