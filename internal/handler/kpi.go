package handler

import (
	"net/http"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/finance"
	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// KPIHandler serves the dashboard aggregates. Both endpoints are pure
// reads: they fetch the live rows and derive everything on the spot, so
// a mutation is visible on the very next call.
type KPIHandler struct {
	DB *gorm.DB
}

func NewKPIHandler(db *gorm.DB) *KPIHandler {
	return &KPIHandler{DB: db}
}

// fetchTablas loads the full finanzas and clientes tables. The range
// filter lives in the finance package; saldo_restante needs every row
// anyway because it is a global snapshot.
func (h *KPIHandler) fetchTablas(c *gin.Context) ([]models.Movimiento, []models.Cliente, bool) {
	var movimientos []models.Movimiento
	if err := h.DB.Find(&movimientos).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return nil, nil, false
	}
	var clientes []models.Cliente
	if err := h.DB.Find(&clientes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar clientes")
		return nil, nil, false
	}
	return movimientos, clientes, true
}

// GetKPIs returns the rollup of the requested range.
func (h *KPIHandler) GetKPIs(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}
	movimientos, clientes, ok := h.fetchTablas(c)
	if !ok {
		return
	}

	res := finance.NuevoResumen(r, movimientos, clientes)

	util.Success(c, util.Response{
		"ingreso_total":       formatMonto(res.IngresoTotal),
		"abonos_totales":      formatMonto(res.AbonosTotales),
		"documentos_totales":  formatMonto(res.DocumentosTotales),
		"egreso_total":        formatMonto(res.EgresoTotal),
		"balance_general":     formatMonto(res.BalanceGeneral),
		"tramites_mensuales":  res.TramitesIniciados,
		"total_efectivo":      formatMonto(res.TotalEfectivo),
		"total_transferencia": formatMonto(res.TotalTransferencia),
		"saldo_restante":      formatMonto(res.SaldoRestante),
	})
}

// GetChart returns the aligned daily series for the dashboard chart.
// Without an explicit range it covers the current month, not all history.
func (h *KPIHandler) GetChart(c *gin.Context) {
	inicio := c.Query("fechaInicio")
	fin := c.Query("fechaFin")
	if inicio == "" && fin == "" {
		now := time.Now()
		primero := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
		inicio = primero.Format(fechaLayout)
		fin = primero.AddDate(0, 1, -1).Format(fechaLayout)
	}
	r, err := finance.NuevoRango(inicio, fin)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	movimientos, clientes, ok := h.fetchTablas(c)
	if !ok {
		return
	}

	s := finance.NuevaSerie(r, movimientos, clientes)

	ingresos := make([]string, len(s.Ingresos))
	egresos := make([]string, len(s.Egresos))
	for i := range s.Labels {
		ingresos[i] = formatMonto(s.Ingresos[i])
		egresos[i] = formatMonto(s.Egresos[i])
	}

	util.Success(c, util.Response{
		"labels":   s.Labels,
		"ingresos": ingresos,
		"egresos":  egresos,
		"tramites": s.Tramites,
	})
}
