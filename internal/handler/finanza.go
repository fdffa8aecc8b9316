package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/Roezin7/SistemaGestion/internal/config"
	"github.com/Roezin7/SistemaGestion/internal/finance"
	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// FinanzaHandler serves ledger movements, partner withdrawals and the
// reparto de utilidades.
type FinanzaHandler struct {
	DB     *gorm.DB
	Socios []string
}

func NewFinanzaHandler(db *gorm.DB, socios []string) *FinanzaHandler {
	return &FinanzaHandler{DB: db, Socios: socios}
}

// ---------- request/response shapes ----------

type createMovimientoReq struct {
	Tipo      string `json:"tipo" binding:"required,oneof=ingreso egreso abono documento retiro"`
	Concepto  string `json:"concepto" binding:"max=255"`
	Fecha     string `json:"fecha" binding:"required,fecha"`
	Monto     string `json:"monto" binding:"required"`
	ClientID  *uint  `json:"client_id"`
	FormaPago string `json:"forma_pago" binding:"omitempty,oneof=efectivo transferencia"`
}

type movimientoResp struct {
	ID        uint   `json:"id"`
	Tipo      string `json:"tipo"`
	Concepto  string `json:"concepto"`
	Fecha     string `json:"fecha"`
	Monto     string `json:"monto"`
	ClientID  *uint  `json:"client_id"`
	FormaPago string `json:"forma_pago"`
}

func toMovimientoResp(m *models.Movimiento) movimientoResp {
	return movimientoResp{
		ID:        m.ID,
		Tipo:      m.Tipo,
		Concepto:  m.Concepto,
		Fecha:     m.Fecha.Format(fechaLayout),
		Monto:     formatMonto(m.Monto),
		ClientID:  m.ClientID,
		FormaPago: m.FormaPago,
	}
}

// rangoFromQuery builds the date range from fechaInicio/fechaFin query
// params. Invalid ranges are rejected, never swapped or clamped.
func rangoFromQuery(c *gin.Context) (finance.Rango, bool) {
	r, err := finance.NuevoRango(c.Query("fechaInicio"), c.Query("fechaFin"))
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return finance.Rango{}, false
	}
	return r, true
}

// recalcularSiCliente refreshes the restante snapshot when a movement is
// tied to a cliente; movements with no cliente touch no snapshot.
func recalcularSiCliente(tx *gorm.DB, clientID *uint) error {
	if clientID == nil {
		return nil
	}
	return RecalcularRestante(tx, *clientID)
}

// clienteExiste verifies the referenced cliente before tying a movement
// to it; a bad id is a 404, not a failed transaction.
func (h *FinanzaHandler) clienteExiste(c *gin.Context, id uint) bool {
	var count int64
	if err := h.DB.Model(&models.Cliente{}).Where("id = ?", id).Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		return false
	}
	if count == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cliente no encontrado")
		return false
	}
	return true
}

// ---------- movimientos ----------

func (h *FinanzaHandler) CreateMovimiento(c *gin.Context) {
	var req createMovimientoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	monto, err := util.ParseMonto(req.Monto)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	fecha, _ := parseFecha(req.Fecha)

	if req.ClientID != nil && !h.clienteExiste(c, *req.ClientID) {
		return
	}

	mov := models.Movimiento{
		Tipo:      req.Tipo,
		Concepto:  req.Concepto,
		Fecha:     fecha,
		Monto:     monto,
		ClientID:  req.ClientID,
		FormaPago: req.FormaPago,
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&mov).Error; err != nil {
			return err
		}
		return recalcularSiCliente(tx, mov.ClientID)
	})
	if err != nil {
		config.LogError("handler", "CreateMovimiento", "insert finanzas", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al registrar movimiento")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se registró %s id %d", mov.Tipo, mov.ID))

	util.Success(c, util.Response{"movimiento": toMovimientoResp(&mov)})
}

func (h *FinanzaHandler) UpdateMovimiento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var req createMovimientoReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	monto, err := util.ParseMonto(req.Monto)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	fecha, _ := parseFecha(req.Fecha)

	if req.ClientID != nil && !h.clienteExiste(c, *req.ClientID) {
		return
	}

	var mov models.Movimiento
	if err := h.DB.First(&mov, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Movimiento no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimiento")
		}
		return
	}

	// the old cliente also needs its snapshot refreshed if the tie changes
	anterior := mov.ClientID

	mov.Tipo = req.Tipo
	mov.Concepto = req.Concepto
	mov.Fecha = fecha
	mov.Monto = monto
	mov.ClientID = req.ClientID
	mov.FormaPago = req.FormaPago

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&mov).Error; err != nil {
			return err
		}
		if err := recalcularSiCliente(tx, mov.ClientID); err != nil {
			return err
		}
		if anterior != nil && (mov.ClientID == nil || *anterior != *mov.ClientID) {
			return RecalcularRestante(tx, *anterior)
		}
		return nil
	})
	if err != nil {
		config.LogError("handler", "UpdateMovimiento", "update finanzas", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al actualizar movimiento")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se actualizó transacción id %d", mov.ID))

	util.Success(c, util.Response{"movimiento": toMovimientoResp(&mov)})
}

func (h *FinanzaHandler) DeleteMovimiento(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var mov models.Movimiento
	if err := h.DB.First(&mov, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Movimiento no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimiento")
		}
		return
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&models.Movimiento{}, id).Error; err != nil {
			return err
		}
		return recalcularSiCliente(tx, mov.ClientID)
	})
	if err != nil {
		config.LogError("handler", "DeleteMovimiento", "delete finanzas", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al eliminar movimiento")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se eliminó transacción id %d", id))

	util.Success(c, util.Response{"message": "Eliminado correctamente"})
}

// ListReportes lists movements in a date range, oldest first.
func (h *FinanzaHandler) ListReportes(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	var movimientos []models.Movimiento
	if err := h.DB.
		Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Order("fecha ASC, id ASC").
		Find(&movimientos).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return
	}

	items := make([]movimientoResp, 0, len(movimientos))
	for i := range movimientos {
		items = append(items, toMovimientoResp(&movimientos[i]))
	}
	util.Success(c, util.Response{"movimientos": items})
}

// UltimasTransacciones lists the most recent movements in range.
func (h *FinanzaHandler) UltimasTransacciones(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	limit := 10
	if s := c.Query("limit"); s != "" {
		if n, err := strconv.Atoi(s); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	var movimientos []models.Movimiento
	if err := h.DB.
		Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Order("fecha DESC, id DESC").
		Limit(limit).
		Find(&movimientos).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return
	}

	items := make([]movimientoResp, 0, len(movimientos))
	for i := range movimientos {
		items = append(items, toMovimientoResp(&movimientos[i]))
	}
	util.Success(c, util.Response{"movimientos": items})
}

// listPorCliente is the shared shape of the abonos/documentos-per-cliente
// endpoints: the matching movements plus their exact sum.
func (h *FinanzaHandler) listPorCliente(c *gin.Context, tipos []string) ([]movimientoResp, decimal.Decimal, bool) {
	clientID, err := strconv.Atoi(c.Param("clientId"))
	if err != nil || clientID <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID de cliente inválido")
		return nil, decimal.Zero, false
	}

	var movimientos []models.Movimiento
	if err := h.DB.
		Where("client_id = ? AND tipo IN ?", clientID, tipos).
		Order("fecha ASC, id ASC").
		Find(&movimientos).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return nil, decimal.Zero, false
	}

	total := decimal.Zero
	items := make([]movimientoResp, 0, len(movimientos))
	for i := range movimientos {
		total = total.Add(movimientos[i].Monto)
		items = append(items, toMovimientoResp(&movimientos[i]))
	}
	return items, total, true
}

// AbonosPorCliente returns a cliente's credit history (abonos e ingresos).
func (h *FinanzaHandler) AbonosPorCliente(c *gin.Context) {
	items, total, ok := h.listPorCliente(c, []string{models.TipoAbono, models.TipoIngreso})
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"total_abono": formatMonto(total),
		"abonos":      items,
	})
}

// DocumentosPorCliente returns a cliente's document-fee history.
func (h *FinanzaHandler) DocumentosPorCliente(c *gin.Context) {
	items, total, ok := h.listPorCliente(c, []string{models.TipoDocumento})
	if !ok {
		return
	}
	util.Success(c, util.Response{
		"total_documento": formatMonto(total),
		"documentos":      items,
	})
}

// ---------- retiros de socios ----------

type createRetiroReq struct {
	Socio string `json:"socio" binding:"required,max=64"`
	Monto string `json:"monto" binding:"required"`
	Fecha string `json:"fecha" binding:"required,fecha"`
}

type retiroResp struct {
	ID    uint   `json:"id"`
	Socio string `json:"socio"`
	Monto string `json:"monto"`
	Fecha string `json:"fecha"`
}

func (h *FinanzaHandler) CreateRetiro(c *gin.Context) {
	var req createRetiroReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	if err := util.ValidateSocio(req.Socio, h.Socios); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	monto, err := util.ParseMonto(req.Monto)
	if err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
		return
	}
	fecha, _ := parseFecha(req.Fecha)

	ret := models.RetiroSocio{Socio: req.Socio, Monto: monto, Fecha: fecha}
	if err := h.DB.Create(&ret).Error; err != nil {
		config.LogError("handler", "CreateRetiro", "insert retiros_socios", err)
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al registrar retiro")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se registró retiro de %s id %d", ret.Socio, ret.ID))

	util.Success(c, util.Response{
		"retiro": retiroResp{
			ID:    ret.ID,
			Socio: ret.Socio,
			Monto: formatMonto(ret.Monto),
			Fecha: ret.Fecha.Format(fechaLayout),
		},
	})
}

func (h *FinanzaHandler) ListRetiros(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	var retiros []models.RetiroSocio
	if err := h.DB.
		Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Order("fecha DESC, id DESC").
		Find(&retiros).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar retiros")
		return
	}

	items := make([]retiroResp, 0, len(retiros))
	for _, ret := range retiros {
		items = append(items, retiroResp{
			ID:    ret.ID,
			Socio: ret.Socio,
			Monto: formatMonto(ret.Monto),
			Fecha: ret.Fecha.Format(fechaLayout),
		})
	}
	util.Success(c, util.Response{"retiros": items})
}

func (h *FinanzaHandler) DeleteRetiro(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	res := h.DB.Delete(&models.RetiroSocio{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al eliminar retiro")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Retiro no encontrado")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se eliminó retiro id %d", id))

	util.Success(c, util.Response{"message": "Eliminado correctamente"})
}

// GetReparto computes the profit split of the range. Nothing is cached:
// every call derives the reparto from the live rows.
func (h *FinanzaHandler) GetReparto(c *gin.Context) {
	r, ok := rangoFromQuery(c)
	if !ok {
		return
	}

	var movimientos []models.Movimiento
	if err := h.DB.
		Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Find(&movimientos).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar movimientos")
		return
	}
	var retiros []models.RetiroSocio
	if err := h.DB.
		Where("fecha >= ? AND fecha < ?", r.Inicio, r.Fin.AddDate(0, 0, 1)).
		Find(&retiros).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar retiros")
		return
	}

	rep, err := finance.NuevoReparto(r, h.Socios, movimientos, retiros)
	if err != nil {
		if errors.Is(err, finance.ErrSinSocios) {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, err.Error())
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al calcular reparto")
		}
		return
	}

	partes := make([]gin.H, 0, len(rep.Partes))
	for _, p := range rep.Partes {
		partes = append(partes, gin.H{
			"socio":      p.Socio,
			"retirado":   formatMonto(p.Retirado),
			"disponible": formatMonto(p.Disponible),
		})
	}
	util.Success(c, util.Response{
		"utilidad_neta": formatMonto(rep.UtilidadNeta),
		"partes":        partes,
	})
}
