package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/finance"
	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ClienteHandler serves the trámite (case file) endpoints.
type ClienteHandler struct {
	DB *gorm.DB
}

func NewClienteHandler(db *gorm.DB) *ClienteHandler {
	return &ClienteHandler{DB: db}
}

// RecalcularRestante refreshes the stored restante snapshot of a cliente
// by re-running the full formula over the live rows. The stored column is
// a cache of the derived value, never a second source of truth, so it is
// always recomputed from scratch and never patched incrementally.
func RecalcularRestante(tx *gorm.DB, clienteID uint) error {
	var cliente models.Cliente
	if err := tx.First(&cliente, clienteID).Error; err != nil {
		return fmt.Errorf("consultar cliente %d: %w", clienteID, err)
	}

	var movimientos []models.Movimiento
	if err := tx.Where("client_id = ?", clienteID).Find(&movimientos).Error; err != nil {
		return fmt.Errorf("consultar movimientos del cliente %d: %w", clienteID, err)
	}

	restante := finance.Restante(cliente, movimientos)
	if err := tx.Model(&models.Cliente{}).
		Where("id = ?", clienteID).
		Update("restante", restante).Error; err != nil {
		return fmt.Errorf("actualizar restante del cliente %d: %w", clienteID, err)
	}
	return nil
}

// ---------- request/response shapes ----------

type createClienteReq struct {
	Nombre             string `json:"nombre" binding:"required,max=128"`
	Integrantes        int    `json:"integrantes" binding:"omitempty,min=1"`
	NumeroRecibo       string `json:"numero_recibo" binding:"max=64"`
	EstadoTramite      string `json:"estado_tramite" binding:"max=64"`
	FechaInicioTramite string `json:"fecha_inicio_tramite" binding:"omitempty,fecha"`
}

type updateClienteReq struct {
	Nombre               *string `json:"nombre" binding:"omitempty,max=128"`
	Integrantes          *int    `json:"integrantes" binding:"omitempty,min=1"`
	NumeroRecibo         *string `json:"numero_recibo" binding:"omitempty,max=64"`
	EstadoTramite        *string `json:"estado_tramite" binding:"omitempty,max=64"`
	FechaInicioTramite   *string `json:"fecha_inicio_tramite"`
	FechaCitaCAS         *string `json:"fecha_cita_cas"`
	FechaCitaConsular    *string `json:"fecha_cita_consular"`
	CostoTotalTramite    *string `json:"costo_total_tramite"`
	CostoTotalDocumentos *string `json:"costo_total_documentos"`
	AbonoInicial         *string `json:"abono_inicial"`
}

type clienteResp struct {
	ID                   uint    `json:"id"`
	Nombre               string  `json:"nombre"`
	Integrantes          int     `json:"integrantes"`
	NumeroRecibo         string  `json:"numero_recibo"`
	EstadoTramite        string  `json:"estado_tramite"`
	FechaInicioTramite   *string `json:"fecha_inicio_tramite"`
	FechaCitaCAS         *string `json:"fecha_cita_cas"`
	FechaCitaConsular    *string `json:"fecha_cita_consular"`
	CostoTotalTramite    *string `json:"costo_total_tramite"`
	CostoTotalDocumentos *string `json:"costo_total_documentos"`
	AbonoInicial         string  `json:"abono_inicial"`
	Restante             string  `json:"restante"`
}

func fechaPtr(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(fechaLayout)
	return &s
}

func montoPtr(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := formatMonto(d.Decimal)
	return &s
}

func toClienteResp(c *models.Cliente) clienteResp {
	return clienteResp{
		ID:                   c.ID,
		Nombre:               c.Nombre,
		Integrantes:          c.Integrantes,
		NumeroRecibo:         c.NumeroRecibo,
		EstadoTramite:        c.EstadoTramite,
		FechaInicioTramite:   fechaPtr(c.FechaInicioTramite),
		FechaCitaCAS:         fechaPtr(c.FechaCitaCAS),
		FechaCitaConsular:    fechaPtr(c.FechaCitaConsular),
		CostoTotalTramite:    montoPtr(c.CostoTotalTramite),
		CostoTotalDocumentos: montoPtr(c.CostoTotalDocumentos),
		AbonoInicial:         formatMonto(c.AbonoInicial),
		Restante:             formatMonto(c.Restante),
	}
}

// ---------- handlers ----------

func (h *ClienteHandler) ListClientes(c *gin.Context) {
	var clientes []models.Cliente
	if err := h.DB.Order("id ASC").Find(&clientes).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar clientes")
		return
	}

	items := make([]clienteResp, 0, len(clientes))
	for i := range clientes {
		items = append(items, toClienteResp(&clientes[i]))
	}
	util.Success(c, util.Response{"clientes": items})
}

func (h *ClienteHandler) GetCliente(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var cliente models.Cliente
	if err := h.DB.First(&cliente, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cliente no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		}
		return
	}
	util.Success(c, util.Response{"cliente": toClienteResp(&cliente)})
}

func (h *ClienteHandler) CreateCliente(c *gin.Context) {
	var req createClienteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	cliente := models.Cliente{
		Nombre:        strings.TrimSpace(req.Nombre),
		Integrantes:   req.Integrantes,
		NumeroRecibo:  req.NumeroRecibo,
		EstadoTramite: req.EstadoTramite,
		AbonoInicial:  decimal.Zero,
	}
	if cliente.Integrantes == 0 {
		cliente.Integrantes = 1
	}
	if req.FechaInicioTramite != "" {
		if t, ok := parseFecha(req.FechaInicioTramite); ok {
			cliente.FechaInicioTramite = &t
		}
	}

	err := h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&cliente).Error; err != nil {
			return err
		}
		return RecalcularRestante(tx, cliente.ID)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al crear cliente")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se agregó cliente id %d", cliente.ID))

	// reread: the transaction refreshed the restante snapshot
	if err := h.DB.First(&cliente, cliente.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		return
	}
	util.Success(c, util.Response{"cliente": toClienteResp(&cliente)})
}

// parseFechaField turns an optional request date into a *time.Time; the
// empty string clears the field, matching the old frontend behavior.
func parseFechaField(s *string) (*time.Time, bool, error) {
	if s == nil {
		return nil, false, nil
	}
	if *s == "" {
		return nil, true, nil
	}
	t, ok := parseFecha(*s)
	if !ok {
		return nil, false, fmt.Errorf("fecha inválida: %s", *s)
	}
	return &t, true, nil
}

// parseMontoField does the same for optional nullable amounts.
func parseMontoField(s *string) (decimal.NullDecimal, bool, error) {
	if s == nil {
		return decimal.NullDecimal{}, false, nil
	}
	if *s == "" {
		return decimal.NullDecimal{}, true, nil
	}
	d, err := util.ParseMontoNoNegativo(*s)
	if err != nil {
		return decimal.NullDecimal{}, false, err
	}
	return decimal.NullDecimal{Decimal: d, Valid: true}, true, nil
}

func (h *ClienteHandler) UpdateCliente(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var req updateClienteReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	var cliente models.Cliente
	if err := h.DB.First(&cliente, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cliente no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		}
		return
	}

	if req.Nombre != nil {
		cliente.Nombre = strings.TrimSpace(*req.Nombre)
	}
	if req.Integrantes != nil {
		cliente.Integrantes = *req.Integrantes
	}
	if req.NumeroRecibo != nil {
		cliente.NumeroRecibo = *req.NumeroRecibo
	}
	if req.EstadoTramite != nil {
		cliente.EstadoTramite = *req.EstadoTramite
	}

	for _, f := range []struct {
		src *string
		dst **time.Time
	}{
		{req.FechaInicioTramite, &cliente.FechaInicioTramite},
		{req.FechaCitaCAS, &cliente.FechaCitaCAS},
		{req.FechaCitaConsular, &cliente.FechaCitaConsular},
	} {
		t, set, err := parseFechaField(f.src)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		if set {
			*f.dst = t
		}
	}

	for _, f := range []struct {
		src *string
		dst *decimal.NullDecimal
	}{
		{req.CostoTotalTramite, &cliente.CostoTotalTramite},
		{req.CostoTotalDocumentos, &cliente.CostoTotalDocumentos},
	} {
		d, set, err := parseMontoField(f.src)
		if err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
			return
		}
		if set {
			*f.dst = d
		}
	}

	if req.AbonoInicial != nil {
		if *req.AbonoInicial == "" {
			cliente.AbonoInicial = decimal.Zero
		} else {
			d, err := util.ParseMontoNoNegativo(*req.AbonoInicial)
			if err != nil {
				util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, err.Error())
				return
			}
			cliente.AbonoInicial = d
		}
	}

	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&cliente).Error; err != nil {
			return err
		}
		return RecalcularRestante(tx, cliente.ID)
	})
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al actualizar cliente")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se actualizó cliente id %d", cliente.ID))

	if err := h.DB.First(&cliente, cliente.ID).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar cliente")
		return
	}
	util.Success(c, util.Response{"cliente": toClienteResp(&cliente)})
}

func (h *ClienteHandler) DeleteCliente(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	// deleting a cliente drags its movimientos and documentos along
	err = h.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("client_id = ?", id).Delete(&models.Movimiento{}).Error; err != nil {
			return err
		}
		if err := tx.Where("cliente_id = ?", id).Delete(&models.DocumentoCliente{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&models.Cliente{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Cliente no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al eliminar cliente")
		}
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se eliminó cliente id %d", id))

	util.Success(c, util.Response{"message": "Cliente eliminado correctamente"})
}
