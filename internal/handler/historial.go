package handler

import (
	"net/http"
	"strconv"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// HistorialHandler serves the audit trail of mutations.
type HistorialHandler struct {
	DB *gorm.DB
}

func NewHistorialHandler(db *gorm.DB) *HistorialHandler {
	return &HistorialHandler{DB: db}
}

type historialResp struct {
	ID          uint   `json:"id"`
	UsuarioID   *uint  `json:"usuario_id"`
	Username    string `json:"username"`
	Descripcion string `json:"descripcion"`
	Fecha       string `json:"fecha"`
}

// List returns the most recent audit entries, newest first, with the
// acting user's name resolved when the account still exists.
func (h *HistorialHandler) List(c *gin.Context) {
	limit := 100
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 || n > 500 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Límite inválido")
			return
		}
		limit = n
	}

	var entradas []models.HistorialCambio
	if err := h.DB.Order("fecha DESC").Limit(limit).Find(&entradas).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar historial")
		return
	}

	// Resolve usernames in one pass instead of a query per row.
	ids := make([]uint, 0, len(entradas))
	for i := range entradas {
		if entradas[i].UsuarioID != nil {
			ids = append(ids, *entradas[i].UsuarioID)
		}
	}
	nombres := map[uint]string{}
	if len(ids) > 0 {
		var usuarios []models.Usuario
		if err := h.DB.Where("id IN ?", ids).Find(&usuarios).Error; err != nil {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar usuarios")
			return
		}
		for i := range usuarios {
			nombres[usuarios[i].ID] = usuarios[i].Username
		}
	}

	items := make([]historialResp, 0, len(entradas))
	for i := range entradas {
		e := &entradas[i]
		item := historialResp{
			ID:          e.ID,
			UsuarioID:   e.UsuarioID,
			Descripcion: e.Descripcion,
			Fecha:       e.Fecha.Format(time.RFC3339),
		}
		if e.UsuarioID != nil {
			item.Username = nombres[*e.UsuarioID]
		}
		items = append(items, item)
	}
	util.Success(c, util.Response{"historial": items})
}

// Purge deletes audit entries older than the given number of days.
// Admin only; wired behind RequireRol in the router.
func (h *HistorialHandler) Purge(c *gin.Context) {
	dias := 90
	if raw := c.Query("dias"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetro dias inválido")
			return
		}
		dias = n
	}

	corte := time.Now().AddDate(0, 0, -dias)
	res := h.DB.Where("fecha < ?", corte).Delete(&models.HistorialCambio{})
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al depurar historial")
		return
	}
	util.Success(c, util.Response{"eliminados": res.RowsAffected})
}
