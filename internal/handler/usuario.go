package handler

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// UsuarioHandler serves the admin-only user administration endpoints.
type UsuarioHandler struct {
	DB *gorm.DB
}

func NewUsuarioHandler(db *gorm.DB) *UsuarioHandler {
	return &UsuarioHandler{DB: db}
}

// GetMe returns the authenticated user.
func GetMe(c *gin.Context) {
	user := currentUser(c)
	if user == nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Acceso denegado")
		return
	}
	util.Success(c, util.Response{
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"nombre":   user.Nombre,
			"rol":      user.Rol,
		},
	})
}

func (h *UsuarioHandler) ListUsuarios(c *gin.Context) {
	var usuarios []models.Usuario
	if err := h.DB.Order("username ASC").Find(&usuarios).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar usuarios")
		return
	}

	items := make([]gin.H, 0, len(usuarios))
	for _, u := range usuarios {
		items = append(items, gin.H{
			"id":       u.ID,
			"username": u.Username,
			"nombre":   u.Nombre,
			"rol":      u.Rol,
		})
	}
	util.Success(c, util.Response{"usuarios": items})
}

type updateRolReq struct {
	Rol string `json:"rol" binding:"required,oneof=admin usuario"`
}

func (h *UsuarioHandler) UpdateRol(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	var req updateRolReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	var user models.Usuario
	if err := h.DB.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuario no encontrado")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar usuario")
		}
		return
	}

	user.Rol = req.Rol
	if err := h.DB.Save(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al actualizar usuario")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se cambió el rol del usuario %s a %s", user.Username, user.Rol))

	util.Success(c, util.Response{
		"user": gin.H{"id": user.ID, "username": user.Username, "rol": user.Rol},
	})
}

func (h *UsuarioHandler) DeleteUsuario(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "ID inválido")
		return
	}

	// un admin no puede eliminarse a sí mismo
	if user := currentUser(c); user != nil && user.ID == uint(id) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "No puede eliminar su propio usuario")
		return
	}

	res := h.DB.Delete(&models.Usuario{}, id)
	if res.Error != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al eliminar usuario")
		return
	}
	if res.RowsAffected == 0 {
		util.Error(c, http.StatusNotFound, util.CodeNotFound, "Usuario no encontrado")
		return
	}
	registrarHistorial(h.DB, c, fmt.Sprintf("Se eliminó usuario id %d", id))

	util.Success(c, util.Response{"message": "Usuario eliminado correctamente"})
}
