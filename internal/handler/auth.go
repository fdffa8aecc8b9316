package handler

import (
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/Roezin7/SistemaGestion/internal/models"
	"github.com/Roezin7/SistemaGestion/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration and login.
type AuthHandler struct {
	DB        *gorm.DB
	JWTSecret string
	Issuer    string
	TokenTTL  time.Duration
}

func NewAuthHandler(db *gorm.DB, jwtSecret, issuer string, ttlHours int) *AuthHandler {
	if ttlHours <= 0 {
		ttlHours = 24
	}
	return &AuthHandler{
		DB:        db,
		JWTSecret: jwtSecret,
		Issuer:    issuer,
		TokenTTL:  time.Duration(ttlHours) * time.Hour,
	}
}

type registerReq struct {
	Nombre   string `json:"nombre" binding:"max=64"`
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Rol      string `json:"rol" binding:"omitempty,oneof=admin usuario"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam,
			"El usuario debe tener 3-20 caracteres: letras, números o guión bajo")
		return
	}
	if len(req.Password) < 8 || len(req.Password) > 64 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "La contraseña debe tener entre 8 y 64 caracteres")
		return
	}

	// case-insensitive uniqueness
	var count int64
	if err := h.DB.Model(&models.Usuario{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al consultar usuarios")
		return
	}
	if count > 0 {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "El usuario ya existe")
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al registrar usuario")
		return
	}

	rol := req.Rol
	if rol == "" {
		rol = models.RolUsuario
	}
	user := models.Usuario{
		Nombre:       req.Nombre,
		Username:     req.Username,
		PasswordHash: string(hash),
		Rol:          rol,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al registrar usuario")
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

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "Parámetros inválidos")
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.Usuario
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuario o contraseña incorrectos")
		} else {
			util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error en el inicio de sesión")
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "Usuario o contraseña incorrectos")
		return
	}

	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, user.ID, user.Username, user.Rol, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "Error al generar token")
		return
	}

	util.Success(c, util.Response{
		"token": token,
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"nombre":   user.Nombre,
			"rol":      user.Rol,
		},
	})
}
