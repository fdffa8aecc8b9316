package handler

import (
	"time"

	"github.com/Roezin7/SistemaGestion/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const fechaLayout = "2006-01-02"

// currentUser returns the user set by the auth middleware, or nil.
func currentUser(c *gin.Context) *models.Usuario {
	v, ok := c.Get("currentUser")
	if !ok {
		return nil
	}
	user, ok := v.(*models.Usuario)
	if !ok {
		return nil
	}
	return user
}

// formatMonto renders a decimal amount with two decimals. Amounts stay
// decimal-exact internally; this runs only at the response edge.
func formatMonto(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// parseFecha accepts the date formats the frontend has historically sent.
func parseFecha(s string) (time.Time, bool) {
	layouts := []string{
		fechaLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// registrarHistorial appends an audit row for a mutating operation.
// Failures are logged by the caller's store; they never abort the request.
func registrarHistorial(db *gorm.DB, c *gin.Context, descripcion string) {
	var usuarioID *uint
	if user := currentUser(c); user != nil {
		usuarioID = &user.ID
	}
	_ = db.Create(&models.HistorialCambio{
		UsuarioID:   usuarioID,
		Descripcion: descripcion,
	}).Error
}
