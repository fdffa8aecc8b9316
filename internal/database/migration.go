package database

import (
	"fmt"

	"github.com/Roezin7/SistemaGestion/internal/models"

	"gorm.io/gorm"
)

// AutoMigrate runs database schema migrations for all models.
func AutoMigrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&models.Usuario{},
		&models.Cliente{},
		&models.Movimiento{},
		&models.RetiroSocio{},
		&models.DocumentoCliente{},
		&models.HistorialCambio{},
	); err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}
	return nil
}
