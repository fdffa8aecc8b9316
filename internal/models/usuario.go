package models

import "time"

// Roles disponibles para los usuarios del sistema.
const (
	RolAdmin   = "admin"
	RolUsuario = "usuario"
)

// Usuario represents a staff account that can operate the system.
type Usuario struct {
	ID           uint   `gorm:"primaryKey"`
	Nombre       string `gorm:"size:64"`
	Username     string `gorm:"size:64;uniqueIndex;not null"`
	PasswordHash string `gorm:"size:255;not null"`
	Rol          string `gorm:"size:16;index;not null;default:usuario"` // admin / usuario
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Usuario) TableName() string { return "usuarios" }
