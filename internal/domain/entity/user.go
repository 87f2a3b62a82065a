package entity

import "time"

// Roles de usuario de la clínica.
const (
	RoleAdmin    = "admin"
	RoleApoteker = "apoteker" // farmacéutico
	RoleKasir    = "kasir"    // cajero
)

// User representa un usuario del sistema.
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	Status       string // active | inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
