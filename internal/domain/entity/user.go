package entity

import "time"

// Role rol de un usuario del almacén.
type Role string

// Roles válidos para User.
const (
	RoleManager Role = "manager" // crea y elimina documentos, productos y bodegas
	RoleStaff   Role = "staff"   // procesa los cambios de estado
)

// Valid indica si el rol es conocido.
func (r Role) Valid() bool {
	return r == RoleManager || r == RoleStaff
}

// Estados de cuenta.
const (
	UserStatusActive   = "active"
	UserStatusInactive = "inactive"
)

// User representa un usuario del sistema.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         Role
	Status       string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
