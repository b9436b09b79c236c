package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// ValidRole indica si role es uno de los roles conocidos.
func ValidRole(role string) bool {
	return role == RoleAdmin || role == RoleVendedor
}

// User usuario del sistema. Como vendedor queda referenciado por ventas y movimientos.
type User struct {
	ID           string
	Username     string
	FullName     string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Role         string // admin, vendedor
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsAdmin atajo para el rol administrador.
func (u *User) IsAdmin() bool { return u != nil && u.Role == RoleAdmin }
