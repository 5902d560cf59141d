package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin    = "admin"
	RoleVendedor = "vendedor"
)

// User representa un usuario del sistema.
type User struct {
	ID            string
	Name          string
	Email         string // único
	PasswordHash  string // bcrypt hash, nunca plano en dominio después de persistir
	Role          string // admin, vendedor
	PointOfSaleID *string // punto de venta asignado (opcional)
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ValidRole indica si el rol es reconocido.
func ValidRole(r string) bool {
	return r == RoleAdmin || r == RoleVendedor
}
