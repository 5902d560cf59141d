package dto

import "time"

// CreateUserRequest body para POST /api/usuarios.
type CreateUserRequest struct {
	Nombre       string  `json:"nombre" validate:"required,min=1,max=100"`
	Email        string  `json:"email" validate:"required,email"`
	Contrasena   string  `json:"contrasena" validate:"required,min=6"`
	Rol          string  `json:"rol" validate:"required,oneof=admin vendedor"`
	PuntoVentaID *string `json:"punto_venta_id,omitempty"`
}

// UpdateUserRequest body para PATCH /api/usuarios/:id (parcial, campos explícitos).
type UpdateUserRequest struct {
	Nombre       *string `json:"nombre,omitempty" validate:"omitempty,min=1,max=100"`
	Email        *string `json:"email,omitempty" validate:"omitempty,email"`
	Contrasena   *string `json:"contrasena,omitempty" validate:"omitempty,min=6"`
	Rol          *string `json:"rol,omitempty" validate:"omitempty,oneof=admin vendedor"`
	PuntoVentaID *string `json:"punto_venta_id,omitempty"`
}

// UserResponse salida para usuarios. Nunca incluye el hash de contraseña.
type UserResponse struct {
	ID           string    `json:"id"`
	Nombre       string    `json:"nombre"`
	Email        string    `json:"email"`
	Rol          string    `json:"rol"`
	PuntoVentaID *string   `json:"punto_venta_id,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// LoginRequest body para POST /api/auth/login.
type LoginRequest struct {
	Email      string `json:"email" validate:"required,email"`
	Contrasena string `json:"contrasena" validate:"required"`
}

// LoginResponse token JWT más los datos del usuario autenticado.
type LoginResponse struct {
	Token   string       `json:"token"`
	Usuario UserResponse `json:"usuario"`
}
