package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/auth"
	"github.com/jhoicas/libreria-api/internal/application/dto"
)

// AuthHandler handlers HTTP de autenticación.
type AuthHandler struct {
	authUC *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(authUC *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{authUC: authUC}
}

// Login POST /api/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	resp, err := h.authUC.Login(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(resp)
}
