package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
)

// UserHandler handlers HTTP para usuarios (solo admin).
type UserHandler struct {
	userUC *usecase.UserUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(userUC *usecase.UserUseCase) *UserHandler {
	return &UserHandler{userUC: userUC}
}

// Create POST /api/usuarios
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.userUC.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(user)
}

// List GET /api/usuarios?q=&limit=&offset=
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	users, err := h.userUC.List(c.Context(), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(users)
}

// GetByID GET /api/usuarios/:id
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.userUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Update PATCH /api/usuarios/:id
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	user, err := h.userUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

// Delete DELETE /api/usuarios/:id
// Los movimientos del usuario quedan con usuario_id en NULL (FK ON DELETE SET NULL).
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	if err := h.userUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
