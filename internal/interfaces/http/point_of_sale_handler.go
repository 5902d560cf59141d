package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
)

// PointOfSaleHandler handlers HTTP para puntos de venta.
type PointOfSaleHandler struct {
	posUC *usecase.PointOfSaleUseCase
}

// NewPointOfSaleHandler construye el handler de puntos de venta.
func NewPointOfSaleHandler(posUC *usecase.PointOfSaleUseCase) *PointOfSaleHandler {
	return &PointOfSaleHandler{posUC: posUC}
}

// Create POST /api/puntos_venta
func (h *PointOfSaleHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePointOfSaleRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	pos, err := h.posUC.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(pos)
}

// List GET /api/puntos_venta
func (h *PointOfSaleHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	list, err := h.posUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(list)
}

// GetByID GET /api/puntos_venta/:id
func (h *PointOfSaleHandler) GetByID(c *fiber.Ctx) error {
	pos, err := h.posUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(pos)
}
