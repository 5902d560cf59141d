package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// RawMaterialHandler handlers HTTP para materias primas y sus movimientos.
type RawMaterialHandler struct {
	materialUC *usecase.RawMaterialUseCase
	adjustUC   *inventory.AdjustmentUseCase
	queryUC    *inventory.QueryUseCase
}

// NewRawMaterialHandler construye el handler de materias primas.
func NewRawMaterialHandler(materialUC *usecase.RawMaterialUseCase, adjustUC *inventory.AdjustmentUseCase, queryUC *inventory.QueryUseCase) *RawMaterialHandler {
	return &RawMaterialHandler{materialUC: materialUC, adjustUC: adjustUC, queryUC: queryUC}
}

// Create POST /api/materias_primas
func (h *RawMaterialHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	material, err := h.materialUC.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(material)
}

// List GET /api/materias_primas
func (h *RawMaterialHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	materials, err := h.materialUC.List(c.Context(), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(materials)
}

// GetByID GET /api/materias_primas/:id
func (h *RawMaterialHandler) GetByID(c *fiber.Ctx) error {
	material, err := h.materialUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(material)
}

// Update PATCH /api/materias_primas/:id
func (h *RawMaterialHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	material, err := h.materialUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(material)
}

// Delete DELETE /api/materias_primas/:id
func (h *RawMaterialHandler) Delete(c *fiber.Ctx) error {
	if err := h.materialUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Receive POST /api/materias_primas/:id/entrada — registra una recepción.
func (h *RawMaterialHandler) Receive(c *fiber.Ctx) error {
	var req dto.ReceiveRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	material, err := h.adjustUC.ReceiveRawMaterial(c.Context(), c.Params("id"), req.Cantidad, req.UsuarioID, req.Observaciones)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRawMaterialResponse(material))
}

// Adjust POST /api/materias_primas/:id/ajustar — corrección manual con delta firmado.
func (h *RawMaterialHandler) Adjust(c *fiber.Ctx) error {
	var req dto.AdjustRawMaterialRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	material, err := h.adjustUC.AdjustRawMaterial(c.Context(), c.Params("id"), req.Delta, actor(c, req.UsuarioID), req.Observaciones)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toRawMaterialResponse(material))
}

// Movements GET /api/materias_primas/:id/movimientos
func (h *RawMaterialHandler) Movements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movs, err := h.queryUC.ListRawMaterialMovements(c.Context(), c.Params("id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	out := make([]*dto.RawMaterialMovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.RawMaterialMovementResponse{
			ID:            m.ID,
			IDMateria:     m.RawMaterialID,
			Tipo:          m.Kind,
			Cantidad:      m.Quantity,
			UsuarioID:     m.UserID,
			Observaciones: m.Note,
			Fecha:         m.CreatedAt,
		})
	}
	return c.JSON(out)
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:          m.ID,
		Nombre:      m.Name,
		Unidad:      m.Unit,
		StockActual: m.CurrentStock,
		StockMinimo: m.MinStock,
	}
}
