package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/usecase"
)

// BookHandler handlers HTTP para el catálogo de libros.
type BookHandler struct {
	bookUC *usecase.BookUseCase
}

// NewBookHandler construye el handler de libros.
func NewBookHandler(bookUC *usecase.BookUseCase) *BookHandler {
	return &BookHandler{bookUC: bookUC}
}

// Create POST /api/libros
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	book, err := h.bookUC.Create(c.Context(), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(book)
}

// List GET /api/libros?q=&limit=&offset=
func (h *BookHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	books, err := h.bookUC.List(c.Context(), c.Query("q"), page)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(books)
}

// GetByID GET /api/libros/:id
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	book, err := h.bookUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// Update PATCH /api/libros/:id
func (h *BookHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	book, err := h.bookUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(book)
}

// Delete DELETE /api/libros/:id
// Responde 409 HAS_MOVEMENTS mientras el libro tenga movimientos registrados.
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	if err := h.bookUC.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
