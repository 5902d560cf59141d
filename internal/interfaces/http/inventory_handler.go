package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// InventoryHandler handlers HTTP para el libro mayor de stock y el log de movimientos.
type InventoryHandler struct {
	adjustUC *inventory.AdjustmentUseCase
	queryUC  *inventory.QueryUseCase
}

// NewInventoryHandler construye el handler de inventario.
func NewInventoryHandler(adjustUC *inventory.AdjustmentUseCase, queryUC *inventory.QueryUseCase) *InventoryHandler {
	return &InventoryHandler{adjustUC: adjustUC, queryUC: queryUC}
}

// actor resuelve el actor del movimiento: el usuario_id del body si vino,
// si no el usuario autenticado del token (nil cuando la ruta es pública).
func actor(c *fiber.Ctx, explicit *string) *string {
	if explicit != nil && *explicit != "" {
		return explicit
	}
	if id := GetUserID(c); id != "" {
		return &id
	}
	return nil
}

// ListGlobal GET /api/inventario — entradas de la bodega central.
func (h *InventoryHandler) ListGlobal(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	views, err := h.queryUC.ListGlobal(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerViewResponses(views))
}

// TotalStock GET /api/inventario/libro/:libroId — stock total agregado del libro.
func (h *InventoryHandler) TotalStock(c *fiber.Ctx) error {
	bookID := c.Params("libroId")
	total, err := h.queryUC.TotalStock(c.Context(), bookID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"id_libro": bookID, "stock_total": total})
}

// AdjustEntry POST /api/inventario/:id/ajustar — ajusta por delta una entrada existente.
func (h *InventoryHandler) AdjustEntry(c *fiber.Ctx) error {
	var req dto.AdjustStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	entry, err := h.adjustUC.AdjustEntryByDelta(c.Context(), c.Params("id"), req.Delta, req.Tipo, actor(c, req.UsuarioID), req.Observaciones)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerEntryResponse(entry))
}

// SetEntry POST /api/inventario/:id/fijar — fija el stock a un valor absoluto.
func (h *InventoryHandler) SetEntry(c *fiber.Ctx) error {
	var req dto.SetStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	entry, err := h.adjustUC.SetEntryAbsolute(c.Context(), c.Params("id"), req.Stock, actor(c, req.UsuarioID), req.Observaciones)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerEntryResponse(entry))
}

// CreateLocation POST /api/inventario-pv — siembra (o acumula) stock en un punto de venta.
func (h *InventoryHandler) CreateLocation(c *fiber.Ctx) error {
	var req dto.CreateLocationStockRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c)
	}
	if err := dto.Validate(req); err != nil {
		return respondError(c, domain.ErrInvalidInput)
	}
	entry, err := h.adjustUC.AddLocationStock(c.Context(), inventory.AdjustInput{
		BookID:        req.IDLibro,
		PointOfSaleID: &req.IDPuntoVenta,
		Delta:         req.Stock,
		UserID:        actor(c, req.UsuarioID),
		Note:          "alta de stock en punto de venta",
		MinStock:      req.StockMinimo,
	})
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toLedgerEntryResponse(entry))
}

// ListLocations GET /api/inventario-pv — todas las entradas por punto de venta.
func (h *InventoryHandler) ListLocations(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	views, err := h.queryUC.ListLocations(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerViewResponses(views))
}

// ListByPointOfSale GET /api/inventario-pv/por-pv/:pvId
func (h *InventoryHandler) ListByPointOfSale(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	views, err := h.queryUC.ListByPointOfSale(c.Context(), c.Params("pvId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toLedgerViewResponses(views))
}

// ListMovements GET /api/movimientos — log completo, más reciente primero.
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movs, err := h.queryUC.ListMovements(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

// ListMovementsByBook GET /api/movimientos/libro/:libroId
func (h *InventoryHandler) ListMovementsByBook(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return badBody(c)
	}
	page.DefaultPage()
	movs, err := h.queryUC.ListMovementsByBook(c.Context(), c.Params("libroId"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(toMovementResponses(movs))
}

func toLedgerEntryResponse(e *entity.LedgerEntry) *dto.LedgerEntryResponse {
	return &dto.LedgerEntryResponse{
		ID:           e.ID,
		IDLibro:      e.BookID,
		IDPuntoVenta: e.PointOfSaleID,
		Stock:        e.Stock,
		StockMinimo:  e.MinStock,
		UpdatedAt:    e.UpdatedAt,
	}
}

func toLedgerViewResponses(views []*repository.LedgerView) []*dto.LedgerEntryResponse {
	out := make([]*dto.LedgerEntryResponse, 0, len(views))
	for _, v := range views {
		price := v.BookPrice
		out = append(out, &dto.LedgerEntryResponse{
			ID:           v.ID,
			IDLibro:      v.BookID,
			Libro:        v.BookName,
			Precio:       &price,
			IDPuntoVenta: v.PointOfSaleID,
			PuntoVenta:   v.PointOfSaleName,
			Stock:        v.Stock,
			StockMinimo:  v.MinStock,
			UpdatedAt:    v.UpdatedAt,
		})
	}
	return out
}

func toMovementResponses(movs []*entity.BookMovement) []*dto.MovementResponse {
	out := make([]*dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, &dto.MovementResponse{
			ID:            m.ID,
			InventarioID:  m.LedgerEntryID,
			Tipo:          m.Kind,
			Cantidad:      m.Quantity,
			UsuarioID:     m.UserID,
			Observaciones: m.Note,
			Fecha:         m.CreatedAt,
		})
	}
	return out
}
