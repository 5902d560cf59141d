package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateBookRequest body para POST /api/libros.
// CantidadLibros siembra la entrada global del libro mayor en la misma transacción.
type CreateBookRequest struct {
	Nombre          string           `json:"nombre" validate:"required,min=1,max=150"`
	Categoria       string           `json:"categoria,omitempty"`
	Descripcion     string           `json:"descripcion,omitempty"`
	Precio          *decimal.Decimal `json:"precio,omitempty"`
	PaginasPorLibro int              `json:"paginas_por_libro" validate:"required,gt=0"`
	CantidadLibros  int              `json:"cantidad_libros" validate:"omitempty,gte=0"`
}

// UpdateBookRequest body para PATCH /api/libros/:id. Solo nombre y precio son mutables.
type UpdateBookRequest struct {
	Nombre *string          `json:"nombre,omitempty" validate:"omitempty,min=1,max=150"`
	Precio *decimal.Decimal `json:"precio,omitempty"`
}

// BookResponse salida para libros, con el stock total agregado
// (bodega central + todos los puntos de venta).
type BookResponse struct {
	ID          string          `json:"id"`
	Nombre      string          `json:"nombre"`
	Categoria   string          `json:"categoria,omitempty"`
	Descripcion string          `json:"descripcion,omitempty"`
	Precio      decimal.Decimal `json:"precio"`
	Paginas     int             `json:"paginas_por_libro"`
	StockTotal  int             `json:"stock_total"`
	CreatedAt   time.Time       `json:"fecha_creacion"`
}
