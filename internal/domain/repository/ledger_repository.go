package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// LedgerView es la entrada del libro mayor enriquecida con nombre de libro,
// precio y punto de venta para los listados de lectura (JOIN en el adaptador).
type LedgerView struct {
	ID              string
	BookID          string
	BookName        string
	BookPrice       decimal.Decimal
	PointOfSaleID   *string
	PointOfSaleName *string
	Stock           int
	MinStock        *int
	UpdatedAt       time.Time
}

// LedgerRepository define el puerto para consultar/actualizar el libro mayor de stock.
// posID en nil referencia la bodega central. Los métodos *ForUpdate bloquean la fila
// (SELECT FOR UPDATE) y solo tienen sentido dentro de una transacción.
type LedgerRepository interface {
	Get(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error)
	GetForUpdate(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error)
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// CreateIfAbsent inserta la entrada si no existe (ON CONFLICT DO NOTHING).
	// No falla si otro escritor la creó primero; el caller debe releer con GetForUpdate.
	CreateIfAbsent(ctx context.Context, entry *entity.LedgerEntry) error
	// UpdateStock persiste el nuevo stock y refresca updated_at.
	UpdateStock(ctx context.Context, id string, stock int) error
	ListGlobal(ctx context.Context, limit, offset int) ([]*LedgerView, error)
	ListByPointOfSale(ctx context.Context, posID string, limit, offset int) ([]*LedgerView, error)
	ListLocations(ctx context.Context, limit, offset int) ([]*LedgerView, error)
	// TotalStock suma la entrada global y todas las entradas por punto de venta del libro.
	TotalStock(ctx context.Context, bookID string) (int, error)
	DeleteByBook(ctx context.Context, bookID string) error
}
