package inventory

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre el libro mayor y el log de movimientos.
// Las lecturas son snapshots de filas independientes: no requieren transacción.
type QueryUseCase struct {
	ledgerRepo repository.LedgerRepository
	bookRepo   repository.BookRepository
	movRepo    repository.BookMovementRepository
	mpMovRepo  repository.RawMaterialMovementRepository
}

// NewQueryUseCase construye las consultas de inventario.
func NewQueryUseCase(
	ledgerRepo repository.LedgerRepository,
	bookRepo repository.BookRepository,
	movRepo repository.BookMovementRepository,
	mpMovRepo repository.RawMaterialMovementRepository,
) *QueryUseCase {
	return &QueryUseCase{
		ledgerRepo: ledgerRepo,
		bookRepo:   bookRepo,
		movRepo:    movRepo,
		mpMovRepo:  mpMovRepo,
	}
}

// TotalStock devuelve el stock total de un libro: entrada global más todas las
// entradas por punto de venta (0 cuando no hay filas).
func (uc *QueryUseCase) TotalStock(ctx context.Context, bookID string) (int, error) {
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return 0, err
	}
	if book == nil {
		return 0, domain.ErrNotFound
	}
	return uc.ledgerRepo.TotalStock(ctx, bookID)
}

// ListGlobal lista las entradas de la bodega central.
func (uc *QueryUseCase) ListGlobal(ctx context.Context, limit, offset int) ([]*repository.LedgerView, error) {
	return uc.ledgerRepo.ListGlobal(ctx, limit, offset)
}

// ListLocations lista todas las entradas por punto de venta.
func (uc *QueryUseCase) ListLocations(ctx context.Context, limit, offset int) ([]*repository.LedgerView, error) {
	return uc.ledgerRepo.ListLocations(ctx, limit, offset)
}

// ListByPointOfSale lista las entradas de un punto de venta concreto.
func (uc *QueryUseCase) ListByPointOfSale(ctx context.Context, posID string, limit, offset int) ([]*repository.LedgerView, error) {
	return uc.ledgerRepo.ListByPointOfSale(ctx, posID, limit, offset)
}

// ListMovements lista el log de movimientos de libros, más reciente primero.
func (uc *QueryUseCase) ListMovements(ctx context.Context, limit, offset int) ([]*entity.BookMovement, error) {
	return uc.movRepo.List(ctx, limit, offset)
}

// ListMovementsByBook lista los movimientos que afectaron entradas de un libro.
func (uc *QueryUseCase) ListMovementsByBook(ctx context.Context, bookID string, limit, offset int) ([]*entity.BookMovement, error) {
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}
	return uc.movRepo.ListByBook(ctx, bookID, limit, offset)
}

// ListRawMaterialMovements lista los movimientos de una materia prima.
func (uc *QueryUseCase) ListRawMaterialMovements(ctx context.Context, materialID string, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	return uc.mpMovRepo.ListByRawMaterial(ctx, materialID, limit, offset)
}
