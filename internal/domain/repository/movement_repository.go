package repository

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// BookMovementRepository define el puerto del log de movimientos de libros.
// El log es append-only: no hay Update ni Delete.
type BookMovementRepository interface {
	Create(ctx context.Context, movement *entity.BookMovement) error
	ListByLedgerEntry(ctx context.Context, ledgerEntryID string, limit, offset int) ([]*entity.BookMovement, error)
	ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*entity.BookMovement, error)
	List(ctx context.Context, limit, offset int) ([]*entity.BookMovement, error)
	// CountByBook cuenta los movimientos que referencian entradas del libro
	// (usado por la política de borrado de libros).
	CountByBook(ctx context.Context, bookID string) (int, error)
}

// RawMaterialMovementRepository define el puerto del log de movimientos de materia prima.
type RawMaterialMovementRepository interface {
	Create(ctx context.Context, movement *entity.RawMaterialMovement) error
	ListByRawMaterial(ctx context.Context, rawMaterialID string, limit, offset int) ([]*entity.RawMaterialMovement, error)
	CountByRawMaterial(ctx context.Context, rawMaterialID string) (int, error)
}
