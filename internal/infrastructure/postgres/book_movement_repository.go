package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

var _ repository.BookMovementRepository = (*BookMovementRepo)(nil)

// BookMovementRepo implementación del log de movimientos de libros sobre PostgreSQL.
// Solo inserta y lee: el log es append-only.
type BookMovementRepo struct {
	q Querier
}

// NewBookMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewBookMovementRepository(q Querier) *BookMovementRepo {
	return &BookMovementRepo{q: q}
}

// Create persiste un movimiento. No valida el estado del libro mayor: esa
// consistencia es responsabilidad del motor de ajustes antes de llegar aquí.
func (r *BookMovementRepo) Create(ctx context.Context, movement *entity.BookMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_libros (id, inventario_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.LedgerEntryID, movement.Kind, movement.Quantity,
		movement.UserID, movement.Note, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create book movement: %w", err)
	}
	return nil
}

const bookMovementColumns = "id, inventario_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento"

func (r *BookMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.BookMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list book movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.BookMovement
	for rows.Next() {
		var m entity.BookMovement
		if err := rows.Scan(&m.ID, &m.LedgerEntryID, &m.Kind, &m.Quantity,
			&m.UserID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListByLedgerEntry lista los movimientos de una entrada del libro mayor, más reciente primero.
func (r *BookMovementRepo) ListByLedgerEntry(ctx context.Context, ledgerEntryID string, limit, offset int) ([]*entity.BookMovement, error) {
	query := `
		SELECT ` + bookMovementColumns + `
		FROM movimientos_libros WHERE inventario_id = $1
		ORDER BY fecha_movimiento DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, ledgerEntryID, limit, offset)
}

// ListByBook lista los movimientos que afectaron cualquier entrada del libro.
func (r *BookMovementRepo) ListByBook(ctx context.Context, bookID string, limit, offset int) ([]*entity.BookMovement, error) {
	query := `
		SELECT m.id, m.inventario_id, m.tipo, m.cantidad, m.usuario_id, m.observaciones, m.fecha_movimiento
		FROM movimientos_libros m
		JOIN inventario i ON i.id = m.inventario_id
		WHERE i.libro_id = $1
		ORDER BY m.fecha_movimiento DESC LIMIT $2 OFFSET $3`
	return r.list(ctx, query, bookID, limit, offset)
}

// List lista todo el log, más reciente primero.
func (r *BookMovementRepo) List(ctx context.Context, limit, offset int) ([]*entity.BookMovement, error) {
	query := `
		SELECT ` + bookMovementColumns + `
		FROM movimientos_libros
		ORDER BY fecha_movimiento DESC LIMIT $1 OFFSET $2`
	return r.list(ctx, query, limit, offset)
}

// CountByBook cuenta los movimientos que referencian entradas del libro.
func (r *BookMovementRepo) CountByBook(ctx context.Context, bookID string) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM movimientos_libros m
		JOIN inventario i ON i.id = m.inventario_id
		WHERE i.libro_id = $1`
	var count int
	if err := r.q.QueryRow(ctx, query, bookID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count book movements: %w", err)
	}
	return count, nil
}
