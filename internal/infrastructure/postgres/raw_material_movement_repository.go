package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

var _ repository.RawMaterialMovementRepository = (*RawMaterialMovementRepo)(nil)

// RawMaterialMovementRepo implementación del log de movimientos de materia prima.
type RawMaterialMovementRepo struct {
	q Querier
}

// NewRawMaterialMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialMovementRepository(q Querier) *RawMaterialMovementRepo {
	return &RawMaterialMovementRepo{q: q}
}

// Create persiste un movimiento de materia prima (append-only).
func (r *RawMaterialMovementRepo) Create(ctx context.Context, movement *entity.RawMaterialMovement) error {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movimientos_mp (id, mp_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		movement.ID, movement.RawMaterialID, movement.Kind, movement.Quantity,
		movement.UserID, movement.Note, movement.CreatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("create raw material movement: %w", err)
	}
	return nil
}

// ListByRawMaterial lista los movimientos de una materia prima, más reciente primero.
func (r *RawMaterialMovementRepo) ListByRawMaterial(ctx context.Context, rawMaterialID string, limit, offset int) ([]*entity.RawMaterialMovement, error) {
	query := `
		SELECT id, mp_id, tipo, cantidad, usuario_id, observaciones, fecha_movimiento
		FROM movimientos_mp WHERE mp_id = $1
		ORDER BY fecha_movimiento DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, rawMaterialID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw material movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterialMovement
	for rows.Next() {
		var m entity.RawMaterialMovement
		if err := rows.Scan(&m.ID, &m.RawMaterialID, &m.Kind, &m.Quantity,
			&m.UserID, &m.Note, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan raw material movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// CountByRawMaterial cuenta los movimientos registrados de la materia prima.
func (r *RawMaterialMovementRepo) CountByRawMaterial(ctx context.Context, rawMaterialID string) (int, error) {
	query := `SELECT COUNT(*) FROM movimientos_mp WHERE mp_id = $1`
	var count int
	if err := r.q.QueryRow(ctx, query, rawMaterialID).Scan(&count); err != nil {
		return 0, fmt.Errorf("count raw material movements: %w", err)
	}
	return count, nil
}
