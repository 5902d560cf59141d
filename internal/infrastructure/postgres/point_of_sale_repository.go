package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

var _ repository.PointOfSaleRepository = (*PointOfSaleRepo)(nil)

// PointOfSaleRepo implementación del puerto PointOfSaleRepository sobre PostgreSQL.
type PointOfSaleRepo struct {
	q Querier
}

// NewPointOfSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPointOfSaleRepository(q Querier) *PointOfSaleRepo {
	return &PointOfSaleRepo{q: q}
}

// Create persiste un nuevo punto de venta.
func (r *PointOfSaleRepo) Create(ctx context.Context, pos *entity.PointOfSale) error {
	query := `
		INSERT INTO puntos_venta (id, nombre, ubicacion, tipo)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, pos.ID, pos.Name, pos.Location, pos.Type)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert point of sale: %w", err)
	}
	return nil
}

// GetByID obtiene un punto de venta por id; nil si no existe.
func (r *PointOfSaleRepo) GetByID(ctx context.Context, id string) (*entity.PointOfSale, error) {
	query := `SELECT id, nombre, ubicacion, tipo FROM puntos_venta WHERE id = $1`
	var p entity.PointOfSale
	err := r.q.QueryRow(ctx, query, id).Scan(&p.ID, &p.Name, &p.Location, &p.Type)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get point of sale: %w", err)
	}
	return &p, nil
}

// List devuelve los puntos de venta paginados.
func (r *PointOfSaleRepo) List(ctx context.Context, limit, offset int) ([]*entity.PointOfSale, error) {
	query := `SELECT id, nombre, ubicacion, tipo FROM puntos_venta ORDER BY nombre ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list points of sale: %w", err)
	}
	defer rows.Close()
	var list []*entity.PointOfSale
	for rows.Next() {
		var p entity.PointOfSale
		if err := rows.Scan(&p.ID, &p.Name, &p.Location, &p.Type); err != nil {
			return nil, fmt.Errorf("scan point of sale: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}
