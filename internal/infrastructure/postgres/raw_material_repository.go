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

var _ repository.RawMaterialRepository = (*RawMaterialRepo)(nil)

// RawMaterialRepo implementación del puerto RawMaterialRepository sobre PostgreSQL.
type RawMaterialRepo struct {
	q Querier
}

// NewRawMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRawMaterialRepository(q Querier) *RawMaterialRepo {
	return &RawMaterialRepo{q: q}
}

const rawMaterialColumns = "id, nombre, unidad, stock_actual, stock_minimo"

func scanRawMaterial(row pgx.Row) (*entity.RawMaterial, error) {
	var m entity.RawMaterial
	err := row.Scan(&m.ID, &m.Name, &m.Unit, &m.CurrentStock, &m.MinStock)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &m, nil
}

// Create persiste una nueva materia prima.
func (r *RawMaterialRepo) Create(ctx context.Context, material *entity.RawMaterial) error {
	query := `
		INSERT INTO materias_primas (id, nombre, unidad, stock_actual, stock_minimo)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query,
		material.ID, material.Name, material.Unit, material.CurrentStock, material.MinStock,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert raw material: %w", err)
	}
	return nil
}

// GetByID obtiene una materia prima por id; nil si no existe.
func (r *RawMaterialRepo) GetByID(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM materias_primas WHERE id = $1`
	material, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get raw material: %w", err)
	}
	return material, nil
}

// GetByIDForUpdate obtiene la materia prima bloqueando la fila (SELECT FOR UPDATE).
func (r *RawMaterialRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM materias_primas WHERE id = $1 FOR UPDATE`
	material, err := scanRawMaterial(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get raw material for update: %w", err)
	}
	return material, nil
}

// List devuelve las materias primas paginadas.
func (r *RawMaterialRepo) List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error) {
	query := `SELECT ` + rawMaterialColumns + ` FROM materias_primas ORDER BY nombre ASC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list raw materials: %w", err)
	}
	defer rows.Close()
	var list []*entity.RawMaterial
	for rows.Next() {
		var m entity.RawMaterial
		if err := rows.Scan(&m.ID, &m.Name, &m.Unit, &m.CurrentStock, &m.MinStock); err != nil {
			return nil, fmt.Errorf("scan raw material: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// Update aplica la actualización parcial (nombre, unidad, stock mínimo).
// El stock actual no se toca por esta vía.
func (r *RawMaterialRepo) Update(ctx context.Context, id string, upd entity.RawMaterialUpdate) (*entity.RawMaterial, error) {
	query := `
		UPDATE materias_primas
		SET nombre = COALESCE($2, nombre),
		    unidad = COALESCE($3, unidad),
		    stock_minimo = COALESCE($4, stock_minimo)
		WHERE id = $1
		RETURNING ` + rawMaterialColumns
	material, err := scanRawMaterial(r.q.QueryRow(ctx, query, id, upd.Name, upd.Unit, upd.MinStock))
	if err != nil {
		return nil, fmt.Errorf("update raw material: %w", err)
	}
	return material, nil
}

// UpdateStock persiste el nuevo stock actual. Solo el motor de ajustes llama aquí,
// con la fila ya bloqueada en la transacción.
func (r *RawMaterialRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	tag, err := r.q.Exec(ctx, `UPDATE materias_primas SET stock_actual = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update raw material stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update raw material stock: fila no encontrada")
	}
	return nil
}

// Delete elimina una materia prima.
func (r *RawMaterialRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM materias_primas WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete raw material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
