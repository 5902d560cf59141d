package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

var _ repository.LedgerRepository = (*LedgerRepo)(nil)

// LedgerRepo implementación de LedgerRepository sobre PostgreSQL (usable con pool o tx).
// La tabla inventario tiene un índice único sobre (libro_id, COALESCE(punto_venta_id, '')):
// una fila por par (libro, ubicación), con punto_venta_id NULL para la bodega central.
type LedgerRepo struct {
	q Querier
}

// NewLedgerRepository construye el adaptador del libro mayor. Pasar pool o tx (Querier).
func NewLedgerRepository(q Querier) *LedgerRepo {
	return &LedgerRepo{q: q}
}

const ledgerColumns = "id, libro_id, punto_venta_id, stock, stock_minimo, updated_at"

func scanLedgerEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	err := row.Scan(&e.ID, &e.BookID, &e.PointOfSaleID, &e.Stock, &e.MinStock, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}

// Get obtiene la entrada del par (libro, ubicación); nil si no existe.
func (r *LedgerRepo) Get(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM inventario WHERE libro_id = $1 AND punto_venta_id IS NOT DISTINCT FROM $2`
	entry, err := scanLedgerEntry(r.q.QueryRow(ctx, query, bookID, posID))
	if err != nil {
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return entry, nil
}

// GetForUpdate obtiene la entrada y bloquea la fila (SELECT FOR UPDATE); nil si no existe.
func (r *LedgerRepo) GetForUpdate(ctx context.Context, bookID string, posID *string) (*entity.LedgerEntry, error) {
	query := `
		SELECT ` + ledgerColumns + `
		FROM inventario WHERE libro_id = $1 AND punto_venta_id IS NOT DISTINCT FROM $2
		FOR UPDATE`
	entry, err := scanLedgerEntry(r.q.QueryRow(ctx, query, bookID, posID))
	if err != nil {
		return nil, fmt.Errorf("get ledger entry for update: %w", err)
	}
	return entry, nil
}

// GetByID obtiene una entrada por id; nil si no existe.
func (r *LedgerRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM inventario WHERE id = $1`
	entry, err := scanLedgerEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get ledger entry by id: %w", err)
	}
	return entry, nil
}

// GetByIDForUpdate obtiene una entrada por id bloqueando la fila; nil si no existe.
func (r *LedgerRepo) GetByIDForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	query := `SELECT ` + ledgerColumns + ` FROM inventario WHERE id = $1 FOR UPDATE`
	entry, err := scanLedgerEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		return nil, fmt.Errorf("get ledger entry by id for update: %w", err)
	}
	return entry, nil
}

// CreateIfAbsent inserta la entrada si el par (libro, ubicación) aún no existe.
// ON CONFLICT DO NOTHING sobre el índice único: una carrera de creación concurrente
// deja exactamente una fila y ningún error.
func (r *LedgerRepo) CreateIfAbsent(ctx context.Context, entry *entity.LedgerEntry) error {
	query := `
		INSERT INTO inventario (id, libro_id, punto_venta_id, stock, stock_minimo, updated_at)
		VALUES ($1, $2, $3, $4, $5, now())
		ON CONFLICT (libro_id, COALESCE(punto_venta_id, '')) DO NOTHING`
	_, err := r.q.Exec(ctx, query, entry.ID, entry.BookID, entry.PointOfSaleID, entry.Stock, entry.MinStock)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("create ledger entry: referencia inexistente: %w", err)
		}
		return fmt.Errorf("create ledger entry: %w", err)
	}
	return nil
}

// UpdateStock persiste el nuevo stock y refresca updated_at.
func (r *LedgerRepo) UpdateStock(ctx context.Context, id string, stock int) error {
	query := `UPDATE inventario SET stock = $2, updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, id, stock)
	if err != nil {
		return fmt.Errorf("update ledger stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("update ledger stock: fila no encontrada")
	}
	return nil
}

const ledgerViewQuery = `
	SELECT i.id, i.libro_id, l.nombre, l.precio, i.punto_venta_id, pv.nombre, i.stock, i.stock_minimo, i.updated_at
	FROM inventario i
	JOIN libros l ON l.id = i.libro_id
	LEFT JOIN puntos_venta pv ON pv.id = i.punto_venta_id`

func (r *LedgerRepo) listViews(ctx context.Context, query string, args ...any) ([]*repository.LedgerView, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*repository.LedgerView
	for rows.Next() {
		var v repository.LedgerView
		if err := rows.Scan(&v.ID, &v.BookID, &v.BookName, &v.BookPrice, &v.PointOfSaleID,
			&v.PointOfSaleName, &v.Stock, &v.MinStock, &v.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan ledger view: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// ListGlobal lista las entradas de la bodega central (punto_venta_id IS NULL).
func (r *LedgerRepo) ListGlobal(ctx context.Context, limit, offset int) ([]*repository.LedgerView, error) {
	query := ledgerViewQuery + `
		WHERE i.punto_venta_id IS NULL
		ORDER BY l.nombre ASC LIMIT $1 OFFSET $2`
	return r.listViews(ctx, query, limit, offset)
}

// ListByPointOfSale lista las entradas de un punto de venta.
func (r *LedgerRepo) ListByPointOfSale(ctx context.Context, posID string, limit, offset int) ([]*repository.LedgerView, error) {
	query := ledgerViewQuery + `
		WHERE i.punto_venta_id = $1
		ORDER BY l.nombre ASC LIMIT $2 OFFSET $3`
	return r.listViews(ctx, query, posID, limit, offset)
}

// ListLocations lista todas las entradas por punto de venta (excluye la bodega central).
func (r *LedgerRepo) ListLocations(ctx context.Context, limit, offset int) ([]*repository.LedgerView, error) {
	query := ledgerViewQuery + `
		WHERE i.punto_venta_id IS NOT NULL
		ORDER BY pv.nombre ASC, l.nombre ASC LIMIT $1 OFFSET $2`
	return r.listViews(ctx, query, limit, offset)
}

// TotalStock suma el stock de todas las entradas del libro (global + puntos de venta).
// La lectura es un snapshot de filas independientes; 0 cuando no hay filas.
func (r *LedgerRepo) TotalStock(ctx context.Context, bookID string) (int, error) {
	query := `SELECT COALESCE(SUM(stock), 0) FROM inventario WHERE libro_id = $1`
	var total int
	if err := r.q.QueryRow(ctx, query, bookID).Scan(&total); err != nil {
		return 0, fmt.Errorf("total stock: %w", err)
	}
	return total, nil
}

// DeleteByBook elimina todas las entradas del libro mayor del libro indicado.
func (r *LedgerRepo) DeleteByBook(ctx context.Context, bookID string) error {
	query := `DELETE FROM inventario WHERE libro_id = $1`
	if _, err := r.q.Exec(ctx, query, bookID); err != nil {
		return fmt.Errorf("delete ledger entries by book: %w", err)
	}
	return nil
}
