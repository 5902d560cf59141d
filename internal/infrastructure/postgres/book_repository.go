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

var _ repository.BookRepository = (*BookRepo)(nil)

// BookRepo implementación del puerto BookRepository sobre PostgreSQL (usable con pool o tx).
type BookRepo struct {
	q Querier
}

// NewBookRepository construye el adaptador de persistencia para libros. Pasar pool o tx (Querier).
func NewBookRepository(q Querier) *BookRepo {
	return &BookRepo{q: q}
}

const bookColumns = "id, nombre, categoria, descripcion, precio, paginas, fecha_creacion"

// Create persiste un nuevo libro.
func (r *BookRepo) Create(ctx context.Context, book *entity.Book) error {
	query := `
		INSERT INTO libros (id, nombre, categoria, descripcion, precio, paginas, fecha_creacion)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query,
		book.ID, book.Name, book.Category, book.Description, book.Price, book.Pages, book.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert book: %w", err)
	}
	return nil
}

// GetByID obtiene un libro por id; nil si no existe.
func (r *BookRepo) GetByID(ctx context.Context, id string) (*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM libros WHERE id = $1`
	var b entity.Book
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.Name, &b.Category, &b.Description, &b.Price, &b.Pages, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get book: %w", err)
	}
	return &b, nil
}

// List devuelve libros paginados, filtrando por nombre (ILIKE) cuando q no es vacío.
func (r *BookRepo) List(ctx context.Context, q string, limit, offset int) ([]*entity.Book, error) {
	query := `SELECT ` + bookColumns + ` FROM libros`
	args := []any{}
	pos := 1
	if q != "" {
		query += fmt.Sprintf(" WHERE nombre ILIKE $%d", pos)
		args = append(args, "%"+q+"%")
		pos++
	}
	query += fmt.Sprintf(" ORDER BY nombre ASC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list books: %w", err)
	}
	defer rows.Close()
	var list []*entity.Book
	for rows.Next() {
		var b entity.Book
		if err := rows.Scan(&b.ID, &b.Name, &b.Category, &b.Description, &b.Price, &b.Pages, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan book: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update aplica la actualización parcial (solo nombre y precio) y devuelve el libro
// actualizado; nil si no existe.
func (r *BookRepo) Update(ctx context.Context, id string, upd entity.BookUpdate) (*entity.Book, error) {
	query := `
		UPDATE libros
		SET nombre = COALESCE($2, nombre), precio = COALESCE($3, precio)
		WHERE id = $1
		RETURNING ` + bookColumns
	var b entity.Book
	err := r.q.QueryRow(ctx, query, id, upd.Name, upd.Price).Scan(
		&b.ID, &b.Name, &b.Category, &b.Description, &b.Price, &b.Pages, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("update book: %w", err)
	}
	return &b, nil
}

// Delete elimina un libro. El caller decide la política sobre inventario y
// movimientos antes de llamar (ver BookUseCase.Delete).
func (r *BookRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM libros WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.ErrConflict
		}
		return fmt.Errorf("delete book: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
