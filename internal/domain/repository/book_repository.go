package repository

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// BookRepository define el puerto de persistencia para Book (DIP).
type BookRepository interface {
	Create(ctx context.Context, book *entity.Book) error
	GetByID(ctx context.Context, id string) (*entity.Book, error)
	// List filtra por nombre (contiene, case-insensitive) cuando q no es vacío.
	List(ctx context.Context, q string, limit, offset int) ([]*entity.Book, error)
	Update(ctx context.Context, id string, upd entity.BookUpdate) (*entity.Book, error)
	Delete(ctx context.Context, id string) error
}
