package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// BookUseCase CRUD de libros. Crear y borrar tocan también el libro mayor de stock,
// por lo que corren dentro del TxRunner (una transacción por operación lógica).
type BookUseCase struct {
	txRunner   inventory.TxRunner
	bookRepo   repository.BookRepository
	ledgerRepo repository.LedgerRepository
}

// NewBookUseCase construye el caso de uso de libros.
func NewBookUseCase(txRunner inventory.TxRunner, bookRepo repository.BookRepository, ledgerRepo repository.LedgerRepository) *BookUseCase {
	return &BookUseCase{txRunner: txRunner, bookRepo: bookRepo, ledgerRepo: ledgerRepo}
}

// Create crea el libro y siembra su entrada global del libro mayor con la cantidad
// inicial solicitada, en una sola transacción. Si la cantidad es mayor que cero se
// registra el movimiento entrada que establece la línea base auditable.
func (uc *BookUseCase) Create(ctx context.Context, in dto.CreateBookRequest) (*dto.BookResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	price := decimal.Zero
	if in.Precio != nil {
		price = *in.Precio
	}
	now := time.Now()
	book := &entity.Book{
		ID:          uuid.New().String(),
		Name:        in.Nombre,
		Category:    in.Categoria,
		Description: in.Descripcion,
		Price:       price,
		Pages:       in.PaginasPorLibro,
		CreatedAt:   now,
	}

	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		bookRepo repository.BookRepository,
	) error {
		if err := bookRepo.Create(ctx, book); err != nil {
			return err
		}
		entry := &entity.LedgerEntry{
			ID:        uuid.New().String(),
			BookID:    book.ID,
			Stock:     in.CantidadLibros,
			UpdatedAt: now,
		}
		if err := ledgerRepo.CreateIfAbsent(ctx, entry); err != nil {
			return err
		}
		if in.CantidadLibros > 0 {
			mov := &entity.BookMovement{
				ID:            uuid.New().String(),
				LedgerEntryID: entry.ID,
				Kind:          entity.MovementEntrada,
				Quantity:      in.CantidadLibros,
				Note:          "stock inicial",
				CreatedAt:     now,
			}
			if err := movRepo.Create(ctx, mov); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toBookResponse(book, in.CantidadLibros), nil
}

// Get devuelve un libro con su stock total agregado.
func (uc *BookUseCase) Get(ctx context.Context, id string) (*dto.BookResponse, error) {
	book, err := uc.bookRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.ledgerRepo.TotalStock(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(book, total), nil
}

// List devuelve los libros (filtro opcional por nombre) con sus stocks totales.
func (uc *BookUseCase) List(ctx context.Context, q string, page dto.PageRequest) ([]*dto.BookResponse, error) {
	page.DefaultPage()
	books, err := uc.bookRepo.List(ctx, q, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.BookResponse, 0, len(books))
	for _, b := range books {
		total, err := uc.ledgerRepo.TotalStock(ctx, b.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, toBookResponse(b, total))
	}
	return out, nil
}

// Update aplica la actualización parcial (solo nombre y precio son mutables).
func (uc *BookUseCase) Update(ctx context.Context, id string, in dto.UpdateBookRequest) (*dto.BookResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Nombre == nil && in.Precio == nil {
		return nil, domain.ErrInvalidInput
	}
	book, err := uc.bookRepo.Update(ctx, id, entity.BookUpdate{Name: in.Nombre, Price: in.Precio})
	if err != nil {
		return nil, err
	}
	if book == nil {
		return nil, domain.ErrNotFound
	}
	total, err := uc.ledgerRepo.TotalStock(ctx, id)
	if err != nil {
		return nil, err
	}
	return toBookResponse(book, total), nil
}

// Delete elimina el libro y sus entradas del libro mayor en una transacción.
// Política: se rechaza con ErrHasMovements mientras existan movimientos que
// referencien entradas del libro — el historial de auditoría nunca queda huérfano.
func (uc *BookUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		bookRepo repository.BookRepository,
	) error {
		book, err := bookRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if book == nil {
			return domain.ErrNotFound
		}
		count, err := movRepo.CountByBook(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasMovements
		}
		if err := ledgerRepo.DeleteByBook(ctx, id); err != nil {
			return err
		}
		return bookRepo.Delete(ctx, id)
	})
}

func toBookResponse(b *entity.Book, total int) *dto.BookResponse {
	return &dto.BookResponse{
		ID:          b.ID,
		Nombre:      b.Name,
		Categoria:   b.Category,
		Descripcion: b.Description,
		Precio:      b.Price,
		Paginas:     b.Pages,
		StockTotal:  total,
		CreatedAt:   b.CreatedAt,
	}
}
