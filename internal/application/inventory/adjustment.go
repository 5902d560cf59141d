package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// AdjustmentUseCase aplica ajustes de stock de forma transaccional: resuelve o crea
// la entrada del libro mayor, verifica no-negatividad con la fila bloqueada
// (SELECT FOR UPDATE) y registra el movimiento de auditoría en la misma transacción.
type AdjustmentUseCase struct {
	txRunner TxRunner
	bookRepo repository.BookRepository
	posRepo  repository.PointOfSaleRepository
	userRepo repository.UserRepository
}

// NewAdjustmentUseCase construye el motor de ajustes.
func NewAdjustmentUseCase(
	txRunner TxRunner,
	bookRepo repository.BookRepository,
	posRepo repository.PointOfSaleRepository,
	userRepo repository.UserRepository,
) *AdjustmentUseCase {
	return &AdjustmentUseCase{
		txRunner: txRunner,
		bookRepo: bookRepo,
		posRepo:  posRepo,
		userRepo: userRepo,
	}
}

// AdjustInput entrada para ajustar stock por delta.
// PointOfSaleID en nil apunta a la bodega central. Kind vacío infiere
// entrada/salida según el signo del delta; venta y ajuste se etiquetan explícitos.
// MinStock solo se aplica si la entrada del libro mayor se crea en esta llamada.
type AdjustInput struct {
	BookID        string
	PointOfSaleID *string
	Delta         int
	Kind          string
	UserID        *string
	Note          string
	MinStock      *int
}

// AbsoluteInput entrada para fijar el stock a un valor absoluto (movimiento ajuste).
type AbsoluteInput struct {
	BookID        string
	PointOfSaleID *string
	TargetStock   int
	UserID        *string
	Note          string
}

// AdjustByDelta resuelve (o crea con stock 0) la entrada del par (libro, ubicación),
// aplica el delta y registra el movimiento, todo en una transacción con la fila
// bloqueada. Si el resultado sería negativo la operación completa se aborta:
// ni stock ni movimiento cambian.
func (uc *AdjustmentUseCase) AdjustByDelta(ctx context.Context, in AdjustInput) (*entity.LedgerEntry, error) {
	if in.BookID == "" || in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	kind, err := resolveKind(in.Kind, in.Delta)
	if err != nil {
		return nil, err
	}
	if err := uc.checkRefs(ctx, in.BookID, in.PointOfSaleID, in.UserID); err != nil {
		return nil, err
	}

	var result *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		_ repository.BookRepository,
	) error {
		entry, err := uc.lockOrCreate(ctx, ledgerRepo, in)
		if err != nil {
			return err
		}
		if err := applyDelta(ctx, ledgerRepo, movRepo, entry, in.Delta, kind, in.UserID, in.Note); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustEntryByDelta es AdjustByDelta direccionado por id de entrada del libro mayor
// (POST /inventario-pv/:id/ajustar e /inventario/:id/ajustar).
func (uc *AdjustmentUseCase) AdjustEntryByDelta(ctx context.Context, entryID string, delta int, kindTag string, userID *string, note string) (*entity.LedgerEntry, error) {
	if entryID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	kind, err := resolveKind(kindTag, delta)
	if err != nil {
		return nil, err
	}
	if err := uc.checkActor(ctx, userID); err != nil {
		return nil, err
	}

	var result *entity.LedgerEntry
	err = uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		_ repository.BookRepository,
	) error {
		entry, err := ledgerRepo.GetByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		if err := applyDelta(ctx, ledgerRepo, movRepo, entry, delta, kind, userID, note); err != nil {
			return err
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AddLocationStock siembra (o acumula sobre) la entrada de un punto de venta:
// crea la fila si no existe y, si quantity es mayor que cero, registra la entrada.
// Con quantity 0 solo garantiza que la fila exista.
func (uc *AdjustmentUseCase) AddLocationStock(ctx context.Context, in AdjustInput) (*entity.LedgerEntry, error) {
	if in.BookID == "" || in.PointOfSaleID == nil || *in.PointOfSaleID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.Delta < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.BookID, in.PointOfSaleID, in.UserID); err != nil {
		return nil, err
	}

	var result *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		_ repository.BookRepository,
	) error {
		entry, err := uc.lockOrCreate(ctx, ledgerRepo, in)
		if err != nil {
			return err
		}
		if in.Delta > 0 {
			if err := applyDelta(ctx, ledgerRepo, movRepo, entry, in.Delta, entity.MovementEntrada, in.UserID, in.Note); err != nil {
				return err
			}
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// AdjustToAbsolute fija el stock a TargetStock calculando delta = target - actual
// con la fila bloqueada, y registra un movimiento ajuste con el delta firmado.
// Si el stock ya es el objetivo no hay escritura ni movimiento.
func (uc *AdjustmentUseCase) AdjustToAbsolute(ctx context.Context, in AbsoluteInput) (*entity.LedgerEntry, error) {
	if in.BookID == "" {
		return nil, domain.ErrInvalidInput
	}
	if in.TargetStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkRefs(ctx, in.BookID, in.PointOfSaleID, in.UserID); err != nil {
		return nil, err
	}

	var result *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		_ repository.BookRepository,
	) error {
		entry, err := uc.lockOrCreate(ctx, ledgerRepo, AdjustInput{BookID: in.BookID, PointOfSaleID: in.PointOfSaleID})
		if err != nil {
			return err
		}
		delta := in.TargetStock - entry.Stock
		if delta != 0 {
			if err := applyDelta(ctx, ledgerRepo, movRepo, entry, delta, entity.MovementAjuste, in.UserID, in.Note); err != nil {
				return err
			}
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// SetEntryAbsolute fija el stock de una entrada existente por id (POST /inventario/:id/fijar).
func (uc *AdjustmentUseCase) SetEntryAbsolute(ctx context.Context, entryID string, target int, userID *string, note string) (*entity.LedgerEntry, error) {
	if entryID == "" {
		return nil, domain.ErrInvalidInput
	}
	if target < 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkActor(ctx, userID); err != nil {
		return nil, err
	}

	var result *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		_ repository.BookRepository,
	) error {
		entry, err := ledgerRepo.GetByIDForUpdate(ctx, entryID)
		if err != nil {
			return err
		}
		if entry == nil {
			return domain.ErrNotFound
		}
		delta := target - entry.Stock
		if delta != 0 {
			if err := applyDelta(ctx, ledgerRepo, movRepo, entry, delta, entity.MovementAjuste, userID, note); err != nil {
				return err
			}
		}
		result = entry
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// lockOrCreate obtiene la entrada bloqueada del par (libro, ubicación), creándola
// con stock 0 si no existe. La inserción usa ON CONFLICT DO NOTHING y se relee con
// FOR UPDATE: una carrera de creación concurrente converge a una sola fila.
func (uc *AdjustmentUseCase) lockOrCreate(ctx context.Context, ledgerRepo repository.LedgerRepository, in AdjustInput) (*entity.LedgerEntry, error) {
	entry, err := ledgerRepo.GetForUpdate(ctx, in.BookID, in.PointOfSaleID)
	if err != nil {
		return nil, err
	}
	if entry != nil {
		return entry, nil
	}
	fresh := &entity.LedgerEntry{
		ID:            uuid.New().String(),
		BookID:        in.BookID,
		PointOfSaleID: in.PointOfSaleID,
		Stock:         0,
		MinStock:      in.MinStock,
		UpdatedAt:     time.Now(),
	}
	if err := ledgerRepo.CreateIfAbsent(ctx, fresh); err != nil {
		return nil, err
	}
	entry, err = ledgerRepo.GetForUpdate(ctx, in.BookID, in.PointOfSaleID)
	if err != nil {
		return nil, err
	}
	if entry == nil {
		return nil, domain.ErrNotFound
	}
	return entry, nil
}

// applyDelta verifica no-negatividad, persiste el nuevo stock y registra el
// movimiento. Debe llamarse con la fila de entry ya bloqueada por la transacción.
func applyDelta(
	ctx context.Context,
	ledgerRepo repository.LedgerRepository,
	movRepo repository.BookMovementRepository,
	entry *entity.LedgerEntry,
	delta int,
	kind string,
	userID *string,
	note string,
) error {
	newStock := entry.Stock + delta
	if newStock < 0 {
		return domain.ErrNegativeStock
	}
	if err := ledgerRepo.UpdateStock(ctx, entry.ID, newStock); err != nil {
		return err
	}
	now := time.Now()
	mov := &entity.BookMovement{
		ID:            uuid.New().String(),
		LedgerEntryID: entry.ID,
		Kind:          kind,
		Quantity:      movementQuantity(kind, delta),
		UserID:        userID,
		Note:          note,
		CreatedAt:     now,
	}
	if err := movRepo.Create(ctx, mov); err != nil {
		return err
	}
	entry.Stock = newStock
	entry.UpdatedAt = now
	return nil
}

// resolveKind valida la etiqueta explícita o infiere el tipo desde el signo:
// delta > 0 entrada, delta < 0 salida. venta exige delta negativo.
func resolveKind(tag string, delta int) (string, error) {
	switch tag {
	case "":
		if delta > 0 {
			return entity.MovementEntrada, nil
		}
		return entity.MovementSalida, nil
	case entity.MovementVenta:
		if delta >= 0 {
			return "", domain.ErrInvalidInput
		}
		return entity.MovementVenta, nil
	case entity.MovementAjuste:
		return entity.MovementAjuste, nil
	default:
		return "", domain.ErrInvalidInput
	}
}

// movementQuantity aplica la convención de signos del log: magnitud positiva para
// entrada/salida/venta, delta firmado para ajuste.
func movementQuantity(kind string, delta int) int {
	if kind == entity.MovementAjuste {
		return delta
	}
	if delta < 0 {
		return -delta
	}
	return delta
}

// checkRefs valida que libro, punto de venta y actor referenciados existan.
func (uc *AdjustmentUseCase) checkRefs(ctx context.Context, bookID string, posID, userID *string) error {
	book, err := uc.bookRepo.GetByID(ctx, bookID)
	if err != nil {
		return err
	}
	if book == nil {
		return domain.ErrNotFound
	}
	if posID != nil {
		pos, err := uc.posRepo.GetByID(ctx, *posID)
		if err != nil {
			return err
		}
		if pos == nil {
			return domain.ErrNotFound
		}
	}
	return uc.checkActor(ctx, userID)
}

func (uc *AdjustmentUseCase) checkActor(ctx context.Context, userID *string) error {
	if userID == nil {
		return nil
	}
	user, err := uc.userRepo.GetByID(ctx, *userID)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUserNotFound
	}
	return nil
}
