package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// ReceiveRawMaterial registra una entrada de materia prima: suma cantidad al stock
// actual y apendiza el movimiento entrada, en una transacción con la fila bloqueada.
// El actor es obligatorio y debe existir.
func (uc *AdjustmentUseCase) ReceiveRawMaterial(ctx context.Context, materialID string, quantity int, userID string, note string) (*entity.RawMaterial, error) {
	if materialID == "" || quantity <= 0 || userID == "" {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkActor(ctx, &userID); err != nil {
		return nil, err
	}
	return uc.applyRawMaterialDelta(ctx, materialID, quantity, entity.MovementEntrada, &userID, note)
}

// AdjustRawMaterial aplica una corrección manual (ajuste) con delta firmado.
// El stock resultante nunca puede quedar negativo.
func (uc *AdjustmentUseCase) AdjustRawMaterial(ctx context.Context, materialID string, delta int, userID *string, note string) (*entity.RawMaterial, error) {
	if materialID == "" || delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkActor(ctx, userID); err != nil {
		return nil, err
	}
	return uc.applyRawMaterialDelta(ctx, materialID, delta, entity.MovementAjuste, userID, note)
}

// ConsumeRawMaterial registra una salida (consumo en producción).
func (uc *AdjustmentUseCase) ConsumeRawMaterial(ctx context.Context, materialID string, quantity int, userID *string, note string) (*entity.RawMaterial, error) {
	if materialID == "" || quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := uc.checkActor(ctx, userID); err != nil {
		return nil, err
	}
	return uc.applyRawMaterialDelta(ctx, materialID, -quantity, entity.MovementSalida, userID, note)
}

func (uc *AdjustmentUseCase) applyRawMaterialDelta(ctx context.Context, materialID string, delta int, kind string, userID *string, note string) (*entity.RawMaterial, error) {
	var result *entity.RawMaterial
	err := uc.txRunner.RunRawMaterial(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.RawMaterialMovementRepository,
	) error {
		material, err := materialRepo.GetByIDForUpdate(ctx, materialID)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		newStock := material.CurrentStock + delta
		if newStock < 0 {
			return domain.ErrNegativeStock
		}
		if err := materialRepo.UpdateStock(ctx, material.ID, newStock); err != nil {
			return err
		}
		mov := &entity.RawMaterialMovement{
			ID:            uuid.New().String(),
			RawMaterialID: material.ID,
			Kind:          kind,
			Quantity:      movementQuantity(kind, delta),
			UserID:        userID,
			Note:          note,
			CreatedAt:     time.Now(),
		}
		if err := movRepo.Create(ctx, mov); err != nil {
			return err
		}
		material.CurrentStock = newStock
		result = material
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}
