package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// RawMaterialUseCase CRUD de materias primas. El stock actual solo se mueve a
// través del motor de ajustes; aquí únicamente se fija el valor de creación.
type RawMaterialUseCase struct {
	txRunner     inventory.TxRunner
	materialRepo repository.RawMaterialRepository
	movRepo      repository.RawMaterialMovementRepository
}

// NewRawMaterialUseCase construye el caso de uso de materias primas.
func NewRawMaterialUseCase(txRunner inventory.TxRunner, materialRepo repository.RawMaterialRepository, movRepo repository.RawMaterialMovementRepository) *RawMaterialUseCase {
	return &RawMaterialUseCase{txRunner: txRunner, materialRepo: materialRepo, movRepo: movRepo}
}

// Create registra una materia prima con su stock inicial.
func (uc *RawMaterialUseCase) Create(ctx context.Context, in dto.CreateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	material := &entity.RawMaterial{
		ID:           uuid.New().String(),
		Name:         in.Nombre,
		Unit:         in.Unidad,
		CurrentStock: in.StockActual,
		MinStock:     in.StockMinimo,
	}
	if err := uc.materialRepo.Create(ctx, material); err != nil {
		return nil, err
	}
	return toRawMaterialResponse(material), nil
}

// Get devuelve una materia prima por id.
func (uc *RawMaterialUseCase) Get(ctx context.Context, id string) (*dto.RawMaterialResponse, error) {
	material, err := uc.materialRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toRawMaterialResponse(material), nil
}

// List devuelve las materias primas paginadas.
func (uc *RawMaterialUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.RawMaterialResponse, error) {
	page.DefaultPage()
	materials, err := uc.materialRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.RawMaterialResponse, 0, len(materials))
	for _, m := range materials {
		out = append(out, toRawMaterialResponse(m))
	}
	return out, nil
}

// Update aplica la actualización parcial (nombre, unidad, stock mínimo).
func (uc *RawMaterialUseCase) Update(ctx context.Context, id string, in dto.UpdateRawMaterialRequest) (*dto.RawMaterialResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	if in.Nombre == nil && in.Unidad == nil && in.StockMinimo == nil {
		return nil, domain.ErrInvalidInput
	}
	material, err := uc.materialRepo.Update(ctx, id, entity.RawMaterialUpdate{
		Name:     in.Nombre,
		Unit:     in.Unidad,
		MinStock: in.StockMinimo,
	})
	if err != nil {
		return nil, err
	}
	if material == nil {
		return nil, domain.ErrNotFound
	}
	return toRawMaterialResponse(material), nil
}

// Delete elimina la materia prima. Se rechaza mientras tenga movimientos
// registrados, misma política que los libros: el historial no queda huérfano.
func (uc *RawMaterialUseCase) Delete(ctx context.Context, id string) error {
	return uc.txRunner.RunRawMaterial(ctx, func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.RawMaterialMovementRepository,
	) error {
		material, err := materialRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if material == nil {
			return domain.ErrNotFound
		}
		count, err := movRepo.CountByRawMaterial(ctx, id)
		if err != nil {
			return err
		}
		if count > 0 {
			return domain.ErrHasMovements
		}
		return materialRepo.Delete(ctx, id)
	})
}

func toRawMaterialResponse(m *entity.RawMaterial) *dto.RawMaterialResponse {
	return &dto.RawMaterialResponse{
		ID:          m.ID,
		Nombre:      m.Name,
		Unidad:      m.Unit,
		StockActual: m.CurrentStock,
		StockMinimo: m.MinStock,
	}
}
