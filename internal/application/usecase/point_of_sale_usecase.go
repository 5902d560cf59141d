package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/libreria-api/internal/application/dto"
	"github.com/jhoicas/libreria-api/internal/domain"
	"github.com/jhoicas/libreria-api/internal/domain/entity"
	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// PointOfSaleUseCase alta y consulta de puntos de venta (entidad de referencia).
type PointOfSaleUseCase struct {
	posRepo repository.PointOfSaleRepository
}

// NewPointOfSaleUseCase construye el caso de uso de puntos de venta.
func NewPointOfSaleUseCase(posRepo repository.PointOfSaleRepository) *PointOfSaleUseCase {
	return &PointOfSaleUseCase{posRepo: posRepo}
}

// Create registra un punto de venta.
func (uc *PointOfSaleUseCase) Create(ctx context.Context, in dto.CreatePointOfSaleRequest) (*dto.PointOfSaleResponse, error) {
	if err := dto.Validate(in); err != nil {
		return nil, domain.ErrInvalidInput
	}
	pos := &entity.PointOfSale{
		ID:       uuid.New().String(),
		Name:     in.Nombre,
		Location: in.Ubicacion,
		Type:     in.Tipo,
	}
	if err := uc.posRepo.Create(ctx, pos); err != nil {
		return nil, err
	}
	return toPointOfSaleResponse(pos), nil
}

// Get devuelve un punto de venta por id.
func (uc *PointOfSaleUseCase) Get(ctx context.Context, id string) (*dto.PointOfSaleResponse, error) {
	pos, err := uc.posRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if pos == nil {
		return nil, domain.ErrNotFound
	}
	return toPointOfSaleResponse(pos), nil
}

// List devuelve los puntos de venta paginados.
func (uc *PointOfSaleUseCase) List(ctx context.Context, page dto.PageRequest) ([]*dto.PointOfSaleResponse, error) {
	page.DefaultPage()
	list, err := uc.posRepo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]*dto.PointOfSaleResponse, 0, len(list))
	for _, p := range list {
		out = append(out, toPointOfSaleResponse(p))
	}
	return out, nil
}

func toPointOfSaleResponse(p *entity.PointOfSale) *dto.PointOfSaleResponse {
	return &dto.PointOfSaleResponse{
		ID:        p.ID,
		Nombre:    p.Name,
		Ubicacion: p.Location,
		Tipo:      p.Type,
	}
}
