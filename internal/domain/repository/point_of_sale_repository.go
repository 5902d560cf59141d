package repository

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// PointOfSaleRepository define el puerto de persistencia para PointOfSale.
type PointOfSaleRepository interface {
	Create(ctx context.Context, pos *entity.PointOfSale) error
	GetByID(ctx context.Context, id string) (*entity.PointOfSale, error)
	List(ctx context.Context, limit, offset int) ([]*entity.PointOfSale, error)
}
