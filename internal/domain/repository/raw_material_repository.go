package repository

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain/entity"
)

// RawMaterialRepository define el puerto de persistencia para RawMaterial.
// UpdateStock existe separado de Update: el stock actual solo lo escribe el
// motor de ajustes, bajo bloqueo de fila.
type RawMaterialRepository interface {
	Create(ctx context.Context, material *entity.RawMaterial) error
	GetByID(ctx context.Context, id string) (*entity.RawMaterial, error)
	GetByIDForUpdate(ctx context.Context, id string) (*entity.RawMaterial, error)
	List(ctx context.Context, limit, offset int) ([]*entity.RawMaterial, error)
	Update(ctx context.Context, id string, upd entity.RawMaterialUpdate) (*entity.RawMaterial, error)
	UpdateStock(ctx context.Context, id string, stock int) error
	Delete(ctx context.Context, id string) error
}
