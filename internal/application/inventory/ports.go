package inventory

import (
	"context"

	"github.com/jhoicas/libreria-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza la atomicidad del motor de ajustes: la escritura del
// libro mayor y el registro del movimiento se confirman juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		ledgerRepo repository.LedgerRepository,
		movRepo repository.BookMovementRepository,
		bookRepo repository.BookRepository,
	) error) error

	RunRawMaterial(ctx context.Context, fn func(
		materialRepo repository.RawMaterialRepository,
		movRepo repository.RawMaterialMovementRepository,
	) error) error
}
