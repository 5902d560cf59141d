package inventory_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/libreria-api/internal/application/inventory"
	"github.com/jhoicas/libreria-api/internal/domain"
)

func TestTotalStock_LibroSinEntradas_EsCero(t *testing.T) {
	f := newFixture(t)

	total, err := f.queryUC.TotalStock(context.Background(), f.bookID)
	require.NoError(t, err)
	assert.Equal(t, 0, total, "sin entradas el total es cero, no error")

	_, err = f.queryUC.TotalStock(context.Background(), uuid.New().String())
	assert.ErrorIs(t, err, domain.ErrNotFound, "libro inexistente sí es error")
}

func TestListGlobalYLocations_SeparanPorUbicacion(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.adjustUC.AdjustByDelta(ctx, inventory.AdjustInput{BookID: f.bookID, Delta: 4})
	require.NoError(t, err)
	_, err = f.adjustUC.AdjustByDelta(ctx, inventory.AdjustInput{BookID: f.bookID, PointOfSaleID: &f.posID, Delta: 6})
	require.NoError(t, err)

	global, err := f.queryUC.ListGlobal(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, global, 1)
	assert.Nil(t, global[0].PointOfSaleID)
	assert.Equal(t, 4, global[0].Stock)
	assert.Equal(t, "Cien años de soledad", global[0].BookName, "el listado enriquece con el nombre del libro")

	locations, err := f.queryUC.ListLocations(ctx, 100, 0)
	require.NoError(t, err)
	require.Len(t, locations, 1)
	require.NotNil(t, locations[0].PointOfSaleID)
	assert.Equal(t, f.posID, *locations[0].PointOfSaleID)
	require.NotNil(t, locations[0].PointOfSaleName)
	assert.Equal(t, "Sucursal Centro", *locations[0].PointOfSaleName)
}

func TestListMovementsByBook_FiltraPorLibro(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.adjustUC.AdjustByDelta(ctx, inventory.AdjustInput{BookID: f.bookID, Delta: 4})
	require.NoError(t, err)
	_, err = f.adjustUC.AdjustByDelta(ctx, inventory.AdjustInput{BookID: f.bookID, PointOfSaleID: &f.posID, Delta: 2})
	require.NoError(t, err)

	movs, err := f.queryUC.ListMovementsByBook(ctx, f.bookID, 100, 0)
	require.NoError(t, err)
	assert.Len(t, movs, 2, "incluye movimientos de todas las ubicaciones del libro")

	_, err = f.queryUC.ListMovementsByBook(ctx, uuid.New().String(), 100, 0)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
