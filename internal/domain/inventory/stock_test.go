package inventory_test

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/inventory"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestStockDelta_Signos(t *testing.T) {
	got, err := inventory.StockDelta(entity.MovementTypeReceipt, d("25.5"))
	require.NoError(t, err)
	assert.True(t, d("25.5").Equal(got))

	got, err = inventory.StockDelta(entity.MovementTypeIssue, d("10"))
	require.NoError(t, err)
	assert.True(t, d("-10").Equal(got))

	got, err = inventory.StockDelta(entity.MovementTypeReturn, d("3"))
	require.NoError(t, err)
	assert.True(t, d("3").Equal(got))

	got, err = inventory.StockDelta(entity.MovementTypeAdjustment, d("-4"))
	require.NoError(t, err)
	assert.True(t, d("-4").Equal(got))
}

func TestStockDelta_Invalidos(t *testing.T) {
	_, err := inventory.StockDelta(entity.MovementTypeIssue, d("-1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.StockDelta(entity.MovementTypeAdjustment, decimal.Zero)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))

	_, err = inventory.StockDelta("Transfer", d("1"))
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestCheckBatch(t *testing.T) {
	assert.NoError(t, inventory.CheckBatch(d("10"), d("-10")))
	assert.NoError(t, inventory.CheckBatch(d("0"), d("5")), "entradas no se validan contra el lote")

	err := inventory.CheckBatch(d("7.5"), d("-8"))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Contains(t, err.Error(), "Insufficient quantity in batch. Available: 7.50")
}

func TestIsBelowMinimum(t *testing.T) {
	minimum := d("100")
	m := &entity.Material{CurrentStock: d("99"), MinimumStock: &minimum}
	assert.True(t, inventory.IsBelowMinimum(m))

	m.CurrentStock = d("100")
	assert.False(t, inventory.IsBelowMinimum(m))

	m.MinimumStock = nil
	assert.False(t, inventory.IsBelowMinimum(m))
}
