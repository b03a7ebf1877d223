package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/apptest"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/inventory"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

const (
	materialID = "mat-acero"
	userID     = "user-almacen"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func setup(t *testing.T) (*inventory.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.New()
	minStock := d("50")
	store.AddMaterial(entity.Material{ID: materialID, Name: "Acero 1018", Unit: "kg", CurrentStock: d("0"), MinimumStock: &minStock, IsActive: true})
	uc := inventory.NewUseCase(store, store.Movements(), zerolog.Nop())
	return uc, store
}

func receive(t *testing.T, uc *inventory.UseCase, number, qty string) *dto.InventoryBatchResponse {
	t.Helper()
	res, err := uc.ReceiveBatch(context.Background(), userID, dto.ReceiveBatchRequest{
		BatchNumber: number,
		MaterialID:  materialID,
		HeatNumber:  "H-778",
		Quantity:    d(qty),
	})
	require.NoError(t, err)
	return res
}

func strPtr(s string) *string { return &s }

// ──────────────────────────────────────────────────────────────────────────────
// Recepción de lotes
// ──────────────────────────────────────────────────────────────────────────────

func TestReceiveBatch_SumaExistenciaYRegistraReceipt(t *testing.T) {
	uc, store := setup(t)

	res := receive(t, uc, "LOT-001", "120")

	assert.True(t, d("120").Equal(res.RemainingQuantity))
	assert.Equal(t, "kg", res.Unit)
	assert.True(t, d("120").Equal(store.Material(materialID).CurrentStock))
	movs := store.AllMovements()
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeReceipt, movs[0].MovementType)
	assert.Equal(t, entity.ReferenceInventoryBatch, movs[0].ReferenceType)
	require.NotNil(t, movs[0].ReferenceID)
	assert.Equal(t, res.ID, *movs[0].ReferenceID)
	assert.Equal(t, "Material receipt - Batch LOT-001", movs[0].Notes)
}

func TestReceiveBatch_NumeroDuplicado(t *testing.T) {
	uc, store := setup(t)
	receive(t, uc, "LOT-001", "10")

	_, err := uc.ReceiveBatch(context.Background(), userID, dto.ReceiveBatchRequest{
		BatchNumber: "LOT-001", MaterialID: materialID, Quantity: d("5"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, "Batch number already exists", err.Error())
	assert.True(t, d("10").Equal(store.Material(materialID).CurrentStock))
	assert.Len(t, store.AllMovements(), 1)
}

func TestReceiveBatch_MaterialInexistente(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.ReceiveBatch(context.Background(), userID, dto.ReceiveBatchRequest{
		BatchNumber: "LOT-X", MaterialID: "nope", Quantity: d("5"),
	})

	require.Error(t, err)
	assert.Equal(t, "Material not found", err.Error())
}

func TestReceiveBatch_CantidadNoPositiva(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.ReceiveBatch(context.Background(), userID, dto.ReceiveBatchRequest{
		BatchNumber: "LOT-X", MaterialID: materialID, Quantity: d("0"),
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Movimientos
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterMovement_IssueRestaMaterialYLote(t *testing.T) {
	uc, store := setup(t)
	batch := receive(t, uc, "LOT-001", "100")

	res, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIssue,
		MaterialID:   materialID,
		BatchID:      &batch.ID,
		Quantity:     d("60"),
	})

	require.NoError(t, err)
	require.NotNil(t, res.MaterialStock)
	assert.True(t, d("40").Equal(*res.MaterialStock))
	assert.True(t, res.BelowMinimum)
	assert.True(t, d("40").Equal(store.Batch(batch.ID).RemainingQuantity))
}

func TestRegisterMovement_IssueExcedeLote(t *testing.T) {
	uc, store := setup(t)
	batch := receive(t, uc, "LOT-001", "30")

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIssue,
		MaterialID:   materialID,
		BatchID:      &batch.ID,
		Quantity:     d("31"),
	})

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.Equal(t, "Insufficient quantity in batch. Available: 30.00", err.Error())
	assert.True(t, d("30").Equal(store.Material(materialID).CurrentStock))
	assert.Len(t, store.AllMovements(), 1)
}

func TestRegisterMovement_AjusteConSigno(t *testing.T) {
	uc, store := setup(t)
	batch := receive(t, uc, "LOT-001", "80")

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeAdjustment, MaterialID: materialID, BatchID: &batch.ID, Quantity: d("-5"),
	})
	require.NoError(t, err)
	_, err = uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeAdjustment, MaterialID: materialID, BatchID: &batch.ID, Quantity: d("-76"),
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	assert.True(t, d("75").Equal(store.Material(materialID).CurrentStock))
	assert.True(t, d("75").Equal(store.Batch(batch.ID).RemainingQuantity))
}

func TestRegisterMovement_ReturnSinLote(t *testing.T) {
	uc, store := setup(t)

	res, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeReturn, MaterialID: materialID, Quantity: d("70"), BatchID: strPtr(""),
	})

	require.NoError(t, err)
	assert.Nil(t, res.BatchID)
	assert.False(t, res.BelowMinimum)
	assert.True(t, d("70").Equal(store.Material(materialID).CurrentStock))
}

func TestRegisterMovement_LoteDeOtroMaterial(t *testing.T) {
	uc, store := setup(t)
	store.AddMaterial(entity.Material{ID: "mat-alum", Name: "Aluminio", Unit: "kg", IsActive: true})
	batch := receive(t, uc, "LOT-001", "10")

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIssue, MaterialID: "mat-alum", BatchID: &batch.ID, Quantity: d("1"),
	})

	require.Error(t, err)
	assert.Equal(t, "Batch does not belong to the specified material", err.Error())
}

func TestRegisterMovement_TipoInvalido(t *testing.T) {
	uc, _ := setup(t)

	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: "Transfer", MaterialID: materialID, Quantity: d("1"),
	})

	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

// ──────────────────────────────────────────────────────────────────────────────
// Entrega a producción
// ──────────────────────────────────────────────────────────────────────────────

func seedOrder(t *testing.T, store *apptest.Store) string {
	t.Helper()
	po := &entity.ProductionOrder{ID: "po-1", PONumber: "PO-20250301-AB12CD34", Status: entity.ProductionStatusInProgress, Quantity: 100}
	require.NoError(t, store.Orders().Create(context.Background(), po))
	return po.ID
}

func TestIssueToProduction_NotaPorDefecto(t *testing.T) {
	uc, store := setup(t)
	poID := seedOrder(t, store)
	batch := receive(t, uc, "LOT-001", "100")

	res, err := uc.IssueToProduction(context.Background(), userID, dto.IssueToProductionRequest{
		ProductionOrderID: poID, MaterialID: materialID, BatchID: batch.ID, Quantity: d("25"),
	})

	require.NoError(t, err)
	assert.Equal(t, entity.MovementTypeIssue, res.MovementType)
	assert.Equal(t, entity.ReferenceProductionOrder, res.ReferenceType)
	assert.Equal(t, "Material issued to PO PO-20250301-AB12CD34", res.Notes)
	assert.True(t, d("75").Equal(store.Batch(batch.ID).RemainingQuantity))
	assert.True(t, d("75").Equal(store.Material(materialID).CurrentStock))
}

func TestIssueToProduction_LoteInsuficiente(t *testing.T) {
	uc, store := setup(t)
	poID := seedOrder(t, store)
	batch := receive(t, uc, "LOT-001", "10")

	_, err := uc.IssueToProduction(context.Background(), userID, dto.IssueToProductionRequest{
		ProductionOrderID: poID, MaterialID: materialID, BatchID: batch.ID, Quantity: d("12.5"),
	})

	require.Error(t, err)
	assert.Equal(t, "Insufficient quantity in batch. Available: 10.00, Requested: 12.50", err.Error())
	assert.True(t, d("10").Equal(store.Batch(batch.ID).RemainingQuantity))
}

func TestIssueToProduction_OrdenInexistente(t *testing.T) {
	uc, _ := setup(t)
	batch := receive(t, uc, "LOT-001", "10")

	_, err := uc.IssueToProduction(context.Background(), userID, dto.IssueToProductionRequest{
		ProductionOrderID: "nope", MaterialID: materialID, BatchID: batch.ID, Quantity: d("1"),
	})

	require.Error(t, err)
	assert.Equal(t, "Production order not found", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Kardex
// ──────────────────────────────────────────────────────────────────────────────

func TestListMovements_FiltroPorTipo(t *testing.T) {
	uc, _ := setup(t)
	batch := receive(t, uc, "LOT-001", "100")
	receive(t, uc, "LOT-002", "20")
	_, err := uc.RegisterMovement(context.Background(), userID, dto.RegisterMovementRequest{
		MovementType: entity.MovementTypeIssue, MaterialID: materialID, BatchID: &batch.ID, Quantity: d("5"),
	})
	require.NoError(t, err)

	all, err := uc.ListMovements(context.Background(), dto.MovementFilter{MaterialID: materialID})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, entity.MovementTypeIssue, all[0].MovementType)
	assert.Nil(t, all[0].MaterialStock)

	receipts, err := uc.ListMovements(context.Background(), dto.MovementFilter{MovementType: entity.MovementTypeReceipt})
	require.NoError(t, err)
	assert.Len(t, receipts, 2)
}
