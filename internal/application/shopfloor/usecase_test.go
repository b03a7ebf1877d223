package shopfloor_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/apptest"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

const (
	badge   = "BADGE101"
	opID1   = "op-1"
	opID2   = "op-2"
	qrOp1   = `{"type":"operation","travel_sheet_id":"ts-1","sequence":10,"process_id":"proc-corte"}`
	qrOp2   = `{"type":"operation","travel_sheet_id":"ts-1","sequence":20,"process_id":"proc-prensa"}`
	poID    = "po-1"
	sheetID = "ts-1"
)

func setup(t *testing.T) (*shopfloor.UseCase, *apptest.Store) {
	t.Helper()
	ctx := context.Background()
	store := apptest.New()
	b := badge
	store.AddUser(entity.User{ID: "user-op1", Username: "operator1", BadgeID: &b, RoleName: entity.RoleOperator, IsActive: true})
	require.NoError(t, store.Orders().Create(ctx, &entity.ProductionOrder{
		ID: poID, PONumber: "PO-1", PartNumberID: "part-1", Quantity: 10, Status: entity.ProductionStatusReleased,
	}))
	require.NoError(t, store.TravelSheets().Create(ctx, &entity.TravelSheet{
		ID: sheetID, TravelSheetNumber: "TS-1", ProductionOrderID: poID, Status: entity.TravelSheetStatusActive,
		Operations: []entity.TravelSheetOperation{
			{ID: opID1, ProcessID: "proc-corte", ProcessName: "Corte", SequenceNumber: 10, QRCode: qrOp1, Status: entity.OperationStatusPending},
			{ID: opID2, ProcessID: "proc-prensa", ProcessName: "Prensa", SequenceNumber: 20, QRCode: qrOp2, Status: entity.OperationStatusPending},
		},
	}))
	return shopfloor.NewUseCase(store, store.TravelSheets(), store.Users(), zerolog.Nop()), store
}

func scan(t *testing.T, uc *shopfloor.UseCase, badgeID, qr string) *dto.QRScanResponse {
	t.Helper()
	res, err := uc.Scan(context.Background(), dto.QRScanRequest{BadgeID: badgeID, QRCode: qr})
	require.NoError(t, err)
	return res
}

// ──────────────────────────────────────────────────────────────────────────────
// Escaneo
// ──────────────────────────────────────────────────────────────────────────────

func TestScan_Rechazos(t *testing.T) {
	uc, _ := setup(t)
	cases := []struct {
		name, badge, qr, msg string
	}{
		{"gafete desconocido", "BADGE999", qrOp1, "Invalid operator badge"},
		{"qr no es json", badge, "not-json", "Invalid QR code format"},
		{"tipo no soportado", badge, `{"type":"travel_sheet","number":"TS-1"}`, "Unsupported QR code type"},
		{"operación inexistente", badge, `{"type":"operation","travel_sheet_id":"x","sequence":1,"process_id":"p"}`, "Operation not found"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			res := scan(t, uc, tc.badge, tc.qr)
			assert.False(t, res.Success)
			assert.Equal(t, tc.msg, res.Message)
			assert.Nil(t, res.OperationID)
		})
	}
}

func TestScan_IniciaYLuegoPideCierre(t *testing.T) {
	uc, store := setup(t)

	res := scan(t, uc, badge, qrOp1)
	assert.True(t, res.Success)
	assert.Equal(t, "Operation started: Corte", res.Message)
	require.NotNil(t, res.Status)
	assert.Equal(t, entity.OperationStatusInProgress, *res.Status)

	op, err := store.TravelSheets().GetOperationByID(context.Background(), opID1)
	require.NoError(t, err)
	require.NotNil(t, op.OperatorID)
	assert.Equal(t, "user-op1", *op.OperatorID)
	assert.NotNil(t, op.StartTime)

	res = scan(t, uc, badge, qrOp1)
	assert.True(t, res.Success)
	assert.Equal(t, "Ready to complete operation", res.Message)
	assert.Equal(t, shopfloor.StatusAwaitingCompletion, *res.Status)
	assert.Equal(t, sheetID, *res.TravelSheetID)
}

func TestScan_OperacionCompletada(t *testing.T) {
	uc, _ := setup(t)
	scan(t, uc, badge, qrOp1)
	_, err := uc.Complete(context.Background(), opID1, dto.CompleteOperationRequest{QuantityGood: 10})
	require.NoError(t, err)

	res := scan(t, uc, badge, qrOp1)
	assert.False(t, res.Success)
	assert.Equal(t, "Operation already Completed", res.Message)
}

// ──────────────────────────────────────────────────────────────────────────────
// Cierre
// ──────────────────────────────────────────────────────────────────────────────

func TestComplete_RequiereEnProceso(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Complete(context.Background(), opID1, dto.CompleteOperationRequest{QuantityGood: 1})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	assert.Equal(t, "Operation is not in progress", err.Error())

	_, err = uc.Complete(context.Background(), "nope", dto.CompleteOperationRequest{})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestComplete_DuracionEnMinutosCompletos(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	scan(t, uc, badge, qrOp1)

	op, err := store.TravelSheets().GetOperationByID(ctx, opID1)
	require.NoError(t, err)
	started := time.Now().UTC().Add(-90*time.Minute - 40*time.Second)
	op.StartTime = &started
	require.NoError(t, store.TravelSheets().UpdateOperation(ctx, op))

	machine := "mach-1"
	res, err := uc.Complete(ctx, opID1, dto.CompleteOperationRequest{QuantityGood: 8, QuantityScrap: 2, MachineID: &machine, OperatorNotes: "ok"})
	require.NoError(t, err)
	assert.True(t, res.Success)
	require.NotNil(t, res.Operation.DurationMinutes)
	assert.Equal(t, 90, *res.Operation.DurationMinutes)
	assert.Equal(t, entity.OperationStatusCompleted, res.Operation.Status)
	assert.Equal(t, 8, res.Operation.QuantityGood)
	assert.Equal(t, "mach-1", *res.Operation.MachineID)
}

func TestComplete_AvanzaHojaYOrden(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()

	scan(t, uc, badge, qrOp1)
	_, err := uc.Complete(ctx, opID1, dto.CompleteOperationRequest{QuantityGood: 10})
	require.NoError(t, err)

	po := store.Order(poID)
	assert.Equal(t, entity.ProductionStatusInProgress, po.Status)
	assert.Zero(t, po.QuantityCompleted, "los contadores los mueve calidad")
	ts, err := store.TravelSheets().GetByID(ctx, sheetID)
	require.NoError(t, err)
	assert.Equal(t, entity.TravelSheetStatusActive, ts.Status)

	scan(t, uc, badge, qrOp2)
	_, err = uc.Complete(ctx, opID2, dto.CompleteOperationRequest{QuantityGood: 10})
	require.NoError(t, err)
	ts, err = store.TravelSheets().GetByID(ctx, sheetID)
	require.NoError(t, err)
	assert.Equal(t, entity.TravelSheetStatusCompleted, ts.Status)
}

func TestComplete_NoRegresaOrdenCompletada(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	po := store.Order(poID)
	po.Status = entity.ProductionStatusCompleted
	require.NoError(t, store.Orders().Update(ctx, &po))

	scan(t, uc, badge, qrOp1)
	_, err := uc.Complete(ctx, opID1, dto.CompleteOperationRequest{QuantityGood: 10})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCompleted, store.Order(poID).Status)
}

func TestGetOperation(t *testing.T) {
	uc, _ := setup(t)
	op, err := uc.GetOperation(context.Background(), opID2)
	require.NoError(t, err)
	assert.Equal(t, "Prensa", op.ProcessName)

	_, err = uc.GetOperation(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
