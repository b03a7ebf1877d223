package production_test

import (
	"context"
	"encoding/json"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/apptest"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

type fakePDF struct {
	doc dto.TravelSheetDocument
}

func (f *fakePDF) GenerateTravelSheetPDF(_ context.Context, doc dto.TravelSheetDocument) ([]byte, error) {
	f.doc = doc
	return []byte("%PDF-1.3"), nil
}

const (
	partID   = "part-1"
	bareID   = "part-sin-ruta"
	userID   = "user-planner"
	wcCorte  = "wc-corte"
	wcPrensa = "wc-prensa"
)

func setup(t *testing.T) (*production.UseCase, *apptest.Store, *fakePDF) {
	t.Helper()
	store := apptest.New()
	std := decimal.NewFromFloat(2.5)
	corte, prensa := wcCorte, wcPrensa
	store.AddPart(entity.PartNumber{ID: partID, PartNumber: "11-1628-01", Description: "Soporte", IsActive: true},
		entity.PartRouting{ID: "r-2", ProcessID: "proc-prensa", ProcessName: "Prensa", WorkCenterID: &prensa, SequenceNumber: 20},
		entity.PartRouting{ID: "r-1", ProcessID: "proc-corte", ProcessName: "Corte", WorkCenterID: &corte, SequenceNumber: 10, StandardTimeMinutes: &std},
	)
	store.AddPart(entity.PartNumber{ID: bareID, PartNumber: "99-0000-00", IsActive: true})
	pdf := &fakePDF{}
	uc := production.NewUseCase(store, store.Orders(), store.Inspections(), store.TravelSheets(), store.Parts(), pdf, 3, zerolog.Nop())
	return uc, store, pdf
}

func create(t *testing.T, uc *production.UseCase, part string, qty int, due *string) *dto.ProductionOrderResponse {
	t.Helper()
	res, err := uc.Create(context.Background(), userID, dto.CreateProductionOrderRequest{PartNumberID: part, Quantity: qty, DueDate: due})
	require.NoError(t, err)
	return res
}

func day(offset int) *string {
	s := time.Now().AddDate(0, 0, offset).Format(dto.DateLayout)
	return &s
}

// ──────────────────────────────────────────────────────────────────────────────
// Órdenes
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_ValoresIniciales(t *testing.T) {
	uc, _, _ := setup(t)
	res := create(t, uc, partID, 100, day(10))

	assert.Regexp(t, regexp.MustCompile(`^PO-\d{14}-[0-9A-F]{8}$`), res.PONumber)
	assert.Equal(t, entity.ProductionStatusCreated, res.Status)
	assert.Equal(t, entity.PriorityNormal, res.Priority)
	assert.Zero(t, res.QuantityCompleted)
	assert.Equal(t, "Green", res.RiskStatus)
	assert.Equal(t, 0.0, res.CompletionPercentage)
}

func TestCreate_ParteInexistente(t *testing.T) {
	uc, _, _ := setup(t)
	_, err := uc.Create(context.Background(), userID, dto.CreateProductionOrderRequest{PartNumberID: "nope", Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, "Part number not found", err.Error())
}

func TestGet_SemaforoSegunFecha(t *testing.T) {
	uc, _, _ := setup(t)
	ctx := context.Background()

	late := create(t, uc, partID, 10, day(-1))
	soon := create(t, uc, partID, 10, day(3))
	none := create(t, uc, partID, 10, nil)

	for id, want := range map[string]string{late.ID: "Red", soon.ID: "Yellow", none.ID: "Yellow"} {
		got, err := uc.Get(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, want, got.RiskStatus)
	}
}

func TestUpdate_AsignaCamposSinTocarContadores(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	po := create(t, uc, partID, 100, nil)

	stored := store.Order(po.ID)
	stored.QuantityCompleted = 40
	require.NoError(t, store.Orders().Update(ctx, &stored))

	status, qty := entity.ProductionStatusCancelled, 120
	res, err := uc.Update(ctx, po.ID, dto.UpdateProductionOrderRequest{Status: &status, Quantity: &qty, DueDate: day(2)})
	require.NoError(t, err)
	assert.Equal(t, entity.ProductionStatusCancelled, res.Status)
	assert.Equal(t, 120, res.Quantity)
	assert.Equal(t, 40, res.QuantityCompleted)
	assert.Equal(t, "Yellow", res.RiskStatus, "Cancelled no es terminal para el semáforo")

	bad := "Paused"
	_, err = uc.Update(ctx, po.ID, dto.UpdateProductionOrderRequest{Status: &bad})
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestVerifyYReconcile(t *testing.T) {
	uc, store, _ := setup(t)
	ctx := context.Background()
	po := create(t, uc, partID, 100, nil)
	require.NoError(t, store.Inspections().Create(ctx, &entity.QualityInspection{
		ProductionOrderID: po.ID, Status: entity.InspectionStatusReleased, QuantityApproved: 30, QuantityRejected: 2,
	}))
	require.NoError(t, store.Inspections().Create(ctx, &entity.QualityInspection{
		ProductionOrderID: po.ID, Status: entity.InspectionStatusRejected, QuantityApproved: 9, QuantityRejected: 5,
	}))

	v, err := uc.Verify(ctx, po.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, v.InspectionCount)
	assert.Equal(t, 30, v.Calculated.QuantityCompleted)
	assert.Equal(t, 7, v.Calculated.QuantityScrapped)
	assert.False(t, v.CompletedMatches)
	assert.False(t, v.Reconciled)

	r, err := uc.Reconcile(ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, r.Reconciled)
	got := store.Order(po.ID)
	assert.Equal(t, 30, got.QuantityCompleted)
	assert.Equal(t, 7, got.QuantityScrapped)
	assert.Equal(t, entity.ProductionStatusCreated, got.Status, "reconciliar no cambia el estado")

	v, err = uc.Verify(ctx, po.ID)
	require.NoError(t, err)
	assert.True(t, v.CompletedMatches && v.ScrappedMatches)
}

// ──────────────────────────────────────────────────────────────────────────────
// Hojas viajeras
// ──────────────────────────────────────────────────────────────────────────────

func TestGenerateTravelSheet_DesdeLaRuta(t *testing.T) {
	uc, _, _ := setup(t)
	po := create(t, uc, partID, 250, nil)

	ts, err := uc.GenerateTravelSheet(context.Background(), po.ID, dto.CreateTravelSheetRequest{BatchNumber: "L-01"})
	require.NoError(t, err)
	assert.Regexp(t, regexp.MustCompile(`^TS-\d{14}-[0-9A-F]{8}$`), ts.TravelSheetNumber)
	assert.Equal(t, entity.TravelSheetStatusActive, ts.Status)

	var head entity.TravelSheetQR
	require.NoError(t, json.Unmarshal([]byte(ts.QRCode), &head))
	assert.Equal(t, entity.TravelSheetQR{Type: "travel_sheet", Number: ts.TravelSheetNumber, PO: po.PONumber, PartNumber: "11-1628-01"}, head)

	require.Len(t, ts.Operations, 2)
	first := ts.Operations[0]
	assert.Equal(t, 10, first.SequenceNumber, "ordenadas por secuencia")
	assert.Equal(t, entity.OperationStatusPending, first.Status)
	require.NotNil(t, first.QuantityPending)
	assert.Equal(t, 250, *first.QuantityPending)
	require.NotNil(t, first.WorkCenterID)
	assert.Equal(t, wcCorte, *first.WorkCenterID)

	var op entity.OperationQR
	require.NoError(t, json.Unmarshal([]byte(first.QRCode), &op))
	assert.Equal(t, entity.OperationQR{Type: "operation", TravelSheetID: ts.ID, Sequence: 10, ProcessID: "proc-corte"}, op)
}

func TestGenerateTravelSheet_SinRuta(t *testing.T) {
	uc, _, _ := setup(t)
	po := create(t, uc, bareID, 10, nil)
	_, err := uc.GenerateTravelSheet(context.Background(), po.ID, dto.CreateTravelSheetRequest{})
	require.Error(t, err)
	assert.Equal(t, "No routing defined for this part number", err.Error())

	list, err := uc.ListTravelSheets(context.Background(), po.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestTravelSheetPDF_ArmaDocumento(t *testing.T) {
	uc, _, pdf := setup(t)
	ctx := context.Background()
	po := create(t, uc, partID, 80, day(7))
	ts, err := uc.GenerateTravelSheet(ctx, po.ID, dto.CreateTravelSheetRequest{})
	require.NoError(t, err)

	b, name, err := uc.TravelSheetPDF(ctx, ts.ID)
	require.NoError(t, err)
	assert.NotEmpty(t, b)
	assert.Equal(t, ts.TravelSheetNumber+".pdf", name)

	assert.Equal(t, po.PONumber, pdf.doc.PONumber)
	assert.Equal(t, "Soporte", pdf.doc.PartDescription)
	require.Len(t, pdf.doc.Operations, 2)
	require.NotNil(t, pdf.doc.Operations[0].StandardTimeMinutes)
	assert.Equal(t, "2.5", pdf.doc.Operations[0].StandardTimeMinutes.String())
	assert.Nil(t, pdf.doc.Operations[1].StandardTimeMinutes)

	_, _, err = uc.TravelSheetPDF(ctx, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
