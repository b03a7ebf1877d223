package shipping_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/apptest"
	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
)

const (
	customerID = "cust-1"
	partID     = "part-1"
	poID       = "po-1"
	userID     = "user-shipping"
)

func setup(t *testing.T) (*shipping.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.New()
	store.AddCustomer(entity.Customer{ID: customerID, Code: "SIGRAMA", Name: "Sigrama", IsActive: true})
	store.AddPart(entity.PartNumber{ID: partID, PartNumber: "11-1628-01", IsActive: true})
	require.NoError(t, store.Orders().Create(context.Background(), &entity.ProductionOrder{
		ID: poID, PONumber: "PO-TEST-0001", PartNumberID: partID, Quantity: 100, Status: entity.ProductionStatusInProgress,
	}))
	return shipping.NewUseCase(store, store.Shipments(), zerolog.Nop()), store
}

func inspect(t *testing.T, store *apptest.Store, status string, approved, rejected int) {
	t.Helper()
	require.NoError(t, store.Inspections().Create(context.Background(), &entity.QualityInspection{
		ProductionOrderID: poID,
		Status:            status,
		QuantityInspected: approved + rejected,
		QuantityApproved:  approved,
		QuantityRejected:  rejected,
		InspectionDate:    time.Now(),
	}))
}

func salesOrder(t *testing.T, store *apptest.Store, id string, due time.Time, qty int) string {
	t.Helper()
	so := &entity.SalesOrder{
		ID: id, PONumber: "CPO-" + id, CustomerID: customerID, OrderDate: due.AddDate(0, 0, -10), DueDate: due,
		Status: entity.SalesOrderStatusOpen,
		Items:  []entity.SalesOrderItem{{ID: id + "-item", PartNumberID: partID, Quantity: qty, Status: entity.SalesOrderItemStatusPending}},
	}
	require.NoError(t, store.SalesOrders().Create(context.Background(), so))
	return so.Items[0].ID
}

func shipReq(lines ...int) dto.ShipmentRequest {
	po := poID
	in := dto.ShipmentRequest{CustomerID: customerID, ShipmentDate: "2025-03-01"}
	for _, q := range lines {
		in.Items = append(in.Items, dto.ShipmentItemRequest{PartNumberID: partID, ProductionOrderID: &po, Quantity: q})
	}
	return in
}

// ──────────────────────────────────────────────────────────────────────────────
// Filtro de calidad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_SinInspeccionSeRechaza(t *testing.T) {
	uc, store := setup(t)
	_, err := uc.Create(context.Background(), userID, shipReq(1))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQualityGate))
	assert.Contains(t, err.Error(), "has not been quality inspected yet")
	assert.Equal(t, 0, store.CountShipments(), "la transacción se revierte completa")
}

func TestCreate_LoteRechazadoBloqueaTodo(t *testing.T) {
	uc, store := setup(t)
	inspect(t, store, entity.InspectionStatusReleased, 90, 0)
	inspect(t, store, entity.InspectionStatusRejected, 0, 10)

	_, err := uc.Create(context.Background(), userID, shipReq(1))
	require.Error(t, err)
	assert.Equal(t, "Production order PO-TEST-0001 has been rejected by quality control. Cannot ship rejected items.", err.Error())
}

func TestCreate_ValidaContraAprobadoMenosEmbarcado(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 100, 0)

	_, err := uc.Create(ctx, userID, shipReq(40))
	require.NoError(t, err)

	_, err = uc.Create(ctx, userID, shipReq(70))
	require.Error(t, err)
	var ge *fulfillment.GateError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, 60, ge.Available)
	assert.Equal(t, 100, ge.Approved)
	assert.Equal(t, 40, ge.AlreadyShipped)
	assert.Equal(t, "Cannot ship 70 units. Only 60 approved units available (Total approved: 100, Already shipped: 40).", err.Error())

	_, err = uc.Create(ctx, userID, shipReq(60))
	require.NoError(t, err)
	assert.Equal(t, 2, store.CountShipments())
}

func TestCreate_LineasDelMismoEmbarqueAcumulan(t *testing.T) {
	uc, store := setup(t)
	inspect(t, store, entity.InspectionStatusReleased, 50, 0)

	_, err := uc.Create(context.Background(), userID, shipReq(30, 30))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrQualityGate))
	assert.Equal(t, 0, store.CountShipments())
}

func TestCreate_OrdenDeProduccionInexistente(t *testing.T) {
	uc, _ := setup(t)
	missing := "po-nope"
	in := shipReq()
	in.Items = []dto.ShipmentItemRequest{{PartNumberID: partID, ProductionOrderID: &missing, Quantity: 1}}

	_, err := uc.Create(context.Background(), userID, in)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.Equal(t, "Production order with ID po-nope not found", err.Error())
}

func TestCreate_ClienteInexistente(t *testing.T) {
	uc, _ := setup(t)
	in := shipReq(1)
	in.CustomerID = "nope"
	_, err := uc.Create(context.Background(), userID, in)
	require.Error(t, err)
	assert.Equal(t, "Customer not found", err.Error())
}

// ──────────────────────────────────────────────────────────────────────────────
// Numeración y órdenes de venta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_NumeracionPorAnio(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 100, 0)
	year := time.Now().Year()

	a, err := uc.Create(ctx, userID, shipReq(1))
	require.NoError(t, err)
	b, err := uc.Create(ctx, userID, shipReq(1))
	require.NoError(t, err)

	assert.Equal(t, fmt.Sprintf("SHIP-%d-0001", year), a.ShipmentNumber)
	assert.Equal(t, fmt.Sprintf("SHIP-%d-0002", year), b.ShipmentNumber)
	assert.Equal(t, entity.ShipmentStatusPrepared, a.Status)
}

func TestCreate_AutoMatchEnOrdenDeVenta(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 100, 0)
	itemID := salesOrder(t, store, "so-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 50)
	so := "so-1"

	in := shipReq(20)
	in.SalesOrderID = &so
	res, err := uc.Create(ctx, userID, in)
	require.NoError(t, err)
	require.NotNil(t, res.Items[0].SalesOrderItemID)
	assert.Equal(t, itemID, *res.Items[0].SalesOrderItemID)
	assert.Equal(t, 20, store.SalesItem(itemID).QuantityShipped)
	assert.Equal(t, entity.SalesOrderStatusPartial, store.SalesOrderStatus(so))

	in = shipReq(30)
	in.SalesOrderID = &so
	_, err = uc.Create(ctx, userID, in)
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOrderStatusCompleted, store.SalesOrderStatus(so))
}

func TestCreate_AutoMatchSinOrdenTomaLaMasAntigua(t *testing.T) {
	uc, store := setup(t)
	inspect(t, store, entity.InspectionStatusReleased, 100, 0)
	late := salesOrder(t, store, "so-late", time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), 10)
	early := salesOrder(t, store, "so-early", time.Date(2025, 5, 1, 0, 0, 0, 0, time.UTC), 10)

	res, err := uc.Create(context.Background(), userID, shipReq(5))
	require.NoError(t, err)
	require.NotNil(t, res.Items[0].SalesOrderItemID)
	assert.Equal(t, early, *res.Items[0].SalesOrderItemID)
	assert.Equal(t, 0, store.SalesItem(late).QuantityShipped)
}

func TestDelete_RestaConPisoEnCero(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 100, 0)
	itemID := salesOrder(t, store, "so-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 50)

	res, err := uc.Create(ctx, userID, shipReq(20))
	require.NoError(t, err)
	assert.Equal(t, 20, store.SalesItem(itemID).QuantityShipped)

	// Alguien corrigió la línea a mano por debajo de lo embarcado.
	_, err = store.SalesOrders().AdjustItemShipped(ctx, itemID, -15)
	require.NoError(t, err)

	require.NoError(t, uc.Delete(ctx, res.ID))
	assert.Equal(t, 0, store.SalesItem(itemID).QuantityShipped)
	assert.Equal(t, entity.SalesOrderStatusOpen, store.SalesOrderStatus("so-1"))
	assert.Equal(t, 0, store.CountShipments())

	_, err = uc.Get(ctx, res.ID)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestUpdate_LiberaSusPropiasLineas(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 50, 0)
	itemID := salesOrder(t, store, "so-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 50)

	res, err := uc.Create(ctx, userID, shipReq(50))
	require.NoError(t, err)

	upd, err := uc.Update(ctx, res.ID, shipReq(45))
	require.NoError(t, err)
	require.Len(t, upd.Items, 1)
	assert.Equal(t, 45, upd.Items[0].Quantity)
	assert.Equal(t, 45, store.SalesItem(itemID).QuantityShipped)
	assert.Equal(t, res.ShipmentNumber, upd.ShipmentNumber)

	// La línea vuelve a quedar ligada aunque la orden estaba Completed antes del cambio.
	require.NotNil(t, upd.Items[0].SalesOrderItemID)
	assert.Equal(t, itemID, *upd.Items[0].SalesOrderItemID)
	assert.Equal(t, entity.SalesOrderStatusPartial, store.SalesOrderStatus("so-1"))
}

func TestUpdate_MismaCantidadMantieneCompleted(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 50, 0)
	itemID := salesOrder(t, store, "so-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 50)

	res, err := uc.Create(ctx, userID, shipReq(50))
	require.NoError(t, err)
	require.Equal(t, entity.SalesOrderStatusCompleted, store.SalesOrderStatus("so-1"))

	upd, err := uc.Update(ctx, res.ID, shipReq(50))
	require.NoError(t, err)
	require.NotNil(t, upd.Items[0].SalesOrderItemID)
	assert.Equal(t, 50, store.SalesItem(itemID).QuantityShipped)
	assert.Equal(t, entity.SalesOrderStatusCompleted, store.SalesOrderStatus("so-1"))
}

func TestUpdate_FallaRevierteTodo(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 50, 0)
	itemID := salesOrder(t, store, "so-1", time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), 50)

	res, err := uc.Create(ctx, userID, shipReq(30))
	require.NoError(t, err)

	_, err = uc.Update(ctx, res.ID, shipReq(60))
	require.Error(t, err)

	got, err := uc.Get(ctx, res.ID)
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, 30, got.Items[0].Quantity)
	assert.Equal(t, 30, store.SalesItem(itemID).QuantityShipped)
}

// ──────────────────────────────────────────────────────────────────────────────
// Estado
// ──────────────────────────────────────────────────────────────────────────────

func TestUpdateStatus(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 10, 0)
	res, err := uc.Create(ctx, userID, shipReq(1))
	require.NoError(t, err)

	_, err = uc.UpdateStatus(ctx, res.ID, dto.ShipmentStatusRequest{Status: "Lost"})
	require.Error(t, err)
	assert.Equal(t, "Invalid status. Must be one of: Prepared, Shipped, Delivered", err.Error())

	tracking := "GUIA-123"
	got, err := uc.UpdateStatus(ctx, res.ID, dto.ShipmentStatusRequest{Status: entity.ShipmentStatusShipped, TrackingNumber: &tracking})
	require.NoError(t, err)
	assert.Equal(t, entity.ShipmentStatusShipped, got.Status)
	assert.Equal(t, tracking, got.TrackingNumber)

	_, err = uc.UpdateStatus(ctx, "nope", dto.ShipmentStatusRequest{Status: entity.ShipmentStatusDelivered})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestList_FiltraPorCliente(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	inspect(t, store, entity.InspectionStatusReleased, 10, 0)
	_, err := uc.Create(ctx, userID, shipReq(1))
	require.NoError(t, err)

	list, err := uc.List(ctx, dto.ShipmentFilter{CustomerID: customerID})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = uc.List(ctx, dto.ShipmentFilter{CustomerID: "otro"})
	require.NoError(t, err)
	assert.Empty(t, list)
}
