package sales_test

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
	"github.com/jhoicas/aurexia-api/internal/application/sales"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

const (
	customerID = "cust-1"
	partA      = "part-a"
	partB      = "part-b"
	userID     = "user-admin"
)

func setup(t *testing.T) (*sales.UseCase, *apptest.Store) {
	t.Helper()
	store := apptest.New()
	price := decimal.RequireFromString("12.50")
	store.AddCustomer(entity.Customer{ID: customerID, Code: "TECDEL", Name: "Tecdel", IsActive: true})
	store.AddPart(entity.PartNumber{ID: partA, PartNumber: "11-1628-01", UnitPrice: &price, IsActive: true})
	store.AddPart(entity.PartNumber{ID: partB, PartNumber: "22-3456-02", IsActive: true})
	store.AddRole(entity.Role{Name: entity.RoleAdmin, CanViewPrices: true})
	store.AddRole(entity.Role{Name: entity.RoleOperator, CanViewPrices: false})
	uc := sales.NewUseCase(store, store.SalesOrders(), store.Orders(), store.Inspections(), store.Shipments(), store.Users(), zerolog.Nop())
	return uc, store
}

func newOrder(po string, items ...dto.SalesOrderItemRequest) dto.CreateSalesOrderRequest {
	return dto.CreateSalesOrderRequest{
		PONumber:   po,
		CustomerID: customerID,
		OrderDate:  "2025-02-01",
		DueDate:    "2025-03-01",
		Items:      items,
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Alta
// ──────────────────────────────────────────────────────────────────────────────

func TestCreate_PrecioPorDefectoYTotal(t *testing.T) {
	uc, _ := setup(t)
	custom := decimal.RequireFromString("3.10")

	res, err := uc.Create(context.Background(), userID, newOrder("CPO-1",
		dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 4},
		dto.SalesOrderItemRequest{PartNumberID: partB, Quantity: 10, UnitPrice: &custom},
	))
	require.NoError(t, err)
	assert.Equal(t, entity.SalesOrderStatusOpen, res.Status)
	assert.Equal(t, "2025-03-01", res.DueDate)
	require.Len(t, res.Items, 2)

	assert.Equal(t, "12.5", res.Items[0].UnitPrice.String())
	assert.Equal(t, "50", res.Items[0].TotalPrice.String())
	assert.Equal(t, "31", res.Items[1].TotalPrice.String())
	assert.Equal(t, entity.SalesOrderItemStatusPending, res.Items[1].Status)
}

func TestCreate_SinPrecioQuedaNulo(t *testing.T) {
	uc, _ := setup(t)
	res, err := uc.Create(context.Background(), userID, newOrder("CPO-2", dto.SalesOrderItemRequest{PartNumberID: partB, Quantity: 1}))
	require.NoError(t, err)
	assert.Nil(t, res.Items[0].UnitPrice)
	assert.Nil(t, res.Items[0].TotalPrice)
}

func TestCreate_PODuplicado(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, userID, newOrder("CPO-1", dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 1}))
	require.NoError(t, err)

	_, err = uc.Create(ctx, userID, newOrder("CPO-1", dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 1}))
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrDuplicate))
	assert.Equal(t, "PO number already exists", err.Error())
}

func TestCreate_ParteInexistenteNoDejaNada(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	_, err := uc.Create(ctx, userID, newOrder("CPO-9",
		dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 1},
		dto.SalesOrderItemRequest{PartNumberID: "nope", Quantity: 1},
	))
	require.Error(t, err)
	assert.Equal(t, "Part number nope not found", err.Error())

	list, err := uc.List(ctx, entity.RoleAdmin, dto.SalesOrderFilter{})
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consulta y precios
// ──────────────────────────────────────────────────────────────────────────────

func TestGet_OcultaPreciosSegunRol(t *testing.T) {
	uc, _ := setup(t)
	ctx := context.Background()
	created, err := uc.Create(ctx, userID, newOrder("CPO-1", dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 2}))
	require.NoError(t, err)

	admin, err := uc.Get(ctx, entity.RoleAdmin, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, admin.Items[0].UnitPrice)

	op, err := uc.Get(ctx, entity.RoleOperator, created.ID)
	require.NoError(t, err)
	assert.Nil(t, op.Items[0].UnitPrice)
	assert.Nil(t, op.Items[0].TotalPrice)
	assert.Equal(t, "11-1628-01", op.Items[0].PartNumber)

	_, err = uc.Get(ctx, entity.RoleAdmin, "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestApprovedQuantities(t *testing.T) {
	uc, store := setup(t)
	ctx := context.Background()
	so, err := uc.Create(ctx, userID, newOrder("CPO-1",
		dto.SalesOrderItemRequest{PartNumberID: partA, Quantity: 100},
		dto.SalesOrderItemRequest{PartNumberID: partB, Quantity: 10},
	))
	require.NoError(t, err)

	linked := so.ID
	for _, po := range []entity.ProductionOrder{
		{ID: "po-1", PONumber: "PO-1", SalesOrderID: &linked, PartNumberID: partA, Quantity: 60},
		{ID: "po-2", PONumber: "PO-2", SalesOrderID: &linked, PartNumberID: partA, Quantity: 60},
		{ID: "po-x", PONumber: "PO-X", PartNumberID: partA, Quantity: 60},
	} {
		require.NoError(t, store.Orders().Create(ctx, &po))
	}
	for _, qi := range []entity.QualityInspection{
		{ProductionOrderID: "po-1", Status: entity.InspectionStatusReleased, QuantityApproved: 50},
		{ProductionOrderID: "po-2", Status: entity.InspectionStatusReleased, QuantityApproved: 30},
		{ProductionOrderID: "po-2", Status: entity.InspectionStatusRejected, QuantityApproved: 99, QuantityRejected: 5},
		{ProductionOrderID: "po-x", Status: entity.InspectionStatusReleased, QuantityApproved: 500},
	} {
		require.NoError(t, store.Inspections().Create(ctx, &qi))
	}
	po1 := "po-1"
	require.NoError(t, store.Shipments().CreateItem(ctx, &entity.ShipmentItem{
		ShipmentID: "sh-1", PartNumberID: partA, ProductionOrderID: &po1, Quantity: 20,
	}))
	_, err = store.SalesOrders().AdjustItemShipped(ctx, so.Items[0].ID, 20)
	require.NoError(t, err)

	rows, err := uc.ApprovedQuantities(ctx, so.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	a := rows[0]
	assert.Equal(t, 100, a.OrderedQuantity)
	assert.Equal(t, 80, a.ApprovedQuantity, "solo Released de órdenes ligadas")
	assert.Equal(t, 20, a.AlreadyShipped)
	assert.Equal(t, 60, a.AvailableToShip)
	assert.Equal(t, 80, a.RemainingToFulfill)

	b := rows[1]
	assert.Zero(t, b.ApprovedQuantity)
	assert.Zero(t, b.AvailableToShip)
	assert.Equal(t, 10, b.RemainingToFulfill)
}
