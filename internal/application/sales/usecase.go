// Package sales órdenes de compra de clientes y su saldo embarcable.
package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// UseCase casos de uso de órdenes de venta.
type UseCase struct {
	tx          TxRunner
	salesOrders repository.SalesOrderRepository
	orders      repository.ProductionOrderRepository
	inspections repository.QualityInspectionRepository
	shipments   repository.ShipmentRepository
	users       repository.UserRepository
	log         zerolog.Logger
	now         func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	salesOrders repository.SalesOrderRepository,
	orders repository.ProductionOrderRepository,
	inspections repository.QualityInspectionRepository,
	shipments repository.ShipmentRepository,
	users repository.UserRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:          tx,
		salesOrders: salesOrders,
		orders:      orders,
		inspections: inspections,
		shipments:   shipments,
		users:       users,
		log:         log,
		now:         time.Now,
	}
}

// Create registra la orden en Open. El precio unitario faltante se toma del número de parte.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateSalesOrderRequest) (*dto.SalesOrderResponse, error) {
	orderDate, err := dto.ParseDate(in.OrderDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	dueDate, err := dto.ParseDate(in.DueDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	if len(in.Items) == 0 {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Sales order must have at least one item")
	}

	now := uc.now()
	so := &entity.SalesOrder{
		ID:         uuid.New().String(),
		PONumber:   in.PONumber,
		CustomerID: in.CustomerID,
		OrderDate:  orderDate,
		DueDate:    dueDate,
		Status:     entity.SalesOrderStatusOpen,
		Notes:      in.Notes,
		CreatedBy:  userID,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	err = uc.tx.RunSales(ctx, func(r TxRepos) error {
		exists, err := r.SalesOrders.ExistsByPONumber(ctx, in.PONumber)
		if err != nil {
			return err
		}
		if exists {
			return domain.Errorf(domain.ErrDuplicate, "PO number already exists")
		}
		c, err := r.Customers.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if c == nil {
			return domain.Errorf(domain.ErrNotFound, "Customer not found")
		}
		for _, it := range in.Items {
			part, err := r.Parts.GetByID(ctx, it.PartNumberID)
			if err != nil {
				return err
			}
			if part == nil {
				return domain.Errorf(domain.ErrInvalidInput, "Part number %s not found", it.PartNumberID)
			}
			unit := it.UnitPrice
			if unit == nil || unit.IsZero() {
				unit = part.UnitPrice
			}
			var total *decimal.Decimal
			if unit != nil {
				t := unit.Mul(decimal.NewFromInt(int64(it.Quantity)))
				total = &t
			}
			so.Items = append(so.Items, entity.SalesOrderItem{
				ID:           uuid.New().String(),
				SalesOrderID: so.ID,
				PartNumberID: it.PartNumberID,
				PartNumber:   part.PartNumber,
				Quantity:     it.Quantity,
				UnitPrice:    unit,
				TotalPrice:   total,
				Status:       entity.SalesOrderItemStatusPending,
				CreatedAt:    now,
			})
		}
		return r.SalesOrders.Create(ctx, so)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("sales_order_id", so.ID).
		Str("po_number", so.PONumber).
		Int("items", len(so.Items)).
		Msg("orden de venta creada")
	return toResponse(so, true), nil
}

// Get orden con sus líneas; los precios se ocultan si el rol no puede verlos.
func (uc *UseCase) Get(ctx context.Context, role, id string) (*dto.SalesOrderResponse, error) {
	so, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	prices, err := uc.canViewPrices(ctx, role)
	if err != nil {
		return nil, err
	}
	return toResponse(so, prices), nil
}

// List órdenes por fecha compromiso.
func (uc *UseCase) List(ctx context.Context, role string, f dto.SalesOrderFilter) ([]dto.SalesOrderResponse, error) {
	f.DefaultPage()
	list, err := uc.salesOrders.List(ctx, repository.SalesOrderFilter{
		CustomerID: f.CustomerID,
		Status:     f.Status,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, err
	}
	prices, err := uc.canViewPrices(ctx, role)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SalesOrderResponse, 0, len(list))
	for _, so := range list {
		out = append(out, *toResponse(so, prices))
	}
	return out, nil
}

// ApprovedQuantities por línea: aprobado por calidad en las órdenes de producción
// de la misma parte ligadas a esta orden, lo ya embarcado de ellas y lo que falta surtir.
func (uc *UseCase) ApprovedQuantities(ctx context.Context, id string) ([]dto.ApprovedQuantityResponse, error) {
	so, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ApprovedQuantityResponse, 0, len(so.Items))
	for _, it := range so.Items {
		pos, err := uc.orders.ListBySalesOrderAndPart(ctx, so.ID, it.PartNumberID)
		if err != nil {
			return nil, err
		}
		approved, shipped := 0, 0
		for _, po := range pos {
			list, err := uc.inspections.ListByProductionOrder(ctx, po.ID)
			if err != nil {
				return nil, err
			}
			outcomes := make([]fulfillment.Outcome, len(list))
			for i, qi := range list {
				outcomes[i] = fulfillment.OutcomeOf(qi)
			}
			approved += fulfillment.ApprovedQuantity(outcomes)

			s, err := uc.shipments.SumShippedByProductionOrder(ctx, po.ID)
			if err != nil {
				return nil, err
			}
			shipped += s
		}
		out = append(out, dto.ApprovedQuantityResponse{
			SalesOrderItemID:   it.ID,
			PartNumberID:       it.PartNumberID,
			PartNumber:         it.PartNumber,
			OrderedQuantity:    it.Quantity,
			ApprovedQuantity:   approved,
			AlreadyShipped:     shipped,
			AvailableToShip:    fulfillment.AvailableToShip(approved, shipped),
			RemainingToFulfill: fulfillment.RemainingToFulfill(it.Quantity, it.QuantityShipped),
		})
	}
	return out, nil
}

func (uc *UseCase) get(ctx context.Context, id string) (*entity.SalesOrder, error) {
	so, err := uc.salesOrders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if so == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Sales order not found")
	}
	return so, nil
}

// canViewPrices un rol desconocido no ve precios.
func (uc *UseCase) canViewPrices(ctx context.Context, role string) (bool, error) {
	r, err := uc.users.GetRoleByName(ctx, role)
	if err != nil {
		return false, err
	}
	return r != nil && r.CanViewPrices, nil
}

func toResponse(so *entity.SalesOrder, prices bool) *dto.SalesOrderResponse {
	items := make([]dto.SalesOrderItemResponse, 0, len(so.Items))
	for _, it := range so.Items {
		res := dto.SalesOrderItemResponse{
			ID:               it.ID,
			PartNumberID:     it.PartNumberID,
			PartNumber:       it.PartNumber,
			Quantity:         it.Quantity,
			QuantityProduced: it.QuantityProduced,
			QuantityShipped:  it.QuantityShipped,
			Status:           it.Status,
		}
		if prices {
			res.UnitPrice = it.UnitPrice
			res.TotalPrice = it.TotalPrice
		}
		items = append(items, res)
	}
	return &dto.SalesOrderResponse{
		ID:         so.ID,
		PONumber:   so.PONumber,
		CustomerID: so.CustomerID,
		OrderDate:  so.OrderDate.Format(dto.DateLayout),
		DueDate:    so.DueDate.Format(dto.DateLayout),
		Status:     so.Status,
		Notes:      so.Notes,
		CreatedAt:  so.CreatedAt,
		Items:      items,
	}
}
