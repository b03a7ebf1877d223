// Package shipping embarques a clientes. Cada línea contra una orden de
// producción pasa por el filtro de calidad y las cantidades embarcadas se
// reflejan en las líneas de la orden de venta.
package shipping

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// UseCase casos de uso de embarques.
type UseCase struct {
	tx        TxRunner
	shipments repository.ShipmentRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, shipments repository.ShipmentRepository, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, shipments: shipments, log: log, now: time.Now}
}

// Create numera el embarque, valida y guarda cada línea y ajusta lo embarcado en las órdenes de venta.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	date, err := dto.ParseDate(in.ShipmentDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	status := in.Status
	if status == "" {
		status = entity.ShipmentStatusPrepared
	}
	if !entity.IsValidShipmentStatus(status) {
		return nil, invalidStatus()
	}

	now := uc.now()
	sh := &entity.Shipment{
		ID:             uuid.New().String(),
		CustomerID:     in.CustomerID,
		SalesOrderID:   in.SalesOrderID,
		ShipmentDate:   date,
		Status:         status,
		TrackingNumber: in.TrackingNumber,
		Notes:          in.Notes,
		CreatedBy:      userID,
		CreatedAt:      now,
	}
	err = uc.tx.RunShipping(ctx, func(r TxRepos) error {
		if err := checkHeader(ctx, r, in); err != nil {
			return err
		}
		number, err := r.Shipments.NextShipmentNumber(ctx, now.Year())
		if err != nil {
			return err
		}
		sh.ShipmentNumber = number
		if err := r.Shipments.Create(ctx, sh); err != nil {
			return err
		}
		if err := uc.addItems(ctx, r, sh, in.Items); err != nil {
			return err
		}
		ledger := newSalesLedger(r.SalesOrders)
		if err := ledger.apply(ctx, sh.Items, 1); err != nil {
			return err
		}
		return ledger.recompute(ctx)
	})
	if err != nil {
		return nil, uc.failed(err, "crear embarque")
	}
	uc.log.Info().
		Str("shipment_id", sh.ID).
		Str("shipment_number", sh.ShipmentNumber).
		Int("items", len(sh.Items)).
		Int("quantity", totalQuantity(sh.Items)).
		Msg("embarque creado")
	return toResponse(sh), nil
}

// Update reemplaza cabecera y líneas. Las líneas previas se restan y se borran
// antes de validar las nuevas, así el embarque no compite contra sí mismo.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.ShipmentRequest) (*dto.ShipmentResponse, error) {
	date, err := dto.ParseDate(in.ShipmentDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	if in.Status != "" && !entity.IsValidShipmentStatus(in.Status) {
		return nil, invalidStatus()
	}

	var sh *entity.Shipment
	err = uc.tx.RunShipping(ctx, func(r TxRepos) error {
		var err error
		if sh, err = getShipment(ctx, r.Shipments, id); err != nil {
			return err
		}
		if err := checkHeader(ctx, r, in); err != nil {
			return err
		}
		ledger := newSalesLedger(r.SalesOrders)
		if err := ledger.apply(ctx, sh.Items, -1); err != nil {
			return err
		}
		if err := r.Shipments.DeleteItems(ctx, id); err != nil {
			return err
		}
		// El estado se recalcula ya: el auto-match solo ve órdenes Open/Partial.
		if err := ledger.recompute(ctx); err != nil {
			return err
		}

		sh.CustomerID = in.CustomerID
		sh.SalesOrderID = in.SalesOrderID
		sh.ShipmentDate = date
		if in.Status != "" {
			sh.Status = in.Status
		}
		sh.TrackingNumber = in.TrackingNumber
		sh.Notes = in.Notes
		sh.Items = nil
		if err := r.Shipments.Update(ctx, sh); err != nil {
			return err
		}
		if err := uc.addItems(ctx, r, sh, in.Items); err != nil {
			return err
		}
		if err := ledger.apply(ctx, sh.Items, 1); err != nil {
			return err
		}
		return ledger.recompute(ctx)
	})
	if err != nil {
		return nil, uc.failed(err, "actualizar embarque")
	}
	uc.log.Info().Str("shipment_id", id).Int("quantity", totalQuantity(sh.Items)).Msg("embarque actualizado")
	return toResponse(sh), nil
}

// Delete borra el embarque y resta sus cantidades de las órdenes de venta (piso en cero).
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	err := uc.tx.RunShipping(ctx, func(r TxRepos) error {
		sh, err := getShipment(ctx, r.Shipments, id)
		if err != nil {
			return err
		}
		ledger := newSalesLedger(r.SalesOrders)
		if err := ledger.apply(ctx, sh.Items, -1); err != nil {
			return err
		}
		if err := r.Shipments.DeleteItems(ctx, id); err != nil {
			return err
		}
		if err := r.Shipments.Delete(ctx, id); err != nil {
			return err
		}
		return ledger.recompute(ctx)
	})
	if err != nil {
		return uc.failed(err, "eliminar embarque")
	}
	uc.log.Info().Str("shipment_id", id).Msg("embarque eliminado")
	return nil
}

// UpdateStatus cambia el estado y opcionalmente la guía.
func (uc *UseCase) UpdateStatus(ctx context.Context, id string, in dto.ShipmentStatusRequest) (*dto.ShipmentResponse, error) {
	if !entity.IsValidShipmentStatus(in.Status) {
		return nil, invalidStatus()
	}
	if err := uc.shipments.UpdateStatus(ctx, id, in.Status, in.TrackingNumber); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, shipmentNotFound()
		}
		return nil, err
	}
	uc.log.Info().Str("shipment_id", id).Str("status", in.Status).Msg("estado de embarque actualizado")
	return uc.Get(ctx, id)
}

// Get embarque con sus líneas.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ShipmentResponse, error) {
	sh, err := getShipment(ctx, uc.shipments, id)
	if err != nil {
		return nil, err
	}
	return toResponse(sh), nil
}

// List embarques, más recientes primero.
func (uc *UseCase) List(ctx context.Context, f dto.ShipmentFilter) ([]dto.ShipmentResponse, error) {
	f.DefaultPage()
	list, err := uc.shipments.List(ctx, repository.ShipmentFilter{
		Status:     f.Status,
		CustomerID: f.CustomerID,
		Limit:      f.Limit,
		Offset:     f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ShipmentResponse, 0, len(list))
	for _, sh := range list {
		out = append(out, *toResponse(sh))
	}
	return out, nil
}

// addItems guarda las líneas una por una: cada línea queda persistida antes de
// validar la siguiente, de modo que dos líneas contra la misma orden suman.
func (uc *UseCase) addItems(ctx context.Context, r TxRepos, sh *entity.Shipment, items []dto.ShipmentItemRequest) error {
	for _, in := range items {
		part, err := r.Parts.GetByID(ctx, in.PartNumberID)
		if err != nil {
			return err
		}
		if part == nil {
			return domain.Errorf(domain.ErrNotFound, "Part number with ID %s not found", in.PartNumberID)
		}
		if in.ProductionOrderID != nil && *in.ProductionOrderID != "" {
			if err := uc.gate(ctx, r, *in.ProductionOrderID, in.Quantity); err != nil {
				return err
			}
		}
		soItemID, err := matchSalesOrderItem(ctx, r.SalesOrders, sh, in)
		if err != nil {
			return err
		}
		item := entity.ShipmentItem{
			ID:                uuid.New().String(),
			ShipmentID:        sh.ID,
			SalesOrderItemID:  soItemID,
			PartNumberID:      in.PartNumberID,
			ProductionOrderID: in.ProductionOrderID,
			Quantity:          in.Quantity,
			UnitPrice:         in.UnitPrice,
			CreatedAt:         uc.now(),
		}
		if err := r.Shipments.CreateItem(ctx, &item); err != nil {
			return err
		}
		sh.Items = append(sh.Items, item)
	}
	return nil
}

// gate bloquea la orden de producción y valida la cantidad contra lo aprobado y lo ya embarcado.
func (uc *UseCase) gate(ctx context.Context, r TxRepos, productionOrderID string, quantity int) error {
	po, err := r.Orders.GetForUpdate(ctx, productionOrderID)
	if err != nil {
		return err
	}
	if po == nil {
		return domain.Errorf(domain.ErrNotFound, "Production order with ID %s not found", productionOrderID)
	}
	inspections, err := r.Inspections.ListByProductionOrder(ctx, po.ID)
	if err != nil {
		return err
	}
	shipped, err := r.Shipments.SumShippedByProductionOrder(ctx, po.ID)
	if err != nil {
		return err
	}
	outcomes := make([]fulfillment.Outcome, len(inspections))
	for i, qi := range inspections {
		outcomes[i] = fulfillment.OutcomeOf(qi)
	}
	fig, err := fulfillment.EvaluateGate(fulfillment.GateInput{
		OrderFound:     true,
		PONumber:       po.PONumber,
		Inspections:    outcomes,
		AlreadyShipped: shipped,
		Requested:      quantity,
	})
	if err != nil {
		uc.log.Warn().
			Str("production_order_id", po.ID).
			Str("po_number", po.PONumber).
			Int("requested", fig.Requested).
			Int("approved", fig.Approved).
			Int("already_shipped", fig.AlreadyShipped).
			Int("available", fig.Available).
			Msg(err.Error())
	}
	return err
}

// matchSalesOrderItem respeta la línea indicada; si no hay, busca la misma parte
// en la orden de venta del embarque o, sin orden, la línea abierta más antigua del cliente.
func matchSalesOrderItem(ctx context.Context, sales repository.SalesOrderRepository, sh *entity.Shipment, in dto.ShipmentItemRequest) (*string, error) {
	if in.SalesOrderItemID != nil && *in.SalesOrderItemID != "" {
		it, err := sales.GetItemByID(ctx, *in.SalesOrderItemID)
		if err != nil {
			return nil, err
		}
		if it == nil {
			return nil, domain.Errorf(domain.ErrNotFound, "Sales order item with ID %s not found", *in.SalesOrderItemID)
		}
		return &it.ID, nil
	}

	var (
		it  *entity.SalesOrderItem
		err error
	)
	if sh.SalesOrderID != nil && *sh.SalesOrderID != "" {
		it, err = sales.FindItemByPart(ctx, *sh.SalesOrderID, in.PartNumberID)
	} else {
		it, err = sales.FindOpenItemForCustomer(ctx, sh.CustomerID, in.PartNumberID)
	}
	if err != nil || it == nil {
		return nil, err
	}
	return &it.ID, nil
}

// salesLedger ajusta quantity_shipped de las líneas de venta y recuerda qué
// órdenes tocó para recalcular su estado al final.
type salesLedger struct {
	sales   repository.SalesOrderRepository
	touched map[string]struct{}
	order   []string
}

func newSalesLedger(sales repository.SalesOrderRepository) *salesLedger {
	return &salesLedger{sales: sales, touched: map[string]struct{}{}}
}

// apply suma sign*quantity por línea con orden de venta; el repositorio pone piso en cero.
func (l *salesLedger) apply(ctx context.Context, items []entity.ShipmentItem, sign int) error {
	for _, it := range items {
		if it.SalesOrderItemID == nil {
			continue
		}
		soID, err := l.sales.AdjustItemShipped(ctx, *it.SalesOrderItemID, sign*it.Quantity)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				continue
			}
			return err
		}
		if _, ok := l.touched[soID]; !ok {
			l.touched[soID] = struct{}{}
			l.order = append(l.order, soID)
		}
	}
	return nil
}

// recompute persiste Open/Partial/Completed de cada orden tocada.
func (l *salesLedger) recompute(ctx context.Context) error {
	for _, soID := range l.order {
		items, err := l.sales.ListItems(ctx, soID)
		if err != nil {
			return err
		}
		status, ok := fulfillment.SalesOrderStatus(fulfillment.LinesOf(items))
		if !ok {
			continue
		}
		if err := l.sales.UpdateStatus(ctx, soID, status); err != nil {
			return err
		}
	}
	return nil
}

func checkHeader(ctx context.Context, r TxRepos, in dto.ShipmentRequest) error {
	c, err := r.Customers.GetByID(ctx, in.CustomerID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.Errorf(domain.ErrNotFound, "Customer not found")
	}
	if in.SalesOrderID == nil || *in.SalesOrderID == "" {
		return nil
	}
	so, err := r.SalesOrders.GetByID(ctx, *in.SalesOrderID)
	if err != nil {
		return err
	}
	if so == nil {
		return domain.Errorf(domain.ErrNotFound, "Sales order not found")
	}
	return nil
}

func getShipment(ctx context.Context, shipments repository.ShipmentRepository, id string) (*entity.Shipment, error) {
	sh, err := shipments.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sh == nil {
		return nil, shipmentNotFound()
	}
	return sh, nil
}

// failed registra fallas no esperadas; las de negocio ya vienen con su mensaje.
func (uc *UseCase) failed(err error, op string) error {
	var de *domain.Error
	var ge *fulfillment.GateError
	if !errors.As(err, &de) && !errors.As(err, &ge) {
		uc.log.Error().Err(err).Str("op", op).Msg("transacción de embarque revertida")
		return fmt.Errorf("%s: %w", op, err)
	}
	return err
}

func shipmentNotFound() error {
	return domain.Errorf(domain.ErrNotFound, "Shipment not found")
}

func invalidStatus() error {
	return domain.Errorf(domain.ErrInvalidInput, "Invalid status. Must be one of: %s", strings.Join(entity.ShipmentStatuses, ", "))
}

func totalQuantity(items []entity.ShipmentItem) int {
	total := 0
	for _, it := range items {
		total += it.Quantity
	}
	return total
}

func toResponse(sh *entity.Shipment) *dto.ShipmentResponse {
	items := make([]dto.ShipmentItemResponse, 0, len(sh.Items))
	for _, it := range sh.Items {
		items = append(items, dto.ShipmentItemResponse{
			ID:                it.ID,
			SalesOrderItemID:  it.SalesOrderItemID,
			PartNumberID:      it.PartNumberID,
			ProductionOrderID: it.ProductionOrderID,
			Quantity:          it.Quantity,
			UnitPrice:         it.UnitPrice,
		})
	}
	return &dto.ShipmentResponse{
		ID:             sh.ID,
		ShipmentNumber: sh.ShipmentNumber,
		CustomerID:     sh.CustomerID,
		SalesOrderID:   sh.SalesOrderID,
		ShipmentDate:   sh.ShipmentDate.Format(dto.DateLayout),
		Status:         sh.Status,
		TrackingNumber: sh.TrackingNumber,
		Notes:          sh.Notes,
		CreatedAt:      sh.CreatedAt,
		Items:          items,
	}
}
