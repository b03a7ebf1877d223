package apptest

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

type salesOrderRepo struct{ s *Store }

func (r *salesOrderRepo) Create(_ context.Context, so *entity.SalesOrder) error {
	d, unlock := r.s.lock()
	defer unlock()
	for _, o := range d.salesOrders.rows {
		if o.PONumber == so.PONumber {
			return domain.ErrDuplicate
		}
	}
	if so.ID == "" {
		so.ID = uuid.New().String()
	}
	head := *so
	head.Items = nil
	d.salesOrders.put(so.ID, head)
	for i := range so.Items {
		it := &so.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SalesOrderID = so.ID
		d.salesItems.put(it.ID, *it)
	}
	return nil
}

func (d *data) itemsOf(salesOrderID string) []entity.SalesOrderItem {
	var out []entity.SalesOrderItem
	for _, it := range d.salesItems.all() {
		if it.SalesOrderID == salesOrderID {
			out = append(out, d.withPart(it))
		}
	}
	return out
}

func (d *data) withPart(it entity.SalesOrderItem) entity.SalesOrderItem {
	if p, ok := d.parts.get(it.PartNumberID); ok {
		it.PartNumber = p.PartNumber
	}
	return it
}

func (r *salesOrderRepo) GetByID(_ context.Context, id string) (*entity.SalesOrder, error) {
	d, unlock := r.s.lock()
	defer unlock()
	so, ok := d.salesOrders.get(id)
	if !ok {
		return nil, nil
	}
	so.Items = d.itemsOf(id)
	return &so, nil
}

func (r *salesOrderRepo) ExistsByPONumber(_ context.Context, poNumber string) (bool, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, o := range d.salesOrders.rows {
		if o.PONumber == poNumber {
			return true, nil
		}
	}
	return false, nil
}

func (r *salesOrderRepo) List(_ context.Context, f repository.SalesOrderFilter) ([]*entity.SalesOrder, error) {
	d, unlock := r.s.lock()
	defer unlock()
	all := d.salesOrders.all()
	slices.SortStableFunc(all, func(a, b entity.SalesOrder) int { return a.DueDate.Compare(b.DueDate) })
	var out []*entity.SalesOrder
	for _, so := range all {
		if f.CustomerID != "" && so.CustomerID != f.CustomerID {
			continue
		}
		if f.Status != "" && so.Status != f.Status {
			continue
		}
		so.Items = d.itemsOf(so.ID)
		out = append(out, &so)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *salesOrderRepo) UpdateStatus(_ context.Context, id, status string) error {
	d, unlock := r.s.lock()
	defer unlock()
	so, ok := d.salesOrders.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	so.Status = status
	d.salesOrders.put(id, so)
	return nil
}

func (r *salesOrderRepo) GetItemByID(_ context.Context, id string) (*entity.SalesOrderItem, error) {
	d, unlock := r.s.lock()
	defer unlock()
	it, ok := d.salesItems.get(id)
	if !ok {
		return nil, nil
	}
	it = d.withPart(it)
	return &it, nil
}

func (r *salesOrderRepo) ListItems(_ context.Context, salesOrderID string) ([]entity.SalesOrderItem, error) {
	d, unlock := r.s.lock()
	defer unlock()
	return d.itemsOf(salesOrderID), nil
}

func (r *salesOrderRepo) FindItemByPart(_ context.Context, salesOrderID, partNumberID string) (*entity.SalesOrderItem, error) {
	d, unlock := r.s.lock()
	defer unlock()
	for _, it := range d.itemsOf(salesOrderID) {
		if it.PartNumberID == partNumberID {
			return &it, nil
		}
	}
	return nil, nil
}

func (r *salesOrderRepo) FindOpenItemForCustomer(_ context.Context, customerID, partNumberID string) (*entity.SalesOrderItem, error) {
	d, unlock := r.s.lock()
	defer unlock()
	orders := d.salesOrders.all()
	slices.SortStableFunc(orders, func(a, b entity.SalesOrder) int { return a.DueDate.Compare(b.DueDate) })
	for _, so := range orders {
		if so.CustomerID != customerID ||
			(so.Status != entity.SalesOrderStatusOpen && so.Status != entity.SalesOrderStatusPartial) {
			continue
		}
		for _, it := range d.itemsOf(so.ID) {
			if it.PartNumberID == partNumberID && it.Quantity > it.QuantityShipped {
				return &it, nil
			}
		}
	}
	return nil, nil
}

func (r *salesOrderRepo) AdjustItemShipped(_ context.Context, itemID string, delta int) (string, error) {
	d, unlock := r.s.lock()
	defer unlock()
	it, ok := d.salesItems.get(itemID)
	if !ok {
		return "", domain.ErrNotFound
	}
	it.QuantityShipped = fulfillment.AdjustShipped(it.QuantityShipped, delta)
	d.salesItems.put(itemID, it)
	return it.SalesOrderID, nil
}

type shipmentRepo struct{ s *Store }

func (r *shipmentRepo) NextShipmentNumber(_ context.Context, year int) (string, error) {
	d, unlock := r.s.lock()
	defer unlock()
	prefix := fmt.Sprintf("SHIP-%d-", year)
	last := 0
	for _, sh := range d.shipments.rows {
		if n, err := strconv.Atoi(strings.TrimPrefix(sh.ShipmentNumber, prefix)); err == nil && strings.HasPrefix(sh.ShipmentNumber, prefix) {
			last = max(last, n)
		}
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}

func (r *shipmentRepo) Create(_ context.Context, sh *entity.Shipment) error {
	d, unlock := r.s.lock()
	defer unlock()
	if sh.ID == "" {
		sh.ID = uuid.New().String()
	}
	for _, o := range d.shipments.rows {
		if o.ShipmentNumber == sh.ShipmentNumber {
			return domain.ErrDuplicate
		}
	}
	head := *sh
	head.Items = nil
	d.shipments.put(sh.ID, head)
	return nil
}

func (r *shipmentRepo) Update(_ context.Context, sh *entity.Shipment) error {
	d, unlock := r.s.lock()
	defer unlock()
	if _, ok := d.shipments.get(sh.ID); !ok {
		return domain.ErrNotFound
	}
	head := *sh
	head.Items = nil
	d.shipments.put(sh.ID, head)
	return nil
}

func (r *shipmentRepo) UpdateStatus(_ context.Context, id, status string, trackingNumber *string) error {
	d, unlock := r.s.lock()
	defer unlock()
	sh, ok := d.shipments.get(id)
	if !ok {
		return domain.ErrNotFound
	}
	sh.Status = status
	if trackingNumber != nil {
		sh.TrackingNumber = *trackingNumber
	}
	d.shipments.put(id, sh)
	return nil
}

func (r *shipmentRepo) Delete(_ context.Context, id string) error {
	d, unlock := r.s.lock()
	defer unlock()
	if !d.shipments.del(id) {
		return domain.ErrNotFound
	}
	for _, it := range d.shipmentItems.all() {
		if it.ShipmentID == id {
			d.shipmentItems.del(it.ID)
		}
	}
	return nil
}

func (d *data) shipmentItemsOf(shipmentID string) []entity.ShipmentItem {
	var out []entity.ShipmentItem
	for _, it := range d.shipmentItems.all() {
		if it.ShipmentID == shipmentID {
			out = append(out, it)
		}
	}
	return out
}

func (r *shipmentRepo) GetByID(_ context.Context, id string) (*entity.Shipment, error) {
	d, unlock := r.s.lock()
	defer unlock()
	sh, ok := d.shipments.get(id)
	if !ok {
		return nil, nil
	}
	sh.Items = d.shipmentItemsOf(id)
	return &sh, nil
}

func (r *shipmentRepo) List(_ context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	d, unlock := r.s.lock()
	defer unlock()
	all := d.shipments.all()
	slices.Reverse(all)
	var out []*entity.Shipment
	for _, sh := range all {
		if f.Status != "" && sh.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && sh.CustomerID != f.CustomerID {
			continue
		}
		sh.Items = d.shipmentItemsOf(sh.ID)
		out = append(out, &sh)
	}
	return page(out, f.Limit, f.Offset), nil
}

func (r *shipmentRepo) CreateItem(_ context.Context, item *entity.ShipmentItem) error {
	d, unlock := r.s.lock()
	defer unlock()
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	d.shipmentItems.put(item.ID, *item)
	return nil
}

func (r *shipmentRepo) ListItems(_ context.Context, shipmentID string) ([]entity.ShipmentItem, error) {
	d, unlock := r.s.lock()
	defer unlock()
	return d.shipmentItemsOf(shipmentID), nil
}

func (r *shipmentRepo) DeleteItems(_ context.Context, shipmentID string) error {
	d, unlock := r.s.lock()
	defer unlock()
	for _, it := range d.shipmentItemsOf(shipmentID) {
		d.shipmentItems.del(it.ID)
	}
	return nil
}

func (r *shipmentRepo) SumShippedByProductionOrder(_ context.Context, productionOrderID string) (int, error) {
	d, unlock := r.s.lock()
	defer unlock()
	total := 0
	for _, it := range d.shipmentItems.rows {
		if it.ProductionOrderID != nil && *it.ProductionOrderID == productionOrderID {
			total += it.Quantity
		}
	}
	return total, nil
}
