// Package apptest repositorios en memoria y TxRunner para probar los casos de
// uso sin Postgres. Un callback que devuelve error revierte todo lo que escribió.
package apptest

import (
	"context"
	"sync"

	"github.com/jhoicas/aurexia-api/internal/application/inventory"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/application/quality"
	"github.com/jhoicas/aurexia-api/internal/application/sales"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var (
	_ quality.TxRunner    = (*Store)(nil)
	_ shipping.TxRunner   = (*Store)(nil)
	_ production.TxRunner = (*Store)(nil)
	_ shopfloor.TxRunner  = (*Store)(nil)
	_ sales.TxRunner      = (*Store)(nil)
	_ inventory.TxRunner  = (*Store)(nil)
)

type data struct {
	orders        *table[entity.ProductionOrder]
	inspections   *table[entity.QualityInspection]
	sheets        *table[entity.TravelSheet]
	operations    *table[entity.TravelSheetOperation]
	salesOrders   *table[entity.SalesOrder]
	salesItems    *table[entity.SalesOrderItem]
	shipments     *table[entity.Shipment]
	shipmentItems *table[entity.ShipmentItem]
	customers     *table[entity.Customer]
	parts         *table[entity.PartNumber]
	routings      *table[entity.PartRouting]
	users         *table[entity.User]
	roles         *table[entity.Role]
	materials     *table[entity.Material]
	batches       *table[entity.InventoryBatch]
	movements     *table[entity.InventoryMovement]
}

func newData() *data {
	return &data{
		orders:        newTable[entity.ProductionOrder](),
		inspections:   newTable[entity.QualityInspection](),
		sheets:        newTable[entity.TravelSheet](),
		operations:    newTable[entity.TravelSheetOperation](),
		salesOrders:   newTable[entity.SalesOrder](),
		salesItems:    newTable[entity.SalesOrderItem](),
		shipments:     newTable[entity.Shipment](),
		shipmentItems: newTable[entity.ShipmentItem](),
		customers:     newTable[entity.Customer](),
		parts:         newTable[entity.PartNumber](),
		routings:      newTable[entity.PartRouting](),
		users:         newTable[entity.User](),
		roles:         newTable[entity.Role](),
		materials:     newTable[entity.Material](),
		batches:       newTable[entity.InventoryBatch](),
		movements:     newTable[entity.InventoryMovement](),
	}
}

func (d *data) clone() *data {
	return &data{
		orders:        d.orders.clone(),
		inspections:   d.inspections.clone(),
		sheets:        d.sheets.clone(),
		operations:    d.operations.clone(),
		salesOrders:   d.salesOrders.clone(),
		salesItems:    d.salesItems.clone(),
		shipments:     d.shipments.clone(),
		shipmentItems: d.shipmentItems.clone(),
		customers:     d.customers.clone(),
		parts:         d.parts.clone(),
		routings:      d.routings.clone(),
		users:         d.users.clone(),
		roles:         d.roles.clone(),
		materials:     d.materials.clone(),
		batches:       d.batches.clone(),
		movements:     d.movements.clone(),
	}
}

// Store base en memoria compartida por todos los repositorios que expone.
type Store struct {
	mu sync.Mutex
	d  *data
}

// New crea un Store vacío.
func New() *Store {
	return &Store{d: newData()}
}

func (s *Store) lock() (*data, func()) {
	s.mu.Lock()
	return s.d, s.mu.Unlock
}

// run ejecuta fn y restaura la foto previa si falla.
func (s *Store) run(fn func() error) error {
	s.mu.Lock()
	snap := s.d.clone()
	s.mu.Unlock()
	if err := fn(); err != nil {
		s.mu.Lock()
		s.d = snap
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *Store) Orders() repository.ProductionOrderRepository { return &orderRepo{s} }
func (s *Store) Inspections() repository.QualityInspectionRepository { return &inspectionRepo{s} }
func (s *Store) TravelSheets() repository.TravelSheetRepository { return &travelSheetRepo{s} }
func (s *Store) SalesOrders() repository.SalesOrderRepository { return &salesOrderRepo{s} }
func (s *Store) Shipments() repository.ShipmentRepository { return &shipmentRepo{s} }
func (s *Store) Customers() repository.CustomerRepository { return &customerRepo{s} }
func (s *Store) Parts() repository.PartNumberRepository { return &partRepo{s} }
func (s *Store) Users() repository.UserRepository { return &userRepo{s} }
func (s *Store) Materials() repository.MaterialRepository { return &materialRepo{s} }
func (s *Store) Batches() repository.InventoryBatchRepository { return &batchRepo{s} }
func (s *Store) Movements() repository.InventoryMovementRepository { return &movementRepo{s} }

func (s *Store) RunQuality(_ context.Context, fn func(quality.TxRepos) error) error {
	return s.run(func() error {
		return fn(quality.TxRepos{Orders: s.Orders(), Inspections: s.Inspections(), TravelSheets: s.TravelSheets()})
	})
}

func (s *Store) RunShipping(_ context.Context, fn func(shipping.TxRepos) error) error {
	return s.run(func() error {
		return fn(shipping.TxRepos{
			Shipments:   s.Shipments(),
			Orders:      s.Orders(),
			Inspections: s.Inspections(),
			SalesOrders: s.SalesOrders(),
			Customers:   s.Customers(),
			Parts:       s.Parts(),
		})
	})
}

func (s *Store) RunProduction(_ context.Context, fn func(production.TxRepos) error) error {
	return s.run(func() error {
		return fn(production.TxRepos{
			Orders:       s.Orders(),
			Inspections:  s.Inspections(),
			TravelSheets: s.TravelSheets(),
			Parts:        s.Parts(),
		})
	})
}

func (s *Store) RunShopfloor(_ context.Context, fn func(shopfloor.TxRepos) error) error {
	return s.run(func() error {
		return fn(shopfloor.TxRepos{TravelSheets: s.TravelSheets(), Orders: s.Orders()})
	})
}

func (s *Store) RunSales(_ context.Context, fn func(sales.TxRepos) error) error {
	return s.run(func() error {
		return fn(sales.TxRepos{SalesOrders: s.SalesOrders(), Customers: s.Customers(), Parts: s.Parts()})
	})
}

func (s *Store) RunInventory(_ context.Context, fn func(inventory.TxRepos) error) error {
	return s.run(func() error {
		return fn(inventory.TxRepos{
			Materials: s.Materials(),
			Batches:   s.Batches(),
			Movements: s.Movements(),
			Orders:    s.Orders(),
		})
	})
}

// ──────────────────────────────────────────────────────────────────────────────
// Datos maestros (no tienen alta por API)
// ──────────────────────────────────────────────────────────────────────────────

func (s *Store) AddCustomer(c entity.Customer) {
	d, unlock := s.lock()
	defer unlock()
	d.customers.put(c.ID, c)
}

// AddPart registra el número de parte con su ruta.
func (s *Store) AddPart(p entity.PartNumber, routing ...entity.PartRouting) {
	d, unlock := s.lock()
	defer unlock()
	d.parts.put(p.ID, p)
	for _, r := range routing {
		r.PartNumberID = p.ID
		d.routings.put(r.ID, r)
	}
}

func (s *Store) AddUser(u entity.User) {
	d, unlock := s.lock()
	defer unlock()
	d.users.put(u.ID, u)
}

func (s *Store) AddRole(r entity.Role) {
	d, unlock := s.lock()
	defer unlock()
	d.roles.put(r.Name, r)
}

func (s *Store) AddMaterial(m entity.Material) {
	d, unlock := s.lock()
	defer unlock()
	d.materials.put(m.ID, m)
}

// Order lectura directa de una orden de producción para asserts.
func (s *Store) Order(id string) entity.ProductionOrder {
	d, unlock := s.lock()
	defer unlock()
	po, _ := d.orders.get(id)
	return po
}

// SalesItem lectura directa de una línea de orden de venta.
func (s *Store) SalesItem(id string) entity.SalesOrderItem {
	d, unlock := s.lock()
	defer unlock()
	it, _ := d.salesItems.get(id)
	return it
}

// SalesOrderStatus estado actual de la orden de venta.
func (s *Store) SalesOrderStatus(id string) string {
	d, unlock := s.lock()
	defer unlock()
	so, _ := d.salesOrders.get(id)
	return so.Status
}

// CountShipments embarques persistidos.
func (s *Store) CountShipments() int {
	d, unlock := s.lock()
	defer unlock()
	return len(d.shipments.rows)
}

// AllMovements kardex completo en orden de inserción.
func (s *Store) AllMovements() []entity.InventoryMovement {
	d, unlock := s.lock()
	defer unlock()
	return d.movements.all()
}

// Material lectura directa de un material.
func (s *Store) Material(id string) entity.Material {
	d, unlock := s.lock()
	defer unlock()
	m, _ := d.materials.get(id)
	return m
}

// Batch lectura directa de un lote.
func (s *Store) Batch(id string) entity.InventoryBatch {
	d, unlock := s.lock()
	defer unlock()
	b, _ := d.batches.get(id)
	return b
}
