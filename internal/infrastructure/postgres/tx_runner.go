package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/aurexia-api/internal/application/inventory"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/application/quality"
	"github.com/jhoicas/aurexia-api/internal/application/sales"
	"github.com/jhoicas/aurexia-api/internal/application/shipping"
	"github.com/jhoicas/aurexia-api/internal/application/shopfloor"
)

var (
	_ quality.TxRunner    = (*TxRunner)(nil)
	_ shipping.TxRunner   = (*TxRunner)(nil)
	_ production.TxRunner = (*TxRunner)(nil)
	_ shopfloor.TxRunner  = (*TxRunner)(nil)
	_ sales.TxRunner      = (*TxRunner)(nil)
	_ inventory.TxRunner  = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia la transacción, ejecuta fn con la tx y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// RunQuality repos atados a la tx para el roll-up de inspecciones.
func (r *TxRunner) RunQuality(ctx context.Context, fn func(quality.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(quality.TxRepos{
			Orders:       NewProductionOrderRepository(tx),
			Inspections:  NewQualityInspectionRepository(tx),
			TravelSheets: NewTravelSheetRepository(tx),
		})
	})
}

// RunShipping repos atados a la tx para crear, editar o borrar embarques.
func (r *TxRunner) RunShipping(ctx context.Context, fn func(shipping.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(shipping.TxRepos{
			Shipments:   NewShipmentRepository(tx),
			Orders:      NewProductionOrderRepository(tx),
			Inspections: NewQualityInspectionRepository(tx),
			SalesOrders: NewSalesOrderRepository(tx),
			Customers:   NewCustomerRepository(tx),
			Parts:       NewPartNumberRepository(tx),
		})
	})
}

// RunProduction repos atados a la tx para órdenes y hojas viajeras.
func (r *TxRunner) RunProduction(ctx context.Context, fn func(production.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(production.TxRepos{
			Orders:       NewProductionOrderRepository(tx),
			Inspections:  NewQualityInspectionRepository(tx),
			TravelSheets: NewTravelSheetRepository(tx),
			Parts:        NewPartNumberRepository(tx),
		})
	})
}

// RunShopfloor repos atados a la tx para cerrar operaciones.
func (r *TxRunner) RunShopfloor(ctx context.Context, fn func(shopfloor.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(shopfloor.TxRepos{
			TravelSheets: NewTravelSheetRepository(tx),
			Orders:       NewProductionOrderRepository(tx),
		})
	})
}

// RunSales repos atados a la tx para crear órdenes de venta.
func (r *TxRunner) RunSales(ctx context.Context, fn func(sales.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(sales.TxRepos{
			SalesOrders: NewSalesOrderRepository(tx),
			Customers:   NewCustomerRepository(tx),
			Parts:       NewPartNumberRepository(tx),
		})
	})
}

// RunInventory repos atados a la tx para movimientos de material.
func (r *TxRunner) RunInventory(ctx context.Context, fn func(inventory.TxRepos) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(inventory.TxRepos{
			Materials: NewMaterialRepository(tx),
			Batches:   NewInventoryBatchRepository(tx),
			Movements: NewInventoryMovementRepository(tx),
			Orders:    NewProductionOrderRepository(tx),
		})
	})
}
