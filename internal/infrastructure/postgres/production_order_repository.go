package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.ProductionOrderRepository = (*ProductionOrderRepo)(nil)

const productionOrderColumns = `id, po_number, sales_order_id, sales_order_item_id, part_number_id,
	quantity, quantity_completed, quantity_scrapped, status, start_date, due_date,
	priority, created_by, created_at, updated_at`

// productionOrderRow fila de production_orders.
type productionOrderRow struct {
	ID                string     `db:"id"`
	PONumber          string     `db:"po_number"`
	SalesOrderID      *string    `db:"sales_order_id"`
	SalesOrderItemID  *string    `db:"sales_order_item_id"`
	PartNumberID      string     `db:"part_number_id"`
	Quantity          int        `db:"quantity"`
	QuantityCompleted int        `db:"quantity_completed"`
	QuantityScrapped  int        `db:"quantity_scrapped"`
	Status            string     `db:"status"`
	StartDate         *time.Time `db:"start_date"`
	DueDate           *time.Time `db:"due_date"`
	Priority          string     `db:"priority"`
	CreatedBy         *string    `db:"created_by"`
	CreatedAt         time.Time  `db:"created_at"`
	UpdatedAt         time.Time  `db:"updated_at"`
}

func (r productionOrderRow) toEntity() *entity.ProductionOrder {
	return &entity.ProductionOrder{
		ID:                r.ID,
		PONumber:          r.PONumber,
		SalesOrderID:      r.SalesOrderID,
		SalesOrderItemID:  r.SalesOrderItemID,
		PartNumberID:      r.PartNumberID,
		Quantity:          r.Quantity,
		QuantityCompleted: r.QuantityCompleted,
		QuantityScrapped:  r.QuantityScrapped,
		Status:            r.Status,
		StartDate:         r.StartDate,
		DueDate:           r.DueDate,
		Priority:          r.Priority,
		CreatedBy:         derefString(r.CreatedBy),
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

// ProductionOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type ProductionOrderRepo struct {
	q Querier
}

// NewProductionOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductionOrderRepository(q Querier) *ProductionOrderRepo {
	return &ProductionOrderRepo{q: q}
}

// Create persiste una orden de producción.
func (r *ProductionOrderRepo) Create(ctx context.Context, po *entity.ProductionOrder) error {
	if po.ID == "" {
		po.ID = uuid.New().String()
	}
	query := `
		INSERT INTO production_orders (id, po_number, sales_order_id, sales_order_item_id, part_number_id,
			quantity, quantity_completed, quantity_scrapped, status, start_date, due_date, priority,
			created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.PONumber, po.SalesOrderID, po.SalesOrderItemID, po.PartNumberID,
		po.Quantity, po.QuantityCompleted, po.QuantityScrapped, po.Status, po.StartDate, po.DueDate,
		po.Priority, nullString(po.CreatedBy), po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert production order: %w", err)
	}
	return nil
}

// GetByID obtiene una orden por ID; nil si no existe.
func (r *ProductionOrderRepo) GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+productionOrderColumns+` FROM production_orders WHERE id = $1`, id)
}

// GetForUpdate obtiene la orden bloqueando la fila hasta el fin de la tx.
func (r *ProductionOrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error) {
	return r.get(ctx, `SELECT `+productionOrderColumns+` FROM production_orders WHERE id = $1 FOR UPDATE`, id)
}

func (r *ProductionOrderRepo) get(ctx context.Context, query, id string) (*entity.ProductionOrder, error) {
	var row productionOrderRow
	if err := pgxscan.Get(ctx, r.q, &row, query, id); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get production order: %w", err)
	}
	return row.toEntity(), nil
}

// Update reescribe estado, fechas, prioridad, cantidad y contadores.
func (r *ProductionOrderRepo) Update(ctx context.Context, po *entity.ProductionOrder) error {
	query := `
		UPDATE production_orders SET
			quantity = $2, quantity_completed = $3, quantity_scrapped = $4, status = $5,
			start_date = $6, due_date = $7, priority = $8, updated_at = $9
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		po.ID, po.Quantity, po.QuantityCompleted, po.QuantityScrapped, po.Status,
		po.StartDate, po.DueDate, po.Priority, po.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update production order: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List lista órdenes con filtros, más recientes primero.
func (r *ProductionOrderRepo) List(ctx context.Context, f repository.ProductionOrderFilter) ([]*entity.ProductionOrder, error) {
	b := psql.Select(productionOrderColumns).From("production_orders").OrderBy("created_at DESC")
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.PartNumberID != "" {
		b = b.Where(squirrel.Eq{"part_number_id": f.PartNumberID})
	}
	return r.selectRows(ctx, paginate(b, f.Limit, f.Offset))
}

// ListBySalesOrderAndPart órdenes de una parte ligadas a la orden de venta.
func (r *ProductionOrderRepo) ListBySalesOrderAndPart(ctx context.Context, salesOrderID, partNumberID string) ([]*entity.ProductionOrder, error) {
	b := psql.Select(productionOrderColumns).From("production_orders").
		Where(squirrel.Eq{"sales_order_id": salesOrderID, "part_number_id": partNumberID}).
		OrderBy("created_at")
	return r.selectRows(ctx, b)
}

func (r *ProductionOrderRepo) selectRows(ctx context.Context, b squirrel.SelectBuilder) ([]*entity.ProductionOrder, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []productionOrderRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list production orders: %w", err)
	}
	list := make([]*entity.ProductionOrder, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
