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
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.SalesOrderRepository = (*SalesOrderRepo)(nil)

const salesOrderColumns = `id, po_number, customer_id, order_date, due_date, status, notes, created_by, created_at, updated_at`

const salesOrderItemSelect = `
	SELECT i.id, i.sales_order_id, i.part_number_id, pn.part_number, i.quantity, i.unit_price, i.total_price,
		i.quantity_produced, i.quantity_shipped, i.status, i.created_at
	FROM sales_order_items i
	JOIN part_numbers pn ON pn.id = i.part_number_id`

type salesOrderRow struct {
	ID         string    `db:"id"`
	PONumber   string    `db:"po_number"`
	CustomerID string    `db:"customer_id"`
	OrderDate  time.Time `db:"order_date"`
	DueDate    time.Time `db:"due_date"`
	Status     string    `db:"status"`
	Notes      *string   `db:"notes"`
	CreatedBy  *string   `db:"created_by"`
	CreatedAt  time.Time `db:"created_at"`
	UpdatedAt  time.Time `db:"updated_at"`
}

func (r salesOrderRow) toEntity() *entity.SalesOrder {
	return &entity.SalesOrder{
		ID:         r.ID,
		PONumber:   r.PONumber,
		CustomerID: r.CustomerID,
		OrderDate:  r.OrderDate,
		DueDate:    r.DueDate,
		Status:     r.Status,
		Notes:      derefString(r.Notes),
		CreatedBy:  derefString(r.CreatedBy),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

type salesOrderItemRow struct {
	ID               string           `db:"id"`
	SalesOrderID     string           `db:"sales_order_id"`
	PartNumberID     string           `db:"part_number_id"`
	PartNumber       string           `db:"part_number"`
	Quantity         int              `db:"quantity"`
	UnitPrice        *decimal.Decimal `db:"unit_price"`
	TotalPrice       *decimal.Decimal `db:"total_price"`
	QuantityProduced int              `db:"quantity_produced"`
	QuantityShipped  int              `db:"quantity_shipped"`
	Status           string           `db:"status"`
	CreatedAt        time.Time        `db:"created_at"`
}

func (r salesOrderItemRow) toEntity() entity.SalesOrderItem {
	return entity.SalesOrderItem{
		ID:               r.ID,
		SalesOrderID:     r.SalesOrderID,
		PartNumberID:     r.PartNumberID,
		PartNumber:       r.PartNumber,
		Quantity:         r.Quantity,
		UnitPrice:        r.UnitPrice,
		TotalPrice:       r.TotalPrice,
		QuantityProduced: r.QuantityProduced,
		QuantityShipped:  r.QuantityShipped,
		Status:           r.Status,
		CreatedAt:        r.CreatedAt,
	}
}

// SalesOrderRepo implementación sobre PostgreSQL (usable con pool o tx).
type SalesOrderRepo struct {
	q Querier
}

// NewSalesOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesOrderRepository(q Querier) *SalesOrderRepo {
	return &SalesOrderRepo{q: q}
}

// Create persiste la orden y sus líneas. Llamar dentro de una tx.
func (r *SalesOrderRepo) Create(ctx context.Context, so *entity.SalesOrder) error {
	if so.ID == "" {
		so.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales_orders (id, po_number, customer_id, order_date, due_date, status, notes, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		so.ID, so.PONumber, so.CustomerID, so.OrderDate, so.DueDate, so.Status,
		nullString(so.Notes), nullString(so.CreatedBy), so.CreatedAt, so.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sales order: %w", err)
	}
	for i := range so.Items {
		it := &so.Items[i]
		if it.ID == "" {
			it.ID = uuid.New().String()
		}
		it.SalesOrderID = so.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO sales_order_items (id, sales_order_id, part_number_id, quantity, unit_price, total_price,
				quantity_produced, quantity_shipped, status, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			it.ID, it.SalesOrderID, it.PartNumberID, it.Quantity, it.UnitPrice, it.TotalPrice,
			it.QuantityProduced, it.QuantityShipped, it.Status, it.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert sales order item: %w", err)
		}
	}
	return nil
}

// GetByID obtiene la orden con sus líneas; nil si no existe.
func (r *SalesOrderRepo) GetByID(ctx context.Context, id string) (*entity.SalesOrder, error) {
	var row salesOrderRow
	err := pgxscan.Get(ctx, r.q, &row, `SELECT `+salesOrderColumns+` FROM sales_orders WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order: %w", err)
	}
	so := row.toEntity()
	if so.Items, err = r.ListItems(ctx, so.ID); err != nil {
		return nil, err
	}
	return so, nil
}

// ExistsByPONumber indica si ya existe una orden con ese PO de cliente.
func (r *SalesOrderRepo) ExistsByPONumber(ctx context.Context, poNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM sales_orders WHERE po_number = $1)`, poNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists sales order: %w", err)
	}
	return exists, nil
}

// List lista órdenes (sin líneas) con filtros, vencimiento más próximo primero.
func (r *SalesOrderRepo) List(ctx context.Context, f repository.SalesOrderFilter) ([]*entity.SalesOrder, error) {
	b := psql.Select(salesOrderColumns).From("sales_orders").OrderBy("due_date", "created_at DESC")
	if f.CustomerID != "" {
		b = b.Where(squirrel.Eq{"customer_id": f.CustomerID})
	}
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	sql, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []salesOrderRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list sales orders: %w", err)
	}
	list := make([]*entity.SalesOrder, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// UpdateStatus fija el estado derivado de la orden.
func (r *SalesOrderRepo) UpdateStatus(ctx context.Context, id, status string) error {
	_, err := r.q.Exec(ctx,
		`UPDATE sales_orders SET status = $2, updated_at = NOW() WHERE id = $1 AND status <> $2`, id, status)
	if err != nil {
		return fmt.Errorf("update sales order status: %w", err)
	}
	return nil
}

// GetItemByID obtiene una línea; nil si no existe.
func (r *SalesOrderRepo) GetItemByID(ctx context.Context, id string) (*entity.SalesOrderItem, error) {
	return r.getItem(ctx, salesOrderItemSelect+` WHERE i.id = $1`, id)
}

// ListItems líneas de la orden en orden de captura.
func (r *SalesOrderRepo) ListItems(ctx context.Context, salesOrderID string) ([]entity.SalesOrderItem, error) {
	var rows []salesOrderItemRow
	err := pgxscan.Select(ctx, r.q, &rows, salesOrderItemSelect+` WHERE i.sales_order_id = $1 ORDER BY i.created_at, i.id`, salesOrderID)
	if err != nil {
		return nil, fmt.Errorf("list sales order items: %w", err)
	}
	items := make([]entity.SalesOrderItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

// FindItemByPart primera línea de la orden para el número de parte.
func (r *SalesOrderRepo) FindItemByPart(ctx context.Context, salesOrderID, partNumberID string) (*entity.SalesOrderItem, error) {
	return r.getItem(ctx,
		salesOrderItemSelect+` WHERE i.sales_order_id = $1 AND i.part_number_id = $2 ORDER BY i.created_at, i.id LIMIT 1`,
		salesOrderID, partNumberID)
}

// FindOpenItemForCustomer línea con saldo de una orden Open/Partial del cliente, vencimiento más antiguo.
func (r *SalesOrderRepo) FindOpenItemForCustomer(ctx context.Context, customerID, partNumberID string) (*entity.SalesOrderItem, error) {
	query := salesOrderItemSelect + `
		JOIN sales_orders so ON so.id = i.sales_order_id
		WHERE so.customer_id = $1 AND so.status IN ('Open', 'Partial')
			AND i.part_number_id = $2 AND i.quantity > i.quantity_shipped
		ORDER BY so.due_date, so.created_at
		LIMIT 1`
	return r.getItem(ctx, query, customerID, partNumberID)
}

func (r *SalesOrderRepo) getItem(ctx context.Context, query string, args ...any) (*entity.SalesOrderItem, error) {
	var row salesOrderItemRow
	if err := pgxscan.Get(ctx, r.q, &row, query, args...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales order item: %w", err)
	}
	it := row.toEntity()
	return &it, nil
}

// AdjustItemShipped suma delta (con signo) a quantity_shipped sin bajar de cero.
// Una línea inexistente devuelve domain.ErrNotFound.
func (r *SalesOrderRepo) AdjustItemShipped(ctx context.Context, itemID string, delta int) (string, error) {
	var salesOrderID string
	err := r.q.QueryRow(ctx, `
		UPDATE sales_order_items SET quantity_shipped = GREATEST(0, quantity_shipped + $2)
		WHERE id = $1
		RETURNING sales_order_id`, itemID, delta,
	).Scan(&salesOrderID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", domain.ErrNotFound
		}
		return "", fmt.Errorf("adjust item shipped: %w", err)
	}
	return salesOrderID, nil
}
