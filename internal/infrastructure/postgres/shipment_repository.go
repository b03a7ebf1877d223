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

var _ repository.ShipmentRepository = (*ShipmentRepo)(nil)

const shipmentColumns = `id, shipment_number, customer_id, sales_order_id, shipment_date, status,
	tracking_number, notes, created_by, created_at`

const shipmentItemColumns = `id, shipment_id, sales_order_item_id, part_number_id, production_order_id,
	quantity, unit_price, created_at`

// shipmentNumberLock llave del advisory lock que serializa la numeración de embarques.
const shipmentNumberLock = 7401

type shipmentRow struct {
	ID             string    `db:"id"`
	ShipmentNumber string    `db:"shipment_number"`
	CustomerID     string    `db:"customer_id"`
	SalesOrderID   *string   `db:"sales_order_id"`
	ShipmentDate   time.Time `db:"shipment_date"`
	Status         string    `db:"status"`
	TrackingNumber *string   `db:"tracking_number"`
	Notes          *string   `db:"notes"`
	CreatedBy      *string   `db:"created_by"`
	CreatedAt      time.Time `db:"created_at"`
}

func (r shipmentRow) toEntity() *entity.Shipment {
	return &entity.Shipment{
		ID:             r.ID,
		ShipmentNumber: r.ShipmentNumber,
		CustomerID:     r.CustomerID,
		SalesOrderID:   r.SalesOrderID,
		ShipmentDate:   r.ShipmentDate,
		Status:         r.Status,
		TrackingNumber: derefString(r.TrackingNumber),
		Notes:          derefString(r.Notes),
		CreatedBy:      derefString(r.CreatedBy),
		CreatedAt:      r.CreatedAt,
	}
}

type shipmentItemRow struct {
	ID                string           `db:"id"`
	ShipmentID        string           `db:"shipment_id"`
	SalesOrderItemID  *string          `db:"sales_order_item_id"`
	PartNumberID      string           `db:"part_number_id"`
	ProductionOrderID *string          `db:"production_order_id"`
	Quantity          int              `db:"quantity"`
	UnitPrice         *decimal.Decimal `db:"unit_price"`
	CreatedAt         time.Time        `db:"created_at"`
}

// ShipmentRepo implementación sobre PostgreSQL (usable con pool o tx).
type ShipmentRepo struct {
	q Querier
}

// NewShipmentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewShipmentRepository(q Querier) *ShipmentRepo {
	return &ShipmentRepo{q: q}
}

// NextShipmentNumber toma un advisory lock de la tx y devuelve el siguiente SHIP-YYYY-NNNN.
func (r *ShipmentRepo) NextShipmentNumber(ctx context.Context, year int) (string, error) {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, shipmentNumberLock); err != nil {
		return "", fmt.Errorf("lock shipment numbering: %w", err)
	}
	prefix := fmt.Sprintf("SHIP-%d-", year)
	var last int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(MAX(CAST(SUBSTRING(shipment_number FROM $2) AS INT)), 0)
		FROM shipments WHERE shipment_number LIKE $1`,
		prefix+"%", len(prefix)+1,
	).Scan(&last)
	if err != nil {
		return "", fmt.Errorf("last shipment number: %w", err)
	}
	return fmt.Sprintf("%s%04d", prefix, last+1), nil
}

// Create persiste la cabecera del embarque (las líneas van por CreateItem).
func (r *ShipmentRepo) Create(ctx context.Context, s *entity.Shipment) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipments (id, shipment_number, customer_id, sales_order_id, shipment_date, status,
			tracking_number, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.ShipmentNumber, s.CustomerID, s.SalesOrderID, s.ShipmentDate, s.Status,
		nullString(s.TrackingNumber), nullString(s.Notes), nullString(s.CreatedBy), s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert shipment: %w", err)
	}
	return nil
}

// Update reescribe la cabecera.
func (r *ShipmentRepo) Update(ctx context.Context, s *entity.Shipment) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE shipments SET customer_id = $2, sales_order_id = $3, shipment_date = $4, status = $5,
			tracking_number = $6, notes = $7
		WHERE id = $1`,
		s.ID, s.CustomerID, s.SalesOrderID, s.ShipmentDate, s.Status,
		nullString(s.TrackingNumber), nullString(s.Notes),
	)
	if err != nil {
		return fmt.Errorf("update shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStatus cambia el estado y, si viene, el número de guía.
func (r *ShipmentRepo) UpdateStatus(ctx context.Context, id, status string, trackingNumber *string) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE shipments SET status = $2, tracking_number = COALESCE($3, tracking_number)
		WHERE id = $1`, id, status, trackingNumber)
	if err != nil {
		return fmt.Errorf("update shipment status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina el embarque; las líneas caen por cascada.
func (r *ShipmentRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM shipments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete shipment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID obtiene el embarque con sus líneas; nil si no existe.
func (r *ShipmentRepo) GetByID(ctx context.Context, id string) (*entity.Shipment, error) {
	var row shipmentRow
	err := pgxscan.Get(ctx, r.q, &row, `SELECT `+shipmentColumns+` FROM shipments WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shipment: %w", err)
	}
	s := row.toEntity()
	if s.Items, err = r.ListItems(ctx, s.ID); err != nil {
		return nil, err
	}
	return s, nil
}

// List lista embarques (sin líneas) con filtros, más recientes primero.
func (r *ShipmentRepo) List(ctx context.Context, f repository.ShipmentFilter) ([]*entity.Shipment, error) {
	b := psql.Select(shipmentColumns).From("shipments").OrderBy("shipment_date DESC", "created_at DESC")
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.CustomerID != "" {
		b = b.Where(squirrel.Eq{"customer_id": f.CustomerID})
	}
	sql, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []shipmentRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list shipments: %w", err)
	}
	list := make([]*entity.Shipment, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}

// CreateItem persiste una línea de embarque.
func (r *ShipmentRepo) CreateItem(ctx context.Context, item *entity.ShipmentItem) error {
	if item.ID == "" {
		item.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO shipment_items (id, shipment_id, sales_order_item_id, part_number_id, production_order_id,
			quantity, unit_price, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		item.ID, item.ShipmentID, item.SalesOrderItemID, item.PartNumberID, item.ProductionOrderID,
		item.Quantity, item.UnitPrice, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert shipment item: %w", err)
	}
	return nil
}

// ListItems líneas del embarque en orden de captura.
func (r *ShipmentRepo) ListItems(ctx context.Context, shipmentID string) ([]entity.ShipmentItem, error) {
	var rows []shipmentItemRow
	err := pgxscan.Select(ctx, r.q, &rows,
		`SELECT `+shipmentItemColumns+` FROM shipment_items WHERE shipment_id = $1 ORDER BY created_at, id`, shipmentID)
	if err != nil {
		return nil, fmt.Errorf("list shipment items: %w", err)
	}
	items := make([]entity.ShipmentItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, entity.ShipmentItem{
			ID:                row.ID,
			ShipmentID:        row.ShipmentID,
			SalesOrderItemID:  row.SalesOrderItemID,
			PartNumberID:      row.PartNumberID,
			ProductionOrderID: row.ProductionOrderID,
			Quantity:          row.Quantity,
			UnitPrice:         row.UnitPrice,
			CreatedAt:         row.CreatedAt,
		})
	}
	return items, nil
}

// DeleteItems elimina todas las líneas del embarque.
func (r *ShipmentRepo) DeleteItems(ctx context.Context, shipmentID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM shipment_items WHERE shipment_id = $1`, shipmentID); err != nil {
		return fmt.Errorf("delete shipment items: %w", err)
	}
	return nil
}

// SumShippedByProductionOrder total embarcado contra la orden en todos los embarques.
func (r *ShipmentRepo) SumShippedByProductionOrder(ctx context.Context, productionOrderID string) (int, error) {
	var total int
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(quantity), 0) FROM shipment_items WHERE production_order_id = $1`, productionOrderID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("sum shipped by production order: %w", err)
	}
	return total, nil
}
