package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.InventoryBatchRepository = (*InventoryBatchRepo)(nil)

const batchSelect = `
	SELECT id, batch_number, material_id, supplier_id, heat_number, lot_number, quantity,
		remaining_quantity, unit, received_date, created_by, created_at
	FROM inventory_batches WHERE id = $1`

// InventoryBatchRepo lotes de proveedor (usable con pool o tx).
type InventoryBatchRepo struct {
	q Querier
}

// NewInventoryBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryBatchRepository(q Querier) *InventoryBatchRepo {
	return &InventoryBatchRepo{q: q}
}

// Create persiste un lote recibido.
func (r *InventoryBatchRepo) Create(ctx context.Context, b *entity.InventoryBatch) error {
	if b.ID == "" {
		b.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_batches (id, batch_number, material_id, supplier_id, heat_number, lot_number,
			quantity, remaining_quantity, unit, received_date, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		b.ID, b.BatchNumber, b.MaterialID, b.SupplierID, nullString(b.HeatNumber), nullString(b.LotNumber),
		b.Quantity, b.RemainingQuantity, nullString(b.Unit), b.ReceivedDate, nullString(b.CreatedBy), b.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert inventory batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote; nil si no existe.
func (r *InventoryBatchRepo) GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.get(ctx, batchSelect, id)
}

// GetForUpdate obtiene el lote bloqueando la fila.
func (r *InventoryBatchRepo) GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error) {
	return r.get(ctx, batchSelect+` FOR UPDATE`, id)
}

func (r *InventoryBatchRepo) get(ctx context.Context, query, id string) (*entity.InventoryBatch, error) {
	var b entity.InventoryBatch
	var heat, lot, unit, createdBy *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.BatchNumber, &b.MaterialID, &b.SupplierID, &heat, &lot, &b.Quantity,
		&b.RemainingQuantity, &unit, &b.ReceivedDate, &createdBy, &b.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get inventory batch: %w", err)
	}
	b.HeatNumber = derefString(heat)
	b.LotNumber = derefString(lot)
	b.Unit = derefString(unit)
	b.CreatedBy = derefString(createdBy)
	return &b, nil
}

// ExistsByNumber indica si el número de lote ya está registrado.
func (r *InventoryBatchRepo) ExistsByNumber(ctx context.Context, batchNumber string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM inventory_batches WHERE batch_number = $1)`, batchNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inventory batch: %w", err)
	}
	return exists, nil
}

// UpdateRemaining fija el saldo del lote.
func (r *InventoryBatchRepo) UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE inventory_batches SET remaining_quantity = $2 WHERE id = $1`, id, remaining)
	if err != nil {
		return fmt.Errorf("update batch remaining: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
