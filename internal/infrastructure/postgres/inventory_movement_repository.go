package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

type movementRow struct {
	ID            string          `db:"id"`
	MovementType  string          `db:"movement_type"`
	BatchID       *string         `db:"batch_id"`
	MaterialID    string          `db:"material_id"`
	Quantity      decimal.Decimal `db:"quantity"`
	ReferenceType *string         `db:"reference_type"`
	ReferenceID   *string         `db:"reference_id"`
	Notes         *string         `db:"notes"`
	CreatedBy     *string         `db:"created_by"`
	CreatedAt     time.Time       `db:"created_at"`
}

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx).
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de material.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO inventory_movements (id, movement_type, batch_id, material_id, quantity,
			reference_type, reference_id, notes, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.MovementType, m.BatchID, m.MaterialID, m.Quantity,
		nullString(m.ReferenceType), m.ReferenceID, nullString(m.Notes), nullString(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// List kardex con filtros, más recientes primero.
func (r *InventoryMovementRepo) List(ctx context.Context, f repository.MovementFilter) ([]*entity.InventoryMovement, error) {
	b := psql.Select("id", "movement_type", "batch_id", "material_id", "quantity",
		"reference_type", "reference_id", "notes", "created_by", "created_at").
		From("inventory_movements").
		OrderBy("created_at DESC")
	if f.MaterialID != "" {
		b = b.Where(squirrel.Eq{"material_id": f.MaterialID})
	}
	if f.MovementType != "" {
		b = b.Where(squirrel.Eq{"movement_type": f.MovementType})
	}
	sql, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []movementRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	list := make([]*entity.InventoryMovement, 0, len(rows))
	for _, row := range rows {
		list = append(list, &entity.InventoryMovement{
			ID:            row.ID,
			MovementType:  row.MovementType,
			BatchID:       row.BatchID,
			MaterialID:    row.MaterialID,
			Quantity:      row.Quantity,
			ReferenceType: derefString(row.ReferenceType),
			ReferenceID:   row.ReferenceID,
			Notes:         derefString(row.Notes),
			CreatedBy:     derefString(row.CreatedBy),
			CreatedAt:     row.CreatedAt,
		})
	}
	return list, nil
}
