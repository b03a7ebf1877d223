package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.MaterialRepository = (*MaterialRepo)(nil)

const materialSelect = `SELECT id, name, type, unit, current_stock, minimum_stock, is_active FROM materials WHERE id = $1`

// MaterialRepo existencia de materiales (usable con pool o tx).
type MaterialRepo struct {
	q Querier
}

// NewMaterialRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMaterialRepository(q Querier) *MaterialRepo {
	return &MaterialRepo{q: q}
}

// GetByID obtiene un material; nil si no existe.
func (r *MaterialRepo) GetByID(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, materialSelect, id)
}

// GetForUpdate obtiene el material bloqueando la fila.
func (r *MaterialRepo) GetForUpdate(ctx context.Context, id string) (*entity.Material, error) {
	return r.get(ctx, materialSelect+` FOR UPDATE`, id)
}

func (r *MaterialRepo) get(ctx context.Context, query, id string) (*entity.Material, error) {
	var m entity.Material
	var typ, unit *string
	err := r.q.QueryRow(ctx, query, id).Scan(&m.ID, &m.Name, &typ, &unit, &m.CurrentStock, &m.MinimumStock, &m.IsActive)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get material: %w", err)
	}
	m.Type = derefString(typ)
	m.Unit = derefString(unit)
	return &m, nil
}

// UpdateStock fija la existencia total del material.
func (r *MaterialRepo) UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error {
	tag, err := r.q.Exec(ctx, `UPDATE materials SET current_stock = $2 WHERE id = $1`, id, stock)
	if err != nil {
		return fmt.Errorf("update material stock: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
