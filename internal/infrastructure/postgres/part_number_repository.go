package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.PartNumberRepository = (*PartNumberRepo)(nil)

type routingRow struct {
	ID                  string           `db:"id"`
	PartNumberID        string           `db:"part_number_id"`
	ProcessID           string           `db:"process_id"`
	ProcessName         string           `db:"process_name"`
	WorkCenterID        *string          `db:"work_center_id"`
	SequenceNumber      int              `db:"sequence_number"`
	StandardTimeMinutes *decimal.Decimal `db:"standard_time_minutes"`
}

// PartNumberRepo lectura de números de parte y rutas (usable con pool o tx).
type PartNumberRepo struct {
	q Querier
}

// NewPartNumberRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPartNumberRepository(q Querier) *PartNumberRepo {
	return &PartNumberRepo{q: q}
}

// GetByID obtiene un número de parte; nil si no existe.
func (r *PartNumberRepo) GetByID(ctx context.Context, id string) (*entity.PartNumber, error) {
	query := `
		SELECT id, part_number, customer_id, description, material_type, unit_price, is_active
		FROM part_numbers WHERE id = $1`
	var p entity.PartNumber
	var description, materialType *string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.PartNumber, &p.CustomerID, &description, &materialType, &p.UnitPrice, &p.IsActive,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get part number: %w", err)
	}
	p.Description = derefString(description)
	p.MaterialType = derefString(materialType)
	return &p, nil
}

// ListRouting ruta ordenada por secuencia; el centro de trabajo sale del proceso.
func (r *PartNumberRepo) ListRouting(ctx context.Context, partNumberID string) ([]entity.PartRouting, error) {
	query := `
		SELECT r.id, r.part_number_id, r.process_id, p.name AS process_name, p.work_center_id,
			r.sequence_number, r.standard_time_minutes
		FROM part_routings r
		JOIN processes p ON p.id = r.process_id
		WHERE r.part_number_id = $1
		ORDER BY r.sequence_number`
	var rows []routingRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, partNumberID); err != nil {
		return nil, fmt.Errorf("list routing: %w", err)
	}
	steps := make([]entity.PartRouting, 0, len(rows))
	for _, row := range rows {
		steps = append(steps, entity.PartRouting{
			ID:                  row.ID,
			PartNumberID:        row.PartNumberID,
			ProcessID:           row.ProcessID,
			ProcessName:         row.ProcessName,
			WorkCenterID:        row.WorkCenterID,
			SequenceNumber:      row.SequenceNumber,
			StandardTimeMinutes: row.StandardTimeMinutes,
		})
	}
	return steps, nil
}
