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

var _ repository.QualityInspectionRepository = (*QualityInspectionRepo)(nil)

const inspectionColumns = `id, travel_sheet_id, production_order_id, inspector_id, inspection_date, status,
	quantity_inspected, quantity_approved, quantity_rejected, rejection_reason, notes, created_at`

type inspectionRow struct {
	ID                string    `db:"id"`
	TravelSheetID     *string   `db:"travel_sheet_id"`
	ProductionOrderID string    `db:"production_order_id"`
	InspectorID       *string   `db:"inspector_id"`
	InspectionDate    time.Time `db:"inspection_date"`
	Status            string    `db:"status"`
	QuantityInspected int       `db:"quantity_inspected"`
	QuantityApproved  int       `db:"quantity_approved"`
	QuantityRejected  int       `db:"quantity_rejected"`
	RejectionReason   *string   `db:"rejection_reason"`
	Notes             *string   `db:"notes"`
	CreatedAt         time.Time `db:"created_at"`
}

func (r inspectionRow) toEntity() *entity.QualityInspection {
	return &entity.QualityInspection{
		ID:                r.ID,
		TravelSheetID:     r.TravelSheetID,
		ProductionOrderID: r.ProductionOrderID,
		InspectorID:       derefString(r.InspectorID),
		InspectionDate:    r.InspectionDate,
		Status:            r.Status,
		QuantityInspected: r.QuantityInspected,
		QuantityApproved:  r.QuantityApproved,
		QuantityRejected:  r.QuantityRejected,
		RejectionReason:   derefString(r.RejectionReason),
		Notes:             derefString(r.Notes),
		CreatedAt:         r.CreatedAt,
	}
}

// QualityInspectionRepo implementación sobre PostgreSQL (usable con pool o tx).
type QualityInspectionRepo struct {
	q Querier
}

// NewQualityInspectionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewQualityInspectionRepository(q Querier) *QualityInspectionRepo {
	return &QualityInspectionRepo{q: q}
}

// Create persiste una inspección.
func (r *QualityInspectionRepo) Create(ctx context.Context, qi *entity.QualityInspection) error {
	if qi.ID == "" {
		qi.ID = uuid.New().String()
	}
	query := `
		INSERT INTO quality_inspections (id, travel_sheet_id, production_order_id, inspector_id, inspection_date,
			status, quantity_inspected, quantity_approved, quantity_rejected, rejection_reason, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		qi.ID, qi.TravelSheetID, qi.ProductionOrderID, nullString(qi.InspectorID), qi.InspectionDate,
		qi.Status, qi.QuantityInspected, qi.QuantityApproved, qi.QuantityRejected,
		nullString(qi.RejectionReason), nullString(qi.Notes), qi.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert quality inspection: %w", err)
	}
	return nil
}

// GetByID obtiene una inspección por ID; nil si no existe.
func (r *QualityInspectionRepo) GetByID(ctx context.Context, id string) (*entity.QualityInspection, error) {
	var row inspectionRow
	err := pgxscan.Get(ctx, r.q, &row, `SELECT `+inspectionColumns+` FROM quality_inspections WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quality inspection: %w", err)
	}
	return row.toEntity(), nil
}

// Update reescribe resultado y cantidades; la orden de producción no cambia.
func (r *QualityInspectionRepo) Update(ctx context.Context, qi *entity.QualityInspection) error {
	query := `
		UPDATE quality_inspections SET
			travel_sheet_id = $2, status = $3, quantity_inspected = $4, quantity_approved = $5,
			quantity_rejected = $6, rejection_reason = $7, notes = $8
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query,
		qi.ID, qi.TravelSheetID, qi.Status, qi.QuantityInspected, qi.QuantityApproved,
		qi.QuantityRejected, nullString(qi.RejectionReason), nullString(qi.Notes),
	)
	if err != nil {
		return fmt.Errorf("update quality inspection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina una inspección por ID.
func (r *QualityInspectionRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM quality_inspections WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete quality inspection: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// ListByProductionOrder todas las inspecciones de la orden (para gate y recálculo).
func (r *QualityInspectionRepo) ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.QualityInspection, error) {
	b := psql.Select(inspectionColumns).From("quality_inspections").
		Where(squirrel.Eq{"production_order_id": productionOrderID}).
		OrderBy("inspection_date")
	return r.selectRows(ctx, b)
}

// List lista inspecciones con filtros, más recientes primero.
func (r *QualityInspectionRepo) List(ctx context.Context, f repository.InspectionFilter) ([]*entity.QualityInspection, error) {
	b := psql.Select(inspectionColumns).From("quality_inspections").OrderBy("inspection_date DESC")
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"status": f.Status})
	}
	if f.ProductionOrderID != "" {
		b = b.Where(squirrel.Eq{"production_order_id": f.ProductionOrderID})
	}
	return r.selectRows(ctx, paginate(b, f.Limit, f.Offset))
}

// ExistsForTravelSheet indica si la hoja viajera ya tiene inspección.
func (r *QualityInspectionRepo) ExistsForTravelSheet(ctx context.Context, travelSheetID string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM quality_inspections WHERE travel_sheet_id = $1)`, travelSheetID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists inspection for travel sheet: %w", err)
	}
	return exists, nil
}

func (r *QualityInspectionRepo) selectRows(ctx context.Context, b squirrel.SelectBuilder) ([]*entity.QualityInspection, error) {
	sql, args, err := b.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []inspectionRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list quality inspections: %w", err)
	}
	list := make([]*entity.QualityInspection, 0, len(rows))
	for _, row := range rows {
		list = append(list, row.toEntity())
	}
	return list, nil
}
