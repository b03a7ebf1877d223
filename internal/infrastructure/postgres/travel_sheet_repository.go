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

var _ repository.TravelSheetRepository = (*TravelSheetRepo)(nil)

const travelSheetColumns = `id, travel_sheet_number, production_order_id, qr_code, batch_number, status, created_at, updated_at`

const operationSelect = `
	SELECT o.id, o.travel_sheet_id, o.process_id, p.name AS process_name, o.sequence_number, o.qr_code,
		o.work_center_id, o.status, o.operator_id, o.machine_id, o.quantity_good, o.quantity_scrap,
		o.quantity_pending, o.start_time, o.end_time, o.duration_minutes, o.operator_notes,
		o.created_at, o.updated_at
	FROM travel_sheet_operations o
	JOIN processes p ON p.id = o.process_id`

type travelSheetRow struct {
	ID                string    `db:"id"`
	TravelSheetNumber string    `db:"travel_sheet_number"`
	ProductionOrderID string    `db:"production_order_id"`
	QRCode            string    `db:"qr_code"`
	BatchNumber       *string   `db:"batch_number"`
	Status            string    `db:"status"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

func (r travelSheetRow) toEntity() *entity.TravelSheet {
	return &entity.TravelSheet{
		ID:                r.ID,
		TravelSheetNumber: r.TravelSheetNumber,
		ProductionOrderID: r.ProductionOrderID,
		QRCode:            r.QRCode,
		BatchNumber:       derefString(r.BatchNumber),
		Status:            r.Status,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

type operationRow struct {
	ID              string     `db:"id"`
	TravelSheetID   string     `db:"travel_sheet_id"`
	ProcessID       string     `db:"process_id"`
	ProcessName     string     `db:"process_name"`
	SequenceNumber  int        `db:"sequence_number"`
	QRCode          string     `db:"qr_code"`
	WorkCenterID    *string    `db:"work_center_id"`
	Status          string     `db:"status"`
	OperatorID      *string    `db:"operator_id"`
	MachineID       *string    `db:"machine_id"`
	QuantityGood    int        `db:"quantity_good"`
	QuantityScrap   int        `db:"quantity_scrap"`
	QuantityPending *int       `db:"quantity_pending"`
	StartTime       *time.Time `db:"start_time"`
	EndTime         *time.Time `db:"end_time"`
	DurationMinutes *int       `db:"duration_minutes"`
	OperatorNotes   *string    `db:"operator_notes"`
	CreatedAt       time.Time  `db:"created_at"`
	UpdatedAt       time.Time  `db:"updated_at"`
}

func (r operationRow) toEntity() entity.TravelSheetOperation {
	return entity.TravelSheetOperation{
		ID:              r.ID,
		TravelSheetID:   r.TravelSheetID,
		ProcessID:       r.ProcessID,
		ProcessName:     r.ProcessName,
		SequenceNumber:  r.SequenceNumber,
		QRCode:          r.QRCode,
		WorkCenterID:    r.WorkCenterID,
		Status:          r.Status,
		OperatorID:      r.OperatorID,
		MachineID:       r.MachineID,
		QuantityGood:    r.QuantityGood,
		QuantityScrap:   r.QuantityScrap,
		QuantityPending: r.QuantityPending,
		StartTime:       r.StartTime,
		EndTime:         r.EndTime,
		DurationMinutes: r.DurationMinutes,
		OperatorNotes:   derefString(r.OperatorNotes),
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}
}

// TravelSheetRepo implementación sobre PostgreSQL (usable con pool o tx).
type TravelSheetRepo struct {
	q Querier
}

// NewTravelSheetRepository construye el adaptador. Pasar pool o tx (Querier).
func NewTravelSheetRepository(q Querier) *TravelSheetRepo {
	return &TravelSheetRepo{q: q}
}

// Create persiste la hoja y sus operaciones. Llamar dentro de una tx.
func (r *TravelSheetRepo) Create(ctx context.Context, ts *entity.TravelSheet) error {
	if ts.ID == "" {
		ts.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO travel_sheets (id, travel_sheet_number, production_order_id, qr_code, batch_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		ts.ID, ts.TravelSheetNumber, ts.ProductionOrderID, ts.QRCode, nullString(ts.BatchNumber),
		ts.Status, ts.CreatedAt, ts.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert travel sheet: %w", err)
	}
	for i := range ts.Operations {
		op := &ts.Operations[i]
		if op.ID == "" {
			op.ID = uuid.New().String()
		}
		op.TravelSheetID = ts.ID
		_, err := r.q.Exec(ctx, `
			INSERT INTO travel_sheet_operations (id, travel_sheet_id, process_id, sequence_number, qr_code,
				work_center_id, status, quantity_pending, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
			op.ID, op.TravelSheetID, op.ProcessID, op.SequenceNumber, op.QRCode,
			op.WorkCenterID, op.Status, op.QuantityPending, op.CreatedAt, op.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert travel sheet operation %d: %w", op.SequenceNumber, err)
		}
	}
	return nil
}

// GetByID obtiene la hoja con sus operaciones; nil si no existe.
func (r *TravelSheetRepo) GetByID(ctx context.Context, id string) (*entity.TravelSheet, error) {
	var row travelSheetRow
	err := pgxscan.Get(ctx, r.q, &row, `SELECT `+travelSheetColumns+` FROM travel_sheets WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get travel sheet: %w", err)
	}
	ts := row.toEntity()
	if ts.Operations, err = r.listOperations(ctx, ts.ID); err != nil {
		return nil, err
	}
	return ts, nil
}

// ListByProductionOrder hojas de la orden con sus operaciones.
func (r *TravelSheetRepo) ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.TravelSheet, error) {
	return r.list(ctx, squirrel.Eq{"production_order_id": productionOrderID})
}

// ListByProductionOrderAndStatus hojas de la orden en un estado.
func (r *TravelSheetRepo) ListByProductionOrderAndStatus(ctx context.Context, productionOrderID, status string) ([]*entity.TravelSheet, error) {
	return r.list(ctx, squirrel.Eq{"production_order_id": productionOrderID, "status": status})
}

func (r *TravelSheetRepo) list(ctx context.Context, where squirrel.Eq) ([]*entity.TravelSheet, error) {
	sql, args, err := psql.Select(travelSheetColumns).From("travel_sheets").Where(where).OrderBy("created_at").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []travelSheetRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list travel sheets: %w", err)
	}
	list := make([]*entity.TravelSheet, 0, len(rows))
	for _, row := range rows {
		ts := row.toEntity()
		if ts.Operations, err = r.listOperations(ctx, ts.ID); err != nil {
			return nil, err
		}
		list = append(list, ts)
	}
	return list, nil
}

// UpdateStatus cambia el estado de la hoja.
func (r *TravelSheetRepo) UpdateStatus(ctx context.Context, id, status string) error {
	tag, err := r.q.Exec(ctx, `UPDATE travel_sheets SET status = $2, updated_at = NOW() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update travel sheet status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TravelSheetRepo) listOperations(ctx context.Context, travelSheetID string) ([]entity.TravelSheetOperation, error) {
	var rows []operationRow
	err := pgxscan.Select(ctx, r.q, &rows, operationSelect+` WHERE o.travel_sheet_id = $1 ORDER BY o.sequence_number`, travelSheetID)
	if err != nil {
		return nil, fmt.Errorf("list operations: %w", err)
	}
	ops := make([]entity.TravelSheetOperation, 0, len(rows))
	for _, row := range rows {
		ops = append(ops, row.toEntity())
	}
	return ops, nil
}

// GetOperationByID obtiene una operación; nil si no existe.
func (r *TravelSheetRepo) GetOperationByID(ctx context.Context, id string) (*entity.TravelSheetOperation, error) {
	return r.getOperation(ctx, operationSelect+` WHERE o.id = $1`, id)
}

// GetOperationByQRCode busca la operación por el texto exacto de su QR.
func (r *TravelSheetRepo) GetOperationByQRCode(ctx context.Context, qrCode string) (*entity.TravelSheetOperation, error) {
	return r.getOperation(ctx, operationSelect+` WHERE o.qr_code = $1`, qrCode)
}

// GetOperationForUpdate obtiene la operación bloqueando su fila.
func (r *TravelSheetRepo) GetOperationForUpdate(ctx context.Context, id string) (*entity.TravelSheetOperation, error) {
	return r.getOperation(ctx, operationSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r *TravelSheetRepo) getOperation(ctx context.Context, query, arg string) (*entity.TravelSheetOperation, error) {
	var row operationRow
	if err := pgxscan.Get(ctx, r.q, &row, query, arg); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get operation: %w", err)
	}
	op := row.toEntity()
	return &op, nil
}

// StartOperation UPDATE condicional: solo una transición Pending -> In Progress gana.
func (r *TravelSheetRepo) StartOperation(ctx context.Context, id, operatorID string, at time.Time) (bool, error) {
	tag, err := r.q.Exec(ctx, `
		UPDATE travel_sheet_operations
		SET status = $2, operator_id = $3, start_time = $4, updated_at = $4
		WHERE id = $1 AND status = $5`,
		id, entity.OperationStatusInProgress, operatorID, at, entity.OperationStatusPending,
	)
	if err != nil {
		return false, fmt.Errorf("start operation: %w", err)
	}
	return tag.RowsAffected() == 1, nil
}

// UpdateOperation reescribe el cierre de la operación.
func (r *TravelSheetRepo) UpdateOperation(ctx context.Context, op *entity.TravelSheetOperation) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE travel_sheet_operations SET
			status = $2, operator_id = $3, machine_id = $4, quantity_good = $5, quantity_scrap = $6,
			quantity_pending = $7, start_time = $8, end_time = $9, duration_minutes = $10,
			operator_notes = $11, updated_at = $12
		WHERE id = $1`,
		op.ID, op.Status, op.OperatorID, op.MachineID, op.QuantityGood, op.QuantityScrap,
		op.QuantityPending, op.StartTime, op.EndTime, op.DurationMinutes,
		nullString(op.OperatorNotes), op.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update operation: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CountOperationsNotInStatus operaciones de la hoja con estado distinto de status.
func (r *TravelSheetRepo) CountOperationsNotInStatus(ctx context.Context, travelSheetID, status string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM travel_sheet_operations WHERE travel_sheet_id = $1 AND status <> $2`,
		travelSheetID, status,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count operations: %w", err)
	}
	return n, nil
}
