package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

var _ repository.DashboardRepository = (*DashboardRepo)(nil)

// DashboardRepo consultas agregadas del tablero (solo lectura).
type DashboardRepo struct {
	q Querier
}

// NewDashboardRepository construye el adaptador.
func NewDashboardRepository(q Querier) *DashboardRepo {
	return &DashboardRepo{q: q}
}

// CountSalesOrdersByStatus órdenes de venta en cualquiera de los estados dados.
func (r *DashboardRepo) CountSalesOrdersByStatus(ctx context.Context, statuses ...string) (int, error) {
	sql, args, err := psql.Select("COUNT(*)").From("sales_orders").Where(squirrel.Eq{"status": statuses}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("build query: %w", err)
	}
	var n int
	if err := r.q.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, fmt.Errorf("count sales orders: %w", err)
	}
	return n, nil
}

// CountShippedSalesOrders órdenes de venta distintas con al menos un embarque.
func (r *DashboardRepo) CountShippedSalesOrders(ctx context.Context) (int, error) {
	var n int
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(DISTINCT sales_order_id) FROM shipments WHERE sales_order_id IS NOT NULL`,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count shipped sales orders: %w", err)
	}
	return n, nil
}

// CountProductionOrdersByStatus órdenes de producción en un estado.
func (r *DashboardRepo) CountProductionOrdersByStatus(ctx context.Context, status string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM production_orders WHERE status = $1`, status).Scan(&n); err != nil {
		return 0, fmt.Errorf("count production orders: %w", err)
	}
	return n, nil
}

// ListOpenSchedule fecha compromiso y estado de las órdenes activas.
func (r *DashboardRepo) ListOpenSchedule(ctx context.Context) ([]repository.ScheduleRow, error) {
	sql, args, err := psql.Select("due_date", "status").From("production_orders").
		Where(squirrel.NotEq{"status": []string{entity.ProductionStatusCompleted, entity.ProductionStatusCancelled}}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []repository.ScheduleRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list open schedule: %w", err)
	}
	return rows, nil
}

// ListProductionBoard órdenes de producción con cliente, parte y cantidad embarcada.
func (r *DashboardRepo) ListProductionBoard(ctx context.Context, f repository.ProductionBoardFilter) ([]repository.ProductionBoardRow, error) {
	b := psql.Select(
		"po.id", "po.po_number", "so.po_number AS sales_order_number", "c.name AS customer_name",
		"pn.part_number", "pn.description AS part_description",
		"po.quantity", "po.quantity_completed", "po.quantity_scrapped",
		"COALESCE((SELECT SUM(si.quantity) FROM shipment_items si WHERE si.production_order_id = po.id), 0) AS quantity_shipped",
		"po.status", "po.due_date",
	).
		From("production_orders po").
		Join("part_numbers pn ON pn.id = po.part_number_id").
		LeftJoin("sales_orders so ON so.id = po.sales_order_id").
		LeftJoin("customers c ON c.id = so.customer_id").
		OrderBy("po.due_date NULLS LAST", "po.created_at")
	if f.Status != "" {
		b = b.Where(squirrel.Eq{"po.status": f.Status})
	}
	if f.CustomerID != "" {
		b = b.Where(squirrel.Eq{"so.customer_id": f.CustomerID})
	}
	sql, args, err := paginate(b, f.Limit, f.Offset).ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}
	var rows []repository.ProductionBoardRow
	if err := pgxscan.Select(ctx, r.q, &rows, sql, args...); err != nil {
		return nil, fmt.Errorf("list production board: %w", err)
	}
	return rows, nil
}

// WorkCenterLoad conteo de operaciones por estado en cada centro de trabajo.
func (r *DashboardRepo) WorkCenterLoad(ctx context.Context) ([]repository.WorkCenterLoadRow, error) {
	query := `
		SELECT wc.id AS work_center_id, wc.name AS work_center_name,
			COUNT(o.id) FILTER (WHERE o.status = 'Pending') AS pending,
			COUNT(o.id) FILTER (WHERE o.status = 'In Progress') AS in_progress,
			COUNT(o.id) FILTER (WHERE o.status = 'Completed') AS completed
		FROM work_centers wc
		LEFT JOIN travel_sheet_operations o ON o.work_center_id = wc.id
		GROUP BY wc.id, wc.name, wc.code
		ORDER BY wc.code`
	var rows []repository.WorkCenterLoadRow
	if err := pgxscan.Select(ctx, r.q, &rows, query); err != nil {
		return nil, fmt.Errorf("work center load: %w", err)
	}
	return rows, nil
}

// DailyProduction piezas buenas y scrap de operaciones cerradas desde since, por día.
func (r *DashboardRepo) DailyProduction(ctx context.Context, since time.Time) ([]repository.DailyProductionRow, error) {
	query := `
		SELECT DATE(end_time) AS day,
			COALESCE(SUM(quantity_good), 0) AS good,
			COALESCE(SUM(quantity_scrap), 0) AS scrap
		FROM travel_sheet_operations
		WHERE status = 'Completed' AND end_time >= $1
		GROUP BY DATE(end_time)
		ORDER BY DATE(end_time)`
	var rows []repository.DailyProductionRow
	if err := pgxscan.Select(ctx, r.q, &rows, query, since); err != nil {
		return nil, fmt.Errorf("daily production: %w", err)
	}
	return rows, nil
}
