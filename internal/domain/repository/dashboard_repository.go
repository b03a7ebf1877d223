package repository

import (
	"context"
	"time"
)

// ScheduleRow fecha compromiso y estado de una orden de producción activa.
type ScheduleRow struct {
	DueDate *time.Time `db:"due_date"`
	Status  string     `db:"status"`
}

// ProductionBoardFilter filtros SQL del tablero de producción; el riesgo se filtra en memoria.
type ProductionBoardFilter struct {
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// ProductionBoardRow fila cruda del tablero de producción.
type ProductionBoardRow struct {
	ID                string     `db:"id"`
	PONumber          string     `db:"po_number"`
	SalesOrderNumber  *string    `db:"sales_order_number"`
	CustomerName      *string    `db:"customer_name"`
	PartNumber        string     `db:"part_number"`
	PartDescription   *string    `db:"part_description"`
	Quantity          int        `db:"quantity"`
	QuantityCompleted int        `db:"quantity_completed"`
	QuantityScrapped  int        `db:"quantity_scrapped"`
	QuantityShipped   int        `db:"quantity_shipped"`
	Status            string     `db:"status"`
	DueDate           *time.Time `db:"due_date"`
}

// WorkCenterLoadRow operaciones por estado en un centro de trabajo.
type WorkCenterLoadRow struct {
	WorkCenterID   string `db:"work_center_id"`
	WorkCenterName string `db:"work_center_name"`
	Pending        int    `db:"pending"`
	InProgress     int    `db:"in_progress"`
	Completed      int    `db:"completed"`
}

// DailyProductionRow piezas buenas y scrap cerradas en un día.
type DailyProductionRow struct {
	Day   time.Time `db:"day"`
	Good  int       `db:"good"`
	Scrap int       `db:"scrap"`
}

// DashboardRepository consultas read-only del tablero.
type DashboardRepository interface {
	CountSalesOrdersByStatus(ctx context.Context, statuses ...string) (int, error)
	CountShippedSalesOrders(ctx context.Context) (int, error)
	CountProductionOrdersByStatus(ctx context.Context, status string) (int, error)
	// ListOpenSchedule órdenes de producción que no están Completed ni Cancelled.
	ListOpenSchedule(ctx context.Context) ([]ScheduleRow, error)
	ListProductionBoard(ctx context.Context, f ProductionBoardFilter) ([]ProductionBoardRow, error)
	WorkCenterLoad(ctx context.Context) ([]WorkCenterLoadRow, error)
	DailyProduction(ctx context.Context, since time.Time) ([]DailyProductionRow, error)
}
