package dto

// DashboardStatsDTO respuesta de GET /api/dashboard/stats.
type DashboardStatsDTO struct {
	TotalOpenOrders      int `json:"total_open_orders"`      // Open + Partial
	TotalCompletedOrders int `json:"total_completed_orders"`
	TotalShippedOrders   int `json:"total_shipped_orders"`   // órdenes de venta con al menos un embarque
	TotalInProduction    int `json:"total_in_production"`
	TotalDelayed         int `json:"total_delayed"`          // Red
	TotalAtRisk          int `json:"total_at_risk"`          // Yellow
	TotalOnTime          int `json:"total_on_time"`          // Green
}

// ProductionBoardFilter query de GET /api/dashboard/production.
type ProductionBoardFilter struct {
	Status     string `query:"status"`
	RiskStatus string `query:"risk_status"`
	CustomerID string `query:"customer_id"`
	PageRequest
}

// ProductionBoardItemDTO renglón del tablero de producción.
type ProductionBoardItemDTO struct {
	ID                   string  `json:"id"`
	PONumber             string  `json:"po_number"`
	SalesOrderNumber     *string `json:"sales_order_number,omitempty"`
	CustomerName         *string `json:"customer_name,omitempty"`
	PartNumber           string  `json:"part_number"`
	PartDescription      *string `json:"part_description,omitempty"`
	Quantity             int     `json:"quantity"`
	QuantityCompleted    int     `json:"quantity_completed"`
	QuantityShipped      int     `json:"quantity_shipped"`
	QuantityScrapped     int     `json:"quantity_scrapped"`
	Status               string  `json:"status"`
	DueDate              *string `json:"due_date,omitempty"`
	RiskStatus           string  `json:"risk_status"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// WorkCenterLoadDTO carga de un centro de trabajo.
type WorkCenterLoadDTO struct {
	WorkCenterID   string `json:"work_center_id"`
	WorkCenterName string `json:"work_center_name"`
	Pending        int    `json:"pending"`
	InProgress     int    `json:"in_progress"`
	Completed      int    `json:"completed"`
	Total          int    `json:"total"`
}

// DailyProductionDTO producción de un día.
type DailyProductionDTO struct {
	Date  string `json:"date"`
	Good  int    `json:"good"`
	Scrap int    `json:"scrap"`
}
