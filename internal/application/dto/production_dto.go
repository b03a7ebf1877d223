package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductionOrderRequest body para POST /api/production-orders.
type CreateProductionOrderRequest struct {
	PartNumberID     string  `json:"part_number_id" validate:"required"`
	Quantity         int     `json:"quantity" validate:"gt=0"`
	SalesOrderID     *string `json:"sales_order_id,omitempty"`
	SalesOrderItemID *string `json:"sales_order_item_id,omitempty"`
	DueDate          *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Priority         string  `json:"priority,omitempty" validate:"omitempty,oneof=Low Normal High Urgent"`
}

// UpdateProductionOrderRequest body para PUT /api/production-orders/:id. Los contadores no se editan.
type UpdateProductionOrderRequest struct {
	Status    *string `json:"status,omitempty"`
	Priority  *string `json:"priority,omitempty" validate:"omitempty,oneof=Low Normal High Urgent"`
	StartDate *string `json:"start_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DueDate   *string `json:"due_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Quantity  *int    `json:"quantity,omitempty" validate:"omitempty,gt=0"`
}

// ProductionOrderFilter query de GET /api/production-orders.
type ProductionOrderFilter struct {
	Status       string `query:"status"`
	PartNumberID string `query:"part_number_id"`
	PageRequest
}

// ProductionOrderResponse orden de producción con semáforo y avance.
type ProductionOrderResponse struct {
	ID                   string    `json:"id"`
	PONumber             string    `json:"po_number"`
	SalesOrderID         *string   `json:"sales_order_id,omitempty"`
	SalesOrderItemID     *string   `json:"sales_order_item_id,omitempty"`
	PartNumberID         string    `json:"part_number_id"`
	Quantity             int       `json:"quantity"`
	QuantityCompleted    int       `json:"quantity_completed"`
	QuantityScrapped     int       `json:"quantity_scrapped"`
	Status               string    `json:"status"`
	Priority             string    `json:"priority"`
	StartDate            *string   `json:"start_date,omitempty"`
	DueDate              *string   `json:"due_date,omitempty"`
	RiskStatus           string    `json:"risk_status"`
	CompletionPercentage float64   `json:"completion_percentage"`
	CreatedAt            time.Time `json:"created_at"`
}

// CounterFigures par completed/scrapped.
type CounterFigures struct {
	QuantityCompleted int `json:"quantity_completed"`
	QuantityScrapped  int `json:"quantity_scrapped"`
}

// VerifyCountersResponse contadores guardados frente a los recalculados desde inspecciones.
type VerifyCountersResponse struct {
	ProductionOrderID string         `json:"production_order_id"`
	PONumber          string         `json:"po_number"`
	Quantity          int            `json:"quantity"`
	InspectionCount   int            `json:"inspection_count"`
	Stored            CounterFigures `json:"stored"`
	Calculated        CounterFigures `json:"calculated"`
	CompletedMatches  bool           `json:"completed_matches"`
	ScrappedMatches   bool           `json:"scrapped_matches"`
	Reconciled        bool           `json:"reconciled"`
}

// CreateTravelSheetRequest body opcional para POST /api/production-orders/:id/travel-sheets.
type CreateTravelSheetRequest struct {
	BatchNumber string `json:"batch_number,omitempty" validate:"max=100"`
}

// TravelSheetOperationResponse operación de la hoja viajera.
type TravelSheetOperationResponse struct {
	ID              string     `json:"id"`
	TravelSheetID   string     `json:"travel_sheet_id"`
	ProcessID       string     `json:"process_id"`
	ProcessName     string     `json:"process_name"`
	SequenceNumber  int        `json:"sequence_number"`
	QRCode          string     `json:"qr_code"`
	WorkCenterID    *string    `json:"work_center_id,omitempty"`
	Status          string     `json:"status"`
	OperatorID      *string    `json:"operator_id,omitempty"`
	MachineID       *string    `json:"machine_id,omitempty"`
	QuantityGood    int        `json:"quantity_good"`
	QuantityScrap   int        `json:"quantity_scrap"`
	QuantityPending *int       `json:"quantity_pending,omitempty"`
	StartTime       *time.Time `json:"start_time,omitempty"`
	EndTime         *time.Time `json:"end_time,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
	OperatorNotes   string     `json:"operator_notes,omitempty"`
}

// TravelSheetResponse hoja viajera con sus operaciones.
type TravelSheetResponse struct {
	ID                string                         `json:"id"`
	TravelSheetNumber string                         `json:"travel_sheet_number"`
	ProductionOrderID string                         `json:"production_order_id"`
	QRCode            string                         `json:"qr_code"`
	BatchNumber       string                         `json:"batch_number,omitempty"`
	Status            string                         `json:"status"`
	CreatedAt         time.Time                      `json:"created_at"`
	Operations        []TravelSheetOperationResponse `json:"operations"`
}

// TravelSheetDocument datos que se imprimen en la hoja viajera PDF.
type TravelSheetDocument struct {
	TravelSheetNumber string
	QRCode            string
	PONumber          string
	PartNumber        string
	PartDescription   string
	Quantity          int
	DueDate           *time.Time
	BatchNumber       string
	Operations        []TravelSheetDocumentStep
}

// TravelSheetDocumentStep renglón de operación en el PDF.
type TravelSheetDocumentStep struct {
	SequenceNumber      int
	ProcessName         string
	QRCode              string
	StandardTimeMinutes *decimal.Decimal
}
