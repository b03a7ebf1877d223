package dto

import "time"

// QualityInspectionRequest body para POST y PUT /api/quality-inspections.
// En PUT production_order_id se ignora: la inspección no cambia de orden.
type QualityInspectionRequest struct {
	ProductionOrderID string  `json:"production_order_id" validate:"required"`
	TravelSheetID     *string `json:"travel_sheet_id,omitempty"`
	Status            string  `json:"status" validate:"required"`
	QuantityInspected int     `json:"quantity_inspected" validate:"min=0"`
	QuantityApproved  int     `json:"quantity_approved" validate:"min=0"`
	QuantityRejected  int     `json:"quantity_rejected" validate:"min=0"`
	RejectionReason   string  `json:"rejection_reason,omitempty"`
	Notes             string  `json:"notes,omitempty"`
}

// InspectionFilter query de GET /api/quality-inspections.
type InspectionFilter struct {
	Status            string `query:"status"`
	ProductionOrderID string `query:"production_order_id"`
	PageRequest
}

// QualityInspectionResponse inspección persistida.
type QualityInspectionResponse struct {
	ID                string    `json:"id"`
	ProductionOrderID string    `json:"production_order_id"`
	TravelSheetID     *string   `json:"travel_sheet_id,omitempty"`
	InspectorID       string    `json:"inspector_id,omitempty"`
	InspectionDate    time.Time `json:"inspection_date"`
	Status            string    `json:"status"`
	QuantityInspected int       `json:"quantity_inspected"`
	QuantityApproved  int       `json:"quantity_approved"`
	QuantityRejected  int       `json:"quantity_rejected"`
	RejectionReason   string    `json:"rejection_reason,omitempty"`
	Notes             string    `json:"notes,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
}

// PendingInspectionResponse hoja viajera completada sin inspección.
type PendingInspectionResponse struct {
	TravelSheetID     string    `json:"travel_sheet_id"`
	TravelSheetNumber string    `json:"travel_sheet_number"`
	ProductionOrderID string    `json:"production_order_id"`
	BatchNumber       string    `json:"batch_number,omitempty"`
	CompletedAt       time.Time `json:"completed_at"`
}
