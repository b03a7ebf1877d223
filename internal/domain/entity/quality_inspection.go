package entity

import "time"

// Resultado de una inspección de calidad.
const (
	InspectionStatusReleased = "Released"
	InspectionStatusRejected = "Rejected"
)

// QualityInspection registro de inspección de un lote de una orden de producción.
type QualityInspection struct {
	ID                string
	TravelSheetID     *string
	ProductionOrderID string
	InspectorID       string
	InspectionDate    time.Time
	Status            string
	QuantityInspected int
	QuantityApproved  int
	QuantityRejected  int
	RejectionReason   string
	Notes             string
	CreatedAt         time.Time
}
