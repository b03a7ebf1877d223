package entity

import "time"

// Estados de la hoja viajera.
const (
	TravelSheetStatusActive    = "Active"
	TravelSheetStatusCompleted = "Completed"
)

// Estados de una operación de la hoja viajera.
const (
	OperationStatusPending    = "Pending"
	OperationStatusInProgress = "In Progress"
	OperationStatusCompleted  = "Completed"
)

// Tipos de contenido QR.
const (
	QRTypeTravelSheet = "travel_sheet"
	QRTypeOperation   = "operation"
)

// TravelSheet hoja viajera: ruta impresa de una orden de producción.
type TravelSheet struct {
	ID                string
	TravelSheetNumber string
	ProductionOrderID string
	QRCode            string // JSON de TravelSheetQR
	BatchNumber       string
	Status            string
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Operations        []TravelSheetOperation
}

// TravelSheetOperation paso de la ruta que el operador inicia y cierra con su gafete.
type TravelSheetOperation struct {
	ID              string
	TravelSheetID   string
	ProcessID       string
	ProcessName     string // solo lectura (join)
	SequenceNumber  int
	QRCode          string // JSON de OperationQR
	WorkCenterID    *string
	Status          string
	OperatorID      *string
	MachineID       *string
	QuantityGood    int
	QuantityScrap   int
	QuantityPending *int
	StartTime       *time.Time
	EndTime         *time.Time
	DurationMinutes *int
	OperatorNotes   string
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// TravelSheetQR contenido del QR de la hoja viajera.
type TravelSheetQR struct {
	Type       string `json:"type"`
	Number     string `json:"number"`
	PO         string `json:"po"`
	PartNumber string `json:"part_number"`
}

// OperationQR contenido del QR de una operación.
type OperationQR struct {
	Type          string `json:"type"`
	TravelSheetID string `json:"travel_sheet_id"`
	Sequence      int    `json:"sequence"`
	ProcessID     string `json:"process_id"`
}
