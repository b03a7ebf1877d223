package dto

// QRScanRequest body para POST /api/qr-scanner/scan.
type QRScanRequest struct {
	BadgeID string `json:"badge_id" validate:"required"`
	QRCode  string `json:"qr_code" validate:"required"`
}

// QRScanResponse resultado del escaneo; siempre se responde 200.
type QRScanResponse struct {
	Success       bool    `json:"success"`
	Message       string  `json:"message"`
	OperationID   *string `json:"operation_id,omitempty"`
	TravelSheetID *string `json:"travel_sheet_id,omitempty"`
	ProcessName   *string `json:"process_name,omitempty"`
	Status        *string `json:"status,omitempty"`
}

// CompleteOperationRequest body para PUT /api/qr-scanner/operations/:id/complete.
type CompleteOperationRequest struct {
	QuantityGood    int     `json:"quantity_good" validate:"min=0"`
	QuantityScrap   int     `json:"quantity_scrap" validate:"min=0"`
	QuantityPending *int    `json:"quantity_pending,omitempty" validate:"omitempty,min=0"`
	MachineID       *string `json:"machine_id,omitempty"`
	OperatorNotes   string  `json:"operator_notes,omitempty"`
}

// CompleteOperationResponse respuesta de cierre de operación.
type CompleteOperationResponse struct {
	Success   bool                         `json:"success"`
	Message   string                       `json:"message"`
	Operation TravelSheetOperationResponse `json:"operation"`
}
