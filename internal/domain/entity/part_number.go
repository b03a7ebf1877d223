package entity

import "github.com/shopspring/decimal"

// PartNumber número de parte fabricado (pertenece opcionalmente a un cliente).
type PartNumber struct {
	ID           string
	PartNumber   string
	CustomerID   *string
	Description  string
	MaterialType string
	UnitPrice    *decimal.Decimal
	IsActive     bool
}

// PartRouting paso de la ruta de fabricación de un número de parte.
type PartRouting struct {
	ID                  string
	PartNumberID        string
	ProcessID           string
	ProcessName         string
	WorkCenterID        *string
	SequenceNumber      int
	StandardTimeMinutes *decimal.Decimal
}
