package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Material materia prima con su existencia total.
type Material struct {
	ID           string
	Name         string
	Type         string
	Unit         string
	CurrentStock decimal.Decimal
	MinimumStock *decimal.Decimal
	IsActive     bool
}

// InventoryBatch lote recibido de proveedor; RemainingQuantity se consume con salidas.
type InventoryBatch struct {
	ID                string
	BatchNumber       string
	MaterialID        string
	SupplierID        *string
	HeatNumber        string // colada
	LotNumber         string
	Quantity          decimal.Decimal
	RemainingQuantity decimal.Decimal
	Unit              string
	ReceivedDate      *time.Time
	CreatedBy         string
	CreatedAt         time.Time
}
