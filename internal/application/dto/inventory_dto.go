package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiveBatchRequest body para POST /api/inventory/batches.
type ReceiveBatchRequest struct {
	BatchNumber  string          `json:"batch_number" validate:"required,max=100"`
	MaterialID   string          `json:"material_id" validate:"required"`
	SupplierID   *string         `json:"supplier_id,omitempty"`
	HeatNumber   string          `json:"heat_number,omitempty" validate:"max=100"`
	LotNumber    string          `json:"lot_number,omitempty" validate:"max=100"`
	Quantity     decimal.Decimal `json:"quantity"`
	Unit         string          `json:"unit,omitempty" validate:"max=20"`
	ReceivedDate *string         `json:"received_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// InventoryBatchResponse lote registrado.
type InventoryBatchResponse struct {
	ID                string          `json:"id"`
	BatchNumber       string          `json:"batch_number"`
	MaterialID        string          `json:"material_id"`
	SupplierID        *string         `json:"supplier_id,omitempty"`
	HeatNumber        string          `json:"heat_number,omitempty"`
	LotNumber         string          `json:"lot_number,omitempty"`
	Quantity          decimal.Decimal `json:"quantity"`
	RemainingQuantity decimal.Decimal `json:"remaining_quantity"`
	Unit              string          `json:"unit,omitempty"`
	ReceivedDate      *string         `json:"received_date,omitempty"`
	CreatedAt         time.Time       `json:"created_at"`
}

// RegisterMovementRequest body para POST /api/inventory/movements.
type RegisterMovementRequest struct {
	MovementType  string          `json:"movement_type" validate:"required,oneof=Receipt Issue Return Adjustment"`
	MaterialID    string          `json:"material_id" validate:"required"`
	BatchID       *string         `json:"batch_id,omitempty"`
	Quantity      decimal.Decimal `json:"quantity"`
	ReferenceType string          `json:"reference_type,omitempty" validate:"max=50"`
	ReferenceID   *string         `json:"reference_id,omitempty"`
	Notes         string          `json:"notes,omitempty"`
}

// IssueToProductionRequest body para POST /api/inventory/issue-to-production.
type IssueToProductionRequest struct {
	ProductionOrderID string          `json:"production_order_id" validate:"required"`
	MaterialID        string          `json:"material_id" validate:"required"`
	BatchID           string          `json:"batch_id" validate:"required"`
	Quantity          decimal.Decimal `json:"quantity"`
	Notes             string          `json:"notes,omitempty"`
}

// MovementFilter query de GET /api/inventory/movements.
type MovementFilter struct {
	MaterialID   string `query:"material_id"`
	MovementType string `query:"movement_type"`
	PageRequest
}

// InventoryMovementResponse movimiento del kardex con la existencia resultante del material.
type InventoryMovementResponse struct {
	ID            string           `json:"id"`
	MovementType  string           `json:"movement_type"`
	MaterialID    string           `json:"material_id"`
	BatchID       *string          `json:"batch_id,omitempty"`
	Quantity      decimal.Decimal  `json:"quantity"`
	ReferenceType string           `json:"reference_type,omitempty"`
	ReferenceID   *string          `json:"reference_id,omitempty"`
	Notes         string           `json:"notes,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	MaterialStock *decimal.Decimal `json:"material_stock,omitempty"`
	BelowMinimum  bool             `json:"below_minimum,omitempty"`
}
