package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento de material.
const (
	MovementTypeReceipt    = "Receipt"    // entrada de proveedor
	MovementTypeIssue      = "Issue"      // salida a producción
	MovementTypeReturn     = "Return"     // devolución a almacén
	MovementTypeAdjustment = "Adjustment" // ajuste con signo
)

// Tipos de documento de referencia.
const (
	ReferenceInventoryBatch  = "InventoryBatch"
	ReferenceProductionOrder = "ProductionOrder"
)

// InventoryMovement movimiento de material, opcionalmente contra un lote.
type InventoryMovement struct {
	ID            string
	MovementType  string
	BatchID       *string
	MaterialID    string
	Quantity      decimal.Decimal
	ReferenceType string
	ReferenceID   *string
	Notes         string
	CreatedBy     string
	CreatedAt     time.Time
}
