package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de cumplimiento de la orden de venta (derivados de lo embarcado).
const (
	SalesOrderStatusOpen      = "Open"
	SalesOrderStatusPartial   = "Partial"
	SalesOrderStatusCompleted = "Completed"
)

// SalesOrderItemStatusPending estado inicial de la línea.
const SalesOrderItemStatusPending = "Pending"

// SalesOrder orden de compra del cliente (PO del cliente).
type SalesOrder struct {
	ID         string
	PONumber   string
	CustomerID string
	OrderDate  time.Time
	DueDate    time.Time
	Status     string
	Notes      string
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Items      []SalesOrderItem
}

// SalesOrderItem línea de la orden de venta. QuantityShipped es el acumulado
// mantenido por los embarques y nunca baja de cero.
type SalesOrderItem struct {
	ID               string
	SalesOrderID     string
	PartNumberID     string
	PartNumber       string // solo lectura (join)
	Quantity         int
	UnitPrice        *decimal.Decimal
	TotalPrice       *decimal.Decimal
	QuantityProduced int
	QuantityShipped  int
	Status           string
	CreatedAt        time.Time
}
