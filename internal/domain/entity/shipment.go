package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de embarque.
const (
	ShipmentStatusPrepared  = "Prepared"
	ShipmentStatusShipped   = "Shipped"
	ShipmentStatusDelivered = "Delivered"
)

// ShipmentStatuses en el orden en que se muestran en errores de validación.
var ShipmentStatuses = []string{ShipmentStatusPrepared, ShipmentStatusShipped, ShipmentStatusDelivered}

// Shipment embarque a un cliente, opcionalmente ligado a una orden de venta.
type Shipment struct {
	ID             string
	ShipmentNumber string // SHIP-YYYY-NNNN
	CustomerID     string
	SalesOrderID   *string
	ShipmentDate   time.Time
	Status         string
	TrackingNumber string
	Notes          string
	CreatedBy      string
	CreatedAt      time.Time
	Items          []ShipmentItem
}

// ShipmentItem línea de embarque; toma cantidad aprobada de una orden de producción.
type ShipmentItem struct {
	ID                string
	ShipmentID        string
	SalesOrderItemID  *string
	PartNumberID      string
	ProductionOrderID *string
	Quantity          int
	UnitPrice         *decimal.Decimal
	CreatedAt         time.Time
}

// IsValidShipmentStatus indica si s es Prepared, Shipped o Delivered.
func IsValidShipmentStatus(s string) bool {
	for _, st := range ShipmentStatuses {
		if st == s {
			return true
		}
	}
	return false
}
