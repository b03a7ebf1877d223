package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ShipmentItemRequest línea del body de embarque.
type ShipmentItemRequest struct {
	SalesOrderItemID  *string          `json:"sales_order_item_id,omitempty"`
	PartNumberID      string           `json:"part_number_id" validate:"required"`
	ProductionOrderID *string          `json:"production_order_id,omitempty"`
	Quantity          int              `json:"quantity" validate:"gt=0"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
}

// ShipmentRequest body para POST y PUT /api/shipments.
type ShipmentRequest struct {
	CustomerID     string                `json:"customer_id" validate:"required"`
	SalesOrderID   *string               `json:"sales_order_id,omitempty"`
	ShipmentDate   string                `json:"shipment_date" validate:"required,datetime=2006-01-02"`
	Status         string                `json:"status,omitempty"`
	TrackingNumber string                `json:"tracking_number,omitempty" validate:"max=100"`
	Notes          string                `json:"notes,omitempty"`
	Items          []ShipmentItemRequest `json:"items" validate:"required,min=1,dive"`
}

// ShipmentStatusRequest body para PATCH /api/shipments/:id/status.
type ShipmentStatusRequest struct {
	Status         string  `json:"status" validate:"required"`
	TrackingNumber *string `json:"tracking_number,omitempty"`
}

// ShipmentFilter query de GET /api/shipments.
type ShipmentFilter struct {
	Status     string `query:"status"`
	CustomerID string `query:"customer_id"`
	PageRequest
}

// ShipmentItemResponse línea persistida.
type ShipmentItemResponse struct {
	ID                string           `json:"id"`
	SalesOrderItemID  *string          `json:"sales_order_item_id,omitempty"`
	PartNumberID      string           `json:"part_number_id"`
	ProductionOrderID *string          `json:"production_order_id,omitempty"`
	Quantity          int              `json:"quantity"`
	UnitPrice         *decimal.Decimal `json:"unit_price,omitempty"`
}

// ShipmentResponse embarque con sus líneas.
type ShipmentResponse struct {
	ID             string                 `json:"id"`
	ShipmentNumber string                 `json:"shipment_number"`
	CustomerID     string                 `json:"customer_id"`
	SalesOrderID   *string                `json:"sales_order_id,omitempty"`
	ShipmentDate   string                 `json:"shipment_date"`
	Status         string                 `json:"status"`
	TrackingNumber string                 `json:"tracking_number,omitempty"`
	Notes          string                 `json:"notes,omitempty"`
	CreatedAt      time.Time              `json:"created_at"`
	Items          []ShipmentItemResponse `json:"items"`
}
