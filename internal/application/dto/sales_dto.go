package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesOrderItemRequest línea del body de orden de venta.
type SalesOrderItemRequest struct {
	PartNumberID string           `json:"part_number_id" validate:"required"`
	Quantity     int              `json:"quantity" validate:"gt=0"`
	UnitPrice    *decimal.Decimal `json:"unit_price,omitempty"`
}

// CreateSalesOrderRequest body para POST /api/sales-orders.
type CreateSalesOrderRequest struct {
	PONumber   string                  `json:"po_number" validate:"required,max=100"`
	CustomerID string                  `json:"customer_id" validate:"required"`
	OrderDate  string                  `json:"order_date" validate:"required,datetime=2006-01-02"`
	DueDate    string                  `json:"due_date" validate:"required,datetime=2006-01-02"`
	Notes      string                  `json:"notes,omitempty"`
	Items      []SalesOrderItemRequest `json:"items" validate:"required,min=1,dive"`
}

// SalesOrderFilter query de GET /api/sales-orders.
type SalesOrderFilter struct {
	CustomerID string `query:"customer_id"`
	Status     string `query:"status"`
	PageRequest
}

// SalesOrderItemResponse línea de la orden; los precios se omiten si el rol no puede verlos.
type SalesOrderItemResponse struct {
	ID               string           `json:"id"`
	PartNumberID     string           `json:"part_number_id"`
	PartNumber       string           `json:"part_number,omitempty"`
	Quantity         int              `json:"quantity"`
	UnitPrice        *decimal.Decimal `json:"unit_price,omitempty"`
	TotalPrice       *decimal.Decimal `json:"total_price,omitempty"`
	QuantityProduced int              `json:"quantity_produced"`
	QuantityShipped  int              `json:"quantity_shipped"`
	Status           string           `json:"status"`
}

// SalesOrderResponse orden de venta con sus líneas.
type SalesOrderResponse struct {
	ID         string                   `json:"id"`
	PONumber   string                   `json:"po_number"`
	CustomerID string                   `json:"customer_id"`
	OrderDate  string                   `json:"order_date"`
	DueDate    string                   `json:"due_date"`
	Status     string                   `json:"status"`
	Notes      string                   `json:"notes,omitempty"`
	CreatedAt  time.Time                `json:"created_at"`
	Items      []SalesOrderItemResponse `json:"items"`
}

// ApprovedQuantityResponse saldo embarcable por línea de la orden de venta.
type ApprovedQuantityResponse struct {
	SalesOrderItemID   string `json:"sales_order_item_id"`
	PartNumberID       string `json:"part_number_id"`
	PartNumber         string `json:"part_number"`
	OrderedQuantity    int    `json:"ordered_quantity"`
	ApprovedQuantity   int    `json:"approved_quantity"`
	AlreadyShipped     int    `json:"already_shipped"`
	AvailableToShip    int    `json:"available_to_ship"`
	RemainingToFulfill int    `json:"remaining_to_fulfill"`
}
