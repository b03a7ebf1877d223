package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// ShipmentFilter filtros del listado de embarques.
type ShipmentFilter struct {
	Status     string
	CustomerID string
	Limit      int
	Offset     int
}

// ShipmentRepository puerto de persistencia para Shipment y sus líneas.
type ShipmentRepository interface {
	// NextShipmentNumber siguiente SHIP-YYYY-NNNN; serializa la numeración dentro de la tx.
	NextShipmentNumber(ctx context.Context, year int) (string, error)
	Create(ctx context.Context, s *entity.Shipment) error
	Update(ctx context.Context, s *entity.Shipment) error
	UpdateStatus(ctx context.Context, id, status string, trackingNumber *string) error
	Delete(ctx context.Context, id string) error
	// GetByID incluye las líneas.
	GetByID(ctx context.Context, id string) (*entity.Shipment, error)
	List(ctx context.Context, f ShipmentFilter) ([]*entity.Shipment, error)

	CreateItem(ctx context.Context, item *entity.ShipmentItem) error
	ListItems(ctx context.Context, shipmentID string) ([]entity.ShipmentItem, error)
	DeleteItems(ctx context.Context, shipmentID string) error
	// SumShippedByProductionOrder suma de cantidades de todas las líneas contra la orden.
	SumShippedByProductionOrder(ctx context.Context, productionOrderID string) (int, error)
}
