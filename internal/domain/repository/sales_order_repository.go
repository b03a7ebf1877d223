package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// SalesOrderFilter filtros del listado de órdenes de venta.
type SalesOrderFilter struct {
	CustomerID string
	Status     string
	Limit      int
	Offset     int
}

// SalesOrderRepository puerto de persistencia para SalesOrder y sus líneas.
type SalesOrderRepository interface {
	// Create persiste la orden con sus líneas.
	Create(ctx context.Context, so *entity.SalesOrder) error
	// GetByID incluye las líneas.
	GetByID(ctx context.Context, id string) (*entity.SalesOrder, error)
	ExistsByPONumber(ctx context.Context, poNumber string) (bool, error)
	List(ctx context.Context, f SalesOrderFilter) ([]*entity.SalesOrder, error)
	UpdateStatus(ctx context.Context, id, status string) error

	GetItemByID(ctx context.Context, id string) (*entity.SalesOrderItem, error)
	ListItems(ctx context.Context, salesOrderID string) ([]entity.SalesOrderItem, error)
	// FindItemByPart primera línea de la orden con ese número de parte.
	FindItemByPart(ctx context.Context, salesOrderID, partNumberID string) (*entity.SalesOrderItem, error)
	// FindOpenItemForCustomer línea pendiente de embarcar de una orden Open/Partial
	// del cliente con esa parte, la de vencimiento más antiguo.
	FindOpenItemForCustomer(ctx context.Context, customerID, partNumberID string) (*entity.SalesOrderItem, error)
	// AdjustItemShipped suma delta a quantity_shipped con piso en cero y devuelve la orden afectada.
	AdjustItemShipped(ctx context.Context, itemID string, delta int) (salesOrderID string, err error)
}
