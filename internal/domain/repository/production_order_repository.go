package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// ProductionOrderFilter filtros del listado de órdenes de producción.
type ProductionOrderFilter struct {
	Status       string
	PartNumberID string
	Limit        int
	Offset       int
}

// ProductionOrderRepository puerto de persistencia para ProductionOrder.
type ProductionOrderRepository interface {
	Create(ctx context.Context, po *entity.ProductionOrder) error
	GetByID(ctx context.Context, id string) (*entity.ProductionOrder, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción (SELECT ... FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.ProductionOrder, error)
	Update(ctx context.Context, po *entity.ProductionOrder) error
	List(ctx context.Context, f ProductionOrderFilter) ([]*entity.ProductionOrder, error)
	// ListBySalesOrderAndPart órdenes de una parte ligadas a una orden de venta.
	ListBySalesOrderAndPart(ctx context.Context, salesOrderID, partNumberID string) ([]*entity.ProductionOrder, error)
}
