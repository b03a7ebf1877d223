package shipping

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción del embarque.
type TxRepos struct {
	Shipments   repository.ShipmentRepository
	Orders      repository.ProductionOrderRepository
	Inspections repository.QualityInspectionRepository
	SalesOrders repository.SalesOrderRepository
	Customers   repository.CustomerRepository
	Parts       repository.PartNumberRepository
}

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	RunShipping(ctx context.Context, fn func(TxRepos) error) error
}
