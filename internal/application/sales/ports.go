package sales

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción de alta de orden de venta.
type TxRepos struct {
	SalesOrders repository.SalesOrderRepository
	Customers   repository.CustomerRepository
	Parts       repository.PartNumberRepository
}

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	RunSales(ctx context.Context, fn func(TxRepos) error) error
}
