package shopfloor

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción de cierre de operación.
type TxRepos struct {
	TravelSheets repository.TravelSheetRepository
	Orders       repository.ProductionOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	RunShopfloor(ctx context.Context, fn func(TxRepos) error) error
}
