package inventory

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción de un movimiento de material.
type TxRepos struct {
	Materials repository.MaterialRepository
	Batches   repository.InventoryBatchRepository
	Movements repository.InventoryMovementRepository
	Orders    repository.ProductionOrderRepository
}

// TxRunner ejecuta fn dentro de una transacción (Commit si nil, Rollback si error).
type TxRunner interface {
	RunInventory(ctx context.Context, fn func(TxRepos) error) error
}
