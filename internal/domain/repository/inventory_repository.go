package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// MovementFilter filtros del kardex de materiales.
type MovementFilter struct {
	MaterialID   string
	MovementType string
	Limit        int
	Offset       int
}

// MaterialRepository existencia de materiales.
type MaterialRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Material, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Material, error)
	UpdateStock(ctx context.Context, id string, stock decimal.Decimal) error
}

// InventoryBatchRepository lotes de proveedor.
type InventoryBatchRepository interface {
	Create(ctx context.Context, b *entity.InventoryBatch) error
	GetByID(ctx context.Context, id string) (*entity.InventoryBatch, error)
	GetForUpdate(ctx context.Context, id string) (*entity.InventoryBatch, error)
	ExistsByNumber(ctx context.Context, batchNumber string) (bool, error)
	UpdateRemaining(ctx context.Context, id string, remaining decimal.Decimal) error
}

// InventoryMovementRepository kardex de movimientos.
type InventoryMovementRepository interface {
	Create(ctx context.Context, m *entity.InventoryMovement) error
	List(ctx context.Context, f MovementFilter) ([]*entity.InventoryMovement, error)
}
