package quality

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a una misma transacción.
type TxRepos struct {
	Orders       repository.ProductionOrderRepository
	Inspections  repository.QualityInspectionRepository
	TravelSheets repository.TravelSheetRepository
}

// TxRunner ejecuta fn dentro de una transacción; Rollback si fn devuelve error.
type TxRunner interface {
	RunQuality(ctx context.Context, fn func(TxRepos) error) error
}
