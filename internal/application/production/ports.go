package production

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// TxRepos repositorios atados a la transacción.
type TxRepos struct {
	Orders       repository.ProductionOrderRepository
	Inspections  repository.QualityInspectionRepository
	TravelSheets repository.TravelSheetRepository
	Parts        repository.PartNumberRepository
}

// TxRunner ejecuta fn dentro de una transacción.
type TxRunner interface {
	RunProduction(ctx context.Context, fn func(TxRepos) error) error
}

// TravelSheetPDFGenerator imprime la hoja viajera con los QR de sus operaciones.
type TravelSheetPDFGenerator interface {
	GenerateTravelSheetPDF(ctx context.Context, doc dto.TravelSheetDocument) ([]byte, error)
}
