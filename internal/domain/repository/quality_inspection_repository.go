package repository

import (
	"context"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// InspectionFilter filtros del listado de inspecciones.
type InspectionFilter struct {
	Status            string
	ProductionOrderID string
	Limit             int
	Offset            int
}

// QualityInspectionRepository puerto de persistencia para QualityInspection.
type QualityInspectionRepository interface {
	Create(ctx context.Context, qi *entity.QualityInspection) error
	GetByID(ctx context.Context, id string) (*entity.QualityInspection, error)
	Update(ctx context.Context, qi *entity.QualityInspection) error
	Delete(ctx context.Context, id string) error
	ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.QualityInspection, error)
	List(ctx context.Context, f InspectionFilter) ([]*entity.QualityInspection, error)
	ExistsForTravelSheet(ctx context.Context, travelSheetID string) (bool, error)
}
