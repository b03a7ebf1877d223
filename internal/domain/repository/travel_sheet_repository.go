package repository

import (
	"context"
	"time"

	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// TravelSheetRepository puerto de persistencia para hojas viajeras y sus operaciones.
type TravelSheetRepository interface {
	// Create persiste la hoja y todas sus operaciones.
	Create(ctx context.Context, ts *entity.TravelSheet) error
	// GetByID incluye operaciones ordenadas por secuencia.
	GetByID(ctx context.Context, id string) (*entity.TravelSheet, error)
	ListByProductionOrder(ctx context.Context, productionOrderID string) ([]*entity.TravelSheet, error)
	ListByProductionOrderAndStatus(ctx context.Context, productionOrderID, status string) ([]*entity.TravelSheet, error)
	UpdateStatus(ctx context.Context, id, status string) error

	GetOperationByID(ctx context.Context, id string) (*entity.TravelSheetOperation, error)
	GetOperationByQRCode(ctx context.Context, qrCode string) (*entity.TravelSheetOperation, error)
	GetOperationForUpdate(ctx context.Context, id string) (*entity.TravelSheetOperation, error)
	// StartOperation pasa Pending -> In Progress solo si sigue Pending; false si otro escaneo ganó.
	StartOperation(ctx context.Context, id, operatorID string, at time.Time) (bool, error)
	UpdateOperation(ctx context.Context, op *entity.TravelSheetOperation) error
	// CountOperationsNotInStatus cuenta operaciones de la hoja con estado distinto de status.
	CountOperationsNotInStatus(ctx context.Context, travelSheetID, status string) (int, error)
}
