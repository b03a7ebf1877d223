// Package quality registra inspecciones de calidad y mantiene, en la misma
// transacción, los contadores y el estado de la orden de producción inspeccionada.
package quality

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// UseCase inspecciones de calidad con roll-up sobre la orden de producción.
// Toda mutación bloquea la fila de la orden (SELECT ... FOR UPDATE) antes de
// aplicar la aritmética, así dos inspecciones concurrentes no pierden deltas.
type UseCase struct {
	tx           TxRunner
	inspections  repository.QualityInspectionRepository
	travelSheets repository.TravelSheetRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(
	tx TxRunner,
	inspections repository.QualityInspectionRepository,
	travelSheets repository.TravelSheetRepository,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		inspections:  inspections,
		travelSheets: travelSheets,
		log:          log,
		now:          time.Now,
	}
}

// Create registra la inspección con el llamador como inspector y suma su aporte a la orden.
func (uc *UseCase) Create(ctx context.Context, inspectorID string, in dto.QualityInspectionRequest) (*dto.QualityInspectionResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	now := uc.now()
	qi := &entity.QualityInspection{
		ID:                uuid.New().String(),
		TravelSheetID:     in.TravelSheetID,
		ProductionOrderID: in.ProductionOrderID,
		InspectorID:       inspectorID,
		InspectionDate:    now,
		Status:            in.Status,
		QuantityInspected: in.QuantityInspected,
		QuantityApproved:  in.QuantityApproved,
		QuantityRejected:  in.QuantityRejected,
		RejectionReason:   in.RejectionReason,
		Notes:             in.Notes,
		CreatedAt:         now,
	}

	var po *entity.ProductionOrder
	err := uc.tx.RunQuality(ctx, func(r TxRepos) error {
		var err error
		po, err = lockOrder(ctx, r.Orders, in.ProductionOrderID)
		if err != nil {
			return err
		}
		if err := checkTravelSheet(ctx, r.TravelSheets, in.TravelSheetID, po.ID); err != nil {
			return err
		}
		if err := r.Inspections.Create(ctx, qi); err != nil {
			return err
		}
		fulfillment.OnCreate(fulfillment.TallyOf(po), fulfillment.OutcomeOf(qi)).ApplyTo(po)
		po.UpdatedAt = now
		return r.Orders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("inspection_id", qi.ID).
		Str("po_number", po.PONumber).
		Str("result", qi.Status).
		Int("quantity_completed", po.QuantityCompleted).
		Int("quantity_scrapped", po.QuantityScrapped).
		Str("po_status", po.Status).
		Msg("inspección registrada")
	return toResponse(qi), nil
}

// Update reemplaza resultado y cantidades: revierte el aporte anterior y suma el nuevo.
// La orden de producción de una inspección no se puede reasignar.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.QualityInspectionRequest) (*dto.QualityInspectionResponse, error) {
	if err := validate(in); err != nil {
		return nil, err
	}
	var qi *entity.QualityInspection
	err := uc.tx.RunQuality(ctx, func(r TxRepos) error {
		existing, po, err := lockInspection(ctx, r, id)
		if err != nil {
			return err
		}
		if in.ProductionOrderID != "" && in.ProductionOrderID != existing.ProductionOrderID {
			return domain.Errorf(domain.ErrInvalidInput, "Production order of an inspection cannot be changed")
		}
		old := fulfillment.OutcomeOf(existing)
		if in.TravelSheetID != nil {
			if err := checkTravelSheet(ctx, r.TravelSheets, in.TravelSheetID, po.ID); err != nil {
				return err
			}
			existing.TravelSheetID = in.TravelSheetID
			if *in.TravelSheetID == "" {
				existing.TravelSheetID = nil
			}
		}
		existing.Status = in.Status
		existing.QuantityInspected = in.QuantityInspected
		existing.QuantityApproved = in.QuantityApproved
		existing.QuantityRejected = in.QuantityRejected
		existing.RejectionReason = in.RejectionReason
		existing.Notes = in.Notes
		if err := r.Inspections.Update(ctx, existing); err != nil {
			return err
		}
		fulfillment.OnUpdate(fulfillment.TallyOf(po), old, fulfillment.OutcomeOf(existing)).ApplyTo(po)
		po.UpdatedAt = uc.now()
		if err := r.Orders.Update(ctx, po); err != nil {
			return err
		}
		qi = existing
		uc.log.Info().Str("inspection_id", id).Str("po_number", po.PONumber).Str("po_status", po.Status).Msg("inspección actualizada")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toResponse(qi), nil
}

// Delete elimina la inspección y revierte su aporte. Solo Admin o Management.
func (uc *UseCase) Delete(ctx context.Context, role, id string) error {
	if role != entity.RoleAdmin && role != entity.RoleManagement {
		return domain.Errorf(domain.ErrForbidden, "Only Admin or Management can delete quality inspections")
	}
	return uc.tx.RunQuality(ctx, func(r TxRepos) error {
		existing, po, err := lockInspection(ctx, r, id)
		if err != nil {
			return err
		}
		if err := r.Inspections.Delete(ctx, id); err != nil {
			return err
		}
		fulfillment.OnDelete(fulfillment.TallyOf(po), fulfillment.OutcomeOf(existing)).ApplyTo(po)
		po.UpdatedAt = uc.now()
		if err := r.Orders.Update(ctx, po); err != nil {
			return err
		}
		uc.log.Info().Str("inspection_id", id).Str("po_number", po.PONumber).Str("po_status", po.Status).Msg("inspección eliminada")
		return nil
	})
}

// Get obtiene una inspección.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.QualityInspectionResponse, error) {
	qi, err := uc.inspections.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if qi == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Quality inspection not found")
	}
	return toResponse(qi), nil
}

// List lista inspecciones, más recientes primero.
func (uc *UseCase) List(ctx context.Context, f dto.InspectionFilter) ([]dto.QualityInspectionResponse, error) {
	f.DefaultPage()
	list, err := uc.inspections.List(ctx, repository.InspectionFilter{
		Status:            f.Status,
		ProductionOrderID: f.ProductionOrderID,
		Limit:             f.Limit,
		Offset:            f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.QualityInspectionResponse, 0, len(list))
	for _, qi := range list {
		out = append(out, *toResponse(qi))
	}
	return out, nil
}

// ListPending hojas viajeras completadas de la orden que aún no tienen inspección.
func (uc *UseCase) ListPending(ctx context.Context, productionOrderID string) ([]dto.PendingInspectionResponse, error) {
	sheets, err := uc.travelSheets.ListByProductionOrderAndStatus(ctx, productionOrderID, entity.TravelSheetStatusCompleted)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PendingInspectionResponse, 0, len(sheets))
	for _, ts := range sheets {
		inspected, err := uc.inspections.ExistsForTravelSheet(ctx, ts.ID)
		if err != nil {
			return nil, err
		}
		if inspected {
			continue
		}
		out = append(out, dto.PendingInspectionResponse{
			TravelSheetID:     ts.ID,
			TravelSheetNumber: ts.TravelSheetNumber,
			ProductionOrderID: ts.ProductionOrderID,
			BatchNumber:       ts.BatchNumber,
			CompletedAt:       ts.UpdatedAt,
		})
	}
	return out, nil
}

// lockOrder bloquea la fila de la orden de producción.
func lockOrder(ctx context.Context, orders repository.ProductionOrderRepository, id string) (*entity.ProductionOrder, error) {
	po, err := orders.GetForUpdate(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Production order not found")
	}
	return po, nil
}

// lockInspection bloquea la orden de la inspección y relee la inspección ya con el lock tomado.
func lockInspection(ctx context.Context, r TxRepos, id string) (*entity.QualityInspection, *entity.ProductionOrder, error) {
	qi, err := r.Inspections.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if qi == nil {
		return nil, nil, domain.Errorf(domain.ErrNotFound, "Quality inspection not found")
	}
	po, err := lockOrder(ctx, r.Orders, qi.ProductionOrderID)
	if err != nil {
		return nil, nil, err
	}
	if qi, err = r.Inspections.GetByID(ctx, id); err != nil {
		return nil, nil, err
	}
	if qi == nil {
		return nil, nil, domain.Errorf(domain.ErrNotFound, "Quality inspection not found")
	}
	return qi, po, nil
}

func checkTravelSheet(ctx context.Context, sheets repository.TravelSheetRepository, travelSheetID *string, productionOrderID string) error {
	if travelSheetID == nil || *travelSheetID == "" {
		return nil
	}
	ts, err := sheets.GetByID(ctx, *travelSheetID)
	if err != nil {
		return fmt.Errorf("get travel sheet: %w", err)
	}
	if ts == nil {
		return domain.Errorf(domain.ErrNotFound, "Travel sheet not found")
	}
	if ts.ProductionOrderID != productionOrderID {
		return domain.Errorf(domain.ErrInvalidInput, "Travel sheet does not belong to the specified production order")
	}
	return nil
}

func validate(in dto.QualityInspectionRequest) error {
	if in.Status != entity.InspectionStatusReleased && in.Status != entity.InspectionStatusRejected {
		return domain.Errorf(domain.ErrInvalidInput, "Invalid status. Must be one of: Released, Rejected")
	}
	if in.QuantityInspected < 0 || in.QuantityApproved < 0 || in.QuantityRejected < 0 {
		return domain.Errorf(domain.ErrInvalidInput, "Quantities cannot be negative")
	}
	if in.QuantityInspected > 0 && in.QuantityApproved+in.QuantityRejected > in.QuantityInspected {
		return domain.Errorf(domain.ErrInvalidInput, "Sum of approved and rejected quantities cannot exceed inspected quantity")
	}
	return nil
}

func toResponse(qi *entity.QualityInspection) *dto.QualityInspectionResponse {
	return &dto.QualityInspectionResponse{
		ID:                qi.ID,
		ProductionOrderID: qi.ProductionOrderID,
		TravelSheetID:     qi.TravelSheetID,
		InspectorID:       qi.InspectorID,
		InspectionDate:    qi.InspectionDate,
		Status:            qi.Status,
		QuantityInspected: qi.QuantityInspected,
		QuantityApproved:  qi.QuantityApproved,
		QuantityRejected:  qi.QuantityRejected,
		RejectionReason:   qi.RejectionReason,
		Notes:             qi.Notes,
		CreatedAt:         qi.CreatedAt,
	}
}
