// Package production órdenes de producción, su verificación contra las
// inspecciones y la generación de hojas viajeras a partir de la ruta.
package production

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// UseCase casos de uso de órdenes de producción y hojas viajeras.
type UseCase struct {
	tx           TxRunner
	orders       repository.ProductionOrderRepository
	inspections  repository.QualityInspectionRepository
	travelSheets repository.TravelSheetRepository
	parts        repository.PartNumberRepository
	pdf          TravelSheetPDFGenerator
	risk         fulfillment.RiskClassifier
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. riskWindowDays es el horizonte Yellow del semáforo.
func NewUseCase(
	tx TxRunner,
	orders repository.ProductionOrderRepository,
	inspections repository.QualityInspectionRepository,
	travelSheets repository.TravelSheetRepository,
	parts repository.PartNumberRepository,
	pdf TravelSheetPDFGenerator,
	riskWindowDays int,
	log zerolog.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		orders:       orders,
		inspections:  inspections,
		travelSheets: travelSheets,
		parts:        parts,
		pdf:          pdf,
		risk:         fulfillment.NewRiskClassifier(riskWindowDays),
		log:          log,
		now:          time.Now,
	}
}

// Create abre una orden en Created con contadores en cero.
func (uc *UseCase) Create(ctx context.Context, userID string, in dto.CreateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	part, err := uc.parts.GetByID(ctx, in.PartNumberID)
	if err != nil {
		return nil, err
	}
	if part == nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Part number not found")
	}
	due, err := dto.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	priority := in.Priority
	if priority == "" {
		priority = entity.PriorityNormal
	}

	now := uc.now()
	po := &entity.ProductionOrder{
		ID:               uuid.New().String(),
		PONumber:         uniqueNumber("PO", now),
		SalesOrderID:     in.SalesOrderID,
		SalesOrderItemID: in.SalesOrderItemID,
		PartNumberID:     in.PartNumberID,
		Quantity:         in.Quantity,
		Status:           entity.ProductionStatusCreated,
		DueDate:          due,
		Priority:         priority,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := uc.orders.Create(ctx, po); err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("production_order_id", po.ID).
		Str("po_number", po.PONumber).
		Int("quantity", po.Quantity).
		Msg("orden de producción creada")
	return uc.toResponse(po), nil
}

// Get orden con semáforo y avance.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.ProductionOrderResponse, error) {
	po, err := getOrder(ctx, uc.orders, id)
	if err != nil {
		return nil, err
	}
	return uc.toResponse(po), nil
}

// List órdenes más recientes primero.
func (uc *UseCase) List(ctx context.Context, f dto.ProductionOrderFilter) ([]dto.ProductionOrderResponse, error) {
	f.DefaultPage()
	list, err := uc.orders.List(ctx, repository.ProductionOrderFilter{
		Status:       f.Status,
		PartNumberID: f.PartNumberID,
		Limit:        f.Limit,
		Offset:       f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductionOrderResponse, 0, len(list))
	for _, po := range list {
		out = append(out, *uc.toResponse(po))
	}
	return out, nil
}

// Update asigna los campos presentes. El estado se asigna directo, sin tabla de
// transiciones; los contadores solo los mueve el roll-up de calidad.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateProductionOrderRequest) (*dto.ProductionOrderResponse, error) {
	if in.Status != nil && !entity.IsValidProductionStatus(*in.Status) {
		return nil, domain.Errorf(domain.ErrInvalidInput,
			"Invalid status. Must be one of: Created, Released, In Progress, Completed, Cancelled")
	}
	start, err := dto.ParseOptionalDate(in.StartDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}
	due, err := dto.ParseOptionalDate(in.DueDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}

	var po *entity.ProductionOrder
	err = uc.tx.RunProduction(ctx, func(r TxRepos) error {
		var err error
		if po, err = lockOrder(ctx, r.Orders, id); err != nil {
			return err
		}
		if in.Status != nil {
			po.Status = *in.Status
		}
		if in.Priority != nil {
			po.Priority = *in.Priority
		}
		if start != nil {
			po.StartDate = start
		}
		if due != nil {
			po.DueDate = due
		}
		if in.Quantity != nil {
			po.Quantity = *in.Quantity
		}
		po.UpdatedAt = uc.now()
		return r.Orders.Update(ctx, po)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().Str("production_order_id", id).Str("status", po.Status).Msg("orden de producción actualizada")
	return uc.toResponse(po), nil
}

// Verify compara los contadores guardados con los recalculados desde las inspecciones vivas.
func (uc *UseCase) Verify(ctx context.Context, id string) (*dto.VerifyCountersResponse, error) {
	po, err := getOrder(ctx, uc.orders, id)
	if err != nil {
		return nil, err
	}
	list, err := uc.inspections.ListByProductionOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return verification(po, list, false), nil
}

// Reconcile reescribe los contadores con los recalculados, bajo el lock de la orden.
// El estado no se toca.
func (uc *UseCase) Reconcile(ctx context.Context, id string) (*dto.VerifyCountersResponse, error) {
	var res *dto.VerifyCountersResponse
	err := uc.tx.RunProduction(ctx, func(r TxRepos) error {
		po, err := lockOrder(ctx, r.Orders, id)
		if err != nil {
			return err
		}
		list, err := r.Inspections.ListByProductionOrder(ctx, id)
		if err != nil {
			return err
		}
		res = verification(po, list, true)
		if res.CompletedMatches && res.ScrappedMatches {
			return nil
		}
		po.QuantityCompleted = res.Calculated.QuantityCompleted
		po.QuantityScrapped = res.Calculated.QuantityScrapped
		po.UpdatedAt = uc.now()
		if err := r.Orders.Update(ctx, po); err != nil {
			return err
		}
		uc.log.Warn().
			Str("production_order_id", id).
			Int("stored_completed", res.Stored.QuantityCompleted).
			Int("stored_scrapped", res.Stored.QuantityScrapped).
			Int("quantity_completed", po.QuantityCompleted).
			Int("quantity_scrapped", po.QuantityScrapped).
			Msg("contadores reconciliados")
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// GenerateTravelSheet crea la hoja viajera con una operación Pending por paso de la ruta.
func (uc *UseCase) GenerateTravelSheet(ctx context.Context, productionOrderID string, in dto.CreateTravelSheetRequest) (*dto.TravelSheetResponse, error) {
	var ts *entity.TravelSheet
	err := uc.tx.RunProduction(ctx, func(r TxRepos) error {
		po, err := getOrder(ctx, r.Orders, productionOrderID)
		if err != nil {
			return err
		}
		part, err := r.Parts.GetByID(ctx, po.PartNumberID)
		if err != nil {
			return err
		}
		routing, err := r.Parts.ListRouting(ctx, po.PartNumberID)
		if err != nil {
			return err
		}
		if len(routing) == 0 {
			return domain.Errorf(domain.ErrInvalidInput, "No routing defined for this part number")
		}

		now := uc.now()
		ts = &entity.TravelSheet{
			ID:                uuid.New().String(),
			TravelSheetNumber: uniqueNumber("TS", now),
			ProductionOrderID: po.ID,
			BatchNumber:       in.BatchNumber,
			Status:            entity.TravelSheetStatusActive,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		head := entity.TravelSheetQR{Type: entity.QRTypeTravelSheet, Number: ts.TravelSheetNumber, PO: po.PONumber}
		if part != nil {
			head.PartNumber = part.PartNumber
		}
		if ts.QRCode, err = qrPayload(head); err != nil {
			return err
		}
		for _, step := range routing {
			qr, err := qrPayload(entity.OperationQR{
				Type:          entity.QRTypeOperation,
				TravelSheetID: ts.ID,
				Sequence:      step.SequenceNumber,
				ProcessID:     step.ProcessID,
			})
			if err != nil {
				return err
			}
			pending := po.Quantity
			ts.Operations = append(ts.Operations, entity.TravelSheetOperation{
				ID:              uuid.New().String(),
				TravelSheetID:   ts.ID,
				ProcessID:       step.ProcessID,
				ProcessName:     step.ProcessName,
				SequenceNumber:  step.SequenceNumber,
				QRCode:          qr,
				WorkCenterID:    step.WorkCenterID,
				Status:          entity.OperationStatusPending,
				QuantityPending: &pending,
				CreatedAt:       now,
				UpdatedAt:       now,
			})
		}
		return r.TravelSheets.Create(ctx, ts)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("production_order_id", productionOrderID).
		Str("travel_sheet_number", ts.TravelSheetNumber).
		Int("operations", len(ts.Operations)).
		Msg("hoja viajera generada")
	return TravelSheetResponse(ts), nil
}

// ListTravelSheets hojas viajeras de la orden.
func (uc *UseCase) ListTravelSheets(ctx context.Context, productionOrderID string) ([]dto.TravelSheetResponse, error) {
	if _, err := getOrder(ctx, uc.orders, productionOrderID); err != nil {
		return nil, err
	}
	list, err := uc.travelSheets.ListByProductionOrder(ctx, productionOrderID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TravelSheetResponse, 0, len(list))
	for _, ts := range list {
		out = append(out, *TravelSheetResponse(ts))
	}
	return out, nil
}

// TravelSheetPDF imprime la hoja viajera. Devuelve los bytes y el nombre sugerido del archivo.
func (uc *UseCase) TravelSheetPDF(ctx context.Context, travelSheetID string) ([]byte, string, error) {
	ts, err := uc.travelSheets.GetByID(ctx, travelSheetID)
	if err != nil {
		return nil, "", err
	}
	if ts == nil {
		return nil, "", domain.Errorf(domain.ErrNotFound, "Travel sheet not found")
	}
	po, err := getOrder(ctx, uc.orders, ts.ProductionOrderID)
	if err != nil {
		return nil, "", err
	}
	doc := dto.TravelSheetDocument{
		TravelSheetNumber: ts.TravelSheetNumber,
		QRCode:            ts.QRCode,
		PONumber:          po.PONumber,
		Quantity:          po.Quantity,
		DueDate:           po.DueDate,
		BatchNumber:       ts.BatchNumber,
	}
	part, err := uc.parts.GetByID(ctx, po.PartNumberID)
	if err != nil {
		return nil, "", err
	}
	if part != nil {
		doc.PartNumber = part.PartNumber
		doc.PartDescription = part.Description
	}
	routing, err := uc.parts.ListRouting(ctx, po.PartNumberID)
	if err != nil {
		return nil, "", err
	}
	stdTime := make(map[int]entity.PartRouting, len(routing))
	for _, step := range routing {
		stdTime[step.SequenceNumber] = step
	}
	for _, op := range ts.Operations {
		doc.Operations = append(doc.Operations, dto.TravelSheetDocumentStep{
			SequenceNumber:      op.SequenceNumber,
			ProcessName:         op.ProcessName,
			QRCode:              op.QRCode,
			StandardTimeMinutes: stdTime[op.SequenceNumber].StandardTimeMinutes,
		})
	}

	b, err := uc.pdf.GenerateTravelSheetPDF(ctx, doc)
	if err != nil {
		uc.log.Error().Err(err).Str("travel_sheet_id", travelSheetID).Msg("falló la impresión de la hoja viajera")
		return nil, "", err
	}
	return b, ts.TravelSheetNumber + ".pdf", nil
}

func (uc *UseCase) toResponse(po *entity.ProductionOrder) *dto.ProductionOrderResponse {
	return &dto.ProductionOrderResponse{
		ID:                   po.ID,
		PONumber:             po.PONumber,
		SalesOrderID:         po.SalesOrderID,
		SalesOrderItemID:     po.SalesOrderItemID,
		PartNumberID:         po.PartNumberID,
		Quantity:             po.Quantity,
		QuantityCompleted:    po.QuantityCompleted,
		QuantityScrapped:     po.QuantityScrapped,
		Status:               po.Status,
		Priority:             po.Priority,
		StartDate:            dto.FormatDate(po.StartDate),
		DueDate:              dto.FormatDate(po.DueDate),
		RiskStatus:           string(uc.risk.Classify(po.DueDate, po.Status, uc.now())),
		CompletionPercentage: fulfillment.CompletionPercentage(po.QuantityCompleted, po.Quantity),
		CreatedAt:            po.CreatedAt,
	}
}

func verification(po *entity.ProductionOrder, list []*entity.QualityInspection, reconciled bool) *dto.VerifyCountersResponse {
	outcomes := make([]fulfillment.Outcome, len(list))
	for i, qi := range list {
		outcomes[i] = fulfillment.OutcomeOf(qi)
	}
	calc := fulfillment.Recompute(outcomes)
	res := &dto.VerifyCountersResponse{
		ProductionOrderID: po.ID,
		PONumber:          po.PONumber,
		Quantity:          po.Quantity,
		InspectionCount:   len(list),
		Stored:            dto.CounterFigures{QuantityCompleted: po.QuantityCompleted, QuantityScrapped: po.QuantityScrapped},
		Calculated:        dto.CounterFigures{QuantityCompleted: calc.Completed, QuantityScrapped: calc.Scrapped},
		CompletedMatches:  po.QuantityCompleted == calc.Completed,
		ScrappedMatches:   po.QuantityScrapped == calc.Scrapped,
	}
	res.Reconciled = reconciled && !(res.CompletedMatches && res.ScrappedMatches)
	return res
}

// TravelSheetResponse convierte la hoja viajera con sus operaciones.
func TravelSheetResponse(ts *entity.TravelSheet) *dto.TravelSheetResponse {
	ops := make([]dto.TravelSheetOperationResponse, 0, len(ts.Operations))
	for i := range ts.Operations {
		ops = append(ops, OperationResponse(&ts.Operations[i]))
	}
	return &dto.TravelSheetResponse{
		ID:                ts.ID,
		TravelSheetNumber: ts.TravelSheetNumber,
		ProductionOrderID: ts.ProductionOrderID,
		QRCode:            ts.QRCode,
		BatchNumber:       ts.BatchNumber,
		Status:            ts.Status,
		CreatedAt:         ts.CreatedAt,
		Operations:        ops,
	}
}

// OperationResponse convierte una operación de hoja viajera.
func OperationResponse(op *entity.TravelSheetOperation) dto.TravelSheetOperationResponse {
	return dto.TravelSheetOperationResponse{
		ID:              op.ID,
		TravelSheetID:   op.TravelSheetID,
		ProcessID:       op.ProcessID,
		ProcessName:     op.ProcessName,
		SequenceNumber:  op.SequenceNumber,
		QRCode:          op.QRCode,
		WorkCenterID:    op.WorkCenterID,
		Status:          op.Status,
		OperatorID:      op.OperatorID,
		MachineID:       op.MachineID,
		QuantityGood:    op.QuantityGood,
		QuantityScrap:   op.QuantityScrap,
		QuantityPending: op.QuantityPending,
		StartTime:       op.StartTime,
		EndTime:         op.EndTime,
		DurationMinutes: op.DurationMinutes,
		OperatorNotes:   op.OperatorNotes,
	}
}

func getOrder(ctx context.Context, orders repository.ProductionOrderRepository, id string) (*entity.ProductionOrder, error) {
	po, err := orders.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Production order not found")
	}
	return po, nil
}

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

// uniqueNumber PREFIX-YYYYmmddHHMMSS-XXXXXXXX.
func uniqueNumber(prefix string, now time.Time) string {
	return fmt.Sprintf("%s-%s-%s", prefix, now.Format("20060102150405"), strings.ToUpper(uuid.NewString()[:8]))
}

func qrPayload(v any) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("qr payload: %w", err)
	}
	return string(b), nil
}
