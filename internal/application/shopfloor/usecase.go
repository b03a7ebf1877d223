// Package shopfloor escaneo de QR en piso: el operador inicia una operación de
// la hoja viajera con su gafete y la cierra reportando piezas buenas y scrap.
package shopfloor

import (
	"context"
	"encoding/json"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/application/production"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// StatusAwaitingCompletion estado que el escáner muestra para pedir el cierre.
const StatusAwaitingCompletion = "awaiting_completion"

// UseCase casos de uso del escáner QR.
type UseCase struct {
	tx           TxRunner
	travelSheets repository.TravelSheetRepository
	users        repository.UserRepository
	log          zerolog.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, travelSheets repository.TravelSheetRepository, users repository.UserRepository, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, travelSheets: travelSheets, users: users, log: log, now: time.Now}
}

// Scan interpreta el QR escaneado. Nunca devuelve error de negocio: el
// resultado va en Success/Message; solo fallas de infraestructura salen como error.
func (uc *UseCase) Scan(ctx context.Context, in dto.QRScanRequest) (*dto.QRScanResponse, error) {
	operator, err := uc.users.GetByBadgeID(ctx, in.BadgeID)
	if err != nil {
		return nil, err
	}
	if operator == nil {
		return fail("Invalid operator badge"), nil
	}

	var payload struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal([]byte(in.QRCode), &payload); err != nil {
		return fail("Invalid QR code format"), nil
	}
	if payload.Type != entity.QRTypeOperation {
		return fail("Unsupported QR code type"), nil
	}

	op, err := uc.travelSheets.GetOperationByQRCode(ctx, in.QRCode)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return fail("Operation not found"), nil
	}

	if op.Status == entity.OperationStatusPending {
		started, err := uc.travelSheets.StartOperation(ctx, op.ID, operator.ID, uc.now().UTC())
		if err != nil {
			return nil, err
		}
		if started {
			uc.log.Info().
				Str("operation_id", op.ID).
				Str("operator_id", operator.ID).
				Str("process", op.ProcessName).
				Msg("operación iniciada")
			return describe(op, "Operation started: "+processName(op), entity.OperationStatusInProgress), nil
		}
		// Otro escaneo ganó la carrera; se responde según el estado actual.
		if op, err = uc.travelSheets.GetOperationByID(ctx, op.ID); err != nil {
			return nil, err
		}
		if op == nil {
			return fail("Operation not found"), nil
		}
	}

	if op.Status == entity.OperationStatusInProgress {
		return describe(op, "Ready to complete operation", StatusAwaitingCompletion), nil
	}
	return fail("Operation already " + op.Status), nil
}

// Complete cierra una operación en curso. Si era la última de la hoja viajera
// la hoja pasa a Completed; la orden pasa a In Progress si seguía en Created o Released.
func (uc *UseCase) Complete(ctx context.Context, operationID string, in dto.CompleteOperationRequest) (*dto.CompleteOperationResponse, error) {
	var op *entity.TravelSheetOperation
	err := uc.tx.RunShopfloor(ctx, func(r TxRepos) error {
		var err error
		if op, err = r.TravelSheets.GetOperationForUpdate(ctx, operationID); err != nil {
			return err
		}
		if op == nil {
			return domain.Errorf(domain.ErrNotFound, "Operation not found")
		}
		if op.Status != entity.OperationStatusInProgress {
			return domain.Errorf(domain.ErrInvalidInput, "Operation is not in progress")
		}

		end := uc.now().UTC()
		op.Status = entity.OperationStatusCompleted
		op.EndTime = &end
		if op.StartTime != nil {
			minutes := int(end.Sub(*op.StartTime).Minutes())
			op.DurationMinutes = &minutes
		}
		op.QuantityGood = in.QuantityGood
		op.QuantityScrap = in.QuantityScrap
		if in.QuantityPending != nil {
			op.QuantityPending = in.QuantityPending
		}
		if in.MachineID != nil {
			op.MachineID = in.MachineID
		}
		if in.OperatorNotes != "" {
			op.OperatorNotes = in.OperatorNotes
		}
		op.UpdatedAt = end
		if err := r.TravelSheets.UpdateOperation(ctx, op); err != nil {
			return err
		}
		return uc.advance(ctx, r, op.TravelSheetID)
	})
	if err != nil {
		return nil, err
	}
	uc.log.Info().
		Str("operation_id", op.ID).
		Int("quantity_good", op.QuantityGood).
		Int("quantity_scrap", op.QuantityScrap).
		Msg("operación completada")
	return &dto.CompleteOperationResponse{
		Success:   true,
		Message:   "Operation completed successfully",
		Operation: production.OperationResponse(op),
	}, nil
}

// advance propaga el cierre a la hoja viajera y a la orden de producción.
func (uc *UseCase) advance(ctx context.Context, r TxRepos, travelSheetID string) error {
	open, err := r.TravelSheets.CountOperationsNotInStatus(ctx, travelSheetID, entity.OperationStatusCompleted)
	if err != nil {
		return err
	}
	if open == 0 {
		if err := r.TravelSheets.UpdateStatus(ctx, travelSheetID, entity.TravelSheetStatusCompleted); err != nil {
			return err
		}
		uc.log.Info().Str("travel_sheet_id", travelSheetID).Msg("hoja viajera completada")
	}

	ts, err := r.TravelSheets.GetByID(ctx, travelSheetID)
	if err != nil || ts == nil {
		return err
	}
	po, err := r.Orders.GetForUpdate(ctx, ts.ProductionOrderID)
	if err != nil || po == nil {
		return err
	}
	if po.Status != entity.ProductionStatusCreated && po.Status != entity.ProductionStatusReleased {
		return nil
	}
	po.Status = entity.ProductionStatusInProgress
	po.UpdatedAt = uc.now()
	if err := r.Orders.Update(ctx, po); err != nil {
		return err
	}
	uc.log.Info().Str("production_order_id", po.ID).Str("status", po.Status).Msg("orden en proceso por cierre de operación")
	return nil
}

// GetOperation detalle de una operación.
func (uc *UseCase) GetOperation(ctx context.Context, id string) (*dto.TravelSheetOperationResponse, error) {
	op, err := uc.travelSheets.GetOperationByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.Errorf(domain.ErrNotFound, "Operation not found")
	}
	res := production.OperationResponse(op)
	return &res, nil
}

func fail(msg string) *dto.QRScanResponse {
	return &dto.QRScanResponse{Success: false, Message: msg}
}

func describe(op *entity.TravelSheetOperation, msg, status string) *dto.QRScanResponse {
	name := processName(op)
	return &dto.QRScanResponse{
		Success:       true,
		Message:       msg,
		OperationID:   &op.ID,
		TravelSheetID: &op.TravelSheetID,
		ProcessName:   &name,
		Status:        &status,
	}
}

func processName(op *entity.TravelSheetOperation) string {
	if op.ProcessName == "" {
		return "Unknown"
	}
	return op.ProcessName
}
