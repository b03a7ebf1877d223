// Package inventory recepción de lotes y kardex de materias primas.
package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
	"github.com/jhoicas/aurexia-api/internal/domain/inventory"
	"github.com/jhoicas/aurexia-api/internal/domain/repository"
)

// UseCase movimientos de inventario con bloqueo de fila (SELECT FOR UPDATE) sobre material y lote.
type UseCase struct {
	tx        TxRunner
	movements repository.InventoryMovementRepository
	log       zerolog.Logger
	now       func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx TxRunner, movements repository.InventoryMovementRepository, log zerolog.Logger) *UseCase {
	return &UseCase{tx: tx, movements: movements, log: log, now: time.Now}
}

// ReceiveBatch registra el lote recibido, suma la existencia del material y deja
// el movimiento Receipt referenciando al lote.
func (uc *UseCase) ReceiveBatch(ctx context.Context, userID string, in dto.ReceiveBatchRequest) (*dto.InventoryBatchResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Quantity must be greater than zero")
	}
	received, err := dto.ParseOptionalDate(in.ReceivedDate)
	if err != nil {
		return nil, domain.Errorf(domain.ErrInvalidInput, "%s", err.Error())
	}

	now := uc.now()
	b := &entity.InventoryBatch{
		ID:                uuid.New().String(),
		BatchNumber:       in.BatchNumber,
		MaterialID:        in.MaterialID,
		SupplierID:        in.SupplierID,
		HeatNumber:        in.HeatNumber,
		LotNumber:         in.LotNumber,
		Quantity:          in.Quantity,
		RemainingQuantity: in.Quantity,
		Unit:              in.Unit,
		ReceivedDate:      received,
		CreatedBy:         userID,
		CreatedAt:         now,
	}
	err = uc.tx.RunInventory(ctx, func(r TxRepos) error {
		m, err := r.Materials.GetForUpdate(ctx, in.MaterialID)
		if err != nil {
			return err
		}
		if m == nil {
			return materialNotFound()
		}
		exists, err := r.Batches.ExistsByNumber(ctx, in.BatchNumber)
		if err != nil {
			return err
		}
		if exists {
			return domain.Errorf(domain.ErrDuplicate, "Batch number already exists")
		}
		if b.Unit == "" {
			b.Unit = m.Unit
		}
		if err := r.Batches.Create(ctx, b); err != nil {
			return err
		}
		if err := r.Materials.UpdateStock(ctx, m.ID, m.CurrentStock.Add(in.Quantity)); err != nil {
			return err
		}
		return r.Movements.Create(ctx, &entity.InventoryMovement{
			ID:            uuid.New().String(),
			MovementType:  entity.MovementTypeReceipt,
			BatchID:       &b.ID,
			MaterialID:    m.ID,
			Quantity:      in.Quantity,
			ReferenceType: entity.ReferenceInventoryBatch,
			ReferenceID:   &b.ID,
			Notes:         fmt.Sprintf("Material receipt - Batch %s", b.BatchNumber),
			CreatedBy:     userID,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, uc.failed(err, "receive batch")
	}
	uc.log.Info().Str("batch_number", b.BatchNumber).Str("material_id", b.MaterialID).
		Str("quantity", b.Quantity.String()).Msg("lote recibido")
	return batchResponse(b), nil
}

// RegisterMovement aplica el movimiento a la existencia del material y, si hay lote,
// a su remanente. Las salidas (Issue o ajuste negativo) no pueden dejar el lote en negativo.
func (uc *UseCase) RegisterMovement(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.InventoryMovementResponse, error) {
	delta, err := inventory.StockDelta(in.MovementType, in.Quantity)
	if err != nil {
		return nil, err
	}

	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		MovementType:  in.MovementType,
		BatchID:       emptyToNil(in.BatchID),
		MaterialID:    in.MaterialID,
		Quantity:      in.Quantity,
		ReferenceType: in.ReferenceType,
		ReferenceID:   emptyToNil(in.ReferenceID),
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     uc.now(),
	}
	var stock *entity.Material
	err = uc.tx.RunInventory(ctx, func(r TxRepos) error {
		m, err := uc.apply(ctx, r, mov, delta, func(b *entity.InventoryBatch) error {
			return inventory.CheckBatch(b.RemainingQuantity, delta)
		})
		stock = m
		return err
	})
	if err != nil {
		return nil, uc.failed(err, "register movement")
	}
	if inventory.IsBelowMinimum(stock) {
		uc.log.Warn().Str("material_id", stock.ID).Str("current_stock", stock.CurrentStock.String()).
			Msg("material por debajo del mínimo")
	}
	return movementResponse(mov, stock), nil
}

// IssueToProduction entrega material de un lote a una orden de producción.
func (uc *UseCase) IssueToProduction(ctx context.Context, userID string, in dto.IssueToProductionRequest) (*dto.InventoryMovementResponse, error) {
	if !in.Quantity.IsPositive() {
		return nil, domain.Errorf(domain.ErrInvalidInput, "Quantity must be greater than zero")
	}

	mov := &entity.InventoryMovement{
		ID:            uuid.New().String(),
		MovementType:  entity.MovementTypeIssue,
		BatchID:       &in.BatchID,
		MaterialID:    in.MaterialID,
		Quantity:      in.Quantity,
		ReferenceType: entity.ReferenceProductionOrder,
		ReferenceID:   &in.ProductionOrderID,
		Notes:         in.Notes,
		CreatedBy:     userID,
		CreatedAt:     uc.now(),
	}
	var stock *entity.Material
	err := uc.tx.RunInventory(ctx, func(r TxRepos) error {
		po, err := r.Orders.GetByID(ctx, in.ProductionOrderID)
		if err != nil {
			return err
		}
		if po == nil {
			return domain.Errorf(domain.ErrInvalidInput, "Production order not found")
		}
		if mov.Notes == "" {
			mov.Notes = fmt.Sprintf("Material issued to PO %s", po.PONumber)
		}
		m, err := uc.apply(ctx, r, mov, in.Quantity.Neg(), func(b *entity.InventoryBatch) error {
			if b.RemainingQuantity.LessThan(in.Quantity) {
				return domain.Errorf(domain.ErrInsufficientStock, "Insufficient quantity in batch. Available: %s, Requested: %s",
					b.RemainingQuantity.StringFixed(2), in.Quantity.StringFixed(2))
			}
			return nil
		})
		stock = m
		return err
	})
	if err != nil {
		return nil, uc.failed(err, "issue to production")
	}
	uc.log.Info().Str("production_order_id", in.ProductionOrderID).Str("batch_id", in.BatchID).
		Str("quantity", in.Quantity.String()).Msg("material entregado a producción")
	return movementResponse(mov, stock), nil
}

// ListMovements kardex, más recientes primero.
func (uc *UseCase) ListMovements(ctx context.Context, f dto.MovementFilter) ([]dto.InventoryMovementResponse, error) {
	f.DefaultPage()
	list, err := uc.movements.List(ctx, repository.MovementFilter{
		MaterialID:   f.MaterialID,
		MovementType: f.MovementType,
		Limit:        f.Limit,
		Offset:       f.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryMovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, *movementResponse(m, nil))
	}
	return out, nil
}

// apply bloquea material y lote, valida el lote con check y persiste existencias y movimiento.
// Devuelve el material con la existencia resultante.
func (uc *UseCase) apply(
	ctx context.Context,
	r TxRepos,
	mov *entity.InventoryMovement,
	delta decimal.Decimal,
	check func(*entity.InventoryBatch) error,
) (*entity.Material, error) {
	m, err := r.Materials.GetForUpdate(ctx, mov.MaterialID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, materialNotFound()
	}
	if mov.BatchID != nil {
		b, err := r.Batches.GetForUpdate(ctx, *mov.BatchID)
		if err != nil {
			return nil, err
		}
		if b == nil {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Batch not found")
		}
		if b.MaterialID != m.ID {
			return nil, domain.Errorf(domain.ErrInvalidInput, "Batch does not belong to the specified material")
		}
		if err := check(b); err != nil {
			return nil, err
		}
		if err := r.Batches.UpdateRemaining(ctx, b.ID, b.RemainingQuantity.Add(delta)); err != nil {
			return nil, err
		}
	}
	m.CurrentStock = m.CurrentStock.Add(delta)
	if err := r.Materials.UpdateStock(ctx, m.ID, m.CurrentStock); err != nil {
		return nil, err
	}
	if err := r.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return m, nil
}

func (uc *UseCase) failed(err error, op string) error {
	var de *domain.Error
	if !errors.As(err, &de) {
		uc.log.Error().Err(err).Str("op", op).Msg("transacción de inventario revertida")
		return fmt.Errorf("%s: %w", op, err)
	}
	return err
}

func materialNotFound() error {
	return domain.Errorf(domain.ErrInvalidInput, "Material not found")
}

func emptyToNil(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}

func batchResponse(b *entity.InventoryBatch) *dto.InventoryBatchResponse {
	return &dto.InventoryBatchResponse{
		ID:                b.ID,
		BatchNumber:       b.BatchNumber,
		MaterialID:        b.MaterialID,
		SupplierID:        b.SupplierID,
		HeatNumber:        b.HeatNumber,
		LotNumber:         b.LotNumber,
		Quantity:          b.Quantity,
		RemainingQuantity: b.RemainingQuantity,
		Unit:              b.Unit,
		ReceivedDate:      dto.FormatDate(b.ReceivedDate),
		CreatedAt:         b.CreatedAt,
	}
}

func movementResponse(m *entity.InventoryMovement, stock *entity.Material) *dto.InventoryMovementResponse {
	res := &dto.InventoryMovementResponse{
		ID:            m.ID,
		MovementType:  m.MovementType,
		MaterialID:    m.MaterialID,
		BatchID:       m.BatchID,
		Quantity:      m.Quantity,
		ReferenceType: m.ReferenceType,
		ReferenceID:   m.ReferenceID,
		Notes:         m.Notes,
		CreatedAt:     m.CreatedAt,
	}
	if stock != nil {
		cur := stock.CurrentStock
		res.MaterialStock = &cur
		res.BelowMinimum = inventory.IsBelowMinimum(stock)
	}
	return res
}
