package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// StockDelta cambio con signo que un movimiento aplica a la existencia del material
// y al remanente del lote. Receipt/Return suman, Issue resta, Adjustment suma con signo.
func StockDelta(movementType string, qty decimal.Decimal) (decimal.Decimal, error) {
	switch movementType {
	case entity.MovementTypeReceipt, entity.MovementTypeReturn, entity.MovementTypeIssue:
		if !qty.IsPositive() {
			return decimal.Zero, domain.Errorf(domain.ErrInvalidInput, "Quantity must be greater than zero")
		}
		if movementType == entity.MovementTypeIssue {
			return qty.Neg(), nil
		}
		return qty, nil
	case entity.MovementTypeAdjustment:
		if qty.IsZero() {
			return decimal.Zero, domain.Errorf(domain.ErrInvalidInput, "Adjustment quantity cannot be zero")
		}
		return qty, nil
	}
	return decimal.Zero, domain.Errorf(domain.ErrInvalidInput, "Invalid movement type %q", movementType)
}

// CheckBatch valida que el lote cubra una salida. Solo aplica cuando el delta
// es negativo (Issue o ajuste a la baja).
func CheckBatch(remaining, delta decimal.Decimal) error {
	if !delta.IsNegative() {
		return nil
	}
	if remaining.LessThan(delta.Neg()) {
		return domain.Errorf(domain.ErrInsufficientStock, "Insufficient quantity in batch. Available: %s", remaining.StringFixed(2))
	}
	return nil
}

// IsBelowMinimum indica si la existencia quedó por debajo del mínimo configurado.
func IsBelowMinimum(m *entity.Material) bool {
	return m.MinimumStock != nil && m.CurrentStock.LessThan(*m.MinimumStock)
}
