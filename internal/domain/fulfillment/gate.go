package fulfillment

import (
	"fmt"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/entity"
)

// GateReason motivo de rechazo del filtro de calidad.
type GateReason string

const (
	GateOrderNotFound GateReason = "order_not_found"
	GateUninspected   GateReason = "uninspected"
	GateRejectedBatch GateReason = "rejected_batch"
	GateExceedsStock  GateReason = "exceeds_available"
)

// GateInput lo necesario para validar una línea de embarque contra su orden.
type GateInput struct {
	OrderFound     bool
	PONumber       string
	Inspections    []Outcome
	AlreadyShipped int
	Requested      int
}

// GateFigures cifras que el filtro calcula.
type GateFigures struct {
	Requested      int `json:"requested"`
	Approved       int `json:"approved"`
	AlreadyShipped int `json:"already_shipped"`
	Available      int `json:"available"`
}

// GateError rechazo del filtro. El mensaje lleva las cifras para la UI y
// errors.Is(err, domain.ErrQualityGate) es verdadero.
type GateError struct {
	Reason   GateReason
	PONumber string
	GateFigures
}

func (e *GateError) Error() string {
	switch e.Reason {
	case GateOrderNotFound:
		return "Production order not found"
	case GateUninspected:
		return fmt.Sprintf("Production order %s has not been quality inspected yet. Cannot ship uninspected items.", e.PONumber)
	case GateRejectedBatch:
		return fmt.Sprintf("Production order %s has been rejected by quality control. Cannot ship rejected items.", e.PONumber)
	}
	return fmt.Sprintf("Cannot ship %d units. Only %d approved units available (Total approved: %d, Already shipped: %d).",
		e.Requested, e.Available, e.Approved, e.AlreadyShipped)
}

func (e *GateError) Unwrap() error { return domain.ErrQualityGate }

// ApprovedQuantity suma de aprobadas de las inspecciones Released.
func ApprovedQuantity(outcomes []Outcome) int {
	total := 0
	for _, o := range outcomes {
		if o.Status == entity.InspectionStatusReleased {
			total += o.Approved
		}
	}
	return total
}

// EvaluateGate valida en orden: orden existente, inspeccionada, sin lote
// rechazado y cantidad solicitada <= aprobada - embarcada.
func EvaluateGate(in GateInput) (GateFigures, error) {
	fig := GateFigures{Requested: in.Requested}
	if !in.OrderFound {
		return fig, &GateError{Reason: GateOrderNotFound, GateFigures: fig}
	}
	if len(in.Inspections) == 0 {
		return fig, &GateError{Reason: GateUninspected, PONumber: in.PONumber, GateFigures: fig}
	}

	fig.Approved = ApprovedQuantity(in.Inspections)
	for _, o := range in.Inspections {
		if o.Status == entity.InspectionStatusRejected {
			return fig, &GateError{Reason: GateRejectedBatch, PONumber: in.PONumber, GateFigures: fig}
		}
	}

	fig.AlreadyShipped = in.AlreadyShipped
	fig.Available = fig.Approved - in.AlreadyShipped
	if in.Requested > fig.Available {
		return fig, &GateError{Reason: GateExceedsStock, PONumber: in.PONumber, GateFigures: fig}
	}
	return fig, nil
}

// AvailableToShip aprobado menos embarcado, sin bajar de cero.
func AvailableToShip(approved, shipped int) int {
	return max(0, approved-shipped)
}
