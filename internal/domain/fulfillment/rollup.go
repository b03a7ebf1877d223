package fulfillment

import "github.com/jhoicas/aurexia-api/internal/domain/entity"

// Outcome lo que una inspección aporta a su orden de producción.
type Outcome struct {
	Status   string
	Approved int
	Rejected int
}

// OutcomeOf extrae el aporte de una inspección persistida.
func OutcomeOf(qi *entity.QualityInspection) Outcome {
	return Outcome{Status: qi.Status, Approved: qi.QuantityApproved, Rejected: qi.QuantityRejected}
}

// Contribution cantidades sumadas a completed/scrapped.
type Contribution struct {
	Completed int
	Scrapped  int
}

// ContributionOf Released aporta aprobadas y rechazadas; Rejected solo rechazadas.
func ContributionOf(o Outcome) Contribution {
	switch o.Status {
	case entity.InspectionStatusReleased:
		return Contribution{Completed: o.Approved, Scrapped: o.Rejected}
	case entity.InspectionStatusRejected:
		return Contribution{Scrapped: o.Rejected}
	}
	return Contribution{}
}

// Tally contadores de la orden que el roll-up actualiza.
type Tally struct {
	Quantity  int
	Completed int
	Scrapped  int
	Status    string
}

// TallyOf toma los contadores de la orden.
func TallyOf(po *entity.ProductionOrder) Tally {
	return Tally{
		Quantity:  po.Quantity,
		Completed: po.QuantityCompleted,
		Scrapped:  po.QuantityScrapped,
		Status:    po.Status,
	}
}

// ApplyTo escribe los contadores en la orden.
func (t Tally) ApplyTo(po *entity.ProductionOrder) {
	po.QuantityCompleted = t.Completed
	po.QuantityScrapped = t.Scrapped
	po.Status = t.Status
}

func (t Tally) add(c Contribution) Tally {
	t.Completed += c.Completed
	t.Scrapped += c.Scrapped
	return t
}

func (t Tally) sub(c Contribution) Tally {
	t.Completed -= c.Completed
	t.Scrapped -= c.Scrapped
	return t
}

// DeriveStatus Completed si completed >= quantity, In Progress si completed > 0.
// En otro caso deja current, salvo que reset pida volver a Released.
func DeriveStatus(completed, quantity int, current string, reset bool) string {
	switch {
	case completed >= quantity:
		return entity.ProductionStatusCompleted
	case completed > 0:
		return entity.ProductionStatusInProgress
	case reset:
		return entity.ProductionStatusReleased
	}
	return current
}

// OnCreate suma el aporte de una inspección nueva. Solo una Released re-deriva
// el estado y nunca lo regresa a Released.
func OnCreate(t Tally, o Outcome) Tally {
	t = t.add(ContributionOf(o))
	if o.Status == entity.InspectionStatusReleased {
		t.Status = DeriveStatus(t.Completed, t.Quantity, t.Status, false)
	}
	return t
}

// OnUpdate revierte el aporte anterior y suma el nuevo. Si el nuevo resultado es
// Released el estado se re-deriva, pudiendo volver a Released.
func OnUpdate(t Tally, old, updated Outcome) Tally {
	t = t.sub(ContributionOf(old)).add(ContributionOf(updated))
	if updated.Status == entity.InspectionStatusReleased {
		t.Status = DeriveStatus(t.Completed, t.Quantity, t.Status, true)
	}
	return t
}

// OnDelete revierte el aporte y re-deriva el estado siempre. Puede bajar una
// orden Completed a In Progress.
func OnDelete(t Tally, old Outcome) Tally {
	t = t.sub(ContributionOf(old))
	t.Status = DeriveStatus(t.Completed, t.Quantity, t.Status, true)
	return t
}

// Recompute suma desde cero los aportes de las inspecciones vivas.
func Recompute(outcomes []Outcome) Contribution {
	var total Contribution
	for _, o := range outcomes {
		c := ContributionOf(o)
		total.Completed += c.Completed
		total.Scrapped += c.Scrapped
	}
	return total
}
