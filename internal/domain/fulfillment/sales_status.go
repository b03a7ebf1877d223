package fulfillment

import "github.com/jhoicas/aurexia-api/internal/domain/entity"

// Line cantidad ordenada y embarcada de una línea de orden de venta.
type Line struct {
	Ordered int
	Shipped int
}

// SalesOrderStatus Open si no se ha embarcado nada, Completed si lo embarcado
// cubre lo ordenado, Partial en otro caso. ok es falso si no hay líneas.
func SalesOrderStatus(lines []Line) (status string, ok bool) {
	if len(lines) == 0 {
		return "", false
	}
	ordered, shipped := 0, 0
	for _, l := range lines {
		ordered += l.Ordered
		shipped += l.Shipped
	}
	switch {
	case shipped == 0:
		return entity.SalesOrderStatusOpen, true
	case shipped >= ordered:
		return entity.SalesOrderStatusCompleted, true
	}
	return entity.SalesOrderStatusPartial, true
}

// LinesOf adapta las líneas persistidas.
func LinesOf(items []entity.SalesOrderItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Ordered: it.Quantity, Shipped: it.QuantityShipped}
	}
	return lines
}

// AdjustShipped aplica delta al embarcado acumulado con piso en cero.
func AdjustShipped(current, delta int) int {
	return max(0, current+delta)
}

// RemainingToFulfill lo que falta por embarcar de una línea, sin bajar de cero.
func RemainingToFulfill(ordered, shipped int) int {
	return max(0, ordered-shipped)
}
