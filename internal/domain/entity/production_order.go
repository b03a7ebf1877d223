package entity

import "time"

// Estados de la orden de producción. No hay tabla de transiciones: cualquier
// estado puede asignarse directamente.
const (
	ProductionStatusCreated    = "Created"
	ProductionStatusReleased   = "Released"
	ProductionStatusInProgress = "In Progress"
	ProductionStatusCompleted  = "Completed"
	ProductionStatusCancelled  = "Cancelled"
)

// Prioridades.
const (
	PriorityLow    = "Low"
	PriorityNormal = "Normal"
	PriorityHigh   = "High"
	PriorityUrgent = "Urgent"
)

// ProductionOrder orden interna de fabricación de un número de parte.
// QuantityCompleted y QuantityScrapped son agregados materializados de las
// inspecciones de calidad; solo el roll-up de calidad los escribe.
type ProductionOrder struct {
	ID                string
	PONumber          string
	SalesOrderID      *string
	SalesOrderItemID  *string
	PartNumberID      string
	Quantity          int
	QuantityCompleted int
	QuantityScrapped  int
	Status            string
	StartDate         *time.Time
	DueDate           *time.Time
	Priority          string
	CreatedBy         string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// IsValidProductionStatus indica si s es uno de los cinco estados conocidos.
func IsValidProductionStatus(s string) bool {
	switch s {
	case ProductionStatusCreated, ProductionStatusReleased, ProductionStatusInProgress,
		ProductionStatusCompleted, ProductionStatusCancelled:
		return true
	}
	return false
}
