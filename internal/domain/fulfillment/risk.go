// Package fulfillment reúne las reglas puras que mantienen consistentes
// órdenes de producción, inspecciones de calidad y embarques.
package fulfillment

import "time"

// RiskStatus semáforo de riesgo de entrega.
type RiskStatus string

const (
	RiskGreen  RiskStatus = "Green"
	RiskYellow RiskStatus = "Yellow"
	RiskRed    RiskStatus = "Red"
)

// DefaultRiskWindowDays días (inclusive) antes del vencimiento en que una orden pasa a Yellow.
const DefaultRiskWindowDays = 3

// RiskClassifier clasifica fecha compromiso + estado en Green/Yellow/Red.
type RiskClassifier struct {
	windowDays int
}

// NewRiskClassifier construye el clasificador; windowDays negativo se trata como 0.
func NewRiskClassifier(windowDays int) RiskClassifier {
	if windowDays < 0 {
		windowDays = 0
	}
	return RiskClassifier{windowDays: windowDays}
}

// Classify aplica las reglas en orden:
// estado terminal -> Green; sin fecha -> Yellow; vencida -> Red;
// vence dentro de la ventana -> Yellow; resto -> Green.
// Solo se compara la fecha de calendario; la hora se ignora.
func (c RiskClassifier) Classify(dueDate *time.Time, status string, today time.Time) RiskStatus {
	if isRiskTerminal(status) {
		return RiskGreen
	}
	if dueDate == nil {
		return RiskYellow
	}
	due := calendarDate(*dueDate)
	day := calendarDate(today)
	if due.Before(day) {
		return RiskRed
	}
	if !due.After(day.AddDate(0, 0, c.windowDays)) {
		return RiskYellow
	}
	return RiskGreen
}

// Risk clasifica con la ventana por defecto.
func Risk(dueDate *time.Time, status string, today time.Time) RiskStatus {
	return NewRiskClassifier(DefaultRiskWindowDays).Classify(dueDate, status, today)
}

// IsValidRisk indica si s es uno de los tres literales del semáforo.
func IsValidRisk(s string) bool {
	switch RiskStatus(s) {
	case RiskGreen, RiskYellow, RiskRed:
		return true
	}
	return false
}

func isRiskTerminal(status string) bool {
	switch status {
	case "Completed", "Shipped", "Delivered":
		return true
	}
	return false
}

func calendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
