package fulfillment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

var today = time.Date(2025, time.January, 10, 15, 30, 0, 0, time.Local)

func TestRisk_VencidaEsRed(t *testing.T) {
	assert.Equal(t, fulfillment.RiskRed, fulfillment.Risk(day(2025, 1, 9), "In Progress", today))
}

func TestRisk_DentroDeVentanaEsYellow(t *testing.T) {
	assert.Equal(t, fulfillment.RiskYellow, fulfillment.Risk(day(2025, 1, 12), "Released", today))
	assert.Equal(t, fulfillment.RiskYellow, fulfillment.Risk(day(2025, 1, 10), "Released", today), "vence hoy")
	assert.Equal(t, fulfillment.RiskYellow, fulfillment.Risk(day(2025, 1, 13), "Released", today), "borde de la ventana")
}

func TestRisk_FueraDeVentanaEsGreen(t *testing.T) {
	assert.Equal(t, fulfillment.RiskGreen, fulfillment.Risk(day(2025, 1, 14), "Created", today))
	assert.Equal(t, fulfillment.RiskGreen, fulfillment.Risk(day(2025, 1, 20), "Created", today))
}

func TestRisk_SinFechaEsYellow(t *testing.T) {
	assert.Equal(t, fulfillment.RiskYellow, fulfillment.Risk(nil, "Created", today))
}

func TestRisk_EstadoTerminalSiempreGreen(t *testing.T) {
	for _, st := range []string{"Completed", "Shipped", "Delivered"} {
		assert.Equal(t, fulfillment.RiskGreen, fulfillment.Risk(day(2024, 12, 1), st, today), st)
		assert.Equal(t, fulfillment.RiskGreen, fulfillment.Risk(nil, st, today), st)
	}
}

func TestRisk_CanceladaNoEsTerminal(t *testing.T) {
	assert.Equal(t, fulfillment.RiskRed, fulfillment.Risk(day(2025, 1, 1), "Cancelled", today))
}

func TestRiskClassifier_VentanaConfigurable(t *testing.T) {
	c := fulfillment.NewRiskClassifier(7)
	assert.Equal(t, fulfillment.RiskYellow, c.Classify(day(2025, 1, 17), "Released", today))
	assert.Equal(t, fulfillment.RiskGreen, c.Classify(day(2025, 1, 18), "Released", today))

	zero := fulfillment.NewRiskClassifier(-2)
	assert.Equal(t, fulfillment.RiskYellow, zero.Classify(day(2025, 1, 10), "Released", today))
	assert.Equal(t, fulfillment.RiskGreen, zero.Classify(day(2025, 1, 11), "Released", today))
}

func TestIsValidRisk(t *testing.T) {
	assert.True(t, fulfillment.IsValidRisk("Red"))
	assert.False(t, fulfillment.IsValidRisk("red"))
	assert.False(t, fulfillment.IsValidRisk(""))
}
