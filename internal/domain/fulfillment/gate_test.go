package fulfillment_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/domain"
	"github.com/jhoicas/aurexia-api/internal/domain/fulfillment"
)

func TestGate_OrdenInexistente(t *testing.T) {
	_, err := fulfillment.EvaluateGate(fulfillment.GateInput{Requested: 1})
	require.Error(t, err)
	assert.Equal(t, "Production order not found", err.Error())
}

func TestGate_SinInspecciones(t *testing.T) {
	_, err := fulfillment.EvaluateGate(fulfillment.GateInput{OrderFound: true, PONumber: "PO-1", Requested: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not been quality inspected yet")
	assert.Contains(t, err.Error(), "PO-1")
	assert.True(t, errors.Is(err, domain.ErrQualityGate))
}

func TestGate_LoteRechazadoBloqueaTodo(t *testing.T) {
	in := fulfillment.GateInput{
		OrderFound:     true,
		PONumber:       "PO-2",
		Inspections:    []fulfillment.Outcome{released(100, 0), rejected(10)},
		AlreadyShipped: 0,
		Requested:      1,
	}
	fig, err := fulfillment.EvaluateGate(in)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "has been rejected by quality control")
	assert.Equal(t, 100, fig.Approved)
	assert.Zero(t, fig.Available)

	var gerr *fulfillment.GateError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, fulfillment.GateRejectedBatch, gerr.Reason)
}

func TestGate_ExcedeDisponible(t *testing.T) {
	in := fulfillment.GateInput{
		OrderFound:     true,
		PONumber:       "PO-3",
		Inspections:    []fulfillment.Outcome{released(100, 0)},
		AlreadyShipped: 40,
		Requested:      70,
	}
	_, err := fulfillment.EvaluateGate(in)
	require.Error(t, err)
	assert.Equal(t,
		"Cannot ship 70 units. Only 60 approved units available (Total approved: 100, Already shipped: 40).",
		err.Error())

	var gerr *fulfillment.GateError
	require.True(t, errors.As(err, &gerr))
	assert.Equal(t, fulfillment.GateFigures{Requested: 70, Approved: 100, AlreadyShipped: 40, Available: 60}, gerr.GateFigures)
}

func TestGate_Acepta(t *testing.T) {
	in := fulfillment.GateInput{
		OrderFound:     true,
		PONumber:       "PO-3",
		Inspections:    []fulfillment.Outcome{released(70, 2), released(30, 0)},
		AlreadyShipped: 40,
		Requested:      60,
	}
	fig, err := fulfillment.EvaluateGate(in)
	require.NoError(t, err)
	assert.Equal(t, 60, fig.Available)
}

func TestAvailableToShip_PisoCero(t *testing.T) {
	assert.Equal(t, 0, fulfillment.AvailableToShip(10, 25))
	assert.Equal(t, 5, fulfillment.AvailableToShip(30, 25))
}
