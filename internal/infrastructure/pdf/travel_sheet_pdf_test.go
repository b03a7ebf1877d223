package pdf_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
	"github.com/jhoicas/aurexia-api/internal/infrastructure/pdf"
)

func TestGenerateTravelSheetPDF_DocumentoValido(t *testing.T) {
	std := decimal.RequireFromString("2.5")
	due := time.Date(2025, 3, 15, 0, 0, 0, 0, time.UTC)
	doc := dto.TravelSheetDocument{
		TravelSheetNumber: "TS-20250301-AB12CD34",
		QRCode:            `{"type":"travel_sheet","id":"ts-1"}`,
		PONumber:          "PO-20250301-11223344",
		PartNumber:        "11-1628-01",
		Quantity:          250,
		DueDate:           &due,
		Operations: []dto.TravelSheetDocumentStep{
			{SequenceNumber: 10, ProcessName: "Corte", QRCode: `{"type":"operation","id":"op-1"}`, StandardTimeMinutes: &std},
			{SequenceNumber: 20, ProcessName: "Torneado", QRCode: `{"type":"operation","id":"op-2"}`},
		},
	}

	out, err := pdf.NewMarotoPDFGenerator("Aurexia").GenerateTravelSheetPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}

func TestGenerateTravelSheetPDF_SinOperaciones(t *testing.T) {
	doc := dto.TravelSheetDocument{TravelSheetNumber: "TS-1", QRCode: "ts-1", PONumber: "PO-1", PartNumber: "P-1"}

	out, err := pdf.NewMarotoPDFGenerator("Aurexia").GenerateTravelSheetPDF(context.Background(), doc)

	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
