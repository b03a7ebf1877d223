// Package pdf imprime la hoja viajera que acompaña al lote por la planta.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: N° hoja viajera + PO  │  QR de la hoja             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARTE: número + descripción | cantidad | lote | entrega     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Sec | Proceso | T. estándar | QR de operación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: instrucciones de escaneo                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/aurexia-api/internal/application/dto"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa production.TravelSheetPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	company string
}

// NewMarotoPDFGenerator construye el generador; company se imprime como autor del documento.
func NewMarotoPDFGenerator(company string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{company: company}
}

// GenerateTravelSheetPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateTravelSheetPDF(_ context.Context, doc dto.TravelSheetDocument) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja viajera "+doc.TravelSheetNumber, true).
		WithAuthor(g.company, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range operationRows(doc.Operations) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja viajera: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: número de hoja y PO (izq), QR de la hoja (der).
func headerRow(doc dto.TravelSheetDocument) core.Row {
	return row.New(34).Add(
		col.New(8).Add(
			text.New("HOJA VIAJERA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.TravelSheetNumber, props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("Orden de producción: "+doc.PONumber, props.Text{
				Size: 9, Top: 15, Color: colorGray,
			}),
		),
		col.New(4).Add(code.NewQr(doc.QRCode, props.Rect{Percent: 95, Center: true})),
	)
}

// partRow: parte, cantidad, lote y fecha compromiso.
func partRow(doc dto.TravelSheetDocument) core.Row {
	due := "-"
	if doc.DueDate != nil {
		due = doc.DueDate.Format("02/01/2006")
	}
	return row.New(16).Add(
		col.New(6).Add(
			text.New("NÚMERO DE PARTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(doc.PartNumber, props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New(nonEmpty(doc.PartDescription, "-"), props.Text{Size: 8, Top: 11, Color: colorGray}),
		),
		col.New(6).Add(
			text.New(fmt.Sprintf("Cantidad: %d", doc.Quantity), props.Text{Size: 9, Align: align.Right, Top: 1}),
			text.New("Lote: "+nonEmpty(doc.BatchNumber, "-"), props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New("Entrega: "+due, props.Text{Size: 9, Align: align.Right, Top: 11}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de operaciones.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Sec.", 1, align.Center),
		h("Proceso", 5, align.Left),
		h("T. estándar (min)", 3, align.Right),
		h("QR", 3, align.Center),
	)
}

// operationRows: una fila por operación, con el QR que el operador escanea.
func operationRows(ops []dto.TravelSheetDocumentStep) []core.Row {
	result := make([]core.Row, 0, len(ops))
	for _, op := range ops {
		std := "-"
		if op.StandardTimeMinutes != nil {
			std = op.StandardTimeMinutes.StringFixed(2)
		}
		result = append(result, row.New(28).Add(
			col.New(1).Add(text.New(strconv.Itoa(op.SequenceNumber), props.Text{
				Size: 9, Align: align.Center, Top: 10,
			})),
			col.New(5).Add(text.New(op.ProcessName, props.Text{
				Size: 9, Align: align.Left, Top: 10, Left: 1,
			})),
			col.New(3).Add(text.New(std, props.Text{
				Size: 9, Align: align.Right, Top: 10, Right: 1,
			})),
			col.New(3).Add(code.NewQr(op.QRCode, props.Rect{Percent: 90, Center: true})),
		))
	}
	return result
}

func footerRow() core.Row {
	return row.New(10).Add(col.New(12).Add(
		text.New("Escanee el QR de la operación con su gafete al iniciar y al terminar. "+
			"La hoja viaja con el lote hasta inspección de calidad.",
			props.Text{Size: 7, Color: colorGray, Top: 2},
		),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
