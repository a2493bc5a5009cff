// Package pdf genera los comprobantes imprimibles de recepciones, entregas y traslados.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + N° documento │ Estado + Fecha              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Proveedor/Cliente/Origen │ Bodega │ Dirección               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Producto | Cantidad | Unidad                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  Notas │ QR del número │ Firmas                              │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/almacen-api/internal/application/usecase"
)

var _ usecase.DocumentPDFGenerator = (*SlipGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// SlipGenerator implementa usecase.DocumentPDFGenerator usando Maroto v2.
type SlipGenerator struct{}

// NewSlipGenerator construye el generador.
func NewSlipGenerator() *SlipGenerator { return &SlipGenerator{} }

// GenerateSlip genera el PDF del comprobante y devuelve sus bytes.
func (g *SlipGenerator) GenerateSlip(_ context.Context, slip usecase.DocumentSlip) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(slip.Title+" "+slip.Number, true).
		WithAuthor(nonEmpty(slip.CreatedByName, "almacen-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(slip))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableLineRows(slip.Lines)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(slip.Lines))

	m.AddRows(row.New(4))
	m.AddRows(footerRow(slip))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(slip usecase.DocumentSlip) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(slip.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(slip.Number, props.Text{
				Style: fontstyle.Bold, Size: 12, Top: 9,
			}),
		),
		col.New(5).Add(
			text.New("Estado: "+slip.Status, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 2,
			}),
			text.New("Fecha: "+slip.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func partiesRow(slip usecase.DocumentSlip) core.Row {
	block := func(label, value string) core.Col {
		return col.New(4).Add(
			text.New(label, props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(value, "-"), props.Text{Size: 9, Top: 6}),
		)
	}
	warehouseLabel := "BODEGA"
	if slip.PartyLabel == "Origen" {
		warehouseLabel = "DESTINO"
	}
	return row.New(14).Add(
		block(strings.ToUpper(slip.PartyLabel), slip.Party),
		block(warehouseLabel, slip.Warehouse),
		block("DIRECCIÓN", slip.Address),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Producto", 7, align.Left),
		h("Cantidad", 2, align.Right),
		h("Unidad", 2, align.Center),
	)
}

func tableLineRows(lines []usecase.SlipLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for i, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(strconv.Itoa(i+1), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(7).Add(text.New(l.ProductName, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(strconv.Itoa(l.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(l.Unit, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return result
}

func totalRow(lines []usecase.SlipLine) core.Row {
	total := 0
	for _, l := range lines {
		total += l.Quantity
	}
	return row.New(8).Add(
		col.New(8).Add(text.New("Total unidades:", props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 1,
		})),
		col.New(2).Add(text.New(strconv.Itoa(total), props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 1, Top: 1, Color: colorPrimary,
		})),
		col.New(2),
	)
}

// footerRow: notas y firmas a la izquierda, QR con el número del documento a la derecha.
func footerRow(slip usecase.DocumentSlip) core.Row {
	return row.New(40).Add(
		col.New(8).Add(
			text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(nonEmpty(slip.Notes, "-"), props.Text{Size: 8, Top: 6, Color: colorGray}),
			text.New("Elaborado por: "+nonEmpty(slip.CreatedByName, "-"), props.Text{Size: 8, Top: 24}),
			text.New("Recibido por: ______________________", props.Text{Size: 8, Top: 32}),
		),
		col.New(4).Add(code.NewQr(slip.Number, props.Rect{Percent: 90, Center: true})),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
