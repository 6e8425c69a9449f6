// Package pdf genera el reporte de ventas del almacén en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Catálogo raíz + id   │  Fecha de generación        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Tipo | Id | Nombre | Unid. | P.Unit | Ventas         │
//	│         (preorden, sangría por nivel)                        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Marcas / Productos / VALOR DE VENTAS               │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	maroto "github.com/johnfercher/maroto/v2"
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
	"github.com/shopspring/decimal"

	appcatalog "github.com/jhoicas/Almacen-api/internal/application/catalog"
	"github.com/jhoicas/Almacen-api/internal/domain/catalog"
)

var _ appcatalog.SalesReportGenerator = (*MarotoSalesReport)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoSalesReport implementa catalog.SalesReportGenerator usando Maroto v2.
type MarotoSalesReport struct {
	now func() time.Time
}

// NewMarotoSalesReport construye el generador.
func NewMarotoSalesReport() *MarotoSalesReport {
	return &MarotoSalesReport{now: time.Now}
}

// reportLine nodo del recorrido con su profundidad.
type reportLine struct {
	node  catalog.Node
	depth int
}

// GenerateSalesReport genera el PDF y devuelve sus bytes.
func (g *MarotoSalesReport) GenerateSalesReport(ctx context.Context, root *catalog.Category) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Reporte de ventas "+root.Name(), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(root, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(reportLines(root))...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(root))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// reportLines preorden completo (con productos) con la profundidad de cada nodo.
func reportLines(root *catalog.Category) []reportLine {
	var out []reportLine
	depth := 0
	root.Accept(catalog.VisitorFuncs{
		OnEnter: func(n catalog.Node) {
			out = append(out, reportLine{node: n, depth: depth})
			depth++
		},
		OnLeave: func(catalog.Node) { depth-- },
	})
	return out
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(root *catalog.Category, at time.Time) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(root.Name(), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Catálogo "+root.ID(), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE VENTAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Fecha: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Tipo", 2, align.Left),
		h("Id", 2, align.Left),
		h("Nombre", 3, align.Left),
		h("Unid.", 1, align.Center),
		h("P.Unit", 2, align.Right),
		h("Ventas", 2, align.Right),
	)
}

// tableRows una fila por nodo; los productos muestran unidades y precio.
func tableRows(lines []reportLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		style := fontstyle.Normal
		units, price := "", ""
		if p, ok := l.node.(*catalog.Product); ok {
			units = strconv.Itoa(p.UnitsSold())
			price = "$" + formatMoney(p.UnitPrice())
		} else {
			style = fontstyle.Bold
		}
		indent := strings.Repeat("  ", l.depth)
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(indent+l.node.Kind().String(), props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
			col.New(2).Add(text.New(l.node.ID(), props.Text{Size: 8, Top: 1, Left: 1, Color: colorGray})),
			col.New(3).Add(text.New(l.node.Name(), props.Text{Size: 8, Style: style, Top: 1, Left: 1})),
			col.New(1).Add(text.New(units, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(price, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New("$"+formatMoney(l.node.SalesValue()), props.Text{
				Size: 8, Style: style, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

func totalsRow(root *catalog.Category) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Marcas:"),
			label("Productos:"),
			text.New("VALOR DE VENTAS:", props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2,
			}),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(root.Brands()))),
			value(strconv.Itoa(len(root.Products()))),
			text.New("$"+formatMoney(root.SalesValue()), props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1,
			}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

// formatMoney redondea a pesos con puntos de miles.
// Ej: 1898900 → "1.898.900"
func formatMoney(d decimal.Decimal) string {
	return strings.ReplaceAll(humanize.Comma(d.Round(0).IntPart()), ",", ".")
}
