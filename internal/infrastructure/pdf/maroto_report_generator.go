// Package pdf genera la versión PDF de los reportes del portal.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título del reporte     │  Empresa + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: una columna por campo del dataset                   │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: etiqueta / valor                                  │
//	│  FOOTER: leyenda                                            │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"

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

	"github.com/jhoicas/portal-admin/internal/application/reports"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// maroto reparte cada fila en 12 unidades de ancho.
const gridSize = 12

// ── Generator ─────────────────────────────────────────────────────────────────

// Asegura que MarotoReportGenerator implementa reports.PDFRenderer.
var _ reports.PDFRenderer = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa reports.PDFRenderer usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// RenderPDF genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) RenderPDF(_ context.Context, t reports.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("pdf: el reporte no tiene columnas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(t.Title, true).
		WithAuthor(t.CompanyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(t))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	widths := columnWidths(len(t.Columns))
	m.AddRows(tableHeaderRow(t.Columns, widths))
	for _, r := range tableRows(t.Rows, widths) {
		m.AddRows(r)
	}

	if len(t.Summary) > 0 {
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
		for _, r := range summaryRows(t.Summary) {
			m.AddRows(r)
		}
	}

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título (izq) y empresa + fecha de generación (der).
func headerRow(t reports.Table) core.Row {
	fecha := t.GeneratedAt.Format("02/01/2006 15:04")

	return row.New(16).Add(
		col.New(7).Add(
			text.New(t.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New(nonEmpty(t.CompanyName, "—"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Generado: "+fecha, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla.
func tableHeaderRow(columns []string, widths []int) core.Row {
	cols := make([]core.Col, 0, len(columns))
	for i, c := range columns {
		cols = append(cols, col.New(widths[i]).Add(text.New(c, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...)
}

// tableRows: una fila por registro, con fondo alterno.
func tableRows(rows [][]string, widths []int) []core.Row {
	result := make([]core.Row, 0, len(rows))
	for i, r := range rows {
		cols := make([]core.Col, 0, len(widths))
		for j, w := range widths {
			cell := ""
			if j < len(r) {
				cell = r[j]
			}
			cols = append(cols, col.New(w).Add(text.New(cell, props.Text{
				Size: 8, Top: 1, Left: 1, Right: 1,
			})))
		}
		rr := row.New(7).Add(cols...)
		if i%2 == 1 {
			rr.WithStyle(&props.Cell{BackgroundColor: colorStripe})
		}
		result = append(result, rr)
	}
	if len(rows) == 0 {
		result = append(result, row.New(8).Add(col.New(gridSize).Add(
			text.New("Sin registros para los filtros seleccionados.", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	return result
}

// summaryRows: bloque de totales alineado a la derecha.
func summaryRows(lines []reports.SummaryLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(6).Add(
			col.New(6),
			col.New(3).Add(text.New(l.Label+":", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
			})),
			col.New(3).Add(text.New(l.Value, props.Text{
				Size: 9, Align: align.Right, Right: 1,
			})),
		))
	}
	return rows
}

func footerRow() core.Row {
	return row.New(8).Add(col.New(gridSize).Add(
		text.New("Reporte generado desde el Portal de Administración.", props.Text{
			Size: 6.5, Color: colorGray, Top: 2,
		}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnWidths reparte las 12 unidades entre n columnas; el sobrante va a las primeras.
// Con más de 12 columnas cada una recibe 1 y maroto las envuelve.
func columnWidths(n int) []int {
	widths := make([]int, n)
	if n == 0 {
		return widths
	}
	base := gridSize / n
	if base == 0 {
		base = 1
	}
	extra := gridSize - base*n
	for i := range widths {
		widths[i] = base
		if extra > 0 {
			widths[i]++
			extra--
		}
	}
	return widths
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
