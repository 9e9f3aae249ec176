package reports

import (
	"context"
	"time"
)

// Table es la forma tabular común a todos los exportadores.
type Table struct {
	Title       string
	CompanyName string
	GeneratedAt time.Time
	Columns     []string
	Rows        [][]string
	Summary     []SummaryLine
}

// SummaryLine una línea "etiqueta: valor" bajo la tabla.
type SummaryLine struct {
	Label string
	Value string
}

// PDFRenderer genera el PDF de un reporte.
type PDFRenderer interface {
	RenderPDF(ctx context.Context, t Table) ([]byte, error)
}

// SheetRenderer genera el Excel (SpreadsheetML) de un reporte.
type SheetRenderer interface {
	RenderSheet(ctx context.Context, t Table) ([]byte, error)
}
