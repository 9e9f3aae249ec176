package spreadsheet

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/reports"
)

func TestRenderSheet(t *testing.T) {
	table := reports.Table{
		Title:       "Reporte de Usuarios",
		CompanyName: "Empresa Demo S.A.",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Columns:     []string{"Nombre", "Email", "Stock"},
		Rows:        [][]string{{"Juan Pérez", "admin@empresa.com", "15"}},
		Summary:     []reports.SummaryLine{{Label: "Total registros", Value: "1"}},
	}

	out, err := NewWriter().RenderSheet(context.Background(), table)
	require.NoError(t, err)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out))
	book := doc.Root()
	require.NotNil(t, book)
	assert.Equal(t, "Workbook", book.Tag)

	sheet := book.SelectElement("Worksheet")
	require.NotNil(t, sheet)
	assert.Equal(t, "Reporte de Usuarios", sheet.SelectAttrValue("ss:Name", ""))

	rows := sheet.SelectElement("Table").SelectElements("Row")
	// título, cabecera, 1 fila, separador, 1 línea de resumen
	require.Len(t, rows, 5)

	cells := rows[2].SelectElements("Cell")
	require.Len(t, cells, 3)
	assert.Equal(t, "Juan Pérez", cells[0].SelectElement("Data").Text())
	assert.Equal(t, "String", cells[0].SelectElement("Data").SelectAttrValue("ss:Type", ""))
	assert.Equal(t, "Number", cells[2].SelectElement("Data").SelectAttrValue("ss:Type", ""))
	assert.True(t, strings.Contains(string(out), `progid="Excel.Sheet"`))
}

func TestSheetNameTruncated(t *testing.T) {
	assert.Equal(t, "Reporte", sheetName(""))
	assert.Len(t, []rune(sheetName(strings.Repeat("á", 40))), maxSheetName)
}

func TestRenderSheet_NoColumns(t *testing.T) {
	_, err := NewWriter().RenderSheet(context.Background(), reports.Table{})
	assert.Error(t, err)
}
