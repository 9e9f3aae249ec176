package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/reports"
)

func TestColumnWidths(t *testing.T) {
	tests := []struct {
		n    int
		want []int
	}{
		{1, []int{12}},
		{3, []int{4, 4, 4}},
		{5, []int{3, 3, 2, 2, 2}},
		{7, []int{2, 2, 2, 2, 2, 1, 1}},
	}
	for _, tt := range tests {
		got := columnWidths(tt.n)
		assert.Equal(t, tt.want, got)
		sum := 0
		for _, w := range got {
			sum += w
		}
		assert.Equal(t, gridSize, sum)
	}
}

func TestRenderPDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	table := reports.Table{
		Title:       "Reporte de Inventario",
		CompanyName: "Empresa Demo S.A.",
		GeneratedAt: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC),
		Columns:     []string{"Producto", "SKU", "Stock"},
		Rows:        [][]string{{"Laptop", "LAP-001", "15"}, {"Mouse", "MOU-001", "0"}},
		Summary:     []reports.SummaryLine{{Label: "Total registros", Value: "2"}},
	}

	out, err := g.RenderPDF(context.Background(), table)

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestRenderPDF_NoColumns(t *testing.T) {
	_, err := NewMarotoReportGenerator().RenderPDF(context.Background(), reports.Table{Title: "x"})
	assert.Error(t, err)
}
