// Package spreadsheet exporta reportes como libro Excel XML (SpreadsheetML 2003),
// que Excel y LibreOffice abren sin dependencias binarias.
package spreadsheet

import (
	"bytes"
	"context"
	"fmt"
	"strconv"

	"github.com/beevik/etree"

	"github.com/jhoicas/portal-admin/internal/application/reports"
)

// Namespaces de SpreadsheetML 2003.
const (
	nsSpreadsheet = "urn:schemas-microsoft-com:office:spreadsheet"
	nsOffice      = "urn:schemas-microsoft-com:office:office"
	nsExcel       = "urn:schemas-microsoft-com:office:excel"
	nsHTML        = "http://www.w3.org/TR/REC-html40"

	// Excel limita el nombre de hoja a 31 caracteres.
	maxSheetName = 31

	styleHeader = "hdr"
	styleTitle  = "ttl"
)

// Asegura que Writer implementa reports.SheetRenderer.
var _ reports.SheetRenderer = (*Writer)(nil)

// Writer genera el XML del libro.
type Writer struct{}

// NewWriter crea el exportador.
func NewWriter() *Writer { return &Writer{} }

// RenderSheet construye un libro de una sola hoja: título, cabecera, filas y resumen.
func (w *Writer) RenderSheet(_ context.Context, t reports.Table) ([]byte, error) {
	if len(t.Columns) == 0 {
		return nil, fmt.Errorf("spreadsheet: el reporte no tiene columnas")
	}
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.CreateProcInst("mso-application", `progid="Excel.Sheet"`)

	book := doc.CreateElement("Workbook")
	book.CreateAttr("xmlns", nsSpreadsheet)
	book.CreateAttr("xmlns:o", nsOffice)
	book.CreateAttr("xmlns:x", nsExcel)
	book.CreateAttr("xmlns:ss", nsSpreadsheet)
	book.CreateAttr("xmlns:html", nsHTML)

	writeStyles(book)

	sheet := book.CreateElement("Worksheet")
	sheet.CreateAttr("ss:Name", sheetName(t.Title))
	table := sheet.CreateElement("Table")

	title := table.CreateElement("Row")
	addCell(title, t.Title, styleTitle)
	if t.CompanyName != "" {
		addCell(title, t.CompanyName, "")
	}
	if !t.GeneratedAt.IsZero() {
		addCell(title, t.GeneratedAt.Format("2006-01-02 15:04"), "")
	}

	header := table.CreateElement("Row")
	for _, c := range t.Columns {
		addCell(header, c, styleHeader)
	}
	for _, r := range t.Rows {
		row := table.CreateElement("Row")
		for _, v := range r {
			addCell(row, v, "")
		}
	}
	if len(t.Summary) > 0 {
		table.CreateElement("Row")
		for _, s := range t.Summary {
			row := table.CreateElement("Row")
			addCell(row, s.Label, styleHeader)
			addCell(row, s.Value, "")
		}
	}

	doc.Indent(2)
	var out bytes.Buffer
	if _, err := doc.WriteTo(&out); err != nil {
		return nil, fmt.Errorf("spreadsheet: serializar: %w", err)
	}
	return out.Bytes(), nil
}

func writeStyles(book *etree.Element) {
	styles := book.CreateElement("Styles")

	hdr := styles.CreateElement("Style")
	hdr.CreateAttr("ss:ID", styleHeader)
	hdr.CreateElement("Font").CreateAttr("ss:Bold", "1")
	interior := hdr.CreateElement("Interior")
	interior.CreateAttr("ss:Color", "#DCE6F0")
	interior.CreateAttr("ss:Pattern", "Solid")

	ttl := styles.CreateElement("Style")
	ttl.CreateAttr("ss:ID", styleTitle)
	font := ttl.CreateElement("Font")
	font.CreateAttr("ss:Bold", "1")
	font.CreateAttr("ss:Size", "14")
	font.CreateAttr("ss:Color", "#00467F")
}

// addCell agrega una celda; los enteros y decimales en formato Go se escriben como Number.
func addCell(row *etree.Element, value, style string) {
	cell := row.CreateElement("Cell")
	if style != "" {
		cell.CreateAttr("ss:StyleID", style)
	}
	data := cell.CreateElement("Data")
	if _, err := strconv.ParseFloat(value, 64); err == nil && style == "" {
		data.CreateAttr("ss:Type", "Number")
	} else {
		data.CreateAttr("ss:Type", "String")
	}
	data.SetText(value)
}

func sheetName(title string) string {
	if title == "" {
		return "Reporte"
	}
	r := []rune(title)
	if len(r) > maxSheetName {
		r = r[:maxSheetName]
	}
	return string(r)
}
