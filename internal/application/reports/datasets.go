package reports

import (
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// Datasets disponibles.
const (
	DatasetSales     = "ventas"
	DatasetInventory = "inventario"
	DatasetUsers     = "usuarios"
)

// Filtros de estado.
const (
	StatusAll      = "all"
	StatusActive   = "active"
	StatusArchived = "archived"
)

// Estados de las filas de ventas.
const (
	SalesActive   = "Activo"
	SalesArchived = "Archivado"
)

// Filter filtros de un dataset. Las fechas son ISO (2006-01-02) y solo aplican a ventas.
type Filter struct {
	StartDate string
	EndDate   string
	Status    string
}

// Column clave de la fila y encabezado mostrado.
type Column struct {
	Key   string
	Label string
}

// Dataset filas ya filtradas y formateadas para mostrar o exportar.
type Dataset struct {
	Type    string
	Name    string
	Columns []Column
	Rows    []map[string]string
}

// Headers encabezados en orden.
func (d Dataset) Headers() []string {
	out := make([]string, len(d.Columns))
	for i, c := range d.Columns {
		out[i] = c.Label
	}
	return out
}

// Matrix filas en el orden de las columnas.
func (d Dataset) Matrix() [][]string {
	out := make([][]string, 0, len(d.Rows))
	for _, r := range d.Rows {
		row := make([]string, len(d.Columns))
		for i, c := range d.Columns {
			row[i] = r[c.Key]
		}
		out = append(out, row)
	}
	return out
}

// SalesRow fila de ventas mensuales (datos de demostración).
type SalesRow struct {
	ID           int
	Month        string
	Date         string
	Sales        int
	Transactions int
	Status       string
}

// MonthlySales serie fija de ventas de demostración.
var MonthlySales = []SalesRow{
	{1, "Enero", "2024-01-31", 45000, 120, SalesActive},
	{2, "Febrero", "2024-02-28", 52000, 145, SalesActive},
	{3, "Marzo", "2024-03-31", 48000, 132, SalesActive},
	{4, "Abril", "2024-04-30", 61000, 167, SalesActive},
	{5, "Mayo", "2024-05-31", 55000, 151, SalesActive},
	{6, "Junio", "2024-06-30", 67000, 189, SalesActive},
	{7, "Julio", "2024-07-31", 71000, 195, SalesActive},
	{8, "Agosto", "2024-08-31", 68000, 178, SalesArchived},
}

var datasetNames = map[string]string{
	DatasetSales:     "Ventas Mensual",
	DatasetInventory: "Movimientos de Inventario",
	DatasetUsers:     "Usuarios Creados",
}

// DatasetName nombre visible del dataset.
func DatasetName(typ string) (string, error) {
	name, ok := datasetNames[typ]
	if !ok {
		return "", fmt.Errorf("%w: tipo de reporte desconocido %q", domain.ErrInvalidInput, typ)
	}
	return name, nil
}

// Validate comprueba el estado pedido y el formato de las fechas.
func (f Filter) Validate() error {
	switch f.Status {
	case "", StatusAll, StatusActive, StatusArchived:
	default:
		return fmt.Errorf("%w: estado de filtro desconocido %q", domain.ErrInvalidInput, f.Status)
	}
	for _, d := range []string{f.StartDate, f.EndDate} {
		if d != "" && !isISODate(d) {
			return fmt.Errorf("%w: fecha inválida %q (use AAAA-MM-DD)", domain.ErrInvalidInput, d)
		}
	}
	return nil
}

// matchStatus: "active" acepta activeValue, "archived" acepta archivedValue, vacío o "all" todo.
func (f Filter) matchStatus(value, activeValue, archivedValue string) bool {
	switch f.Status {
	case StatusActive:
		return value == activeValue
	case StatusArchived:
		return value == archivedValue
	default:
		return true
	}
}

// matchDate compara como texto: las fechas ISO ordenan igual que cronológicamente. Ambos extremos incluidos.
func (f Filter) matchDate(date string) bool {
	return (f.StartDate == "" || date >= f.StartDate) && (f.EndDate == "" || date <= f.EndDate)
}

// isISODate exige AAAA-MM-DD con fecha de calendario real.
func isISODate(s string) bool {
	_, err := time.Parse(time.DateOnly, s)
	return err == nil
}

func newPrinter() *message.Printer {
	return message.NewPrinter(language.Spanish)
}

func salesDataset(f Filter, p *message.Printer) Dataset {
	d := Dataset{
		Type: DatasetSales,
		Name: datasetNames[DatasetSales],
		Columns: []Column{
			{"mes", "Mes"}, {"fecha", "Fecha"}, {"ventas", "Ventas"},
			{"transacciones", "Transacciones"}, {"estado", "Estado"},
		},
	}
	for _, r := range MonthlySales {
		if !f.matchDate(r.Date) || !f.matchStatus(r.Status, SalesActive, SalesArchived) {
			continue
		}
		d.Rows = append(d.Rows, map[string]string{
			"id":            strconv.Itoa(r.ID),
			"mes":           r.Month,
			"fecha":         r.Date,
			"ventas":        p.Sprintf("$%d", r.Sales),
			"transacciones": strconv.Itoa(r.Transactions),
			"estado":        r.Status,
		})
	}
	return d
}

func inventoryDataset(products []entity.Product, f Filter, p *message.Printer) Dataset {
	d := Dataset{
		Type: DatasetInventory,
		Name: datasetNames[DatasetInventory],
		Columns: []Column{
			{"producto", "Producto"}, {"sku", "SKU"}, {"stock", "Stock"},
			{"precio", "Precio"}, {"estado", "Estado"},
		},
	}
	for _, pr := range products {
		if !f.matchStatus(pr.Status, entity.ProductStatusAvailable, entity.ProductStatusSoldOut) {
			continue
		}
		d.Rows = append(d.Rows, map[string]string{
			"id":       pr.ID,
			"producto": pr.Name,
			"sku":      pr.SKU,
			"stock":    strconv.Itoa(pr.Stock),
			"precio":   p.Sprintf("$%.2f", pr.Price.InexactFloat64()),
			"estado":   pr.Status,
		})
	}
	return d
}

func usersDataset(users []entity.User, f Filter) Dataset {
	d := Dataset{
		Type: DatasetUsers,
		Name: datasetNames[DatasetUsers],
		Columns: []Column{
			{"nombre", "Nombre"}, {"email", "Email"}, {"rol", "Rol"}, {"estado", "Estado"},
		},
	}
	for _, u := range users {
		if !f.matchStatus(u.Status, entity.UserStatusActive, entity.UserStatusInactive) {
			continue
		}
		d.Rows = append(d.Rows, map[string]string{
			"id":     u.ID,
			"nombre": u.Name,
			"email":  u.Email,
			"rol":    u.Role,
			"estado": u.Status,
		})
	}
	return d
}
