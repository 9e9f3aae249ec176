package entity

// Tipos de reporte.
const (
	ReportTypeSales     = "Ventas"
	ReportTypeInventory = "Inventario"
	ReportTypeUsers     = "Usuarios"
)

// Report descriptor estático de un reporte disponible para una empresa.
// No contiene filas: los datos se materializan en el módulo de reportes.
type Report struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CompanyID   string `json:"companyId"`
}
