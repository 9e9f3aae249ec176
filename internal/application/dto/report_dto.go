package dto

// ReportFilter filtros comunes a las vistas y exportaciones de reportes.
type ReportFilter struct {
	StartDate string `query:"start_date" json:"start_date" validate:"omitempty,datetime=2006-01-02"`
	EndDate   string `query:"end_date" json:"end_date" validate:"omitempty,datetime=2006-01-02"`
	Status    string `query:"status" json:"status" validate:"omitempty,oneof=all active archived"`
}

// ReportResponse metadatos de un reporte del catálogo.
type ReportResponse struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Type        string `json:"type"`
	Description string `json:"description"`
	CompanyID   string `json:"company_id"`
}

// ReportDataResponse filas ya filtradas de un dataset.
type ReportDataResponse struct {
	Type    string              `json:"type"`
	Columns []string            `json:"columns"`
	Rows    []map[string]string `json:"rows"`
	Total   int                 `json:"total"`
}

// EmailReportRequest envía el reporte en PDF al correo indicado.
type EmailReportRequest struct {
	Email string `json:"email" validate:"required,email"`
	ReportFilter
}

// ScheduleReportRequest programación de un reporte (solo notificación simulada).
type ScheduleReportRequest struct {
	Recipient string `json:"recipient" validate:"required,email"`
	Frequency string `json:"frequency" validate:"omitempty,oneof=daily weekly monthly"`
}

// MessageResponse respuesta genérica con mensaje.
type MessageResponse struct {
	Message string `json:"message"`
}
