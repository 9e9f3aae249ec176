package entity

import "time"

// Tipos de evento del registro de actividad.
const (
	ActivityUserCreated     = "user_created"
	ActivityCompanyChanged  = "company_changed"
	ActivityReportGenerated = "report_generated"
	ActivityProductUpdated  = "product_updated"
	ActivityLogin           = "login"
	ActivityLogout          = "logout"
)

// ActivityLog entrada del registro de auditoría (solo se agrega, nunca se edita).
type ActivityLog struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CompanyID   string    `json:"companyId"`
	UserID      string    `json:"userId"`
	Timestamp   time.Time `json:"timestamp"`
}
