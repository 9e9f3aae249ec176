package dto

import "time"

// DashboardResponse KPIs de la empresa activa.
type DashboardResponse struct {
	CompanyID      string                `json:"company_id"`
	ActiveUsers    int                   `json:"active_users"`
	TotalUsers     int                   `json:"total_users"`
	TotalProducts  int                   `json:"total_products"`
	LowStock       int                   `json:"low_stock"`
	StockByStatus  map[string]int        `json:"stock_by_status"`
	MonthlySales   []MonthlySalesPoint   `json:"monthly_sales"`
	RecentActivity []ActivityLogResponse `json:"recent_activity"`
}

// MonthlySalesPoint punto de la serie de ventas.
type MonthlySalesPoint struct {
	Month string  `json:"month"`
	Sales float64 `json:"sales"`
}

// ActivityLogResponse entrada del registro de actividad.
type ActivityLogResponse struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CompanyID   string    `json:"company_id"`
	UserID      string    `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
}
