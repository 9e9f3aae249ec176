// Package analytics contiene los casos de uso del Dashboard de la empresa activa.
package analytics

import (
	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/reports"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

const (
	dashboardRecentActivity = 10 // entradas en el widget de actividad reciente
	dashboardSalesMonths    = 6  // meses en la gráfica de ventas
	lowStockBelow           = 5  // stock < 5 cuenta como bajo en los KPIs
)

// DashboardUseCase genera los KPIs de una empresa a partir del estado del portal.
type DashboardUseCase struct {
	store *store.Store
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(st *store.Store) *DashboardUseCase {
	return &DashboardUseCase{store: st}
}

// GetSummary construye el DashboardResponse para la empresa indicada.
// limit es el número de entradas de actividad reciente; <= 0 usa el valor por defecto.
func (uc *DashboardUseCase) GetSummary(companyID string, limit int) (*dto.DashboardResponse, error) {
	if _, ok := uc.store.FindCompany(companyID); !ok {
		return nil, domain.ErrNotFound
	}
	if limit <= 0 {
		limit = dashboardRecentActivity
	}

	users := uc.store.Users(companyID)
	products := uc.store.Products(companyID)

	out := &dto.DashboardResponse{
		CompanyID:     companyID,
		TotalUsers:    len(users),
		TotalProducts: len(products),
		StockByStatus: map[string]int{
			entity.ProductStatusAvailable: 0,
			entity.ProductStatusLowStock:  0,
			entity.ProductStatusSoldOut:   0,
		},
		MonthlySales:   monthlySales(),
		RecentActivity: []dto.ActivityLogResponse{},
	}
	for _, u := range users {
		if u.IsActive() {
			out.ActiveUsers++
		}
	}
	for _, p := range products {
		if p.Stock < lowStockBelow {
			out.LowStock++
		}
		out.StockByStatus[p.Status]++
	}
	for _, l := range uc.store.Activity(companyID, limit) {
		out.RecentActivity = append(out.RecentActivity, ToActivityLogResponse(l))
	}
	return out, nil
}

// ToActivityLogResponse mapea la entidad.
func ToActivityLogResponse(l entity.ActivityLog) dto.ActivityLogResponse {
	return dto.ActivityLogResponse{
		ID:          l.ID,
		Type:        l.Type,
		Description: l.Description,
		CompanyID:   l.CompanyID,
		UserID:      l.UserID,
		Timestamp:   l.Timestamp,
	}
}

// monthlySales primeros meses de la serie de demostración, con el mes abreviado.
func monthlySales() []dto.MonthlySalesPoint {
	out := make([]dto.MonthlySalesPoint, 0, dashboardSalesMonths)
	for _, r := range reports.MonthlySales[:dashboardSalesMonths] {
		out = append(out, dto.MonthlySalesPoint{Month: abbreviate(r.Month), Sales: float64(r.Sales)})
	}
	return out
}

func abbreviate(month string) string {
	r := []rune(month)
	if len(r) <= 3 {
		return month
	}
	return string(r[:3])
}
