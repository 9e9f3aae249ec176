package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/application/analytics"
	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/store"
)

// DashboardHandler resumen de la empresa activa y registro de actividad.
type DashboardHandler struct {
	uc    *analytics.DashboardUseCase
	store *store.Store
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *analytics.DashboardUseCase, st *store.Store) *DashboardHandler {
	return &DashboardHandler{uc: uc, store: st}
}

// GetSummary godoc
// @Summary      Resumen del dashboard
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Actividad reciente (default 10)"
// @Success      200  {object}  dto.DashboardResponse
// @Router       /api/dashboard [get]
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetSummary(GetCompanyID(c), c.QueryInt("limit", 0))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(out)
}

// Activity godoc
// @Summary      Registro de actividad de la empresa
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Param        limit  query  int  false  "Máximo de entradas (0 = todas)"
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/activity [get]
func (h *DashboardHandler) Activity(c *fiber.Ctx) error {
	entries := h.store.Activity(GetCompanyID(c), c.QueryInt("limit", 0))
	out := make([]dto.ActivityLogResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, analytics.ToActivityLogResponse(e))
	}
	return c.JSON(out)
}
