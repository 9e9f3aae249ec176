package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/application/analytics"
	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/reports"
)

// ReportHandler catálogo, datos, exportaciones y envíos de reportes.
type ReportHandler struct {
	svc *reports.Service
}

// NewReportHandler construye el handler.
func NewReportHandler(svc *reports.Service) *ReportHandler {
	return &ReportHandler{svc: svc}
}

func toFilter(f dto.ReportFilter) reports.Filter {
	return reports.Filter{StartDate: f.StartDate, EndDate: f.EndDate, Status: f.Status}
}

// List godoc
// @Summary      Catálogo de reportes de la empresa
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ReportResponse
// @Router       /api/reports [get]
func (h *ReportHandler) List(c *fiber.Ctx) error {
	catalog := h.svc.Catalog(GetCompanyID(c))
	out := make([]dto.ReportResponse, 0, len(catalog))
	for _, r := range catalog {
		out = append(out, dto.ReportResponse{ID: r.ID, Name: r.Name, Type: r.Type, Description: r.Description, CompanyID: r.CompanyID})
	}
	return c.JSON(out)
}

// History godoc
// @Summary      Reportes generados recientemente
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ActivityLogResponse
// @Router       /api/reports/history [get]
func (h *ReportHandler) History(c *fiber.Ctx) error {
	history := h.svc.History(GetCompanyID(c))
	out := make([]dto.ActivityLogResponse, 0, len(history))
	for _, l := range history {
		out = append(out, analytics.ToActivityLogResponse(l))
	}
	return c.JSON(out)
}

// Data godoc
// @Summary      Filas de un dataset
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        type        path   string  true   "ventas | inventario | usuarios"
// @Param        start_date  query  string  false  "AAAA-MM-DD"
// @Param        end_date    query  string  false  "AAAA-MM-DD"
// @Param        status      query  string  false  "all | active | archived"
// @Success      200  {object}  dto.ReportDataResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports/{type}/data [get]
func (h *ReportHandler) Data(c *fiber.Ctx) error {
	var f dto.ReportFilter
	if ok, err := bindQuery(c, &f, nil); !ok {
		return err
	}
	d, err := h.svc.Dataset(GetCompanyID(c), c.Params("type"), toFilter(f))
	if err != nil {
		return handleError(c, err)
	}
	return c.JSON(dto.ReportDataResponse{Type: d.Type, Columns: d.Headers(), Rows: d.Rows, Total: len(d.Rows)})
}

// ExportPDF godoc
// @Summary      Exportar reporte en PDF
// @Tags         reports
// @Security     Bearer
// @Produce      application/pdf
// @Param        type  path  string  true  "ventas | inventario | usuarios"
// @Success      200
// @Router       /api/reports/{type}/export/pdf [get]
func (h *ReportHandler) ExportPDF(c *fiber.Ctx) error {
	return h.export(c, h.svc.ExportPDF)
}

// ExportExcel godoc
// @Summary      Exportar reporte en Excel (SpreadsheetML)
// @Tags         reports
// @Security     Bearer
// @Produce      application/vnd.ms-excel
// @Param        type  path  string  true  "ventas | inventario | usuarios"
// @Success      200
// @Router       /api/reports/{type}/export/excel [get]
func (h *ReportHandler) ExportExcel(c *fiber.Ctx) error {
	return h.export(c, h.svc.ExportExcel)
}

type exportFunc func(ctx context.Context, a reports.Actor, typ string, f reports.Filter) (reports.Export, error)

func (h *ReportHandler) export(c *fiber.Ctx, fn exportFunc) error {
	var f dto.ReportFilter
	if ok, err := bindQuery(c, &f, nil); !ok {
		return err
	}
	out, err := fn(c.UserContext(), actor(c), c.Params("type"), toFilter(f))
	if err != nil {
		return handleError(c, err)
	}
	c.Set(fiber.HeaderContentType, out.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", out.Filename))
	return c.Send(out.Content)
}

// Email godoc
// @Summary      Enviar reporte por correo (PDF adjunto)
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string                  true  "ventas | inventario | usuarios"
// @Param        body  body  dto.EmailReportRequest  true  "Destinatario y filtros"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      502   {object}  dto.SendEmailResponse
// @Router       /api/reports/{type}/email [post]
func (h *ReportHandler) Email(c *fiber.Ctx) error {
	var in dto.EmailReportRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.svc.EmailReport(c.UserContext(), actor(c), c.Params("type"), toFilter(in.ReportFilter), in.Email)
	if err != nil {
		return handleError(c, err)
	}
	if !out.Success {
		return c.Status(fiber.StatusBadGateway).JSON(out)
	}
	return c.JSON(out)
}

// Schedule godoc
// @Summary      Programar envío de reporte
// @Tags         reports
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        type  path  string                     true  "ventas | inventario | usuarios"
// @Param        body  body  dto.ScheduleReportRequest  true  "Destinatario"
// @Success      202   {object}  dto.MessageResponse
// @Router       /api/reports/{type}/schedule [post]
func (h *ReportHandler) Schedule(c *fiber.Ctx) error {
	var in dto.ScheduleReportRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	if err := h.svc.Schedule(actor(c), c.Params("type"), in.Recipient); err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(dto.MessageResponse{Message: "Reporte programado para " + in.Recipient})
}
