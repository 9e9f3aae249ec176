// Package reports arma los datasets de reportes de una empresa y sus exportaciones
// (PDF, Excel, correo y envíos programados). Cada exportación queda en el registro de actividad.
package reports

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/pkg/logger"
)

// Formatos de exportación.
const (
	FormatPDF   = "PDF"
	FormatExcel = "Excel"
)

// ReportMailer envía el reporte por correo.
type ReportMailer interface {
	SendReport(ctx context.Context, email, reportName string, summary notification.ReportSummary, pdf []byte) dto.SendEmailResponse
}

// Actor quién pide la exportación (sale del token).
type Actor = store.Actor

// Export archivo generado.
type Export struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Service casos de uso de reportes.
type Service struct {
	store  *store.Store
	pdf    PDFRenderer
	sheet  SheetRenderer
	mailer ReportMailer
	now    func() time.Time
	log    *logger.Logger
}

// NewService construye el servicio.
func NewService(st *store.Store, pdf PDFRenderer, sheet SheetRenderer, mailer ReportMailer, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		store:  st,
		pdf:    pdf,
		sheet:  sheet,
		mailer: mailer,
		now:    func() time.Time { return time.Now().UTC() },
		log:    log.Component("reports"),
	}
}

// Catalog descriptores de reporte de la empresa.
func (s *Service) Catalog(companyID string) []entity.Report {
	return s.store.Reports(companyID)
}

// Dataset devuelve las filas filtradas del tipo pedido para la empresa.
func (s *Service) Dataset(companyID, typ string, f Filter) (Dataset, error) {
	if _, err := DatasetName(typ); err != nil {
		return Dataset{}, err
	}
	if err := f.Validate(); err != nil {
		return Dataset{}, err
	}
	p := newPrinter()
	switch typ {
	case DatasetSales:
		return salesDataset(f, p), nil
	case DatasetInventory:
		return inventoryDataset(s.store.Products(companyID), f, p), nil
	default:
		return usersDataset(s.store.Users(companyID), f), nil
	}
}

// ExportPDF genera el PDF y registra la exportación.
func (s *Service) ExportPDF(ctx context.Context, actor Actor, typ string, f Filter) (Export, error) {
	d, t, err := s.table(actor.CompanyID, typ, f)
	if err != nil {
		return Export{}, err
	}
	content, err := s.pdf.RenderPDF(ctx, t)
	if err != nil {
		return Export{}, fmt.Errorf("exportar PDF: %w", err)
	}
	s.logActivity(actor, fmt.Sprintf("Se exportó reporte \"%s\" en %s", d.Name, FormatPDF))
	return Export{Filename: fileName(d.Name, "pdf"), ContentType: "application/pdf", Content: content}, nil
}

// ExportExcel genera el libro SpreadsheetML y registra la exportación.
func (s *Service) ExportExcel(ctx context.Context, actor Actor, typ string, f Filter) (Export, error) {
	d, t, err := s.table(actor.CompanyID, typ, f)
	if err != nil {
		return Export{}, err
	}
	content, err := s.sheet.RenderSheet(ctx, t)
	if err != nil {
		return Export{}, fmt.Errorf("exportar Excel: %w", err)
	}
	s.logActivity(actor, fmt.Sprintf("Se exportó reporte \"%s\" en %s", d.Name, FormatExcel))
	return Export{Filename: fileName(d.Name, "xls"), ContentType: "application/vnd.ms-excel", Content: content}, nil
}

// EmailReport envía el PDF y un resumen al destinatario. Solo registra actividad si el envío tuvo éxito.
func (s *Service) EmailReport(ctx context.Context, actor Actor, typ string, f Filter, recipient string) (dto.SendEmailResponse, error) {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return dto.SendEmailResponse{}, fmt.Errorf("%w: ingresa un correo electrónico", domain.ErrInvalidInput)
	}
	d, t, err := s.table(actor.CompanyID, typ, f)
	if err != nil {
		return dto.SendEmailResponse{}, err
	}
	pdf, err := s.pdf.RenderPDF(ctx, t)
	if err != nil {
		return dto.SendEmailResponse{}, fmt.Errorf("exportar PDF: %w", err)
	}

	resp := s.mailer.SendReport(ctx, recipient, d.Name, s.summary(d, t), pdf)
	if !resp.Success {
		s.log.Warn().Str("recipient", recipient).Str("error", resp.Error).Msg("reporte no enviado")
		return resp, nil
	}
	s.logActivity(actor, fmt.Sprintf("Se envió reporte \"%s\" por correo a %s", d.Name, recipient))
	return resp, nil
}

// Schedule registra el envío programado: una notificación simulada y una entrada de actividad.
func (s *Service) Schedule(actor Actor, typ, recipient string) error {
	recipient = strings.TrimSpace(recipient)
	if recipient == "" {
		return fmt.Errorf("%w: ingrese un correo electrónico", domain.ErrInvalidInput)
	}
	name, err := DatasetName(typ)
	if err != nil {
		return err
	}
	s.store.SendSMSAs(actor, recipient, fmt.Sprintf("Reporte \"%s\" programado", name))
	s.logActivity(actor, fmt.Sprintf("Se programó envío de reporte \"%s\" a %s", name, recipient))
	return nil
}

// History reportes generados por la empresa, más recientes primero.
func (s *Service) History(companyID string) []entity.ActivityLog {
	var out []entity.ActivityLog
	for _, l := range s.store.Activity(companyID, 0) {
		if l.Type == entity.ActivityReportGenerated {
			out = append(out, l)
		}
	}
	return out
}

func (s *Service) table(companyID, typ string, f Filter) (Dataset, Table, error) {
	d, err := s.Dataset(companyID, typ, f)
	if err != nil {
		return Dataset{}, Table{}, err
	}
	company, _ := s.store.FindCompany(companyID)
	t := Table{
		Title:       d.Name,
		CompanyName: company.Name,
		GeneratedAt: s.now(),
		Columns:     d.Headers(),
		Rows:        d.Matrix(),
		Summary:     []SummaryLine{{Label: "Total de Registros", Value: newPrinter().Sprintf("%d", len(d.Rows))}},
	}
	return d, t, nil
}

func (s *Service) summary(d Dataset, t Table) notification.ReportSummary {
	fecha := t.GeneratedAt.Format("02/01/2006 15:04")
	total := strconv.Itoa(len(d.Rows))
	return notification.ReportSummary{
		Title: "Reporte: " + d.Name,
		Items: []notification.SummaryItem{
			{Label: "Nombre del Reporte", Value: d.Name},
			{Label: "Fecha", Value: fecha},
			{Label: "Total de Registros", Value: total},
			{Label: "Empresa", Value: t.CompanyName},
			{Label: "Resumen", Value: fmt.Sprintf("Este reporte contiene %s registros generados el %s", total, fecha)},
		},
	}
}

func (s *Service) logActivity(actor Actor, description string) {
	s.store.AddActivityLog(entity.ActivityLog{
		Type:        entity.ActivityReportGenerated,
		Description: description,
		CompanyID:   actor.CompanyID,
		UserID:      actor.UserID,
	})
}

func fileName(name, ext string) string {
	return strings.Join(strings.Fields(name), "_") + "." + ext
}
