package notification

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"html/template"
	"strings"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/ports"
)

// ReportSummary encabezado y pares etiqueta/valor del resumen de un reporte.
type ReportSummary struct {
	Title string
	Items []SummaryItem
}

// SummaryItem una fila del resumen.
type SummaryItem struct {
	Label string
	Value string
}

// Notifier arma los correos del portal y los envía por la función remota.
type Notifier struct {
	fn ports.EmailFunction
}

// NewNotifier construye el notificador.
func NewNotifier(fn ports.EmailFunction) *Notifier {
	return &Notifier{fn: fn}
}

// Send pasa el request tal cual.
func (n *Notifier) Send(ctx context.Context, req dto.SendEmailRequest) dto.SendEmailResponse {
	return n.fn.SendEmail(ctx, req)
}

// SendWelcome correo de bienvenida a un usuario nuevo.
func (n *Notifier) SendWelcome(ctx context.Context, email, name string) dto.SendEmailResponse {
	return n.fn.SendEmail(ctx, dto.SendEmailRequest{
		To:      dto.Recipients{email},
		Subject: "Bienvenido al Sistema Administrativo",
		Body: fmt.Sprintf("Hola %s,\n\n¡Bienvenido al sistema administrativo! Tu cuenta ha sido creada exitosamente.\n\n"+
			"Saludos,\nEl equipo de administración", name),
	})
}

// SendLowStockAlert aviso de stock bajo de un producto.
func (n *Notifier) SendLowStockAlert(ctx context.Context, email, productName string, stock int) dto.SendEmailResponse {
	return n.fn.SendEmail(ctx, dto.SendEmailRequest{
		To:      dto.Recipients{email},
		Subject: "Alerta: Stock Bajo - " + productName,
		Body: fmt.Sprintf("Alerta de inventario:\n\nEl producto \"%s\" tiene un stock bajo.\nCantidad actual: %d unidades.\n\n"+
			"Por favor, considera reabastecer este producto.", productName, stock),
	})
}

var reportTmpl = template.Must(template.New("report").Parse(`
<h2 style="color: #4F46E5; margin-bottom: 10px;">📊 {{.Title}}</h2>
<p style="color: #6b7280; margin-bottom: 20px;">Estimado usuario,</p>
<p style="color: #374151; margin-bottom: 25px;">A continuación encontrarás el resumen del reporte que solicitaste.</p>
<div style="background-color: #f9fafb; padding: 20px; border-radius: 8px; margin: 20px 0;">
  <h3 style="color: #1f2937; margin-top: 0; margin-bottom: 15px; font-size: 16px;">Información del Reporte</h3>
  <table style="width: 100%; border-collapse: collapse; background-color: white;">
{{- range .Items}}
    <tr>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; font-weight: 600; color: #4b5563;">{{.Label}}</td>
      <td style="padding: 12px; border-bottom: 1px solid #e5e7eb; color: #1f2937;">{{.Value}}</td>
    </tr>
{{- end}}
  </table>
</div>
{{- if .HasPDF}}
<div style="background-color: #EEF2FF; padding: 15px; border-radius: 6px; margin: 20px 0;">
  <p style="margin: 0; color: #4F46E5; font-weight: 500;">📎 El reporte completo está disponible en el archivo PDF adjunto</p>
</div>
{{- end}}
<p style="color: #6b7280; margin-top: 25px;">Saludos,<br><strong>El equipo de administración</strong></p>
`))

// SendReport envía el resumen en HTML y, si hay PDF, lo adjunta como <nombre_del_reporte>.pdf.
func (n *Notifier) SendReport(ctx context.Context, email, reportName string, summary ReportSummary, pdf []byte) dto.SendEmailResponse {
	var body bytes.Buffer
	data := struct {
		ReportSummary
		HasPDF bool
	}{summary, len(pdf) > 0}
	if err := reportTmpl.Execute(&body, data); err != nil {
		return dto.SendEmailResponse{Success: false, Message: MsgSendFailed, Error: err.Error()}
	}

	req := dto.SendEmailRequest{
		To:      dto.Recipients{email},
		Subject: "📊 " + summary.Title,
		Body:    body.String(),
	}
	if len(pdf) > 0 {
		req.Attachments = []dto.EmailAttachment{{
			Name:        AttachmentName(reportName),
			ContentType: "application/pdf",
			Content:     base64.StdEncoding.EncodeToString(pdf),
		}}
	}
	return n.fn.SendEmail(ctx, req)
}

// AttachmentName reemplaza cada bloque de espacios por "_" y agrega ".pdf".
func AttachmentName(reportName string) string {
	return strings.Join(strings.Fields(reportName), "_") + ".pdf"
}
