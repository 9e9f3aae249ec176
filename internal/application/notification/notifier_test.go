package notification_test

import (
	"context"
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/notification"
)

type recordingFunction struct {
	reqs []dto.SendEmailRequest
	resp dto.SendEmailResponse
}

func (f *recordingFunction) SendEmail(_ context.Context, req dto.SendEmailRequest) dto.SendEmailResponse {
	f.reqs = append(f.reqs, req)
	return f.resp
}

func TestNotifier_Welcome(t *testing.T) {
	fn := &recordingFunction{resp: dto.SendEmailResponse{Success: true}}

	resp := notification.NewNotifier(fn).SendWelcome(context.Background(), "ana@empresa.com", "Ana")

	assert.True(t, resp.Success)
	require.Len(t, fn.reqs, 1)
	assert.Equal(t, "Bienvenido al Sistema Administrativo", fn.reqs[0].Subject)
	assert.Contains(t, fn.reqs[0].Body, "Hola Ana,")
}

func TestNotifier_LowStock(t *testing.T) {
	fn := &recordingFunction{}

	notification.NewNotifier(fn).SendLowStockAlert(context.Background(), "ana@empresa.com", "Mouse", 3)

	require.Len(t, fn.reqs, 1)
	assert.Equal(t, "Alerta: Stock Bajo - Mouse", fn.reqs[0].Subject)
	assert.Contains(t, fn.reqs[0].Body, "Cantidad actual: 3 unidades.")
}

func TestNotifier_ReportWithPDF(t *testing.T) {
	fn := &recordingFunction{}
	summary := notification.ReportSummary{
		Title: "Reporte de Ventas",
		Items: []notification.SummaryItem{{Label: "Total", Value: "<b>1.000</b>"}},
	}

	notification.NewNotifier(fn).SendReport(context.Background(), "ana@empresa.com", "Ventas  Mensuales", summary, []byte("%PDF"))

	require.Len(t, fn.reqs, 1)
	req := fn.reqs[0]
	assert.Equal(t, "📊 Reporte de Ventas", req.Subject)
	assert.Contains(t, req.Body, "&lt;b&gt;1.000&lt;/b&gt;")
	assert.Contains(t, req.Body, "PDF adjunto")
	require.Len(t, req.Attachments, 1)
	assert.Equal(t, "Ventas_Mensuales.pdf", req.Attachments[0].Name)
	assert.Equal(t, base64.StdEncoding.EncodeToString([]byte("%PDF")), req.Attachments[0].Content)
}

func TestNotifier_ReportWithoutPDF(t *testing.T) {
	fn := &recordingFunction{}

	notification.NewNotifier(fn).SendReport(context.Background(), "a@b.com", "R", notification.ReportSummary{Title: "R"}, nil)

	require.Len(t, fn.reqs, 1)
	assert.Empty(t, fn.reqs[0].Attachments)
	assert.NotContains(t, fn.reqs[0].Body, "PDF adjunto")
}
