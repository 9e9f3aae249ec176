package reports_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/application/reports"
	"github.com/jhoicas/portal-admin/internal/application/store"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

type fakeRenderer struct {
	last reports.Table
	err  error
}

func (f *fakeRenderer) RenderPDF(_ context.Context, t reports.Table) ([]byte, error) {
	f.last = t
	return []byte("%PDF"), f.err
}

func (f *fakeRenderer) RenderSheet(_ context.Context, t reports.Table) ([]byte, error) {
	f.last = t
	return []byte("<Workbook/>"), f.err
}

type fakeMailer struct {
	resp    dto.SendEmailResponse
	summary notification.ReportSummary
	pdf     []byte
	calls   int
}

func (f *fakeMailer) SendReport(_ context.Context, _, _ string, summary notification.ReportSummary, pdf []byte) dto.SendEmailResponse {
	f.calls++
	f.summary, f.pdf = summary, pdf
	return f.resp
}

var actor = reports.Actor{UserID: "u1", CompanyID: "c1"}

func newService(t *testing.T, mailer *fakeMailer) (*reports.Service, *store.Store, *fakeRenderer) {
	t.Helper()
	st := store.New(store.Seed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)))
	r := &fakeRenderer{}
	if mailer == nil {
		mailer = &fakeMailer{}
	}
	return reports.NewService(st, r, r, mailer, nil), st, r
}

func TestDataset_SalesFilters(t *testing.T) {
	svc, _, _ := newService(t, nil)

	tests := []struct {
		name   string
		filter reports.Filter
		want   int
	}{
		{"sin filtros", reports.Filter{}, 8},
		{"todos", reports.Filter{Status: reports.StatusAll}, 8},
		{"activos", reports.Filter{Status: reports.StatusActive}, 7},
		{"archivados", reports.Filter{Status: reports.StatusArchived}, 1},
		{"rango inclusivo", reports.Filter{StartDate: "2024-02-28", EndDate: "2024-04-30"}, 3},
		{"solo desde", reports.Filter{StartDate: "2024-07-01"}, 2},
		{"rango vacío", reports.Filter{StartDate: "2025-01-01"}, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := svc.Dataset("c1", reports.DatasetSales, tt.filter)
			require.NoError(t, err)
			assert.Len(t, d.Rows, tt.want)
		})
	}
}

func TestDataset_SalesFormatting(t *testing.T) {
	svc, _, _ := newService(t, nil)

	d, err := svc.Dataset("c1", reports.DatasetSales, reports.Filter{EndDate: "2024-01-31"})

	require.NoError(t, err)
	require.Len(t, d.Rows, 1)
	assert.Equal(t, "$45.000", d.Rows[0]["ventas"])
	assert.Equal(t, []string{"Mes", "Fecha", "Ventas", "Transacciones", "Estado"}, d.Headers())
	assert.Equal(t, []string{"Enero", "2024-01-31", "$45.000", "120", "Activo"}, d.Matrix()[0])
}

func TestDataset_InventoryAndUsersScopedToCompany(t *testing.T) {
	svc, st, _ := newService(t, nil)

	inv, err := svc.Dataset("c1", reports.DatasetInventory, reports.Filter{})
	require.NoError(t, err)
	assert.Len(t, inv.Rows, len(st.Products("c1")))

	archived, err := svc.Dataset("c1", reports.DatasetInventory, reports.Filter{Status: reports.StatusArchived})
	require.NoError(t, err)
	for _, r := range archived.Rows {
		assert.Equal(t, entity.ProductStatusSoldOut, r["estado"])
	}

	users, err := svc.Dataset("c1", reports.DatasetUsers, reports.Filter{Status: reports.StatusActive})
	require.NoError(t, err)
	for _, r := range users.Rows {
		assert.Equal(t, entity.UserStatusActive, r["estado"])
	}
}

func TestDataset_InvalidInput(t *testing.T) {
	svc, _, _ := newService(t, nil)

	_, err := svc.Dataset("c1", "facturas", reports.Filter{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Dataset("c1", reports.DatasetSales, reports.Filter{Status: "borrados"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	for _, d := range []string{"01/02/2024", "2024-13-45", "2024-02-30", "2024-2-01"} {
		_, err = svc.Dataset("c1", reports.DatasetSales, reports.Filter{StartDate: d})
		assert.ErrorIs(t, err, domain.ErrInvalidInput, d)
	}
	_, err = svc.Dataset("c1", reports.DatasetSales, reports.Filter{StartDate: "2024-02-29"})
	assert.NoError(t, err, "año bisiesto")
}

func TestExportPDF_LogsActivity(t *testing.T) {
	svc, st, r := newService(t, nil)

	exp, err := svc.ExportPDF(context.Background(), actor, reports.DatasetSales, reports.Filter{})

	require.NoError(t, err)
	assert.Equal(t, "Ventas_Mensual.pdf", exp.Filename)
	assert.Equal(t, "Empresa A", r.last.CompanyName)
	last := st.Activity("c1", 1)[0]
	assert.Equal(t, entity.ActivityReportGenerated, last.Type)
	assert.Equal(t, "Se exportó reporte \"Ventas Mensual\" en PDF", last.Description)
	assert.Equal(t, "u1", last.UserID)
	history := svc.History("c1")
	require.NotEmpty(t, history)
	assert.Equal(t, last.ID, history[0].ID)
	for _, l := range history {
		assert.Equal(t, entity.ActivityReportGenerated, l.Type)
	}
}

func TestExportExcel_RendererErrorDoesNotLog(t *testing.T) {
	svc, st, r := newService(t, nil)
	r.err = errors.New("disco lleno")
	before := len(st.Snapshot().ActivityLog)

	_, err := svc.ExportExcel(context.Background(), actor, reports.DatasetUsers, reports.Filter{})

	assert.Error(t, err)
	assert.Len(t, st.Snapshot().ActivityLog, before)
}

func TestEmailReport(t *testing.T) {
	t.Run("éxito registra actividad", func(t *testing.T) {
		m := &fakeMailer{resp: dto.SendEmailResponse{Success: true, MessageID: "x"}}
		svc, st, _ := newService(t, m)

		resp, err := svc.EmailReport(context.Background(), actor, reports.DatasetInventory, reports.Filter{}, "jefe@empresa.com")

		require.NoError(t, err)
		assert.True(t, resp.Success)
		assert.Equal(t, []byte("%PDF"), m.pdf)
		assert.Equal(t, "Reporte: Movimientos de Inventario", m.summary.Title)
		require.Len(t, m.summary.Items, 5)
		assert.Equal(t, "Se envió reporte \"Movimientos de Inventario\" por correo a jefe@empresa.com",
			st.Activity("c1", 1)[0].Description)
	})

	t.Run("fallo no registra", func(t *testing.T) {
		m := &fakeMailer{resp: dto.SendEmailResponse{Success: false, Message: "Error al enviar el correo"}}
		svc, st, _ := newService(t, m)
		before := len(st.Snapshot().ActivityLog)

		resp, err := svc.EmailReport(context.Background(), actor, reports.DatasetSales, reports.Filter{}, "jefe@empresa.com")

		require.NoError(t, err)
		assert.False(t, resp.Success)
		assert.Len(t, st.Snapshot().ActivityLog, before)
	})

	t.Run("sin destinatario", func(t *testing.T) {
		m := &fakeMailer{}
		svc, _, _ := newService(t, m)

		_, err := svc.EmailReport(context.Background(), actor, reports.DatasetSales, reports.Filter{}, " ")

		assert.ErrorIs(t, err, domain.ErrInvalidInput)
		assert.Zero(t, m.calls)
	})
}

func TestSchedule(t *testing.T) {
	svc, st, _ := newService(t, nil)
	_, ok := st.Login("admin@empresa.com", "")
	require.True(t, ok)

	require.NoError(t, svc.Schedule(actor, reports.DatasetUsers, "jefe@empresa.com"))

	logs := st.Activity("c1", 2)
	assert.Equal(t, "Se programó envío de reporte \"Usuarios Creados\" a jefe@empresa.com", logs[0].Description)
	assert.Equal(t, "SMS enviado a jefe@empresa.com: \"Reporte \"Usuarios Creados\" pro...\"", logs[1].Description)
}
