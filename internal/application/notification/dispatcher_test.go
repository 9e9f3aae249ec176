package notification_test

import (
	"context"
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/application/ports"
	"github.com/jhoicas/portal-admin/internal/domain"
)

type fakeMailer struct {
	got ports.OutgoingMail
	err error
}

func (m *fakeMailer) Deliver(_ context.Context, msg ports.OutgoingMail) (string, error) {
	m.got = msg
	if m.err != nil {
		return "", m.err
	}
	return "msg-1", nil
}

func factoryFor(m *fakeMailer) ports.MailerFactory {
	return func(string) (ports.Mailer, error) { return m, nil }
}

func validRequest() dto.SendEmailRequest {
	return dto.SendEmailRequest{To: dto.Recipients{"ana@empresa.com"}, Subject: "Hola", Body: "Texto"}
}

func TestDispatcher_Success(t *testing.T) {
	m := &fakeMailer{}
	d := notification.NewDispatcher("host=smtp", "portal@empresa.com", factoryFor(m), nil)
	req := validRequest()
	req.Attachments = []dto.EmailAttachment{{Name: "a.pdf", ContentType: "application/pdf", Content: base64.StdEncoding.EncodeToString([]byte("%PDF"))}}

	resp, err := d.Send(context.Background(), req)

	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "msg-1", resp.MessageID)
	assert.Equal(t, notification.MsgSent, resp.Message)
	assert.Equal(t, "portal@empresa.com", m.got.From)
	assert.Equal(t, "<html><body><p>Texto</p></body></html>", m.got.HTML)
	require.Len(t, m.got.Attachments, 1)
	assert.Equal(t, []byte("%PDF"), m.got.Attachments[0].Content)
}

func TestDispatcher_FromSoloRemitenteConfigurado(t *testing.T) {
	m := &fakeMailer{}
	d := notification.NewDispatcher("host=smtp", "portal@empresa.com", factoryFor(m), nil)
	req := validRequest()
	req.From = " Portal@Empresa.com "

	_, err := d.Send(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "portal@empresa.com", m.got.From)

	m = &fakeMailer{}
	d = notification.NewDispatcher("host=smtp", "portal@empresa.com", factoryFor(m), nil)
	req.From = "ceo@banco.com"
	_, err = d.Send(context.Background(), req)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.ErrorContains(t, err, notification.MsgSenderDenied)
	assert.Empty(t, m.got.To, "no se entrega nada")
}

func TestDispatcher_Errors(t *testing.T) {
	tests := []struct {
		name   string
		cs     string
		sender string
		req    func() dto.SendEmailRequest
		mailer *fakeMailer
		is     error
	}{
		{
			name: "sin destinatario", cs: "host=x", sender: "a@b.com",
			req:    func() dto.SendEmailRequest { r := validRequest(); r.To = nil; return r },
			mailer: &fakeMailer{}, is: domain.ErrInvalidInput,
		},
		{
			name: "sin asunto", cs: "host=x", sender: "a@b.com",
			req:    func() dto.SendEmailRequest { r := validRequest(); r.Subject = " "; return r },
			mailer: &fakeMailer{}, is: domain.ErrInvalidInput,
		},
		{
			name: "adjunto inválido", cs: "host=x", sender: "a@b.com",
			req: func() dto.SendEmailRequest {
				r := validRequest()
				r.Attachments = []dto.EmailAttachment{{Name: "x", Content: "%%%"}}
				return r
			},
			mailer: &fakeMailer{}, is: domain.ErrInvalidInput,
		},
		{
			name: "sin connection string", sender: "a@b.com",
			req: validRequest, mailer: &fakeMailer{}, is: domain.ErrMisconfigured,
		},
		{
			name: "sin remitente", cs: "host=x",
			req: validRequest, mailer: &fakeMailer{}, is: domain.ErrMisconfigured,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := notification.NewDispatcher(tt.cs, tt.sender, factoryFor(tt.mailer), nil)
			_, err := d.Send(context.Background(), tt.req())
			assert.ErrorIs(t, err, tt.is)
		})
	}
}

func TestDispatcher_DeliveryFailure(t *testing.T) {
	d := notification.NewDispatcher("host=x", "a@b.com", factoryFor(&fakeMailer{err: errors.New("550")}), nil)

	_, err := d.Send(context.Background(), validRequest())

	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrMisconfigured)
}

func TestDispatcher_FactoryErrorIsMisconfiguration(t *testing.T) {
	bad := func(string) (ports.Mailer, error) { return nil, errors.New("falta host") }
	d := notification.NewDispatcher("port=25", "a@b.com", bad, nil)

	_, err := d.Send(context.Background(), validRequest())

	assert.ErrorIs(t, err, domain.ErrMisconfigured)
}
