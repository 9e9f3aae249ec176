package email

import (
	"bytes"
	"context"
	"fmt"
	"net/smtp"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"

	"github.com/jhoicas/portal-admin/internal/application/ports"
)

var _ ports.Mailer = (*SMTPMailer)(nil)

// SMTPSettings datos de conexión extraídos del connection string.
type SMTPSettings struct {
	Host     string
	Port     int
	Username string
	Password string
}

// Addr host:port.
func (s SMTPSettings) Addr() string {
	return s.Host + ":" + strconv.Itoa(s.Port)
}

// ParseConnectionString interpreta "host=smtp.x.com;port=587;username=u;password=p".
// Las claves no distinguen mayúsculas; port es opcional (587).
func ParseConnectionString(cs string) (SMTPSettings, error) {
	settings := SMTPSettings{Port: 587}
	for _, part := range strings.Split(cs, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		key, value, ok := strings.Cut(part, "=")
		if !ok {
			return SMTPSettings{}, fmt.Errorf("connection string: segmento sin '=': %q", part)
		}
		switch strings.ToLower(strings.TrimSpace(key)) {
		case "host", "endpoint":
			settings.Host = strings.TrimSpace(value)
		case "port":
			p, err := strconv.Atoi(strings.TrimSpace(value))
			if err != nil || p <= 0 {
				return SMTPSettings{}, fmt.Errorf("connection string: puerto inválido %q", value)
			}
			settings.Port = p
		case "username", "user":
			settings.Username = value
		case "password", "accesskey":
			settings.Password = value
		}
	}
	if settings.Host == "" {
		return SMTPSettings{}, fmt.Errorf("connection string: falta host")
	}
	return settings, nil
}

// SMTPMailer entrega correos con jordan-wright/email.
type SMTPMailer struct {
	settings SMTPSettings
	send     func(addr string, a smtp.Auth, e *email.Email) error
}

// NewSMTPMailer construye el mailer con los datos dados.
func NewSMTPMailer(settings SMTPSettings) *SMTPMailer {
	return &SMTPMailer{
		settings: settings,
		send:     func(addr string, a smtp.Auth, e *email.Email) error { return e.Send(addr, a) },
	}
}

// NewSMTPMailerFromConnectionString implementa ports.MailerFactory.
func NewSMTPMailerFromConnectionString(cs string) (ports.Mailer, error) {
	settings, err := ParseConnectionString(cs)
	if err != nil {
		return nil, err
	}
	return NewSMTPMailer(settings), nil
}

// Deliver arma el mensaje (texto, HTML y adjuntos) y lo envía.
func (m *SMTPMailer) Deliver(ctx context.Context, msg ports.OutgoingMail) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	e := email.NewEmail()
	e.From = msg.From
	e.To = msg.To
	e.Subject = msg.Subject
	e.Text = []byte(msg.Text)
	if msg.HTML != "" {
		e.HTML = []byte(msg.HTML)
	}
	for _, a := range msg.Attachments {
		if _, err := e.Attach(bytes.NewReader(a.Content), a.Name, a.ContentType); err != nil {
			return "", fmt.Errorf("mailer: adjuntar %s: %w", a.Name, err)
		}
	}

	id := uuid.NewString()
	e.Headers.Set("Message-Id", "<"+id+"@"+m.settings.Host+">")

	var auth smtp.Auth
	if m.settings.Username != "" {
		auth = smtp.PlainAuth("", m.settings.Username, m.settings.Password, m.settings.Host)
	}
	if err := m.send(m.settings.Addr(), auth, e); err != nil {
		return "", fmt.Errorf("mailer: enviar: %w", err)
	}
	return id, nil
}
