package notification

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/ports"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/pkg/logger"
)

// Mensajes de la función de envío.
const (
	MsgMissingParams = "Faltan parámetros requeridos: to, subject, body"
	MsgMissingConfig = "Configuración de Communication Services no encontrada"
	MsgSent          = "Correo enviado exitosamente"
	MsgSendFailed    = "Error al enviar el correo"
	MsgSenderDenied  = "Remitente no permitido: solo se envía desde la dirección configurada"
	MsgUnauthorized  = "No autorizado"
)

// Dispatcher caso de uso de la función de envío de correo.
// La configuración se valida en cada llamada: si falta, solo falla esa llamada.
type Dispatcher struct {
	connectionString string
	senderAddress    string
	newMailer        ports.MailerFactory
	log              *logger.Logger
}

// NewDispatcher construye el caso de uso.
func NewDispatcher(connectionString, senderAddress string, newMailer ports.MailerFactory, log *logger.Logger) *Dispatcher {
	if log == nil {
		log = logger.Nop()
	}
	return &Dispatcher{
		connectionString: connectionString,
		senderAddress:    senderAddress,
		newMailer:        newMailer,
		log:              log.Component("send-email"),
	}
}

// Send valida y entrega el correo.
// Errores: domain.ErrInvalidInput (400), domain.ErrMisconfigured (500), otro error = fallo de entrega (500).
func (d *Dispatcher) Send(ctx context.Context, req dto.SendEmailRequest) (dto.SendEmailResponse, error) {
	to := cleanRecipients(req.To)
	if len(to) == 0 || strings.TrimSpace(req.Subject) == "" || strings.TrimSpace(req.Body) == "" {
		return dto.SendEmailResponse{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgMissingParams)
	}
	attachments, err := decodeAttachments(req.Attachments)
	if err != nil {
		return dto.SendEmailResponse{}, err
	}
	if d.connectionString == "" || d.senderAddress == "" {
		return dto.SendEmailResponse{}, fmt.Errorf("%w: %s", domain.ErrMisconfigured, MsgMissingConfig)
	}
	mailer, err := d.newMailer(d.connectionString)
	if err != nil {
		return dto.SendEmailResponse{}, errors.Join(domain.ErrMisconfigured, err)
	}

	// Solo se envía desde la dirección configurada; from vacío o igual a ella.
	from := d.senderAddress
	if f := strings.TrimSpace(req.From); f != "" && !strings.EqualFold(f, d.senderAddress) {
		d.log.Warn().Str("from", f).Msg("remitente rechazado")
		return dto.SendEmailResponse{}, fmt.Errorf("%w: %s", domain.ErrInvalidInput, MsgSenderDenied)
	}
	d.log.Info().Strs("to", to).Str("subject", req.Subject).Int("attachments", len(attachments)).Msg("enviando correo")
	id, err := mailer.Deliver(ctx, ports.OutgoingMail{
		From:        from,
		To:          to,
		Subject:     req.Subject,
		Text:        req.Body,
		HTML:        "<html><body><p>" + req.Body + "</p></body></html>",
		Attachments: attachments,
	})
	if err != nil {
		d.log.Error().Err(err).Strs("to", to).Msg("error al enviar correo")
		return dto.SendEmailResponse{}, err
	}
	d.log.Info().Str("message_id", id).Msg("correo enviado")
	return dto.SendEmailResponse{Success: true, Message: MsgSent, MessageID: id}, nil
}

func cleanRecipients(in dto.Recipients) []string {
	out := make([]string, 0, len(in))
	for _, r := range in {
		if r = strings.TrimSpace(r); r != "" {
			out = append(out, r)
		}
	}
	return out
}

func decodeAttachments(in []dto.EmailAttachment) ([]ports.MailAttachment, error) {
	out := make([]ports.MailAttachment, 0, len(in))
	for _, a := range in {
		content, err := base64.StdEncoding.DecodeString(a.Content)
		if err != nil {
			return nil, fmt.Errorf("%w: adjunto %q no es base64 válido", domain.ErrInvalidInput, a.Name)
		}
		ct := a.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		out = append(out, ports.MailAttachment{Name: a.Name, ContentType: ct, Content: content})
	}
	return out, nil
}
