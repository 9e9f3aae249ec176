package ports

import (
	"context"

	"github.com/jhoicas/portal-admin/internal/application/dto"
)

// EmailFunction puerto hacia la función remota de envío de correo.
// Nunca devuelve error: los fallos llegan como Success=false con Message/Error.
type EmailFunction interface {
	SendEmail(ctx context.Context, req dto.SendEmailRequest) dto.SendEmailResponse
}

// OutgoingMail mensaje ya validado que la función entrega por SMTP.
type OutgoingMail struct {
	From        string
	To          []string
	Subject     string
	Text        string
	HTML        string
	Attachments []MailAttachment
}

// MailAttachment adjunto decodificado.
type MailAttachment struct {
	Name        string
	ContentType string
	Content     []byte
}

// Mailer entrega un correo y devuelve el identificador del mensaje.
type Mailer interface {
	Deliver(ctx context.Context, msg OutgoingMail) (string, error)
}

// MailerFactory construye un Mailer desde el connection string del proveedor.
type MailerFactory func(connectionString string) (Mailer, error)
