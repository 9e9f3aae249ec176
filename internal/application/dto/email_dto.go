package dto

import (
	"encoding/json"
	"fmt"
)

// Recipients acepta en JSON tanto "a@b.com" como ["a@b.com","c@d.com"].
type Recipients []string

// UnmarshalJSON admite string o arreglo de strings.
func (r *Recipients) UnmarshalJSON(data []byte) error {
	var one string
	if err := json.Unmarshal(data, &one); err == nil {
		if one == "" {
			*r = nil
		} else {
			*r = Recipients{one}
		}
		return nil
	}
	var many []string
	if err := json.Unmarshal(data, &many); err != nil {
		return fmt.Errorf("to debe ser string o arreglo de strings")
	}
	*r = Recipients(many)
	return nil
}

// MarshalJSON escribe un solo destinatario como string, igual que lo envía el portal.
func (r Recipients) MarshalJSON() ([]byte, error) {
	if len(r) == 1 {
		return json.Marshal(r[0])
	}
	return json.Marshal([]string(r))
}

// EmailAttachment adjunto con contenido en base64.
type EmailAttachment struct {
	Name        string `json:"name" validate:"required"`
	ContentType string `json:"contentType" validate:"required"`
	Content     string `json:"content" validate:"required,base64"`
}

// SendEmailRequest contrato de la función de envío de correo.
type SendEmailRequest struct {
	To          Recipients        `json:"to"`
	Subject     string            `json:"subject"`
	Body        string            `json:"body"`
	From        string            `json:"from,omitempty"`
	Attachments []EmailAttachment `json:"attachments,omitempty" validate:"omitempty,dive"`
}

// SendEmailResponse respuesta de la función (éxito o fallo con mensaje).
type SendEmailResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	MessageID string `json:"messageId,omitempty"`
	Error     string `json:"error,omitempty"`
}
