package entity

import "time"

// Emisores de mensajes de chat.
const (
	SenderUser = "user"
	SenderBot  = "bot"
)

// ChatMessage mensaje del widget de soporte.
// ConversationID vacío corresponde a la conversación de soporte por defecto.
type ChatMessage struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Sender         string    `json:"sender"`
	CompanyID      string    `json:"companyId"`
	ConversationID string    `json:"conversationId,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}
