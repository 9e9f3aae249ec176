package dto

import "time"

// ChatMessageResponse mensaje del widget de soporte.
type ChatMessageResponse struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Sender         string    `json:"sender"`
	ConversationID string    `json:"conversation_id,omitempty"`
	Timestamp      time.Time `json:"timestamp"`
}

// SendChatMessageRequest mensaje del usuario.
type SendChatMessageRequest struct {
	Text string `json:"text" validate:"required,min=1,max=2000"`
}

// CreateConversationRequest nueva conversación.
type CreateConversationRequest struct {
	Title string `json:"title" validate:"omitempty,max=120"`
}

// ConversationResponse conversación con su último mensaje.
type ConversationResponse struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
	Messages    int       `json:"messages"`
}
