package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/application/chat"
	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/domain/entity"
)

// defaultConversationParam alias en la URL de la conversación de soporte (su ID interno es vacío).
const defaultConversationParam = "default"

// ChatHandler widget de soporte de la empresa activa.
type ChatHandler struct {
	svc *chat.Service
}

// NewChatHandler construye el handler.
func NewChatHandler(svc *chat.Service) *ChatHandler {
	return &ChatHandler{svc: svc}
}

func conversationID(c *fiber.Ctx) string {
	id := c.Params("id")
	if id == defaultConversationParam {
		return chat.DefaultConversationID
	}
	return id
}

func publicConversationID(id string) string {
	if id == chat.DefaultConversationID {
		return defaultConversationParam
	}
	return id
}

func toChatMessageResponse(m entity.ChatMessage) dto.ChatMessageResponse {
	return dto.ChatMessageResponse{
		ID:             m.ID,
		Text:           m.Text,
		Sender:         m.Sender,
		ConversationID: publicConversationID(m.ConversationID),
		Timestamp:      m.Timestamp,
	}
}

// Conversations godoc
// @Summary      Listar conversaciones
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ConversationResponse
// @Router       /api/chat/conversations [get]
func (h *ChatHandler) Conversations(c *fiber.Ctx) error {
	convs := h.svc.Conversations(GetCompanyID(c))
	out := make([]dto.ConversationResponse, 0, len(convs))
	for _, cv := range convs {
		out = append(out, dto.ConversationResponse{
			ID:          publicConversationID(cv.ID),
			Title:       cv.Title,
			LastMessage: cv.LastMessage,
			UpdatedAt:   cv.UpdatedAt,
			Messages:    cv.Messages,
		})
	}
	return c.JSON(out)
}

// CreateConversation godoc
// @Summary      Nueva conversación
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateConversationRequest  false  "Título opcional"
// @Success      201   {object}  dto.ConversationResponse
// @Router       /api/chat/conversations [post]
func (h *ChatHandler) CreateConversation(c *fiber.Ctx) error {
	var in dto.CreateConversationRequest
	if len(c.Body()) > 0 {
		if ok, err := bindJSON(c, &in); !ok {
			return err
		}
	}
	cv := h.svc.CreateConversation(GetCompanyID(c), in.Title)
	return c.Status(fiber.StatusCreated).JSON(dto.ConversationResponse{
		ID:        cv.ID,
		Title:     cv.Title,
		UpdatedAt: cv.CreatedAt,
	})
}

// Messages godoc
// @Summary      Mensajes de una conversación
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la conversación (default = soporte)"
// @Success      200  {array}  dto.ChatMessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/chat/conversations/{id}/messages [get]
func (h *ChatHandler) Messages(c *fiber.Ctx) error {
	msgs, err := h.svc.Messages(GetCompanyID(c), conversationID(c))
	if err != nil {
		return handleError(c, err)
	}
	out := make([]dto.ChatMessageResponse, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, toChatMessageResponse(m))
	}
	return c.JSON(out)
}

// Send godoc
// @Summary      Enviar mensaje al soporte
// @Description  El bot responde de forma asíncrona tras una breve demora.
// @Tags         chat
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                      true  "ID de la conversación"
// @Param        body  body  dto.SendChatMessageRequest  true  "Texto"
// @Success      201   {object}  dto.ChatMessageResponse
// @Router       /api/chat/conversations/{id}/messages [post]
func (h *ChatHandler) Send(c *fiber.Ctx) error {
	var in dto.SendChatMessageRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	msg, err := h.svc.Send(GetCompanyID(c), conversationID(c), in.Text)
	if err != nil {
		return handleError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toChatMessageResponse(msg))
}

// DeleteConversation godoc
// @Summary      Eliminar conversación
// @Description  La conversación de soporte no se elimina: solo se vacía.
// @Tags         chat
// @Security     Bearer
// @Param        id   path  string  true  "ID de la conversación"
// @Success      204
// @Router       /api/chat/conversations/{id} [delete]
func (h *ChatHandler) DeleteConversation(c *fiber.Ctx) error {
	if _, err := h.svc.DeleteConversation(GetCompanyID(c), conversationID(c)); err != nil {
		return handleError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Clear godoc
// @Summary      Borrar todo el historial de chat de la empresa
// @Tags         chat
// @Security     Bearer
// @Success      204
// @Router       /api/chat/messages [delete]
func (h *ChatHandler) Clear(c *fiber.Ctx) error {
	h.svc.ClearCompany(GetCompanyID(c))
	return c.SendStatus(fiber.StatusNoContent)
}

// QuickReplies godoc
// @Summary      Respuestas rápidas sugeridas
// @Tags         chat
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  string
// @Router       /api/chat/quick-replies [get]
func (h *ChatHandler) QuickReplies(c *fiber.Ctx) error {
	return c.JSON(chat.QuickReplies)
}
