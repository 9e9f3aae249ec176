package http

import (
	"crypto/subtle"
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/notification"
	"github.com/jhoicas/portal-admin/internal/domain"
	"github.com/jhoicas/portal-admin/pkg/jwt"
)

// HeaderFunctionKey cabecera con la clave compartida de la función de envío (también ?code=).
const HeaderFunctionKey = "x-functions-key"

// FunctionKeyAuth exige la clave compartida o un Bearer JWT válido.
// Con key vacía solo se acepta el JWT.
func FunctionKeyAuth(key, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if key != "" {
			got := c.Get(HeaderFunctionKey)
			if got == "" {
				got = c.Query("code")
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
				return c.Next()
			}
		}
		scheme, token, ok := strings.Cut(c.Get(fiber.HeaderAuthorization), " ")
		if ok && strings.EqualFold(scheme, "Bearer") {
			if _, err := jwt.Parse(jwtSecret, strings.TrimSpace(token)); err == nil {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusUnauthorized).JSON(dto.SendEmailResponse{Message: notification.MsgUnauthorized})
	}
}

// EmailHandler expone la función de envío de correo con el contrato que consume el portal.
type EmailHandler struct {
	dispatcher *notification.Dispatcher
}

// NewEmailHandler construye el handler.
func NewEmailHandler(d *notification.Dispatcher) *EmailHandler {
	return &EmailHandler{dispatcher: d}
}

// Send godoc
// @Summary      Enviar correo
// @Tags         email
// @Accept       json
// @Produce      json
// @Security     FunctionKey
// @Security     Bearer
// @Param        body  body  dto.SendEmailRequest  true  "to, subject, body, from, attachments"
// @Success      200   {object}  dto.SendEmailResponse
// @Failure      400   {object}  dto.SendEmailResponse
// @Failure      401   {object}  dto.SendEmailResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.SendEmailResponse
// @Router       /api/send-email [post]
func (h *EmailHandler) Send(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SendEmailResponse{Message: notification.MsgMissingParams})
	}
	if err := validateStruct(in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.SendEmailResponse{Message: err.Error()})
	}
	out, err := h.dispatcher.Send(c.UserContext(), in)
	switch {
	case err == nil:
		return c.JSON(out)
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.SendEmailResponse{Message: detail(err, domain.ErrInvalidInput)})
	case errors.Is(err, domain.ErrMisconfigured):
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SendEmailResponse{
			Message: notification.MsgSendFailed,
			Error:   notification.MsgMissingConfig,
		})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.SendEmailResponse{
			Message: notification.MsgSendFailed,
			Error:   err.Error(),
		})
	}
}
