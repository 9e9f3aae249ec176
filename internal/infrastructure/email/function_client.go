package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/jhoicas/portal-admin/internal/application/dto"
	"github.com/jhoicas/portal-admin/internal/application/ports"
)

// Verificar en tiempo de compilación que FunctionClient implementa EmailFunction.
var _ ports.EmailFunction = (*FunctionClient)(nil)

const (
	msgSendFailed  = "Error al enviar el correo"
	maxResponseLen = 64 * 1024
)

// FunctionClient llama a la función de envío de correo por HTTP. Un intento por llamada, sin reintentos;
// el único límite de tiempo es el del ctx del llamador.
type FunctionClient struct {
	url        string
	key        string
	httpClient *http.Client
}

// NewFunctionClient construye el cliente. Con url vacía las llamadas fallan con mensaje descriptivo.
// key se envía en x-functions-key cuando no está vacía.
func NewFunctionClient(url, key string) *FunctionClient {
	return &FunctionClient{
		url:        url,
		key:        key,
		httpClient: &http.Client{},
	}
}

// SendEmail hace POST del request y traduce la respuesta a éxito o fallo.
func (c *FunctionClient) SendEmail(ctx context.Context, req dto.SendEmailRequest) dto.SendEmailResponse {
	if c.url == "" {
		return failure("EMAIL_FUNCTION_URL no configurado")
	}
	body, err := json.Marshal(req)
	if err != nil {
		return failure(fmt.Sprintf("serializar request: %v", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return failure(fmt.Sprintf("crear HTTP request: %v", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.key != "" {
		httpReq.Header.Set("x-functions-key", c.key)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return failure(err.Error())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseLen))
	if err != nil {
		return failure(fmt.Sprintf("leer respuesta: %v", err))
	}

	var out dto.SendEmailResponse
	decodeErr := json.Unmarshal(raw, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		reason := out.Message
		if decodeErr != nil || reason == "" {
			reason = msgSendFailed
		}
		return failure(reason)
	}
	if decodeErr != nil {
		return failure(fmt.Sprintf("respuesta inválida: %v", decodeErr))
	}
	return out
}

func failure(reason string) dto.SendEmailResponse {
	return dto.SendEmailResponse{Success: false, Message: msgSendFailed, Error: reason}
}
