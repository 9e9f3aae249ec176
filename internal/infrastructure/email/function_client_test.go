package email

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/portal-admin/internal/application/dto"
)

func TestFunctionClient_Success(t *testing.T) {
	var got map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "clave-123", r.Header.Get("x-functions-key"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_ = json.NewEncoder(w).Encode(dto.SendEmailResponse{Success: true, Message: "Correo enviado exitosamente", MessageID: "abc"})
	}))
	defer srv.Close()

	resp := NewFunctionClient(srv.URL, "clave-123").SendEmail(context.Background(), dto.SendEmailRequest{
		To: dto.Recipients{"ana@empresa.com"}, Subject: "Hola", Body: "Prueba",
	})

	assert.True(t, resp.Success)
	assert.Equal(t, "abc", resp.MessageID)
	assert.Equal(t, "ana@empresa.com", got["to"])
	assert.NotContains(t, got, "attachments")
}

func TestFunctionClient_Non2xxUsesBodyMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(dto.SendEmailResponse{Message: "Faltan parámetros requeridos: to, subject, body"})
	}))
	defer srv.Close()

	resp := NewFunctionClient(srv.URL, "").SendEmail(context.Background(), dto.SendEmailRequest{})

	assert.False(t, resp.Success)
	assert.Equal(t, "Faltan parámetros requeridos: to, subject, body", resp.Error)
}

func TestFunctionClient_Non2xxWithoutBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	resp := NewFunctionClient(srv.URL, "").SendEmail(context.Background(), dto.SendEmailRequest{})

	assert.False(t, resp.Success)
	assert.Equal(t, msgSendFailed, resp.Error)
}

func TestFunctionClient_TransportErrorAndMissingURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	url := srv.URL
	srv.Close()

	resp := NewFunctionClient(url, "").SendEmail(context.Background(), dto.SendEmailRequest{})
	assert.False(t, resp.Success)
	assert.NotEmpty(t, resp.Error)

	resp = NewFunctionClient("", "").SendEmail(context.Background(), dto.SendEmailRequest{})
	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "EMAIL_FUNCTION_URL")
}

func TestFunctionClient_CancelacionPorContexto(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) { <-release }))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	resp := NewFunctionClient(srv.URL, "").SendEmail(ctx, dto.SendEmailRequest{})

	assert.False(t, resp.Success)
	assert.Contains(t, resp.Error, "context deadline exceeded")
	assert.Zero(t, NewFunctionClient(srv.URL, "").httpClient.Timeout)
}
