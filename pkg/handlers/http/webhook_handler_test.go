package http

import (
	"errors"
	"io"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/askit4care/careline/pkg/app/conversation"
	processorMocks "github.com/askit4care/careline/pkg/app/conversation/mocks"
	"github.com/askit4care/careline/pkg/config"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newWebhookApp(processor conversation.Processor) *fiber.App {
	handler := NewWebhookHandler(logrus.New(), processor, config.DefaultMessages())
	app := fiber.New()
	app.Post("/webhook/whatsapp", handler.Handle)
	return app
}

func postForm(app *fiber.App, form url.Values) (int, string, string, error) {
	req := httptest.NewRequest("POST", "/webhook/whatsapp", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	resp, err := app.Test(req, -1)
	if err != nil {
		return 0, "", "", err
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, "", "", err
	}
	return resp.StatusCode, string(body), resp.Header.Get("Content-Type"), nil
}

func TestWebhookHandler_MissingFields(t *testing.T) {
	processor := new(processorMocks.Processor)
	app := newWebhookApp(processor)

	form := url.Values{}
	form.Set("From", "whatsapp:+5215551234")

	status, body, _, err := postForm(app, form)
	require.NoError(t, err)
	assert.Equal(t, 400, status)
	assert.Equal(t, "Faltan los campos 'From' o 'Body' en la solicitud.", body)
	processor.AssertNotCalled(t, "Process", mock.Anything, mock.Anything, mock.Anything)
}

func TestWebhookHandler_ReplyText(t *testing.T) {
	processor := new(processorMocks.Processor)
	processor.On("Process", mock.Anything, "whatsapp:+5215551234", "Hola").
		Return(conversation.ReplyResult("¡Hola! ¿En qué puedo ayudarte?"), nil)
	app := newWebhookApp(processor)

	form := url.Values{}
	form.Set("From", "whatsapp:+5215551234")
	form.Set("Body", "Hola")

	status, body, contentType, err := postForm(app, form)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, contentType, "application/xml")
	assert.Contains(t, body, "<Body>¡Hola! ¿En qué puedo ayudarte?</Body>")
}

func TestWebhookHandler_AskUser(t *testing.T) {
	processor := new(processorMocks.Processor)
	processor.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(conversation.AskUserResult(), nil)
	app := newWebhookApp(processor)

	form := url.Values{}
	form.Set("From", "whatsapp:+5215551234")
	form.Set("Body", "hola de nuevo")

	status, body, _, err := postForm(app, form)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "Hace más de 3 días que no nos contactas.")
	assert.Contains(t, body, "Responde con 'CONTINUAR' o 'NUEVA CONVERSACIÓN'.")
}

func TestWebhookHandler_RequiresAction(t *testing.T) {
	processor := new(processorMocks.Processor)
	processor.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(conversation.RequiresActionResult(), nil)
	app := newWebhookApp(processor)

	form := url.Values{}
	form.Set("From", "whatsapp:+5215551234")
	form.Set("Body", "hola")

	status, body, _, err := postForm(app, form)
	require.NoError(t, err)
	assert.Equal(t, 200, status)
	assert.Contains(t, body, "El asistente necesita más información para continuar.")
}

func TestWebhookHandler_ProcessingFailure(t *testing.T) {
	processor := new(processorMocks.Processor)
	processor.On("Process", mock.Anything, mock.Anything, mock.Anything).
		Return(conversation.Result{}, errors.New("assistant run failed"))
	app := newWebhookApp(processor)

	form := url.Values{}
	form.Set("From", "whatsapp:+5215551234")
	form.Set("Body", "hola")

	status, body, _, err := postForm(app, form)
	require.NoError(t, err)
	assert.Equal(t, 500, status)
	assert.Equal(t, "No hubo respuesta del asistente.", body)
}
