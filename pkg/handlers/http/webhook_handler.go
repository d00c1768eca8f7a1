package http

import (
	"github.com/askit4care/careline/pkg/app/conversation"
	"github.com/askit4care/careline/pkg/config"
	"github.com/askit4care/careline/pkg/infra/twilio"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type webhookHandler struct {
	logger    *logrus.Logger
	processor conversation.Processor
	messages  config.MessagesConfig
}

func NewWebhookHandler(
	logger *logrus.Logger,
	processor conversation.Processor,
	messages config.MessagesConfig,
) Handler {
	return &webhookHandler{
		logger:    logger,
		processor: processor,
		messages:  messages,
	}
}

// Handle receives the Twilio WhatsApp webhook, runs the conversation
// flow and answers with TwiML.
func (h *webhookHandler) Handle(c *fiber.Ctx) error {
	from := c.FormValue("From")
	body := c.FormValue("Body")

	if from == "" || body == "" {
		h.logger.Error("missing 'From' or 'Body' in the request")
		return c.Status(fiber.StatusBadRequest).SendString(h.messages.MissingFields)
	}

	h.logger.WithFields(logrus.Fields{
		"from": from,
		"path": c.Path(),
	}).Info("message received")

	result, err := h.processor.Process(c.Context(), from, body)
	if err != nil {
		h.logger.WithError(err).WithField("from", from).Error("failed to process message")
		return c.Status(fiber.StatusInternalServerError).SendString(h.messages.NoResponse)
	}

	switch result.Kind {
	case conversation.KindAskUser:
		h.logger.WithField("from", from).Info("asked user whether to continue or start over")
		return h.sendTwiML(c, twilio.NewMessagingResponse().
			Message(h.messages.AskUser, h.messages.AskUserHint))
	case conversation.KindRequiresAction:
		h.logger.WithField("from", from).Info("requested more information from user")
		return h.sendTwiML(c, twilio.NewMessagingResponse().
			Message(h.messages.RequiresAction))
	default:
		return h.sendTwiML(c, twilio.NewMessagingResponse().
			Message(result.Reply))
	}
}

func (h *webhookHandler) sendTwiML(c *fiber.Ctx, response *twilio.MessagingResponse) error {
	payload, err := response.Render()
	if err != nil {
		h.logger.WithError(err).Error("failed to render reply")
		return c.Status(fiber.StatusInternalServerError).SendString(h.messages.NoResponse)
	}
	c.Set(fiber.HeaderContentType, "application/xml")
	return c.Status(fiber.StatusOK).SendString(payload)
}
