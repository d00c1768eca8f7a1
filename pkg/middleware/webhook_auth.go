package middleware

import (
	"net/url"

	"github.com/askit4care/careline/pkg/infra/twilio"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const signatureHeader = "X-Twilio-Signature"

// webhookAuthMiddleware rejects requests whose X-Twilio-Signature does
// not match the configured auth token.
type webhookAuthMiddleware struct {
	logger    *logrus.Logger
	authToken string
	enabled   bool
}

func NewWebhookAuthMiddleware(logger *logrus.Logger, authToken string, enabled bool) Middleware {
	return &webhookAuthMiddleware{
		logger:    logger,
		authToken: authToken,
		enabled:   enabled,
	}
}

func (m *webhookAuthMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !m.enabled {
			return c.Next()
		}

		signature := c.Get(signatureHeader)
		if signature == "" {
			m.logger.WithField("path", c.Path()).Warn("missing webhook signature")
			return c.Status(fiber.StatusForbidden).SendString("invalid signature")
		}

		params := url.Values{}
		c.Request().PostArgs().VisitAll(func(key, value []byte) {
			params.Add(string(key), string(value))
		})

		requestURL := c.BaseURL() + c.OriginalURL()
		if !twilio.ValidateSignature(m.authToken, requestURL, params, signature) {
			m.logger.WithField("path", c.Path()).Warn("webhook signature mismatch")
			return c.Status(fiber.StatusForbidden).SendString("invalid signature")
		}

		return c.Next()
	}
}
