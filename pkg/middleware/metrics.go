package middleware

import (
	"strconv"
	"time"

	"github.com/askit4care/careline/pkg/infra/prometheus"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type metricsMiddleware struct {
	logger *logrus.Logger
}

func NewMetricsMiddleware(logger *logrus.Logger) Middleware {
	return &metricsMiddleware{logger: logger}
}

func (m *metricsMiddleware) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		startTime := time.Now()

		err := c.Next()

		status := strconv.Itoa(c.Response().StatusCode())
		elapsedMs := float64(time.Since(startTime).Milliseconds())

		prometheus.WebhookRequestTotal.WithLabelValues(c.Method(), status).Inc()
		prometheus.WebhookRequestLatency.WithLabelValues(status).Observe(elapsedMs)

		return err
	}
}
