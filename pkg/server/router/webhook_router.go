package router

import (
	handlers "github.com/askit4care/careline/pkg/handlers/http"
	"github.com/askit4care/careline/pkg/middleware"
	"github.com/gofiber/fiber/v2"
)

type webhookRouter struct {
	middlewareTransport *middleware.Transport
	handlerTransport    handlers.HandlerTransport
}

func NewWebhookRouter(
	middlewareTransport *middleware.Transport,
	handlerTransport handlers.HandlerTransport,
) ServerRouter {
	return &webhookRouter{
		middlewareTransport: middlewareTransport,
		handlerTransport:    handlerTransport,
	}
}

func (r *webhookRouter) BuildRoutes(router *fiber.App) error {
	router.Use(r.middlewareTransport.PanicRecoveryMiddleware.Middleware())
	router.Use(r.middlewareTransport.MetricsMiddleware.Middleware())

	router.Get("/version", r.handlerTransport.GetVersionHandler.Handle)

	webhook := router.Group("/webhook")
	{
		webhook.Use(r.middlewareTransport.SignatureMiddleware.Middleware())
		webhook.Post("/whatsapp", r.handlerTransport.WebhookHandler.Handle)
	}
	return nil
}
