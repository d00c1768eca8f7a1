package middleware

import "github.com/gofiber/fiber/v2"

type Middleware interface {
	Middleware() fiber.Handler
}

type Transport struct {
	PanicRecoveryMiddleware Middleware
	MetricsMiddleware       Middleware
	SignatureMiddleware     Middleware
}
