package server

import (
	"fmt"

	"github.com/askit4care/careline/pkg/config"
	handlers "github.com/askit4care/careline/pkg/handlers/http"
	"github.com/askit4care/careline/pkg/middleware"
	"github.com/askit4care/careline/pkg/server/router"
	"github.com/sirupsen/logrus"
)

type (
	WebhookServerDI struct {
		MiddlewareTransport middleware.Transport
		HandlerTransport    handlers.HandlerTransport
		Config              *config.Config
		Logger              *logrus.Logger
	}
	WebhookServer struct {
		*BaseServer
		middlewareTransport middleware.Transport
		handlerTransport    handlers.HandlerTransport
	}
)

func NewWebhookServer(di WebhookServerDI) *WebhookServer {
	return &WebhookServer{
		BaseServer:          NewBaseServer(di.Config, di.Logger),
		middlewareTransport: di.MiddlewareTransport,
		handlerTransport:    di.HandlerTransport,
	}
}

func (s *WebhookServer) Run() error {
	s.WithRouters(router.NewWebhookRouter(&s.middlewareTransport, s.handlerTransport))
	s.setupHealthCheck()
	s.setupMetricsEndpoint()

	addr := fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port)
	s.logger.WithField("addr", addr).Info("starting webhook server")
	return s.router.Listen(addr)
}

func (s *WebhookServer) Shutdown() error {
	return s.router.Shutdown()
}
