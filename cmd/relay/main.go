package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/askit4care/careline/pkg/app/conversation"
	appSession "github.com/askit4care/careline/pkg/app/session"
	"github.com/askit4care/careline/pkg/config"
	handlers "github.com/askit4care/careline/pkg/handlers/http"
	"github.com/askit4care/careline/pkg/infra/assistant"
	"github.com/askit4care/careline/pkg/infra/cache"
	"github.com/askit4care/careline/pkg/infra/database"
	"github.com/askit4care/careline/pkg/infra/httpx"
	infraLogger "github.com/askit4care/careline/pkg/infra/logger"
	"github.com/askit4care/careline/pkg/infra/repository"
	"github.com/askit4care/careline/pkg/middleware"
	"github.com/askit4care/careline/pkg/server"
	"github.com/joho/godotenv"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	logger := infraLogger.NewLogger()

	// Load configuration
	if err := config.Load("./config"); err != nil {
		logger.Fatalf("Failed to load config: %v", err)
	}
	cfg := config.GetConfig()

	// Initialize database
	db, err := database.NewDB(logger, &database.Config{
		Host:     cfg.Database.Host,
		Port:     cfg.Database.Port,
		User:     cfg.Database.User,
		Password: cfg.Database.Password,
		DBName:   cfg.Database.DBName,
		SSLMode:  cfg.Database.SSLMode,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	// Initialize session cache
	cacheInstance, err := cache.NewCache(cache.Config{
		Host:     cfg.Redis.Host,
		Port:     cfg.Redis.Port,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
		TLS:      cfg.Redis.TLS,
		TTL:      cfg.Redis.TTL,
	})
	if err != nil {
		logger.Fatalf("Failed to initialize cache: %v", err)
	}
	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	if err := cacheInstance.Ping(pingCtx); err != nil {
		logger.WithError(err).Warn("redis unreachable at startup, session lookups fall back to the database")
	}
	cancel()

	// repository
	sessionRepository := repository.NewSessionRepository(db.DB)

	// service
	sessionStore := appSession.NewStore(sessionRepository, cacheInstance, logger)
	sessionPolicy := appSession.NewPolicy(cfg.Session.ContinueDays, cfg.Session.ExpireDays)

	assistantClient := assistant.NewClient(
		assistant.Config{
			APIKey:          cfg.OpenAI.APIKey,
			AssistantID:     cfg.OpenAI.AssistantID,
			BaseURL:         cfg.OpenAI.BaseURL,
			PollInterval:    cfg.OpenAI.PollInterval,
			MaxPollAttempts: cfg.OpenAI.MaxPollAttempts,
		},
		httpx.NewClient(httpx.DefaultTimeout),
		httpx.NewCircuitBreaker("openai", 30*time.Second, 5),
		logger,
	)

	processor := conversation.NewProcessor(
		sessionStore,
		sessionPolicy,
		assistantClient,
		conversation.Config{StrictSend: cfg.OpenAI.StrictSend},
		logger,
	)

	// middleware
	middlewareTransport := middleware.Transport{
		PanicRecoveryMiddleware: middleware.NewPanicRecoverMiddleware(logger),
		MetricsMiddleware:       middleware.NewMetricsMiddleware(logger),
		SignatureMiddleware: middleware.NewWebhookAuthMiddleware(
			logger, cfg.Twilio.AuthToken, cfg.Twilio.ValidateSignature,
		),
	}

	// Handler Transport
	handlerTransport := handlers.HandlerTransport{
		WebhookHandler:    handlers.NewWebhookHandler(logger, processor, cfg.Messages),
		GetVersionHandler: handlers.NewGetVersionHandler(logger),
	}

	srv := server.NewWebhookServer(server.WebhookServerDI{
		MiddlewareTransport: middlewareTransport,
		HandlerTransport:    handlerTransport,
		Config:              cfg,
		Logger:              logger,
	})

	go func() {
		if err := srv.Run(); err != nil {
			logger.Fatalf("Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	fmt.Println("shutting down server...")
	if err := srv.Shutdown(); err != nil {
		fmt.Println("error shutting down server:", err)
		os.Exit(1)
	}
	fmt.Println("server gracefully stopped")
}
