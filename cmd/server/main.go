package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/push"
	"github.com/anonto42/hooly/backend/internal/queue"
	"github.com/anonto42/hooly/backend/internal/router"
	"github.com/anonto42/hooly/backend/internal/validators"
	"github.com/anonto42/hooly/backend/pkg/config"
	"github.com/anonto42/hooly/backend/pkg/firebase"
	"github.com/anonto42/hooly/backend/pkg/redisx"
	"github.com/anonto42/hooly/backend/pkg/telemetry"
)

func main() {
	// Load configuration
	cfg := config.Load()
	logger := cfg.NewLogger()
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing := telemetry.InitTracing(ctx, cfg.OTLPEndpoint, "hooly-api", cfg.Env)
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = shutdownTracing(sctx)
	}()

	// Initialize database connections
	db, err := config.InitDB(cfg)
	if err != nil {
		fatal(logger, "Failed to initialize databases", err)
	}
	defer db.CloseDB()

	rdb, err := redisx.Open(ctx, cfg.RedisAddr)
	if err != nil {
		fatal(logger, "Failed to connect to Redis", err)
	}
	defer rdb.Close()

	// Delivery queue
	publisher := queue.NewRedisPublisher(rdb)
	var sink fanout.Sink
	switch cfg.QueueDriver {
	case "kafka":
		kafkaSink := queue.NewKafkaSink(cfg.KafkaBrokers, cfg.KafkaDeliveryTopic)
		defer kafkaSink.Close()
		sink = kafkaSink

		consumer := queue.NewKafkaConsumer(cfg.KafkaBrokers, cfg.KafkaGroupID, cfg.KafkaDeliveryTopic, publisher, logger)
		go func() {
			if err := consumer.Run(ctx); err != nil {
				logger.Error("delivery consumer stopped", "error", err)
			}
		}()
	default:
		channelSink := queue.NewChannelSink(publisher, cfg.QueueWorkers, cfg.QueueBuffer, logger)
		defer channelSink.Close()
		sink = channelSink
	}
	logger.Info("Delivery queue configured.", "driver", cfg.QueueDriver)

	// Initialize Firebase; without credentials notifications are stored but not pushed
	var messenger push.Messenger
	if cfg.FirebaseCredentialsPath != "" {
		firebaseApp, err := firebase.InitFirebase(ctx, cfg.FirebaseCredentialsPath)
		if err != nil {
			fatal(logger, "Failed to initialize Firebase", err)
		}
		messenger = firebaseApp.MessagingClient
	} else {
		logger.Warn("FIREBASE_CREDENTIALS_PATH not set, push notifications disabled.")
	}

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.Validator = validators.NewValidator()

	// Setup global middleware
	config.SetupMiddleware(e, logger)

	// Setup routes and dependencies
	drain, err := router.SetupRoutes(e, router.Dependencies{
		Config:    cfg,
		Logger:    logger,
		Postgres:  db.Postgres,
		Mongo:     db.MongoDB,
		Redis:     rdb,
		Sink:      sink,
		Messenger: messenger,
	})
	if err != nil {
		fatal(logger, "Failed to set up routes", err)
	}
	defer drain()

	// Start server
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			fatal(logger, "Server stopped", err)
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server.")
	sctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(sctx); err != nil {
		logger.Error("Server shutdown failed", "error", err)
	}
}

func fatal(logger *slog.Logger, msg string, err error) {
	logger.Error(msg, "error", err)
	os.Exit(1)
}
