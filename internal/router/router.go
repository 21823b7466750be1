package router

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"

	"github.com/anonto42/hooly/backend/internal/fanout"
	"github.com/anonto42/hooly/backend/internal/handlers"
	"github.com/anonto42/hooly/backend/internal/listing"
	"github.com/anonto42/hooly/backend/internal/middleware"
	"github.com/anonto42/hooly/backend/internal/models"
	"github.com/anonto42/hooly/backend/internal/push"
	"github.com/anonto42/hooly/backend/internal/queue"
	"github.com/anonto42/hooly/backend/internal/repositories"
	"github.com/anonto42/hooly/backend/pkg/config"
)

// Dependencies are the connections and collaborators the routes are built from.
type Dependencies struct {
	Config    *config.Config
	Logger    *slog.Logger
	Postgres  *gorm.DB
	Mongo     *mongo.Database
	Redis     *redis.Client
	Sink      fanout.Sink
	Messenger push.Messenger // nil disables push
}

// Migrate creates or updates the PostgreSQL schema.
func Migrate(pgdb *gorm.DB) error {
	return pgdb.AutoMigrate(
		&models.MemberProfile{},
		&models.User{},
		&models.MemberFollowing{},
		&models.Category{},
		&models.Hashtag{},
		&models.Event{},
		&models.EventAttachment{},
		&models.EventCoHost{},
		&models.EventMember{},
		&models.Comment{},
		&models.Like{},
		&models.SyncRecord{},
		&models.Notification{},
	)
}

// SetupRoutes configures all application routes and injects dependencies.
// The returned func drains background work and must run after the server stops.
func SetupRoutes(e *echo.Echo, deps Dependencies) (func(), error) {
	log := deps.Logger
	cfg := deps.Config

	if err := Migrate(deps.Postgres); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	log.Info("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"message": "hooly"})
	})

	// --- Initialize Repositories ---
	userRepo := repositories.NewPostgresUserRepository(deps.Postgres)
	eventRepo := repositories.NewPostgresEventRepository(deps.Postgres)
	postRepo := repositories.NewMongoPostRepository(deps.Mongo)
	commentRepo := repositories.NewPostgresCommentRepository(deps.Postgres)
	likeRepo := repositories.NewPostgresLikeRepository(deps.Postgres)
	followRepo := repositories.NewPostgresFollowRepository(deps.Postgres)
	categoryRepo := repositories.NewPostgresCategoryRepository(deps.Postgres)
	syncRepo := repositories.NewPostgresSyncRepository(deps.Postgres)
	notificationRepo := repositories.NewPostgresNotificationRepository(deps.Postgres)
	sessionRepo := repositories.NewRedisSessionRepository(deps.Redis)

	// --- Fan-out engine ---
	targets := fanout.Fetchers{
		models.MediaEvent: repositories.NewEventTargets(eventRepo),
		models.MediaPost:  repositories.NewPostTargets(postRepo),
	}
	notifier := queue.NewNotifyQueue(
		push.NewFirebaseNotifier(notificationRepo, deps.Messenger, log),
		cfg.QueueWorkers,
		cfg.QueueBuffer,
		log,
	)
	engine := fanout.NewEngine(
		fanout.NewResolver(targets, commentRepo, likeRepo, followRepo, cfg.SyncFollowers),
		fanout.NewIssuer(syncRepo),
		fanout.NewDispatcher(sessionRepo, deps.Sink),
		userRepo,
		notifier,
		cfg.FanoutConcurrency,
		log,
	)
	log.Info("Fan-out engine configured.", "sync_followers", cfg.SyncFollowers, "concurrency", cfg.FanoutConcurrency)

	// --- Protected routes (require JWT authentication) ---
	api := e.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(cfg.JWTSecret))
	log.Info("JWT authentication middleware applied to /api/v1 group.")

	// Event routes
	listingService := listing.NewService(eventRepo, cfg.EventsPerPage, cfg.Location)
	eventHandler := handlers.NewEventHandler(eventRepo, categoryRepo, userRepo, listingService, engine, log)
	eventHandler.RegisterEventRoutes(api)
	log.Info("Event routes configured.")

	// Post routes
	postHandler := handlers.NewPostHandler(postRepo, userRepo, engine, cfg.EventsPerPage, log)
	postHandler.RegisterPostRoutes(api)
	log.Info("Post routes configured.")

	// Like routes
	likeHandler := handlers.NewLikeHandler(likeRepo, userRepo, targets, engine, cfg.LikesPerPage, log)
	likeHandler.RegisterLikeRoutes(api)
	log.Info("Like routes configured.")

	// Comment routes
	commentHandler := handlers.NewCommentHandler(commentRepo, userRepo, targets, engine, log)
	commentHandler.RegisterCommentRoutes(api)
	log.Info("Comment routes configured.")

	// Session routes
	sessionHandler := handlers.NewSessionHandler(sessionRepo)
	sessionHandler.RegisterSessionRoutes(api)
	log.Info("Session routes configured.")

	// Notification routes
	notificationHandler := handlers.NewNotificationHandler(notificationRepo, userRepo, cfg.NotificationsPerPage, cfg.Location)
	notificationHandler.RegisterNotificationRoutes(api)
	log.Info("Notification routes configured.")

	log.Info("All routes configured.")
	return notifier.Close, nil
}
