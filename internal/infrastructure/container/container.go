package container

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/wellgym/wellgym-backend/internal/cache"
	"github.com/wellgym/wellgym-backend/internal/config"
	httpdelivery "github.com/wellgym/wellgym-backend/internal/delivery/http"
	"github.com/wellgym/wellgym-backend/internal/delivery/http/handler"
	"github.com/wellgym/wellgym-backend/internal/delivery/http/middleware"
	"github.com/wellgym/wellgym-backend/internal/infrastructure/database"
	"github.com/wellgym/wellgym-backend/internal/infrastructure/logging"
	"github.com/wellgym/wellgym-backend/internal/infrastructure/server"
	"github.com/wellgym/wellgym-backend/internal/infrastructure/storage"
	"github.com/wellgym/wellgym-backend/internal/realtime"
	"github.com/wellgym/wellgym-backend/internal/repository/postgres"
	"github.com/wellgym/wellgym-backend/internal/usecase/auth"
	"github.com/wellgym/wellgym-backend/internal/usecase/catalog"
	"github.com/wellgym/wellgym-backend/internal/usecase/community"
	"github.com/wellgym/wellgym-backend/internal/usecase/profile"
	"github.com/wellgym/wellgym-backend/internal/usecase/workout"
)

// Container wires all application dependencies.
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Logger *zap.Logger
	Server *server.Server
}

func NewContainer(cfg *config.Config) (*Container, error) {
	logger, err := logging.NewLogger(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	objectStore, err := storage.NewS3Store(context.Background(), storage.Config{
		Endpoint:  cfg.Storage.Endpoint,
		Region:    cfg.Storage.Region,
		Bucket:    cfg.Storage.Bucket,
		PublicURL: cfg.Storage.PublicURL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize object storage: %w", err)
	}

	// Stores
	profileStore := postgres.NewProfileStore(db)
	workoutStore := postgres.NewWorkoutStore(db)
	exerciseStore := postgres.NewExerciseStore(db)
	messageStore := postgres.NewMessageStore(db)
	sessionCache := cache.NewRedisStore(redisClient, cfg.Redis.SessionTTL, logger)

	// Use cases
	authUseCase := auth.NewUseCase(cfg.Auth.JWTSecret)
	profileUseCase := profile.NewUseCase(authUseCase, profileStore, sessionCache, logger)
	catalogUseCase := catalog.NewUseCase(profileUseCase, exerciseStore)
	workoutUseCase := workout.NewUseCase(authUseCase, profileUseCase, workoutStore, logger)

	hub := realtime.NewHub(logger)
	communityUseCase := community.NewUseCase(authUseCase, profileUseCase, messageStore, hub)

	// Delivery
	if err := handler.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	profileHandler := handler.NewProfileHandler(profileUseCase, objectStore)
	catalogHandler := handler.NewCatalogHandler(catalogUseCase)
	workoutHandler := handler.NewWorkoutHandler(workoutUseCase)
	communityHandler := handler.NewCommunityHandler(communityUseCase, hub, logger)
	authMiddleware := middleware.NewAuthMiddleware(authUseCase)

	router := httpdelivery.NewRouter(
		profileHandler,
		catalogHandler,
		workoutHandler,
		communityHandler,
		authMiddleware,
	)

	srv := server.NewServer(&cfg.Server, router.Setup(), logger)

	return &Container{
		Config: cfg,
		DB:     db,
		Redis:  redisClient,
		Logger: logger,
		Server: srv,
	}, nil
}

// Close releases all connections.
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Warn("error closing redis", zap.Error(err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}
	if c.Logger != nil {
		_ = c.Logger.Sync()
	}
	return nil
}
