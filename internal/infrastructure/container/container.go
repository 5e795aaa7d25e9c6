package container

import (
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/takeyours/takeyours-backend/internal/config"
	"github.com/takeyours/takeyours-backend/internal/delivery/http"
	"github.com/takeyours/takeyours-backend/internal/delivery/http/handler"
	"github.com/takeyours/takeyours-backend/internal/delivery/http/middleware"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/database"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/email"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/media"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/otp"
	"github.com/takeyours/takeyours-backend/internal/infrastructure/server"
	"github.com/takeyours/takeyours-backend/internal/repository/postgres"
	"github.com/takeyours/takeyours-backend/internal/usecase/admin"
	"github.com/takeyours/takeyours-backend/internal/usecase/auth"
	"github.com/takeyours/takeyours-backend/internal/usecase/match"
	"github.com/takeyours/takeyours-backend/internal/usecase/onboarding"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	Logger *zap.Logger
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
}

// NewContainer creates a new dependency injection container
func NewContainer(cfg *config.Config, logger *zap.Logger) (*Container, error) {
	// Initialize database
	db, err := database.NewPostgresDB(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	// Initialize Redis
	redisClient, err := database.NewRedisClient(&cfg.Redis)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize redis: %w", err)
	}

	// Initialize media hosting; without credentials the app still boots
	// but uploads fail with a clear error.
	var mediaStore media.Store
	if cfg.Cloudinary.CloudName != "" {
		mediaStore, err = media.NewCloudinaryStore(&cfg.Cloudinary)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize media store: %w", err)
		}
	} else {
		logger.Warn("cloudinary not configured, media uploads disabled")
		mediaStore = media.NewDisabledStore()
	}

	// Initialize mail delivery
	var sender email.Sender
	if cfg.SMTP.Host != "" {
		sender, err = email.NewSMTPSender(&cfg.SMTP)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize smtp sender: %w", err)
		}
	} else {
		logger.Warn("smtp not configured, otp mail disabled")
		sender = email.NewDisabledSender("smtp not configured")
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	interactionRepo := postgres.NewInteractionRepository(db)
	adminRepo := postgres.NewAdminRepository(db)

	// Initialize shared services
	otpStore := otp.NewRedisStore(redisClient)
	tokenService := auth.NewTokenService(cfg.JWT.Secret, cfg.JWT.UserExpiry, cfg.JWT.AdminExpiry)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(userRepo, otpStore, sender, tokenService, logger)
	onboardingUseCase := onboarding.NewOnboardingUseCase(userRepo, mediaStore, logger)
	matchUseCase := match.NewMatchUseCase(userRepo, interactionRepo, logger)
	adminUseCase := admin.NewAdminUseCase(adminRepo, userRepo, tokenService, logger)

	// Initialize handlers
	authHandler := handler.NewAuthHandler(authUseCase)
	onboardingHandler := handler.NewOnboardingHandler(onboardingUseCase)
	matchHandler := handler.NewMatchHandler(matchUseCase)
	adminHandler := handler.NewAdminHandler(adminUseCase)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)

	// Initialize router
	router := http.NewRouter(
		authHandler,
		onboardingHandler,
		matchHandler,
		adminHandler,
		authMiddleware,
	)

	// Setup routes
	ginRouter := router.Setup()

	// Initialize server
	srv := server.NewServer(&cfg.Server, ginRouter, logger)

	return &Container{
		Config: cfg,
		Logger: logger,
		DB:     db,
		Redis:  redisClient,
		Server: srv,
	}, nil
}

// Close closes all connections
func (c *Container) Close() error {
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			c.Logger.Error("failed to close redis", zap.Error(err))
		}
	}

	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}
