package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"

	"github.com/eventum-app/eventum/internal/app/controllers"
	"github.com/eventum-app/eventum/internal/app/migrations"
	"github.com/eventum-app/eventum/internal/app/repositories"
	"github.com/eventum-app/eventum/internal/app/routes"
	"github.com/eventum-app/eventum/internal/app/services"
	"github.com/eventum-app/eventum/internal/config"
	"github.com/eventum-app/eventum/internal/db"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/auth"
	"github.com/eventum-app/eventum/internal/pkg/helpers"
	"github.com/eventum-app/eventum/internal/pkg/logger"
	"github.com/eventum-app/eventum/internal/statsclient"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *repositories.Repositories
	Services       *services.Services
	JWTService     *auth.JWTService
	AuthMiddleware *middleware.AuthMiddleware
	RateLimiter    gin.HandlerFunc
	Redis          *redis.Client
	Controllers    routes.Controllers
}

// LoadConfigAndSetupLogger loads configuration and initializes the global logger
func LoadConfigAndSetupLogger() (*config.Config, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	logger.Info().Str("logLevel", cfg.Logging.Level).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, nil
}

// SetupDatabase establishes the database connection and runs migrations
func SetupDatabase(cfg *config.Config, migrationsDir string) (*pgxpool.Pool, error) {
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	dbPool := database.Pool

	migrator := migrations.NewMigrator(dbPool)
	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		dbPool.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	logger.Info().Msg("Database ready")
	return dbPool, nil
}

// BuildDependencies wires repositories, services, controllers and middleware
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool) (*Dependencies, error) {
	deps := &Dependencies{}

	deps.Repos = repositories.NewRepositories(dbPool)

	deps.JWTService = auth.NewJWTService(auth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 1*time.Hour),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	statsClient := statsclient.NewClient(
		cfg.Stats.BaseURL,
		cfg.Stats.AppName,
		helpers.ParseDuration(cfg.Stats.Timeout, 5*time.Second),
	)

	deps.Services = services.NewServices(deps.Repos, deps.JWTService, statsClient)
	deps.AuthMiddleware = middleware.NewAuthMiddleware(deps.JWTService)

	if cfg.RateLimit.Enabled {
		deps.Redis = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})

		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := deps.Redis.Ping(ctx).Err(); err != nil {
			return nil, fmt.Errorf("failed to connect to redis: %w", err)
		}

		limiter, err := middleware.RateLimiter(deps.Redis, cfg.RateLimit.Rate)
		if err != nil {
			return nil, err
		}
		deps.RateLimiter = limiter
	}

	deps.Controllers = routes.Controllers{
		Auth:         controllers.NewAuthController(deps.Services.Auth),
		PrivateEvent: controllers.NewPrivateEventController(deps.Services.Event),
		AdminEvent:   controllers.NewAdminEventController(deps.Services.Event),
		PublicEvent:  controllers.NewPublicEventController(deps.Services.Event),
		Request:      controllers.NewRequestController(deps.Services.Request),
		User:         controllers.NewUserController(deps.Services.User),
		Category:     controllers.NewCategoryController(deps.Services.Category),
		Compilation:  controllers.NewCompilationController(deps.Services.Compilation),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes
func SetupRouter(cfg *config.Config, deps *Dependencies) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	routes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.RateLimiter)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
