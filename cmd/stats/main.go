package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/eventum-app/eventum/internal/app/migrations"
	"github.com/eventum-app/eventum/internal/config"
	"github.com/eventum-app/eventum/internal/db"
	"github.com/eventum-app/eventum/internal/middleware"
	"github.com/eventum-app/eventum/internal/pkg/logger"
	"github.com/eventum-app/eventum/internal/statsvc"
)

// @title Eventum Stats API
// @version 1.0
// @description Hit counting service backing Eventum view statistics

// @host localhost:9090
// @BasePath /

func main() {
	cfg, err := config.LoadConfig(filepath.Join("configs", "stats.yaml"))
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		os.Exit(1)
	}

	logger.Configure(logger.Config{
		Level:  logger.LogLevel(strings.ToLower(cfg.Logging.Level)),
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
	})

	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to connect to database")
		os.Exit(1)
	}
	defer database.Close()

	migrator := migrations.NewMigrator(database.Pool)
	if err := migrator.MigrateFromDirectory("migrations/stats"); err != nil {
		logger.Error().Err(err).Msg("Database migrations failed")
		os.Exit(1)
	}

	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestLogger(), gin.Recovery())

	controller := statsvc.NewController(statsvc.NewStatsService(statsvc.NewHitRepository(database.Pool)))
	controller.RegisterRoutes(router)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info().Str("addr", srv.Addr).Msg("Stats server listening")
		serverErrors <- srv.ListenAndServe()
	}()

	osSignals := make(chan os.Signal, 1)
	signal.Notify(osSignals, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error().Err(err).Msg("Error starting server")
			os.Exit(1)
		}
	case sig := <-osSignals:
		logger.Info().Str("signal", sig.String()).Msg("Received OS signal, initiating shutdown")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Err(err).Msg("Stats server shutdown error")
		os.Exit(1)
	}
	logger.Info().Msg("Stats server shutdown complete")
}
