package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/nutriweek/backend/internal/config"
	"github.com/nutriweek/backend/internal/handlers"
	"github.com/nutriweek/backend/internal/logger"
	"github.com/nutriweek/backend/internal/middleware"
	"github.com/nutriweek/backend/internal/repository"
	"github.com/nutriweek/backend/internal/service"
	"github.com/nutriweek/backend/pkg/localmodel"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the API server",
	Long:  `Start the HTTP API server and listen for requests.`,
	RunE:  runServe,
}

var (
	port string
)

func init() {
	serveCmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Override port from flag if provided
	if port != "" {
		cfg.Server.Port = port
	}

	log := logger.NewSlogLogger(logger.Config{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: cfg.Log.Format,
	})
	logger.SetDefault(log)

	log.Info("starting NutriWeek API server",
		logger.String("env", cfg.Server.Env),
		logger.String("store", cfg.Store.Backend),
		logger.Bool("model_enabled", cfg.Model.Enabled))

	// Initialize repositories
	dayLogRepo := repository.NewDayLogRepository(repository.Targets{
		Calories: cfg.Targets.Calories,
		Protein:  cfg.Targets.Protein,
		Water:    cfg.Targets.Water,
	})

	var cacheStore repository.InsightCacheStore
	if cfg.Store.Backend == "pebble" {
		pebbleStore, err := repository.NewPebbleCacheStore(cfg.Store.Path)
		if err != nil {
			return fmt.Errorf("failed to open insight cache store: %w", err)
		}
		defer pebbleStore.Close()
		cacheStore = pebbleStore
	} else {
		cacheStore = repository.NewMemoryCacheStore()
	}

	var modelClient service.ModelClient
	if cfg.Model.Enabled {
		modelClient = service.NewLocalModelClient(localmodel.NewClient(cfg.Model.BaseURL))
	} else {
		modelClient = service.NewDisabledModelClient()
	}

	// Initialize services
	insightService := service.NewInsightService(dayLogRepo, cacheStore, modelClient, service.InsightConfig{
		Selector: service.SelectorConfig{
			TargetCount: cfg.Insights.TargetCount,
			MinScore:    cfg.Insights.MinScore,
			CategoryCap: cfg.Insights.CategoryCap,
		},
		CacheTTL:          cfg.Insights.CacheTTL(),
		ModelMaxTokens:    cfg.Model.MaxTokens,
		MinNarrativeChars: cfg.Model.MinNarrativeChars,
	}, nil)

	// Initialize handlers
	insightsHandler := handlers.NewInsightsHandler(insightService)
	logsHandler := handlers.NewLogsHandler(dayLogRepo, dayLogRepo)

	// Set Gin mode based on environment
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize Gin router
	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS())
	router.Use(middleware.SecurityHeaders())

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
			"env":    cfg.Server.Env,
		})
	})

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		insights := v1.Group("/insights")
		{
			insights.GET("/weekly", insightsHandler.GetWeeklyInsights)
			insights.POST("/weekly/refresh", insightsHandler.RefreshWeeklyInsights)
			insights.GET("/weekly/questions/:id/narrative", insightsHandler.GetNarrative)
			insights.POST("/weekly/questions/:id/retry", insightsHandler.RetryNarrative)
			insights.GET("/model/status", insightsHandler.GetModelStatus)
		}

		logs := v1.Group("/logs")
		{
			logs.POST("/days", logsHandler.UpsertDay)
			logs.GET("/weeks/:start", logsHandler.GetWeek)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", logger.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("failed to start server: %w", err)
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}

	return nil
}
