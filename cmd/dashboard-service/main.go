package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang-stock-sentinel/internal/dashboard/config"
	delivery "golang-stock-sentinel/internal/dashboard/delivery/http"
	_ "golang-stock-sentinel/internal/dashboard/docs"
	"golang-stock-sentinel/internal/dashboard/repository"
	"golang-stock-sentinel/internal/dashboard/service"
	"golang-stock-sentinel/pkg/logger"
	"golang-stock-sentinel/pkg/telegram"

	"github.com/labstack/echo/v4"
	gocache "github.com/patrickmn/go-cache"
	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
	swagger "github.com/swaggo/echo-swagger"
	"google.golang.org/genai"
)

var configPath string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Starts the dashboard service",
	Run:   runServe,
}

func runServe(cmd *cobra.Command, args []string) {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load configuration
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	appLogger, err := logger.New(cfg.Logger.Level, cfg.Logger.Encoding)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer func() { _ = appLogger.Sync() }()

	appLogger.Info("Starting Dashboard Service", logger.Field("name", cfg.App.Name))

	// Initialize the raw result cache
	cacheTTL, err := time.ParseDuration(cfg.Cache.TTL)
	if err != nil {
		appLogger.Fatal("Invalid cache TTL", logger.ErrorField(err))
	}
	cleanupInterval, err := time.ParseDuration(cfg.Cache.CleanupInterval)
	if err != nil {
		appLogger.Fatal("Invalid cache cleanup interval", logger.ErrorField(err))
	}
	resultCache := gocache.New(cacheTTL, cleanupInterval)

	// Initialize the price data source
	priceRepo, err := repository.NewYahooFinanceRepository(cfg, appLogger)
	if err != nil {
		appLogger.Fatal("Failed to initialize Yahoo Finance repository", logger.ErrorField(err))
	}

	// Initialize the news source
	var newsRepo repository.NewsRepository
	switch cfg.News.Provider {
	case "newsapi":
		newsRepo, err = repository.NewNewsAPIRepository(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize NewsAPI repository", logger.ErrorField(err))
		}
	case "googlerss":
		newsRepo = repository.NewGoogleRSSRepository(cfg, appLogger)
	default:
		appLogger.Fatal("Invalid news provider specified in config", logger.StringField("provider", cfg.News.Provider))
	}

	// Initialize the text classifier once for the process lifetime
	var classifier repository.TextClassifier
	switch cfg.AI.Provider {
	case "huggingface":
		classifier, err = repository.NewHuggingFaceRepository(cfg, appLogger)
		if err != nil {
			appLogger.Fatal("Failed to initialize HuggingFace repository", logger.ErrorField(err))
		}
	case "gemini":
		genAiClient, err := genai.NewClient(context.Background(), &genai.ClientConfig{
			APIKey: cfg.Gemini.APIKey,
		})
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI client", logger.ErrorField(err))
		}
		classifier, err = repository.NewGeminiAIRepository(cfg, appLogger, genAiClient)
		if err != nil {
			appLogger.Fatal("Failed to initialize Gemini AI repository", logger.ErrorField(err))
		}
	default:
		appLogger.Fatal("Invalid AI provider specified in config", logger.StringField("provider", cfg.AI.Provider))
	}

	// Initialize services
	labeler := service.NewSentimentLabeler(classifier, appLogger, cfg.AI.MaxConcurrent)
	dashboardSvc := service.NewDashboardService(cfg, appLogger, priceRepo, newsRepo, labeler, resultCache)

	// Optionally start the scheduled watchlist digest
	var digestCron *cron.Cron
	if cfg.Digest.Enabled {
		if !cfg.Telegram.Enabled {
			appLogger.Fatal("Digest requires the Telegram notifier to be enabled")
		}
		notifier, err := telegram.NewClient(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			appLogger.Fatal("Failed to initialize Telegram notifier", logger.ErrorField(err))
		}
		digestSvc := service.NewDigestService(cfg, appLogger, dashboardSvc, notifier)

		digestCron = cron.New()
		_, err = digestCron.AddFunc(cfg.Digest.Schedule, func() {
			if err := digestSvc.SendWatchlistDigest(ctx); err != nil {
				appLogger.Error("Watchlist digest failed", logger.ErrorField(err))
			}
		})
		if err != nil {
			appLogger.Fatal("Invalid digest schedule", logger.ErrorField(err))
		}
		digestCron.Start()
		appLogger.Info("Watchlist digest scheduled", logger.StringField("schedule", cfg.Digest.Schedule))
	}

	// Initialize Echo server
	e := echo.New()
	e.HideBanner = true

	dashboardHandler := delivery.NewDashboardHandler(dashboardSvc, appLogger)
	apiV1 := e.Group("/api/v1")
	dashboardHandler.RegisterRoutes(apiV1)

	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})
	e.GET("/swagger/*", swagger.WrapHandler)

	// Start server
	go func() {
		addr := fmt.Sprintf(":%d", cfg.API.Port)
		appLogger.Info("HTTP server starting", logger.Field("address", addr))
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			appLogger.Error("HTTP server failed to start", logger.ErrorField(err))
			stop()
		}
	}()

	// Wait for shutdown signal
	<-ctx.Done()

	appLogger.Info("Shutting down server...")

	if digestCron != nil {
		digestCron.Stop()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		appLogger.Fatal("Server forced to shutdown", logger.ErrorField(err))
	}

	appLogger.Info("Server exiting")
}

// @title Stock Sentinel Dashboard API
// @version 1.0
// @description Price history, news sentiment labeling and aggregation per ticker.
// @BasePath /api/v1
func main() {
	rootCmd := &cobra.Command{Use: "dashboard-service"}

	serveCmd.Flags().StringVarP(&configPath, "config", "c", "configs/config-dashboard.yaml", "Path to the configuration file")

	rootCmd.AddCommand(serveCmd)
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error executing dashboard-service CLI: %s\n", err)
		os.Exit(1)
	}
}
