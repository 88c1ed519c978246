package main

import (
	"context"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
	"github.com/i474232898/airquality-bot/internal/airquality/providers"
	httpapi "github.com/i474232898/airquality-bot/internal/api/http"
	"github.com/i474232898/airquality-bot/internal/bot"
	"github.com/i474232898/airquality-bot/internal/config"
	"github.com/i474232898/airquality-bot/internal/logger"
	"github.com/i474232898/airquality-bot/internal/scheduler"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	zl, err := logger.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		log.Fatalf("failed to build logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}
	provider := providers.NewIQAirProvider(httpClient, cfg.IQAirBaseURL, cfg.IQAirAPIKey)
	service := airquality.NewService(provider, zl)

	router := bot.NewRouter(cfg.CommandPrefix, cfg.CommandTimeout, zl)
	router.Register(bot.NewWeatherCommand(service, cfg.DefaultLocation()))

	discord, err := bot.NewDiscord(cfg.DiscordToken, router, zl)
	if err != nil {
		zl.Fatal("failed to create discord client", zap.Error(err))
	}
	if err := discord.Open(ctx); err != nil {
		zl.Fatal("failed to connect to discord", zap.Error(err))
	}
	defer func() {
		if err := discord.Close(); err != nil {
			zl.Warn("error closing discord session", zap.Error(err))
		}
	}()

	// The presence tracks the default state's namesake city.
	statusLocation := cfg.DefaultLocation()
	statusLocation.City = cfg.DefaultState
	sched := scheduler.New(statusLocation, cfg.StatusInterval, service, discord, zl)
	if err := sched.Start(); err != nil {
		zl.Fatal("failed to start scheduler", zap.Error(err))
	}
	defer sched.Stop()

	app := httpapi.NewApp()
	httpapi.RegisterRoutes(app, service, cfg.DefaultLocation())

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			zl.Error("fiber server stopped", zap.Error(err))
		}
	}()

	zl.Info("airquality bot running",
		zap.String("prefix", cfg.CommandPrefix),
		zap.String("port", cfg.Port),
	)

	<-ctx.Done()
	zl.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		zl.Error("error during shutdown", zap.Error(err))
	}
}
