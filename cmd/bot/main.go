package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"

	"github.com/jaidTw/ngs-discord-weather-bot/internal/adapter/discord"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/adapter/httpadapter"
	kafkaadapter "github.com/jaidTw/ngs-discord-weather-bot/internal/adapter/kafka"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/config"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/domain"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/format"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/notifier"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/observability"
	"github.com/jaidTw/ngs-discord-weather-bot/internal/query"
)

func main() {
	_ = godotenv.Load() // .env is optional; real env vars win

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg.LogLevel, cfg.LogFormat)
	metrics := observability.NewMetrics()

	dataset, err := domain.LoadDataset(cfg.DatasetFile)
	if err != nil {
		logger.Error("failed to load dataset", "error", err)
		os.Exit(1)
	}
	logger.Info("dataset loaded", "file", cfg.DatasetFile, "events", len(dataset))

	renderer, err := format.NewRenderer(cfg.Language, cfg.DisplayTZ,
		int(cfg.NotifyBefore.Minutes()), cfg.NextStormCount)
	if err != nil {
		logger.Error("failed to build renderer", "error", err)
		os.Exit(1)
	}

	clock := clockwork.NewRealClock()
	queries := query.New(dataset, renderer, cfg.DisplayTZ, clock, logger)

	bot, err := discord.New(cfg.DiscordToken, queries, logger, metrics)
	if err != nil {
		logger.Error("failed to create discord session", "error", err)
		os.Exit(1)
	}

	var recorder notifier.Recorder = notifier.NopRecorder{}
	if cfg.AuditEnabled {
		recorder = kafkaadapter.NewRecorder(cfg.KafkaBrokers, cfg.KafkaAuditTopic, logger)
		logger.Info("notification audit enabled", "topic", cfg.KafkaAuditTopic)
	}

	n := notifier.New(dataset, renderer, bot, recorder, clock, notifier.Config{
		ChannelID:       cfg.DiscordChannel,
		Lead:            cfg.NotifyBefore,
		NextStormCount:  cfg.NextStormCount,
		TickInterval:    cfg.TickInterval,
		DispatchTimeout: cfg.DispatchTimeout,
	}, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, n, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := bot.Open(); err != nil {
		logger.Error("failed to connect to discord", "error", err)
		os.Exit(1)
	}

	// Start HTTP server.
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", "error", err)
		}
	}()

	// Start the notifier loop, gated on the gateway READY event.
	go func() {
		if err := n.Run(ctx, bot.Ready()); err != nil {
			logger.Error("notifier error", "error", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown error", "error", err)
	}
	if err := bot.Close(); err != nil {
		logger.Error("discord close error", "error", err)
	}
	if err := recorder.Close(); err != nil {
		logger.Error("audit recorder close error", "error", err)
	}

	logger.Info("shutdown complete")
}
