package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/valdraft/draftd/internal/bot"
	"github.com/valdraft/draftd/internal/config"
	"github.com/valdraft/draftd/internal/league"
	"github.com/valdraft/draftd/internal/metrics"
	"github.com/valdraft/draftd/internal/models"
	"github.com/valdraft/draftd/internal/scheduler"
	"github.com/valdraft/draftd/internal/service"
	"github.com/valdraft/draftd/internal/store"
)

func main() {
	if err := run(); err != nil {
		slog.Error("Error running application", "error", err)
		os.Exit(1)
	}
}

func run() error {
	if err := godotenv.Load(); err != nil {
		slog.Error("Error loading .env file", "error", err)
	}

	cfg, err := config.New()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	st, err := store.Open(ctx, store.Options{
		Driver: store.Driver(cfg.Storage.Driver),
		Path:   cfg.Storage.Path,
		S3: store.S3Config{
			Region:    cfg.Storage.S3Region,
			Bucket:    cfg.Storage.S3Bucket,
			Key:       cfg.Storage.S3Key,
			Endpoint:  cfg.Storage.S3Endpoint,
			PathStyle: cfg.Storage.S3PathStyle,
		},
	})
	if err != nil {
		return err
	}

	engine := league.NewEngine(
		cfg.League.DraftType,
		cfg.League.SeasonEndGw,
		map[models.Position]int{
			models.PositionGK:  cfg.League.LimitGK,
			models.PositionDEF: cfg.League.LimitDEF,
			models.PositionMID: cfg.League.LimitMID,
			models.PositionFWD: cfg.League.LimitFWD,
		},
		cfg.League.Managers,
		league.WithBudgetRule(priceCap(cfg.League.MaxPrice)),
	)

	registry := prometheus.NewRegistry()
	m := metrics.New(registry)
	transferService := service.NewTransferService(st, engine, m, cfg.Storage.RetryLimit)

	telegramBot, err := bot.NewTelegramBot(cfg.TelegramBot, transferService)
	if err != nil {
		return err
	}

	sched, err := scheduler.NewScheduler(cfg.Scheduler, transferService, telegramBot.SendMessage)
	if err != nil {
		return err
	}

	if err := sched.Start(); err != nil {
		return err
	}
	defer func() {
		err := sched.Stop()
		if err != nil {
			slog.Error("Error stopping scheduler", "error", err)
		}
	}()

	mux := http.NewServeMux()
	mux.HandleFunc("/", healthCheckHandler)
	mux.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	go func() {
		if err := http.ListenAndServe(cfg.HTTPAddr, mux); err != nil {
			slog.Error("Error starting HTTP server", "error", err)
		}
	}()

	go func() {
		if err := telegramBot.Start(ctx); err != nil {
			slog.Error("Error running telegram bot", "error", err)
		}
	}()

	<-ctx.Done()
	slog.Info("Shutting down gracefully...")

	return nil
}

// priceCap is the league budget rule: incoming players above the cap are
// rejected. cap <= 0 disables the check.
func priceCap(limit float64) league.BudgetRule {
	if limit <= 0 {
		return nil
	}
	return func(_ *models.LeagueState, _ string, in models.PlayerRecord) error {
		if in.Price > limit {
			return fmt.Errorf("price %.1f exceeds the %.1f cap", in.Price, limit)
		}
		return nil
	}
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}
