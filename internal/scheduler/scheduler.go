package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/robfig/cron/v3"

	"github.com/valdraft/draftd/internal/config"
	"github.com/valdraft/draftd/internal/service"
)

// Scheduler runs the transfer window housekeeping jobs: a turn reminder
// while a window is open, and an optional automatic close at the GW
// deadline. Both schedules come from config as standard cron expressions.
type Scheduler struct {
	s               gocron.Scheduler
	transferService *service.TransferService
	sendMessage     func(string) error

	reminderCron  string
	autoCloseCron string
}

func NewScheduler(cfg config.Scheduler, transferService *service.TransferService, sendMessage func(string) error) (*Scheduler, error) {
	location, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load location %q: %w", cfg.Timezone, err)
	}

	// expressions are operator-supplied config, validate them up front
	parser := cron.ParseStandard
	if cfg.ReminderCron != "" {
		if _, err := parser(cfg.ReminderCron); err != nil {
			return nil, fmt.Errorf("invalid REMINDER_CRON %q: %w", cfg.ReminderCron, err)
		}
	}
	if cfg.AutoCloseCron != "" {
		if _, err := parser(cfg.AutoCloseCron); err != nil {
			return nil, fmt.Errorf("invalid AUTOCLOSE_CRON %q: %w", cfg.AutoCloseCron, err)
		}
	}

	s, err := gocron.NewScheduler(
		gocron.WithLocation(location),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	return &Scheduler{
		s:               s,
		transferService: transferService,
		sendMessage:     sendMessage,
		reminderCron:    cfg.ReminderCron,
		autoCloseCron:   cfg.AutoCloseCron,
	}, nil
}

func (s *Scheduler) Start() error {
	if s.reminderCron != "" {
		_, err := s.s.NewJob(
			gocron.CronJob(s.reminderCron, false),
			gocron.NewTask(s.sendTurnReminder),
		)
		if err != nil {
			return fmt.Errorf("failed to create turn reminder job: %w", err)
		}
	}

	if s.autoCloseCron != "" {
		_, err := s.s.NewJob(
			gocron.CronJob(s.autoCloseCron, false),
			gocron.NewTask(s.closeWindow),
		)
		if err != nil {
			return fmt.Errorf("failed to create auto-close job: %w", err)
		}
	}

	s.s.Start()
	return nil
}

func (s *Scheduler) Stop() error {
	return s.s.Shutdown()
}

func (s *Scheduler) sendTurnReminder() {
	ctx := context.Background()
	window, current, err := s.transferService.WindowStatus(ctx)
	if err != nil {
		slog.Error("Failed to get window status", "error", err)
		return
	}
	if window == nil {
		return
	}
	report, err := s.transferService.GetWindowStatusReport(ctx)
	if err != nil {
		slog.Error("Failed to build window report", "error", err)
		return
	}
	slog.Info("Transfer turn reminder", "gw", window.Gw, "current", current)
	s.sendMessage(report)
}

func (s *Scheduler) closeWindow() {
	closed, err := s.transferService.CloseWindow(context.Background())
	if err != nil {
		slog.Error("Failed to auto-close transfer window", "error", err)
		return
	}
	if closed {
		s.sendMessage("🚪 Transfer window closed — GW deadline reached.")
	}
}
