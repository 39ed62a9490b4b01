// Package scheduler runs the daily schedule-payment driver on a cron
// expression.
package scheduler

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	portssvc "github.com/terratale/ledgerd/internal/core/ports/services"
	"github.com/terratale/ledgerd/internal/middleware"
)

// Scheduler owns the cron runner that materializes due schedule
// payments into invoices once per day.
type Scheduler struct {
	cron        *cron.Cron
	scheduleSvc portssvc.ScheduleSvcFacade
	logger      *slog.Logger
}

func New(scheduleSvc portssvc.ScheduleSvcFacade, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:        cron.New(),
		scheduleSvc: scheduleSvc,
		logger:      logger.With(slog.String("component", "scheduler")),
	}
}

// Start registers the daily run at the given cron spec and launches the
// runner in its own goroutine.
func (s *Scheduler) Start(spec string) error {
	_, err := s.cron.AddFunc(spec, s.runOnce)
	if err != nil {
		return err
	}
	s.cron.Start()
	s.logger.Info("scheduler started", slog.String("cron", spec))
	return nil
}

// Stop halts the runner and waits for an in-flight run to finish.
func (s *Scheduler) Stop(ctx context.Context) {
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
		s.logger.Warn("scheduler stop timed out")
	}
}

func (s *Scheduler) runOnce() {
	runLogger := s.logger.With(slog.String("run_id", time.Now().UTC().Format("2006-01-02")))
	ctx := middleware.WithLogger(context.Background(), runLogger)

	summary, err := s.scheduleSvc.RunDue(ctx, time.Now().UTC())
	if err != nil {
		runLogger.Error("schedule run failed", slog.Any("error", err))
		return
	}
	runLogger.Info("schedule run complete",
		slog.Int("processed", summary.Processed),
		slog.Int("succeeded", summary.Succeeded),
		slog.Int("failed", summary.Failed))
}
