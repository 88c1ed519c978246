package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

const refreshTimeout = 30 * time.Second

// Reporter produces a flattened report for a location.
type Reporter interface {
	Report(ctx context.Context, loc airquality.Location) (airquality.Report, error)
}

// StatusSetter shows a short text as the bot's presence.
type StatusSetter interface {
	SetStatus(text string) error
}

// Scheduler periodically refreshes the bot's presence with the air quality of
// one location.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reporter  Reporter
	status    StatusSetter
	location  airquality.Location
	interval  time.Duration
	logger    *zap.Logger
}

// New creates a new Scheduler. A non-positive interval disables it.
func New(location airquality.Location, interval time.Duration, reporter Reporter, status StatusSetter, logger *zap.Logger) *Scheduler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scheduler{
		scheduler: gocron.NewScheduler(time.UTC),
		reporter:  reporter,
		status:    status,
		location:  location,
		interval:  interval,
		logger:    logger.Named("scheduler"),
	}
}

// Start schedules the refresh job, running it once immediately.
func (s *Scheduler) Start() error {
	if s.interval <= 0 {
		s.logger.Info("status refresh disabled")
		return nil
	}

	_, err := s.scheduler.Every(s.interval).SingletonMode().Do(func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()

		if err := s.RefreshStatus(ctx); err != nil {
			s.logger.Warn("status refresh failed", zap.String("location", s.location.String()), zap.Error(err))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule status refresh: %w", err)
	}

	s.scheduler.StartAsync()
	s.logger.Info("status refresh scheduled", zap.Duration("interval", s.interval))
	return nil
}

// RefreshStatus looks up the location and publishes the result as presence.
func (s *Scheduler) RefreshStatus(ctx context.Context) error {
	report, err := s.reporter.Report(ctx, s.location)
	if err != nil {
		return fmt.Errorf("lookup %s: %w", s.location, err)
	}

	text := StatusText(report)
	if err := s.status.SetStatus(text); err != nil {
		return fmt.Errorf("set status: %w", err)
	}
	s.logger.Debug("status refreshed", zap.String("status", text))
	return nil
}

// StatusText renders the presence line for a report.
func StatusText(r airquality.Report) string {
	return fmt.Sprintf("AQI %d in %s", r.AQIUS, r.City)
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil && s.scheduler.IsRunning() {
		s.scheduler.Stop()
	}
}
