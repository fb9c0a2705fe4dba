// Package worker runs scheduled card maintenance.
package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// ExpiredCardBlocker blocks every card past its expiry date.
type ExpiredCardBlocker interface {
	BlockExpired(ctx context.Context) (int64, error)
}

// ExpirySweeper calls BlockExpired on a cron schedule.
type ExpirySweeper struct {
	blocker  ExpiredCardBlocker
	schedule string
	logger   *slog.Logger
}

// NewExpirySweeper creates a sweeper for a standard five field cron
// expression or a descriptor such as "@hourly".
func NewExpirySweeper(blocker ExpiredCardBlocker, schedule string, logger *slog.Logger) *ExpirySweeper {
	return &ExpirySweeper{
		blocker:  blocker,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the schedule until ctx is cancelled, then waits for a running
// sweep to finish.
func (s *ExpirySweeper) Start(ctx context.Context) error {
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(s.logger.Handler(), slog.LevelWarn))
	scheduler := cron.New(cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)))

	if _, err := scheduler.AddFunc(s.schedule, func() { s.Sweep(ctx) }); err != nil {
		return fmt.Errorf("invalid card expiry schedule %q: %w", s.schedule, err)
	}

	s.logger.Info("starting card expiry sweeper", slog.String("schedule", s.schedule))
	scheduler.Start()

	<-ctx.Done()
	<-scheduler.Stop().Done()
	s.logger.Info("stopped card expiry sweeper")
	return nil
}

// Sweep blocks expired cards once. Failures are logged and retried on the next tick.
func (s *ExpirySweeper) Sweep(ctx context.Context) {
	blocked, err := s.blocker.BlockExpired(ctx)
	if err != nil {
		s.logger.Error("failed to block expired cards", slog.Any("error", err))
		return
	}
	if blocked > 0 {
		s.logger.Info("blocked expired cards", slog.Int64("count", blocked))
	}
}
