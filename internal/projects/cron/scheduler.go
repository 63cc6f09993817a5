package cronjob

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/ennichirag3/blue-carbon-frontend/internal/logging"
)

// Purger permanently removes projects soft-deleted before a cutoff.
type Purger interface {
	PurgeDeleted(ctx context.Context, before time.Time) (int64, error)
}

// Scheduler runs the soft-delete purge on a cron schedule (with seconds field).
type Scheduler struct {
	cron      *cron.Cron
	purger    Purger
	schedule  string
	retention time.Duration
	timeout   time.Duration
	log       *logging.Logger
	now       func() time.Time
}

func NewScheduler(purger Purger, schedule string, retention time.Duration, log *logging.Logger) *Scheduler {
	if log == nil {
		log = logging.NewNop()
	}
	return &Scheduler{
		cron:      cron.New(cron.WithSeconds()),
		purger:    purger,
		schedule:  schedule,
		retention: retention,
		timeout:   time.Minute,
		log:       log,
		now:       time.Now,
	}
}

// Start registers the purge job and starts the cron runner.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc(s.schedule, func() {
		_, _ = s.RunOnce(context.Background())
	}); err != nil {
		return fmt.Errorf("failed to create purge job: %w", err)
	}

	s.log.LogInfof(context.Background(), "purge.start", "purge scheduler started (schedule %q, retention %s)", s.schedule, s.retention)
	s.cron.Start()
	return nil
}

// Stop halts the scheduler and waits for a running purge to finish or ctx to end.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
	case <-ctx.Done():
	}
}

// RunOnce purges everything soft-deleted longer ago than the retention window.
func (s *Scheduler) RunOnce(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	cutoff := s.now().Add(-s.retention)
	n, err := s.purger.PurgeDeleted(ctx, cutoff)
	if err != nil {
		s.log.LogError(ctx, "purge.run", err)
		return 0, err
	}

	s.log.LogInfof(ctx, "purge.run", "purged %d projects deleted before %s", n, cutoff.Format(time.RFC3339))
	return n, nil
}
