package worker

import (
	"context"
	"fmt"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"osintscan/pkg/progress"
	"osintscan/pkg/storage"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// StaleCause is the failure recorded on jobs the sweeper fails.
const StaleCause = "orchestrator lost track of scan"

// SweepArgs are the arguments of the periodic stale job sweep.
type SweepArgs struct{}

// Kind returns the River job kind of the sweep.
func (SweepArgs) Kind() string { return "SweepStaleScanJobs" }

// InsertOpts makes a missed sweep wait for the next period instead of retrying.
func (SweepArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{MaxAttempts: 1}
}

// StaleSweeper fails jobs that have been running longer than any
// orchestration can take, e.g. because the process owning them died.
type StaleSweeper struct {
	river.WorkerDefaults[SweepArgs]

	jobs       storage.ScanJobStorage
	progress   progress.Publisher
	staleAfter time.Duration
	clock      clockwork.Clock
}

// NewStaleSweeper constructs a StaleSweeper. A nil clock uses the real clock.
func NewStaleSweeper(jobs storage.ScanJobStorage,
	publisher progress.Publisher,
	staleAfter time.Duration,
	clock clockwork.Clock) *StaleSweeper {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &StaleSweeper{
		jobs:       jobs,
		progress:   publisher,
		staleAfter: staleAfter,
		clock:      clock,
	}
}

// Work fails every stale job and broadcasts the failure to its observers.
func (s *StaleSweeper) Work(ctx context.Context, _ *river.Job[SweepArgs]) error {
	ctx = logger.Named(ctx, "sweeper")
	now := s.clock.Now().UTC()

	ids, err := s.jobs.FailStaleScanJobs(ctx, now.Add(-s.staleAfter), StaleCause, now)
	if err != nil {
		return fmt.Errorf("could not fail stale scan jobs: %w", err)
	}

	for _, id := range ids {
		metrics.ScanJobs.WithLabelValues("failed").Inc()
		s.progress.Publish(ctx, id, progress.Event{
			Status:  progress.StatusError,
			Message: StaleCause,
			At:      now,
		})
		logger.Warn(ctx, "failed stale scan job", zap.Stringer("scanJobID", id))
	}

	return nil
}
