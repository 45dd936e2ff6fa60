// Package worker runs the background side of scan jobs on River: the
// per-job orchestration and the periodic sweep of stale jobs.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"osintscan/internal/config"
	"osintscan/pkg/logger"
	"osintscan/pkg/progress"
	"osintscan/pkg/storage"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/riverdriver/riverpgxv5"
	"go.uber.org/zap/exp/zapslog"
)

// Options configures the River client.
type Options struct {
	// MaxWorkers bounds the number of jobs orchestrated concurrently.
	MaxWorkers int
	// StaleAfter is how long a job may stay running before it is failed. It
	// also bounds a single orchestration.
	StaleAfter time.Duration
	// SweepInterval is how often stale jobs are looked for.
	SweepInterval time.Duration
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxWorkers:    cfg.Worker.MaxWorkers,
		StaleAfter:    cfg.Worker.StaleAfter,
		SweepInterval: cfg.Worker.SweepInterval,
	}
}

// Deps are the collaborators of the workers.
type Deps struct {
	Orchestrator Orchestrator
	Jobs         storage.ScanJobStorage
	Progress     progress.Publisher
	Clock        clockwork.Clock
}

// Start registers the workers and the periodic sweep, and starts processing.
func Start(ctx context.Context, dbPool *pgxpool.Pool, deps Deps, options Options) (*river.Client[pgx.Tx], error) {
	workers := river.NewWorkers()
	river.AddWorker(workers, NewScanJobWorker(deps.Orchestrator, options.StaleAfter))
	river.AddWorker(workers, NewStaleSweeper(deps.Jobs, deps.Progress, options.StaleAfter, deps.Clock))

	riverClient, err := river.NewClient(riverpgxv5.New(dbPool), &river.Config{
		Queues: map[string]river.QueueConfig{
			river.QueueDefault: {MaxWorkers: options.MaxWorkers},
		},
		Workers: workers,
		PeriodicJobs: []*river.PeriodicJob{
			river.NewPeriodicJob(
				river.PeriodicInterval(options.SweepInterval),
				func() (river.JobArgs, *river.InsertOpts) { return SweepArgs{}, nil },
				&river.PeriodicJobOpts{RunOnStart: true},
			),
		},
		Logger: slog.New(zapslog.NewHandler(logger.Get(ctx).Core())),
	})
	if err != nil {
		return nil, fmt.Errorf("could not create river queue client: %w", err)
	}

	if err := riverClient.Start(ctx); err != nil {
		return nil, fmt.Errorf("could not start river queue client: %w", err)
	}

	return riverClient, nil
}
