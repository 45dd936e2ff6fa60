package worker

import (
	"context"
	"errors"
	"fmt"
	"osintscan/internal/scanjob"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/serrors"
	"time"

	"github.com/riverqueue/river"
	"go.uber.org/zap"
)

// Orchestrator drives one scan job to a terminal state.
//
//go:generate mockgen -package mockworker -source=scanjob.go -destination=mock/mockworker.go *
type Orchestrator interface {
	Run(ctx context.Context, id domain.ScanJobID) error
}

// ScanJobWorker is a River worker that hands each queued scan job to the
// orchestrator. The orchestrator records its own failures, so a returned
// error only means the job could not be started or its outcome not saved.
//
// Jobs that no longer exist or are no longer pending are cancelled rather than
// retried: another execution already owns them.
type ScanJobWorker struct {
	river.WorkerDefaults[scanjob.JobArgs]

	orchestrator Orchestrator
	timeout      time.Duration
}

// NewScanJobWorker constructs a ScanJobWorker. A positive timeout bounds each
// execution.
func NewScanJobWorker(orchestrator Orchestrator, timeout time.Duration) *ScanJobWorker {
	return &ScanJobWorker{
		orchestrator: orchestrator,
		timeout:      timeout,
	}
}

// Timeout overrides River's default job timeout, which is shorter than a scan.
func (w *ScanJobWorker) Timeout(*river.Job[scanjob.JobArgs]) time.Duration {
	if w.timeout <= 0 {
		return -1
	}

	return w.timeout
}

// Work runs the orchestration of a single scan job.
func (w *ScanJobWorker) Work(ctx context.Context, job *river.Job[scanjob.JobArgs]) error {
	ctx = logger.WithFields(logger.Named(ctx, "scanjob"), zap.Int64("jobID", job.ID), zap.Stringer("scanJobID", job.Args.ScanJobID))

	err := w.orchestrator.Run(ctx, domain.ScanJobID(job.Args.ScanJobID))
	if err != nil {
		if errors.Is(err, serrors.ErrConflict) || errors.Is(err, serrors.ErrNotFound) {
			logger.Warn(ctx, "scan job is not runnable, cancelling", zap.Error(err))

			return river.JobCancel(err) //nolint: wrapcheck
		}

		logger.Error(ctx, "error in orchestrating scan job", zap.Error(err))

		return fmt.Errorf("could not orchestrate scan job: %w", err)
	}

	return nil
}
