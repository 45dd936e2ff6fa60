// Package orchestrator drives a scan job through its lifecycle against the
// external engine: submission, bounded polling, result collection and
// correlation, persisting every transition and broadcasting progress.
package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"osintscan/internal/config"
	"osintscan/internal/correlation"
	"osintscan/pkg/domain"
	"osintscan/pkg/engine"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"osintscan/pkg/progress"
	"osintscan/pkg/retry"
	"osintscan/pkg/serrors"
	"osintscan/pkg/storage"
	"time"

	"github.com/jonboulle/clockwork"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const (
	// DefaultPollInterval is the wait before each status query.
	DefaultPollInterval = 5 * time.Second
	// DefaultMaxPolls bounds the number of status queries of one job.
	DefaultMaxPolls = 60
)

// Options configures an Orchestrator.
type Options struct {
	// PollInterval is the wait before each status query.
	PollInterval time.Duration
	// MaxPolls is the polling budget; exceeding it fails the job with a timeout.
	MaxPolls int
	// Retry configures the retries of each individual engine call.
	Retry retry.Options
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		PollInterval: cfg.Orchestrator.PollInterval,
		MaxPolls:     cfg.Orchestrator.MaxPolls,
		Retry: retry.Options{
			MaxAttempts: cfg.Orchestrator.RetryMaxAttempts,
			Delays:      cfg.Orchestrator.RetryDelays,
		},
	}
}

// Budget returns the longest time a job may spend polling.
func (o Options) Budget() time.Duration {
	return o.PollInterval * time.Duration(o.MaxPolls)
}

// Deps are the collaborators of an Orchestrator.
type Deps struct {
	Jobs      storage.ScanJobStorage
	Engine    engine.Client
	Progress  progress.Publisher
	Extractor correlation.Extractor
	// Clock stamps transitions. Nil uses the real clock.
	Clock clockwork.Clock
	// Sleep performs poll and retry waits. Nil sleeps on Clock.
	Sleep retry.SleepFunc
}

// Orchestrator runs scan jobs. It holds no per-job state and is safe for
// concurrent use; each job is owned by whichever call moved it to running.
type Orchestrator struct {
	deps    Deps
	options Options
	tracer  trace.Tracer
}

// New creates an Orchestrator.
func New(deps Deps, options Options) *Orchestrator {
	if deps.Clock == nil {
		deps.Clock = clockwork.NewRealClock()
	}
	if deps.Sleep == nil {
		deps.Sleep = retry.ClockSleep(deps.Clock)
	}
	if options.PollInterval <= 0 {
		options.PollInterval = DefaultPollInterval
	}
	if options.MaxPolls <= 0 {
		options.MaxPolls = DefaultMaxPolls
	}
	options.Retry.Sleep = deps.Sleep

	return &Orchestrator{
		deps:    deps,
		options: options,
		tracer:  otel.Tracer("osintscan/orchestrator"),
	}
}

// run carries the state of one orchestration.
type run struct {
	job       *domain.ScanJob
	startedAt time.Time
	polls     int
	findings  int
}

// Run drives the job to a terminal state. It returns an error matching
// serrors.ErrNotFound when the job does not exist and serrors.ErrConflict when
// it is not pending. A job that ends failed is a normal outcome and returns
// nil; an error is only returned when the terminal state could not be saved.
func (o *Orchestrator) Run(ctx context.Context, id domain.ScanJobID) (err error) {
	ctx = logger.WithFields(ctx, zap.Stringer("scan_job_id", id))
	ctx, span := o.tracer.Start(ctx, "orchestrator.Run", trace.WithAttributes(
		attribute.String("scan_job.id", id.String())))
	defer span.End()

	job, err := o.deps.Jobs.ScanJobByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not load scan job: %w", err)
	}
	if job == nil {
		return serrors.With(serrors.ErrNotFound, "scan job %s not found", id)
	}
	if job.Status != domain.ScanJobStatusPending {
		return serrors.With(serrors.ErrConflict, "scan job %s is already %s", id, job.Status)
	}

	r := &run{job: job, startedAt: o.deps.Clock.Now().UTC()}
	if err := o.deps.Jobs.MarkScanJobRunning(ctx, id, r.startedAt); err != nil {
		return fmt.Errorf("could not mark scan job running: %w", err)
	}
	logger.Info(ctx, "scan job started", zap.String("target_type", string(job.TargetType)))

	defer func() {
		if p := recover(); p != nil {
			logger.Error(ctx, "recovered from panic while orchestrating", zap.Any("panic", p))
			err = o.fail(ctx, span, r, fmt.Sprintf("%v", p))
		}
	}()

	o.publishRunning(ctx, r, "scan submitted")

	externalID, err := retry.Do(ctx, func(ctx context.Context) (string, error) {
		return o.deps.Engine.StartScan(ctx, engine.StartRequest{
			Target:     job.Target,
			TargetType: job.TargetType,
			Modules:    job.Modules,
		})
	}, o.retryOptions(ctx, "start_scan"))
	if err != nil {
		if ctx.Err() != nil {
			return o.fail(ctx, span, r, o.interruption(ctx, r, err))
		}

		return o.fail(ctx, span, r, err.Error())
	}
	if err := o.deps.Jobs.SetScanJobExternalID(ctx, id, externalID); err != nil {
		return o.fail(ctx, span, r, fmt.Sprintf("could not record engine scan id: %v", err))
	}
	ctx = logger.WithFields(ctx, zap.String("external_job_id", externalID))
	span.AddEvent("submitted", trace.WithAttributes(attribute.String("engine.scan_id", externalID)))

	return o.poll(ctx, span, r, externalID)
}

// poll queries the engine until it reports a terminal state or the budget is
// spent.
func (o *Orchestrator) poll(ctx context.Context, span trace.Span, r *run, externalID string) error {
	for r.polls < o.options.MaxPolls {
		if err := o.deps.Sleep(ctx, o.options.PollInterval); err != nil {
			return o.fail(ctx, span, r, o.interruption(ctx, r, err))
		}
		r.polls++

		status, err := retry.Do(ctx, func(ctx context.Context) (engine.Status, error) {
			return o.deps.Engine.ScanStatus(ctx, externalID)
		}, o.retryOptions(ctx, "scan_status"))
		if err != nil {
			if ctx.Err() != nil {
				return o.fail(ctx, span, r, o.interruption(ctx, r, ctx.Err()))
			}
			if !retry.IsRetryable(err) {
				metrics.EnginePolls.WithLabelValues("failed").Inc()

				return o.fail(ctx, span, r, err.Error())
			}

			metrics.EnginePolls.WithLabelValues("transient").Inc()
			logger.Warn(ctx, "could not query scan status, will poll again", zap.Int("poll", r.polls), zap.Error(err))
			o.publishRunning(ctx, r, "")

			continue
		}

		metrics.EnginePolls.WithLabelValues("ok").Inc()
		r.findings = max(r.findings, status.Total)
		logger.Debug(ctx, "scan status",
			zap.Int("poll", r.polls),
			zap.String("state", string(status.State)),
			zap.Int("total", status.Total))

		switch {
		case status.State.IsFailure():
			return o.fail(ctx, span, r, fmt.Sprintf("engine reported scan failure: %s", status.State))
		case status.State.IsFinished():
			results, err := retry.Do(ctx, func(ctx context.Context) ([]domain.RawResult, error) {
				return o.deps.Engine.ScanResults(ctx, externalID)
			}, o.retryOptions(ctx, "scan_results"))
			if err != nil {
				if ctx.Err() != nil {
					return o.fail(ctx, span, r, o.interruption(ctx, r, ctx.Err()))
				}
				if !retry.IsRetryable(err) {
					return o.fail(ctx, span, r, fmt.Sprintf("could not fetch scan results: %v", err))
				}

				logger.Warn(ctx, "could not fetch scan results, will poll again", zap.Error(err))
				o.publishRunning(ctx, r, "")

				continue
			}

			return o.complete(ctx, span, r, results)
		default:
			o.publishRunning(ctx, r, string(status.State))
		}
	}

	return o.fail(ctx, span, r,
		fmt.Sprintf("scan timeout: engine did not finish within %s (%d polls)", o.options.Budget(), o.options.MaxPolls))
}

func (o *Orchestrator) complete(ctx context.Context, span trace.Span, r *run, results []domain.RawResult) error {
	if results == nil {
		results = []domain.RawResult{}
	}
	correlations := o.deps.Extractor.Extract(results)

	ctx = context.WithoutCancel(ctx)
	completedAt := o.deps.Clock.Now().UTC()
	err := o.deps.Jobs.CompleteScanJob(ctx, r.job.ID, storage.ScanJobCompletion{
		RawResults:   results,
		Correlations: correlations,
		CompletedAt:  completedAt,
	})
	if err != nil {
		logger.Error(ctx, "could not save scan results", zap.Error(err))

		return o.fail(ctx, span, r, fmt.Sprintf("could not save scan results: %v", err))
	}

	o.observe("completed", r, completedAt)
	span.SetAttributes(attribute.Int("scan.results", len(results)), attribute.Int("scan.correlations", len(correlations)))
	o.deps.Progress.Publish(ctx, r.job.ID, progress.Event{
		Status:         progress.StatusCompleted,
		CompletedUnits: o.options.MaxPolls,
		TotalUnits:     o.options.MaxPolls,
		TotalFindings:  len(results),
		Message:        fmt.Sprintf("found %d results and %d correlations", len(results), len(correlations)),
		At:             completedAt,
	})
	logger.Info(ctx, "scan job completed",
		zap.Int("results", len(results)),
		zap.Int("correlations", len(correlations)),
		zap.Int("polls", r.polls))
	if logger.IsDebug(ctx) {
		for typ, group := range correlation.GroupByType(results) {
			logger.Debug(ctx, "scan results by type", zap.String("type", typ), zap.Int("count", len(group)))
		}
	}

	return nil
}

// fail persists the failure and broadcasts it. The write is detached from
// ctx so that a cancelled job is still recorded as failed.
func (o *Orchestrator) fail(ctx context.Context, span trace.Span, r *run, cause string) error {
	ctx = context.WithoutCancel(ctx)
	completedAt := o.deps.Clock.Now().UTC()

	span.SetStatus(codes.Error, cause)
	if err := o.deps.Jobs.FailScanJob(ctx, r.job.ID, cause, completedAt); err != nil {
		logger.Error(ctx, "could not mark scan job failed", zap.String("cause", cause), zap.Error(err))

		return fmt.Errorf("could not mark scan job failed: %w", err)
	}

	o.observe("failed", r, completedAt)
	o.deps.Progress.Publish(ctx, r.job.ID, progress.Event{
		Status:         progress.StatusError,
		CompletedUnits: r.polls,
		TotalUnits:     o.options.MaxPolls,
		TotalFindings:  r.findings,
		Message:        cause,
		At:             completedAt,
	})
	logger.Warn(ctx, "scan job failed", zap.String("cause", cause), zap.Int("polls", r.polls))

	return nil
}

// interruption is the failure cause of a run whose context ended. The worker
// deadline bounds retried polls as well, so reaching it is a timeout.
func (o *Orchestrator) interruption(ctx context.Context, r *run, err error) string {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return fmt.Sprintf("scan timeout: job deadline exceeded after %d polls", r.polls)
	}

	return fmt.Sprintf("scan interrupted: %v", err)
}

func (o *Orchestrator) publishRunning(ctx context.Context, r *run, message string) {
	o.deps.Progress.Publish(ctx, r.job.ID, progress.Event{
		Status:         progress.StatusRunning,
		CompletedUnits: r.polls,
		TotalUnits:     o.options.MaxPolls,
		TotalFindings:  r.findings,
		Message:        message,
		CurrentUnits:   r.job.Modules,
		At:             o.deps.Clock.Now().UTC(),
	})
}

func (o *Orchestrator) observe(outcome string, r *run, at time.Time) {
	metrics.ScanJobs.WithLabelValues(outcome).Inc()
	metrics.ScanDuration.WithLabelValues(outcome).Observe(at.Sub(r.startedAt).Seconds())
}

func (o *Orchestrator) retryOptions(ctx context.Context, operation string) retry.Options {
	opts := o.options.Retry
	opts.OnRetry = func(attempt int, err error) {
		metrics.EngineRetries.WithLabelValues(operation).Inc()
		logger.Warn(ctx, "engine call failed, retrying",
			zap.String("operation", operation),
			zap.Int("attempt", attempt),
			zap.Error(err))
	}

	return opts
}
