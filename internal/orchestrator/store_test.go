package orchestrator_test

import (
	"context"
	"osintscan/pkg/domain"
	"osintscan/pkg/progress"
	"osintscan/pkg/storage"
	"sync"
	"time"
)

// memoryJobs is an in-memory storage.ScanJobStorage enforcing the same
// guarded transitions as the Postgres implementation.
type memoryJobs struct {
	mu   sync.Mutex
	jobs map[domain.ScanJobID]domain.ScanJob
}

func newMemoryJobs(jobs ...domain.ScanJob) *memoryJobs {
	m := &memoryJobs{jobs: make(map[domain.ScanJobID]domain.ScanJob)}
	for _, j := range jobs {
		m.jobs[j.ID] = j
	}

	return m
}

func (m *memoryJobs) get(id domain.ScanJobID) domain.ScanJob {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.jobs[id]
}

func (m *memoryJobs) StoreScanJob(_ context.Context, job domain.ScanJob) (*domain.ScanJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.jobs[job.ID] = job

	return &job, nil
}

func (m *memoryJobs) ScanJobByID(_ context.Context, id domain.ScanJobID) (*domain.ScanJob, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok {
		return nil, nil
	}

	return &job, nil
}

func (m *memoryJobs) AccountScanJobs(context.Context,
	domain.AccountID,
	domain.ScanJobStatus,
	*storage.ScanJobCursor,
	uint) (storage.ScanJobPage, error) {
	return storage.ScanJobPage{}, nil
}

func (m *memoryJobs) update(id domain.ScanJobID,
	to domain.ScanJobStatus,
	fn func(job *domain.ScanJob) bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	job, ok := m.jobs[id]
	if !ok || !fn(&job) {
		return storage.TransitionRejected(id, to)
	}
	m.jobs[id] = job

	return nil
}

func (m *memoryJobs) MarkScanJobRunning(_ context.Context, id domain.ScanJobID, startedAt time.Time) error {
	return m.update(id, domain.ScanJobStatusRunning, func(job *domain.ScanJob) bool {
		if job.Status != domain.ScanJobStatusPending {
			return false
		}
		job.Status = domain.ScanJobStatusRunning
		job.StartedAt = startedAt

		return true
	})
}

func (m *memoryJobs) SetScanJobExternalID(_ context.Context, id domain.ScanJobID, externalID string) error {
	return m.update(id, domain.ScanJobStatusRunning, func(job *domain.ScanJob) bool {
		if job.Status != domain.ScanJobStatusRunning || job.ExternalJobID != "" {
			return false
		}
		job.ExternalJobID = externalID

		return true
	})
}

func (m *memoryJobs) CompleteScanJob(_ context.Context, id domain.ScanJobID, c storage.ScanJobCompletion) error {
	return m.update(id, domain.ScanJobStatusCompleted, func(job *domain.ScanJob) bool {
		if job.Status != domain.ScanJobStatusRunning {
			return false
		}
		job.Status = domain.ScanJobStatusCompleted
		job.RawResults = c.RawResults
		job.Correlations = c.Correlations
		job.TotalEvents = len(c.RawResults)
		job.CompletedAt = c.CompletedAt

		return true
	})
}

func (m *memoryJobs) FailScanJob(ctx context.Context, id domain.ScanJobID, cause string, completedAt time.Time) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	return m.update(id, domain.ScanJobStatusFailed, func(job *domain.ScanJob) bool {
		if job.Status.IsTerminal() {
			return false
		}
		job.Status = domain.ScanJobStatusFailed
		job.Error = cause
		job.CompletedAt = completedAt

		return true
	})
}

func (m *memoryJobs) FailStaleScanJobs(context.Context, time.Time, string, time.Time) ([]domain.ScanJobID, error) {
	return nil, nil
}

var _ storage.ScanJobStorage = (*memoryJobs)(nil)

// recorder collects published events.
type recorder struct {
	mu     sync.Mutex
	events []progress.Event
}

func (r *recorder) Publish(_ context.Context, jobID domain.ScanJobID, ev progress.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	ev.JobID = jobID
	r.events = append(r.events, ev)
}

func (r *recorder) all() []progress.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]progress.Event(nil), r.events...)
}

func (r *recorder) terminal() []progress.Event {
	var out []progress.Event
	for _, ev := range r.all() {
		if ev.Status.IsTerminal() {
			out = append(out, ev)
		}
	}

	return out
}

// sleeps records requested waits without blocking.
type sleeps struct {
	mu    sync.Mutex
	waits []time.Duration
}

func (s *sleeps) sleep(ctx context.Context, d time.Duration) error {
	s.mu.Lock()
	s.waits = append(s.waits, d)
	s.mu.Unlock()

	return ctx.Err()
}

func (s *sleeps) all() []time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()

	return append([]time.Duration(nil), s.waits...)
}
