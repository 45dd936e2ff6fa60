package storage

import (
	"context"
	"osintscan/pkg/domain"
	"time"
)

// ScanJobCompletion carries the fields written when a job completes.
type ScanJobCompletion struct {
	RawResults   []domain.RawResult
	Correlations []domain.Correlation
	CompletedAt  time.Time
}

// ScanJobPage groups a page of scan jobs together with an optional NextCursor
// used for pagination.
type ScanJobPage struct {
	// Jobs contains the current page of scan jobs.
	Jobs []domain.ScanJob
	// NextCursor points to the last job of the page and is used as the cursor
	// for fetching the next page. It is nil when there is no next page.
	NextCursor *ScanJobCursor
}

// ScanJobCursor is a position in the created_at DESC, id DESC listing order.
// Jobs sharing CreatedAt are told apart by ID.
type ScanJobCursor struct {
	CreatedAt time.Time
	ID        domain.ScanJobID
}

// ScanJobStorage persists scan jobs. Every status change is a guarded update
// that only applies when the row is in the expected state; an update that
// matches no row returns an error matching serrors.ErrConflict.
type ScanJobStorage interface {
	// StoreScanJob inserts a new job and returns it with generated fields set.
	StoreScanJob(ctx context.Context, job domain.ScanJob) (*domain.ScanJob, error)
	// ScanJobByID returns the job with the given ID, or nil when it does not exist.
	ScanJobByID(ctx context.Context, id domain.ScanJobID) (*domain.ScanJob, error)
	// AccountScanJobs returns a page of an account's jobs positioned after the
	// optional cursor, newest first. A non-empty status filters the results.
	AccountScanJobs(ctx context.Context,
		accountID domain.AccountID,
		status domain.ScanJobStatus,
		cursor *ScanJobCursor,
		limit uint) (ScanJobPage, error)
	// MarkScanJobRunning moves a pending job to running and records startedAt.
	MarkScanJobRunning(ctx context.Context, id domain.ScanJobID, startedAt time.Time) error
	// SetScanJobExternalID records the engine identifier of a running job. It
	// can only be set once.
	SetScanJobExternalID(ctx context.Context, id domain.ScanJobID, externalID string) error
	// CompleteScanJob moves a running job to completed with its results.
	CompleteScanJob(ctx context.Context, id domain.ScanJobID, completion ScanJobCompletion) error
	// FailScanJob moves a pending or running job to failed with the given cause.
	FailScanJob(ctx context.Context, id domain.ScanJobID, cause string, completedAt time.Time) error
	// FailStaleScanJobs fails every job that has been running since before
	// startedBefore and returns the IDs of the jobs it changed.
	FailStaleScanJobs(ctx context.Context,
		startedBefore time.Time,
		cause string,
		completedAt time.Time) ([]domain.ScanJobID, error)
}
