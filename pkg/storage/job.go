package storage

import (
	"context"

	"github.com/riverqueue/river"
)

// JobStorage enqueues background jobs in the queue that lives next to the
// application tables, so a job inserted inside a transaction only becomes
// visible to workers once that transaction commits.
//
// Example:
//
//	added, err := tx.AddJob(ctx, scanjob.JobArgs{ScanJobID: id}, nil)
type JobStorage interface {
	// AddJob enqueues a new job with the given arguments. It returns false when
	// the queue skipped the insert as a duplicate of a unique job.
	AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error)
}
