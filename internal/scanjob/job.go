package scanjob

import (
	"github.com/google/uuid"
	"github.com/riverqueue/river"
)

// JobArgs are the arguments of the background task orchestrating one scan job.
type JobArgs struct {
	// ScanJobID is marked unique so a job is never queued twice.
	ScanJobID uuid.UUID `json:"scanJobId" river:"unique"`

	// maxAttempts configures how often River retries a task that could not start.
	maxAttempts int
}

// NewJobArgs returns the task arguments for a scan job.
func NewJobArgs(id uuid.UUID, maxAttempts int) JobArgs {
	return JobArgs{ScanJobID: id, maxAttempts: maxAttempts}
}

// Kind returns the River job kind used to register and dispatch the orchestrator worker.
func (args JobArgs) Kind() string { return "OrchestrateScanJob" }

// InsertOpts returns the River options used when the task is enqueued.
func (args JobArgs) InsertOpts() river.InsertOpts {
	return river.InsertOpts{
		MaxAttempts: args.maxAttempts,
		UniqueOpts: river.UniqueOpts{
			ByArgs: true,
		},
	}
}
