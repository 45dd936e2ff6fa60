// Package progress broadcasts live scan progress to observers. Publishing is
// fire-and-forget: a slow or absent observer never blocks the publisher, and
// the persisted scan job remains the source of truth.
package progress

import (
	"context"
	"osintscan/pkg/domain"
	"time"
)

// Status is the coarse state carried by an event.
type Status string

const (
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// IsTerminal reports whether no further events follow an event with this status.
func (s Status) IsTerminal() bool { return s == StatusCompleted || s == StatusError }

// Event is a progress notification for one scan job.
type Event struct {
	JobID  domain.ScanJobID `json:"jobId"`
	Status Status           `json:"status"`
	// CompletedUnits counts finished units of work, e.g. status polls.
	CompletedUnits int `json:"completedProviders"`
	// TotalUnits is the number of units the job may take.
	TotalUnits int `json:"totalProviders"`
	// TotalFindings is the number of records produced so far.
	TotalFindings int       `json:"totalFindings"`
	Message       string    `json:"message,omitempty"`
	CurrentUnits  []string  `json:"currentProviders,omitempty"`
	At            time.Time `json:"at"`
}

// Topic returns the broadcast topic of a job.
func Topic(jobID domain.ScanJobID) string {
	return "progress_" + jobID.String()
}

// Publisher emits progress events.
//
//go:generate mockgen -package mockprogress -source=progress.go -destination=mock/mockprogress.go *
type Publisher interface {
	// Publish delivers ev to the current subscribers of the job. It never
	// blocks on subscribers and never fails the caller.
	Publish(ctx context.Context, jobID domain.ScanJobID, ev Event)
}

// Subscriber gives read-only access to a job's events.
type Subscriber interface {
	// Subscribe returns a channel receiving the job's events until ctx is
	// done, at which point the channel is closed.
	Subscribe(ctx context.Context, jobID domain.ScanJobID) (<-chan Event, error)
}

// Snapshot synthesizes the terminal event of a job that has already ended.
// It returns false for jobs that are still pending or running.
func Snapshot(job *domain.ScanJob, totalUnits int) (Event, bool) {
	if job == nil || !job.Status.IsTerminal() {
		return Event{}, false
	}

	ev := Event{
		JobID:          job.ID,
		CompletedUnits: totalUnits,
		TotalUnits:     totalUnits,
		TotalFindings:  job.TotalEvents,
		At:             job.CompletedAt,
	}
	if job.Status == domain.ScanJobStatusCompleted {
		ev.Status = StatusCompleted
	} else {
		ev.Status = StatusError
		ev.Message = job.Error
	}

	return ev, true
}
