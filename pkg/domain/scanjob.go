package domain

import (
	"time"

	"github.com/google/uuid"
)

// ScanJobID uniquely identifies a scan job.
type ScanJobID uuid.UUID

// String returns the canonical textual form of the ID.
func (id ScanJobID) String() string { return uuid.UUID(id).String() }

// MarshalText encodes the ID in its canonical textual form.
func (id ScanJobID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText decodes an ID from its textual form.
func (id *ScanJobID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

// TargetType names the kind of identifier being enumerated.
type TargetType string

const (
	TargetTypeEmail    TargetType = "email"
	TargetTypeDomain   TargetType = "domain"
	TargetTypeUsername TargetType = "username"
	TargetTypePhone    TargetType = "phone"
	TargetTypeIP       TargetType = "ip"
)

// Valid reports whether t is one of the supported target types.
func (t TargetType) Valid() bool {
	switch t {
	case TargetTypeEmail, TargetTypeDomain, TargetTypeUsername, TargetTypePhone, TargetTypeIP:
		return true
	default:
		return false
	}
}

// ScanJobStatus is the lifecycle state of a scan job. The states form a total
// order: pending, running, then exactly one of completed or failed.
type ScanJobStatus string

const (
	// ScanJobStatusPending indicates the job was created and charged but has not started.
	ScanJobStatusPending ScanJobStatus = "pending"
	// ScanJobStatusRunning indicates an orchestrator owns the job and the engine is working.
	ScanJobStatusRunning ScanJobStatus = "running"
	// ScanJobStatusCompleted indicates results and correlations are available.
	ScanJobStatusCompleted ScanJobStatus = "completed"
	// ScanJobStatusFailed indicates the job ended with an error; see ScanJob.Error.
	ScanJobStatusFailed ScanJobStatus = "failed"
)

// IsTerminal reports whether no further transitions are possible.
func (s ScanJobStatus) IsTerminal() bool {
	return s == ScanJobStatusCompleted || s == ScanJobStatusFailed
}

// CanTransitionTo reports whether moving from s to next respects the
// monotonic lifecycle.
func (s ScanJobStatus) CanTransitionTo(next ScanJobStatus) bool {
	switch s {
	case ScanJobStatusPending:
		return next == ScanJobStatusRunning || next == ScanJobStatusFailed
	case ScanJobStatusRunning:
		return next == ScanJobStatusCompleted || next == ScanJobStatusFailed
	default:
		return false
	}
}

// Valid reports whether s is a known status.
func (s ScanJobStatus) Valid() bool {
	switch s {
	case ScanJobStatusPending, ScanJobStatusRunning, ScanJobStatusCompleted, ScanJobStatusFailed:
		return true
	default:
		return false
	}
}

// ScanJob is one enumeration request submitted to the external engine on
// behalf of an account.
type ScanJob struct {
	// ID is generated by storage at creation and never changes.
	ID ScanJobID `json:"id"`
	// AccountID is the account that was charged for the job.
	AccountID AccountID `json:"accountId"`
	// UserID is the member who requested the job.
	UserID UserID `json:"userId"`

	// Target is the normalized identifier being enumerated.
	Target string `json:"target"`
	// TargetType describes what Target is.
	TargetType TargetType `json:"targetType"`
	// Modules lists the engine modules to run; empty means the engine default.
	Modules []string `json:"modules"`

	// Status is the current lifecycle state.
	Status ScanJobStatus `json:"status"`
	// ExternalJobID is the engine's identifier, set once after submission.
	ExternalJobID string `json:"externalJobId,omitempty"`

	// RawResults holds the engine records, written once when the job ends.
	RawResults []RawResult `json:"rawResults"`
	// Correlations holds the derived links, written once on completion.
	Correlations []Correlation `json:"correlations"`
	// TotalEvents is the number of raw results persisted at completion.
	TotalEvents int `json:"totalEvents"`
	// CreditsCharged is the fixed cost debited before the job was created.
	CreditsCharged int64 `json:"creditsCharged"`

	// Error is the failure cause; only set when Status is failed.
	Error string `json:"error,omitempty"`

	CreatedAt   time.Time `json:"createdAt"`
	StartedAt   time.Time `json:"startedAt,omitzero"`
	CompletedAt time.Time `json:"completedAt,omitzero"`
}
