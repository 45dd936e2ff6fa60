// Package engine defines the contract with the external enumeration engine:
// submitting a scan, polling its status and fetching its raw results.
package engine

import (
	"context"
	"osintscan/pkg/domain"
	"strings"
)

// State is the engine's own status string for a scan.
type State string

const (
	StateFinished    State = "FINISHED"
	StateErrorFailed State = "ERROR-FAILED"
	StateAborted     State = "ABORTED"
)

// IsFinished reports whether the scan completed successfully.
func (s State) IsFinished() bool { return strings.EqualFold(string(s), string(StateFinished)) }

// IsFailure reports whether the engine gave up on the scan.
func (s State) IsFailure() bool {
	return strings.EqualFold(string(s), string(StateErrorFailed)) ||
		strings.EqualFold(string(s), string(StateAborted))
}

// IsTerminal reports whether the engine will not change the state again.
func (s State) IsTerminal() bool { return s.IsFinished() || s.IsFailure() }

// StartRequest describes a scan to submit.
type StartRequest struct {
	// Name is a label for the scan shown in the engine's own UI.
	Name string
	// Target is the normalized identifier to enumerate.
	Target string
	// TargetType tells the engine how to interpret Target.
	TargetType domain.TargetType
	// Modules restricts the engine modules; empty runs the engine default set.
	Modules []string
}

// Status is a snapshot of a running scan.
type Status struct {
	State State
	// Total is the number of events the engine has produced so far.
	Total int
}

// Client is the abstraction over the engine's HTTP API.
//
//go:generate mockgen -package mockengine -source=interface.go -destination=mock/mockengine.go *
type Client interface {
	// StartScan submits a scan and returns the engine's identifier for it.
	StartScan(ctx context.Context, req StartRequest) (string, error)
	// ScanStatus returns the current state of a submitted scan.
	ScanStatus(ctx context.Context, externalID string) (Status, error)
	// ScanResults returns every record the scan produced.
	ScanResults(ctx context.Context, externalID string) ([]domain.RawResult, error)
}
