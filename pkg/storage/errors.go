package storage

import (
	"errors"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"
)

// Common errors returned by storage implementations.
var (
	// ErrAlreadyInTx is returned when an operation requiring a non-transactional
	// context is attempted while already inside a transaction.
	ErrAlreadyInTx = errors.New("already in tx")
	// ErrNotInTx is returned when a transaction-specific operation is attempted
	// while not currently inside a transaction.
	ErrNotInTx = errors.New("not in tx")
)

// TransitionRejected builds the error returned when a guarded status update
// matched no row.
func TransitionRejected(id domain.ScanJobID, to domain.ScanJobStatus) error {
	return serrors.With(serrors.ErrConflict, "scan job %s cannot move to %s", id, to)
}
