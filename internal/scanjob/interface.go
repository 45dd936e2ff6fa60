// Package scanjob accepts scan requests from account members: it validates
// and normalizes the target, charges the account and records the job, and
// hands it to the background orchestrator.
package scanjob

import (
	"context"
	"osintscan/pkg/domain"
)

// CreateRequest describes a scan requested by a user on behalf of an account.
type CreateRequest struct {
	AccountID  domain.AccountID
	UserID     domain.UserID
	Target     string
	TargetType domain.TargetType
	Modules    []string
}

//go:generate mockgen -package mockscanjob -source=interface.go -destination=mock/mockscanjob.go *
type Service interface {
	// Create charges the account and records a pending job. Nothing is
	// recorded or charged when it returns an error.
	Create(ctx context.Context, req CreateRequest) (*domain.ScanJob, error)
	// Get returns a job the user can see.
	Get(ctx context.Context, userID domain.UserID, id domain.ScanJobID) (*domain.ScanJob, error)
	// List returns a page of an account's jobs and the cursor of the next page.
	List(ctx context.Context,
		userID domain.UserID,
		accountID domain.AccountID,
		status domain.ScanJobStatus,
		cursor string,
		limit uint) ([]domain.ScanJob, string, error)
	// Balance returns the credit balance of an account.
	Balance(ctx context.Context, userID domain.UserID, accountID domain.AccountID) (int64, error)
}
