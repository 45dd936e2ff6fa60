package storage

import (
	"context"
	"osintscan/pkg/domain"
)

// CreditStorage exposes the account credit ledger.
type CreditStorage interface {
	// DebitCredits atomically subtracts amount from the account balance and
	// records a ledger entry. It returns false, without changing anything, when
	// the balance is lower than amount.
	DebitCredits(ctx context.Context,
		accountID domain.AccountID,
		amount int64,
		reason string,
		meta map[string]any) (bool, error)
	// CreditBalance returns the current balance of an account. It returns an
	// error matching serrors.ErrNotFound when the account does not exist.
	CreditBalance(ctx context.Context, accountID domain.AccountID) (int64, error)
}

// AccountStorage answers questions about account membership.
type AccountStorage interface {
	// IsAccountMember reports whether the user belongs to the account.
	IsAccountMember(ctx context.Context, accountID domain.AccountID, userID domain.UserID) (bool, error)
}
