package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	accountsTable       = "accounts"
	accountMembersTable = "account_members"
)

// debitQuery subtracts the amount only when the balance covers it and writes
// the ledger entry in the same statement, so concurrent debits can never
// overdraw an account.
const debitQuery = `WITH debited AS (
	UPDATE accounts
	SET balance = balance - $2, updated_at = CURRENT_TIMESTAMP
	WHERE id = $1 AND balance >= $2
	RETURNING id
)
INSERT INTO credit_ledger (account_id, amount, reason, meta)
SELECT id, -$2::BIGINT, $3, $4::JSONB FROM debited
RETURNING id`

// DebitCredits atomically debits an account and records the ledger entry.
func (p *PgSQL) DebitCredits(ctx context.Context,
	accountID domain.AccountID,
	amount int64,
	reason string,
	meta map[string]any) (bool, error) {
	if amount <= 0 {
		return false, serrors.With(serrors.ErrBadRequest, "debit amount must be positive")
	}
	if meta == nil {
		meta = map[string]any{}
	}
	rawMeta, err := json.Marshal(meta)
	if err != nil {
		return false, fmt.Errorf("could not marshal ledger meta: %w", err)
	}

	var ledgerID int64
	err = p.DB.QueryRowContext(ctx, debitQuery, uuid.UUID(accountID), amount, reason, string(rawMeta)).Scan(&ledgerID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("could not debit credits in pg: %w", err)
	}

	return true, nil
}

// CreditBalance returns the balance of an account.
func (p *PgSQL) CreditBalance(ctx context.Context, accountID domain.AccountID) (int64, error) {
	var balance int64
	found, err := p.Builder.From(accountsTable).
		Select("balance").
		Where(goqu.I("id").Eq(uuid.UUID(accountID))).
		Executor().ScanValContext(ctx, &balance)
	if err != nil {
		return 0, fmt.Errorf("could not fetch credit balance: %w", err)
	}
	if !found {
		return 0, serrors.With(serrors.ErrNotFound, "account %s not found", accountID)
	}

	return balance, nil
}

// IsAccountMember reports whether the user is a member of the account.
func (p *PgSQL) IsAccountMember(ctx context.Context, accountID domain.AccountID, userID domain.UserID) (bool, error) {
	n, err := p.Builder.From(accountMembersTable).
		Where(
			goqu.I("account_id").Eq(uuid.UUID(accountID)),
			goqu.I("user_id").Eq(uuid.UUID(userID)),
		).
		CountContext(ctx)
	if err != nil {
		return false, fmt.Errorf("could not check account membership: %w", err)
	}

	return n > 0, nil
}
