package postgres_test

import (
	"context"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"
	"osintscan/pkg/storage"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

func TestPgSQL_DebitCredits(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	accountID := seedAccount(t, pg, 25)

	ok, err := pg.DebitCredits(ctx, accountID, 10, "spiderfoot_scan", map[string]any{
		"target":     "example.com",
		"targetType": "domain",
	})
	require.NoError(t, err)
	require.True(t, ok)

	balance, err := pg.CreditBalance(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(15), balance)

	ok, err = pg.DebitCredits(ctx, accountID, 10, "spiderfoot_scan", nil)
	require.NoError(t, err)
	require.True(t, ok)

	// 5 left, not enough for another scan
	ok, err = pg.DebitCredits(ctx, accountID, 10, "spiderfoot_scan", nil)
	require.NoError(t, err)
	require.False(t, ok)

	balance, err = pg.CreditBalance(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(5), balance)

	var entries int
	require.NoError(t, pg.DB.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM credit_ledger WHERE account_id = $1 AND amount = -10`,
		uuid.UUID(accountID)).Scan(&entries))
	require.Equal(t, 2, entries)

	_, err = pg.DebitCredits(ctx, accountID, 0, "spiderfoot_scan", nil)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestPgSQL_DebitCredits_ConcurrentNeverOverdraws(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	// room for exactly three debits
	accountID := seedAccount(t, pg, 35)

	var (
		wg        sync.WaitGroup
		succeeded atomic.Int64
	)
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ok, err := pg.DebitCredits(ctx, accountID, 10, "spiderfoot_scan", nil)
			if err == nil && ok {
				succeeded.Add(1)
			}
		}()
	}
	wg.Wait()

	require.Equal(t, int64(3), succeeded.Load())
	balance, err := pg.CreditBalance(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(5), balance)
}

func TestPgSQL_DebitCredits_RolledBackWithTx(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	accountID := seedAccount(t, pg, 10)

	err := pg.WithTx(ctx, func(tx storage.AllStorage) error {
		ok, err := tx.DebitCredits(ctx, accountID, 10, "spiderfoot_scan", nil)
		require.NoError(t, err)
		require.True(t, ok)

		return serrors.With(serrors.ErrInternal, "job insert failed")
	})
	require.Error(t, err)

	balance, err := pg.CreditBalance(ctx, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(10), balance, "a rolled back creation must not charge the account")
}

func TestPgSQL_CreditBalance_UnknownAccount(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)

	_, err := pg.CreditBalance(context.Background(), domain.AccountID(uuid.New()))
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestPgSQL_IsAccountMember(t *testing.T) {
	pg, cleanup := setupTestDB(t)
	t.Cleanup(cleanup)
	ctx := context.Background()

	member := domain.UserID(uuid.New())
	accountID := seedAccount(t, pg, 0, member)

	ok, err := pg.IsAccountMember(ctx, accountID, member)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = pg.IsAccountMember(ctx, accountID, domain.UserID(uuid.New()))
	require.NoError(t, err)
	require.False(t, ok)
}
