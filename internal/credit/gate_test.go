package credit_test

import (
	"context"
	"errors"
	"osintscan/internal/credit"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/serrors"
	mockstorage "osintscan/pkg/storage/mock"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	m.Run()
}

func newGate() *credit.Gate {
	return credit.New(credit.Options{ScanCost: 10, Reason: "spiderfoot_scan"})
}

func TestGate_DebitScan_Charged(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockstorage.NewMockAllStorage(ctrl)
	accountID := domain.AccountID(uuid.New())

	ledger.EXPECT().DebitCredits(gomock.Any(), accountID, int64(10), "spiderfoot_scan", map[string]any{
		"target":     "alice@example.com",
		"targetType": "email",
	}).Return(true, nil)

	err := newGate().DebitScan(context.Background(), ledger, accountID, "alice@example.com", domain.TargetTypeEmail)
	require.NoError(t, err)
}

func TestGate_DebitScan_Insufficient(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockstorage.NewMockAllStorage(ctrl)
	accountID := domain.AccountID(uuid.New())

	ledger.EXPECT().DebitCredits(gomock.Any(), accountID, int64(10), gomock.Any(), gomock.Any()).Return(false, nil)
	ledger.EXPECT().CreditBalance(gomock.Any(), accountID).Return(int64(5), nil)

	err := newGate().DebitScan(context.Background(), ledger, accountID, "example.com", domain.TargetTypeDomain)
	require.ErrorIs(t, err, serrors.ErrPaymentRequired)

	var insufficient *credit.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(10), insufficient.Required)
	require.Equal(t, int64(5), insufficient.Available)
}

func TestGate_DebitScan_InsufficientBalanceUnknown(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockstorage.NewMockAllStorage(ctrl)

	ledger.EXPECT().DebitCredits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
	ledger.EXPECT().CreditBalance(gomock.Any(), gomock.Any()).Return(int64(0), errors.New("conn reset"))

	err := newGate().DebitScan(context.Background(), ledger, domain.AccountID(uuid.New()), "x", domain.TargetTypeUsername)

	var insufficient *credit.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(-1), insufficient.Available)
}

func TestGate_DebitScan_FailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	ledger := mockstorage.NewMockAllStorage(ctrl)
	cause := errors.New("dial tcp: connection refused")

	ledger.EXPECT().DebitCredits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(false, cause)

	err := newGate().DebitScan(context.Background(), ledger, domain.AccountID(uuid.New()), "1.1.1.1", domain.TargetTypeIP)
	require.ErrorIs(t, err, serrors.ErrUnavailable)
	require.ErrorIs(t, err, cause)
	require.NotErrorIs(t, err, serrors.ErrPaymentRequired)
}
