package scanjob_test

import (
	"context"
	"encoding/base64"
	"errors"
	"osintscan/internal/credit"
	"osintscan/internal/scanjob"
	"osintscan/pkg/domain"
	"osintscan/pkg/serrors"
	"osintscan/pkg/storage"
	mockstorage "osintscan/pkg/storage/mock"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	accountID = domain.AccountID(uuid.MustParse("7a4c4a4e-55b1-4d0e-9a53-2f1c37f2f6a1"))
	userID    = domain.UserID(uuid.MustParse("0c1e3f2a-6b7d-4c8e-9f10-a1b2c3d4e5f6"))
	jobID     = domain.ScanJobID(uuid.MustParse("3b9d8c7e-1f2a-4b3c-8d4e-5f6a7b8c9d0e"))
)

func newTestService(t *testing.T) (*gomock.Controller, *mockstorage.MockStorage, scanjob.Service) {
	t.Helper()

	ctrl := gomock.NewController(t)
	st := mockstorage.NewMockStorage(ctrl)
	gate := credit.New(credit.Options{ScanCost: 10, Reason: "spiderfoot_scan"})
	s := scanjob.New(st, gate, scanjob.Options{MaxAttempts: 3})

	return ctrl, st, s
}

// helper to wire Storage.WithTx to execute callback with a MockAllStorage.
func expectWithTx(
	t *testing.T,
	ctrl *gomock.Controller,
	m *mockstorage.MockStorage,
	fn func(tx *mockstorage.MockAllStorage)) {
	t.Helper()

	m.EXPECT().WithTx(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, cb func(storage.AllStorage) error) error {
			tx := mockstorage.NewMockAllStorage(ctrl)
			if fn != nil {
				fn(tx)
			}

			return cb(tx)
		},
	)
}

func createRequest() scanjob.CreateRequest {
	return scanjob.CreateRequest{
		AccountID:  accountID,
		UserID:     userID,
		Target:     " Example.COM. ",
		TargetType: domain.TargetTypeDomain,
		Modules:    []string{"sfp_dnsresolve", " ", "sfp_dnsresolve", "sfp_haveibeenpwned"},
	}
}

func TestService_Create(t *testing.T) {
	ctrl, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		gomock.InOrder(
			tx.EXPECT().DebitCredits(gomock.Any(), accountID, int64(10), "spiderfoot_scan", map[string]any{
				"target":     "example.com",
				"targetType": "domain",
			}).Return(true, nil),
			tx.EXPECT().StoreScanJob(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, job domain.ScanJob) (*domain.ScanJob, error) {
					require.Equal(t, "example.com", job.Target)
					require.Equal(t, domain.ScanJobStatusPending, job.Status)
					require.Equal(t, []string{"sfp_dnsresolve", "sfp_haveibeenpwned"}, job.Modules)
					require.Equal(t, int64(10), job.CreditsCharged)
					require.Equal(t, userID, job.UserID)

					job.ID = jobID
					job.CreatedAt = time.Now()

					return &job, nil
				},
			),
			tx.EXPECT().AddJob(gomock.Any(), scanjob.NewJobArgs(uuid.UUID(jobID), 3), gomock.Nil()).Return(true, nil),
		)
	})

	job, err := s.Create(context.Background(), createRequest())
	require.NoError(t, err)
	require.Equal(t, jobID, job.ID)
	require.Equal(t, domain.ScanJobStatusPending, job.Status)
}

func TestService_Create_Validation(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(req *scanjob.CreateRequest)
	}{
		{name: "missing account", mutate: func(req *scanjob.CreateRequest) { req.AccountID = domain.AccountID{} }},
		{name: "unknown target type", mutate: func(req *scanjob.CreateRequest) { req.TargetType = "bitcoin" }},
		{name: "empty target", mutate: func(req *scanjob.CreateRequest) { req.Target = "  " }},
		{name: "invalid ip", mutate: func(req *scanjob.CreateRequest) {
			req.TargetType = domain.TargetTypeIP
			req.Target = "not-an-ip"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, s := newTestService(t)

			req := createRequest()
			tc.mutate(&req)

			_, err := s.Create(context.Background(), req)
			require.ErrorIs(t, err, serrors.ErrBadRequest)
		})
	}
}

func TestService_Create_NotMember(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(false, nil)

	_, err := s.Create(context.Background(), createRequest())
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestService_Create_InsufficientCredits(t *testing.T) {
	ctrl, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().DebitCredits(gomock.Any(), accountID, int64(10), gomock.Any(), gomock.Any()).Return(false, nil)
		tx.EXPECT().CreditBalance(gomock.Any(), accountID).Return(int64(4), nil)
	})

	_, err := s.Create(context.Background(), createRequest())
	require.ErrorIs(t, err, serrors.ErrPaymentRequired)
	require.Equal(t, serrors.ErrPaymentRequired, serrors.KindOf(err))

	var insufficient *credit.InsufficientCreditsError
	require.ErrorAs(t, err, &insufficient)
	require.Equal(t, int64(10), insufficient.Required)
	require.Equal(t, int64(4), insufficient.Available)
}

func TestService_Create_LedgerUnavailable(t *testing.T) {
	ctrl, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().DebitCredits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(false, errors.New("connection reset by peer"))
	})

	_, err := s.Create(context.Background(), createRequest())
	require.ErrorIs(t, err, serrors.ErrUnavailable)
}

func TestService_Create_EnqueueFails(t *testing.T) {
	ctrl, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	expectWithTx(t, ctrl, st, func(tx *mockstorage.MockAllStorage) {
		tx.EXPECT().DebitCredits(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		tx.EXPECT().StoreScanJob(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, job domain.ScanJob) (*domain.ScanJob, error) {
				job.ID = jobID

				return &job, nil
			},
		)
		tx.EXPECT().AddJob(gomock.Any(), gomock.Any(), gomock.Nil()).Return(false, errors.New("queue down"))
	})

	job, err := s.Create(context.Background(), createRequest())
	require.Error(t, err)
	require.Nil(t, job)
	require.Contains(t, err.Error(), "queue down")
}

func TestService_Get(t *testing.T) {
	_, st, s := newTestService(t)

	stored := &domain.ScanJob{ID: jobID, AccountID: accountID, Status: domain.ScanJobStatusRunning}
	st.EXPECT().ScanJobByID(gomock.Any(), jobID).Return(stored, nil)
	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)

	job, err := s.Get(context.Background(), userID, jobID)
	require.NoError(t, err)
	require.Equal(t, stored, job)
}

func TestService_Get_NotFound(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().ScanJobByID(gomock.Any(), jobID).Return(nil, nil)

	_, err := s.Get(context.Background(), userID, jobID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestService_Get_OtherAccount(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().ScanJobByID(gomock.Any(), jobID).Return(&domain.ScanJob{ID: jobID, AccountID: accountID}, nil)
	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(false, nil)

	_, err := s.Get(context.Background(), userID, jobID)
	require.ErrorIs(t, err, serrors.ErrNotFound)
}

func TestService_List(t *testing.T) {
	_, st, s := newTestService(t)

	cursor := storage.ScanJobCursor{
		CreatedAt: time.Date(2025, 4, 2, 10, 30, 0, 123456000, time.UTC),
		ID:        domain.ScanJobID(uuid.New()),
	}
	next := storage.ScanJobCursor{CreatedAt: cursor.CreatedAt, ID: jobID}
	jobs := []domain.ScanJob{{ID: jobID, AccountID: accountID}}

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	st.EXPECT().AccountScanJobs(gomock.Any(), accountID, domain.ScanJobStatusCompleted, &cursor, uint(20)).
		Return(storage.ScanJobPage{Jobs: jobs, NextCursor: &next}, nil)

	got, nextCursor, err := s.List(context.Background(), userID, accountID,
		domain.ScanJobStatusCompleted, scanjob.EncodeCursor(cursor), 0)
	require.NoError(t, err)
	require.Equal(t, jobs, got)

	decoded, err := scanjob.DecodeCursor(nextCursor)
	require.NoError(t, err)
	require.Equal(t, next, decoded, "jobs sharing created_at are told apart by id")
}

func TestCursor_RoundTripKeepsNanosecondsAndID(t *testing.T) {
	c := storage.ScanJobCursor{
		CreatedAt: time.Date(2025, 4, 2, 10, 30, 0, 123456789, time.FixedZone("CET", 3600)),
		ID:        domain.ScanJobID(uuid.New()),
	}

	token := scanjob.EncodeCursor(c)
	require.NotContains(t, token, "/")
	require.NotContains(t, token, "+")

	got, err := scanjob.DecodeCursor(token)
	require.NoError(t, err)
	require.True(t, c.CreatedAt.Equal(got.CreatedAt))
	require.Equal(t, c.ID, got.ID)
}

func TestService_List_ClampsLimit(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	st.EXPECT().AccountScanJobs(gomock.Any(), accountID, domain.ScanJobStatus(""), (*storage.ScanJobCursor)(nil), uint(100)).
		Return(storage.ScanJobPage{}, nil)

	_, next, err := s.List(context.Background(), userID, accountID, "", "", 1000)
	require.NoError(t, err)
	require.Empty(t, next)
}

func TestService_List_BadInput(t *testing.T) {
	_, _, s := newTestService(t)

	_, _, err := s.List(context.Background(), userID, accountID, "", "yesterday", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	// a bare timestamp carries no job id
	bare := base64.RawURLEncoding.EncodeToString([]byte("2025-04-02T10:30:00Z"))
	_, _, err = s.List(context.Background(), userID, accountID, "", bare, 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)

	_, _, err = s.List(context.Background(), userID, accountID, "done", "", 10)
	require.ErrorIs(t, err, serrors.ErrBadRequest)
}

func TestService_List_NotMember(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(false, nil)

	_, _, err := s.List(context.Background(), userID, accountID, "", "", 10)
	require.ErrorIs(t, err, serrors.ErrForbidden)
}

func TestService_Balance(t *testing.T) {
	_, st, s := newTestService(t)

	st.EXPECT().IsAccountMember(gomock.Any(), accountID, userID).Return(true, nil)
	st.EXPECT().CreditBalance(gomock.Any(), accountID).Return(int64(90), nil)

	balance, err := s.Balance(context.Background(), userID, accountID)
	require.NoError(t, err)
	require.Equal(t, int64(90), balance)
}
