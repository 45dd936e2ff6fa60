package v1handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"osintscan/internal/api/handler/v1handler"
	"osintscan/internal/credit"
	"osintscan/internal/scanjob"
	mockscanjob "osintscan/internal/scanjob/mock"
	"osintscan/pkg/domain"
	"osintscan/pkg/progress"
	"osintscan/pkg/serrors"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testAPI struct {
	router   chi.Router
	scanJobs *mockscanjob.MockService
	bus      *progress.Bus
	userID   domain.UserID
	token    string
}

func newTestAPI(t *testing.T) *testAPI {
	t.Helper()

	ctrl := gomock.NewController(t)
	priv, pubPEM := newSigningKey(t)
	userID := uuid.New()
	now := time.Now()

	api := &testAPI{
		scanJobs: mockscanjob.NewMockService(ctrl),
		bus:      progress.NewBus(progress.DefaultBufferSize),
		userID:   domain.UserID(userID),
		token:    signToken(t, priv, userID.String(), now, now.Add(time.Hour)),
	}

	h := newHandlerWithHeartbeat(api, time.Hour)
	api.router = h.Routes(mustSecHandler(t, pubPEM))

	return api
}

func newHandlerWithHeartbeat(api *testAPI, heartbeat time.Duration) *v1handler.Handler {
	return v1handler.New(v1handler.Deps{
		ScanJobs: api.scanJobs,
		Progress: api.bus,
	}, v1handler.Options{
		RequestTimeout: 5 * time.Second,
		Heartbeat:      heartbeat,
		TotalUnits:     60,
	})
}

func (a *testAPI) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Authorization", "Bearer "+a.token)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)

	return rec
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())

	return v
}

func TestCreateScan_Accepted(t *testing.T) {
	api := newTestAPI(t)
	accountID := uuid.New()
	jobID := domain.ScanJobID(uuid.New())

	api.scanJobs.EXPECT().
		Create(gomock.Any(), scanjob.CreateRequest{
			AccountID:  domain.AccountID(accountID),
			UserID:     api.userID,
			Target:     "Alice@Example.com",
			TargetType: domain.TargetTypeEmail,
			Modules:    []string{"sfp_haveibeenpwned"},
		}).
		Return(&domain.ScanJob{ID: jobID, Status: domain.ScanJobStatusPending}, nil)

	rec := api.do(t, http.MethodPost, "/scans", fmt.Sprintf(
		`{"target":"Alice@Example.com","targetType":"email","modules":["sfp_haveibeenpwned"],"accountId":%q}`, accountID))

	require.Equal(t, http.StatusAccepted, rec.Code)
	res := decodeBody[v1handler.CreateScanResponse](t, rec)
	require.Equal(t, jobID, res.JobID)
	require.Equal(t, domain.ScanJobStatusPending, res.Status)
}

func TestCreateScan_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
		code   string
	}{
		{
			name:   "malformed body",
			body:   `{"target":`,
			status: http.StatusBadRequest,
			code:   serrors.ErrBadRequest.Error(),
		},
		{
			name:   "account id not a uuid",
			body:   `{"target":"example.com","targetType":"domain","accountId":"acme"}`,
			status: http.StatusBadRequest,
			code:   serrors.ErrBadRequest.Error(),
		},
		{
			name:   "invalid target",
			body:   fmt.Sprintf(`{"target":"","targetType":"domain","accountId":%q}`, uuid.New()),
			err:    serrors.With(serrors.ErrBadRequest, "invalid domain target: empty"),
			status: http.StatusBadRequest,
			code:   serrors.ErrBadRequest.Error(),
		},
		{
			name:   "not a member",
			body:   fmt.Sprintf(`{"target":"example.com","targetType":"domain","accountId":%q}`, uuid.New()),
			err:    serrors.With(serrors.ErrForbidden, "not a member of account"),
			status: http.StatusForbidden,
			code:   serrors.ErrForbidden.Error(),
		},
		{
			name:   "insufficient credits",
			body:   fmt.Sprintf(`{"target":"example.com","targetType":"domain","accountId":%q}`, uuid.New()),
			err:    fmt.Errorf("could not create scan job: %w", &credit.InsufficientCreditsError{Required: 10, Available: 5}),
			status: http.StatusPaymentRequired,
			code:   serrors.ErrPaymentRequired.Error(),
		},
		{
			name:   "ledger unavailable",
			body:   fmt.Sprintf(`{"target":"example.com","targetType":"domain","accountId":%q}`, uuid.New()),
			err:    serrors.Wrap(serrors.ErrUnavailable, io.ErrUnexpectedEOF, "credit ledger unavailable"),
			status: http.StatusServiceUnavailable,
			code:   serrors.ErrUnavailable.Error(),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := newTestAPI(t)
			if tt.err != nil {
				api.scanJobs.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tt.err)
			}

			rec := api.do(t, http.MethodPost, "/scans", tt.body)
			require.Equal(t, tt.status, rec.Code)
			res := decodeBody[v1handler.ErrorResponse](t, rec)
			require.Equal(t, tt.code, res.Code)
		})
	}
}

func TestCreateScan_InsufficientCreditsBody(t *testing.T) {
	api := newTestAPI(t)
	api.scanJobs.EXPECT().
		Create(gomock.Any(), gomock.Any()).
		Return(nil, &credit.InsufficientCreditsError{Required: 10, Available: 4})

	rec := api.do(t, http.MethodPost, "/scans",
		fmt.Sprintf(`{"target":"example.com","targetType":"domain","accountId":%q}`, uuid.New()))

	require.Equal(t, http.StatusPaymentRequired, rec.Code)
	require.JSONEq(t,
		`{"code":"PAYMENT_REQUIRED","message":"insufficient credits","error":"insufficient_credits","required":10,"available":4}`,
		rec.Body.String())
}

func TestCreateScan_RequiresToken(t *testing.T) {
	api := newTestAPI(t)

	req := httptest.NewRequest(http.MethodPost, "/scans", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestGetScan(t *testing.T) {
	api := newTestAPI(t)
	jobID := domain.ScanJobID(uuid.New())
	job := &domain.ScanJob{
		ID:         jobID,
		Target:     "example.com",
		TargetType: domain.TargetTypeDomain,
		Status:     domain.ScanJobStatusFailed,
		Error:      "scan timeout: engine did not finish within 5m0s (60 polls)",
	}
	api.scanJobs.EXPECT().Get(gomock.Any(), api.userID, jobID).Return(job, nil)

	rec := api.do(t, http.MethodGet, "/scans/"+jobID.String(), "")

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[domain.ScanJob](t, rec)
	require.Equal(t, jobID, res.ID)
	require.Equal(t, domain.ScanJobStatusFailed, res.Status)
	require.Equal(t, job.Error, res.Error)
}

func TestGetScan_NotFoundAndBadID(t *testing.T) {
	api := newTestAPI(t)
	jobID := domain.ScanJobID(uuid.New())
	api.scanJobs.EXPECT().
		Get(gomock.Any(), api.userID, jobID).
		Return(nil, serrors.With(serrors.ErrNotFound, "scan job not found"))

	rec := api.do(t, http.MethodGet, "/scans/"+jobID.String(), "")
	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "scan job not found", decodeBody[v1handler.ErrorResponse](t, rec).Message)

	rec = api.do(t, http.MethodGet, "/scans/not-a-uuid", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListScans(t *testing.T) {
	api := newTestAPI(t)
	accountID := domain.AccountID(uuid.New())
	jobs := []domain.ScanJob{
		{ID: domain.ScanJobID(uuid.New()), AccountID: accountID, Status: domain.ScanJobStatusCompleted},
		{ID: domain.ScanJobID(uuid.New()), AccountID: accountID, Status: domain.ScanJobStatusCompleted},
	}
	api.scanJobs.EXPECT().
		List(gomock.Any(), api.userID, accountID, domain.ScanJobStatusCompleted, "cursor-a", uint(2)).
		Return(jobs, "cursor-b", nil)

	rec := api.do(t, http.MethodGet,
		"/accounts/"+accountID.String()+"/scans?status=completed&cursor=cursor-a&limit=2", "")

	require.Equal(t, http.StatusOK, rec.Code)
	res := decodeBody[v1handler.ListScansResponse](t, rec)
	require.Len(t, res.Items, 2)
	require.Equal(t, "cursor-b", res.NextCursor)
}

func TestListScans_EmptyPage(t *testing.T) {
	api := newTestAPI(t)
	accountID := domain.AccountID(uuid.New())
	api.scanJobs.EXPECT().
		List(gomock.Any(), api.userID, accountID, domain.ScanJobStatus(""), "", uint(0)).
		Return(nil, "", nil)

	rec := api.do(t, http.MethodGet, "/accounts/"+accountID.String()+"/scans", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, `{"items":[]}`, rec.Body.String())
}

func TestListScans_InvalidLimit(t *testing.T) {
	api := newTestAPI(t)

	rec := api.do(t, http.MethodGet, "/accounts/"+uuid.NewString()+"/scans?limit=-1", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetCredits(t *testing.T) {
	api := newTestAPI(t)
	accountID := domain.AccountID(uuid.New())
	api.scanJobs.EXPECT().Balance(gomock.Any(), api.userID, accountID).Return(int64(90), nil)

	rec := api.do(t, http.MethodGet, "/accounts/"+accountID.String()+"/credits", "")

	require.Equal(t, http.StatusOK, rec.Code)
	require.JSONEq(t, fmt.Sprintf(`{"accountId":%q,"balance":90}`, accountID), rec.Body.String())
}

func TestGetCredits_Forbidden(t *testing.T) {
	api := newTestAPI(t)
	accountID := domain.AccountID(uuid.New())
	api.scanJobs.EXPECT().
		Balance(gomock.Any(), api.userID, accountID).
		Return(int64(0), serrors.With(serrors.ErrForbidden, "not a member of account"))

	rec := api.do(t, http.MethodGet, "/accounts/"+accountID.String()+"/credits", "")
	require.Equal(t, http.StatusForbidden, rec.Code)
}
