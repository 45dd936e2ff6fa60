package worker_test

import (
	"context"
	"errors"
	"os"
	"osintscan/internal/scanjob"
	"osintscan/internal/worker"
	mockworker "osintscan/internal/worker/mock"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/serrors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestMain(m *testing.M) {
	logger.Setup(logger.DevelopmentEnvironment)
	os.Exit(m.Run())
}

func makeJob(id int64, scanJobID uuid.UUID) *river.Job[scanjob.JobArgs] {
	return &river.Job[scanjob.JobArgs]{
		JobRow: &rivertype.JobRow{ID: id},
		Args:   scanjob.JobArgs{ScanJobID: scanJobID},
	}
}

func TestScanJobWorker_Work_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch := mockworker.NewMockOrchestrator(ctrl)
	w := worker.NewScanJobWorker(orch, time.Minute)

	id := uuid.New()
	orch.EXPECT().Run(gomock.Any(), domain.ScanJobID(id)).Return(nil)

	require.NoError(t, w.Work(context.Background(), makeJob(1, id)))
}

func TestScanJobWorker_Work_NotRunnableCancels(t *testing.T) {
	for _, kind := range []serrors.Kind{serrors.ErrConflict, serrors.ErrNotFound} {
		t.Run(kind.Error(), func(t *testing.T) {
			ctrl := gomock.NewController(t)
			orch := mockworker.NewMockOrchestrator(ctrl)
			w := worker.NewScanJobWorker(orch, time.Minute)

			orch.EXPECT().Run(gomock.Any(), gomock.Any()).Return(serrors.With(kind, "not pending"))

			err := w.Work(context.Background(), makeJob(2, uuid.New()))
			require.Error(t, err)
			var cancelErr *river.JobCancelError
			require.ErrorAs(t, err, &cancelErr, "expected JobCancelError")
		})
	}
}

func TestScanJobWorker_Work_OtherErrorRetries(t *testing.T) {
	ctrl := gomock.NewController(t)
	orch := mockworker.NewMockOrchestrator(ctrl)
	w := worker.NewScanJobWorker(orch, time.Minute)

	orch.EXPECT().Run(gomock.Any(), gomock.Any()).Return(errors.New("database is down"))

	err := w.Work(context.Background(), makeJob(3, uuid.New()))
	require.Error(t, err)
	var cancelErr *river.JobCancelError
	require.NotErrorAs(t, err, &cancelErr, "did not expect JobCancelError")
	require.Contains(t, err.Error(), "database is down")
}

func TestScanJobWorker_Timeout(t *testing.T) {
	require.Equal(t, 15*time.Minute, worker.NewScanJobWorker(nil, 15*time.Minute).Timeout(nil))
	require.Equal(t, time.Duration(-1), worker.NewScanJobWorker(nil, 0).Timeout(nil))
}
