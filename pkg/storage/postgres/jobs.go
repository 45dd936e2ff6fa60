package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"osintscan/pkg/logger"

	"github.com/riverqueue/river"
	"github.com/riverqueue/river/rivertype"
	"go.uber.org/zap"
)

// AddJob enqueues a River job. Inside a transaction the job is inserted with
// it and only becomes visible to workers on commit; outside one it is visible
// as soon as the insert returns. It reports false when River skipped the job
// as a duplicate of a unique one.
func (p *PgSQL) AddJob(ctx context.Context, args river.JobArgs, opts *river.InsertOpts) (bool, error) {
	if p.queue == nil {
		return false, errors.New("storage has no job queue")
	}

	var (
		res *rivertype.JobInsertResult
		err error
	)
	if tx, ok := p.DB.(*sql.Tx); ok {
		res, err = p.queue.InsertTx(ctx, tx, args, opts)
	} else {
		res, err = p.queue.Insert(ctx, args, opts)
	}
	if err != nil {
		return false, fmt.Errorf("could not insert %s job: %w", args.Kind(), err)
	}

	if res.UniqueSkippedAsDuplicate {
		logger.Debug(ctx, "job already queued",
			zap.String("kind", args.Kind()),
			zap.Int64("river_job_id", res.Job.ID))
	}

	return !res.UniqueSkippedAsDuplicate, nil
}
