package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"osintscan/pkg/domain"
	"osintscan/pkg/storage"
	"time"

	"github.com/doug-martin/goqu/v9"
	"github.com/google/uuid"
)

const (
	scanJobsTable = "scan_jobs"
)

// StoreScanJob inserts a new job row and returns it as stored.
func (p *PgSQL) StoreScanJob(ctx context.Context, job domain.ScanJob) (*domain.ScanJob, error) {
	var row PgScanJob
	if err := row.FromDomain(job); err != nil {
		return nil, err
	}

	var result []PgScanJob
	if err := p.Builder.Insert(scanJobsTable).
		Rows(row).
		Returning(&PgScanJob{}).
		Executor().ScanStructsContext(ctx, &result); err != nil {
		return nil, fmt.Errorf("could not store scan job into pg: %w", err)
	}
	if len(result) != 1 {
		return nil, fmt.Errorf("expected one stored scan job, got %d", len(result))
	}

	return result[0].ToDomain()
}

// ScanJobByID returns a job by its ID, or nil when it does not exist.
func (p *PgSQL) ScanJobByID(ctx context.Context, id domain.ScanJobID) (*domain.ScanJob, error) {
	var row PgScanJob
	found, err := p.Builder.From(scanJobsTable).
		Where(goqu.I("id").Eq(uuid.UUID(id))).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch scan job by id: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain()
}

// AccountScanJobs returns a page of an account's jobs ordered by created_at DESC, id DESC.
func (p *PgSQL) AccountScanJobs(ctx context.Context,
	accountID domain.AccountID,
	status domain.ScanJobStatus,
	cursor *storage.ScanJobCursor,
	limit uint) (storage.ScanJobPage, error) {
	w := []goqu.Expression{
		goqu.I("account_id").Eq(uuid.UUID(accountID)),
	}
	if status != "" {
		w = append(w, goqu.I("status").Eq(string(status)))
	}
	if cursor != nil {
		w = append(w, goqu.L("(created_at, id) < (?, ?)", cursor.CreatedAt, uuid.UUID(cursor.ID)))
	}

	// fetch one extra to determine if there is a next page
	var rows []PgScanJob
	if err := p.Builder.From(scanJobsTable).
		Where(w...).
		Order(goqu.I("created_at").Desc(), goqu.I("id").Desc()).
		Limit(limit + 1).
		Executor().ScanStructsContext(ctx, &rows); err != nil {
		return storage.ScanJobPage{}, fmt.Errorf("could not fetch account scan jobs from pg: %w", err)
	}

	var nextCursor *storage.ScanJobCursor
	if uint(len(rows)) > limit {
		rows = rows[:limit]
		if limit > 0 {
			last := rows[len(rows)-1]
			nextCursor = &storage.ScanJobCursor{CreatedAt: last.CreatedAt, ID: domain.ScanJobID(last.ID)}
		}
	}

	jobs, err := pgScanJobsToDomain(rows)
	if err != nil {
		return storage.ScanJobPage{}, err
	}

	return storage.ScanJobPage{
		Jobs:       jobs,
		NextCursor: nextCursor,
	}, nil
}

// MarkScanJobRunning moves a pending job to running.
func (p *PgSQL) MarkScanJobRunning(ctx context.Context, id domain.ScanJobID, startedAt time.Time) error {
	return p.transition(ctx, id, domain.ScanJobStatusRunning, goqu.Record{
		"status":     string(domain.ScanJobStatusRunning),
		"started_at": startedAt,
	},
		goqu.I("status").Eq(string(domain.ScanJobStatusPending)),
		goqu.I("started_at").IsNull(),
	)
}

// SetScanJobExternalID records the engine ID of a running job exactly once.
func (p *PgSQL) SetScanJobExternalID(ctx context.Context, id domain.ScanJobID, externalID string) error {
	res, err := p.Builder.Update(scanJobsTable).
		Set(goqu.Record{
			"external_job_id": externalID,
			"updated_at":      goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("id").Eq(uuid.UUID(id)),
			goqu.I("status").Eq(string(domain.ScanJobStatusRunning)),
			goqu.I("external_job_id").IsNull(),
		).Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not set scan job external id in pg: %w", err)
	}

	return requireOneRow(res, func() error {
		return fmt.Errorf("could not set external id: %w",
			storage.TransitionRejected(id, domain.ScanJobStatusRunning))
	})
}

// CompleteScanJob moves a running job to completed, storing results and correlations.
func (p *PgSQL) CompleteScanJob(ctx context.Context, id domain.ScanJobID, completion storage.ScanJobCompletion) error {
	results := completion.RawResults
	if results == nil {
		results = []domain.RawResult{}
	}
	correlations := completion.Correlations
	if correlations == nil {
		correlations = []domain.Correlation{}
	}

	rawResults, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("could not marshal raw results: %w", err)
	}
	rawCorrelations, err := json.Marshal(correlations)
	if err != nil {
		return fmt.Errorf("could not marshal correlations: %w", err)
	}

	return p.transition(ctx, id, domain.ScanJobStatusCompleted, goqu.Record{
		"status":       string(domain.ScanJobStatusCompleted),
		"raw_results":  rawResults,
		"correlations": rawCorrelations,
		"total_events": len(results),
		"completed_at": completion.CompletedAt,
	},
		goqu.I("status").Eq(string(domain.ScanJobStatusRunning)),
	)
}

// FailScanJob moves a pending or running job to failed.
func (p *PgSQL) FailScanJob(ctx context.Context, id domain.ScanJobID, cause string, completedAt time.Time) error {
	return p.transition(ctx, id, domain.ScanJobStatusFailed, goqu.Record{
		"status":       string(domain.ScanJobStatusFailed),
		"error":        cause,
		"completed_at": completedAt,
	},
		goqu.I("status").In(string(domain.ScanJobStatusPending), string(domain.ScanJobStatusRunning)),
	)
}

// FailStaleScanJobs fails jobs that have been running since before startedBefore.
func (p *PgSQL) FailStaleScanJobs(ctx context.Context,
	startedBefore time.Time,
	cause string,
	completedAt time.Time) ([]domain.ScanJobID, error) {
	var ids []uuid.UUID
	if err := p.Builder.Update(scanJobsTable).
		Set(goqu.Record{
			"status":       string(domain.ScanJobStatusFailed),
			"error":        cause,
			"completed_at": completedAt,
			"updated_at":   goqu.L("CURRENT_TIMESTAMP"),
		}).
		Where(
			goqu.I("status").Eq(string(domain.ScanJobStatusRunning)),
			goqu.I("started_at").Lt(startedBefore),
		).
		Returning("id").
		Executor().ScanValsContext(ctx, &ids); err != nil {
		return nil, fmt.Errorf("could not fail stale scan jobs in pg: %w", err)
	}

	out := make([]domain.ScanJobID, len(ids))
	for i, id := range ids {
		out[i] = domain.ScanJobID(id)
	}

	return out, nil
}

// transition applies a guarded status update and reports a conflict when no
// row was in the expected state.
func (p *PgSQL) transition(ctx context.Context,
	id domain.ScanJobID,
	to domain.ScanJobStatus,
	rec goqu.Record,
	guards ...goqu.Expression) error {
	rec["updated_at"] = goqu.L("CURRENT_TIMESTAMP")

	res, err := p.Builder.Update(scanJobsTable).
		Set(rec).
		Where(append([]goqu.Expression{goqu.I("id").Eq(uuid.UUID(id))}, guards...)...).
		Executor().ExecContext(ctx)
	if err != nil {
		return fmt.Errorf("could not move scan job to %s in pg: %w", to, err)
	}

	return requireOneRow(res, func() error { return storage.TransitionRejected(id, to) })
}

func requireOneRow(res sql.Result, rejected func() error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("could not read affected rows: %w", err)
	}
	if n == 0 {
		return rejected()
	}

	return nil
}
