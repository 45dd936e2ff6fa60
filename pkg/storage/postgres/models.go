package postgres

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"osintscan/pkg/domain"
	"time"

	"github.com/google/uuid"
)

// PgScanJob is the row shape of the scan_jobs table.
type PgScanJob struct {
	ID        uuid.UUID `db:"id"         goqu:"skipinsert"`
	AccountID uuid.UUID `db:"account_id"`
	UserID    uuid.UUID `db:"user_id"`

	Target     string          `db:"target"`
	TargetType string          `db:"target_type"`
	Modules    json.RawMessage `db:"modules"`

	Status        string         `db:"status"`
	ExternalJobID sql.NullString `db:"external_job_id" goqu:"skipinsert"`

	RawResults     json.RawMessage `db:"raw_results"     goqu:"skipinsert"`
	Correlations   json.RawMessage `db:"correlations"    goqu:"skipinsert"`
	TotalEvents    int             `db:"total_events"    goqu:"skipinsert"`
	CreditsCharged int64           `db:"credits_charged"`

	Error sql.NullString `db:"error" goqu:"skipinsert"`

	CreatedAt   time.Time    `db:"created_at"   goqu:"skipinsert"`
	StartedAt   sql.NullTime `db:"started_at"   goqu:"skipinsert"`
	CompletedAt sql.NullTime `db:"completed_at" goqu:"skipinsert"`
	UpdatedAt   sql.NullTime `db:"updated_at"   goqu:"skipinsert"`
}

// ToDomain converts the row into a domain.ScanJob.
func (p *PgScanJob) ToDomain() (*domain.ScanJob, error) {
	job := &domain.ScanJob{
		ID:             domain.ScanJobID(p.ID),
		AccountID:      domain.AccountID(p.AccountID),
		UserID:         domain.UserID(p.UserID),
		Target:         p.Target,
		TargetType:     domain.TargetType(p.TargetType),
		Modules:        []string{},
		Status:         domain.ScanJobStatus(p.Status),
		ExternalJobID:  p.ExternalJobID.String,
		RawResults:     []domain.RawResult{},
		Correlations:   []domain.Correlation{},
		TotalEvents:    p.TotalEvents,
		CreditsCharged: p.CreditsCharged,
		Error:          p.Error.String,
		CreatedAt:      p.CreatedAt,
		StartedAt:      p.StartedAt.Time,
		CompletedAt:    p.CompletedAt.Time,
	}

	if err := unmarshalColumn(p.Modules, &job.Modules); err != nil {
		return nil, fmt.Errorf("could not unmarshal modules: %w", err)
	}
	if err := unmarshalColumn(p.RawResults, &job.RawResults); err != nil {
		return nil, fmt.Errorf("could not unmarshal raw results: %w", err)
	}
	if err := unmarshalColumn(p.Correlations, &job.Correlations); err != nil {
		return nil, fmt.Errorf("could not unmarshal correlations: %w", err)
	}

	return job, nil
}

// FromDomain fills the row with the insertable fields of job.
func (p *PgScanJob) FromDomain(job domain.ScanJob) error {
	modules := job.Modules
	if modules == nil {
		modules = []string{}
	}
	b, err := json.Marshal(modules)
	if err != nil {
		return fmt.Errorf("could not marshal modules: %w", err)
	}

	*p = PgScanJob{
		AccountID:      uuid.UUID(job.AccountID),
		UserID:         uuid.UUID(job.UserID),
		Target:         job.Target,
		TargetType:     string(job.TargetType),
		Modules:        b,
		Status:         string(job.Status),
		CreditsCharged: job.CreditsCharged,
	}

	return nil
}

// unmarshalColumn decodes a jsonb column, leaving dst untouched for NULL.
func unmarshalColumn(b json.RawMessage, dst any) error {
	if len(b) == 0 || string(b) == "null" {
		return nil
	}

	return json.Unmarshal(b, dst) //nolint: wrapcheck
}

func pgScanJobsToDomain(rows []PgScanJob) ([]domain.ScanJob, error) {
	out := make([]domain.ScanJob, 0, len(rows))
	for _, row := range rows {
		d, err := row.ToDomain()
		if err != nil {
			return nil, err
		}

		out = append(out, *d)
	}

	return out, nil
}
