package scanjob

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"osintscan/internal/config"
	"osintscan/internal/credit"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/serrors"
	"osintscan/pkg/storage"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	// DefaultPageSize is used when a listing does not ask for a page size.
	DefaultPageSize = 20
	// MaxPageSize bounds the page size of a listing.
	MaxPageSize = 100

	cursorSeparator = "|"
)

// Options configure how scan jobs are enqueued.
type Options struct {
	// MaxAttempts is the maximum number of attempts the background worker
	// makes to start orchestrating a job.
	MaxAttempts int
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		MaxAttempts: cfg.Worker.MaxAttempts,
	}
}

// service is the concrete implementation of the Service interface.
type service struct {
	options Options
	storage storage.Storage
	gate    *credit.Gate
}

// New creates a Service backed by the provided storage and credit gate.
func New(storage storage.Storage, gate *credit.Gate, options Options) Service {
	return &service{
		options: options,
		storage: storage,
		gate:    gate,
	}
}

// Create validates the request, checks membership, and then debits the
// account, stores the pending job and enqueues its orchestration in one
// transaction.
func (s *service) Create(ctx context.Context, req CreateRequest) (*domain.ScanJob, error) {
	if uuid.UUID(req.AccountID) == uuid.Nil {
		return nil, serrors.With(serrors.ErrBadRequest, "accountId is required")
	}
	if !req.TargetType.Valid() {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid target type %q", req.TargetType)
	}
	target, err := NormalizeTarget(req.TargetType, req.Target)
	if err != nil {
		return nil, serrors.With(serrors.ErrBadRequest, "invalid %s target: %v", req.TargetType, err)
	}

	if err := s.requireMember(ctx, req.AccountID, req.UserID); err != nil {
		return nil, err
	}

	ctx = logger.WithFields(ctx,
		zap.Stringer("account_id", req.AccountID),
		zap.String("target_type", string(req.TargetType)))

	var job *domain.ScanJob
	if err := s.storage.WithTx(ctx, func(tx storage.AllStorage) error {
		if err := s.gate.DebitScan(ctx, tx, req.AccountID, target, req.TargetType); err != nil {
			return err
		}

		stored, err := tx.StoreScanJob(ctx, domain.ScanJob{
			AccountID:      req.AccountID,
			UserID:         req.UserID,
			Target:         target,
			TargetType:     req.TargetType,
			Modules:        cleanModules(req.Modules),
			Status:         domain.ScanJobStatusPending,
			CreditsCharged: s.gate.Cost(),
		})
		if err != nil {
			return fmt.Errorf("could not store scan job: %w", err)
		}
		job = stored

		if _, err := tx.AddJob(ctx, NewJobArgs(uuid.UUID(stored.ID), s.options.MaxAttempts), nil); err != nil {
			return fmt.Errorf("could not add job: %w", err)
		}

		return nil
	}); err != nil {
		return nil, fmt.Errorf("could not create scan job: %w", err)
	}

	logger.Info(ctx, "scan job created", zap.Stringer("scan_job_id", job.ID))

	return job, nil
}

// Get returns a job by ID. Jobs of accounts the user is not a member of are
// reported as not found.
func (s *service) Get(ctx context.Context, userID domain.UserID, id domain.ScanJobID) (*domain.ScanJob, error) {
	job, err := s.storage.ScanJobByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("could not get scan job: %w", err)
	}
	if job == nil {
		return nil, serrors.With(serrors.ErrNotFound, "scan job not found")
	}

	member, err := s.storage.IsAccountMember(ctx, job.AccountID, userID)
	if err != nil {
		return nil, fmt.Errorf("could not check account membership: %w", err)
	}
	if !member {
		return nil, serrors.With(serrors.ErrNotFound, "scan job not found")
	}

	return job, nil
}

// List returns a page of an account's jobs filtered by status. It supports
// cursor-based pagination using the opaque cursor returned by a previous call
// and returns the next cursor when more results are available.
func (s *service) List(ctx context.Context,
	userID domain.UserID,
	accountID domain.AccountID,
	status domain.ScanJobStatus,
	cursor string,
	limit uint) ([]domain.ScanJob, string, error) {
	if status != "" && !status.Valid() {
		return nil, "", serrors.With(serrors.ErrBadRequest, "invalid status %q", status)
	}

	var pageCursor *storage.ScanJobCursor
	if cursor != "" {
		c, err := DecodeCursor(cursor)
		if err != nil {
			return nil, "", serrors.Wrap(serrors.ErrBadRequest, err, "invalid cursor")
		}
		pageCursor = &c
	}

	switch {
	case limit == 0:
		limit = DefaultPageSize
	case limit > MaxPageSize:
		limit = MaxPageSize
	}

	if err := s.requireMember(ctx, accountID, userID); err != nil {
		return nil, "", err
	}

	page, err := s.storage.AccountScanJobs(ctx, accountID, status, pageCursor, limit)
	if err != nil {
		return nil, "", fmt.Errorf("could not get account scan jobs: %w", err)
	}

	var next string
	if page.NextCursor != nil {
		next = EncodeCursor(*page.NextCursor)
	}

	return page.Jobs, next, nil
}

// EncodeCursor renders a listing position as an opaque URL-safe token.
func EncodeCursor(c storage.ScanJobCursor) string {
	raw := c.CreatedAt.UTC().Format(time.RFC3339Nano) + cursorSeparator + c.ID.String()

	return base64.RawURLEncoding.EncodeToString([]byte(raw))
}

// DecodeCursor parses a token produced by EncodeCursor.
func DecodeCursor(token string) (storage.ScanJobCursor, error) {
	raw, err := base64.RawURLEncoding.DecodeString(token)
	if err != nil {
		return storage.ScanJobCursor{}, fmt.Errorf("could not decode cursor: %w", err)
	}

	ts, id, ok := strings.Cut(string(raw), cursorSeparator)
	if !ok {
		return storage.ScanJobCursor{}, errors.New("cursor is missing the job id")
	}
	createdAt, err := time.Parse(time.RFC3339Nano, ts)
	if err != nil {
		return storage.ScanJobCursor{}, fmt.Errorf("could not parse cursor time: %w", err)
	}
	jobID, err := uuid.Parse(id)
	if err != nil {
		return storage.ScanJobCursor{}, fmt.Errorf("could not parse cursor job id: %w", err)
	}

	return storage.ScanJobCursor{CreatedAt: createdAt, ID: domain.ScanJobID(jobID)}, nil
}

// Balance returns the credit balance of an account the user is a member of.
func (s *service) Balance(ctx context.Context, userID domain.UserID, accountID domain.AccountID) (int64, error) {
	if err := s.requireMember(ctx, accountID, userID); err != nil {
		return 0, err
	}

	balance, err := s.storage.CreditBalance(ctx, accountID)
	if err != nil {
		return 0, fmt.Errorf("could not get credit balance: %w", err)
	}

	return balance, nil
}

func (s *service) requireMember(ctx context.Context, accountID domain.AccountID, userID domain.UserID) error {
	member, err := s.storage.IsAccountMember(ctx, accountID, userID)
	if err != nil {
		return fmt.Errorf("could not check account membership: %w", err)
	}
	if !member {
		return serrors.With(serrors.ErrForbidden, "not a member of account %s", accountID)
	}

	return nil
}

// cleanModules trims module names and drops empty and repeated entries.
func cleanModules(modules []string) []string {
	out := make([]string, 0, len(modules))
	seen := make(map[string]struct{}, len(modules))
	for _, m := range modules {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		out = append(out, m)
	}

	return out
}
