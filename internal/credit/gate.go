// Package credit charges accounts for work before it is started. The gate
// fails closed: if the ledger cannot be reached the work is refused.
package credit

import (
	"context"
	"fmt"
	"osintscan/internal/config"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"osintscan/pkg/serrors"
	"osintscan/pkg/storage"

	"go.uber.org/zap"
)

// InsufficientCreditsError reports that an account could not cover a debit.
// It matches serrors.ErrPaymentRequired.
type InsufficientCreditsError struct {
	Required int64
	// Available is the balance observed after the debit was refused, or -1
	// when it could not be read.
	Available int64
}

func (e *InsufficientCreditsError) Error() string {
	return fmt.Sprintf("insufficient credits: %d required, %d available", e.Required, e.Available)
}

// Is lets errors.Is match the error against serrors.ErrPaymentRequired.
func (e *InsufficientCreditsError) Is(target error) bool {
	return target == serrors.ErrPaymentRequired
}

// Options configures the gate.
type Options struct {
	// ScanCost is the fixed number of credits charged per scan job.
	ScanCost int64
	// Reason is recorded on every ledger entry written by the gate.
	Reason string
}

// NewOptions constructs Options from the application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		ScanCost: cfg.Credits.ScanCost,
		Reason:   cfg.Credits.Reason,
	}
}

// Gate debits accounts through a storage.CreditStorage.
type Gate struct {
	options Options
}

// New creates a Gate.
func New(options Options) *Gate {
	return &Gate{options: options}
}

// Cost returns the number of credits charged per scan job.
func (g *Gate) Cost() int64 { return g.options.ScanCost }

// DebitScan charges the account for one scan of target. It performs a single
// atomic call against the ledger. A refused debit returns an
// *InsufficientCreditsError, a ledger failure returns an error matching
// serrors.ErrUnavailable. In both cases nothing was charged.
func (g *Gate) DebitScan(ctx context.Context,
	ledger storage.CreditStorage,
	accountID domain.AccountID,
	target string,
	targetType domain.TargetType) error {
	ok, err := ledger.DebitCredits(ctx, accountID, g.options.ScanCost, g.options.Reason, map[string]any{
		"target":     target,
		"targetType": string(targetType),
	})
	if err != nil {
		metrics.CreditDebits.WithLabelValues("error").Inc()

		return serrors.Wrap(serrors.ErrUnavailable, err, "credit ledger unavailable")
	}
	if !ok {
		metrics.CreditDebits.WithLabelValues("insufficient").Inc()

		available, err := ledger.CreditBalance(ctx, accountID)
		if err != nil {
			logger.Warn(ctx, "could not read balance after refused debit", zap.Error(err))
			available = -1
		}

		return &InsufficientCreditsError{Required: g.options.ScanCost, Available: available}
	}

	metrics.CreditDebits.WithLabelValues("charged").Inc()

	return nil
}
