// Package retry runs operations against flaky remote collaborators with a
// bounded number of attempts and a fixed delay schedule. Only errors that
// IsRetryable classifies as transient are retried.
package retry

import (
	"context"
	"time"

	"github.com/jonboulle/clockwork"
	goretry "github.com/sethvargo/go-retry"
)

const (
	// DefaultMaxAttempts is the total number of attempts, including the first one.
	DefaultMaxAttempts = 3
)

// DefaultDelays is the wait schedule between attempts. The last delay is
// reused when there are more retries than entries.
var DefaultDelays = []time.Duration{2 * time.Second, 4 * time.Second, 6 * time.Second} //nolint: gochecknoglobals

// SleepFunc waits for d or until ctx is done, whichever happens first.
type SleepFunc func(ctx context.Context, d time.Duration) error

// ClockSleep returns a SleepFunc backed by the given clock.
func ClockSleep(clock clockwork.Clock) SleepFunc {
	return func(ctx context.Context, d time.Duration) error {
		if d <= 0 {
			return ctx.Err()
		}

		timer := clock.NewTimer(d)
		defer timer.Stop()

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.Chan():
			return nil
		}
	}
}

// Options configures Do and Run. The zero value is usable.
type Options struct {
	// MaxAttempts bounds the total number of attempts. Values below 1 use DefaultMaxAttempts.
	MaxAttempts int
	// Delays is the wait schedule between attempts. Empty uses DefaultDelays.
	Delays []time.Duration
	// Sleep performs the waits. Nil uses the real clock.
	Sleep SleepFunc
	// OnRetry is called with the 1-based number of the failed attempt before waiting.
	OnRetry func(attempt int, err error)
	// Retryable overrides the error classifier. Nil uses IsRetryable.
	Retryable func(err error) bool
}

func (o Options) withDefaults() Options {
	if o.MaxAttempts < 1 {
		o.MaxAttempts = DefaultMaxAttempts
	}
	if len(o.Delays) == 0 {
		o.Delays = DefaultDelays
	}
	if o.Sleep == nil {
		o.Sleep = ClockSleep(clockwork.NewRealClock())
	}
	if o.Retryable == nil {
		o.Retryable = IsRetryable
	}

	return o
}

// backoff returns the schedule of waits allowed after failed attempts.
func (o Options) backoff() goretry.Backoff {
	next := 0
	schedule := goretry.BackoffFunc(func() (time.Duration, bool) {
		d := o.Delays[min(next, len(o.Delays)-1)]
		next++

		return d, false
	})

	return goretry.WithMaxRetries(uint64(o.MaxAttempts-1), schedule) //nolint: gosec
}

// Do invokes op until it succeeds, fails with a non-retryable error, or the
// attempt budget is exhausted. The error returned is the last one op produced,
// unwrapped, so callers can inspect it directly.
func Do[T any](ctx context.Context, op func(ctx context.Context) (T, error), opts Options) (T, error) {
	opts = opts.withDefaults()
	b := opts.backoff()

	for attempt := 1; ; attempt++ {
		res, err := op(ctx)
		if err == nil {
			return res, nil
		}
		if !opts.Retryable(err) {
			return res, err
		}

		delay, stop := b.Next()
		if stop || ctx.Err() != nil {
			return res, err
		}
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, err)
		}
		if sleepErr := opts.Sleep(ctx, delay); sleepErr != nil {
			return res, err
		}
	}
}

// Run is Do for operations without a result.
func Run(ctx context.Context, op func(ctx context.Context) error, opts Options) error {
	_, err := Do(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, opts)

	return err
}
