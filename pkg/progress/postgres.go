package progress

import (
	"context"
	"encoding/json"
	"fmt"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"osintscan/pkg/retry"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jonboulle/clockwork"
	"go.uber.org/zap"
)

// DefaultChannel is the Postgres notification channel carrying events.
const DefaultChannel = "scan_progress"

// MaxNotifyPayload is the largest payload sent through NOTIFY. Postgres rejects
// payloads of 8000 bytes or more.
const MaxNotifyPayload = 7900

// truncationMark ends a message shortened by EncodeNotification.
const truncationMark = "..."

// reconnectDelays is the wait schedule between listener reconnects; the last
// delay is reused.
var reconnectDelays = []time.Duration{time.Second, 2 * time.Second, 5 * time.Second} //nolint: gochecknoglobals

// PGNotifier publishes events through Postgres NOTIFY so that subscribers in
// any process listening on the channel receive them.
type PGNotifier struct {
	pool    *pgxpool.Pool
	channel string
}

// NewPGNotifier creates a PGNotifier. An empty channel uses DefaultChannel.
func NewPGNotifier(pool *pgxpool.Pool, channel string) *PGNotifier {
	if channel == "" {
		channel = DefaultChannel
	}

	return &PGNotifier{pool: pool, channel: channel}
}

// Publish implements Publisher. Failures are logged and otherwise ignored.
func (n *PGNotifier) Publish(ctx context.Context, jobID domain.ScanJobID, ev Event) {
	ev.JobID = jobID
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	payload, err := EncodeNotification(ev)
	if err == nil {
		_, err = n.pool.Exec(ctx, "SELECT pg_notify($1, $2)", n.channel, string(payload))
	}
	if err != nil {
		metrics.ProgressEvents.WithLabelValues("failed").Inc()
		logger.Warn(ctx, "could not publish progress event",
			zap.Stringer("job_id", jobID),
			zap.String("status", string(ev.Status)),
			zap.Error(err))
	}
}

var _ Publisher = (*PGNotifier)(nil)

// EncodeNotification marshals ev into at most MaxNotifyPayload bytes. An
// oversized event loses its CurrentUnits first, then the tail of its Message.
// Status and counters are always kept.
func EncodeNotification(ev Event) ([]byte, error) {
	payload, err := json.Marshal(ev)
	if err != nil || len(payload) <= MaxNotifyPayload {
		return payload, err //nolint: wrapcheck
	}

	ev.CurrentUnits = nil
	for {
		payload, err = json.Marshal(ev)
		if err != nil {
			return nil, err //nolint: wrapcheck
		}
		if len(payload) <= MaxNotifyPayload {
			return payload, nil
		}
		if ev.Message == "" {
			return nil, fmt.Errorf("progress event of %d bytes exceeds the notify limit", len(payload))
		}

		excess := len(payload) - MaxNotifyPayload + len(truncationMark)
		msg := strings.TrimSuffix(ev.Message, truncationMark)
		keep := max(0, len(msg)-excess)
		for keep > 0 && !utf8.RuneStart(msg[keep]) {
			keep--
		}
		if keep == 0 {
			ev.Message = ""

			continue
		}
		ev.Message = msg[:keep] + truncationMark
	}
}

// PGListener relays events received on a Postgres notification channel into
// a local Bus.
type PGListener struct {
	pool    *pgxpool.Pool
	bus     *Bus
	channel string
	sleep   retry.SleepFunc

	listeningOnce sync.Once
	listening     chan struct{}
}

// NewPGListener creates a PGListener. An empty channel uses DefaultChannel and
// a nil clock uses the real clock.
func NewPGListener(pool *pgxpool.Pool, bus *Bus, channel string, clock clockwork.Clock) *PGListener {
	if channel == "" {
		channel = DefaultChannel
	}
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &PGListener{
		pool:      pool,
		bus:       bus,
		channel:   channel,
		sleep:     retry.ClockSleep(clock),
		listening: make(chan struct{}),
	}
}

// Listening is closed once the listener has subscribed to the channel for the
// first time.
func (l *PGListener) Listening() <-chan struct{} {
	return l.listening
}

// Run listens until ctx is done, reconnecting when the connection is lost.
func (l *PGListener) Run(ctx context.Context) error {
	ctx = logger.WithFields(ctx, zap.String("channel", l.channel))

	for failures := 0; ; failures++ {
		err := l.listen(ctx)
		if ctx.Err() != nil {
			return nil //nolint: nilerr
		}

		delay := reconnectDelays[min(failures, len(reconnectDelays)-1)]
		logger.Warn(ctx, "progress listener disconnected, reconnecting",
			zap.Error(err),
			zap.Duration("delay", delay))
		if err := l.sleep(ctx, delay); err != nil {
			return nil //nolint: nilerr
		}
	}
}

func (l *PGListener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("could not acquire connection: %w", err)
	}
	defer func() {
		_, _ = conn.Exec(context.WithoutCancel(ctx), "UNLISTEN *")
		conn.Release()
	}()

	if _, err := conn.Exec(ctx, "LISTEN "+pgx.Identifier{l.channel}.Sanitize()); err != nil {
		return fmt.Errorf("could not listen: %w", err)
	}
	l.listeningOnce.Do(func() { close(l.listening) })
	logger.Info(ctx, "listening for progress events")

	for {
		notification, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return fmt.Errorf("could not wait for notification: %w", err)
		}

		var ev Event
		if err := json.Unmarshal([]byte(notification.Payload), &ev); err != nil {
			logger.Warn(ctx, "dropping malformed progress notification", zap.Error(err))

			continue
		}
		l.bus.Publish(ctx, ev.JobID, ev)
	}
}
