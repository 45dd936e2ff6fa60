package progress

import (
	"context"
	"osintscan/pkg/domain"
	"osintscan/pkg/logger"
	"osintscan/pkg/metrics"
	"sync"
	"time"

	"go.uber.org/zap"
)

// DefaultBufferSize is the number of events buffered per subscriber.
const DefaultBufferSize = 32

type subscription struct {
	ch chan Event
}

// Bus is an in-process Publisher and Subscriber. Events for a job are fanned
// out to every subscriber of its topic; a subscriber whose buffer is full
// misses the event.
type Bus struct {
	mu         sync.RWMutex
	topics     map[string]map[*subscription]struct{}
	bufferSize int
}

// NewBus creates a Bus. A bufferSize below 1 uses DefaultBufferSize.
func NewBus(bufferSize int) *Bus {
	if bufferSize < 1 {
		bufferSize = DefaultBufferSize
	}

	return &Bus{
		topics:     make(map[string]map[*subscription]struct{}),
		bufferSize: bufferSize,
	}
}

// Publish implements Publisher.
func (b *Bus) Publish(ctx context.Context, jobID domain.ScanJobID, ev Event) {
	ev.JobID = jobID
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()

	for sub := range b.topics[Topic(jobID)] {
		select {
		case sub.ch <- ev:
			metrics.ProgressEvents.WithLabelValues("delivered").Inc()
		default:
			metrics.ProgressEvents.WithLabelValues("dropped").Inc()
			logger.Debug(ctx, "dropped progress event for slow subscriber", zap.Stringer("job_id", jobID))
		}
	}
}

// Subscribe implements Subscriber.
func (b *Bus) Subscribe(ctx context.Context, jobID domain.ScanJobID) (<-chan Event, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	topic := Topic(jobID)
	sub := &subscription{ch: make(chan Event, b.bufferSize)}

	b.mu.Lock()
	if b.topics[topic] == nil {
		b.topics[topic] = make(map[*subscription]struct{})
	}
	b.topics[topic][sub] = struct{}{}
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.unsubscribe(topic, sub)
	}()

	return sub.ch, nil
}

// Subscribers returns the number of active subscribers of a job.
func (b *Bus) Subscribers(jobID domain.ScanJobID) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	return len(b.topics[Topic(jobID)])
}

func (b *Bus) unsubscribe(topic string, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()

	delete(b.topics[topic], sub)
	if len(b.topics[topic]) == 0 {
		delete(b.topics, topic)
	}
	close(sub.ch)
}

var (
	_ Publisher  = (*Bus)(nil)
	_ Subscriber = (*Bus)(nil)
)
