// Package metrics declares the Prometheus collectors shared across the
// application and the OpenTelemetry meter provider bridged to them.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

const namespace = "osintscan"

// DefaultBuckets provides a common set of histogram buckets in seconds that can
// be reused across the application for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// ScanBuckets covers whole scan durations, from seconds to the polling budget.
var ScanBuckets = []float64{5, 15, 30, 60, 120, 180, 240, 300, 420, 600} //nolint: gochecknoglobals

//nolint: gochecknoglobals
var (
	// ScanJobs counts finished orchestrations by outcome (completed, failed).
	ScanJobs = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "scan_jobs_total",
		Help:      "Scan jobs that reached a terminal state.",
	}, []string{"outcome"})

	// ScanDuration observes the time between a job starting and reaching a terminal state.
	ScanDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "scan_duration_seconds",
		Help:      "Time from scan start to its terminal state.",
		Buckets:   ScanBuckets,
	}, []string{"outcome"})

	// EnginePolls counts status polls by result (ok, transient, failed).
	EnginePolls = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_polls_total",
		Help:      "Status polls sent to the scanning engine.",
	}, []string{"result"})

	// EngineRetries counts retried engine calls by operation.
	EngineRetries = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "engine_retries_total",
		Help:      "Engine calls retried after a transient failure.",
	}, []string{"operation"})

	// CreditDebits counts debit attempts by result (charged, insufficient, error).
	CreditDebits = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "credit_debits_total",
		Help:      "Credit debit attempts.",
	}, []string{"result"})

	// ProgressEvents counts progress events by delivery result (delivered, dropped, failed).
	ProgressEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "progress_events_total",
		Help:      "Progress events handed to subscribers.",
	}, []string{"result"})

	// HTTPRequests observes API latency by route pattern, method and status code.
	HTTPRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Latency of API requests.",
		Buckets:   DefaultBuckets,
	}, []string{"route", "method", "code"})
)

// NewMeterProvider returns an OpenTelemetry meter provider whose instruments
// are exported through the default Prometheus registry.
func NewMeterProvider() (*sdkmetric.MeterProvider, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)), nil
}
