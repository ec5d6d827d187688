// pkg/telemetry/metrics.go

package telemetry

import (
	"context"
	"sync"

	cerr "github.com/cockroachdb/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// AttemptMetrics counts answers read by validation loops. Instruments come
// from the global meter provider, which discards them unless an SDK is
// installed.
type AttemptMetrics struct {
	accepted  metric.Int64Counter
	rejected  metric.Int64Counter
	exhausted metric.Int64Counter
}

var (
	metricsOnce sync.Once
	attempts    *AttemptMetrics
)

// NewAttemptMetrics creates the counters on meter.
func NewAttemptMetrics(meter metric.Meter) (*AttemptMetrics, error) {
	accepted, err := meter.Int64Counter("inq_answers_accepted_total",
		metric.WithDescription("Answers that passed every check"))
	if err != nil {
		return nil, cerr.Wrap(err, "failed to create answers_accepted counter")
	}
	rejected, err := meter.Int64Counter("inq_answers_rejected_total",
		metric.WithDescription("Answers rejected by a check"))
	if err != nil {
		return nil, cerr.Wrap(err, "failed to create answers_rejected counter")
	}
	exhausted, err := meter.Int64Counter("inq_attempts_exhausted_total",
		metric.WithDescription("Reads that gave up after the attempt limit"))
	if err != nil {
		return nil, cerr.Wrap(err, "failed to create attempts_exhausted counter")
	}
	return &AttemptMetrics{accepted: accepted, rejected: rejected, exhausted: exhausted}, nil
}

// Attempts returns the process-wide counters, or nil if they could not be
// created.
func Attempts() *AttemptMetrics {
	metricsOnce.Do(func() {
		attempts, _ = NewAttemptMetrics(otel.Meter("inq"))
	})
	return attempts
}

// Accepted records an accepted answer after attempt reads.
func (m *AttemptMetrics) Accepted(ctx context.Context, attempt int) {
	if m == nil {
		return
	}
	m.accepted.Add(ctx, 1, metric.WithAttributes(attribute.Int("attempt", attempt)))
}

// Rejected records a rejection by the check at index idx.
func (m *AttemptMetrics) Rejected(ctx context.Context, idx int) {
	if m == nil {
		return
	}
	m.rejected.Add(ctx, 1, metric.WithAttributes(attribute.Int("check", idx)))
}

// Exhausted records a read that hit its attempt limit.
func (m *AttemptMetrics) Exhausted(ctx context.Context) {
	if m == nil {
		return
	}
	m.exhausted.Add(ctx, 1)
}
