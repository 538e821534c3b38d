package webhook

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/taskwire/taskwire/pkg/monitoring"
)

// Dispatch outcome label values.
const (
	OutcomeSuccess        = "success"
	OutcomeConfigError    = "config_error"
	OutcomeTransportError = "transport_error"
	OutcomeHTTPError      = "http_error"
)

const labelUnknownValue = "unknown"

// Metrics instruments card rendering and webhook dispatch. A nil *Metrics
// disables all recording.
type Metrics struct {
	cardsBuiltTotal   metric.Int64Counter
	dispatchTotal     metric.Int64Counter
	dispatchHistogram metric.Float64Histogram
	payloadHistogram  metric.Int64Histogram
}

// NewMetrics initializes dispatch metrics using the provided meter.
func NewMetrics(meter metric.Meter) (*Metrics, error) {
	if meter == nil {
		return &Metrics{}, nil
	}
	m := &Metrics{}
	var err error
	m.cardsBuiltTotal, err = meter.Int64Counter(
		monitoring.MetricName("cards_built_total"),
		metric.WithDescription("Total cards rendered, partitioned by domain"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create cards built counter: %w", err)
	}
	m.dispatchTotal, err = meter.Int64Counter(
		monitoring.MetricName("dispatch_total"),
		metric.WithDescription("Total webhook dispatch attempts, partitioned by outcome"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch counter: %w", err)
	}
	m.dispatchHistogram, err = meter.Float64Histogram(
		monitoring.MetricName("dispatch_duration_seconds"),
		metric.WithDescription("Webhook dispatch duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(monitoring.DispatchDurationBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create dispatch duration histogram: %w", err)
	}
	m.payloadHistogram, err = meter.Int64Histogram(
		monitoring.MetricName("dispatch_payload_bytes"),
		metric.WithDescription("Size distribution of dispatched card payloads"),
		metric.WithUnit("bytes"),
		metric.WithExplicitBucketBoundaries(monitoring.PayloadSizeBuckets...),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create payload size histogram: %w", err)
	}
	return m, nil
}

// RecordCardBuilt counts one rendered card for the domain.
func (m *Metrics) RecordCardBuilt(ctx context.Context, domainKey string) {
	if m == nil || m.cardsBuiltTotal == nil {
		return
	}
	m.cardsBuiltTotal.Add(ctx, 1, metric.WithAttributes(attribute.String("domain", labelOrUnknown(domainKey))))
}

// RecordDispatch observes a single dispatch attempt. payloadBytes may be
// zero when no request body was produced.
func (m *Metrics) RecordDispatch(
	ctx context.Context,
	domainKey string,
	outcome string,
	d time.Duration,
	payloadBytes int,
) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(
		attribute.String("domain", labelOrUnknown(domainKey)),
		attribute.String("outcome", outcome),
	)
	if m.dispatchTotal != nil {
		m.dispatchTotal.Add(ctx, 1, attrs)
	}
	if m.dispatchHistogram != nil {
		m.dispatchHistogram.Record(ctx, d.Seconds(), attrs)
	}
	if m.payloadHistogram != nil && payloadBytes > 0 {
		m.payloadHistogram.Record(ctx, int64(payloadBytes), attrs)
	}
}

func labelOrUnknown(v string) string {
	if v == "" {
		return labelUnknownValue
	}
	return v
}
