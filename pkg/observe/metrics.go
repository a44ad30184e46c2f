// Package observe provides application-wide observability primitives for
// pagevoice: OpenTelemetry metrics with a Prometheus exporter bridge.
//
// Metrics are recorded through the OpenTelemetry Metrics API. A Prometheus
// exporter bridge is available via [InitProvider] so that metrics can be
// scraped via the standard /metrics endpoint. A package-level default
// [Metrics] instance ([DefaultMetrics]) is provided for convenience; tests
// should use [NewMetrics] with a custom [metric.MeterProvider] to avoid
// cross-test pollution.
package observe

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// meterName is the instrumentation scope name used for all pagevoice metrics.
const meterName = "github.com/entrhq/pagevoice"

// Metrics holds all OpenTelemetry metric instruments for the application.
// All fields are safe for concurrent use — the underlying OTel types handle
// their own synchronisation.
type Metrics struct {
	// --- Latency histograms ---

	// SpeakDuration tracks how long one speech playback takes, end to end.
	SpeakDuration metric.Float64Histogram

	// ListenDuration tracks how long one listen operation takes to settle.
	ListenDuration metric.Float64Histogram

	// ToolDuration tracks MCP tool execution latency.
	ToolDuration metric.Float64Histogram

	// ExtractChars tracks the size of extracted page content in characters.
	ExtractChars metric.Int64Histogram

	// --- Counters ---

	// LocatorScans counts page locator scans. Use with attributes:
	//   attribute.String("kind", "field"|"button"), attribute.String("outcome", "found"|"not_found")
	LocatorScans metric.Int64Counter

	// Scrolls counts scroll operations. Use with attribute:
	//   attribute.String("direction", ...)
	Scrolls metric.Int64Counter

	// ToolCalls counts MCP tool invocations. Use with attributes:
	//   attribute.String("tool", ...), attribute.String("status", ...)
	ToolCalls metric.Int64Counter

	// --- Error counters ---

	// SpeechErrors counts swallowed or surfaced speech platform errors.
	// Use with attribute: attribute.String("kind", "speak"|"listen")
	SpeechErrors metric.Int64Counter

	// --- Gauges ---

	// ActiveSessions tracks the number of live browser sessions.
	ActiveSessions metric.Int64UpDownCounter
}

// latencyBuckets defines histogram bucket boundaries (in seconds). Speech
// operations wait on a human, so the tail is long.
var latencyBuckets = []float64{
	0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60,
}

// charBuckets defines bucket boundaries for extracted content sizes; the
// extractor caps output at 8000 characters.
var charBuckets = []float64{
	100, 500, 1000, 2000, 4000, 8000,
}

// NewMetrics creates a fully initialised [Metrics] struct using the given
// [metric.MeterProvider]. Returns an error if any instrument creation fails.
func NewMetrics(mp metric.MeterProvider) (*Metrics, error) {
	m := mp.Meter(meterName)
	var err error
	met := &Metrics{}

	// Histograms.
	if met.SpeakDuration, err = m.Float64Histogram("pagevoice.speech.speak.duration",
		metric.WithDescription("End-to-end latency of one speech playback."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ListenDuration, err = m.Float64Histogram("pagevoice.speech.listen.duration",
		metric.WithDescription("Time for one listen operation to settle."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ToolDuration, err = m.Float64Histogram("pagevoice.tool.duration",
		metric.WithDescription("Latency of MCP tool execution."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(latencyBuckets...),
	); err != nil {
		return nil, err
	}
	if met.ExtractChars, err = m.Int64Histogram("pagevoice.page.extract.chars",
		metric.WithDescription("Size of extracted page content in characters."),
		metric.WithExplicitBucketBoundaries(charBuckets...),
	); err != nil {
		return nil, err
	}

	// Counters.
	if met.LocatorScans, err = m.Int64Counter("pagevoice.page.locator.scans",
		metric.WithDescription("Total locator scans by kind and outcome."),
	); err != nil {
		return nil, err
	}
	if met.Scrolls, err = m.Int64Counter("pagevoice.page.scrolls",
		metric.WithDescription("Total scroll operations by direction."),
	); err != nil {
		return nil, err
	}
	if met.ToolCalls, err = m.Int64Counter("pagevoice.tool.calls",
		metric.WithDescription("Total MCP tool invocations by tool name and status."),
	); err != nil {
		return nil, err
	}

	// Error counters.
	if met.SpeechErrors, err = m.Int64Counter("pagevoice.speech.errors",
		metric.WithDescription("Total speech platform errors by kind."),
	); err != nil {
		return nil, err
	}

	// Gauges (UpDownCounters).
	if met.ActiveSessions, err = m.Int64UpDownCounter("pagevoice.browser.active_sessions",
		metric.WithDescription("Number of live browser sessions."),
	); err != nil {
		return nil, err
	}

	return met, nil
}

// defaultMetrics is the lazily-initialised package-level Metrics instance.
var (
	defaultMetrics     *Metrics
	defaultMetricsOnce sync.Once
)

// DefaultMetrics returns the package-level [Metrics] instance, creating it on
// first call using [otel.GetMeterProvider]. Subsequent calls return the same
// pointer. Panics if instrument creation fails (should not happen with the
// global provider).
func DefaultMetrics() *Metrics {
	defaultMetricsOnce.Do(func() {
		var err error
		defaultMetrics, err = NewMetrics(otel.GetMeterProvider())
		if err != nil {
			panic("observe: failed to create default metrics: " + err.Error())
		}
	})
	return defaultMetrics
}

// Attr is a convenience alias for [attribute.String] to reduce verbosity at
// call sites.
func Attr(key, value string) attribute.KeyValue {
	return attribute.String(key, value)
}

// RecordLocatorScan records one locator scan with the standard attribute set.
// Safe to call on a nil receiver, which makes metrics optional for callers.
func (m *Metrics) RecordLocatorScan(ctx context.Context, kind, outcome string) {
	if m == nil {
		return
	}
	m.LocatorScans.Add(ctx, 1,
		metric.WithAttributes(Attr("kind", kind), Attr("outcome", outcome)),
	)
}

// RecordScroll records one scroll operation. Safe to call on a nil receiver.
func (m *Metrics) RecordScroll(ctx context.Context, direction string) {
	if m == nil {
		return
	}
	m.Scrolls.Add(ctx, 1, metric.WithAttributes(Attr("direction", direction)))
}

// RecordToolCall records one MCP tool invocation with its duration in
// seconds. Safe to call on a nil receiver.
func (m *Metrics) RecordToolCall(ctx context.Context, tool, status string, seconds float64) {
	if m == nil {
		return
	}
	attrs := metric.WithAttributes(Attr("tool", tool), Attr("status", status))
	m.ToolCalls.Add(ctx, 1, attrs)
	m.ToolDuration.Record(ctx, seconds, attrs)
}

// RecordSpeechError records one speech platform error by kind
// ("speak" or "listen"). Safe to call on a nil receiver.
func (m *Metrics) RecordSpeechError(ctx context.Context, kind string) {
	if m == nil {
		return
	}
	m.SpeechErrors.Add(ctx, 1, metric.WithAttributes(Attr("kind", kind)))
}

// RecordSpeak records the duration of one completed speech playback.
// Safe to call on a nil receiver.
func (m *Metrics) RecordSpeak(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.SpeakDuration.Record(ctx, seconds)
}

// RecordListen records the duration of one settled listen operation.
// Safe to call on a nil receiver.
func (m *Metrics) RecordListen(ctx context.Context, seconds float64) {
	if m == nil {
		return
	}
	m.ListenDuration.Record(ctx, seconds)
}

// RecordExtract records the size of one extracted content result.
// Safe to call on a nil receiver.
func (m *Metrics) RecordExtract(ctx context.Context, chars int) {
	if m == nil {
		return
	}
	m.ExtractChars.Record(ctx, int64(chars))
}

// AddActiveSession adjusts the live browser session gauge by delta.
// Safe to call on a nil receiver.
func (m *Metrics) AddActiveSession(ctx context.Context, delta int64) {
	if m == nil {
		return
	}
	m.ActiveSessions.Add(ctx, delta)
}
