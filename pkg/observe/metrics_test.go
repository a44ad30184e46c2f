package observe

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// newTestMetrics returns a Metrics instance backed by a ManualReader for
// programmatic metric inspection.
func newTestMetrics(t *testing.T) (*Metrics, *sdkmetric.ManualReader) {
	t.Helper()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(context.Background()) })

	m, err := NewMetrics(mp)
	if err != nil {
		t.Fatalf("NewMetrics: %v", err)
	}
	return m, reader
}

// collect gathers all metric data from the reader.
func collect(t *testing.T, reader *sdkmetric.ManualReader) metricdata.ResourceMetrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	if err := reader.Collect(context.Background(), &rm); err != nil {
		t.Fatalf("Collect: %v", err)
	}
	return rm
}

// findMetric searches for a metric by name across all scope metrics.
func findMetric(rm metricdata.ResourceMetrics, name string) *metricdata.Metrics {
	for _, sm := range rm.ScopeMetrics {
		for i := range sm.Metrics {
			if sm.Metrics[i].Name == name {
				return &sm.Metrics[i]
			}
		}
	}
	return nil
}

func TestNewMetrics_CreatesWithoutError(t *testing.T) {
	m, _ := newTestMetrics(t)
	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
}

func TestDurationHistograms(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	histograms := []struct {
		name string
		h    metric.Float64Histogram
	}{
		{"pagevoice.speech.speak.duration", m.SpeakDuration},
		{"pagevoice.speech.listen.duration", m.ListenDuration},
		{"pagevoice.tool.duration", m.ToolDuration},
	}

	for _, tc := range histograms {
		tc.h.Record(ctx, 0.25)
		tc.h.Record(ctx, 1.5)
	}

	rm := collect(t, reader)

	for _, tc := range histograms {
		t.Run(tc.name, func(t *testing.T) {
			met := findMetric(rm, tc.name)
			if met == nil {
				t.Fatalf("metric %q not found", tc.name)
			}
			hist, ok := met.Data.(metricdata.Histogram[float64])
			if !ok {
				t.Fatalf("metric %q is not a histogram", tc.name)
			}
			if len(hist.DataPoints) == 0 {
				t.Fatalf("metric %q has no data points", tc.name)
			}
			if got := hist.DataPoints[0].Count; got != 2 {
				t.Errorf("sample count = %d, want 2", got)
			}
		})
	}
}

func TestLocatorScanCounter(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordLocatorScan(ctx, "field", "found")
	m.RecordLocatorScan(ctx, "field", "found")
	m.RecordLocatorScan(ctx, "button", "not_found")

	rm := collect(t, reader)
	met := findMetric(rm, "pagevoice.page.locator.scans")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}

	// Find the data point with kind=field.
	for _, dp := range sum.DataPoints {
		for _, kv := range dp.Attributes.ToSlice() {
			if string(kv.Key) == "kind" && kv.Value.AsString() == "field" {
				if dp.Value != 2 {
					t.Errorf("counter value = %d, want 2", dp.Value)
				}
				return
			}
		}
	}
	t.Error("data point with kind=field not found")
}

func TestToolCallRecordsCountAndDuration(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordToolCall(ctx, "find_field", "ok", 0.12)
	m.RecordToolCall(ctx, "find_field", "error", 0.03)

	rm := collect(t, reader)

	met := findMetric(rm, "pagevoice.tool.calls")
	if met == nil {
		t.Fatal("tool.calls metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("tool.calls is not a sum")
	}
	var total int64
	for _, dp := range sum.DataPoints {
		total += dp.Value
	}
	if total != 2 {
		t.Errorf("total tool calls = %d, want 2", total)
	}

	durMet := findMetric(rm, "pagevoice.tool.duration")
	if durMet == nil {
		t.Fatal("tool.duration metric not found")
	}
	hist, ok := durMet.Data.(metricdata.Histogram[float64])
	if !ok {
		t.Fatal("tool.duration is not a histogram")
	}
	var samples uint64
	for _, dp := range hist.DataPoints {
		samples += dp.Count
	}
	if samples != 2 {
		t.Errorf("duration samples = %d, want 2", samples)
	}
}

func TestExtractCharsHistogram(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.RecordExtract(ctx, 1234)

	rm := collect(t, reader)
	met := findMetric(rm, "pagevoice.page.extract.chars")
	if met == nil {
		t.Fatal("metric not found")
	}
	hist, ok := met.Data.(metricdata.Histogram[int64])
	if !ok {
		t.Fatal("metric is not a histogram")
	}
	if len(hist.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if got := hist.DataPoints[0].Sum; got != 1234 {
		t.Errorf("histogram sum = %d, want 1234", got)
	}
}

func TestActiveSessionsGauge(t *testing.T) {
	m, reader := newTestMetrics(t)
	ctx := context.Background()

	m.AddActiveSession(ctx, 1)
	m.AddActiveSession(ctx, 1)
	m.AddActiveSession(ctx, -1)

	rm := collect(t, reader)
	met := findMetric(rm, "pagevoice.browser.active_sessions")
	if met == nil {
		t.Fatal("metric not found")
	}
	sum, ok := met.Data.(metricdata.Sum[int64])
	if !ok {
		t.Fatal("metric is not a sum")
	}
	if len(sum.DataPoints) == 0 {
		t.Fatal("no data points")
	}
	if got := sum.DataPoints[0].Value; got != 1 {
		t.Errorf("gauge value = %d, want 1", got)
	}
}

func TestNilMetricsAreNoOps(t *testing.T) {
	var m *Metrics
	ctx := context.Background()

	// None of these may panic on a nil receiver.
	m.RecordLocatorScan(ctx, "field", "found")
	m.RecordScroll(ctx, "down")
	m.RecordToolCall(ctx, "speak", "ok", 0.5)
	m.RecordSpeechError(ctx, "speak")
	m.RecordSpeak(ctx, 0.5)
	m.RecordListen(ctx, 0.5)
	m.RecordExtract(ctx, 100)
	m.AddActiveSession(ctx, 1)
}

func TestDefaultMetrics_ReturnsSameInstance(t *testing.T) {
	// DefaultMetrics uses the global OTel provider so we just check
	// that repeated calls return the same pointer.
	a := DefaultMetrics()
	b := DefaultMetrics()
	if a != b {
		t.Error("DefaultMetrics returned different pointers")
	}
}
