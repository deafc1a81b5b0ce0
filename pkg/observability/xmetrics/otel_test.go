package xmetrics_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/omeyang/xambient/pkg/observability/xmetrics"
)

// newTestProviders 创建用于测试的内存 Provider
func newTestProviders(t *testing.T) (xmetrics.Observer, *tracetest.InMemoryExporter, *sdkmetric.ManualReader) {
	t.Helper()
	exporter := tracetest.NewInMemoryExporter()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSyncer(exporter))
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() {
		_ = tp.Shutdown(context.Background())
		_ = mp.Shutdown(context.Background())
	})

	obs, err := xmetrics.NewOTelObserver(
		xmetrics.WithInstrumentationName("xmetrics-test"),
		xmetrics.WithTracerProvider(tp),
		xmetrics.WithMeterProvider(mp),
	)
	require.NoError(t, err)
	return obs, exporter, reader
}

func collect(t *testing.T, reader *sdkmetric.ManualReader) map[string]metricdata.Metrics {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))
	out := make(map[string]metricdata.Metrics)
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m
		}
	}
	return out
}

func TestNewOTelObserver_Defaults(t *testing.T) {
	obs, err := xmetrics.NewOTelObserver(
		xmetrics.WithInstrumentationName(""),
		xmetrics.WithTracerProvider(nil),
		xmetrics.WithMeterProvider(nil),
		nil,
	)
	require.NoError(t, err)
	require.NotNil(t, obs)
}

func TestOTelSpan_RecordsTraceAndMetrics(t *testing.T) {
	obs, exporter, reader := newTestProviders(t)

	_, span := xmetrics.Start(context.Background(), obs, xmetrics.SpanOptions{
		Component: "xtiming",
		Operation: "step1",
		Attrs:     []xmetrics.Attr{xmetrics.Depth(2)},
	})
	span.End(xmetrics.Result{})
	span.End(xmetrics.Result{Err: errors.New("ignored")})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "step1", spans[0].Name)
	assert.Equal(t, codes.Ok, spans[0].Status.Code)
	assert.Contains(t, spans[0].Attributes, attribute.Int("scope.depth", 2))
	assert.Contains(t, spans[0].Attributes, attribute.String("component", "xtiming"))

	metrics := collect(t, reader)
	total, ok := metrics["xambient.scope.total"].Data.(metricdata.Sum[int64])
	require.True(t, ok)
	require.Len(t, total.DataPoints, 1)
	assert.Equal(t, int64(1), total.DataPoints[0].Value, "End 幂等，只记录一次")

	status, _ := total.DataPoints[0].Attributes.Value("status")
	assert.Equal(t, "ok", status.AsString())

	hist, ok := metrics["xambient.scope.duration"].Data.(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
}

func TestOTelSpan_ErrorStatus(t *testing.T) {
	obs, exporter, reader := newTestProviders(t)

	_, span := obs.Start(context.Background(), xmetrics.SpanOptions{})
	span.End(xmetrics.Result{Err: errors.New("boom"), Attrs: []xmetrics.Attr{
		xmetrics.String("k", "v"),
		xmetrics.Elapsed(1500 * time.Microsecond),
	}})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "unknown", spans[0].Name)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "boom", spans[0].Status.Description)
	assert.Contains(t, spans[0].Attributes, attribute.String("k", "v"))
	assert.Contains(t, spans[0].Attributes, attribute.Int64(xmetrics.AttrElapsedUS, 1500))

	total := collect(t, reader)["xambient.scope.total"].Data.(metricdata.Sum[int64])
	status, _ := total.DataPoints[0].Attributes.Value("status")
	assert.Equal(t, "error", status.AsString())
}

func TestOTelSpan_ExplicitErrorStatusWithoutErr(t *testing.T) {
	obs, exporter, _ := newTestProviders(t)

	_, span := obs.Start(context.Background(), xmetrics.SpanOptions{Operation: "op"})
	span.End(xmetrics.Result{Status: xmetrics.StatusError})

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, codes.Error, spans[0].Status.Code)
	assert.Equal(t, "scope failed", spans[0].Status.Description)
}

func TestOTelSpan_NestedParent(t *testing.T) {
	obs, exporter, _ := newTestProviders(t)

	ctx, parent := obs.Start(context.Background(), xmetrics.SpanOptions{Operation: "parent"})
	_, child := obs.Start(ctx, xmetrics.SpanOptions{Operation: "child"})
	child.End(xmetrics.Result{})
	parent.End(xmetrics.Result{})

	spans := exporter.GetSpans()
	require.Len(t, spans, 2)
	assert.Equal(t, "child", spans[0].Name)
	assert.Equal(t, spans[1].SpanContext.SpanID(), spans[0].Parent.SpanID())
}
