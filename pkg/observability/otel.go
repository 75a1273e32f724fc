package observability

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// InstrumentationName names the tracer and meter.
const InstrumentationName = "github.com/matzehuels/mindmap"

// OTelPipelineHooks records pipeline stages as OpenTelemetry spans and
// metrics. Spans are emitted when a stage completes, with their start time
// backdated by the stage duration, so no span state is kept between the
// start and complete events.
type OTelPipelineHooks struct {
	NoopPipelineHooks

	tracer   trace.Tracer
	duration metric.Float64Histogram
	failures metric.Int64Counter
	files    metric.Int64Counter
	nodes    metric.Int64Histogram
}

// NewOTelPipelineHooks creates pipeline hooks backed by tp and mp.
func NewOTelPipelineHooks(tp trace.TracerProvider, mp metric.MeterProvider) (*OTelPipelineHooks, error) {
	meter := mp.Meter(InstrumentationName)
	h := &OTelPipelineHooks{tracer: tp.Tracer(InstrumentationName)}

	var err error
	h.duration, err = meter.Float64Histogram(
		"mindmap.stage.duration",
		metric.WithDescription("Pipeline stage duration in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, fmt.Errorf("create duration histogram: %w", err)
	}
	h.failures, err = meter.Int64Counter(
		"mindmap.stage.errors",
		metric.WithDescription("Number of failed pipeline stages"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create error counter: %w", err)
	}
	h.files, err = meter.Int64Counter(
		"mindmap.export.files",
		metric.WithDescription("Number of exported raster files"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create export counter: %w", err)
	}
	h.nodes, err = meter.Int64Histogram(
		"mindmap.tree.nodes",
		metric.WithDescription("Nodes surviving tree reduction"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return nil, fmt.Errorf("create node histogram: %w", err)
	}
	return h, nil
}

func (h *OTelPipelineHooks) OnReduce(ctx context.Context, nodeCount, orphans int, d time.Duration) {
	h.nodes.Record(ctx, int64(nodeCount))
	h.stage(ctx, "reduce", d, nil,
		attribute.Int("tree.nodes", nodeCount),
		attribute.Int("tree.orphans", orphans))
}

func (h *OTelPipelineHooks) OnLayoutComplete(ctx context.Context, leafCount, maxDepth int, d time.Duration, err error) {
	h.stage(ctx, "layout", d, err,
		attribute.Int("layout.leaves", leafCount),
		attribute.Int("layout.max_depth", maxDepth))
}

func (h *OTelPipelineHooks) OnRenderComplete(ctx context.Context, formats []string, d time.Duration, err error) {
	h.stage(ctx, "render", d, err, attribute.StringSlice("render.formats", formats))
}

func (h *OTelPipelineHooks) OnExportComplete(ctx context.Context, kind string, files int, d time.Duration, err error) {
	h.files.Add(ctx, int64(files), metric.WithAttributes(attribute.String("export.kind", kind)))
	h.stage(ctx, "export."+kind, d, err, attribute.Int("export.files", files))
}

// stage emits one backdated span and the stage metrics.
func (h *OTelPipelineHooks) stage(ctx context.Context, name string, d time.Duration, err error, attrs ...attribute.KeyValue) {
	end := time.Now()
	_, span := h.tracer.Start(ctx, "mindmap."+name,
		trace.WithTimestamp(end.Add(-d)),
		trace.WithAttributes(attrs...),
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End(trace.WithTimestamp(end))

	opts := metric.WithAttributes(attribute.String("stage", name))
	h.duration.Record(ctx, float64(d.Microseconds())/1000, opts)
	if err != nil {
		h.failures.Add(ctx, 1, opts)
	}
}

// OTelCacheHooks counts cache traffic with OpenTelemetry counters.
type OTelCacheHooks struct {
	hits   metric.Int64Counter
	misses metric.Int64Counter
	bytes  metric.Int64Counter
}

// NewOTelCacheHooks creates cache hooks backed by mp.
func NewOTelCacheHooks(mp metric.MeterProvider) (*OTelCacheHooks, error) {
	meter := mp.Meter(InstrumentationName)
	h := &OTelCacheHooks{}

	var err error
	if h.hits, err = meter.Int64Counter("mindmap.cache.hits", metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create hit counter: %w", err)
	}
	if h.misses, err = meter.Int64Counter("mindmap.cache.misses", metric.WithUnit("1")); err != nil {
		return nil, fmt.Errorf("create miss counter: %w", err)
	}
	if h.bytes, err = meter.Int64Counter("mindmap.cache.bytes_written", metric.WithUnit("By")); err != nil {
		return nil, fmt.Errorf("create size counter: %w", err)
	}
	return h, nil
}

func (h *OTelCacheHooks) OnCacheHit(ctx context.Context, keyType string) {
	h.hits.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType)))
}

func (h *OTelCacheHooks) OnCacheMiss(ctx context.Context, keyType string) {
	h.misses.Add(ctx, 1, metric.WithAttributes(attribute.String("key_type", keyType)))
}

func (h *OTelCacheHooks) OnCacheSet(ctx context.Context, keyType string, size int) {
	h.bytes.Add(ctx, int64(size), metric.WithAttributes(attribute.String("key_type", keyType)))
}
