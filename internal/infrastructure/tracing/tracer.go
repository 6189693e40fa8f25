// Package tracing provides OpenTelemetry-based distributed tracing
// infrastructure. It supports multiple exporters (stdout, OTLP) and provides
// domain-specific span helpers for catalog rebuild and name resolution tracing.
package tracing

import (
	"context"
	"fmt"
	"io"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const (
	// TracerName is the name used for the modelworth tracer.
	TracerName = "github.com/jbctechsolutions/modelworth"

	// Version is the semantic version of the tracer.
	Version = "1.0.0"
)

// ExporterType defines the type of trace exporter.
type ExporterType string

const (
	ExporterNone   ExporterType = "none"
	ExporterStdout ExporterType = "stdout"
	ExporterOTLP   ExporterType = "otlp"
)

// Config holds tracing configuration.
type Config struct {
	Enabled      bool         // Whether tracing is enabled
	ExporterType ExporterType // Type of exporter to use
	OTLPEndpoint string       // OTLP collector endpoint (for OTLP exporter)
	ServiceName  string       // Service name for traces
	Environment  string       // Deployment environment (development, production)
	SampleRate   float64      // Sampling rate (0.0 to 1.0)
	Output       io.Writer    // Output for stdout exporter (defaults to os.Stdout)
}

// DefaultConfig returns sensible default tracing configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:      false,
		ExporterType: ExporterNone,
		ServiceName:  "modelworth",
		Environment:  "development",
		SampleRate:   1.0,
	}
}

// Tracer wraps an OpenTelemetry tracer with domain-specific functionality.
type Tracer struct {
	tracer   trace.Tracer
	provider *sdktrace.TracerProvider
	config   Config
}

// global is the package-level default tracer.
var (
	global     *Tracer
	globalOnce sync.Once
)

// Init initializes the global tracer with the provided configuration.
func Init(ctx context.Context, cfg Config) (*Tracer, error) {
	var err error
	globalOnce.Do(func() {
		global, err = New(ctx, cfg)
	})
	return global, err
}

// Default returns the global tracer, or a no-op tracer if not initialized.
func Default() *Tracer {
	if global == nil {
		return &Tracer{
			tracer: otel.Tracer(TracerName),
			config: DefaultConfig(),
		}
	}
	return global
}

// New creates a new Tracer with the provided configuration.
func New(ctx context.Context, cfg Config) (*Tracer, error) {
	if !cfg.Enabled || cfg.ExporterType == ExporterNone {
		return &Tracer{
			tracer: noop.NewTracerProvider().Tracer(TracerName),
			config: cfg,
		}, nil
	}

	exporter, err := createExporter(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create exporter: %w", err)
	}

	// Create resource without merging with Default() to avoid schema URL conflicts.
	// The default resource's schema URL may conflict with our semconv version.
	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(cfg.ServiceName),
			semconv.ServiceVersion(Version),
			attribute.String("deployment.environment", cfg.Environment),
		),
		resource.WithHost(),
		resource.WithTelemetrySDK(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var sampler sdktrace.Sampler
	if cfg.SampleRate >= 1.0 {
		sampler = sdktrace.AlwaysSample()
	} else if cfg.SampleRate <= 0.0 {
		sampler = sdktrace.NeverSample()
	} else {
		sampler = sdktrace.TraceIDRatioBased(cfg.SampleRate)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sampler),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	otel.SetTracerProvider(provider)

	return &Tracer{
		tracer:   provider.Tracer(TracerName, trace.WithInstrumentationVersion(Version)),
		provider: provider,
		config:   cfg,
	}, nil
}

// createExporter creates the appropriate exporter based on configuration.
func createExporter(ctx context.Context, cfg Config) (sdktrace.SpanExporter, error) {
	switch cfg.ExporterType {
	case ExporterStdout:
		opts := []stdouttrace.Option{
			stdouttrace.WithPrettyPrint(),
		}
		if cfg.Output != nil {
			opts = append(opts, stdouttrace.WithWriter(cfg.Output))
		}
		return stdouttrace.New(opts...)

	case ExporterOTLP:
		opts := []otlptracehttp.Option{
			otlptracehttp.WithInsecure(),
		}
		if cfg.OTLPEndpoint != "" {
			opts = append(opts, otlptracehttp.WithEndpoint(cfg.OTLPEndpoint))
		}
		return otlptracehttp.New(ctx, opts...)

	default:
		return nil, fmt.Errorf("unsupported exporter type: %s", cfg.ExporterType)
	}
}

// Shutdown gracefully shuts down the tracer provider.
func (t *Tracer) Shutdown(ctx context.Context) error {
	if t.provider != nil {
		return t.provider.Shutdown(ctx)
	}
	return nil
}

// Start starts a new span with the given name.
func (t *Tracer) Start(ctx context.Context, name string, opts ...trace.SpanStartOption) (context.Context, trace.Span) {
	return t.tracer.Start(ctx, name, opts...)
}

// SpanFromContext returns the current span from context.
func SpanFromContext(ctx context.Context) trace.Span {
	return trace.SpanFromContext(ctx)
}

// --- Domain-specific span helpers ---

// RebuildSpan represents a catalog rebuild span.
type RebuildSpan struct {
	span trace.Span
	ctx  context.Context
}

// StartRebuildSpan starts a span for a catalog rebuild.
func (t *Tracer) StartRebuildSpan(ctx context.Context, source, correlationID string) (context.Context, *RebuildSpan) {
	ctx, span := t.tracer.Start(ctx, "catalog.rebuild",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("catalog.source", source),
			attribute.String("catalog.correlation_id", correlationID),
		),
	)

	return ctx, &RebuildSpan{span: span, ctx: ctx}
}

// SetEntryCount sets the number of entries in the rebuilt catalog.
func (rs *RebuildSpan) SetEntryCount(count int) {
	rs.span.SetAttributes(attribute.Int("catalog.entries", count))
}

// SetPayloadSize sets the size of the fetched payload in bytes.
func (rs *RebuildSpan) SetPayloadSize(size int) {
	rs.span.SetAttributes(attribute.Int("catalog.payload_bytes", size))
}

// SetSuperseded marks the rebuild as superseded by a newer request.
func (rs *RebuildSpan) SetSuperseded() {
	rs.span.SetAttributes(attribute.Bool("catalog.superseded", true))
}

// End ends the rebuild span with success status.
func (rs *RebuildSpan) End() {
	rs.span.SetStatus(codes.Ok, "catalog rebuild completed")
	rs.span.End()
}

// EndWithError ends the rebuild span with error status.
func (rs *RebuildSpan) EndWithError(err error) {
	rs.span.RecordError(err)
	rs.span.SetStatus(codes.Error, err.Error())
	rs.span.End()
}

// FetchSpan represents a provider fetch span.
type FetchSpan struct {
	span trace.Span
	ctx  context.Context
}

// StartFetchSpan starts a span for a provider fetch request.
func (t *Tracer) StartFetchSpan(ctx context.Context, source string) (context.Context, *FetchSpan) {
	ctx, span := t.tracer.Start(ctx, "provider.fetch",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("provider.source", source),
		),
	)

	return ctx, &FetchSpan{span: span, ctx: ctx}
}

// SetResponseSize sets the size of the response body in bytes.
func (fs *FetchSpan) SetResponseSize(size int) {
	fs.span.SetAttributes(attribute.Int("provider.response_bytes", size))
}

// End ends the fetch span with success status.
func (fs *FetchSpan) End() {
	fs.span.SetStatus(codes.Ok, "provider fetch completed")
	fs.span.End()
}

// EndWithError ends the fetch span with error status.
func (fs *FetchSpan) EndWithError(err error) {
	fs.span.RecordError(err)
	fs.span.SetStatus(codes.Error, err.Error())
	fs.span.End()
}

// ResolveSpan represents a model name resolution span.
type ResolveSpan struct {
	span trace.Span
	ctx  context.Context
}

// StartResolveSpan starts a span for a model name resolution.
func (t *Tracer) StartResolveSpan(ctx context.Context, model string) (context.Context, *ResolveSpan) {
	ctx, span := t.tracer.Start(ctx, "catalog.resolve",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("resolve.model", model),
		),
	)

	return ctx, &ResolveSpan{span: span, ctx: ctx}
}

// SetMatch records the catalog key the resolution landed on.
func (rs *ResolveSpan) SetMatch(key string) {
	rs.span.SetAttributes(
		attribute.String("resolve.matched_key", key),
		attribute.Bool("resolve.hit", true),
	)
}

// SetMiss marks the resolution as unmatched.
func (rs *ResolveSpan) SetMiss() {
	rs.span.SetAttributes(attribute.Bool("resolve.hit", false))
}

// End ends the resolve span with success status.
func (rs *ResolveSpan) End() {
	rs.span.SetStatus(codes.Ok, "resolution completed")
	rs.span.End()
}

// AddEvent adds an event to the current span.
func AddEvent(ctx context.Context, name string, attrs ...attribute.KeyValue) {
	span := trace.SpanFromContext(ctx)
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

// RecordError records an error on the current span.
func RecordError(ctx context.Context, err error) {
	span := trace.SpanFromContext(ctx)
	span.RecordError(err)
}

// SetAttribute sets an attribute on the current span.
func SetAttribute(ctx context.Context, key string, value any) {
	span := trace.SpanFromContext(ctx)
	switch v := value.(type) {
	case string:
		span.SetAttributes(attribute.String(key, v))
	case int:
		span.SetAttributes(attribute.Int(key, v))
	case int64:
		span.SetAttributes(attribute.Int64(key, v))
	case float64:
		span.SetAttributes(attribute.Float64(key, v))
	case bool:
		span.SetAttributes(attribute.Bool(key, v))
	}
}
