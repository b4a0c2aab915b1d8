// Package telemetry wires OpenTelemetry traces and metrics for analyses.
// When disabled every helper is backed by no-op providers.
package telemetry

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/metric"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/homebridge-ai/clarity/internal/redact"
)

const instrumentationName = "github.com/homebridge-ai/clarity"

// Config controls telemetry setup.
type Config struct {
	Enabled  bool
	Endpoint string
	Protocol string // grpc | http
	Service  string
	Version  string
}

// Provider wires tracer/meter providers and exposes helpers.
type Provider struct {
	Enabled bool
	tracer  trace.Tracer
	meter   metric.Meter

	requestsCounter       metric.Int64Counter
	analysisDuration      metric.Float64Histogram
	categoryHitsCounter   metric.Int64Counter
	confidenceCounter     metric.Int64Counter
	shutdownTraceProvider func(context.Context) error
	shutdownMeterProvider func(context.Context) error
}

// NewProvider configures OTEL exporters + providers. When disabled, returns no-op providers.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if !cfg.Enabled {
		return NewWithProviders(tracenoop.NewTracerProvider(), metricnoop.NewMeterProvider()), nil
	}

	protocol := strings.ToLower(strings.TrimSpace(cfg.Protocol))
	if protocol == "" {
		protocol = "grpc"
	}
	if protocol != "grpc" && protocol != "http" {
		return nil, fmt.Errorf("telemetry: unsupported protocol %q", cfg.Protocol)
	}

	redact.Logf("telemetry enabled (OpenTelemetry OTLP %s) endpoint=%s; if no collector is listening, periodic 'failed to upload metrics' warnings are expected", protocol, cfg.Endpoint)

	res, err := resource.New(ctx,
		resource.WithFromEnv(),
		resource.WithTelemetrySDK(),
		resource.WithAttributes(
			attribute.String("service.name", cfg.Service),
			attribute.String("service.version", cfg.Version),
		),
	)
	if err != nil {
		return nil, err
	}

	var (
		traceExporter  sdktrace.SpanExporter
		metricExporter sdkmetric.Exporter
	)
	switch protocol {
	case "grpc":
		traceExporter, err = otlptracegrpc.New(ctx, otlptracegrpc.WithEndpoint(cfg.Endpoint), otlptracegrpc.WithInsecure())
		if err != nil {
			return nil, err
		}
		metricExporter, err = otlpmetricgrpc.New(ctx, otlpmetricgrpc.WithEndpoint(cfg.Endpoint), otlpmetricgrpc.WithInsecure())
	case "http":
		traceExporter, err = otlptracehttp.New(ctx, otlptracehttp.WithEndpoint(cfg.Endpoint), otlptracehttp.WithInsecure())
		if err != nil {
			return nil, err
		}
		metricExporter, err = otlpmetrichttp.New(ctx, otlpmetrichttp.WithEndpoint(cfg.Endpoint), otlpmetrichttp.WithInsecure())
	}
	if err != nil {
		_ = traceExporter.Shutdown(ctx)
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(traceExporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	mp := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(sdkmetric.NewPeriodicReader(metricExporter)),
	)
	otel.SetMeterProvider(mp)

	p := NewWithProviders(tp, mp)
	p.Enabled = true
	p.shutdownTraceProvider = tp.Shutdown
	p.shutdownMeterProvider = mp.Shutdown
	return p, nil
}

// NewWithProviders builds a Provider over existing tracer and meter
// providers. Shutdown of those providers stays with the caller.
func NewWithProviders(tp trace.TracerProvider, mp metric.MeterProvider) *Provider {
	p := &Provider{
		tracer: tp.Tracer(instrumentationName),
		meter:  mp.Meter(instrumentationName),
	}
	p.initInstruments()
	return p
}

func (p *Provider) initInstruments() {
	if p == nil {
		return
	}
	// Use meter to create instruments; ignore errors to keep telemetry best-effort.
	p.requestsCounter, _ = p.meter.Int64Counter("clarity_requests_total",
		metric.WithDescription("Analyses served, by endpoint and decision."))
	p.analysisDuration, _ = p.meter.Float64Histogram("clarity_analysis_duration_ms",
		metric.WithDescription("Time spent in the triage pipeline."), metric.WithUnit("ms"))
	p.categoryHitsCounter, _ = p.meter.Int64Counter("clarity_category_hits_total",
		metric.WithDescription("Categories matched per analysis."))
	p.confidenceCounter, _ = p.meter.Int64Counter("clarity_confidence_total",
		metric.WithDescription("Analyses by confidence level."))
}

// Tracer returns the tracer.
func (p *Provider) Tracer() trace.Tracer {
	if p == nil {
		return tracenoop.NewTracerProvider().Tracer("")
	}
	return p.tracer
}

// Meter returns the meter.
func (p *Provider) Meter() metric.Meter {
	if p == nil {
		return metricnoop.NewMeterProvider().Meter("")
	}
	return p.meter
}

// StartSpan starts a span carrying only the attributes SafeAttributes lets through.
func (p *Provider) StartSpan(ctx context.Context, name string, attrs map[string]interface{}) (context.Context, trace.Span) {
	return p.Tracer().Start(ctx, name, trace.WithAttributes(SafeAttributes(attrs)...))
}

// Shutdown flushes providers.
func (p *Provider) Shutdown(ctx context.Context) {
	if p == nil {
		return
	}
	if p.shutdownTraceProvider != nil {
		if err := p.shutdownTraceProvider(ctx); err != nil {
			redact.Warnf("telemetry: trace provider shutdown: %v", err)
		}
	}
	if p.shutdownMeterProvider != nil {
		if err := p.shutdownMeterProvider(ctx); err != nil {
			redact.Warnf("telemetry: meter provider shutdown: %v", err)
		}
	}
}

// Analysis is what gets recorded for one served analysis.
type Analysis struct {
	Endpoint      string
	Decision      string
	IssueCategory string
	Confidence    string
	Categories    []string
	DurationMs    float64
}

// RecordAnalysis emits counters/histograms with safe labels.
func (p *Provider) RecordAnalysis(ctx context.Context, a Analysis) {
	if p == nil {
		return
	}
	if ctx == nil {
		ctx = context.Background()
	}
	labels := metric.WithAttributes(
		attribute.String("clarity.endpoint", a.Endpoint),
		attribute.String("clarity.decision", a.Decision),
	)
	p.requestsCounter.Add(ctx, 1, labels)
	p.analysisDuration.Record(ctx, a.DurationMs, labels)
	if a.Confidence != "" {
		p.confidenceCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("clarity.confidence", a.Confidence)))
	}
	for _, c := range a.Categories {
		p.categoryHitsCounter.Add(ctx, 1, metric.WithAttributes(
			attribute.String("clarity.category", c),
			attribute.Bool("clarity.issue", c == a.IssueCategory),
		))
	}
}
