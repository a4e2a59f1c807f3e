// AngelaMos | 2026
// telemetry.go

package core

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc/credentials"
	"google.golang.org/grpc/credentials/insecure"

	"github.com/carterperez-dev/hbnb/internal/config"
)

const defaultSampleRate = 0.1

// Telemetry owns the process tracer provider. Without an exporter it
// still samples every request locally so trace ids reach the logs and
// the X-Trace-ID header.
type Telemetry struct {
	provider        *sdktrace.TracerProvider
	propagator      propagation.TextMapPropagator
	shutdownTimeout time.Duration
	exporting       bool
}

// LocalTelemetry is the provider used when export is disabled or the
// exporter could not be built.
func LocalTelemetry(otelCfg config.OtelConfig) *Telemetry {
	return install(
		sdktrace.NewTracerProvider(sdktrace.WithSampler(sdktrace.AlwaysSample())),
		otelCfg,
		false,
	)
}

func NewTelemetry(
	ctx context.Context,
	otelCfg config.OtelConfig,
	appCfg config.AppConfig,
) (*Telemetry, error) {
	if !otelCfg.Enabled || otelCfg.Endpoint == "" {
		return LocalTelemetry(otelCfg), nil
	}

	opts := []otlptracegrpc.Option{
		otlptracegrpc.WithEndpoint(otelCfg.Endpoint),
	}
	if otelCfg.ExportTimeout > 0 {
		opts = append(opts, otlptracegrpc.WithTimeout(otelCfg.ExportTimeout))
	}

	if otelCfg.Insecure {
		opts = append(
			opts,
			otlptracegrpc.WithTLSCredentials(insecure.NewCredentials()),
		)
	} else {
		opts = append(opts, otlptracegrpc.WithTLSCredentials(credentials.NewClientTLSFromCert(nil, "")))
	}

	exporter, err := otlptracegrpc.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(otelCfg.ServiceName),
			semconv.ServiceVersion(appCfg.Version),
			attribute.String("deployment.environment", appCfg.Environment),
		),
		resource.WithHost(),
		resource.WithProcess(),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	sampleRate := otelCfg.SampleRate
	if sampleRate <= 0 || sampleRate > 1 {
		sampleRate = defaultSampleRate
	}

	batchOpts := []sdktrace.BatchSpanProcessorOption{
		sdktrace.WithMaxExportBatchSize(512),
	}
	if otelCfg.BatchTimeout > 0 {
		batchOpts = append(batchOpts, sdktrace.WithBatchTimeout(otelCfg.BatchTimeout))
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter, batchOpts...),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(
			sdktrace.TraceIDRatioBased(sampleRate),
		)),
	)

	return install(tp, otelCfg, true), nil
}

func install(
	tp *sdktrace.TracerProvider,
	otelCfg config.OtelConfig,
	exporting bool,
) *Telemetry {
	prop := propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	)

	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(prop)

	return &Telemetry{
		provider:        tp,
		propagator:      prop,
		shutdownTimeout: otelCfg.ShutdownTimeout,
		exporting:       exporting,
	}
}

func (t *Telemetry) Tracer(name string) trace.Tracer {
	return t.provider.Tracer(name)
}

func (t *Telemetry) Propagator() propagation.TextMapPropagator {
	return t.propagator
}

// Exporting reports whether spans leave the process.
func (t *Telemetry) Exporting() bool {
	return t.exporting
}

func (t *Telemetry) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}

	if t.shutdownTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, t.shutdownTimeout)
		defer cancel()
	}

	if err := t.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown tracer provider: %w", err)
	}

	return nil
}

func TraceIDFromContext(ctx context.Context) string {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		return span.SpanContext().TraceID().String()
	}
	return ""
}
