package infrastructure

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.28.0"
)

const serviceName = "fleetcli"

// TracingProvider holds the configured tracer provider and its shutdown
// hook. Spans are exported to the given writer as pretty-printed JSON,
// which suits a one-shot batch run.
type TracingProvider struct {
	provider *sdktrace.TracerProvider
	logger   *slog.Logger
}

// InitializeTracing configures the global OpenTelemetry tracer provider
// with a stdout span exporter. Pass io.Discard to disable span output
// while keeping span plumbing intact.
func InitializeTracing(w io.Writer, logger *slog.Logger) (*TracingProvider, error) {
	if logger == nil {
		logger = slog.Default()
	}

	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create stdout trace exporter: %w", err)
	}

	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(serviceName),
		attribute.String("service.component", "pipeline"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	logger.Info("tracing initialized", slog.String("exporter", "stdout"))

	return &TracingProvider{provider: tp, logger: logger}, nil
}

// Shutdown flushes pending spans and stops the provider.
func (t *TracingProvider) Shutdown(ctx context.Context) error {
	if t == nil || t.provider == nil {
		return nil
	}
	if err := t.provider.Shutdown(ctx); err != nil {
		t.logger.Warn("tracer provider shutdown failed", slog.String("error", err.Error()))
		return err
	}
	return nil
}
