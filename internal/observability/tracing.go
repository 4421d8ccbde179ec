package observability

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/specialistvlad/aspectgo/internal/ctxlog"
)

// Exporter names accepted by TracingConfig.
const (
	ExporterNone   = "none"
	ExporterStdout = "stdout"
)

// TracingConfig selects how spans are exported.
type TracingConfig struct {
	ServiceName string
	Exporter    string
	// Writer receives stdout exporter output. Defaults to os.Stdout.
	Writer io.Writer
}

// InitTracing builds the tracer provider for cfg and installs it as the
// global provider. The returned shutdown func flushes pending spans and
// should be deferred by the caller. With the "none" exporter a no-op
// provider is returned and nothing global is touched.
func InitTracing(ctx context.Context, cfg TracingConfig) (trace.TracerProvider, func(context.Context) error, error) {
	logger := ctxlog.FromContext(ctx)
	noopShutdown := func(context.Context) error { return nil }

	exporterName := strings.ToLower(strings.TrimSpace(cfg.Exporter))
	switch exporterName {
	case "", ExporterNone:
		logger.Debug("Tracing disabled.")
		return noop.NewTracerProvider(), noopShutdown, nil
	case ExporterStdout:
	default:
		return nil, noopShutdown, fmt.Errorf("unknown trace exporter %q: must be one of none, stdout", cfg.Exporter)
	}

	w := cfg.Writer
	if w == nil {
		w = os.Stdout
	}
	exporter, err := stdouttrace.New(stdouttrace.WithWriter(w), stdouttrace.WithPrettyPrint())
	if err != nil {
		return nil, noopShutdown, fmt.Errorf("create stdout trace exporter: %w", err)
	}

	serviceName := strings.TrimSpace(cfg.ServiceName)
	if serviceName == "" {
		serviceName = "aspectgo"
	}
	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(serviceName)))
	if err != nil {
		logger.Warn("otel resource init failed (continuing)", "error", err)
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})
	logger.Info("Tracing initialized.", "service", serviceName, "exporter", exporterName)
	return tp, tp.Shutdown, nil
}
