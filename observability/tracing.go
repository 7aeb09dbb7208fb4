package observability

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/lixenwraith/orrery/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName scopes the spans opened by the simulation controllers
const TracerName = "github.com/lixenwraith/orrery/sim"

// TracingConfig governs how tracing is initialised
type TracingConfig struct {
	Enabled     bool
	ServiceName string
	Writer      io.Writer // Exporter destination; the terminal is owned by the renderer
	SampleRatio float64
}

// InitTracing installs a noop provider, or a stdout exporter writing to cfg.Writer
// Returns a shutdown function that flushes pending spans
func InitTracing(ctx context.Context, cfg TracingConfig, log logging.Logger) (func(context.Context) error, error) {
	if log == nil {
		log = logging.Noop()
	}

	if !cfg.Enabled || cfg.Writer == nil {
		otel.SetTracerProvider(noop.NewTracerProvider())
		log.Debug(ctx, "tracing disabled; using noop tracer provider")
		return func(context.Context) error { return nil }, nil
	}

	exp, err := stdouttrace.New(
		stdouttrace.WithWriter(cfg.Writer),
		stdouttrace.WithoutTimestamps(),
	)
	if err != nil {
		return nil, fmt.Errorf("create trace exporter: %w", err)
	}

	service := cfg.ServiceName
	if service == "" {
		service = "orrery"
	}
	res, err := resource.New(ctx,
		resource.WithAttributes(attribute.String("service.name", service)),
	)
	if err != nil {
		return nil, fmt.Errorf("create resource: %w", err)
	}

	ratio := cfg.SampleRatio
	if ratio <= 0 || ratio > 1 {
		ratio = 1
	}
	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.TraceIDRatioBased(ratio))),
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)

	log.Info(ctx, "tracing enabled",
		logging.String("service_name", service),
		logging.Float64("sample_ratio", ratio),
	)
	return tp.Shutdown, nil
}

// Tracer returns the simulation tracer from the global provider
func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}

// ShutdownWithTimeout invokes shutdown with a bounded timeout, logging failures
func ShutdownWithTimeout(ctx context.Context, shutdown func(context.Context) error, log logging.Logger) {
	if shutdown == nil {
		return
	}
	if log == nil {
		log = logging.Noop()
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		log.Warn(ctx, "tracing shutdown failed", logging.Err(err))
	}
}
