// Package otel wires OpenTelemetry tracing for the archive services.
package otel

import (
	"context"
	"strings"

	"github.com/cryals/art-archive/internal/platform/config"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

// Environment keys read by Setup.
const (
	EnvEndpoint    = "ARCHIVE_OTEL_ENDPOINT"
	EnvEnabled     = "ARCHIVE_OTEL_ENABLED"
	EnvSampleRatio = "ARCHIVE_OTEL_SAMPLE_RATIO"
)

// InstrumentationName prefixes tracer names handed out by Tracer.
const InstrumentationName = "github.com/cryals/art-archive"

// Settings is the tracing configuration read from the environment.
type Settings struct {
	Endpoint    string  `env:"ARCHIVE_OTEL_ENDPOINT"`
	Enabled     string  `env:"ARCHIVE_OTEL_ENABLED"`
	SampleRatio float64 `env:"ARCHIVE_OTEL_SAMPLE_RATIO" envDefault:"1"`
}

// Active reports whether spans should be exported.
func (s Settings) Active() bool {
	return strings.TrimSpace(s.Endpoint) != "" && !strings.EqualFold(strings.TrimSpace(s.Enabled), "false")
}

func (s Settings) sampler() sdktrace.Sampler {
	switch {
	case s.SampleRatio >= 1:
		return sdktrace.AlwaysSample()
	case s.SampleRatio <= 0:
		return sdktrace.NeverSample()
	default:
		return sdktrace.ParentBased(sdktrace.TraceIDRatioBased(s.SampleRatio))
	}
}

// Setup reads Settings and installs a global tracer provider for service.
// Without an endpoint, or with ARCHIVE_OTEL_ENABLED=false, it returns a no-op
// shutdown and leaves the default provider in place.
func Setup(ctx context.Context, service string) (shutdown func(context.Context) error, err error) {
	var settings Settings
	if err := config.ParseEnv(&settings); err != nil {
		return noopShutdown, err
	}
	return SetupWith(ctx, service, settings)
}

// SetupWith installs tracing from explicit settings.
func SetupWith(ctx context.Context, service string, settings Settings) (func(context.Context) error, error) {
	if !settings.Active() {
		return noopShutdown, nil
	}

	exporter, err := otlptracehttp.New(ctx, otlptracehttp.WithEndpointURL(strings.TrimSpace(settings.Endpoint)))
	if err != nil {
		return noopShutdown, err
	}
	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("art-archive-"+strings.TrimSpace(service)),
		semconv.ServiceNamespace("art-archive"),
	))
	if err != nil {
		return noopShutdown, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(settings.sampler()),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))
	return tp.Shutdown, nil
}

// Tracer returns a tracer from the global provider scoped to pkg.
func Tracer(pkg string) trace.Tracer {
	return otel.Tracer(InstrumentationName + "/" + strings.Trim(pkg, "/"))
}

func noopShutdown(context.Context) error { return nil }
