package telemetry

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/AndrewN04/url-shortner"

// TracerProvider is exposed for use with otelhttp. It stays nil when tracing
// is disabled.
var TracerProvider *sdktrace.TracerProvider

// Tracer returns the application tracer. Before InitTracer runs (or when
// tracing is off) the global no-op provider backs it.
func Tracer() trace.Tracer {
	return otel.Tracer(instrumentationName)
}

// exporterEndpoint splits an OTLP endpoint URL into host:port and whether
// the connection is plain HTTP. A bare host:port is treated as plain HTTP.
func exporterEndpoint(endpoint string) (string, bool) {
	insecure := !strings.HasPrefix(endpoint, "https://")
	endpoint = strings.TrimPrefix(endpoint, "http://")
	endpoint = strings.TrimPrefix(endpoint, "https://")
	endpoint = strings.TrimSuffix(endpoint, "/")
	endpoint = strings.TrimSuffix(endpoint, "/v1/traces")
	return endpoint, insecure
}

// InitTracer installs an OTLP/HTTP tracer provider and returns its shutdown
// function. Spans are sampled according to the parent, else always.
func InitTracer(otelEndpoint, serviceName, serviceVersion, environment string) (func(context.Context) error, error) {
	ctx := context.Background()

	host, insecure := exporterEndpoint(otelEndpoint)
	opts := []otlptracehttp.Option{otlptracehttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(serviceVersion),
			semconv.DeploymentEnvironment(environment),
		),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.ParentBased(sdktrace.AlwaysSample())),
	)

	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	TracerProvider = tp
	otel.SetTracerProvider(tp)

	return tp.Shutdown, nil
}
