// Package tracing wires one OpenTelemetry span per generation so a solve's
// mutate/score/accept sequence is visible in a distributed trace when the
// engine runs embedded in a larger service.
package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
	"google.golang.org/grpc"
	"google.golang.org/grpc/credentials/insecure"
)

// NewProvider dials endpoint over grpc and builds a TracerProvider exporting
// spans to it via OTLP. Callers should defer the returned shutdown func.
func NewProvider(ctx context.Context, endpoint string) (*sdktrace.TracerProvider, func(context.Context) error, error) {
	conn, err := grpc.NewClient(endpoint, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: dialing collector at %s: %w", endpoint, err)
	}

	exporter, err := otlptrace.New(ctx, otlptracegrpc.NewClient(otlptracegrpc.WithGRPCConn(conn)))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: building otlp exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(
		semconv.ServiceName("vrp-engine"),
	))
	if err != nil {
		return nil, nil, fmt.Errorf("tracing: building resource: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(provider)

	return provider, provider.Shutdown, nil
}

// Tracer is the vrp-engine package tracer, obtained once and reused across
// every generation span.
func Tracer() trace.Tracer {
	return otel.Tracer("github.com/routewise/vrp-engine/pkg/vrp/refinement")
}

// StartGeneration opens a span covering one generation's mutate/score/accept
// sequence, tagged with the generation number.
func StartGeneration(ctx context.Context, generation int) (context.Context, trace.Span) {
	return Tracer().Start(ctx, "refinement.generation", trace.WithAttributes(
		attribute.Int("vrp.generation", generation),
	))
}

// EndGeneration records the generation's outcome on span and ends it.
func EndGeneration(span trace.Span, cost float64, accepted bool) {
	span.SetAttributes(
		attribute.Float64("vrp.cost", cost),
		attribute.Bool("vrp.accepted", accepted),
	)
	span.End()
}
