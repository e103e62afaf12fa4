package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"

	metrics "github.com/ananya923/movieflow/pkg/pipeline/metrics"
	model "github.com/ananya923/movieflow/pkg/pipeline/model"
	logger "github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

const tracerName = "github.com/ananya923/movieflow/pkg/pipeline"

// OpenTelemetryTracer is an implementation of metrics.Tracer backed by the
// OpenTelemetry SDK with an OTLP/gRPC exporter.
type OpenTelemetryTracer struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewOpenTelemetryTracer creates a tracer that exports spans to the given
// OTLP gRPC endpoint (host:port). serviceName identifies this process in
// the tracing backend.
func NewOpenTelemetryTracer(ctx context.Context, endpoint, serviceName string) (*OpenTelemetryTracer, error) {
	exporter, err := otlptracegrpc.New(ctx,
		otlptracegrpc.WithEndpoint(endpoint),
		otlptracegrpc.WithInsecure(),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create OTLP trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(sdkresource.NewSchemaless(
			attribute.String("service.name", serviceName),
		)),
	)
	otel.SetTracerProvider(provider)

	return &OpenTelemetryTracer{
		provider: provider,
		tracer:   provider.Tracer(tracerName),
	}, nil
}

// Shutdown flushes pending spans and shuts down the provider.
func (t *OpenTelemetryTracer) Shutdown(ctx context.Context) error {
	if t.provider == nil {
		return nil
	}
	return t.provider.Shutdown(ctx)
}

// StartRunSpan starts a span covering the whole pipeline run.
func (t *OpenTelemetryTracer) StartRunSpan(ctx context.Context, execution *model.RunExecution) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(
			attribute.String("pipeline.name", execution.PipelineName),
			attribute.String("run.id", execution.ID),
		))
	return ctx, func() {
		span.SetAttributes(
			attribute.String("run.status", string(execution.Status)),
			attribute.String("run.exit_status", string(execution.ExitStatus)),
		)
		span.End()
	}
}

// StartTaskSpan starts a span for a single task execution.
func (t *OpenTelemetryTracer) StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func()) {
	ctx, span := t.tracer.Start(ctx, "pipeline.task",
		trace.WithAttributes(
			attribute.String("task.name", execution.TaskName),
			attribute.String("task.id", execution.ID),
		))
	return ctx, func() {
		span.SetAttributes(
			attribute.String("task.status", string(execution.Status)),
			attribute.String("task.exit_status", string(execution.ExitStatus)),
		)
		span.End()
	}
}

// RecordError records an error on the current span.
func (t *OpenTelemetryTracer) RecordError(ctx context.Context, stage string, err error) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		logger.Debugf("Tracer: RecordError outside an active span, stage: %s, error: %v", stage, err)
		return
	}
	span.RecordError(err, trace.WithAttributes(attribute.String("stage", stage)))
	span.SetStatus(codes.Error, err.Error())
}

// RecordEvent records an event on the current span.
func (t *OpenTelemetryTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
	span := trace.SpanFromContext(ctx)
	if !span.IsRecording() {
		return
	}
	attrs := make([]attribute.KeyValue, 0, len(attributes))
	for k, v := range attributes {
		attrs = append(attrs, attribute.String(k, fmt.Sprintf("%v", v)))
	}
	span.AddEvent(name, trace.WithAttributes(attrs...))
}

var _ metrics.Tracer = (*OpenTelemetryTracer)(nil)
