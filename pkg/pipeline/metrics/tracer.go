package metrics

import (
	"context"

	model "github.com/ananya923/movieflow/pkg/pipeline/model"
)

// Tracer is an abstract interface for distributed tracing of pipeline runs.
// It integrates with tracing systems like OpenTelemetry to visualize run and
// task execution flows.
type Tracer interface {
	// StartRunSpan starts a span for a RunExecution. The returned function
	// ends the span and should be deferred.
	StartRunSpan(ctx context.Context, execution *model.RunExecution) (context.Context, func())

	// StartTaskSpan starts a span for a TaskExecution under the run span.
	// The returned function ends the span and should be deferred.
	StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func())

	// RecordError records an error on the current span. stage names the
	// component where the error occurred.
	RecordError(ctx context.Context, stage string, err error)

	// RecordEvent records an event on the current span.
	RecordEvent(ctx context.Context, name string, attributes map[string]interface{})
}
