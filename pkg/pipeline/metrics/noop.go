package metrics

import (
	"context"
	"time"

	model "github.com/ananya923/movieflow/pkg/pipeline/model"
)

// NoOpMetricRecorder is an implementation of MetricRecorder that does
// nothing. It is used when metrics are disabled or during testing.
type NoOpMetricRecorder struct{}

// NewNoOpMetricRecorder creates a new instance of NoOpMetricRecorder.
func NewNoOpMetricRecorder() MetricRecorder {
	return &NoOpMetricRecorder{}
}

func (r *NoOpMetricRecorder) RecordRunStart(ctx context.Context, execution *model.RunExecution) {}
func (r *NoOpMetricRecorder) RecordRunEnd(ctx context.Context, execution *model.RunExecution)   {}
func (r *NoOpMetricRecorder) RecordTaskStart(ctx context.Context, execution *model.TaskExecution) {
}
func (r *NoOpMetricRecorder) RecordTaskEnd(ctx context.Context, execution *model.TaskExecution) {}
func (r *NoOpMetricRecorder) RecordRowsProcessed(ctx context.Context, taskName string, direction string, count int) {
}
func (r *NoOpMetricRecorder) RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string) {
}

var _ MetricRecorder = (*NoOpMetricRecorder)(nil)

// NoOpTracer is an implementation of Tracer that does nothing.
type NoOpTracer struct{}

// NewNoOpTracer creates a new instance of NoOpTracer.
func NewNoOpTracer() Tracer {
	return &NoOpTracer{}
}

func (t *NoOpTracer) StartRunSpan(ctx context.Context, execution *model.RunExecution) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) StartTaskSpan(ctx context.Context, execution *model.TaskExecution) (context.Context, func()) {
	return ctx, func() {}
}

func (t *NoOpTracer) RecordError(ctx context.Context, stage string, err error) {}

func (t *NoOpTracer) RecordEvent(ctx context.Context, name string, attributes map[string]interface{}) {
}

var _ Tracer = (*NoOpTracer)(nil)
