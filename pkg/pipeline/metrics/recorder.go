package metrics

import (
	"context"
	"time"

	model "github.com/ananya923/movieflow/pkg/pipeline/model"
)

// MetricRecorder is an abstract interface for recording metrics about
// pipeline execution. It standardizes how run, task and row-level events are
// recorded so that different backends (Prometheus, OpenTelemetry Metrics)
// can be plugged in.
type MetricRecorder interface {
	// RecordRunStart records the start of a RunExecution.
	RecordRunStart(ctx context.Context, execution *model.RunExecution)

	// RecordRunEnd records the end of a RunExecution.
	RecordRunEnd(ctx context.Context, execution *model.RunExecution)

	// RecordTaskStart records the start of a TaskExecution.
	RecordTaskStart(ctx context.Context, execution *model.TaskExecution)

	// RecordTaskEnd records the end of a TaskExecution, including tasks
	// that were skipped due to upstream failures.
	RecordTaskEnd(ctx context.Context, execution *model.TaskExecution)

	// RecordRowsProcessed records the number of rows a task read or wrote.
	// direction is "read" or "written".
	RecordRowsProcessed(ctx context.Context, taskName string, direction string, count int)

	// RecordDuration records the execution time of a named operation with
	// optional tags, e.g. {"artifact": "merged_movies", "status": "success"}.
	RecordDuration(ctx context.Context, name string, duration time.Duration, tags map[string]string)
}
