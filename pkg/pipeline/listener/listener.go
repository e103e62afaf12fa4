// Package listener defines the observation hooks invoked around run and
// task execution.
package listener

import (
	"context"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

// RunListener receives notifications around a whole pipeline run.
type RunListener interface {
	BeforeRun(ctx context.Context, execution *model.RunExecution)
	AfterRun(ctx context.Context, execution *model.RunExecution)
}

// TaskListener receives notifications around each task execution. AfterTask
// is also invoked for tasks that were skipped because of upstream failures.
type TaskListener interface {
	BeforeTask(ctx context.Context, execution *model.TaskExecution)
	AfterTask(ctx context.Context, execution *model.TaskExecution)
}
