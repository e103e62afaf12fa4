// Package task defines the interface implemented by every unit of work in a
// pipeline.
package task

import (
	"context"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

// Task is a single unit of work within a pipeline run. Execute receives the
// TaskExecution it runs under and returns the exit status of the attempt.
// Implementations must honor context cancellation for long operations.
type Task interface {
	// Name returns the unique task name used in the dependency graph.
	Name() string
	// Execute performs the task's work.
	Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error)
}

// Func adapts a plain function to the Task interface.
type Func struct {
	TaskName string
	Fn       func(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error)
}

// Name implements Task.
func (f *Func) Name() string { return f.TaskName }

// Execute implements Task.
func (f *Func) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	return f.Fn(ctx, execution)
}
