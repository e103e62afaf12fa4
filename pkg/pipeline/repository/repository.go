// Package repository defines the persistence interface for pipeline run
// metadata.
package repository

import (
	"context"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

// RunRepository persists run and task executions so that pipeline runs can
// be inspected after the fact.
type RunRepository interface {
	// SaveRunExecution persists a new RunExecution.
	SaveRunExecution(ctx context.Context, execution *model.RunExecution) error
	// UpdateRunExecution persists changes to an existing RunExecution.
	UpdateRunExecution(ctx context.Context, execution *model.RunExecution) error
	// FindRunExecutionByID retrieves a RunExecution by its ID.
	FindRunExecutionByID(ctx context.Context, id string) (*model.RunExecution, error)
	// FindLatestRunExecution retrieves the most recently started run of the
	// named pipeline, or nil when none exists.
	FindLatestRunExecution(ctx context.Context, pipelineName string) (*model.RunExecution, error)
	// SaveTaskExecution persists a new TaskExecution.
	SaveTaskExecution(ctx context.Context, execution *model.TaskExecution) error
	// UpdateTaskExecution persists changes to an existing TaskExecution.
	UpdateTaskExecution(ctx context.Context, execution *model.TaskExecution) error
	// Close releases resources used by the repository.
	Close() error
}
