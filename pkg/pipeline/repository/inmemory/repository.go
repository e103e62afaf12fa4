// Package inmemory provides an in-memory implementation of the
// RunRepository interface. It stores all run metadata in maps, suitable for
// testing and scenarios where persistence is not required.
package inmemory

import (
	"context"
	"fmt"
	"sync"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/repository"
)

// InMemoryRunRepository is an in-memory implementation of RunRepository.
type InMemoryRunRepository struct {
	runExecutions  map[string]*model.RunExecution
	taskExecutions map[string]*model.TaskExecution
	mu             sync.RWMutex
}

// NewInMemoryRunRepository creates and initializes a new instance of
// InMemoryRunRepository.
func NewInMemoryRunRepository() *InMemoryRunRepository {
	return &InMemoryRunRepository{
		runExecutions:  make(map[string]*model.RunExecution),
		taskExecutions: make(map[string]*model.TaskExecution),
	}
}

// SaveRunExecution persists a new RunExecution.
func (r *InMemoryRunRepository) SaveRunExecution(ctx context.Context, execution *model.RunExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runExecutions[execution.ID]; ok {
		return fmt.Errorf("run execution with ID '%s' already exists", execution.ID)
	}
	r.runExecutions[execution.ID] = execution
	return nil
}

// UpdateRunExecution persists changes to an existing RunExecution.
func (r *InMemoryRunRepository) UpdateRunExecution(ctx context.Context, execution *model.RunExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.runExecutions[execution.ID]; !ok {
		return fmt.Errorf("run execution with ID '%s' not found", execution.ID)
	}
	r.runExecutions[execution.ID] = execution
	return nil
}

// FindRunExecutionByID retrieves a RunExecution by its ID.
func (r *InMemoryRunRepository) FindRunExecutionByID(ctx context.Context, id string) (*model.RunExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	execution, ok := r.runExecutions[id]
	if !ok {
		return nil, fmt.Errorf("run execution with ID '%s' not found", id)
	}
	return execution, nil
}

// FindLatestRunExecution retrieves the most recently started run of the
// named pipeline, or nil when none exists.
func (r *InMemoryRunRepository) FindLatestRunExecution(ctx context.Context, pipelineName string) (*model.RunExecution, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var latest *model.RunExecution
	for _, execution := range r.runExecutions {
		if execution.PipelineName != pipelineName {
			continue
		}
		if latest == nil || execution.StartTime.After(latest.StartTime) {
			latest = execution
		}
	}
	return latest, nil
}

// SaveTaskExecution persists a new TaskExecution.
func (r *InMemoryRunRepository) SaveTaskExecution(ctx context.Context, execution *model.TaskExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.taskExecutions[execution.ID]; ok {
		return fmt.Errorf("task execution with ID '%s' already exists", execution.ID)
	}
	r.taskExecutions[execution.ID] = execution
	return nil
}

// UpdateTaskExecution persists changes to an existing TaskExecution.
func (r *InMemoryRunRepository) UpdateTaskExecution(ctx context.Context, execution *model.TaskExecution) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.taskExecutions[execution.ID]; !ok {
		return fmt.Errorf("task execution with ID '%s' not found", execution.ID)
	}
	r.taskExecutions[execution.ID] = execution
	return nil
}

// Close releases resources used by the repository. The in-memory repository
// holds no external resources.
func (r *InMemoryRunRepository) Close() error {
	return nil
}

var _ repository.RunRepository = (*InMemoryRunRepository)(nil)
