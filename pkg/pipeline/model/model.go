// Package model defines the core domain objects for pipeline execution:
// run and task executions, their status lifecycles, and the execution
// context used to pass data between tasks.
package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// Status represents the lifecycle state of a run or task execution.
type Status string

const (
	StatusStarting  Status = "STARTING"
	StatusStarted   Status = "STARTED"
	StatusCompleted Status = "COMPLETED"
	StatusFailed    Status = "FAILED"
	StatusStopped   Status = "STOPPED"
	StatusSkipped   Status = "SKIPPED"
	StatusUnknown   Status = "UNKNOWN"
)

// ExitStatus represents the final outcome of a run or task execution.
type ExitStatus string

const (
	ExitStatusUnknown        ExitStatus = "UNKNOWN"
	ExitStatusCompleted      ExitStatus = "COMPLETED"
	ExitStatusFailed         ExitStatus = "FAILED"
	ExitStatusStopped        ExitStatus = "STOPPED"
	ExitStatusNoop           ExitStatus = "NOOP"
	ExitStatusUpstreamFailed ExitStatus = "UPSTREAM_FAILED"
)

// NewID generates a new UUID string used for execution identifiers.
func NewID() string {
	return uuid.New().String()
}

// isValidRunTransition defines the allowed status transitions for a run.
func isValidRunTransition(from, to Status) bool {
	switch from {
	case StatusStarting:
		return to == StatusStarted || to == StatusFailed || to == StatusStopped
	case StatusStarted:
		return to == StatusCompleted || to == StatusFailed || to == StatusStopped
	case StatusCompleted, StatusFailed, StatusStopped:
		return false
	default:
		return false
	}
}

// ExecutionContext carries arbitrary key/value data shared between tasks of
// a run, such as artifact paths and row counts.
type ExecutionContext map[string]interface{}

// NewExecutionContext creates an empty ExecutionContext.
func NewExecutionContext() ExecutionContext {
	return make(ExecutionContext)
}

// Put stores a value in the context.
func (ec ExecutionContext) Put(key string, value interface{}) {
	ec[key] = value
}

// Get retrieves a value from the context. The second return value reports
// whether the key was present.
func (ec ExecutionContext) Get(key string) (interface{}, bool) {
	v, ok := ec[key]
	return v, ok
}

// GetString retrieves a string value from the context, returning "" when the
// key is absent or not a string.
func (ec ExecutionContext) GetString(key string) string {
	if v, ok := ec[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

// GetInt retrieves an int value from the context. JSON round-trips store
// numbers as float64, so both representations are accepted.
func (ec ExecutionContext) GetInt(key string) int {
	if v, ok := ec[key]; ok {
		switch n := v.(type) {
		case int:
			return n
		case int64:
			return int(n)
		case float64:
			return int(n)
		}
	}
	return 0
}

// Copy returns a shallow copy of the context.
func (ec ExecutionContext) Copy() ExecutionContext {
	cp := make(ExecutionContext, len(ec))
	for k, v := range ec {
		cp[k] = v
	}
	return cp
}

// Value implements driver.Valuer so the context can be persisted as JSON.
func (ec ExecutionContext) Value() (driver.Value, error) {
	if ec == nil {
		return "{}", nil
	}
	b, err := json.Marshal(ec)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal ExecutionContext: %w", err)
	}
	return string(b), nil
}

// Scan implements sql.Scanner for reading the JSON representation back.
func (ec *ExecutionContext) Scan(value interface{}) error {
	if value == nil {
		*ec = NewExecutionContext()
		return nil
	}
	var b []byte
	switch v := value.(type) {
	case []byte:
		b = v
	case string:
		b = []byte(v)
	default:
		return fmt.Errorf("unsupported type for ExecutionContext: %T", value)
	}
	if len(b) == 0 {
		*ec = NewExecutionContext()
		return nil
	}
	return json.Unmarshal(b, ec)
}

// RunExecution represents a single execution of the whole pipeline.
type RunExecution struct {
	ID               string
	PipelineName     string
	Parameters       map[string]interface{}
	StartTime        time.Time
	EndTime          time.Time
	Status           Status
	ExitStatus       ExitStatus
	Failures         []error
	ExecutionContext ExecutionContext
	TaskExecutions   []*TaskExecution
	CreateTime       time.Time
	LastUpdated      time.Time
	Version          int
}

// NewRunExecution creates a RunExecution in the STARTING state.
func NewRunExecution(pipelineName string, params map[string]interface{}) *RunExecution {
	now := time.Now()
	return &RunExecution{
		ID:               NewID(),
		PipelineName:     pipelineName,
		Parameters:       params,
		StartTime:        now,
		Status:           StatusStarting,
		ExitStatus:       ExitStatusUnknown,
		Failures:         make([]error, 0),
		ExecutionContext: NewExecutionContext(),
		TaskExecutions:   make([]*TaskExecution, 0),
		CreateTime:       now,
		LastUpdated:      now,
	}
}

// transitionTo updates the run status after validating the transition.
func (re *RunExecution) transitionTo(newStatus Status) {
	if !isValidRunTransition(re.Status, newStatus) {
		logger.Warnf("RunExecution (ID: %s): invalid status transition from %s to %s", re.ID, re.Status, newStatus)
	}
	re.Status = newStatus
	re.LastUpdated = time.Now()
}

// MarkAsStarted transitions the run to STARTED.
func (re *RunExecution) MarkAsStarted() {
	re.transitionTo(StatusStarted)
	re.StartTime = time.Now()
}

// MarkAsCompleted transitions the run to COMPLETED.
func (re *RunExecution) MarkAsCompleted() {
	re.transitionTo(StatusCompleted)
	re.ExitStatus = ExitStatusCompleted
	re.EndTime = time.Now()
}

// MarkAsFailed transitions the run to FAILED, recording the given errors.
func (re *RunExecution) MarkAsFailed(errs ...error) {
	re.transitionTo(StatusFailed)
	re.ExitStatus = ExitStatusFailed
	re.EndTime = time.Now()
	for _, err := range errs {
		if err != nil {
			re.AddFailureException(err)
		}
	}
}

// MarkAsStopped transitions the run to STOPPED.
func (re *RunExecution) MarkAsStopped() {
	re.transitionTo(StatusStopped)
	re.ExitStatus = ExitStatusStopped
	re.EndTime = time.Now()
}

// AddFailureException records a failure on the run.
func (re *RunExecution) AddFailureException(err error) {
	re.Failures = append(re.Failures, err)
	re.LastUpdated = time.Now()
}

// AddTaskExecution associates a task execution with this run.
func (re *RunExecution) AddTaskExecution(te *TaskExecution) {
	re.TaskExecutions = append(re.TaskExecutions, te)
	re.LastUpdated = time.Now()
}

// FindTaskExecution returns the execution of the named task, or nil.
func (re *RunExecution) FindTaskExecution(taskName string) *TaskExecution {
	for _, te := range re.TaskExecutions {
		if te.TaskName == taskName {
			return te
		}
	}
	return nil
}

// TaskExecution represents the execution of a single task within a run.
type TaskExecution struct {
	ID               string
	TaskName         string
	RunExecution     *RunExecution
	StartTime        time.Time
	EndTime          time.Time
	Status           Status
	ExitStatus       ExitStatus
	Failures         []error
	ExecutionContext ExecutionContext
	RowsRead         int
	RowsWritten      int
	LastUpdated      time.Time
	Version          int
}

// NewTaskExecution creates a TaskExecution in the STARTING state, associated
// with the given run.
func NewTaskExecution(taskName string, run *RunExecution) *TaskExecution {
	now := time.Now()
	te := &TaskExecution{
		ID:               NewID(),
		TaskName:         taskName,
		RunExecution:     run,
		StartTime:        now,
		Status:           StatusStarting,
		ExitStatus:       ExitStatusUnknown,
		Failures:         make([]error, 0),
		ExecutionContext: NewExecutionContext(),
		LastUpdated:      now,
	}
	if run != nil {
		run.AddTaskExecution(te)
	}
	return te
}

// MarkAsStarted transitions the task to STARTED.
func (te *TaskExecution) MarkAsStarted() {
	te.Status = StatusStarted
	te.StartTime = time.Now()
	te.LastUpdated = time.Now()
}

// MarkAsCompleted transitions the task to COMPLETED.
func (te *TaskExecution) MarkAsCompleted() {
	te.Status = StatusCompleted
	te.ExitStatus = ExitStatusCompleted
	te.EndTime = time.Now()
	te.LastUpdated = time.Now()
}

// MarkAsFailed transitions the task to FAILED, recording the error.
func (te *TaskExecution) MarkAsFailed(err error) {
	te.Status = StatusFailed
	te.ExitStatus = ExitStatusFailed
	te.EndTime = time.Now()
	te.LastUpdated = time.Now()
	if err != nil {
		te.AddFailureException(err)
	}
}

// MarkAsUpstreamFailed marks the task as skipped because an upstream
// dependency failed. The task never ran, so StartTime is left untouched.
func (te *TaskExecution) MarkAsUpstreamFailed(upstream string) {
	te.Status = StatusSkipped
	te.ExitStatus = ExitStatusUpstreamFailed
	te.EndTime = time.Now()
	te.LastUpdated = time.Now()
	te.AddFailureException(exception.NewPipelineErrorf(
		"pipeline", "task '%s' skipped because upstream task '%s' failed", te.TaskName, upstream))
}

// AddFailureException records a failure on the task.
func (te *TaskExecution) AddFailureException(err error) {
	te.Failures = append(te.Failures, err)
	te.LastUpdated = time.Now()
}

// Duration returns the elapsed time of the task execution.
func (te *TaskExecution) Duration() time.Duration {
	if te.EndTime.IsZero() {
		return time.Since(te.StartTime)
	}
	return te.EndTime.Sub(te.StartTime)
}
