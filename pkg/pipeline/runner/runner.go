// Package runner implements the execution engine that schedules the tasks
// of a pipeline graph, running independent tasks concurrently and
// propagating failures to downstream tasks.
package runner

import (
	"context"
	"fmt"
	"sync"

	"github.com/hashicorp/go-multierror"

	"github.com/ananya923/movieflow/pkg/pipeline/graph"
	"github.com/ananya923/movieflow/pkg/pipeline/listener"
	"github.com/ananya923/movieflow/pkg/pipeline/metrics"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/repository"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
	"github.com/ananya923/movieflow/pkg/pipeline/task"
)

// Runner executes a pipeline graph. Tasks whose dependencies are satisfied
// run concurrently; when a task fails, every transitive dependent is marked
// as skipped with the UPSTREAM_FAILED exit status and the remaining
// independent branches run to completion.
type Runner struct {
	pipelineName  string
	graph         *graph.Graph
	tasks         map[string]task.Task
	repo          repository.RunRepository
	recorder      metrics.MetricRecorder
	tracer        metrics.Tracer
	runListeners  []listener.RunListener
	taskListeners []listener.TaskListener
}

// NewRunner assembles a Runner over the given graph and task set. Every
// graph node must have a registered task of the same name.
func NewRunner(
	pipelineName string,
	g *graph.Graph,
	tasks []task.Task,
	repo repository.RunRepository,
	recorder metrics.MetricRecorder,
	tracer metrics.Tracer,
	runListeners []listener.RunListener,
	taskListeners []listener.TaskListener,
) (*Runner, error) {
	if err := g.Validate(); err != nil {
		return nil, exception.NewPipelineError("runner", "invalid pipeline graph", err, false)
	}

	taskMap := make(map[string]task.Task, len(tasks))
	for _, t := range tasks {
		if _, ok := taskMap[t.Name()]; ok {
			return nil, fmt.Errorf("duplicate task registration: '%s'", t.Name())
		}
		taskMap[t.Name()] = t
	}
	for _, name := range g.Tasks() {
		if _, ok := taskMap[name]; !ok {
			return nil, fmt.Errorf("graph references task '%s' but no such task is registered", name)
		}
	}

	return &Runner{
		pipelineName:  pipelineName,
		graph:         g,
		tasks:         taskMap,
		repo:          repo,
		recorder:      recorder,
		tracer:        tracer,
		runListeners:  runListeners,
		taskListeners: taskListeners,
	}, nil
}

// taskResult is the completion event of a single task goroutine.
type taskResult struct {
	name       string
	execution  *model.TaskExecution
	exitStatus model.ExitStatus
	err        error
}

// Run executes the pipeline once and returns the finished RunExecution.
// The returned error aggregates every task failure of the run.
func (r *Runner) Run(ctx context.Context, params map[string]interface{}) (*model.RunExecution, error) {
	run := model.NewRunExecution(r.pipelineName, params)
	if err := r.repo.SaveRunExecution(ctx, run); err != nil {
		return nil, exception.NewPipelineError("runner", "failed to persist new run execution", err, true)
	}

	ctx, endRunSpan := r.tracer.StartRunSpan(ctx, run)
	defer endRunSpan()

	run.MarkAsStarted()
	r.recorder.RecordRunStart(ctx, run)
	for _, l := range r.runListeners {
		l.BeforeRun(ctx, run)
	}
	if err := r.repo.UpdateRunExecution(ctx, run); err != nil {
		logger.Errorf("Failed to persist run start for '%s': %v", run.ID, err)
	}

	runErr := r.executeGraph(ctx, run)

	if runErr != nil {
		if ctx.Err() != nil {
			run.MarkAsStopped()
			run.AddFailureException(runErr)
		} else {
			run.MarkAsFailed(runErr)
		}
	} else {
		run.MarkAsCompleted()
	}

	r.recorder.RecordRunEnd(ctx, run)
	for _, l := range r.runListeners {
		l.AfterRun(ctx, run)
	}
	if err := r.repo.UpdateRunExecution(context.WithoutCancel(ctx), run); err != nil {
		logger.Errorf("Failed to persist final state of run '%s': %v", run.ID, err)
	}

	return run, runErr
}

// executeGraph schedules the tasks of the graph. It returns the aggregated
// error of all failed tasks, or nil when every task completed.
func (r *Runner) executeGraph(ctx context.Context, run *model.RunExecution) error {
	remaining := make(map[string]int, len(r.tasks))
	for _, name := range r.graph.Tasks() {
		remaining[name] = len(r.graph.Dependencies(name))
	}

	results := make(chan taskResult)
	var wg sync.WaitGroup
	var errs *multierror.Error

	launched := make(map[string]bool, len(r.tasks))
	skipped := make(map[string]bool)
	inflight := 0

	launch := func(name string) {
		execution := model.NewTaskExecution(name, run)
		launched[name] = true
		inflight++
		wg.Add(1)
		go func() {
			defer wg.Done()
			exitStatus, err := r.runTask(ctx, execution)
			results <- taskResult{name: name, execution: execution, exitStatus: exitStatus, err: err}
		}()
	}

	for _, name := range r.graph.Roots() {
		launch(name)
	}

	for inflight > 0 {
		res := <-results
		inflight--

		if res.err != nil {
			errs = multierror.Append(errs, res.err)
			r.tracer.RecordError(ctx, res.name, res.err)
			r.skipDependents(ctx, run, res.name, skipped)
			continue
		}

		for _, dependent := range r.graph.Dependents(res.name) {
			if skipped[dependent] || launched[dependent] {
				continue
			}
			remaining[dependent]--
			if remaining[dependent] == 0 {
				launch(dependent)
			}
		}
	}
	wg.Wait()

	return errs.ErrorOrNil()
}

// skipDependents marks every transitive dependent of the failed task as
// skipped due to the upstream failure. Already launched or already skipped
// tasks are left untouched.
func (r *Runner) skipDependents(ctx context.Context, run *model.RunExecution, failed string, skipped map[string]bool) {
	for _, name := range r.graph.TransitiveDependents(failed) {
		if skipped[name] || run.FindTaskExecution(name) != nil {
			continue
		}
		skipped[name] = true

		execution := model.NewTaskExecution(name, run)
		execution.MarkAsUpstreamFailed(failed)
		logger.Warnf("Task '%s' skipped: upstream task '%s' failed.", name, failed)

		if err := r.repo.SaveTaskExecution(ctx, execution); err != nil {
			logger.Errorf("Failed to persist skipped task execution '%s': %v", name, err)
		}
		r.recorder.RecordTaskEnd(ctx, execution)
		for _, l := range r.taskListeners {
			l.AfterTask(ctx, execution)
		}
	}
}

// runTask executes a single task with its full lifecycle: persistence,
// listeners, metrics and tracing.
func (r *Runner) runTask(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	name := execution.TaskName

	if err := r.repo.SaveTaskExecution(ctx, execution); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineErrorf("runner", "failed to persist task execution '%s'", name, err)
	}

	taskCtx, endTaskSpan := r.tracer.StartTaskSpan(ctx, execution)
	defer endTaskSpan()

	execution.MarkAsStarted()
	r.recorder.RecordTaskStart(taskCtx, execution)
	for _, l := range r.taskListeners {
		l.BeforeTask(taskCtx, execution)
	}

	exitStatus, err := r.tasks[name].Execute(taskCtx, execution)

	if err != nil {
		execution.MarkAsFailed(err)
		r.tracer.RecordError(taskCtx, name, err)
		logger.Errorf("Task '%s' failed: %v", name, err)
	} else {
		execution.MarkAsCompleted()
		if exitStatus != "" && exitStatus != model.ExitStatusUnknown {
			execution.ExitStatus = exitStatus
		}
		logger.Infof("Task '%s' finished with exit status %s.", name, execution.ExitStatus)
	}

	r.recorder.RecordTaskEnd(taskCtx, execution)
	if execution.RowsRead > 0 {
		r.recorder.RecordRowsProcessed(taskCtx, name, "read", execution.RowsRead)
	}
	if execution.RowsWritten > 0 {
		r.recorder.RecordRowsProcessed(taskCtx, name, "written", execution.RowsWritten)
	}
	for _, l := range r.taskListeners {
		l.AfterTask(taskCtx, execution)
	}

	if updateErr := r.repo.UpdateTaskExecution(context.WithoutCancel(taskCtx), execution); updateErr != nil {
		logger.Errorf("Failed to persist final state of task '%s': %v", name, updateErr)
	}

	return execution.ExitStatus, err
}
