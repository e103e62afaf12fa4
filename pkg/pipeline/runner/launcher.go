package runner

import (
	"context"

	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// Launcher starts pipeline runs. It is the entry point the application layer
// uses to execute the configured pipeline.
type Launcher interface {
	// Launch executes the pipeline once with the given parameters.
	Launch(ctx context.Context, params map[string]interface{}) (*model.RunExecution, error)
}

// simpleLauncher is a Launcher over a single Runner.
type simpleLauncher struct {
	runner *Runner
}

// NewSimpleLauncher creates a Launcher that delegates to the given Runner.
func NewSimpleLauncher(r *Runner) Launcher {
	return &simpleLauncher{runner: r}
}

// Launch executes the pipeline once. The RunExecution is returned even when
// the run failed, so callers can inspect task-level outcomes.
func (l *simpleLauncher) Launch(ctx context.Context, params map[string]interface{}) (*model.RunExecution, error) {
	logger.Infof("Launching pipeline '%s'.", l.runner.pipelineName)
	run, err := l.runner.Run(ctx, params)
	if err != nil {
		logger.Errorf("Pipeline '%s' finished with errors: %v", l.runner.pipelineName, err)
		return run, err
	}
	logger.Infof("Pipeline '%s' completed successfully (run ID: %s).", l.runner.pipelineName, run.ID)
	return run, nil
}
