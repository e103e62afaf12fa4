package runner

import (
	"go.uber.org/fx"

	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/graph"
	"github.com/ananya923/movieflow/pkg/pipeline/listener"
	"github.com/ananya923/movieflow/pkg/pipeline/metrics"
	"github.com/ananya923/movieflow/pkg/pipeline/repository"
	"github.com/ananya923/movieflow/pkg/pipeline/task"
)

// RunnerParams collects the runner's dependencies from the Fx graph. Tasks
// and listeners are gathered from their value groups.
type RunnerParams struct {
	fx.In
	Config        *config.Config
	Graph         *graph.Graph
	Tasks         []task.Task `group:"pipeline_tasks"`
	Repository    repository.RunRepository
	Recorder      metrics.MetricRecorder
	Tracer        metrics.Tracer
	RunListeners  []listener.RunListener  `group:"run_listeners"`
	TaskListeners []listener.TaskListener `group:"task_listeners"`
}

// NewRunnerFromParams builds the Runner from the Fx value groups.
func NewRunnerFromParams(params RunnerParams) (*Runner, error) {
	return NewRunner(
		params.Config.Movieflow.Pipeline.Name,
		params.Graph,
		params.Tasks,
		params.Repository,
		params.Recorder,
		params.Tracer,
		params.RunListeners,
		params.TaskListeners,
	)
}

// Module provides the Runner and Launcher to the Fx graph.
var Module = fx.Options(
	fx.Provide(
		NewRunnerFromParams,
		NewSimpleLauncher,
	),
)
