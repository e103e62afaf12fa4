// Package app assembles the movieflow application from its Fx modules and
// drives a single pipeline run.
package app

import (
	"context"

	"go.uber.org/fx"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/job"
	"github.com/ananya923/movieflow/internal/sink"
	"github.com/ananya923/movieflow/internal/task"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	infraMetrics "github.com/ananya923/movieflow/pkg/pipeline/infrastructure/metrics"
	listenerLogging "github.com/ananya923/movieflow/pkg/pipeline/listener/logging"
	"github.com/ananya923/movieflow/pkg/pipeline/metrics"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/repository/gormrepo"
	"github.com/ananya923/movieflow/pkg/pipeline/runner"
	"github.com/ananya923/movieflow/pkg/pipeline/storage"
	"github.com/ananya923/movieflow/pkg/pipeline/storage/gcs"
	storageLocal "github.com/ananya923/movieflow/pkg/pipeline/storage/local"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// RunApplication sets up and runs the pipeline application using uber-fx.
// It blocks until the run has finished or the context is cancelled.
func RunApplication(appCtx context.Context, envFilePath string, embeddedConfig config.EmbeddedConfig) {
	app := fx.New(
		fx.Supply(
			embeddedConfig,
			fx.Annotate(envFilePath, fx.ResultTags(`name:"envFilePath"`)),
			fx.Annotate(
				appCtx,
				fx.As(new(context.Context)),
				fx.ResultTags(`name:"appCtx"`),
			),
		),

		logger.Module,
		config.Module,
		metrics.Module,
		infraMetrics.Module,

		storageLocal.Module,
		gcs.Module,
		storage.Module,

		sink.Module,
		gormrepo.Module,
		artifact.Module,

		listenerLogging.Module,
		task.Module,
		job.Module,
		runner.Module,

		fx.Invoke(fx.Annotate(startPipelineExecution, fx.ParamTags(
			"",              // lc fx.Lifecycle
			"",              // shutdowner fx.Shutdowner
			"",              // launcher runner.Launcher
			"",              // cfg *config.Config
			`name:"appCtx"`, // appCtx context.Context
		))),
	)

	app.Run()

	if app.Err() != nil {
		logger.Fatalf("Application run failed: %v", app.Err())
	}
}

// startPipelineExecution hooks the pipeline run into the Fx lifecycle.
func startPipelineExecution(
	lc fx.Lifecycle,
	shutdowner fx.Shutdowner,
	launcher runner.Launcher,
	cfg *config.Config,
	appCtx context.Context,
) {
	lc.Append(fx.Hook{
		OnStart: onStartPipelineExecution(launcher, cfg, shutdowner, appCtx),
		OnStop: func(ctx context.Context) error {
			logger.Infof("Application is shutting down.")
			return nil
		},
	})
}

// onStartPipelineExecution launches the pipeline in its own goroutine and
// requests application shutdown once the run has finished.
func onStartPipelineExecution(
	launcher runner.Launcher,
	cfg *config.Config,
	shutdowner fx.Shutdowner,
	appCtx context.Context,
) func(ctx context.Context) error {
	return func(ctx context.Context) error {
		go func() {
			exitCode := 0
			defer func() {
				if r := recover(); r != nil {
					logger.Errorf("Panic recovered in pipeline execution: %v", r)
					exitCode = 1
				}
				logger.Infof("Requesting application shutdown after pipeline completion.")
				if err := shutdowner.Shutdown(fx.ExitCode(exitCode)); err != nil {
					logger.Errorf("Failed to shutdown application: %v", err)
				}
			}()

			pipelineName := cfg.Movieflow.Pipeline.Name
			logger.Infof("Starting pipeline '%s'...", pipelineName)

			run, err := launcher.Launch(appCtx, nil)
			if err != nil {
				exitCode = 1
				if run != nil {
					logFailedTasks(run)
				}
				return
			}
			logger.Infof("Pipeline '%s' finished with status %s (run ID: %s).",
				pipelineName, run.Status, run.ID)
		}()
		return nil
	}
}

// logFailedTasks summarizes the per-task outcome of a failed run.
func logFailedTasks(run *model.RunExecution) {
	for _, te := range run.TaskExecutions {
		if te.Status != model.StatusFailed {
			continue
		}
		for _, failure := range te.Failures {
			logger.Errorf("Task '%s' failed: %v", te.TaskName, failure)
		}
	}
}
