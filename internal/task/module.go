package task

import (
	"go.uber.org/fx"

	pipelinetask "github.com/ananya923/movieflow/pkg/pipeline/task"
)

// provideTask annotates a task constructor into the pipeline_tasks group.
func provideTask(constructor interface{}) interface{} {
	return fx.Annotate(
		constructor,
		fx.As(new(pipelinetask.Task)),
		fx.ResultTags(`group:"pipeline_tasks"`),
	)
}

// Module provides every pipeline task into the group the runner consumes.
var Module = fx.Options(
	fx.Provide(
		provideTask(NewFetchMoviesTask),
		provideTask(NewFetchRatingsTask),
		provideTask(NewTransformMoviesTask),
		provideTask(NewTransformRatingsTask),
		provideTask(NewMergeDatasetsTask),
		provideTask(NewLoadMoviesFinalTask),
		provideTask(NewAnalyzeAndVisualizeTask),
		provideTask(NewExportParquetTask),
		provideTask(NewCleanupArtifactsTask),
	),
)
