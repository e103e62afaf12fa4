package task

import (
	"context"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// TransformMoviesTask derives the decade column for every movie.
type TransformMoviesTask struct {
	registry *artifact.Registry
}

// NewTransformMoviesTask creates the movie transformation task.
func NewTransformMoviesTask(registry *artifact.Registry) *TransformMoviesTask {
	return &TransformMoviesTask{registry: registry}
}

// Name implements task.Task.
func (t *TransformMoviesTask) Name() string { return TransformMovies }

// Execute reads movies.csv, derives decades, and writes
// movies_transformed.csv.
func (t *TransformMoviesTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	movies, err := t.registry.ReadMovies(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageTransform,
			"failed to read movies artifact", err, false)
	}
	execution.RowsRead = len(movies)

	transformed := make([]entity.TransformedMovie, 0, len(movies))
	for _, m := range movies {
		transformed = append(transformed, m.Transform())
	}

	if err := t.registry.WriteTransformedMovies(ctx, transformed); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageTransform,
			"failed to write transformed movies artifact", err, true)
	}

	execution.RowsWritten = len(transformed)
	execution.ExecutionContext.Put("artifact", artifact.MoviesTransformedCSV)
	logger.Infof("Transformed %d movies.", len(transformed))
	return model.ExitStatusCompleted, nil
}
