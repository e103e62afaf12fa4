package task

import (
	"context"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/sink"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// LoadMoviesFinalTask loads the merged dataset into the sink database.
type LoadMoviesFinalTask struct {
	registry *artifact.Registry
	loader   *sink.Loader
}

// NewLoadMoviesFinalTask creates the load task.
func NewLoadMoviesFinalTask(registry *artifact.Registry, loader *sink.Loader) *LoadMoviesFinalTask {
	return &LoadMoviesFinalTask{registry: registry, loader: loader}
}

// Name implements task.Task.
func (t *LoadMoviesFinalTask) Name() string { return LoadMoviesFinal }

// Execute replaces the sink table contents with the merged dataset. The
// replace is transactional, so re-running the task cannot leave partial or
// duplicated rows behind.
func (t *LoadMoviesFinalTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	rows, err := t.registry.ReadMerged(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageLoad,
			"failed to read merged artifact", err, false)
	}
	execution.RowsRead = len(rows)

	if err := t.loader.Replace(ctx, rows); err != nil {
		return model.ExitStatusFailed, err
	}

	count, err := t.loader.Count(ctx)
	if err != nil {
		return model.ExitStatusFailed, err
	}
	if count != int64(len(rows)) {
		return model.ExitStatusFailed, exception.NewPipelineErrorf(exception.StageLoad,
			"sink row count %d does not match loaded rows %d", count, len(rows))
	}

	execution.RowsWritten = len(rows)
	execution.ExecutionContext.Put("loaded_rows", len(rows))
	logger.Infof("Sink table verified with %d rows.", count)
	return model.ExitStatusCompleted, nil
}
