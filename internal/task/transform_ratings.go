package task

import (
	"context"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// TransformRatingsTask derives the rating category for every rating.
type TransformRatingsTask struct {
	registry *artifact.Registry
}

// NewTransformRatingsTask creates the rating transformation task.
func NewTransformRatingsTask(registry *artifact.Registry) *TransformRatingsTask {
	return &TransformRatingsTask{registry: registry}
}

// Name implements task.Task.
func (t *TransformRatingsTask) Name() string { return TransformRatings }

// Execute reads ratings.csv, buckets scores into categories, and writes
// ratings_transformed.csv.
func (t *TransformRatingsTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	ratings, err := t.registry.ReadRatings(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageTransform,
			"failed to read ratings artifact", err, false)
	}
	execution.RowsRead = len(ratings)

	transformed := make([]entity.TransformedRating, 0, len(ratings))
	for _, r := range ratings {
		transformed = append(transformed, r.Transform())
	}

	if err := t.registry.WriteTransformedRatings(ctx, transformed); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageTransform,
			"failed to write transformed ratings artifact", err, true)
	}

	execution.RowsWritten = len(transformed)
	execution.ExecutionContext.Put("artifact", artifact.RatingsTransformedCSV)
	logger.Infof("Transformed %d ratings.", len(transformed))
	return model.ExitStatusCompleted, nil
}
