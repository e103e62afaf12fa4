package task

import (
	"context"
	"sort"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// MergeDatasetsTask inner-joins the transformed ratings with the
// transformed movies on movie_id.
type MergeDatasetsTask struct {
	registry *artifact.Registry
}

// NewMergeDatasetsTask creates the merge task.
func NewMergeDatasetsTask(registry *artifact.Registry) *MergeDatasetsTask {
	return &MergeDatasetsTask{registry: registry}
}

// Name implements task.Task.
func (t *MergeDatasetsTask) Name() string { return MergeDatasets }

// Execute joins the two transformed datasets and writes merged_movies.csv.
// Ratings without a matching movie are dropped; the drop count lands in the
// execution context. Output rows are ordered by (movie_id, rating_id) for
// determinism.
func (t *MergeDatasetsTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	movies, err := t.registry.ReadTransformedMovies(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to read transformed movies artifact", err, false)
	}
	ratings, err := t.registry.ReadTransformedRatings(ctx)
	if err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to read transformed ratings artifact", err, false)
	}
	execution.RowsRead = len(movies) + len(ratings)

	byMovieID := make(map[int]entity.TransformedMovie, len(movies))
	for _, m := range movies {
		byMovieID[m.MovieID] = m
	}

	merged := make([]entity.MergedMovieRating, 0, len(ratings))
	dropped := 0
	for _, r := range ratings {
		m, ok := byMovieID[r.MovieID]
		if !ok {
			dropped++
			continue
		}
		merged = append(merged, entity.Merge(m, r))
	}
	sort.Slice(merged, func(i, j int) bool {
		if merged[i].MovieID != merged[j].MovieID {
			return merged[i].MovieID < merged[j].MovieID
		}
		return merged[i].RatingID < merged[j].RatingID
	})

	if dropped > 0 {
		logger.Warnf("Dropped %d ratings without a matching movie.", dropped)
	}

	if err := t.registry.WriteMerged(ctx, merged); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageMerge,
			"failed to write merged artifact", err, true)
	}

	execution.RowsWritten = len(merged)
	execution.ExecutionContext.Put("artifact", artifact.MergedCSV)
	execution.ExecutionContext.Put("dropped_ratings", dropped)
	logger.Infof("Merged %d ratings with %d movies into %d rows.", len(ratings), len(movies), len(merged))
	return model.ExitStatusCompleted, nil
}
