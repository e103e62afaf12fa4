package task

import (
	"context"
	"math"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

// FetchRatingsTask generates the synthetic rating dataset and writes it to
// the artifact store.
type FetchRatingsTask struct {
	registry *artifact.Registry
	cfg      config.PipelineConfig
}

// NewFetchRatingsTask creates the rating ingestion task.
func NewFetchRatingsTask(registry *artifact.Registry, cfg *config.Config) *FetchRatingsTask {
	return &FetchRatingsTask{registry: registry, cfg: cfg.Movieflow.Pipeline}
}

// Name implements task.Task.
func (t *FetchRatingsTask) Name() string { return FetchRatings }

// Execute generates RatingCount ratings against the generated movie ID
// range and writes ratings.csv. Scores land on a 1-5 scale with one decimal.
func (t *FetchRatingsTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	// Offset the seed so the two generation tasks don't mirror each other.
	seed := t.cfg.Seed
	if seed != 0 {
		seed++
	}
	rng := newRand(seed)

	ratings := make([]entity.Rating, 0, t.cfg.RatingCount)
	for i := 1; i <= t.cfg.RatingCount; i++ {
		score := 1 + rng.Float64()*4
		ratings = append(ratings, entity.Rating{
			RatingID: i,
			MovieID:  1 + rng.Intn(t.cfg.MovieCount),
			Score:    math.Round(score*10) / 10,
		})
	}

	if err := t.registry.WriteRatings(ctx, ratings); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageGeneration,
			"failed to write ratings artifact", err, true)
	}

	execution.RowsWritten = len(ratings)
	execution.ExecutionContext.Put("artifact", artifact.RatingsCSV)
	logger.Infof("Generated %d ratings.", len(ratings))
	return model.ExitStatusCompleted, nil
}
