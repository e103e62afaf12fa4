package task

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
	"github.com/ananya923/movieflow/pkg/pipeline/support/logger"
)

var genres = []string{
	"Action", "Animation", "Comedy", "Drama", "Horror", "Romance", "Sci-Fi", "Thriller", "War",
}

var titleAdjectives = []string{
	"Silent", "Crimson", "Endless", "Broken", "Golden", "Hidden", "Falling", "Burning", "Distant", "Final",
}

var titleNouns = []string{
	"Horizon", "Echo", "Empire", "Garden", "Voyage", "Shadow", "Signal", "Harvest", "Reckoning", "Mirage",
}

// newRand seeds a generator from the configuration, falling back to the
// clock so unseeded runs differ.
func newRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

// FetchMoviesTask generates the synthetic movie dataset and writes it to
// the artifact store.
type FetchMoviesTask struct {
	registry *artifact.Registry
	cfg      config.PipelineConfig
}

// NewFetchMoviesTask creates the movie ingestion task.
func NewFetchMoviesTask(registry *artifact.Registry, cfg *config.Config) *FetchMoviesTask {
	return &FetchMoviesTask{registry: registry, cfg: cfg.Movieflow.Pipeline}
}

// Name implements task.Task.
func (t *FetchMoviesTask) Name() string { return FetchMovies }

// Execute generates MovieCount movies with sequential IDs and writes
// movies.csv.
func (t *FetchMoviesTask) Execute(ctx context.Context, execution *model.TaskExecution) (model.ExitStatus, error) {
	rng := newRand(t.cfg.Seed)

	movies := make([]entity.Movie, 0, t.cfg.MovieCount)
	for i := 1; i <= t.cfg.MovieCount; i++ {
		movies = append(movies, entity.Movie{
			MovieID:     i,
			Title:       fmt.Sprintf("%s %s", titleAdjectives[rng.Intn(len(titleAdjectives))], titleNouns[rng.Intn(len(titleNouns))]),
			Genre:       genres[rng.Intn(len(genres))],
			ReleaseYear: 1950 + rng.Intn(76),
		})
	}

	if err := t.registry.WriteMovies(ctx, movies); err != nil {
		return model.ExitStatusFailed, exception.NewPipelineError(exception.StageGeneration,
			"failed to write movies artifact", err, true)
	}

	execution.RowsWritten = len(movies)
	execution.ExecutionContext.Put("artifact", artifact.MoviesCSV)
	logger.Infof("Generated %d movies.", len(movies))
	return model.ExitStatusCompleted, nil
}
