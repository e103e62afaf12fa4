package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/artifact"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func TestFetchMoviesTask_GeneratesConfiguredCount(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.MovieCount = 25
		p.Seed = 42
	})
	execution := newTestExecution(FetchMovies)

	exitStatus, err := NewFetchMoviesTask(reg, cfg).Execute(context.Background(), execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 25, execution.RowsWritten)
	assert.Equal(t, artifact.MoviesCSV, execution.ExecutionContext.GetString("artifact"))

	movies, err := reg.ReadMovies(context.Background())
	require.NoError(t, err)
	require.Len(t, movies, 25)
	for i, m := range movies {
		assert.Equal(t, i+1, m.MovieID)
		assert.NotEmpty(t, m.Title)
		assert.NotEmpty(t, m.Genre)
		assert.GreaterOrEqual(t, m.ReleaseYear, 1950)
		assert.LessOrEqual(t, m.ReleaseYear, 2025)
	}
}

func TestFetchMoviesTask_DeterministicWithSeed(t *testing.T) {
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.MovieCount = 10
		p.Seed = 7
	})

	regA := newTestRegistry(t)
	_, err := NewFetchMoviesTask(regA, cfg).Execute(context.Background(), newTestExecution(FetchMovies))
	require.NoError(t, err)
	regB := newTestRegistry(t)
	_, err = NewFetchMoviesTask(regB, cfg).Execute(context.Background(), newTestExecution(FetchMovies))
	require.NoError(t, err)

	a, err := regA.ReadMovies(context.Background())
	require.NoError(t, err)
	b, err := regB.ReadMovies(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestFetchRatingsTask_GeneratesValidScores(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.MovieCount = 10
		p.RatingCount = 50
		p.Seed = 42
	})
	execution := newTestExecution(FetchRatings)

	exitStatus, err := NewFetchRatingsTask(reg, cfg).Execute(context.Background(), execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 50, execution.RowsWritten)

	ratings, err := reg.ReadRatings(context.Background())
	require.NoError(t, err)
	require.Len(t, ratings, 50)
	for i, r := range ratings {
		assert.Equal(t, i+1, r.RatingID)
		assert.GreaterOrEqual(t, r.MovieID, 1)
		assert.LessOrEqual(t, r.MovieID, 10)
		assert.GreaterOrEqual(t, r.Score, 1.0)
		assert.LessOrEqual(t, r.Score, 5.0)
	}
}

func TestFetchRatingsTask_DeterministicWithSeed(t *testing.T) {
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.MovieCount = 5
		p.RatingCount = 20
		p.Seed = 99
	})

	regA := newTestRegistry(t)
	_, err := NewFetchRatingsTask(regA, cfg).Execute(context.Background(), newTestExecution(FetchRatings))
	require.NoError(t, err)
	regB := newTestRegistry(t)
	_, err = NewFetchRatingsTask(regB, cfg).Execute(context.Background(), newTestExecution(FetchRatings))
	require.NoError(t, err)

	a, err := regA.ReadRatings(context.Background())
	require.NoError(t, err)
	b, err := regB.ReadRatings(context.Background())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
