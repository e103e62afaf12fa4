package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/config"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func TestAverageScoreByGenre(t *testing.T) {
	rows := []entity.MergedMovieRating{
		{RatingID: 1, Genre: "Action", Score: 2.5},
		{RatingID: 2, Genre: "Drama", Score: 5.0},
		{RatingID: 3, Genre: "Action", Score: 3.5},
	}

	averages := AverageScoreByGenre(rows)
	assert.Equal(t, []entity.GenreAverage{
		{Genre: "Action", AvgScore: 3.0},
		{Genre: "Drama", AvgScore: 5.0},
	}, averages)
}

func TestAverageScoreByGenre_Empty(t *testing.T) {
	assert.Empty(t, AverageScoreByGenre(nil))
}

func TestAnalyzeAndVisualizeTask_WritesChart(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(func(p *config.PipelineConfig) {
		p.ChartPath = "visuals/avg_rating_by_genre.png"
	})
	ctx := context.Background()

	require.NoError(t, reg.WriteMerged(ctx, []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
		{RatingID: 2, MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016, Decade: 2010, Score: 4.5, RatingCategory: "High"},
	}))
	execution := newTestExecution(AnalyzeAndVisualize)

	exitStatus, err := NewAnalyzeAndVisualizeTask(reg, cfg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, "visuals/avg_rating_by_genre.png", execution.ExecutionContext.GetString("chart"))

	chart := readObject(t, reg, "visuals/avg_rating_by_genre.png")
	require.Greater(t, len(chart), 8)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, chart[:4])

	averages, ok := execution.ExecutionContext.Get("genre_averages")
	require.True(t, ok)
	assert.Equal(t, []entity.GenreAverage{
		{Genre: "Action", AvgScore: 3.5},
		{Genre: "Sci-Fi", AvgScore: 4.5},
	}, averages)
}

func TestAnalyzeAndVisualizeTask_EmptyDatasetRendersEmptyChart(t *testing.T) {
	reg := newTestRegistry(t)
	cfg := newTestConfig(nil)
	ctx := context.Background()

	require.NoError(t, reg.WriteMerged(ctx, nil))
	execution := newTestExecution(AnalyzeAndVisualize)

	exitStatus, err := NewAnalyzeAndVisualizeTask(reg, cfg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.True(t, objectExists(t, reg, cfg.Movieflow.Pipeline.ChartPath))

	averages, ok := execution.ExecutionContext.Get("genre_averages")
	require.True(t, ok)
	assert.Empty(t, averages)
}
