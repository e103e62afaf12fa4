package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
)

func TestMergeDatasetsTask_InnerJoinDropsOrphans(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.WriteTransformedMovies(ctx, []entity.TransformedMovie{
		{Movie: entity.Movie{MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995}, Decade: 1990},
		{Movie: entity.Movie{MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016}, Decade: 2010},
	}))
	require.NoError(t, reg.WriteTransformedRatings(ctx, []entity.TransformedRating{
		{Rating: entity.Rating{RatingID: 3, MovieID: 2, Score: 4.5}, RatingCategory: "High"},
		{Rating: entity.Rating{RatingID: 4, MovieID: 1, Score: 2.0}, RatingCategory: "Low"},
		{Rating: entity.Rating{RatingID: 1, MovieID: 1, Score: 3.5}, RatingCategory: "Medium"},
		{Rating: entity.Rating{RatingID: 2, MovieID: 99, Score: 2.0}, RatingCategory: "Low"},
	}))
	execution := newTestExecution(MergeDatasets)

	exitStatus, err := NewMergeDatasetsTask(reg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 6, execution.RowsRead)
	assert.Equal(t, 3, execution.RowsWritten)
	assert.Equal(t, 1, execution.ExecutionContext.GetInt("dropped_ratings"))

	merged, err := reg.ReadMerged(ctx)
	require.NoError(t, err)
	assert.Equal(t, []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
		{RatingID: 4, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 2.0, RatingCategory: "Low"},
		{RatingID: 3, MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016, Decade: 2010, Score: 4.5, RatingCategory: "High"},
	}, merged)
}

func TestMergeDatasetsTask_EmptyRatings(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	require.NoError(t, reg.WriteTransformedMovies(ctx, []entity.TransformedMovie{
		{Movie: entity.Movie{MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995}, Decade: 1990},
	}))
	require.NoError(t, reg.WriteTransformedRatings(ctx, nil))
	execution := newTestExecution(MergeDatasets)

	exitStatus, err := NewMergeDatasetsTask(reg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)

	merged, err := reg.ReadMerged(ctx)
	require.NoError(t, err)
	assert.Empty(t, merged)
}
