package task

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/model"
	"github.com/ananya923/movieflow/pkg/pipeline/support/exception"
)

func TestTransformMoviesTask_DerivesDecade(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.WriteMovies(ctx, []entity.Movie{
		{MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995},
		{MovieID: 2, Title: "Arrival", Genre: "Sci-Fi", ReleaseYear: 2016},
		{MovieID: 3, Title: "Metropolis", Genre: "Sci-Fi", ReleaseYear: 1927},
	}))
	execution := newTestExecution(TransformMovies)

	exitStatus, err := NewTransformMoviesTask(reg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)
	assert.Equal(t, 3, execution.RowsRead)
	assert.Equal(t, 3, execution.RowsWritten)

	transformed, err := reg.ReadTransformedMovies(ctx)
	require.NoError(t, err)
	require.Len(t, transformed, 3)
	assert.Equal(t, 1990, transformed[0].Decade)
	assert.Equal(t, 2010, transformed[1].Decade)
	assert.Equal(t, 1920, transformed[2].Decade)
}

func TestTransformMoviesTask_MissingInput(t *testing.T) {
	reg := newTestRegistry(t)

	exitStatus, err := NewTransformMoviesTask(reg).Execute(context.Background(), newTestExecution(TransformMovies))
	assert.Equal(t, model.ExitStatusFailed, exitStatus)
	require.Error(t, err)
	assert.Equal(t, exception.StageTransform, exception.StageOf(err))
	assert.False(t, exception.IsTemporary(err))
}

func TestTransformRatingsTask_DerivesCategory(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()
	require.NoError(t, reg.WriteRatings(ctx, []entity.Rating{
		{RatingID: 1, MovieID: 1, Score: 2.9},
		{RatingID: 2, MovieID: 1, Score: 3.0},
		{RatingID: 3, MovieID: 2, Score: 4.0},
		{RatingID: 4, MovieID: 2, Score: 4.8},
	}))
	execution := newTestExecution(TransformRatings)

	exitStatus, err := NewTransformRatingsTask(reg).Execute(ctx, execution)
	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exitStatus)

	transformed, err := reg.ReadTransformedRatings(ctx)
	require.NoError(t, err)
	require.Len(t, transformed, 4)
	assert.Equal(t, entity.RatingCategoryLow, transformed[0].RatingCategory)
	assert.Equal(t, entity.RatingCategoryMedium, transformed[1].RatingCategory)
	assert.Equal(t, entity.RatingCategoryHigh, transformed[2].RatingCategory)
	assert.Equal(t, entity.RatingCategoryHigh, transformed[3].RatingCategory)
}
