package artifact

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ananya923/movieflow/internal/domain/entity"
	storageConfig "github.com/ananya923/movieflow/pkg/pipeline/storage/config"
	"github.com/ananya923/movieflow/pkg/pipeline/storage/local"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	conn, err := local.NewLocalAdapter(storageConfig.StorageConfig{
		Type:    local.ProviderType,
		BaseDir: t.TempDir(),
	}, "artifacts")
	require.NoError(t, err)
	return NewRegistry(conn)
}

func TestRegistry_MoviesRoundtrip(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	movies := []entity.Movie{
		{MovieID: 1, Title: "Inception", Genre: "Sci-Fi", ReleaseYear: 2010},
		{MovieID: 2, Title: "A Title, With Comma", Genre: "Drama", ReleaseYear: 1999},
	}
	require.NoError(t, reg.WriteMovies(ctx, movies))

	got, err := reg.ReadMovies(ctx)
	require.NoError(t, err)
	assert.Equal(t, movies, got)
}

func TestRegistry_MergedRoundtripKeepsScorePrecision(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	rows := []entity.MergedMovieRating{
		{RatingID: 1, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 3.5, RatingCategory: "Medium"},
		{RatingID: 2, MovieID: 1, Title: "Heat", Genre: "Action", ReleaseYear: 1995, Decade: 1990, Score: 4.25, RatingCategory: "High"},
	}
	require.NoError(t, reg.WriteMerged(ctx, rows))

	got, err := reg.ReadMerged(ctx)
	require.NoError(t, err)
	assert.Equal(t, rows, got)
}

func TestRegistry_ReadMissingArtifact(t *testing.T) {
	reg := newTestRegistry(t)

	_, err := reg.ReadRatings(context.Background())
	assert.Error(t, err)
}

func TestRegistry_ReadRejectsWrongHeader(t *testing.T) {
	reg := newTestRegistry(t)
	ctx := context.Background()

	bogus := "wrong_id,title,genre,release_year\n1,X,Y,2000\n"
	require.NoError(t, reg.Store().Upload(ctx, "", MoviesCSV, strings.NewReader(bogus), "text/csv"))

	_, err := reg.ReadMovies(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "header")
}

func TestIntermediates(t *testing.T) {
	assert.Equal(t, []string{
		MoviesCSV,
		RatingsCSV,
		MoviesTransformedCSV,
		RatingsTransformedCSV,
		MergedCSV,
	}, Intermediates())
}
