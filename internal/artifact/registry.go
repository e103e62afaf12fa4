// Package artifact names the intermediate artifacts the pipeline produces
// and gives tasks typed read/write access to them. Tasks never compute
// artifact paths themselves; the registry is the single source of truth for
// what lives where.
package artifact

import (
	"context"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/storage"
)

// Object names of the pipeline's artifacts, relative to the artifact store.
const (
	MoviesCSV             = "movies.csv"
	RatingsCSV            = "ratings.csv"
	MoviesTransformedCSV  = "movies_transformed.csv"
	RatingsTransformedCSV = "ratings_transformed.csv"
	MergedCSV             = "merged_movies.csv"
	MergedParquet         = "merged_movies.parquet"
)

// Registry reads and writes the pipeline's artifacts on a storage
// connection. The bucket is the connection's configured default.
type Registry struct {
	store storage.Connection
}

// NewRegistry creates a Registry over the given storage connection.
func NewRegistry(store storage.Connection) *Registry {
	return &Registry{store: store}
}

// Store exposes the underlying connection for artifacts the registry has no
// typed codec for (charts, Parquet files).
func (r *Registry) Store() storage.Connection {
	return r.store
}

// Intermediates lists the CSV artifacts that the cleanup stage removes. The
// chart and the optional Parquet export are deliverables, not intermediates.
func Intermediates() []string {
	return []string{
		MoviesCSV,
		RatingsCSV,
		MoviesTransformedCSV,
		RatingsTransformedCSV,
		MergedCSV,
	}
}

// WriteMovies persists the raw movie records.
func (r *Registry) WriteMovies(ctx context.Context, movies []entity.Movie) error {
	return writeCSV(ctx, r.store, MoviesCSV, movieHeader, movies, encodeMovie)
}

// ReadMovies loads the raw movie records.
func (r *Registry) ReadMovies(ctx context.Context) ([]entity.Movie, error) {
	return readCSV(ctx, r.store, MoviesCSV, movieHeader, decodeMovie)
}

// WriteRatings persists the raw rating records.
func (r *Registry) WriteRatings(ctx context.Context, ratings []entity.Rating) error {
	return writeCSV(ctx, r.store, RatingsCSV, ratingHeader, ratings, encodeRating)
}

// ReadRatings loads the raw rating records.
func (r *Registry) ReadRatings(ctx context.Context) ([]entity.Rating, error) {
	return readCSV(ctx, r.store, RatingsCSV, ratingHeader, decodeRating)
}

// WriteTransformedMovies persists the decade-enriched movie records.
func (r *Registry) WriteTransformedMovies(ctx context.Context, movies []entity.TransformedMovie) error {
	return writeCSV(ctx, r.store, MoviesTransformedCSV, transformedMovieHeader, movies, encodeTransformedMovie)
}

// ReadTransformedMovies loads the decade-enriched movie records.
func (r *Registry) ReadTransformedMovies(ctx context.Context) ([]entity.TransformedMovie, error) {
	return readCSV(ctx, r.store, MoviesTransformedCSV, transformedMovieHeader, decodeTransformedMovie)
}

// WriteTransformedRatings persists the category-enriched rating records.
func (r *Registry) WriteTransformedRatings(ctx context.Context, ratings []entity.TransformedRating) error {
	return writeCSV(ctx, r.store, RatingsTransformedCSV, transformedRatingHeader, ratings, encodeTransformedRating)
}

// ReadTransformedRatings loads the category-enriched rating records.
func (r *Registry) ReadTransformedRatings(ctx context.Context) ([]entity.TransformedRating, error) {
	return readCSV(ctx, r.store, RatingsTransformedCSV, transformedRatingHeader, decodeTransformedRating)
}

// WriteMerged persists the merged dataset.
func (r *Registry) WriteMerged(ctx context.Context, rows []entity.MergedMovieRating) error {
	return writeCSV(ctx, r.store, MergedCSV, mergedHeader, rows, encodeMerged)
}

// ReadMerged loads the merged dataset.
func (r *Registry) ReadMerged(ctx context.Context) ([]entity.MergedMovieRating, error) {
	return readCSV(ctx, r.store, MergedCSV, mergedHeader, decodeMerged)
}
