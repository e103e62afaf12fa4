package artifact

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"strconv"

	"github.com/ananya923/movieflow/internal/domain/entity"
	"github.com/ananya923/movieflow/pkg/pipeline/storage"
)

var (
	movieHeader             = []string{"movie_id", "title", "genre", "release_year"}
	ratingHeader            = []string{"rating_id", "movie_id", "score"}
	transformedMovieHeader  = []string{"movie_id", "title", "genre", "release_year", "decade"}
	transformedRatingHeader = []string{"rating_id", "movie_id", "score", "rating_category"}
	mergedHeader            = []string{"rating_id", "movie_id", "title", "genre", "release_year", "decade", "score", "rating_category"}
)

func formatScore(score float64) string {
	return strconv.FormatFloat(score, 'g', -1, 64)
}

// writeCSV encodes records with a header row and uploads them as one object.
func writeCSV[T any](ctx context.Context, store storage.Connection, objectName string, header []string, records []T, encode func(T) []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(header); err != nil {
		return fmt.Errorf("failed to write header of '%s': %w", objectName, err)
	}
	for _, rec := range records {
		if err := w.Write(encode(rec)); err != nil {
			return fmt.Errorf("failed to write record of '%s': %w", objectName, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush '%s': %w", objectName, err)
	}

	if err := store.Upload(ctx, "", objectName, &buf, "text/csv"); err != nil {
		return fmt.Errorf("failed to upload artifact '%s': %w", objectName, err)
	}
	return nil
}

// readCSV downloads an object and decodes its records, validating the
// header row.
func readCSV[T any](ctx context.Context, store storage.Connection, objectName string, header []string, decode func([]string) (T, error)) ([]T, error) {
	rc, err := store.Download(ctx, "", objectName)
	if err != nil {
		return nil, fmt.Errorf("failed to download artifact '%s': %w", objectName, err)
	}
	defer rc.Close()

	r := csv.NewReader(rc)
	r.FieldsPerRecord = len(header)

	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse artifact '%s': %w", objectName, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("artifact '%s' is empty, expected a header row", objectName)
	}
	for i, col := range header {
		if rows[0][i] != col {
			return nil, fmt.Errorf("artifact '%s' has unexpected header %v, want %v", objectName, rows[0], header)
		}
	}

	records := make([]T, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec, err := decode(row)
		if err != nil {
			return nil, fmt.Errorf("failed to decode row of '%s': %w", objectName, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func encodeMovie(m entity.Movie) []string {
	return []string{
		strconv.Itoa(m.MovieID),
		m.Title,
		m.Genre,
		strconv.Itoa(m.ReleaseYear),
	}
}

func decodeMovie(row []string) (entity.Movie, error) {
	var m entity.Movie
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return m, fmt.Errorf("invalid movie_id %q: %w", row[0], err)
	}
	year, err := strconv.Atoi(row[3])
	if err != nil {
		return m, fmt.Errorf("invalid release_year %q: %w", row[3], err)
	}
	return entity.Movie{MovieID: id, Title: row[1], Genre: row[2], ReleaseYear: year}, nil
}

func encodeRating(r entity.Rating) []string {
	return []string{
		strconv.Itoa(r.RatingID),
		strconv.Itoa(r.MovieID),
		formatScore(r.Score),
	}
}

func decodeRating(row []string) (entity.Rating, error) {
	var r entity.Rating
	id, err := strconv.Atoi(row[0])
	if err != nil {
		return r, fmt.Errorf("invalid rating_id %q: %w", row[0], err)
	}
	movieID, err := strconv.Atoi(row[1])
	if err != nil {
		return r, fmt.Errorf("invalid movie_id %q: %w", row[1], err)
	}
	score, err := strconv.ParseFloat(row[2], 64)
	if err != nil {
		return r, fmt.Errorf("invalid score %q: %w", row[2], err)
	}
	return entity.Rating{RatingID: id, MovieID: movieID, Score: score}, nil
}

func encodeTransformedMovie(m entity.TransformedMovie) []string {
	return append(encodeMovie(m.Movie), strconv.Itoa(m.Decade))
}

func decodeTransformedMovie(row []string) (entity.TransformedMovie, error) {
	var tm entity.TransformedMovie
	m, err := decodeMovie(row[:4])
	if err != nil {
		return tm, err
	}
	decade, err := strconv.Atoi(row[4])
	if err != nil {
		return tm, fmt.Errorf("invalid decade %q: %w", row[4], err)
	}
	return entity.TransformedMovie{Movie: m, Decade: decade}, nil
}

func encodeTransformedRating(r entity.TransformedRating) []string {
	return append(encodeRating(r.Rating), r.RatingCategory)
}

func decodeTransformedRating(row []string) (entity.TransformedRating, error) {
	var tr entity.TransformedRating
	r, err := decodeRating(row[:3])
	if err != nil {
		return tr, err
	}
	return entity.TransformedRating{Rating: r, RatingCategory: row[3]}, nil
}

func encodeMerged(m entity.MergedMovieRating) []string {
	return []string{
		strconv.Itoa(m.RatingID),
		strconv.Itoa(m.MovieID),
		m.Title,
		m.Genre,
		strconv.Itoa(m.ReleaseYear),
		strconv.Itoa(m.Decade),
		formatScore(m.Score),
		m.RatingCategory,
	}
}

func decodeMerged(row []string) (entity.MergedMovieRating, error) {
	var m entity.MergedMovieRating
	ratingID, err := strconv.Atoi(row[0])
	if err != nil {
		return m, fmt.Errorf("invalid rating_id %q: %w", row[0], err)
	}
	movieID, err := strconv.Atoi(row[1])
	if err != nil {
		return m, fmt.Errorf("invalid movie_id %q: %w", row[1], err)
	}
	year, err := strconv.Atoi(row[4])
	if err != nil {
		return m, fmt.Errorf("invalid release_year %q: %w", row[4], err)
	}
	decade, err := strconv.Atoi(row[5])
	if err != nil {
		return m, fmt.Errorf("invalid decade %q: %w", row[5], err)
	}
	score, err := strconv.ParseFloat(row[6], 64)
	if err != nil {
		return m, fmt.Errorf("invalid score %q: %w", row[6], err)
	}
	return entity.MergedMovieRating{
		RatingID:       ratingID,
		MovieID:        movieID,
		Title:          row[2],
		Genre:          row[3],
		ReleaseYear:    year,
		Decade:         decade,
		Score:          score,
		RatingCategory: row[7],
	}, nil
}
