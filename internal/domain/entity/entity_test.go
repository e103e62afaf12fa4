package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovie_Decade(t *testing.T) {
	tests := []struct {
		name string
		year int
		want int
	}{
		{"start of decade", 1990, 1990},
		{"end of decade", 1999, 1990},
		{"mid decade", 2014, 2010},
		{"year zero", 0, 0},
		{"single digit", 7, 0},
		{"negative mid decade", -5, -10},
		{"negative decade boundary", -10, -10},
		{"negative single year", -1, -10},
		{"far future", 3007, 3000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := Movie{ReleaseYear: tt.year}
			assert.Equal(t, tt.want, m.Decade())
		})
	}
}

func TestMovie_Transform(t *testing.T) {
	m := Movie{MovieID: 1, Title: "Inception", Genre: "Sci-Fi", ReleaseYear: 2010}
	tm := m.Transform()
	assert.Equal(t, 2010, tm.Decade)
	assert.Equal(t, "Inception", tm.Title)
}

func TestRating_Category(t *testing.T) {
	tests := []struct {
		name  string
		score float64
		want  string
	}{
		{"clearly low", 1.0, RatingCategoryLow},
		{"just below medium", 2.9, RatingCategoryLow},
		{"medium lower boundary", 3.0, RatingCategoryMedium},
		{"mid medium", 3.7, RatingCategoryMedium},
		{"high lower boundary", 4.0, RatingCategoryHigh},
		{"top score", 5.0, RatingCategoryHigh},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Rating{Score: tt.score}
			assert.Equal(t, tt.want, r.Category())
		})
	}
}

func TestMerge(t *testing.T) {
	m := Movie{MovieID: 3, Title: "Heat", Genre: "Action", ReleaseYear: 1995}.Transform()
	r := Rating{RatingID: 42, MovieID: 3, Score: 4.5}.Transform()

	row := Merge(m, r)
	assert.Equal(t, 42, row.RatingID)
	assert.Equal(t, 3, row.MovieID)
	assert.Equal(t, "Heat", row.Title)
	assert.Equal(t, 1990, row.Decade)
	assert.Equal(t, 4.5, row.Score)
	assert.Equal(t, RatingCategoryHigh, row.RatingCategory)
}

func TestMergedMovieRating_TableName(t *testing.T) {
	assert.Equal(t, "movies_final", MergedMovieRating{}.TableName())
}
