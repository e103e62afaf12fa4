package entity

// MergedMovieRating is one row of the merged dataset: a rating joined with
// the movie it scores. Ratings without a matching movie are dropped by the
// inner join, so every row carries full movie columns.
type MergedMovieRating struct {
	RatingID       int     `json:"rating_id" gorm:"column:rating_id;primaryKey"`
	MovieID        int     `json:"movie_id" gorm:"column:movie_id;index"`
	Title          string  `json:"title" gorm:"column:title"`
	Genre          string  `json:"genre" gorm:"column:genre;index"`
	ReleaseYear    int     `json:"release_year" gorm:"column:release_year"`
	Decade         int     `json:"decade" gorm:"column:decade"`
	Score          float64 `json:"score" gorm:"column:score"`
	RatingCategory string  `json:"rating_category" gorm:"column:rating_category"`
}

// TableName maps the merged dataset to the final sink table.
func (MergedMovieRating) TableName() string {
	return "movies_final"
}

// Merge joins a transformed rating with its transformed movie.
func Merge(m TransformedMovie, r TransformedRating) MergedMovieRating {
	return MergedMovieRating{
		RatingID:       r.RatingID,
		MovieID:        m.MovieID,
		Title:          m.Title,
		Genre:          m.Genre,
		ReleaseYear:    m.ReleaseYear,
		Decade:         m.Decade,
		Score:          r.Score,
		RatingCategory: r.RatingCategory,
	}
}

// GenreAverage is one point of the genre analysis: the mean score of all
// rated movies of a genre.
type GenreAverage struct {
	Genre    string  `json:"genre"`
	AvgScore float64 `json:"avg_score"`
}
