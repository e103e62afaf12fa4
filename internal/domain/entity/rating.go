package entity

// Rating category labels assigned by Category.
const (
	RatingCategoryLow    = "Low"
	RatingCategoryMedium = "Medium"
	RatingCategoryHigh   = "High"
)

// Rating is a raw generated rating record. Score is on a 1-5 scale.
type Rating struct {
	RatingID int     `json:"rating_id"`
	MovieID  int     `json:"movie_id"`
	Score    float64 `json:"score"`
}

// Category buckets the score: Low below 3, Medium from 3 up to but not
// including 4, High at 4 and above. Boundary scores resolve upward.
func (r Rating) Category() string {
	switch {
	case r.Score >= 4:
		return RatingCategoryHigh
	case r.Score >= 3:
		return RatingCategoryMedium
	default:
		return RatingCategoryLow
	}
}

// TransformedRating is a rating enriched with its derived category.
type TransformedRating struct {
	Rating
	RatingCategory string `json:"rating_category"`
}

// Transform derives the rating category column.
func (r Rating) Transform() TransformedRating {
	return TransformedRating{Rating: r, RatingCategory: r.Category()}
}
