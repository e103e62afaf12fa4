// Package entity defines the domain objects of the movie pipeline: the raw
// generated records, their transformed shapes, and the merged row loaded
// into the relational sink.
package entity

// Movie is a raw generated movie record.
type Movie struct {
	MovieID     int    `json:"movie_id"`
	Title       string `json:"title"`
	Genre       string `json:"genre"`
	ReleaseYear int    `json:"release_year"`
}

// Decade returns the decade the movie was released in, as the floor of the
// release year to a multiple of ten. Negative years round away from zero,
// so year -5 belongs to decade -10.
func (m Movie) Decade() int {
	d := m.ReleaseYear / 10 * 10
	if m.ReleaseYear < 0 && m.ReleaseYear%10 != 0 {
		d -= 10
	}
	return d
}

// TransformedMovie is a movie enriched with its derived decade.
type TransformedMovie struct {
	Movie
	Decade int `json:"decade"`
}

// Transform derives the decade column.
func (m Movie) Transform() TransformedMovie {
	return TransformedMovie{Movie: m, Decade: m.Decade()}
}
