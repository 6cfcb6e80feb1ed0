package models

// Movie is the canonical movie record built from one search hit plus its
// detail record. It is the single shape the rest of the service works with.
type Movie struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Year        string   `json:"year"`
	Poster      string   `json:"poster"`
	Genre       string   `json:"genre"`
	Rating      *float64 `json:"rating"`
	Description string   `json:"description"`
	Cast        []string `json:"cast"`
}

// CatalogView is the derived view state consumed by presentation clients.
type CatalogView struct {
	Movies           []Movie  `json:"movies"`
	Loading          bool     `json:"loading"`
	Status           string   `json:"status"`
	Error            string   `json:"error,omitempty"`
	AvailableGenres  []string `json:"available_genres"`
	AvailableYears   []string `json:"available_years"`
	SelectedGenre    string   `json:"selected_genre"`
	SelectedYear     string   `json:"selected_year"`
	TotalResults     int      `json:"total_results"`
	AccumulatedCount int      `json:"accumulated_count"`
	ShowLoadMore     bool     `json:"show_load_more"`
	HasMovies        bool     `json:"has_movies"`
}

// MovieDetail is the detail-view response: the movie plus the caller's own
// star rating (0 means unrated).
type MovieDetail struct {
	Movie
	UserRating int `json:"user_rating"`
}

// SearchRequest sets the active search term.
type SearchRequest struct {
	Term string `json:"term"`
}

// FiltersRequest sets the genre/year filter selection. Empty string clears
// the corresponding filter.
type FiltersRequest struct {
	Genre string `json:"genre"`
	Year  string `json:"year"`
}

// RatingRequest sets a 1-5 star rating on a movie.
type RatingRequest struct {
	Value int `json:"value"`
}

const (
	// PlaceholderPoster substitutes posters the upstream marks unavailable.
	PlaceholderPoster = "https://via.placeholder.com/300x450?text=No+Poster"

	// DefaultDescription substitutes an absent plot.
	DefaultDescription = "No description."
)
