package catalog

import (
	"math"
	"strconv"
	"strings"

	"moviehub-catalog-service/internal/models"
	"moviehub-catalog-service/internal/omdb"
)

// normalize maps one search hit plus its detail record to the canonical
// Movie shape. It is total: any combination of absent or "N/A" fields
// degrades to the documented defaults instead of failing.
func normalize(hit omdb.SearchHit, detail *omdb.DetailResponse) models.Movie {
	if detail == nil {
		detail = &omdb.DetailResponse{}
	}

	poster := hit.Poster
	if poster == "" || poster == omdb.NotAvailable {
		poster = models.PlaceholderPoster
	}

	genre := detail.Genre
	if genre == "" {
		genre = omdb.NotAvailable
	}

	description := detail.Plot
	if description == "" {
		description = models.DefaultDescription
	}

	return models.Movie{
		ID:          hit.ImdbID,
		Title:       hit.Title,
		Year:        hit.Year,
		Poster:      poster,
		Genre:       genre,
		Rating:      parseRating(detail.ImdbRating),
		Description: description,
		Cast:        splitActors(detail.Actors),
	}
}

// parseRating returns the rating as a float only when the raw value is
// present, numeric and within the 0-10 scale; otherwise nil (unrated).
func parseRating(raw string) *float64 {
	if raw == "" || raw == omdb.NotAvailable {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 || v > 10 {
		return nil
	}
	return &v
}

// splitActors splits the comma-delimited actor string into trimmed names.
// An absent string yields an empty (non-nil) slice.
func splitActors(raw string) []string {
	if raw == "" {
		return []string{}
	}
	parts := strings.Split(raw, ",")
	actors := make([]string, 0, len(parts))
	for _, p := range parts {
		actors = append(actors, strings.TrimSpace(p))
	}
	return actors
}
