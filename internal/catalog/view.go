package catalog

import (
	"sort"
	"strings"

	"moviehub-catalog-service/internal/models"
	"moviehub-catalog-service/internal/omdb"
)

// Derived view state: pure functions over the accumulated movie list and the
// current filter selection, recomputed per request instead of cached.

// availableGenres returns the distinct trimmed genre tokens across all
// movies, sorted ascending. "N/A" genre strings contribute nothing.
func availableGenres(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	for _, m := range movies {
		if m.Genre == "" || m.Genre == omdb.NotAvailable {
			continue
		}
		for _, g := range strings.Split(m.Genre, ",") {
			g = strings.TrimSpace(g)
			if g != "" {
				seen[g] = struct{}{}
			}
		}
	}
	genres := make([]string, 0, len(seen))
	for g := range seen {
		genres = append(genres, g)
	}
	sort.Strings(genres)
	return genres
}

// availableYears returns the distinct year labels across all movies, sorted
// descending. Labels may be ranges ("2012–2015"), so ordering is by string.
func availableYears(movies []models.Movie) []string {
	seen := make(map[string]struct{})
	for _, m := range movies {
		if m.Year != "" {
			seen[m.Year] = struct{}{}
		}
	}
	years := make([]string, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(years)))
	return years
}

// filterMovies returns the movies matching the selection. The genre match is
// deliberately a substring test on the raw genre string ("Action" matches
// "Action, Sci-Fi"); the year match is exact. Empty selections match all.
func filterMovies(movies []models.Movie, genre, year string) []models.Movie {
	filtered := make([]models.Movie, 0, len(movies))
	for _, m := range movies {
		if genre != "" && !strings.Contains(m.Genre, genre) {
			continue
		}
		if year != "" && m.Year != year {
			continue
		}
		filtered = append(filtered, m)
	}
	return filtered
}
