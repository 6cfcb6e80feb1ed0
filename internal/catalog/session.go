package catalog

import (
	"log/slog"
	"strings"
	"sync"

	"moviehub-catalog-service/internal/models"
	"moviehub-catalog-service/internal/omdb"
)

// DefaultSearchTerm backs the catalog when the client supplies no term, so
// the initial view is never empty.
const DefaultSearchTerm = "Avengers"

// Status is the fetch-orchestration state of the session.
type Status string

const (
	StatusIdle              Status = "idle"
	StatusLoading           Status = "loading"
	StatusReady             Status = "ready"
	StatusCredentialMissing Status = "credential_missing"
	StatusError             Status = "error"
)

// Upstream is what the session needs from the OMDb client.
type Upstream interface {
	Search(term string, page int) (*omdb.SearchResponse, error)
	GetDetails(imdbID string) (*omdb.DetailResponse, error)
}

// Session is the authoritative catalog browsing state: the accumulated movie
// list for the active search term plus pagination and filter selection.
// Everything the presentation layer renders is derived from it per request.
type Session struct {
	upstream Upstream
	hasKey   bool

	mu            sync.Mutex
	movies        []models.Movie
	term          string
	page          int
	totalResults  int
	selectedGenre string
	selectedYear  string
	status        Status
	lastError     string
	cycle         uint64
}

// NewSession creates a session over the given upstream. When credentialSet
// is false the session is terminally credential-missing and never performs
// network calls.
func NewSession(upstream Upstream, credentialSet bool) *Session {
	return &Session{
		upstream: upstream,
		hasKey:   credentialSet,
		movies:   []models.Movie{},
		page:     1,
		status:   StatusIdle,
	}
}

// SetSearchTerm replaces the active search term, resets pagination to the
// first page and runs a fetch cycle. On success the accumulated list is
// fully replaced. A blank term falls back to the default term.
func (s *Session) SetSearchTerm(term string) models.CatalogView {
	s.mu.Lock()
	s.term = strings.TrimSpace(term)
	s.page = 1
	id, effTerm, page, run := s.beginCycleLocked()
	s.mu.Unlock()

	if run {
		s.runCycle(id, effTerm, page)
	}
	return s.View()
}

// LoadMore advances to the next page and appends its results to the
// accumulated list. The intent is suppressed while a fetch is in flight and
// once the accumulated count has reached the upstream-reported total.
func (s *Session) LoadMore() models.CatalogView {
	s.mu.Lock()
	if s.status == StatusLoading || s.totalResults <= len(s.movies) {
		s.mu.Unlock()
		return s.View()
	}
	s.page++
	id, effTerm, page, run := s.beginCycleLocked()
	s.mu.Unlock()

	if run {
		s.runCycle(id, effTerm, page)
	}
	return s.View()
}

// SetGenre sets the genre filter; empty clears it. No fetch is triggered,
// filtering is purely client-side over the accumulated list.
func (s *Session) SetGenre(genre string) models.CatalogView {
	s.mu.Lock()
	s.selectedGenre = genre
	s.mu.Unlock()
	return s.View()
}

// SetYear sets the year filter; empty clears it.
func (s *Session) SetYear(year string) models.CatalogView {
	s.mu.Lock()
	s.selectedYear = year
	s.mu.Unlock()
	return s.View()
}

// MovieByID returns the accumulated movie with the given id.
func (s *Session) MovieByID(id string) (models.Movie, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range s.movies {
		if m.ID == id {
			return m, true
		}
	}
	return models.Movie{}, false
}

// View derives the current view state from the accumulated list and the
// filter selection.
func (s *Session) View() models.CatalogView {
	s.mu.Lock()
	defer s.mu.Unlock()

	filtered := filterMovies(s.movies, s.selectedGenre, s.selectedYear)
	return models.CatalogView{
		Movies:           filtered,
		Loading:          s.status == StatusLoading,
		Status:           string(s.status),
		Error:            s.lastError,
		AvailableGenres:  availableGenres(s.movies),
		AvailableYears:   availableYears(s.movies),
		SelectedGenre:    s.selectedGenre,
		SelectedYear:     s.selectedYear,
		TotalResults:     s.totalResults,
		AccumulatedCount: len(s.movies),
		ShowLoadMore:     s.totalResults > len(s.movies),
		HasMovies:        len(filtered) > 0,
	}
}

// beginCycleLocked starts a new fetch cycle for the current (term, page)
// pair. The returned id tags the cycle so superseded results are discarded
// on arrival. The credential check happens here, before any network call.
func (s *Session) beginCycleLocked() (id uint64, term string, page int, run bool) {
	if !s.hasKey {
		s.status = StatusCredentialMissing
		s.lastError = "OMDb API key is not configured, set OMDB_API_KEY"
		return 0, "", 0, false
	}
	s.cycle++
	s.status = StatusLoading
	s.lastError = ""
	term = s.term
	if term == "" {
		term = DefaultSearchTerm
	}
	return s.cycle, term, s.page, true
}

// runCycle performs one search plus concurrent per-hit detail enrichment
// and merges the normalized page into the accumulated list. Network I/O
// happens outside the session lock.
func (s *Session) runCycle(id uint64, term string, page int) {
	resp, err := s.upstream.Search(term, page)
	if err != nil {
		slog.Error("search failed", "term", term, "page", page, "error", err)
		s.commitFailure(id, page, StatusError, "couldn't load movies")
		return
	}

	if !resp.Ok() {
		// Upstream-reported failure ("Movie not found!") is a normal empty
		// outcome, not a fault.
		slog.Warn("OMDb reported no results", "term", term, "page", page, "reason", resp.Error)
		s.commitFailure(id, page, StatusReady, "")
		return
	}

	movies := s.enrich(resp.Search)
	s.commitSuccess(id, page, movies, resp.Total())
}

// enrich fetches details for every hit of one page concurrently and
// normalizes the pairs. Results land in an index-addressed slice so the
// search response's order survives out-of-order completion. A failed detail
// fetch degrades that movie to its defaults instead of failing the page.
func (s *Session) enrich(hits []omdb.SearchHit) []models.Movie {
	movies := make([]models.Movie, len(hits))
	var wg sync.WaitGroup
	for i, hit := range hits {
		wg.Add(1)
		go func(i int, hit omdb.SearchHit) {
			defer wg.Done()
			detail, err := s.upstream.GetDetails(hit.ImdbID)
			if err != nil {
				slog.Warn("detail fetch failed", "imdb_id", hit.ImdbID, "error", err)
				detail = nil
			}
			movies[i] = normalize(hit, detail)
		}(i, hit)
	}
	wg.Wait()
	return movies
}

func (s *Session) commitSuccess(id uint64, page int, movies []models.Movie, total int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.cycle {
		slog.Debug("discarding superseded fetch cycle", "cycle", id)
		return
	}

	s.totalResults = total
	if page == 1 {
		s.movies = movies
	} else {
		s.movies = appendUnique(s.movies, movies)
	}
	s.status = StatusReady
	s.lastError = ""
}

func (s *Session) commitFailure(id uint64, page int, status Status, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if id != s.cycle {
		slog.Debug("discarding superseded fetch cycle", "cycle", id)
		return
	}

	// A failed "load more" leaves prior pages intact and rolls the page
	// cursor back so a retry re-requests the missing page.
	if page == 1 {
		s.movies = []models.Movie{}
		s.totalResults = 0
	} else {
		s.page = page - 1
	}
	s.status = status
	s.lastError = message
}

// appendUnique appends new movies in order, skipping ids already
// accumulated. Every movie in the list stays unique by id.
func appendUnique(existing, incoming []models.Movie) []models.Movie {
	seen := make(map[string]struct{}, len(existing))
	for _, m := range existing {
		seen[m.ID] = struct{}{}
	}
	for _, m := range incoming {
		if _, dup := seen[m.ID]; dup {
			continue
		}
		existing = append(existing, m)
	}
	return existing
}
