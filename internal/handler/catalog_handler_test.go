package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"

	"moviehub-catalog-service/internal/catalog"
	"moviehub-catalog-service/internal/models"
	"moviehub-catalog-service/internal/omdb"
	"moviehub-catalog-service/internal/ratings"
)

// fakeUpstream serves three hits per page out of fifty.
type fakeUpstream struct{}

func (fakeUpstream) Search(term string, page int) (*omdb.SearchResponse, error) {
	hits := make([]omdb.SearchHit, 3)
	for i := range hits {
		hits[i] = omdb.SearchHit{
			ImdbID: fmt.Sprintf("tt%d%03d", page, i),
			Title:  fmt.Sprintf("%s %d-%d", term, page, i),
			Year:   "2012",
			Poster: "N/A",
		}
	}
	return &omdb.SearchResponse{Response: "True", Search: hits, TotalResults: "50"}, nil
}

func (fakeUpstream) GetDetails(imdbID string) (*omdb.DetailResponse, error) {
	return &omdb.DetailResponse{
		Genre:      "Action, Sci-Fi",
		ImdbRating: "7.5",
		Plot:       "Plot of " + imdbID,
		Actors:     "Lead Actor, Supporting Actor",
	}, nil
}

func newTestApp(credentialSet bool) *fiber.App {
	session := catalog.NewSession(fakeUpstream{}, credentialSet)
	h := NewCatalogHandler(session, ratings.NewStore())

	app := fiber.New()
	api := app.Group("/api/v1")
	api.Get("/health", h.Health)
	api.Get("/catalog", h.GetCatalog)
	api.Put("/catalog/search", h.Search)
	api.Post("/catalog/more", h.LoadMore)
	api.Put("/catalog/filters", h.SetFilters)
	api.Get("/catalog/movies/:id", h.GetMovie)
	api.Put("/catalog/movies/:id/rating", h.RateMovie)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) *http.Response {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	return resp
}

func decodeView(t *testing.T, resp *http.Response) models.CatalogView {
	t.Helper()
	var view models.CatalogView
	if err := json.NewDecoder(resp.Body).Decode(&view); err != nil {
		t.Fatalf("failed to decode view: %v", err)
	}
	return view
}

func TestSearchEndpointPopulatesCatalog(t *testing.T) {
	app := newTestApp(true)

	resp := doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	view := decodeView(t, resp)
	if view.AccumulatedCount != 3 || view.TotalResults != 50 {
		t.Errorf("unexpected view: %d movies, total %d", view.AccumulatedCount, view.TotalResults)
	}
	if !view.ShowLoadMore {
		t.Error("expected show_load_more")
	}

	resp = doJSON(t, app, "GET", "/api/v1/catalog", "")
	if view := decodeView(t, resp); view.AccumulatedCount != 3 {
		t.Errorf("GET catalog lost state, got %d movies", view.AccumulatedCount)
	}
}

func TestLoadMoreEndpointAppends(t *testing.T) {
	app := newTestApp(true)
	doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)

	resp := doJSON(t, app, "POST", "/api/v1/catalog/more", "")
	if view := decodeView(t, resp); view.AccumulatedCount != 6 {
		t.Errorf("expected 6 movies after load more, got %d", view.AccumulatedCount)
	}
}

func TestFiltersEndpoint(t *testing.T) {
	app := newTestApp(true)
	doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)

	resp := doJSON(t, app, "PUT", "/api/v1/catalog/filters", `{"genre":"Drama","year":""}`)
	view := decodeView(t, resp)
	if view.SelectedGenre != "Drama" {
		t.Errorf("unexpected selection: %q", view.SelectedGenre)
	}
	if len(view.Movies) != 0 || view.HasMovies {
		t.Errorf("no accumulated movie is Drama, got %d", len(view.Movies))
	}
	// The accumulated list itself is untouched by filtering.
	if view.AccumulatedCount != 3 {
		t.Errorf("filtering must not shrink the accumulated list, got %d", view.AccumulatedCount)
	}
}

func TestMovieDetailAndRating(t *testing.T) {
	app := newTestApp(true)
	doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)

	resp := doJSON(t, app, "PUT", "/api/v1/catalog/movies/tt1000/rating", `{"value":4}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected rating status: %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "GET", "/api/v1/catalog/movies/tt1000", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected detail status: %d", resp.StatusCode)
	}
	var detail models.MovieDetail
	if err := json.NewDecoder(resp.Body).Decode(&detail); err != nil {
		t.Fatalf("failed to decode detail: %v", err)
	}
	if detail.UserRating != 4 {
		t.Errorf("expected user rating 4, got %d", detail.UserRating)
	}
	if detail.Genre != "Action, Sci-Fi" {
		t.Errorf("unexpected genre: %q", detail.Genre)
	}
}

func TestRatingOutOfRangeRejected(t *testing.T) {
	app := newTestApp(true)
	doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)

	resp := doJSON(t, app, "PUT", "/api/v1/catalog/movies/tt1000/rating", `{"value":7}`)
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400 for out-of-range rating, got %d", resp.StatusCode)
	}
}

func TestUnknownMovieIs404(t *testing.T) {
	app := newTestApp(true)
	doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)

	resp := doJSON(t, app, "GET", "/api/v1/catalog/movies/tt9999999", "")
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", resp.StatusCode)
	}

	resp = doJSON(t, app, "PUT", "/api/v1/catalog/movies/tt9999999/rating", `{"value":3}`)
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404 for rating unknown movie, got %d", resp.StatusCode)
	}
}

func TestCredentialMissingIs503(t *testing.T) {
	app := newTestApp(false)

	resp := doJSON(t, app, "PUT", "/api/v1/catalog/search", `{"term":"Batman"}`)
	if resp.StatusCode != http.StatusServiceUnavailable {
		t.Errorf("expected 503, got %d", resp.StatusCode)
	}

	// The view endpoint still answers, reporting the state.
	resp = doJSON(t, app, "GET", "/api/v1/catalog", "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}
