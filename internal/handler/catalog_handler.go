package handler

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v3"

	"moviehub-catalog-service/internal/catalog"
	"moviehub-catalog-service/internal/models"
	"moviehub-catalog-service/internal/ratings"
)

// CatalogHandler handles HTTP requests for the movie catalog.
type CatalogHandler struct {
	session *catalog.Session
	ratings *ratings.Store
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(session *catalog.Session, ratings *ratings.Store) *CatalogHandler {
	return &CatalogHandler{session: session, ratings: ratings}
}

// ErrorResponse is the standard error response format.
type ErrorResponse struct {
	Error string `json:"error"`
}

// Health returns service health status.
func (h *CatalogHandler) Health(c fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"service": "catalog-service",
	})
}

// GetCatalog returns the current derived view state.
func (h *CatalogHandler) GetCatalog(c fiber.Ctx) error {
	return c.JSON(h.session.View())
}

// Search sets the active search term and runs a fresh fetch cycle. A blank
// term falls back to the default catalog term.
func (h *CatalogHandler) Search(c fiber.Ctx) error {
	var req models.SearchRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	view := h.session.SetSearchTerm(req.Term)
	return h.respondView(c, view)
}

// LoadMore fetches the next result page and appends it to the catalog.
func (h *CatalogHandler) LoadMore(c fiber.Ctx) error {
	view := h.session.LoadMore()
	return h.respondView(c, view)
}

// SetFilters sets the genre/year filter selection; empty values clear the
// corresponding filter.
func (h *CatalogHandler) SetFilters(c fiber.Ctx) error {
	var req models.FiltersRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	h.session.SetGenre(req.Genre)
	view := h.session.SetYear(req.Year)
	return c.JSON(view)
}

// GetMovie returns one accumulated movie plus the caller's star rating.
func (h *CatalogHandler) GetMovie(c fiber.Ctx) error {
	id := c.Params("id")
	movie, ok := h.session.MovieByID(id)
	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
	}

	rating, _ := h.ratings.Get(id)
	return c.JSON(models.MovieDetail{Movie: movie, UserRating: rating})
}

// RateMovie records a 1-5 star rating for a movie.
func (h *CatalogHandler) RateMovie(c fiber.Ctx) error {
	id := c.Params("id")
	if _, ok := h.session.MovieByID(id); !ok {
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Error: "movie not found"})
	}

	var req models.RatingRequest
	if err := c.Bind().JSON(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: "invalid request body"})
	}

	if err := h.ratings.Rate(id, req.Value); err != nil {
		if errors.Is(err, ratings.ErrOutOfRange) {
			return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Error: err.Error()})
		}
		slog.Error("failed to store rating", "id", id, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Error: "failed to store rating"})
	}

	value, _ := h.ratings.Get(id)
	return c.JSON(fiber.Map{"id": id, "user_rating": value})
}

// respondView returns the view, except when the session is terminally
// credential-missing: fetch intents then get an instructional 503.
func (h *CatalogHandler) respondView(c fiber.Ctx, view models.CatalogView) error {
	if view.Status == string(catalog.StatusCredentialMissing) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(ErrorResponse{Error: view.Error})
	}
	return c.JSON(view)
}
