package omdb

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// NotAvailable is the sentinel OMDb uses for absent field values.
const NotAvailable = "N/A"

// Client is the OMDb API client.
type Client struct {
	apiKey  string
	baseURL string
	http    *http.Client
}

// NewClient creates a new OMDb API client.
func NewClient(apiKey, baseURL string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		http: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ---- OMDb Response Types ----

// SearchHit is a lightweight search-result entry before detail enrichment.
type SearchHit struct {
	ImdbID string `json:"imdbID"`
	Title  string `json:"Title"`
	Year   string `json:"Year"`
	Poster string `json:"Poster"`
	Type   string `json:"Type"`
}

// SearchResponse is the OMDb title-search response. OMDb reports failures
// in-band: Response is "False" and Error carries the reason.
type SearchResponse struct {
	Response     string      `json:"Response"`
	Error        string      `json:"Error"`
	Search       []SearchHit `json:"Search"`
	TotalResults string      `json:"totalResults"`
}

// Ok reports whether OMDb answered the search successfully.
func (r *SearchResponse) Ok() bool {
	return r.Response == "True"
}

// Total parses the string-encoded total-result count, returning 0 when the
// field is absent or malformed.
func (r *SearchResponse) Total() int {
	n, err := strconv.Atoi(r.TotalResults)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// DetailResponse is the full per-title record fetched by IMDb ID. Every
// field may carry the "N/A" sentinel or be absent entirely.
type DetailResponse struct {
	Title      string `json:"Title"`
	Year       string `json:"Year"`
	Genre      string `json:"Genre"`
	ImdbRating string `json:"imdbRating"`
	Plot       string `json:"Plot"`
	Actors     string `json:"Actors"`
	Poster     string `json:"Poster"`
	Response   string `json:"Response"`
	Error      string `json:"Error"`
}

// ---- Client Methods ----

// Search issues a title search for the given term and 1-based page index.
// An OMDb-reported failure (Response == "False") is returned as a decoded
// response, not an error; only transport-level problems return an error.
func (c *Client) Search(term string, page int) (*SearchResponse, error) {
	reqURL := fmt.Sprintf(
		"%s/?apikey=%s&s=%s&page=%d",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(term), page,
	)

	slog.Debug("fetching OMDb search", "term", term, "page", page)
	resp, err := c.doGet(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result SearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode search response: %w", err)
	}
	return &result, nil
}

// GetDetails fetches the full record for one title, requesting the
// full-length plot variant.
func (c *Client) GetDetails(imdbID string) (*DetailResponse, error) {
	reqURL := fmt.Sprintf(
		"%s/?apikey=%s&i=%s&plot=full",
		c.baseURL, url.QueryEscape(c.apiKey), url.QueryEscape(imdbID),
	)

	slog.Debug("fetching OMDb details", "imdb_id", imdbID)
	resp, err := c.doGet(reqURL)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	var result DetailResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode detail response: %w", err)
	}
	return &result, nil
}

func (c *Client) doGet(reqURL string) (*http.Response, error) {
	resp, err := c.http.Get(reqURL)
	if err != nil {
		return nil, fmt.Errorf("HTTP request failed: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("OMDb API returned status %d: %s", resp.StatusCode, string(body))
	}
	return resp, nil
}
