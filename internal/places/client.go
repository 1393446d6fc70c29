package places

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"rentmap-api/internal/models"
)

// statusZeroResults is the provider status for a query that matched nothing.
// It is a valid empty outcome, not an error.
const statusZeroResults = "ZERO_RESULTS"

// Client queries the Google Places web service for points of interest.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a places client. baseURL should point at the provider's
// place API root, e.g. https://maps.googleapis.com/maps/api/place.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

// placesResult is the raw provider representation of a single place.
type placesResult struct {
	PlaceID  string   `json:"place_id"`
	Name     string   `json:"name"`
	Types    []string `json:"types"`
	Vicinity string   `json:"vicinity"`
	Geometry struct {
		Location struct {
			Lat float64 `json:"lat"`
			Lng float64 `json:"lng"`
		} `json:"location"`
	} `json:"geometry"`
	Rating float64 `json:"rating,omitempty"`
}

type placesResponse struct {
	Results []placesResult `json:"results"`
	Status  string         `json:"status"`
}

// Nearby fetches POIs of the given keyword near a location using the nearby
// search endpoint. An empty result list is a valid outcome.
func (c *Client) Nearby(ctx context.Context, loc models.LatLng, radiusM int, keyword string) ([]models.PlaceCandidate, error) {
	apiURL := fmt.Sprintf(
		"%s/nearbysearch/json?location=%f,%f&radius=%d&keyword=%s&key=%s",
		c.baseURL, loc.Lat, loc.Lng, radiusM, url.QueryEscape(keyword), url.QueryEscape(c.apiKey),
	)
	return c.do(ctx, apiURL, keyword)
}

// TextSearch searches for POIs matching a free-text query biased toward a
// location using the text search endpoint.
func (c *Client) TextSearch(ctx context.Context, query string, loc models.LatLng, radiusM int) ([]models.PlaceCandidate, error) {
	apiURL := fmt.Sprintf(
		"%s/textsearch/json?query=%s&location=%f,%f&radius=%d&key=%s",
		c.baseURL, url.QueryEscape(query), loc.Lat, loc.Lng, radiusM, url.QueryEscape(c.apiKey),
	)
	return c.do(ctx, apiURL, query)
}

func (c *Client) do(ctx context.Context, apiURL, category string) ([]models.PlaceCandidate, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("places: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("places: provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var pResp placesResponse
	if err := json.Unmarshal(body, &pResp); err != nil {
		return nil, fmt.Errorf("places: decoding response: %w", err)
	}

	if pResp.Status != "OK" && pResp.Status != statusZeroResults {
		return nil, fmt.Errorf("places: provider error: %s", pResp.Status)
	}

	return parsePlaces(pResp.Results, category), nil
}

// parsePlaces converts raw provider results into candidates, dropping
// entries without a name or position.
func parsePlaces(results []placesResult, category string) []models.PlaceCandidate {
	candidates := make([]models.PlaceCandidate, 0, len(results))
	for _, r := range results {
		if r.Name == "" {
			continue
		}
		lat := r.Geometry.Location.Lat
		lng := r.Geometry.Location.Lng
		if lat == 0 && lng == 0 {
			continue
		}

		candidates = append(candidates, models.PlaceCandidate{
			PlaceID:  r.PlaceID,
			Name:     r.Name,
			Address:  r.Vicinity,
			Location: models.LatLng{Lat: lat, Lng: lng},
			Category: category,
			Rating:   r.Rating,
		})
	}
	return candidates
}
