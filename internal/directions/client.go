package directions

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

// Client queries the Google Directions web service for routes between two
// points.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewClient creates a directions client. baseURL should point at the
// provider's directions API root, e.g.
// https://maps.googleapis.com/maps/api/directions.
func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimSuffix(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
}

type directionsStep struct {
	Distance struct {
		Value int `json:"value"`
	} `json:"distance"`
	StartLocation struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"start_location"`
	EndLocation struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"end_location"`
}

type directionsLeg struct {
	Distance struct {
		Text string `json:"text"`
	} `json:"distance"`
	Duration struct {
		Text string `json:"text"`
	} `json:"duration"`
	Steps []directionsStep `json:"steps"`
}

type directionsRoute struct {
	Legs []directionsLeg `json:"legs"`
}

type directionsResponse struct {
	Routes []directionsRoute `json:"routes"`
	Status string            `json:"status"`
}

// Route fetches a route from origin to destination for the given travel
// mode. A response without any route is reported as an error; the caller
// renders it as a route failure, not a crash.
func (c *Client) Route(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (models.Route, error) {
	apiURL := fmt.Sprintf(
		"%s/json?origin=%f,%f&destination=%f,%f&mode=%s&key=%s",
		c.baseURL,
		origin.Lat, origin.Lng,
		destination.Lat, destination.Lng,
		strings.ToLower(string(mode)),
		url.QueryEscape(c.apiKey),
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return models.Route{}, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.Route{}, fmt.Errorf("directions: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.Route{}, fmt.Errorf("directions: provider returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Route{}, err
	}

	var dResp directionsResponse
	if err := json.Unmarshal(body, &dResp); err != nil {
		return models.Route{}, fmt.Errorf("directions: decoding response: %w", err)
	}

	if dResp.Status != "OK" || len(dResp.Routes) == 0 {
		return models.Route{}, fmt.Errorf("directions: provider error: %s", dResp.Status)
	}

	return parseRoute(dResp.Routes[0]), nil
}

func parseRoute(r directionsRoute) models.Route {
	route := models.Route{Legs: make([]models.RouteLeg, 0, len(r.Legs))}
	for _, leg := range r.Legs {
		steps := make([]models.RouteStep, 0, len(leg.Steps))
		for _, s := range leg.Steps {
			steps = append(steps, models.RouteStep{
				DistanceMeters: s.Distance.Value,
				StartLocation:  models.LatLng{Lat: s.StartLocation.Lat, Lng: s.StartLocation.Lng},
				EndLocation:    models.LatLng{Lat: s.EndLocation.Lat, Lng: s.EndLocation.Lng},
			})
		}
		route.Legs = append(route.Legs, models.RouteLeg{
			DistanceText: leg.Distance.Text,
			DurationText: leg.Duration.Text,
			Steps:        steps,
		})
	}
	return route
}
