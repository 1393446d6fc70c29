package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"rentmap-api/internal/models"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

// DefaultRouteCacheSize bounds the route cache. Entries past the bound are
// evicted least-recently-used; within the bound nothing expires for the life
// of the process.
const DefaultRouteCacheSize = 256

// ErrRouteFailed marks a directions failure. Handlers render it as "unable
// to calculate route"; failures are never cached, so the next identical
// request retries the provider.
var ErrRouteFailed = errors.New("service: unable to calculate route")

// DirectionsClient is the provider interface the route service depends on.
type DirectionsClient interface {
	Route(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (models.Route, error)
}

// RouteService serves routes between coordinate pairs, caching successful
// results so a repeated origin/destination pair costs no provider call.
type RouteService struct {
	client DirectionsClient
	cache  *lru.Cache[string, *models.RouteResult]
	group  singleflight.Group
}

// NewRouteService creates a route service with a cache of the given size.
// A non-positive size falls back to DefaultRouteCacheSize.
func NewRouteService(client DirectionsClient, cacheSize int) (*RouteService, error) {
	if cacheSize <= 0 {
		cacheSize = DefaultRouteCacheSize
	}
	cache, err := lru.New[string, *models.RouteResult](cacheSize)
	if err != nil {
		return nil, fmt.Errorf("service: creating route cache: %w", err)
	}
	return &RouteService{client: client, cache: cache}, nil
}

// CacheKey builds the cache key from the exact origin and destination
// coordinates at full precision.
func CacheKey(origin, destination models.LatLng) string {
	return coord(origin.Lat) + "," + coord(origin.Lng) + "-" +
		coord(destination.Lat) + "," + coord(destination.Lng)
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// GetRoute returns the route for an origin/destination pair, from cache when
// present. Concurrent misses for the same pair are collapsed into a single
// provider request.
func (s *RouteService) GetRoute(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (*models.RouteResult, error) {
	if !mode.Valid() {
		return nil, fmt.Errorf("service: invalid travel mode: %q", mode)
	}

	key := CacheKey(origin, destination)
	if cached, ok := s.cache.Get(key); ok {
		return cached, nil
	}

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		if cached, ok := s.cache.Get(key); ok {
			return cached, nil
		}

		route, err := s.client.Route(ctx, origin, destination, mode)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRouteFailed, err)
		}

		result := buildRouteResult(origin, destination, mode, route)
		s.cache.Add(key, result)
		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*models.RouteResult), nil
}

// CacheLen reports the number of cached routes.
func (s *RouteService) CacheLen() int {
	return s.cache.Len()
}

func buildRouteResult(origin, destination models.LatLng, mode models.TravelMode, route models.Route) *models.RouteResult {
	result := &models.RouteResult{
		Origin:      origin,
		Destination: destination,
		Mode:        mode,
		Route:       route,
	}

	if len(route.Legs) > 0 {
		result.DistanceText = route.Legs[0].DistanceText
		result.DurationText = route.Legs[0].DurationText
		result.LabelPosition = labelPosition(origin, destination, route.Legs[0].Steps)
	} else {
		result.LabelPosition = midpoint(origin, destination)
	}

	return result
}

// labelPosition anchors the travel-time label at the route's halfway point,
// found by walking cumulative step distances. A step list without usable
// distances falls back to the middle step; an empty list falls back to the
// straight-line midpoint.
func labelPosition(origin, destination models.LatLng, steps []models.RouteStep) models.LatLng {
	if len(steps) == 0 {
		return midpoint(origin, destination)
	}

	total := 0
	for _, st := range steps {
		total += st.DistanceMeters
	}
	if total <= 0 {
		mid := steps[len(steps)/2]
		return mid.StartLocation
	}

	walked := 0
	for _, st := range steps {
		walked += st.DistanceMeters
		if walked >= total/2 {
			return st.StartLocation
		}
	}

	return steps[len(steps)-1].EndLocation
}

func midpoint(a, b models.LatLng) models.LatLng {
	return models.LatLng{Lat: (a.Lat + b.Lat) / 2, Lng: (a.Lng + b.Lng) / 2}
}
