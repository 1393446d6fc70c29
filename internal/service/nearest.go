package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"

	"rentmap-api/internal/geo"
	"rentmap-api/internal/models"
)

// Search radii fixed by the comparison view: tight for category buttons,
// wider for free-text queries.
const (
	CategoryRadiusMeters = 2000
	KeywordRadiusMeters  = 5000
)

// maxRunnersUp bounds the short result list kept alongside the nearest match.
const maxRunnersUp = 2

// ErrPlacesUnavailable marks a provider failure. Handlers render it as
// "unable to search nearby places"; it never crashes a request.
var ErrPlacesUnavailable = errors.New("service: unable to search nearby places")

// PlacesClient is the provider interface the resolver depends on.
type PlacesClient interface {
	Nearby(ctx context.Context, loc models.LatLng, radiusM int, keyword string) ([]models.PlaceCandidate, error)
	TextSearch(ctx context.Context, query string, loc models.LatLng, radiusM int) ([]models.PlaceCandidate, error)
}

type resultKey struct {
	listingID int64
	category  string
}

// NearestPlaceService resolves the closest place of a category near a
// listing. The provider's relevance ordering is discarded: candidates are
// re-ranked by great-circle distance from the listing. It also keeps the
// current result per (listing, category) pair for the comparison view.
type NearestPlaceService struct {
	client PlacesClient

	mu      sync.Mutex
	results map[resultKey]*models.NearestPlaceResult
}

// NewNearestPlaceService creates a new nearest place service
func NewNearestPlaceService(client PlacesClient) *NearestPlaceService {
	return &NearestPlaceService{
		client:  client,
		results: make(map[resultKey]*models.NearestPlaceResult),
	}
}

// ResolveAt finds the closest place of the given category or keyword near
// origin without recording the result. A nil result with a nil error means
// no place was found, which is a valid outcome.
func (s *NearestPlaceService) ResolveAt(ctx context.Context, origin models.LatLng, category string) (*models.NearestPlaceResult, error) {
	if category == "" {
		return nil, fmt.Errorf("service: category or keyword cannot be empty")
	}

	var (
		candidates []models.PlaceCandidate
		err        error
	)
	if models.IsKnownCategory(category) {
		candidates, err = s.client.Nearby(ctx, origin, CategoryRadiusMeters, category)
	} else {
		candidates, err = s.client.TextSearch(ctx, category, origin, KeywordRadiusMeters)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPlacesUnavailable, err)
	}

	if len(candidates) == 0 {
		return nil, nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return geo.DistanceMiles(origin, candidates[i].Location) <
			geo.DistanceMiles(origin, candidates[j].Location)
	})

	result := &models.NearestPlaceResult{
		Place:         candidates[0],
		DistanceMiles: geo.DistanceMiles(origin, candidates[0].Location),
	}
	for _, c := range candidates[1:] {
		if len(result.RunnersUp) == maxRunnersUp {
			break
		}
		result.RunnersUp = append(result.RunnersUp, c)
	}

	return result, nil
}

// Resolve is ResolveAt for a listing: the outcome replaces any previously
// stored result for the same (listing, category) pair, and a no-result
// outcome clears it.
func (s *NearestPlaceService) Resolve(ctx context.Context, listingID int64, origin models.LatLng, category string) (*models.NearestPlaceResult, error) {
	result, err := s.ResolveAt(ctx, origin, category)
	if err != nil {
		return nil, err
	}

	key := resultKey{listingID: listingID, category: category}
	s.mu.Lock()
	if result == nil {
		delete(s.results, key)
	} else {
		s.results[key] = result
	}
	s.mu.Unlock()

	return result, nil
}

// ResultFor returns the stored result for a (listing, category) pair, or nil.
func (s *NearestPlaceService) ResultFor(listingID int64, category string) *models.NearestPlaceResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.results[resultKey{listingID: listingID, category: category}]
}

// DropListing discards every stored result for a listing, used when it is
// removed from the comparison set.
func (s *NearestPlaceService) DropListing(listingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.results {
		if key.listingID == listingID {
			delete(s.results, key)
		}
	}
}
