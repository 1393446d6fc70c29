package mapsession

import (
	"context"
	"sync"
	"testing"

	"rentmap-api/internal/models"
	"rentmap-api/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakePlacesClient serves canned candidates and counts provider calls.
type fakePlacesClient struct {
	mu         sync.Mutex
	calls      int
	candidates []models.PlaceCandidate
	err        error
}

func (f *fakePlacesClient) Nearby(ctx context.Context, loc models.LatLng, radiusM int, keyword string) ([]models.PlaceCandidate, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.candidates, f.err
}

func (f *fakePlacesClient) TextSearch(ctx context.Context, query string, loc models.LatLng, radiusM int) ([]models.PlaceCandidate, error) {
	return f.Nearby(ctx, loc, radiusM, query)
}

func (f *fakePlacesClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// fakeDirectionsClient serves a canned route and counts provider calls.
type fakeDirectionsClient struct {
	mu    sync.Mutex
	calls int
	route models.Route
	err   error
}

func (f *fakeDirectionsClient) Route(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (models.Route, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	return f.route, f.err
}

func (f *fakeDirectionsClient) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func coords(lat, lng float64) (*float64, *float64) {
	return &lat, &lng
}

func listingL1() models.Listing {
	lat, lng := coords(40.7128, -74.0060)
	return models.Listing{
		ID:        1,
		Address:   "1 Downtown Loft, New York, NY",
		Latitude:  lat,
		Longitude: lng,
		Price:     3200,
	}
}

func gymCandidates() []models.PlaceCandidate {
	return []models.PlaceCandidate{
		{
			PlaceID:  "gym-near",
			Name:     "Hudson Fitness",
			Location: models.LatLng{Lat: 40.7148, Lng: -74.0040},
			Category: "gym",
		},
		{
			PlaceID:  "gym-far",
			Name:     "Uptown Gym",
			Location: models.LatLng{Lat: 40.7228, Lng: -74.0160},
			Category: "gym",
		},
	}
}

func testRoute() models.Route {
	return models.Route{Legs: []models.RouteLeg{{
		DistanceText: "0.2 mi",
		DurationText: "5 mins",
		Steps: []models.RouteStep{{
			DistanceMeters: 320,
			StartLocation:  models.LatLng{Lat: 40.7128, Lng: -74.0060},
			EndLocation:    models.LatLng{Lat: 40.7148, Lng: -74.0040},
		}},
	}}}
}

func newTestManager(t *testing.T, placesClient *fakePlacesClient, directionsClient *fakeDirectionsClient, mapsKey string) (*Manager, *service.NearestPlaceService) {
	t.Helper()

	resolver := service.NewNearestPlaceService(placesClient)
	router, err := service.NewRouteService(directionsClient, 0)
	require.NoError(t, err)

	return NewManager(resolver, router, service.NewRecentSearches(), mapsKey), resolver
}

func TestManager_GymSearchEndToEnd(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: gymCandidates()}
	directionsClient := &fakeDirectionsClient{route: testRoute()}
	manager, _ := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)
	assert.False(t, session.Static)

	outcome, err := manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)

	// The ~0.19 mi candidate wins regardless of provider ordering.
	assert.Equal(t, StateRouted, outcome.State)
	require.NotNil(t, outcome.Result)
	assert.Equal(t, "gym-near", outcome.Result.Place.PlaceID)
	assert.InDelta(t, 0.19, outcome.Result.DistanceMiles, 0.03)

	require.NotNil(t, outcome.Route)
	assert.Equal(t, "0.2 mi", outcome.Route.DistanceText)
	assert.Equal(t, "5 mins", outcome.Route.DurationText)
	assert.Equal(t, 1, directionsClient.callCount())

	// Re-searching the same category replaces the result but the identical
	// origin/destination pair is served from the route cache.
	outcome, err = manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)
	assert.Equal(t, StateRouted, outcome.State)
	assert.Equal(t, 2, placesClient.callCount())
	assert.Equal(t, 1, directionsClient.callCount())
}

func TestManager_StaticFallbackWithoutMapsKey(t *testing.T) {
	manager, _ := newTestManager(t, &fakePlacesClient{}, &fakeDirectionsClient{}, "")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)
	assert.True(t, session.Static)

	view := session.Snapshot()
	assert.Len(t, view.Listings, 1)
	assert.Empty(t, view.Markers)

	_, err = manager.Search(ctx, session.ID, 1, "gym")
	assert.ErrorIs(t, err, ErrMapsUnavailable)
}

func TestManager_MissingCoordinates(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: gymCandidates()}
	directionsClient := &fakeDirectionsClient{route: testRoute()}
	manager, _ := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	unmapped := models.Listing{ID: 2, Address: "2 Nowhere Lane"}
	session, err := manager.CreateSession(ctx, []models.Listing{unmapped})
	require.NoError(t, err)
	assert.Contains(t, session.Notes[0], "location information is missing")
	assert.Empty(t, session.Snapshot().Markers)

	outcome, err := manager.Search(ctx, session.ID, 2, "gym")
	require.NoError(t, err)
	assert.Equal(t, "location information is missing", outcome.Message)
	assert.Equal(t, 0, placesClient.callCount())
	assert.Equal(t, 0, directionsClient.callCount())
}

func TestManager_NoResultsIssuesNoRouteRequest(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: []models.PlaceCandidate{}}
	directionsClient := &fakeDirectionsClient{route: testRoute()}
	manager, _ := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)

	outcome, err := manager.Search(ctx, session.ID, 1, "school")
	require.NoError(t, err)

	assert.Equal(t, StateNotFound, outcome.State)
	assert.Equal(t, "No school found nearby", outcome.Message)
	assert.Nil(t, outcome.Route)
	assert.Equal(t, 0, directionsClient.callCount())
}

func TestManager_PlacesFailureIsRenderedNotThrown(t *testing.T) {
	placesClient := &fakePlacesClient{err: assert.AnError}
	manager, _ := newTestManager(t, placesClient, &fakeDirectionsClient{}, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)

	outcome, err := manager.Search(ctx, session.ID, 1, "cafe")
	require.NoError(t, err)
	assert.Equal(t, "unable to search nearby places", outcome.Message)
}

func TestManager_RouteFailureKeepsPlaceResult(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: gymCandidates()}
	directionsClient := &fakeDirectionsClient{err: assert.AnError}
	manager, _ := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)

	outcome, err := manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)

	assert.Equal(t, StateFound, outcome.State)
	assert.Equal(t, "Unable to calculate route", outcome.Message)
	require.NotNil(t, outcome.Marker)
	assert.Nil(t, outcome.Route)

	view := session.Snapshot()
	assert.Len(t, view.Routes, 0)
	assert.Len(t, view.Markers, 2) // listing marker + place marker
}

func TestManager_CategoriesCoexistAndReSearchClearsOnlyItsOwn(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: gymCandidates()}
	directionsClient := &fakeDirectionsClient{route: testRoute()}
	manager, _ := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)

	_, err = manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)
	_, err = manager.Search(ctx, session.ID, 1, "cafe")
	require.NoError(t, err)

	view := session.Snapshot()
	assert.Len(t, view.Routes, 2)
	assert.Len(t, view.Markers, 3) // listing + gym place + cafe place

	// Only one info window stays open, the most recent one.
	require.NotNil(t, view.ActiveInfo)

	// Re-searching gym replaces only gym overlays; cafe's survive.
	_, err = manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)

	view = session.Snapshot()
	assert.Len(t, view.Routes, 2)
	assert.Len(t, view.Markers, 3)
}

func TestManager_RemoveListingDropsOverlaysAndResults(t *testing.T) {
	placesClient := &fakePlacesClient{candidates: gymCandidates()}
	directionsClient := &fakeDirectionsClient{route: testRoute()}
	manager, resolver := newTestManager(t, placesClient, directionsClient, "test-key")
	ctx := context.Background()

	session, err := manager.CreateSession(ctx, []models.Listing{listingL1()})
	require.NoError(t, err)

	_, err = manager.Search(ctx, session.ID, 1, "gym")
	require.NoError(t, err)
	require.NotNil(t, resolver.ResultFor(1, "gym"))

	require.NoError(t, manager.RemoveListing(session.ID, 1))

	view := session.Snapshot()
	assert.Empty(t, view.Listings)
	assert.Empty(t, view.Markers)
	assert.Empty(t, view.Routes)
	assert.Nil(t, resolver.ResultFor(1, "gym"))
}

func TestManager_UnknownSession(t *testing.T) {
	manager, _ := newTestManager(t, &fakePlacesClient{}, &fakeDirectionsClient{}, "test-key")

	_, err := manager.Search(context.Background(), "nope", 1, "gym")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}
