package mapsession

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"rentmap-api/internal/models"
	"rentmap-api/internal/service"

	"github.com/google/uuid"
)

// ErrMapsUnavailable means the mapping provider cannot be used (no API key
// configured). Comparison sessions fall back to a static listing view.
var ErrMapsUnavailable = errors.New("mapsession: mapping service unavailable")

// ErrSessionNotFound is returned for unknown or expired session ids.
var ErrSessionNotFound = errors.New("mapsession: session not found")

// Resolver finds the nearest place of a category near a listing.
type Resolver interface {
	Resolve(ctx context.Context, listingID int64, origin models.LatLng, category string) (*models.NearestPlaceResult, error)
	DropListing(listingID int64)
}

// Router serves cached routes between coordinate pairs.
type Router interface {
	GetRoute(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (*models.RouteResult, error)
}

// Recents records search terms.
type Recents interface {
	Append(term string)
}

// Manager owns comparison sessions and drives the overlay lifecycle for
// each search.
type Manager struct {
	resolver Resolver
	router   Router
	recents  Recents
	mapsKey  string
	init     *mapInit

	mu       sync.RWMutex
	sessions map[string]*Session
}

// NewManager creates a session manager. An empty mapsKey puts every session
// into static fallback mode.
func NewManager(resolver Resolver, router Router, recents Recents, mapsKey string) *Manager {
	m := &Manager{
		resolver: resolver,
		router:   router,
		recents:  recents,
		mapsKey:  mapsKey,
		sessions: make(map[string]*Session),
	}
	m.init = newMapInit(m.initMap)
	return m
}

func (m *Manager) initMap(ctx context.Context) error {
	if m.mapsKey == "" {
		return ErrMapsUnavailable
	}
	return nil
}

// CreateSession builds a comparison session from the given listings. When
// the mapping provider is unavailable the session is static: listings render
// as a plain list with no markers and searches are rejected. Listings
// without coordinates get no marker, only a note.
func (m *Manager) CreateSession(ctx context.Context, listings []models.Listing) (*Session, error) {
	static := false
	if err := m.init.Ensure(ctx); err != nil {
		if !errors.Is(err, ErrMapsUnavailable) {
			return nil, err
		}
		static = true
	}

	session := newSession(uuid.NewString(), static)
	for _, l := range listings {
		session.addListing(l)
		if !static && !l.HasCoordinates() {
			session.Notes = append(session.Notes,
				fmt.Sprintf("location information is missing for %s", l.Address))
		}
	}

	m.mu.Lock()
	m.sessions[session.ID] = session
	m.mu.Unlock()

	return session, nil
}

// GetSession returns a session by id.
func (m *Manager) GetSession(id string) (*Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	session, ok := m.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SearchOutcome reports how one category search changed the session.
type SearchOutcome struct {
	ListingID int64                      `json:"listing_id"`
	Category  string                     `json:"category"`
	State     SearchState                `json:"state"`
	Message   string                     `json:"message,omitempty"`
	Result    *models.NearestPlaceResult `json:"result,omitempty"`
	Marker    *Marker                    `json:"marker,omitempty"`
	Route     *RouteOverlay              `json:"route,omitempty"`
	Info      *InfoOverlay               `json:"info,omitempty"`
}

// Search runs one category (or free-text) search for a listing in a
// session: close the open info window, clear this pair's previous overlays,
// resolve the nearest place, then route to it. Failures come back as
// rendered messages in the outcome, not panics.
func (m *Manager) Search(ctx context.Context, sessionID string, listingID int64, category string) (*SearchOutcome, error) {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return nil, err
	}
	if session.Static {
		return nil, ErrMapsUnavailable
	}

	// Searches issued before the map finished initializing queue up here
	// instead of racing a second initialization.
	if err := m.init.Ensure(ctx); err != nil {
		return nil, err
	}

	session.mu.Lock()
	listing, ok := session.listings[listingID]
	session.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("mapsession: listing %d is not in session %s", listingID, sessionID)
	}

	outcome := &SearchOutcome{ListingID: listingID, Category: category}

	if !listing.HasCoordinates() {
		outcome.State = StateIdle
		outcome.Message = "location information is missing"
		return outcome, nil
	}

	m.recents.Append(category)

	session.closeActiveInfo()
	session.clearCategory(listingID, category)
	session.setState(listingID, StateSearching)

	origin := listing.Coordinates()
	result, err := m.resolver.Resolve(ctx, listingID, origin, category)
	if err != nil {
		session.setState(listingID, StateIdle)
		outcome.State = StateIdle
		outcome.Message = "unable to search nearby places"
		return outcome, nil
	}
	if result == nil {
		session.setState(listingID, StateNotFound)
		outcome.State = StateNotFound
		outcome.Message = fmt.Sprintf("No %s found nearby", category)
		return outcome, nil
	}

	session.setState(listingID, StateFound)
	marker := session.addPlaceMarker(listingID, category, result.Place)
	info := session.openInfo(marker.ID,
		fmt.Sprintf("%s (%.2f mi)", result.Place.Name, result.DistanceMiles))

	outcome.State = StateFound
	outcome.Result = result
	outcome.Marker = &marker
	outcome.Info = info

	// Category buttons route on foot; free-text searches may be farther out,
	// so they route by car.
	mode := models.TravelModeWalking
	if !models.IsKnownCategory(category) {
		mode = models.TravelModeDriving
	}

	routeResult, err := m.router.GetRoute(ctx, origin, result.Place.Location, mode)
	if err != nil {
		outcome.Message = "Unable to calculate route"
		return outcome, nil
	}

	overlay := RouteOverlay{
		CacheKey:      service.CacheKey(origin, result.Place.Location),
		ListingID:     listingID,
		Category:      category,
		Mode:          mode,
		DistanceText:  routeResult.DistanceText,
		DurationText:  routeResult.DurationText,
		LabelPosition: routeResult.LabelPosition,
	}
	session.addRoute(listingID, category, overlay)
	session.setState(listingID, StateRouted)

	outcome.State = StateRouted
	outcome.Route = &overlay
	return outcome, nil
}

// RemoveListing drops a listing from a session along with every overlay and
// stored result belonging to it.
func (m *Manager) RemoveListing(sessionID string, listingID int64) error {
	session, err := m.GetSession(sessionID)
	if err != nil {
		return err
	}

	session.removeListing(listingID)
	m.resolver.DropListing(listingID)
	return nil
}
