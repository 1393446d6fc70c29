package mapsession

import (
	"fmt"
	"sync"

	"rentmap-api/internal/models"
)

// SearchState tracks where a listing marker is in the search flow. Each
// category search re-enters the machine from whatever state the listing was
// left in.
type SearchState string

const (
	StateIdle      SearchState = "idle"
	StateSearching SearchState = "searching"
	StateFound     SearchState = "found"
	StateRouted    SearchState = "routed"
	StateNotFound  SearchState = "not_found"
)

// Marker is a rendered map pin. Category is empty for listing markers and
// set for place markers.
type Marker struct {
	ID        string        `json:"id"`
	ListingID int64         `json:"listing_id"`
	Category  string        `json:"category,omitempty"`
	Position  models.LatLng `json:"position"`
	Label     string        `json:"label"`
}

// RouteOverlay is a rendered route with its travel-time label.
type RouteOverlay struct {
	CacheKey      string            `json:"cache_key"`
	ListingID     int64             `json:"listing_id"`
	Category      string            `json:"category"`
	Mode          models.TravelMode `json:"mode"`
	DistanceText  string            `json:"distance_text"`
	DurationText  string            `json:"duration_text"`
	LabelPosition models.LatLng     `json:"label_position"`
}

// InfoOverlay is an open info window anchored to a marker. A session keeps
// at most one open.
type InfoOverlay struct {
	MarkerID string `json:"marker_id"`
	Content  string `json:"content"`
}

// Session owns the overlays of one comparison view: per-listing markers,
// per-category place markers, route overlays, and the single active info
// window. Overlays removed here disappear from the rendered view; anything
// left behind would linger as a stale pin.
type Session struct {
	ID     string
	Static bool
	Notes  []string

	mu             sync.Mutex
	listings       map[int64]models.Listing
	order          []int64
	listingMarkers map[int64]Marker
	placeMarkers   map[string]Marker
	routes         map[string]RouteOverlay
	states         map[int64]SearchState
	activeInfo     *InfoOverlay
}

func newSession(id string, static bool) *Session {
	return &Session{
		ID:             id,
		Static:         static,
		listings:       make(map[int64]models.Listing),
		listingMarkers: make(map[int64]Marker),
		placeMarkers:   make(map[string]Marker),
		routes:         make(map[string]RouteOverlay),
		states:         make(map[int64]SearchState),
	}
}

// overlayKey identifies the place marker and route belonging to one
// (listing, category) pair.
func overlayKey(listingID int64, category string) string {
	return fmt.Sprintf("%d:%s", listingID, category)
}

func (s *Session) addListing(l models.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.listings[l.ID] = l
	s.order = append(s.order, l.ID)

	if s.Static || !l.HasCoordinates() {
		return
	}

	s.listingMarkers[l.ID] = Marker{
		ID:        fmt.Sprintf("listing-%d", l.ID),
		ListingID: l.ID,
		Position:  l.Coordinates(),
		Label:     l.Address,
	}
	s.states[l.ID] = StateIdle
}

// closeActiveInfo closes the currently open info window, if any.
func (s *Session) closeActiveInfo() {
	s.mu.Lock()
	s.activeInfo = nil
	s.mu.Unlock()
}

// openInfo closes any other open info window and opens one for the marker.
func (s *Session) openInfo(markerID, content string) *InfoOverlay {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activeInfo = &InfoOverlay{MarkerID: markerID, Content: content}
	return s.activeInfo
}

// clearCategory removes the place marker and route for one
// (listing, category) pair. Other categories' overlays stay on the map so
// multiple POI types can coexist.
func (s *Session) clearCategory(listingID int64, category string) {
	key := overlayKey(listingID, category)

	s.mu.Lock()
	defer s.mu.Unlock()

	if marker, ok := s.placeMarkers[key]; ok {
		if s.activeInfo != nil && s.activeInfo.MarkerID == marker.ID {
			s.activeInfo = nil
		}
		delete(s.placeMarkers, key)
	}
	delete(s.routes, key)
}

func (s *Session) setState(listingID int64, state SearchState) {
	s.mu.Lock()
	s.states[listingID] = state
	s.mu.Unlock()
}

func (s *Session) addPlaceMarker(listingID int64, category string, place models.PlaceCandidate) Marker {
	marker := Marker{
		ID:        fmt.Sprintf("place-%d-%s-%s", listingID, category, place.PlaceID),
		ListingID: listingID,
		Category:  category,
		Position:  place.Location,
		Label:     place.Name,
	}

	s.mu.Lock()
	s.placeMarkers[overlayKey(listingID, category)] = marker
	s.mu.Unlock()

	return marker
}

func (s *Session) addRoute(listingID int64, category string, route RouteOverlay) {
	s.mu.Lock()
	s.routes[overlayKey(listingID, category)] = route
	s.mu.Unlock()
}

// removeListing drops the listing with every overlay it owns: its marker,
// its place markers, its routes, and the info window if it pointed at one of
// them.
func (s *Session) removeListing(listingID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.listings, listingID)
	delete(s.listingMarkers, listingID)
	delete(s.states, listingID)
	for i, id := range s.order {
		if id == listingID {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	for key, marker := range s.placeMarkers {
		if marker.ListingID == listingID {
			if s.activeInfo != nil && s.activeInfo.MarkerID == marker.ID {
				s.activeInfo = nil
			}
			delete(s.placeMarkers, key)
		}
	}
	for key, route := range s.routes {
		if route.ListingID == listingID {
			delete(s.routes, key)
		}
	}
	if s.activeInfo != nil && s.activeInfo.MarkerID == fmt.Sprintf("listing-%d", listingID) {
		s.activeInfo = nil
	}
}

// View is a snapshot of a session for rendering.
type View struct {
	ID         string                `json:"id"`
	Static     bool                  `json:"static"`
	Listings   []models.Listing      `json:"listings"`
	Markers    []Marker              `json:"markers"`
	Routes     []RouteOverlay        `json:"routes"`
	States     map[int64]SearchState `json:"states"`
	ActiveInfo *InfoOverlay          `json:"active_info,omitempty"`
	Notes      []string              `json:"notes,omitempty"`
}

// Snapshot returns a copy of the session's current render state.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()

	view := View{
		ID:         s.ID,
		Static:     s.Static,
		Listings:   make([]models.Listing, 0, len(s.order)),
		Markers:    make([]Marker, 0, len(s.listingMarkers)+len(s.placeMarkers)),
		Routes:     make([]RouteOverlay, 0, len(s.routes)),
		States:     make(map[int64]SearchState, len(s.states)),
		ActiveInfo: s.activeInfo,
		Notes:      s.Notes,
	}

	for _, id := range s.order {
		view.Listings = append(view.Listings, s.listings[id])
		if marker, ok := s.listingMarkers[id]; ok {
			view.Markers = append(view.Markers, marker)
		}
	}
	for _, marker := range s.placeMarkers {
		view.Markers = append(view.Markers, marker)
	}
	for _, route := range s.routes {
		view.Routes = append(view.Routes, route)
	}
	for id, state := range s.states {
		view.States[id] = state
	}

	return view
}
