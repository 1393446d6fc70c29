package models

// Categories accepted by the nearby-places search. Anything else is treated
// as a free-text keyword.
const (
	CategoryGrocery    = "grocery"
	CategoryGym        = "gym"
	CategoryRestaurant = "restaurant"
	CategorySchool     = "school"
	CategoryPark       = "park"
	CategoryCafe       = "cafe"
)

// KnownCategories lists the fixed POI categories in display order.
var KnownCategories = []string{
	CategoryGrocery,
	CategoryGym,
	CategoryRestaurant,
	CategorySchool,
	CategoryPark,
	CategoryCafe,
}

// IsKnownCategory reports whether c is one of the fixed categories rather
// than a free-text keyword.
func IsKnownCategory(c string) bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// PlaceCandidate is a single place returned by the places provider. It is
// transient: produced by a query and discarded once a result is selected.
type PlaceCandidate struct {
	PlaceID  string  `json:"place_id"`
	Name     string  `json:"name"`
	Address  string  `json:"address,omitempty"`
	Location LatLng  `json:"location"`
	Category string  `json:"category"`
	Rating   float64 `json:"rating,omitempty"`
}

// NearestPlaceResult is the closest candidate for a (listing, category) pair
// together with its recomputed great-circle distance. Runners-up hold up to
// the next two closest candidates for a short result list.
type NearestPlaceResult struct {
	Place         PlaceCandidate   `json:"place"`
	DistanceMiles float64          `json:"distance_miles"`
	RunnersUp     []PlaceCandidate `json:"runners_up,omitempty"`
}
