package models

// TravelMode selects how the directions provider should route between two
// points.
type TravelMode string

const (
	TravelModeWalking TravelMode = "WALKING"
	TravelModeDriving TravelMode = "DRIVING"
)

// Valid reports whether the mode is one the directions provider accepts.
func (m TravelMode) Valid() bool {
	return m == TravelModeWalking || m == TravelModeDriving
}

// RouteStep is one segment of a route leg. Distance is in meters.
type RouteStep struct {
	DistanceMeters int    `json:"distance_meters"`
	StartLocation  LatLng `json:"start_location"`
	EndLocation    LatLng `json:"end_location"`
}

// RouteLeg is a single origin-to-destination leg with human-readable totals.
type RouteLeg struct {
	DistanceText string      `json:"distance_text"`
	DurationText string      `json:"duration_text"`
	Steps        []RouteStep `json:"steps"`
}

// Route is a full route as returned by the directions provider.
type Route struct {
	Legs []RouteLeg `json:"legs"`
}

// RouteResult is a routed origin/destination pair plus the derived label
// data the comparison view renders: total distance/duration text and the
// point where the travel-time label is anchored.
type RouteResult struct {
	Origin        LatLng     `json:"origin"`
	Destination   LatLng     `json:"destination"`
	Mode          TravelMode `json:"mode"`
	Route         Route      `json:"route"`
	DistanceText  string     `json:"distance_text"`
	DurationText  string     `json:"duration_text"`
	LabelPosition LatLng     `json:"label_position"`
}
