package models

// LatLng is a geographic coordinate pair in degrees.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Listing represents a rental property record with its geographic coordinates.
// Coordinates are nullable: a listing without them cannot be placed on a map.
type Listing struct {
	ID         int64    `json:"id"`
	Address    string   `json:"address"`
	Latitude   *float64 `json:"latitude"`
	Longitude  *float64 `json:"longitude"`
	Price      float64  `json:"price"`
	Bedrooms   int      `json:"bedrooms"`
	Bathrooms  float64  `json:"bathrooms"`
	SquareFeet int      `json:"square_feet"`
}

// HasCoordinates reports whether the listing can be mapped.
func (l Listing) HasCoordinates() bool {
	return l.Latitude != nil && l.Longitude != nil
}

// Coordinates returns the listing position. Only valid when HasCoordinates
// is true.
func (l Listing) Coordinates() LatLng {
	return LatLng{Lat: *l.Latitude, Lng: *l.Longitude}
}

// SavedProperty links a user to a listing they bookmarked.
type SavedProperty struct {
	UserID    string `json:"user_id"`
	ListingID int64  `json:"listing_id"`
}
