package repository

import (
	"context"
	"errors"
	"fmt"

	"rentmap-api/internal/models"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when a queried listing does not exist.
var ErrNotFound = errors.New("repository: listing not found")

// ListingFilter narrows ListListings results. Zero values mean "no bound".
type ListingFilter struct {
	MinPrice float64
	MaxPrice float64
	MinBeds  int
}

// Repository implements listing and saved-property storage on PostgreSQL.
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new PostgreSQL repository
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

const listingColumns = `
	id,
	address,
	ST_Y(geom::geometry) as latitude,
	ST_X(geom::geometry) as longitude,
	price,
	bedrooms,
	bathrooms,
	square_feet
`

// ListListings returns listings matching the filter, newest first.
func (r *Repository) ListListings(ctx context.Context, filter ListingFilter) ([]models.Listing, error) {
	sql := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE ($1 = 0 OR price >= $1)
		  AND ($2 = 0 OR price <= $2)
		  AND ($3 = 0 OR bedrooms >= $3)
		ORDER BY id DESC
		LIMIT 100
	`

	rows, err := r.db.Query(ctx, sql, filter.MinPrice, filter.MaxPrice, filter.MinBeds)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute listings query: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// GetListing returns a single listing by id.
func (r *Repository) GetListing(ctx context.Context, id int64) (*models.Listing, error) {
	sql := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE id = $1
	`

	var l models.Listing
	err := r.db.QueryRow(ctx, sql, id).Scan(
		&l.ID,
		&l.Address,
		&l.Latitude,
		&l.Longitude,
		&l.Price,
		&l.Bedrooms,
		&l.Bathrooms,
		&l.SquareFeet,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("repository: failed to fetch listing: %w", err)
	}

	return &l, nil
}

// FindListingsNear performs a spatial query for listings within radiusM
// meters of the given coordinates, nearest first.
func (r *Repository) FindListingsNear(ctx context.Context, lat, lng float64, radiusM int) ([]models.Listing, error) {
	sql := `
		SELECT ` + listingColumns + `
		FROM listings
		WHERE geom IS NOT NULL
		  AND ST_DWithin(geom, ST_SetSRID(ST_MakePoint($2, $1), 4326), $3)
		ORDER BY geom <-> ST_SetSRID(ST_MakePoint($2, $1), 4326)
		LIMIT 25
	`

	rows, err := r.db.Query(ctx, sql, lat, lng, radiusM)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute spatial query: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

// SaveProperty bookmarks a listing for a user. Saving twice is a no-op.
func (r *Repository) SaveProperty(ctx context.Context, userID string, listingID int64) error {
	sql := `
		INSERT INTO saved_properties (user_id, listing_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, listing_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, sql, userID, listingID)
	if err != nil {
		return fmt.Errorf("repository: failed to save property: %w", err)
	}
	return nil
}

// UnsaveProperty removes a bookmark. Removing a missing bookmark is a no-op.
func (r *Repository) UnsaveProperty(ctx context.Context, userID string, listingID int64) error {
	sql := `DELETE FROM saved_properties WHERE user_id = $1 AND listing_id = $2`

	_, err := r.db.Exec(ctx, sql, userID, listingID)
	if err != nil {
		return fmt.Errorf("repository: failed to unsave property: %w", err)
	}
	return nil
}

// ListSavedProperties returns the listings a user has bookmarked, most
// recently saved first.
func (r *Repository) ListSavedProperties(ctx context.Context, userID string) ([]models.Listing, error) {
	sql := `
		SELECT ` + listingColumns + `
		FROM listings
		JOIN saved_properties sp ON sp.listing_id = listings.id
		WHERE sp.user_id = $1
		ORDER BY sp.saved_at DESC
	`

	rows, err := r.db.Query(ctx, sql, userID)
	if err != nil {
		return nil, fmt.Errorf("repository: failed to execute saved-properties query: %w", err)
	}
	defer rows.Close()

	return scanListings(rows)
}

func scanListings(rows pgx.Rows) ([]models.Listing, error) {
	listings := []models.Listing{}
	for rows.Next() {
		var l models.Listing
		err := rows.Scan(
			&l.ID,
			&l.Address,
			&l.Latitude,
			&l.Longitude,
			&l.Price,
			&l.Bedrooms,
			&l.Bathrooms,
			&l.SquareFeet,
		)
		if err != nil {
			return nil, fmt.Errorf("repository: failed to scan listing: %w", err)
		}
		listings = append(listings, l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repository: error iterating rows: %w", err)
	}

	return listings, nil
}
