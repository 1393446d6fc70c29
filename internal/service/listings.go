package service

import (
	"context"
	"fmt"

	"rentmap-api/internal/models"
	"rentmap-api/internal/repository"
)

// ListingService contains the core business logic for listing lookups
type ListingService struct {
	repo ListingRepository
}

// Repository interface for dependency injection
type ListingRepository interface {
	ListListings(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error)
	GetListing(ctx context.Context, id int64) (*models.Listing, error)
	FindListingsNear(ctx context.Context, lat, lng float64, radiusM int) ([]models.Listing, error)
}

// NewListingService creates a new listing service
func NewListingService(repo ListingRepository) *ListingService {
	return &ListingService{repo: repo}
}

// List returns listings matching the filter.
func (s *ListingService) List(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error) {
	if filter.MinPrice < 0 || filter.MaxPrice < 0 || filter.MinBeds < 0 {
		return nil, fmt.Errorf("service: filter values cannot be negative")
	}

	listings, err := s.repo.ListListings(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("service: failed to list listings: %w", err)
	}

	return listings, nil
}

// Get returns a single listing by id.
func (s *ListingService) Get(ctx context.Context, id int64) (*models.Listing, error) {
	if id <= 0 {
		return nil, fmt.Errorf("service: invalid listing id: %d", id)
	}

	listing, err := s.repo.GetListing(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("service: failed to fetch listing: %w", err)
	}

	return listing, nil
}

// FindNear returns listings within radiusM meters of the given coordinates
func (s *ListingService) FindNear(ctx context.Context, lat, lng float64, radiusM int) ([]models.Listing, error) {
	if lat < -90 || lat > 90 {
		return nil, fmt.Errorf("service: invalid latitude: %f", lat)
	}
	if lng < -180 || lng > 180 {
		return nil, fmt.Errorf("service: invalid longitude: %f", lng)
	}
	if radiusM <= 0 {
		radiusM = 2000
	}

	listings, err := s.repo.FindListingsNear(ctx, lat, lng, radiusM)
	if err != nil {
		return nil, fmt.Errorf("service: failed to find nearby listings: %w", err)
	}

	return listings, nil
}
