package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"rentmap-api/internal/mapsession"
	"rentmap-api/internal/models"
	"rentmap-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ComparisonHandler drives map comparison sessions: creating them from
// listing ids, running per-listing POI searches, and evicting listings.
type ComparisonHandler struct {
	sessions SessionManager
	listings ListingService
}

// SessionManager interface for dependency injection
type SessionManager interface {
	CreateSession(ctx context.Context, listings []models.Listing) (*mapsession.Session, error)
	GetSession(id string) (*mapsession.Session, error)
	Search(ctx context.Context, sessionID string, listingID int64, category string) (*mapsession.SearchOutcome, error)
	RemoveListing(sessionID string, listingID int64) error
}

// NewComparisonHandler creates a new comparison handler
func NewComparisonHandler(sessions SessionManager, listings ListingService) *ComparisonHandler {
	return &ComparisonHandler{sessions: sessions, listings: listings}
}

type createComparisonRequest struct {
	ListingIDs []int64 `json:"listing_ids" binding:"required,min=1"`
}

// Create handles POST /api/comparison requests
//
//	@Summary	Create a map comparison session
//	@Accept		json
//	@Produce	json
//	@Success	201	{object}	mapsession.View
//	@Router		/api/comparison [post]
func (h *ComparisonHandler) Create(c *gin.Context) {
	var req createComparisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing_ids is required"})
		return
	}

	listings := make([]models.Listing, 0, len(req.ListingIDs))
	for _, id := range req.ListingIDs {
		listing, err := h.listings.Get(c.Request.Context(), id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
			return
		}
		listings = append(listings, *listing)
	}

	session, err := h.sessions.CreateSession(c.Request.Context(), listings)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, session.Snapshot())
}

// Get handles GET /api/comparison/:id requests
//
//	@Summary	Fetch a comparison session's render state
//	@Produce	json
//	@Success	200	{object}	mapsession.View
//	@Router		/api/comparison/{id} [get]
func (h *ComparisonHandler) Get(c *gin.Context) {
	session, err := h.sessions.GetSession(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comparison session not found"})
		return
	}

	c.JSON(http.StatusOK, session.Snapshot())
}

type comparisonSearchRequest struct {
	ListingID int64  `json:"listing_id" binding:"required"`
	Category  string `json:"category" binding:"required"`
}

// Search handles POST /api/comparison/:id/search requests
//
//	@Summary	Search for the nearest POI from a listing in a session
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	mapsession.SearchOutcome
//	@Router		/api/comparison/{id}/search [post]
func (h *ComparisonHandler) Search(c *gin.Context) {
	var req comparisonSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "listing_id and category are required"})
		return
	}

	outcome, err := h.sessions.Search(c.Request.Context(), c.Param("id"), req.ListingID, req.Category)
	if err != nil {
		switch {
		case errors.Is(err, mapsession.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "comparison session not found"})
		case errors.Is(err, mapsession.ErrMapsUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "comparison session is static; maps are unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		}
		return
	}

	c.JSON(http.StatusOK, outcome)
}

// RemoveListing handles DELETE /api/comparison/:id/listings/:listingID
// requests
//
//	@Summary	Remove a listing and its overlays from a session
//	@Produce	json
//	@Router		/api/comparison/{id}/listings/{listingID} [delete]
func (h *ComparisonHandler) RemoveListing(c *gin.Context) {
	listingID, err := strconv.ParseInt(c.Param("listingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	if err := h.sessions.RemoveListing(c.Param("id"), listingID); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "comparison session not found"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
