package handler

import (
	"context"
	"net/http"
	"strconv"

	"rentmap-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SavedHandler handles saved-property bookmarks. The user is identified by
// the X-User-ID header; session handling lives outside this service.
type SavedHandler struct {
	repo SavedPropertyStore
}

// SavedPropertyStore interface for dependency injection
type SavedPropertyStore interface {
	SaveProperty(ctx context.Context, userID string, listingID int64) error
	UnsaveProperty(ctx context.Context, userID string, listingID int64) error
	ListSavedProperties(ctx context.Context, userID string) ([]models.Listing, error)
}

// NewSavedHandler creates a new saved-properties handler
func NewSavedHandler(repo SavedPropertyStore) *SavedHandler {
	return &SavedHandler{repo: repo}
}

func userID(c *gin.Context) (string, bool) {
	id := c.GetHeader("X-User-ID")
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing X-User-ID header"})
		return "", false
	}
	return id, true
}

// List handles GET /api/saved-properties requests
//
//	@Summary	List a user's saved properties
//	@Produce	json
//	@Success	200	{array}	models.Listing
//	@Router		/api/saved-properties [get]
func (h *SavedHandler) List(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	listings, err := h.repo.ListSavedProperties(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

type savePropertyRequest struct {
	ListingID int64 `json:"listing_id" binding:"required"`
}

// Save handles POST /api/saved-properties requests
//
//	@Summary	Save a property for a user
//	@Accept		json
//	@Produce	json
//	@Router		/api/saved-properties [post]
func (h *SavedHandler) Save(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	var req savePropertyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid listing_id"})
		return
	}

	if err := h.repo.SaveProperty(c.Request.Context(), user, req.ListingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"status": "saved"})
}

// Unsave handles DELETE /api/saved-properties/:listingID requests
//
//	@Summary	Remove a saved property
//	@Produce	json
//	@Router		/api/saved-properties/{listingID} [delete]
func (h *SavedHandler) Unsave(c *gin.Context) {
	user, ok := userID(c)
	if !ok {
		return
	}

	listingID, err := strconv.ParseInt(c.Param("listingID"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	if err := h.repo.UnsaveProperty(c.Request.Context(), user, listingID); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "removed"})
}
