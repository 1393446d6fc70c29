package handler

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"rentmap-api/internal/models"
	"rentmap-api/internal/repository"

	"github.com/gin-gonic/gin"
)

// ListingsHandler handles listing lookups
type ListingsHandler struct {
	service ListingService
}

// Service interface for dependency injection
type ListingService interface {
	List(ctx context.Context, filter repository.ListingFilter) ([]models.Listing, error)
	Get(ctx context.Context, id int64) (*models.Listing, error)
	FindNear(ctx context.Context, lat, lng float64, radiusM int) ([]models.Listing, error)
}

// NewListingsHandler creates a new listings handler
func NewListingsHandler(svc ListingService) *ListingsHandler {
	return &ListingsHandler{service: svc}
}

// List handles GET /api/properties requests
//
//	@Summary	List rental properties
//	@Produce	json
//	@Param		min_price	query	number	false	"minimum price"
//	@Param		max_price	query	number	false	"maximum price"
//	@Param		beds		query	int		false	"minimum bedrooms"
//	@Success	200	{array}	models.Listing
//	@Router		/api/properties [get]
func (h *ListingsHandler) List(c *gin.Context) {
	var filter repository.ListingFilter

	if v := c.Query("min_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid min_price format"})
			return
		}
		filter.MinPrice = f
	}
	if v := c.Query("max_price"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid max_price format"})
			return
		}
		filter.MaxPrice = f
	}
	if v := c.Query("beds"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid beds format"})
			return
		}
		filter.MinBeds = n
	}

	listings, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, listings)
}

// Get handles GET /api/properties/:id requests
//
//	@Summary	Fetch one rental property
//	@Produce	json
//	@Param		id	path	int	true	"listing id"
//	@Success	200	{object}	models.Listing
//	@Router		/api/properties/{id} [get]
func (h *ListingsHandler) Get(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid listing id"})
		return
	}

	listing, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "listing not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, listing)
}

// Near handles GET /api/properties/near requests
//
//	@Summary	Find rental properties near a point
//	@Produce	json
//	@Param		lat		query	number	true	"latitude"
//	@Param		lng		query	number	true	"longitude"
//	@Param		radius	query	int		false	"radius in meters"
//	@Success	200	{array}	models.Listing
//	@Router		/api/properties/near [get]
func (h *ListingsHandler) Near(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")

	if latStr == "" || lngStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat' and 'lng'"})
		return
	}

	lat, err := strconv.ParseFloat(latStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid latitude format"})
		return
	}

	lng, err := strconv.ParseFloat(lngStr, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid longitude format"})
		return
	}

	radius := 0
	if v := c.Query("radius"); v != "" {
		radius, err = strconv.Atoi(v)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid radius format"})
			return
		}
	}

	listings, err := h.service.FindNear(c.Request.Context(), lat, lng, radius)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, listings)
}
