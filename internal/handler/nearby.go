package handler

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"rentmap-api/internal/models"

	"github.com/gin-gonic/gin"
)

// NearbyHandler resolves the closest place of a category or keyword near a
// point.
type NearbyHandler struct {
	resolver NearestResolver
	recents  RecentStore
}

// NearestResolver interface for dependency injection
type NearestResolver interface {
	ResolveAt(ctx context.Context, origin models.LatLng, category string) (*models.NearestPlaceResult, error)
}

// RecentStore records and lists recent search terms.
type RecentStore interface {
	Append(term string)
	Recent() []string
}

// NewNearbyHandler creates a new nearby-places handler
func NewNearbyHandler(resolver NearestResolver, recents RecentStore) *NearbyHandler {
	return &NearbyHandler{resolver: resolver, recents: recents}
}

// Get handles GET /api/nearby-places requests (fixed-category search)
//
//	@Summary	Find the nearest place of a category
//	@Produce	json
//	@Param		lat			query	number	true	"latitude"
//	@Param		lng			query	number	true	"longitude"
//	@Param		category	query	string	true	"POI category"
//	@Success	200	{object}	models.NearestPlaceResult
//	@Router		/api/nearby-places [get]
func (h *NearbyHandler) Get(c *gin.Context) {
	latStr := c.Query("lat")
	lngStr := c.Query("lng")
	category := c.Query("category")

	if latStr == "" || lngStr == "" || category == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing required query parameters 'lat', 'lng' and 'category'"})
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

	h.respond(c, models.LatLng{Lat: lat, Lng: lng}, category)
}

type nearbySearchRequest struct {
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Query string  `json:"query" binding:"required"`
}

// Search handles POST /api/nearby-places requests (free-text search)
//
//	@Summary	Find the nearest place matching a keyword
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	models.NearestPlaceResult
//	@Router		/api/nearby-places [post]
func (h *NearbyHandler) Search(c *gin.Context) {
	var req nearbySearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid search body"})
		return
	}

	h.respond(c, models.LatLng{Lat: req.Lat, Lng: req.Lng}, req.Query)
}

func (h *NearbyHandler) respond(c *gin.Context, origin models.LatLng, category string) {
	h.recents.Append(category)

	result, err := h.resolver.ResolveAt(c.Request.Context(), origin, category)
	if err != nil {
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to search nearby places"})
		return
	}

	if result == nil {
		c.JSON(http.StatusOK, gin.H{"message": fmt.Sprintf("No %s found nearby", category)})
		return
	}

	c.JSON(http.StatusOK, result)
}

// RecentSearches handles GET /api/recent-searches requests
//
//	@Summary	List recent search terms
//	@Produce	json
//	@Success	200	{array}	string
//	@Router		/api/recent-searches [get]
func (h *NearbyHandler) RecentSearches(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"searches": h.recents.Recent()})
}
