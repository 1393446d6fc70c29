package handler

import (
	"context"
	"errors"
	"net/http"

	"rentmap-api/internal/models"
	"rentmap-api/internal/service"

	"github.com/gin-gonic/gin"
)

// RoutesHandler serves routes between coordinate pairs through the route
// cache.
type RoutesHandler struct {
	routes RouteProvider
}

// RouteProvider interface for dependency injection
type RouteProvider interface {
	GetRoute(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (*models.RouteResult, error)
}

// NewRoutesHandler creates a new routes handler
func NewRoutesHandler(routes RouteProvider) *RoutesHandler {
	return &RoutesHandler{routes: routes}
}

type routeRequest struct {
	Origin      models.LatLng     `json:"origin" binding:"required"`
	Destination models.LatLng     `json:"destination" binding:"required"`
	Mode        models.TravelMode `json:"mode"`
}

// Route handles POST /api/routes requests
//
//	@Summary	Route between an origin and a destination
//	@Accept		json
//	@Produce	json
//	@Success	200	{object}	models.RouteResult
//	@Router		/api/routes [post]
func (h *RoutesHandler) Route(c *gin.Context) {
	var req routeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "missing or invalid route body"})
		return
	}

	if req.Mode == "" {
		req.Mode = models.TravelModeWalking
	}
	if !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode must be WALKING or DRIVING"})
		return
	}

	result, err := h.routes.GetRoute(c.Request.Context(), req.Origin, req.Destination, req.Mode)
	if err != nil {
		if errors.Is(err, service.ErrRouteFailed) {
			c.JSON(http.StatusBadGateway, gin.H{"error": "Unable to calculate route"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}

	c.JSON(http.StatusOK, result)
}
