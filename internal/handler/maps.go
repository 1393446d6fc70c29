package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MapsHandler exposes the browser-side maps API key.
type MapsHandler struct {
	apiKey string
}

// NewMapsHandler creates a new maps handler
func NewMapsHandler(apiKey string) *MapsHandler {
	return &MapsHandler{apiKey: apiKey}
}

// Key handles GET /api/maps-key requests. A missing key signals clients to
// render the static comparison view instead of a map.
//
//	@Summary	Fetch the maps API key
//	@Produce	json
//	@Success	200	{object}	map[string]string
//	@Router		/api/maps-key [get]
func (h *MapsHandler) Key(c *gin.Context) {
	if h.apiKey == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "maps api key is not configured"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"key": h.apiKey})
}
