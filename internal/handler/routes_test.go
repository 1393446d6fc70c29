package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentmap-api/internal/models"
	"rentmap-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// MockRouteProvider is a mock implementation of the RouteProvider interface
type MockRouteProvider struct {
	mock.Mock
}

func (m *MockRouteProvider) GetRoute(ctx context.Context, origin, destination models.LatLng, mode models.TravelMode) (*models.RouteResult, error) {
	args := m.Called(ctx, origin, destination, mode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.RouteResult), args.Error(1)
}

func TestRoutesHandler_Route(t *testing.T) {
	gin.SetMode(gin.TestMode)

	origin := models.LatLng{Lat: 40.7128, Lng: -74.0060}
	dest := models.LatLng{Lat: 40.7148, Lng: -74.0040}
	result := &models.RouteResult{
		Origin:       origin,
		Destination:  dest,
		Mode:         models.TravelModeWalking,
		DistanceText: "0.2 mi",
		DurationText: "5 mins",
	}

	tests := []struct {
		name           string
		body           string
		mockResult     *models.RouteResult
		mockError      error
		expectedStatus int
		expectedError  string
	}{
		{
			name:           "route found",
			body:           `{"origin": {"lat": 40.7128, "lng": -74.0060}, "destination": {"lat": 40.7148, "lng": -74.0040}, "mode": "WALKING"}`,
			mockResult:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "mode defaults to walking",
			body:           `{"origin": {"lat": 40.7128, "lng": -74.0060}, "destination": {"lat": 40.7148, "lng": -74.0040}}`,
			mockResult:     result,
			expectedStatus: http.StatusOK,
		},
		{
			name:           "invalid mode",
			body:           `{"origin": {"lat": 40.7128, "lng": -74.0060}, "destination": {"lat": 40.7148, "lng": -74.0040}, "mode": "FLYING"}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "malformed body",
			body:           `{"origin": 12}`,
			expectedStatus: http.StatusBadRequest,
		},
		{
			name:           "route failure",
			body:           `{"origin": {"lat": 40.7128, "lng": -74.0060}, "destination": {"lat": 40.7148, "lng": -74.0040}, "mode": "WALKING"}`,
			mockError:      fmt.Errorf("%w: provider down", service.ErrRouteFailed),
			expectedStatus: http.StatusBadGateway,
			expectedError:  "Unable to calculate route",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockProvider := new(MockRouteProvider)
			handler := NewRoutesHandler(mockProvider)

			if tt.expectedStatus != http.StatusBadRequest {
				mockProvider.On("GetRoute", mock.Anything, origin, dest, models.TravelModeWalking).
					Return(tt.mockResult, tt.mockError)
			}

			req := httptest.NewRequest(http.MethodPost, "/api/routes", bytes.NewReader([]byte(tt.body)))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			c.Request = req

			handler.Route(c)

			assert.Equal(t, tt.expectedStatus, w.Code)

			if tt.expectedError != "" {
				var body map[string]string
				assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, tt.expectedError, body["error"])
			}

			mockProvider.AssertExpectations(t)
		})
	}
}
