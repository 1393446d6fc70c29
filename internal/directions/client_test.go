package directions

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentmap-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Route(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectError bool
	}{
		{
			name:   "route parsed",
			status: http.StatusOK,
			body: `{
				"status": "OK",
				"routes": [{
					"legs": [{
						"distance": {"text": "0.4 mi"},
						"duration": {"text": "9 mins"},
						"steps": [
							{"distance": {"value": 300},
							 "start_location": {"lat": 40.7128, "lng": -74.0060},
							 "end_location": {"lat": 40.7138, "lng": -74.0050}},
							{"distance": {"value": 320},
							 "start_location": {"lat": 40.7138, "lng": -74.0050},
							 "end_location": {"lat": 40.7148, "lng": -74.0040}}
						]
					}]
				}]
			}`,
		},
		{
			name:        "no route found",
			status:      http.StatusOK,
			body:        `{"status": "ZERO_RESULTS", "routes": []}`,
			expectError: true,
		},
		{
			name:        "http error",
			status:      http.StatusBadGateway,
			body:        `bad gateway`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/json", r.URL.Path)
				assert.Equal(t, "walking", r.URL.Query().Get("mode"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-key")
			route, err := client.Route(
				context.Background(),
				models.LatLng{Lat: 40.7128, Lng: -74.0060},
				models.LatLng{Lat: 40.7148, Lng: -74.0040},
				models.TravelModeWalking,
			)

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Len(t, route.Legs, 1)
			assert.Equal(t, "0.4 mi", route.Legs[0].DistanceText)
			assert.Equal(t, "9 mins", route.Legs[0].DurationText)
			require.Len(t, route.Legs[0].Steps, 2)
			assert.Equal(t, 300, route.Legs[0].Steps[0].DistanceMeters)
		})
	}
}
