package places

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"rentmap-api/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Nearby(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		expectError bool
		expected    []models.PlaceCandidate
	}{
		{
			name:   "results parsed and filtered",
			status: http.StatusOK,
			body: `{
				"status": "OK",
				"results": [
					{"place_id": "p1", "name": "Midtown Gym", "vicinity": "12 W 40th St",
					 "geometry": {"location": {"lat": 40.7148, "lng": -74.0040}}, "rating": 4.2},
					{"place_id": "p2", "name": "", "geometry": {"location": {"lat": 40.7, "lng": -74.0}}},
					{"place_id": "p3", "name": "Null Island Gym", "geometry": {"location": {"lat": 0, "lng": 0}}}
				]
			}`,
			expected: []models.PlaceCandidate{
				{
					PlaceID:  "p1",
					Name:     "Midtown Gym",
					Address:  "12 W 40th St",
					Location: models.LatLng{Lat: 40.7148, Lng: -74.0040},
					Category: "gym",
					Rating:   4.2,
				},
			},
		},
		{
			name:     "zero results is a valid empty outcome",
			status:   http.StatusOK,
			body:     `{"status": "ZERO_RESULTS", "results": []}`,
			expected: []models.PlaceCandidate{},
		},
		{
			name:        "provider error status",
			status:      http.StatusOK,
			body:        `{"status": "REQUEST_DENIED", "results": []}`,
			expectError: true,
		},
		{
			name:        "http error",
			status:      http.StatusInternalServerError,
			body:        `boom`,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "/nearbysearch/json", r.URL.Path)
				assert.Equal(t, "gym", r.URL.Query().Get("keyword"))
				assert.Equal(t, "2000", r.URL.Query().Get("radius"))
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := NewClient(srv.URL, "test-key")
			got, err := client.Nearby(context.Background(), models.LatLng{Lat: 40.7128, Lng: -74.0060}, 2000, "gym")

			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestClient_TextSearch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/textsearch/json", r.URL.Path)
		assert.Equal(t, "thai food", r.URL.Query().Get("query"))
		assert.Equal(t, "5000", r.URL.Query().Get("radius"))
		w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"place_id": "t1", "name": "Bangkok Corner",
				 "geometry": {"location": {"lat": 40.72, "lng": -74.01}}}
			]
		}`))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, "test-key")
	got, err := client.TextSearch(context.Background(), "thai food", models.LatLng{Lat: 40.7128, Lng: -74.0060}, 5000)

	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Bangkok Corner", got[0].Name)
	assert.Equal(t, "thai food", got[0].Category)
}
