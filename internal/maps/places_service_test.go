package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"
)

func TestSearchAttractions(t *testing.T) {
	var query string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query = r.URL.Query().Get("query")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"status": "OK",
			"results": [
				{"name": "Baga Beach", "rating": 4.4, "place_id": "p1", "formatted_address": "Baga"},
				{"name": "Crowded Strip", "rating": 3.2, "place_id": "p2"},
				{"name": "Palolem Beach", "rating": 4.7, "place_id": "p3"},
				{"name": "Anjuna Beach", "rating": 4.5, "place_id": "p4"},
				{"name": "Calangute Beach", "rating": 4.3, "place_id": "p5"}
			]
		}`))
	}))
	defer srv.Close()

	svc, err := NewPlacesService("test-key", maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	got, err := svc.SearchAttractions(context.Background(), "Goa", "beaches")
	require.NoError(t, err)

	assert.Equal(t, "beaches in Goa", query)
	require.Len(t, got, 3)
	assert.Equal(t, "Baga Beach", got[0].Name)
	assert.Equal(t, "Palolem Beach", got[1].Name)
	assert.Equal(t, "Anjuna Beach", got[2].Name)
}

func TestSearchAttractionsAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"status": "REQUEST_DENIED", "error_message": "bad key", "results": []}`))
	}))
	defer srv.Close()

	svc, err := NewPlacesService("test-key", maps.WithBaseURL(srv.URL))
	require.NoError(t, err)

	_, err = svc.SearchAttractions(context.Background(), "Goa", "beaches")
	assert.Error(t, err)
}
