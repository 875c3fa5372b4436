package flights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"travelplanner/internal/modules/planning"
)

const sampleResponse = `{
  "search_parameters": {"currency": "INR"},
  "best_flights": [
    {
      "flights": [
        {
          "airline": "IndiGo",
          "flight_number": "6E 2001",
          "departure_airport": {"name": "Chhatrapati Shivaji", "id": "BOM", "time": "2024-12-20 06:00"},
          "arrival_airport": {"name": "Indira Gandhi", "id": "DEL", "time": "2024-12-20 08:10"},
          "airplane": "Airbus A320neo",
          "travel_class": "Economy",
          "often_delayed_by_over_30_min": true,
          "extensions": ["Legroom 29 in"]
        }
      ],
      "total_duration": 130,
      "price": 5500
    }
  ]
}`

func TestSerpAPIClientSearch(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/search.json", r.URL.Path)
		got = map[string]string{}
		for k := range r.URL.Query() {
			got[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewSerpAPIClient(ClientConfig{APIKey: "serp-key", BaseURL: srv.URL + "/"})
	res, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	require.NoError(t, err)

	assert.Equal(t, map[string]string{
		"engine":        "google_flights",
		"departure_id":  "BOM",
		"arrival_id":    "DEL",
		"outbound_date": "2024-12-20",
		"currency":      "INR",
		"hl":            "en",
		"type":          "2",
		"api_key":       "serp-key",
	}, got)
	require.Len(t, res.BestFlights, 1)
	assert.Equal(t, "IndiGo", res.BestFlights[0].Flights[0].Airline)
	assert.Equal(t, 5500, *res.BestFlights[0].Price)
	assert.Equal(t, "INR", res.SearchParameters.Currency)
}

func TestSearchKeepsUpstreamOfferFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sampleResponse))
	}))
	defer srv.Close()

	c := NewSerpAPIClient(ClientConfig{APIKey: "serp-key", BaseURL: srv.URL})
	res, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	require.NoError(t, err)

	out, err := json.Marshal(res.BestFlights[0])
	require.NoError(t, err)
	assert.Contains(t, string(out), `"airplane":"Airbus A320neo"`)
	assert.Contains(t, string(out), `"travel_class":"Economy"`)
	assert.Contains(t, string(out), `"often_delayed_by_over_30_min":true`)

	// a decoded offer that went through the cache still carries them
	var again Offer
	require.NoError(t, json.Unmarshal(out, &again))
	assert.Equal(t, 5500, *again.Price)
	assert.JSONEq(t, string(out), string(again.Raw))
}

func TestOfferWithoutRawMarshalsFields(t *testing.T) {
	out, err := json.Marshal(offer("IndiGo", "6E 1", 5000))
	require.NoError(t, err)
	assert.Contains(t, string(out), `"flight_number":"6E 1"`)
	assert.Contains(t, string(out), `"price":5000`)
}

func TestSerpAPIClientNotConfigured(t *testing.T) {
	c := NewSerpAPIClient(ClientConfig{APIKey: "  "})
	assert.False(t, c.Configured())

	_, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestSerpAPIClientUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"Invalid API key"}`, http.StatusUnauthorized)
	}))
	defer srv.Close()

	c := NewSerpAPIClient(ClientConfig{APIKey: "bad", BaseURL: srv.URL})
	_, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	require.Error(t, err)
	assert.True(t, planning.IsUpstream(err))
	assert.Contains(t, err.Error(), "401")
	assert.Contains(t, err.Error(), "Invalid API key")
}

func TestSerpAPIClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("<html>"))
	}))
	defer srv.Close()

	c := NewSerpAPIClient(ClientConfig{APIKey: "k", BaseURL: srv.URL})
	_, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	assert.True(t, planning.IsUpstream(err))
}

func TestSerpAPIClientTimeout(t *testing.T) {
	done := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-done:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(done)

	c := NewSerpAPIClient(ClientConfig{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond})
	_, err := c.Search(context.Background(), Query{Origin: "BOM", Destination: "DEL", Date: "2024-12-20"})
	assert.Error(t, err)
}
