// README: Flight search result shapes (SerpAPI google_flights engine) and lookup types.
package flights

import (
	"encoding/json"
	"errors"
	"fmt"
)

// ErrNotConfigured is returned when no flight-search API key is set.
var ErrNotConfigured = errors.New("flights: search api key not configured")

// Query identifies one one-way search.
type Query struct {
	Origin      string
	Destination string
	Date        string
}

// CacheKey is the Redis key for a normalized query.
func (q Query) CacheKey() string {
	return fmt.Sprintf("flights:%s:%s:%s", q.Origin, q.Destination, q.Date)
}

// SearchResult is the read-only subset of the upstream response the planner uses.
type SearchResult struct {
	SearchParameters SearchParameters `json:"search_parameters"`
	BestFlights      []Offer          `json:"best_flights"`
}

// SearchParameters echoes the request; only the price currency matters for rendering.
type SearchParameters struct {
	Currency string `json:"currency,omitempty"`
}

// Offer is one priced itinerary option, possibly spanning several legs.
// Raw keeps the upstream object so fields the table ignores (aircraft, travel class, delay
// warnings) still reach the model and survive the cache.
type Offer struct {
	Flights       []Leg     `json:"flights"`
	TotalDuration *int      `json:"total_duration"`
	Price         *int      `json:"price"`
	Layovers      []Layover `json:"layovers,omitempty"`

	Raw json.RawMessage `json:"-"`
}

type plainOffer Offer

func (o *Offer) UnmarshalJSON(b []byte) error {
	var p plainOffer
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*o = Offer(p)
	o.Raw = append(json.RawMessage(nil), b...)
	return nil
}

// MarshalJSON re-emits the upstream object when there is one.
func (o Offer) MarshalJSON() ([]byte, error) {
	if len(o.Raw) > 0 {
		return o.Raw, nil
	}
	return json.Marshal(plainOffer(o))
}

// Leg is one non-stop segment.
type Leg struct {
	Airline          string   `json:"airline"`
	FlightNumber     string   `json:"flight_number"`
	DepartureAirport Airport  `json:"departure_airport"`
	ArrivalAirport   Airport  `json:"arrival_airport"`
	Extensions       []string `json:"extensions,omitempty"`
}

type Airport struct {
	Name string `json:"name"`
	ID   string `json:"id,omitempty"`
	Time string `json:"time"`
}

type Layover struct {
	Name     string `json:"name"`
	ID       string `json:"id,omitempty"`
	Duration *int   `json:"duration"`
}

// Validate reports why an offer cannot be rendered as a table row.
func (o Offer) Validate() error {
	switch {
	case len(o.Flights) == 0:
		return errors.New("offer has no flight legs")
	case o.TotalDuration == nil:
		return errors.New("offer has no total_duration")
	case o.Price == nil:
		return errors.New("offer has no price")
	}
	return nil
}

// Lookup is the outcome of a flight lookup: the normalized query and the result, if any.
type Lookup struct {
	Query  Query
	Result *SearchResult
}
