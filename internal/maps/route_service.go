package maps

import (
	"context"
	"errors"
	"fmt"
	"time"

	"googlemaps.github.io/maps"
)

// ErrNoRoute is returned when the directions API finds no driving route.
var ErrNoRoute = errors.New("no route found")

// RouteEstimate is the first driving route between two places.
type RouteEstimate struct {
	Duration time.Duration
	Distance string
	Meters   int
	Via      string // road summary, e.g. "NH48"
}

// Describe renders the estimate as one prompt line.
func (e RouteEstimate) Describe(origin string) string {
	via := ""
	if e.Via != "" {
		via = " via " + e.Via
	}
	return fmt.Sprintf("By road from %s%s: about %s, %s", origin, via, roughDuration(e.Duration), e.Distance)
}

// RouteService estimates ground travel between trip endpoints.
type RouteService struct {
	client *maps.Client
	region string
}

// NewRouteService builds the directions client. region biases ambiguous place names ("in", "us"); empty means none.
func NewRouteService(apiKey, region string, opts ...maps.ClientOption) (*RouteService, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &RouteService{client: client, region: region}, nil
}

// GetTravelEstimate returns the first driving route from origin to destination.
func (s *RouteService) GetTravelEstimate(ctx context.Context, origin, destination string) (RouteEstimate, error) {
	r := &maps.DirectionsRequest{
		Origin:      origin,
		Destination: destination,
		Mode:        maps.TravelModeDriving,
		Language:    mapsLanguage,
		Region:      s.region,
	}

	routes, _, err := s.client.Directions(ctx, r)
	if err != nil {
		return RouteEstimate{}, fmt.Errorf("maps directions: %w", err)
	}
	if len(routes) == 0 || len(routes[0].Legs) == 0 {
		return RouteEstimate{}, ErrNoRoute
	}

	leg := routes[0].Legs[0]
	return RouteEstimate{
		Duration: leg.Duration,
		Distance: leg.Distance.HumanReadable,
		Meters:   leg.Distance.Meters,
		Via:      routes[0].Summary,
	}, nil
}

func roughDuration(d time.Duration) string {
	minutes := int(d.Round(time.Minute).Minutes())
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
