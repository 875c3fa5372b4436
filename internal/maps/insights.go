// README: Gathers map-derived context (attractions per interest, road estimate) for the plan prompt.
package maps

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"travelplanner/internal/metrics"
	"travelplanner/internal/modules/planning"
)

// MaxInterests bounds how many interests are looked up per request.
const MaxInterests = 5

type attractionSearcher interface {
	SearchAttractions(ctx context.Context, destination, interest string) ([]Place, error)
}

type routeEstimator interface {
	GetTravelEstimate(ctx context.Context, origin, destination string) (RouteEstimate, error)
}

// InsightsService combines places and route lookups. Every lookup soft-fails.
type InsightsService struct {
	places  attractionSearcher
	routes  routeEstimator
	timeout time.Duration
	metrics *metrics.Metrics
}

func NewInsightsService(places *PlacesService, routes *RouteService, timeout time.Duration, m *metrics.Metrics) *InsightsService {
	s := &InsightsService{timeout: timeout, metrics: m}
	// keep the interfaces nil rather than holding typed nil pointers
	if places != nil {
		s.places = places
	}
	if routes != nil {
		s.routes = routes
	}
	return s
}

// Collect looks up attractions for the first MaxInterests interests and a driving estimate from
// source to destination. Failed lookups are logged and left out.
func (s *InsightsService) Collect(ctx context.Context, req planning.TripRequest) planning.Insights {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	var out planning.Insights
	if s.places != nil {
		interests := req.Interests
		if len(interests) > MaxInterests {
			interests = interests[:MaxInterests]
		}
		for _, interest := range interests {
			start := time.Now()
			places, err := s.places.SearchAttractions(ctx, req.Destination, interest)
			s.metrics.ObserveUpstream("maps_places", time.Since(start), err)
			if err != nil {
				slog.Warn("attraction lookup failed", "interest", interest, "destination", req.Destination, "error", err)
				continue
			}
			if len(places) == 0 {
				continue
			}
			names := make([]string, 0, len(places))
			for _, p := range places {
				names = append(names, fmt.Sprintf("%s (%.1f★)", p.Name, p.Rating))
			}
			out.Attractions = append(out.Attractions, planning.InterestPlaces{Interest: interest, Places: names})
		}
	}

	if s.routes != nil {
		start := time.Now()
		est, err := s.routes.GetTravelEstimate(ctx, req.Source, req.Destination)
		s.metrics.ObserveUpstream("maps_directions", time.Since(start), err)
		if err != nil {
			slog.Debug("route estimate unavailable", "origin", req.Source, "destination", req.Destination, "error", err)
		} else {
			out.GroundRoute = est.Describe(req.Source)
		}
	}
	return out
}
