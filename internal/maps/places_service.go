package maps

import (
	"context"
	"fmt"

	"googlemaps.github.io/maps"
)

const (
	minRating    = 4.0
	maxPlaces    = 3
	mapsLanguage = "en"
)

// Place represents a simplified location result.
type Place struct {
	Name             string
	Address          string
	Rating           float32
	PlaceID          string
	UserRatingsTotal int
}

// PlacesService handles interactions with Google Places API.
type PlacesService struct {
	client *maps.Client
}

// NewPlacesService creates a new PlacesService. Extra client options (e.g. a base URL) are passed through.
func NewPlacesService(apiKey string, opts ...maps.ClientOption) (*PlacesService, error) {
	client, err := newClient(apiKey, opts...)
	if err != nil {
		return nil, err
	}
	return &PlacesService{client: client}, nil
}

func newClient(apiKey string, opts ...maps.ClientOption) (*maps.Client, error) {
	client, err := maps.NewClient(append([]maps.ClientOption{maps.WithAPIKey(apiKey)}, opts...)...)
	if err != nil {
		return nil, fmt.Errorf("failed to create maps client: %w", err)
	}
	return client, nil
}

// SearchAttractions finds well-rated places for one interest at the destination, top 3 in API order.
func (s *PlacesService) SearchAttractions(ctx context.Context, destination, interest string) ([]Place, error) {
	r := &maps.TextSearchRequest{
		Query:    fmt.Sprintf("%s in %s", interest, destination),
		Language: mapsLanguage,
	}

	resp, err := s.client.TextSearch(ctx, r)
	if err != nil {
		return nil, fmt.Errorf("places api error: %w", err)
	}

	var results []Place
	for _, result := range resp.Results {
		if result.Rating < minRating {
			continue
		}
		results = append(results, Place{
			Name:             result.Name,
			Address:          result.FormattedAddress,
			Rating:           result.Rating,
			PlaceID:          result.PlaceID,
			UserRatingsTotal: result.UserRatingsTotal,
		})
		if len(results) >= maxPlaces {
			break
		}
	}
	return results, nil
}
