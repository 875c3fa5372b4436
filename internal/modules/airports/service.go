// README: Airport code resolution for flight search; places go to the store first, unknown codes pass through.
package airports

import (
	"context"
	"errors"
	"log/slog"
	"strings"
)

// Finder is the lookup the resolver needs from persistence.
type Finder interface {
	FindByPlace(ctx context.Context, place string) (Airport, error)
}

type Service struct {
	finder Finder
}

// NewService returns a resolver. A nil finder resolves by normalization alone.
func NewService(finder Finder) *Service {
	return &Service{finder: finder}
}

// Resolve maps place to an IATA code. It never fails: lookup misses and store errors fall back to
// the trimmed, upper-cased input. Three-letter inputs are looked up too, since city names like
// "Goa" collide with unrelated codes (GOA is Genoa).
func (s *Service) Resolve(ctx context.Context, place string) string {
	trimmed := strings.TrimSpace(place)
	fallback := strings.ToUpper(trimmed)
	if trimmed == "" || s.finder == nil {
		return fallback
	}

	a, err := s.finder.FindByPlace(ctx, trimmed)
	if err != nil {
		switch {
		case !errors.Is(err, ErrNotFound):
			slog.Warn("airport lookup failed", "place", trimmed, "error", err)
		case !LooksLikeCode(trimmed):
			slog.Info("place not in airport table; searching with it as given", "place", trimmed)
		}
		return fallback
	}
	return a.IATACode
}
