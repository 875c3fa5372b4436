package airports

import (
	"context"
	"errors"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Store handles airports persistence.
type Store struct {
	db *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{db: db}
}

// FindByPlace matches an alias, city or airport name case-insensitively and returns the best-ranked airport.
func (s *Store) FindByPlace(ctx context.Context, place string) (Airport, error) {
	p := strings.ToLower(strings.TrimSpace(place))

	var a Airport
	err := s.db.QueryRow(ctx, `
		SELECT a.iata_code, a.name, a.city, a.country, a.rank
		FROM airports a
		LEFT JOIN airport_aliases al ON al.iata_code = a.iata_code AND al.alias = $1
		WHERE al.alias IS NOT NULL
		   OR LOWER(a.city) = $1
		   OR LOWER(a.name) = $1
		ORDER BY (al.alias IS NULL), a.rank, a.iata_code
		LIMIT 1
	`, p).Scan(&a.IATACode, &a.Name, &a.City, &a.Country, &a.Rank)
	if errors.Is(err, pgx.ErrNoRows) {
		return Airport{}, ErrNotFound
	}
	if err != nil {
		return Airport{}, err
	}
	return a, nil
}
