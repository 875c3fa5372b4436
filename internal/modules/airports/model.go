package airports

import (
	"errors"
	"regexp"
)

// ErrNotFound is returned when no airport matches a place.
var ErrNotFound = errors.New("airport not found")

// Airport is one row of the airports table.
type Airport struct {
	IATACode string
	Name     string
	City     string
	Country  string
	Rank     int
}

var iataPattern = regexp.MustCompile(`^[A-Za-z]{3}$`)

// LooksLikeCode reports whether s is already a three-letter code.
func LooksLikeCode(s string) bool {
	return iataPattern.MatchString(s)
}
