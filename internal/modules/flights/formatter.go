// README: Flight offer formatter; renders the top upstream offers as a fixed-column markdown table.
package flights

import (
	"fmt"
	"log/slog"
	"strings"

	"travelplanner/internal/types"
)

const (
	// NoFlightsMessage is returned when there is nothing to render. It is not an error.
	NoFlightsMessage = "No flights available for this route."

	maxOffers   = 3
	maxFeatures = 3

	excludedFeature = "Carbon emissions"
	bookingURL      = "https://www.google.com/flights?hl=en#flt=%s.%s.%s"
)

const tableHeader = "## Available Flight Options\n\n" +
	"| Airline | Flight(s) | Departure | Arrival | Duration | Price | Features |\n" +
	"|---------|-----------|-----------|----------|----------|--------|----------|\n"

// FormatDuration renders minutes as "Xh Ym".
func FormatDuration(minutes int) string {
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}

// BookingLink builds the external search link for a route and date.
func BookingLink(originCode, destCode, date string) string {
	return fmt.Sprintf(bookingURL, originCode, destCode, date)
}

// FormatMarkdown renders at most three offers, in upstream order, as one markdown table followed
// by per-option notes (booking link and first layover). Malformed offers are skipped.
func FormatMarkdown(result *SearchResult, originCode, destCode, date string) string {
	if result == nil || len(result.BestFlights) == 0 {
		return NoFlightsMessage
	}

	var rows, notes strings.Builder
	link := BookingLink(originCode, destCode, date)
	n := 0
	for i, offer := range result.BestFlights {
		if n == maxOffers {
			break
		}
		if err := offer.Validate(); err != nil {
			slog.Warn("skipping malformed flight offer", "index", i, "error", err)
			continue
		}
		n++
		rows.WriteString(formatRow(offer, result.SearchParameters.Currency))

		fmt.Fprintf(&notes, "*Option %d: [Book Now](%s)*\n\n", n, link)
		if len(offer.Layovers) > 0 {
			notes.WriteString(formatLayover(offer.Layovers[0]))
		}
	}
	if n == 0 {
		return NoFlightsMessage
	}
	return tableHeader + rows.String() + "\n" + notes.String()
}

func formatRow(offer Offer, currency string) string {
	first := offer.Flights[0]
	last := offer.Flights[len(offer.Flights)-1]

	numbers := make([]string, 0, len(offer.Flights))
	for _, leg := range offer.Flights {
		numbers = append(numbers, leg.Airline+" "+leg.FlightNumber)
	}

	cells := []string{
		first.Airline,
		strings.Join(numbers, " + "),
		fmt.Sprintf("%s (%s)", first.DepartureAirport.Name, first.DepartureAirport.Time),
		fmt.Sprintf("%s (%s)", last.ArrivalAirport.Name, last.ArrivalAirport.Time),
		FormatDuration(*offer.TotalDuration),
		types.Money{Amount: float64(*offer.Price), Currency: currency}.String(),
		strings.Join(features(offer.Flights), "<br>"),
	}
	for i, c := range cells {
		cells[i] = escapeCell(c)
	}
	return "| " + strings.Join(cells, " | ") + " |\n"
}

// features returns the first three distinct extensions across all legs, in first-seen order,
// without emissions disclosures.
func features(legs []Leg) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, leg := range legs {
		for _, ext := range leg.Extensions {
			if strings.Contains(ext, excludedFeature) {
				continue
			}
			if _, ok := seen[ext]; ok {
				continue
			}
			seen[ext] = struct{}{}
			out = append(out, ext)
			if len(out) == maxFeatures {
				return out
			}
		}
	}
	return out
}

// formatLayover renders only the layover it is given; callers pass the first one.
func formatLayover(l Layover) string {
	duration := "unknown duration"
	if l.Duration != nil {
		duration = FormatDuration(*l.Duration)
	}
	return fmt.Sprintf("*Layover at: %s (%s)*\n\n", l.Name, duration)
}

func escapeCell(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.ReplaceAll(s, "|", `\|`)
}
