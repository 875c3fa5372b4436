// README: Trip and chat request models, validation, and the formatted plan returned to callers.
package planning

import (
	"strings"
)

// PlanHeading prefixes every generated itinerary.
const PlanHeading = "# Your Travel Plan"

// TripRequestInput is the wire shape of a plan request. Numeric fields are pointers so an
// absent field can be told apart from an explicit zero.
type TripRequestInput struct {
	Source         string   `json:"source"`
	Destination    string   `json:"destination"`
	StartDate      string   `json:"start_date"`
	EndDate        string   `json:"end_date"`
	Budget         *float64 `json:"budget"`
	Travelers      *int     `json:"travelers"`
	Interests      []string `json:"interests"`
	IncludeFlights bool     `json:"include_flights"`
}

// TripRequest is a validated plan request. Dates are opaque display strings.
type TripRequest struct {
	Source         string
	Destination    string
	StartDate      string
	EndDate        string
	Budget         float64
	Travelers      int
	Interests      []string
	IncludeFlights bool
}

// Validate checks required fields and returns the immutable request.
func (in TripRequestInput) Validate() (TripRequest, error) {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"source", in.Source},
		{"destination", in.Destination},
		{"start_date", in.StartDate},
		{"end_date", in.EndDate},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	if in.Budget == nil {
		missing = append(missing, "budget")
	}
	if in.Travelers == nil {
		missing = append(missing, "travelers")
	}
	// an explicit empty list is allowed
	if in.Interests == nil {
		missing = append(missing, "interests")
	}
	if len(missing) > 0 {
		return TripRequest{}, ValidationError{
			Field: strings.Join(missing, ", "),
			Msg:   "missing required fields",
		}
	}
	if *in.Budget < 0 {
		return TripRequest{}, ValidationError{Field: "budget", Msg: "must not be negative"}
	}
	if *in.Travelers < 1 {
		return TripRequest{}, ValidationError{Field: "travelers", Msg: "must be at least 1"}
	}

	interests := make([]string, 0, len(in.Interests))
	for _, i := range in.Interests {
		if s := strings.TrimSpace(i); s != "" {
			interests = append(interests, s)
		}
	}

	return TripRequest{
		Source:         strings.TrimSpace(in.Source),
		Destination:    strings.TrimSpace(in.Destination),
		StartDate:      strings.TrimSpace(in.StartDate),
		EndDate:        strings.TrimSpace(in.EndDate),
		Budget:         *in.Budget,
		Travelers:      *in.Travelers,
		Interests:      interests,
		IncludeFlights: in.IncludeFlights,
	}, nil
}

// ChatTurn is a follow-up question about a previously generated plan.
type ChatTurn struct {
	Question  string `json:"question"`
	PriorPlan string `json:"travel_plan"`
}

// Validate rejects turns without a question or plan text.
func (t ChatTurn) Validate() error {
	var missing []string
	if strings.TrimSpace(t.Question) == "" {
		missing = append(missing, "question")
	}
	if strings.TrimSpace(t.PriorPlan) == "" {
		missing = append(missing, "travel_plan")
	}
	if len(missing) > 0 {
		return ValidationError{Field: strings.Join(missing, ", "), Msg: "missing required fields"}
	}
	return nil
}

// FormattedPlan is the generated output. FlightDetails is nil when flights were not requested.
type FormattedPlan struct {
	Plan          string
	FlightDetails *string
}

// InterestPlaces lists well-rated places found for one interest.
type InterestPlaces struct {
	Interest string
	Places   []string
}

// Insights carries optional facts gathered from map data before generation.
type Insights struct {
	Attractions []InterestPlaces
	GroundRoute string
}

func (i Insights) Empty() bool {
	return len(i.Attractions) == 0 && i.GroundRoute == ""
}
