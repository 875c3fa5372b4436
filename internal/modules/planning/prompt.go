// README: Prompt composer; turns trip and chat requests into instruction text for the generation service.
package planning

import (
	"fmt"
	"strings"

	"travelplanner/internal/types"
)

// PlanFacets are requested from the model in this order.
var PlanFacets = []string{
	"Day-by-day itinerary",
	"Estimated costs breakdown (in %s - %s)",
	"Recommended accommodations",
	"Must-visit places based on the interests",
	"Local transportation options",
	"Food recommendations",
	"Tips and precautions",
	"Weather considerations for the dates",
}

var currencyNames = map[string]string{
	"INR": "Indian Rupees",
	"USD": "US Dollars",
	"EUR": "Euros",
	"GBP": "British Pounds",
}

// Composer builds prompts. The currency is only a hint to the model; generated text is not checked against it.
type Composer struct {
	currency string
}

func NewComposer(currency string) *Composer {
	if currency == "" {
		currency = types.DefaultCurrency
	}
	return &Composer{currency: strings.ToUpper(currency)}
}

func (c *Composer) currencyName() string {
	if n, ok := currencyNames[c.currency]; ok {
		return n
	}
	return c.currency
}

// PlanPrompt builds the itinerary prompt. Insights, when present, are appended as a context block.
func (c *Composer) PlanPrompt(req TripRequest, insights Insights) string {
	budget := types.Money{Amount: req.Budget, Currency: c.currency}
	name := c.currencyName()

	var b strings.Builder
	b.WriteString("Create a detailed travel plan with the following details:\n")
	fmt.Fprintf(&b, "From: %s\n", req.Source)
	fmt.Fprintf(&b, "To: %s\n", req.Destination)
	fmt.Fprintf(&b, "Dates: %s to %s\n", req.StartDate, req.EndDate)
	fmt.Fprintf(&b, "Budget: %s (%s)\n", budget, name)
	fmt.Fprintf(&b, "Number of Travelers: %d\n", req.Travelers)
	fmt.Fprintf(&b, "Interests: %s\n", strings.Join(req.Interests, ", "))

	b.WriteString("\nPlease provide:\n")
	for i, facet := range PlanFacets {
		if strings.Contains(facet, "%s") {
			facet = fmt.Sprintf(facet, name, c.currency)
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, facet)
	}

	fmt.Fprintf(&b, "\nNote: All cost estimates should be provided in %s (%s) with %s symbol.\n",
		name, c.currency, budget.Symbol())
	b.WriteString("Format the response in markdown for better readability.\n")

	if !insights.Empty() {
		b.WriteString("\nLocal context (from map data, use where relevant):\n")
		for _, a := range insights.Attractions {
			fmt.Fprintf(&b, "- Highly rated for %q: %s\n", a.Interest, strings.Join(a.Places, "; "))
		}
		if insights.GroundRoute != "" {
			fmt.Fprintf(&b, "- %s\n", insights.GroundRoute)
		}
	}
	return b.String()
}

// FlightAnalysisPrompt is appended to the plan prompt when flight data was retrieved.
// The model writes its own flight summary; the deterministic table is produced separately.
func (c *Composer) FlightAnalysisPrompt(flightData string) string {
	return fmt.Sprintf(`
First, analyze these flight options (showing top 3 best flights) for the journey:
%s

Please analyze these flights and create a markdown table showing the best options, including:
- Airline and flight numbers
- Departure and arrival times
- Total duration
- Price
- Key features (like legroom, Wi-Fi, etc.)
- Layover information if any

After the flight analysis, please provide a comprehensive travel plan that includes:
- A day-by-day itinerary
- All the other requested information (costs, accommodations, places to visit, etc.)

Make sure to separate the flight analysis and travel plan with clear headings.
`, flightData)
}

// ChatPrompt embeds the prior plan verbatim with the follow-up question.
func (c *Composer) ChatPrompt(turn ChatTurn) string {
	return fmt.Sprintf(`Given this travel plan:
%s

Please answer this question about the plan:
%s

Provide a clear and concise response, using markdown formatting where appropriate.
If the question is about something not covered in the plan, suggest relevant information or alternatives.
`, turn.PriorPlan, turn.Question)
}

// RenderPlan wraps generated text under the plan heading.
func RenderPlan(generated string) string {
	return PlanHeading + "\n\n" + generated + "\n"
}
