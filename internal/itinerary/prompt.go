package itinerary

import (
	"fmt"
	"strings"

	"github.com/pkordes/tripweaver/internal/domain"
)

// OutputMode is the JSON shape a provider is asked to produce.
type OutputMode int

const (
	// OutputArray asks for a bare JSON array of day objects.
	OutputArray OutputMode = iota
	// OutputObject asks for an object holding the array under "itinerary".
	// Providers with a strict JSON-object response mode cannot return arrays.
	OutputObject
)

// Prompts is the system/user message pair sent to a provider.
type Prompts struct {
	System string
	User   string
}

const dayShape = `{
  "day_number": 1,
  "title": "Day title",
  "activities": [
    {
      "time": "09:00 AM",
      "title": "Activity name",
      "description": "Detailed description",
      "location": "Specific location",
      "cost": "$20",
      "duration": "2 hours",
      "tips": "Helpful tips"
    }
  ]
}`

const guidelines = `Guidelines:
- ALL COSTS MUST BE IN USD ($), regardless of the destination's local currency
- Be specific about activities, restaurants, and locations
- Keep costs appropriate for the budget level
- Mix paid and free activities
- Include practical tips
- Use realistic times and durations
- Suggest local dining experiences
- Suggest day trips that suit the travel mode
- Include hidden gems alongside popular attractions
- Add cultural context where relevant`

// BuildPrompts renders the prompt pair for a trip lasting durationDays.
// It is pure: the same inputs always produce the same prompts.
func BuildPrompts(params domain.TripParameters, durationDays int, mode OutputMode) Prompts {
	var sys strings.Builder
	sys.WriteString("You are an expert travel planner. Create detailed, practical day-by-day itineraries that match the traveler's budget, interests and travel style.\n\n")
	switch mode {
	case OutputObject:
		sys.WriteString("Return a JSON object with a single key \"itinerary\" whose value is an array of day objects. Each day object has this structure:\n")
	default:
		sys.WriteString("Return a JSON array of day objects. Each day object has this structure:\n")
	}
	sys.WriteString(dayShape)
	sys.WriteString("\n\nlocation, cost, duration and tips are optional.\n\n")
	sys.WriteString(guidelines)

	var user strings.Builder
	fmt.Fprintf(&user, "Create a %d-day travel itinerary for %s.\n\n", durationDays, params.Destination)
	user.WriteString("Trip Details:\n")
	fmt.Fprintf(&user, "- Dates: %s to %s (%d days)\n",
		params.StartDate.Format("2006-01-02"), params.EndDate.Format("2006-01-02"), durationDays)
	fmt.Fprintf(&user, "- Travelers: %s\n", travelers(params.NumTravelers))
	fmt.Fprintf(&user, "- Budget Level: %s\n", params.BudgetLevel)
	fmt.Fprintf(&user, "- Accommodation: %s\n", params.AccommodationType)
	fmt.Fprintf(&user, "- Travel Mode: %s\n", params.TravelMode)
	fmt.Fprintf(&user, "- Interests: %s\n\n", strings.Join(params.Activities, ", "))
	switch mode {
	case OutputObject:
		user.WriteString(`Return ONLY a valid JSON object of the form {"itinerary": [...]} with no additional text or markdown.`)
	default:
		user.WriteString("Return ONLY a valid JSON array with no additional text or markdown.")
	}

	return Prompts{System: sys.String(), User: user.String()}
}

func travelers(n int) string {
	if n == 1 {
		return "1 person"
	}
	return fmt.Sprintf("%d people", n)
}
