package usecase

import (
	"fmt"
	"strings"

	"github.com/itinerary-microservice/internal/domain"
)

// DefaultCandidateCount - сколько кандидатов просить у оракула
const DefaultCandidateCount = 10

const recommendationPrompt = `You are a local travel expert. Recommend tourist destinations for a traveler.

TRIP:
- Start location: %s
- Return (home) address: %s
- Available time: %.1f hours (%d minutes), including the trip back home
- Preferred categories: %s

RULES:
- Suggest exactly %d real, currently operating places reachable from the start location
- category MUST be one of: %s
- rating is the public rating from 0 to 5
- popularity is an integer from 1 (obscure) to 10 (must-see)
- visitTime is the typical time spent on site, in whole minutes
- travelTimeFromSource is the travel time from the start location, in whole minutes
- distanceFromSource is the distance from the START location, in kilometers
- distanceToSource is the distance to the RETURN (home) address, in kilometers
- latitude and longitude are decimal degrees when known

Respond with ONLY a JSON array, no prose, no markdown:
[{"name":"","category":"","description":"","rating":0,"popularity":0,"visitTime":0,"travelTimeFromSource":0,"distanceFromSource":0,"distanceToSource":0,"latitude":0,"longitude":0}]`

// BuildPrompt формирует запрос к оракулу рекомендаций
func BuildPrompt(req domain.TripRequest, count int) string {
	if count <= 0 {
		count = DefaultCandidateCount
	}

	prefs := "any"
	if active := req.ActivePreferences(); len(active) > 0 {
		prefs = strings.Join(active, ", ")
	}

	categories := make([]string, len(domain.Categories))
	for i, c := range domain.Categories {
		categories[i] = string(c)
	}

	return fmt.Sprintf(recommendationPrompt,
		strings.TrimSpace(req.StartLocation),
		strings.TrimSpace(req.Home()),
		req.AvailableTime,
		int(req.AvailableMinutes()),
		prefs,
		count,
		strings.Join(categories, ", "),
	)
}
