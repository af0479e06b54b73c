package services

import (
	"fmt"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/sashabaranov/go-openai/jsonschema"
)

func itineraryPrompt(req models.TripRequest) string {
	return fmt.Sprintf(`Plan a %d-day industrial visit trip to %s for a %s group.
The focus industry is %s. The budget level is %s.

You are an expert travel planner with knowledge of maps and local businesses.
Use REAL and EXISTING locations for industrial visits, restaurants, and sightseeing.

Return a VALID JSON object (no markdown formatting) with the following structure:
{
  "destination": "City Name",
  "overview": "Brief summary",
  "days": [
    {
      "day": 1,
      "title": "Day Title",
      "activities": [
        {
          "time": "09:00 AM",
          "description": "Activity details",
          "location": "Real Place Name",
          "mapsUrl": "The Google Maps link for the location",
          "coordinates": { "lat": 12.34, "lng": 56.78 },
          "type": "visit" | "food" | "travel" | "leisure"
        }
      ]
    }
  ]
}

The "days" array MUST contain exactly %d entries.
IMPORTANT: You MUST provide 'coordinates' (lat/lng) for every activity so they can be plotted on a map.`,
		req.Days, req.Destination, req.Travelers, req.Industry, req.Budget, req.Days)
}

func companiesPrompt(req models.TripRequest) string {
	return fmt.Sprintf(`Find top 3 real companies or factories in the %s sector located in or very near %s that allow industrial visits.
Verify their existence, location, and details.

Return a VALID JSON array (no markdown) where each object has:
- "name": Company Name
- "description": Brief description
- "website": Website URL (if available)
- "distance": Distance from city center
- "mapsUrl": Google Maps Link
- "coordinates": { "lat": number, "lng": number }
`, req.Industry, req.Destination)
}

func budgetPrompt(req models.TripRequest) string {
	return fmt.Sprintf(`Create a detailed estimated budget breakdown for a %d-day trip to %s for %d people (%s group type).
Budget Level: %s.
Industry Focus: %s.

Calculate the estimated cost *per person* in Indian Rupees (INR).
IMPORTANT: Since there are %d travelers, consider shared costs (like hotel rooms, taxi fare splitting) to give a realistic per-person estimate.

Return the PER PERSON costs for:
- travel (local transport/fuel)
- accommodation (share per person)
- food
- activities (entry fees)
- buffer (emergency funds)
- total (sum of above)

Also provide a list of budget saving tips specific to this destination.`,
		req.Days, req.Destination, req.TravelerCount, req.Travelers, req.Budget, req.Industry, req.TravelerCount)
}

func budgetSchema() *jsonschema.Definition {
	number := jsonschema.Definition{Type: jsonschema.Number}
	return &jsonschema.Definition{
		Type: jsonschema.Object,
		Properties: map[string]jsonschema.Definition{
			"travel":        number,
			"accommodation": number,
			"food":          number,
			"activities":    number,
			"buffer":        number,
			"total":         number,
			"currency":      {Type: jsonschema.String},
			"tips":          {Type: jsonschema.Array, Items: &jsonschema.Definition{Type: jsonschema.String}},
		},
		Required: []string{"travel", "accommodation", "food", "activities", "buffer", "total"},
	}
}

// imagePrompt pairs a prompt with the tags its photo carries.
type imagePrompt struct {
	prompt string
	tags   []string
}

func imagePrompts(req models.TripRequest) []imagePrompt {
	return []imagePrompt{
		{
			prompt: fmt.Sprintf("Cinematic shot of %s city skyline, futuristic, sci-fi aesthetic, neon lights", req.Destination),
			tags:   []string{"City View", "AI Generated"},
		},
		{
			prompt: fmt.Sprintf("Modern futuristic %s facility interior in %s, high tech, clean, sci-fi style", req.Industry, req.Destination),
			tags:   []string{"Industry", "AI Generated"},
		},
	}
}
