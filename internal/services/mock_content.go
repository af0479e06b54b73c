package services

import (
	"fmt"
	"net/url"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
)

// SimulatedModeNotice prefixes placeholder overviews so users can tell them
// apart from generated plans.
const SimulatedModeNotice = "(SIMULATED MODE: API Quota Exceeded)"

func mapsSearchURL(query string) string {
	return "https://www.google.com/maps/search/?api=1&query=" + url.QueryEscape(query)
}

func coords(lat, lng float64) *models.Coordinates {
	return &models.Coordinates{Lat: lat, Lng: lng}
}

// MockItinerary returns placeholder content for destination and industry with
// exactly days entries (at least one).
func MockItinerary(destination, industry string, days int) models.ItineraryResult {
	templates := []models.DayPlan{
		{
			Title: "Industry Orientation & City Scoping",
			Activities: []models.Activity{
				{
					Time:        "09:00 AM",
					Description: fmt.Sprintf("Introduction to %s ecosystem at the Innovation Hub.", industry),
					Location:    destination + " Tech Park",
					Type:        models.ActivityVisit,
					MapsURL:     mapsSearchURL(destination + " Tech Park"),
					Coordinates: coords(20.5937, 78.9629),
				},
				{
					Time:        "01:00 PM",
					Description: "Networking Lunch at Business District.",
					Location:    "Central Plaza Dining",
					Type:        models.ActivityFood,
					MapsURL:     mapsSearchURL(destination + " Center"),
					Coordinates: coords(20.6000, 78.9700),
				},
				{
					Time:        "03:30 PM",
					Description: "City Landmark Sightseeing and Cultural Walk.",
					Location:    destination + " City Center",
					Type:        models.ActivityLeisure,
					MapsURL:     mapsSearchURL(destination + " City Center"),
					Coordinates: coords(20.6100, 78.9800),
				},
			},
		},
		{
			Title: "Deep Dive: Manufacturing & Operations",
			Activities: []models.Activity{
				{
					Time:        "10:00 AM",
					Description: "Guided tour of a leading manufacturing facility.",
					Location:    "Industrial Zone Phase 1",
					Type:        models.ActivityVisit,
					MapsURL:     mapsSearchURL(destination + " Industrial Zone"),
					Coordinates: coords(20.5800, 78.9500),
				},
				{
					Time:        "02:00 PM",
					Description: "Transit to secondary site.",
					Location:    "Highway Route",
					Type:        models.ActivityTravel,
					Coordinates: coords(20.5700, 78.9400),
				},
				{
					Time:        "03:00 PM",
					Description: "Workshop on Supply Chain Management.",
					Location:    "Logistics Center",
					Type:        models.ActivityVisit,
					MapsURL:     mapsSearchURL(destination + " Logistics"),
					Coordinates: coords(20.5600, 78.9300),
				},
			},
		},
	}

	if days < 1 {
		days = 1
	}
	plans := make([]models.DayPlan, 0, days)
	for i := 0; i < days; i++ {
		tpl := templates[i%len(templates)]
		plan := models.DayPlan{
			Day:        i + 1,
			Title:      tpl.Title,
			Activities: append([]models.Activity(nil), tpl.Activities...),
		}
		if round := i / len(templates); round > 0 {
			plan.Title = fmt.Sprintf("%s (Part %d)", tpl.Title, round+1)
		}
		plans = append(plans, plan)
	}

	return models.ItineraryResult{
		Destination: destination,
		Overview: fmt.Sprintf("%s Welcome to %s! This is a generated sample itinerary focusing on the %s sector. "+
			"Enjoy a curated mix of industrial insights and local culture exploration.", SimulatedModeNotice, destination, industry),
		Days: plans,
	}
}

// MockCompanies returns three placeholder companies.
func MockCompanies(destination, industry string) []models.CompanyInfo {
	return []models.CompanyInfo{
		{
			Name:        "Apex Industries Ltd.",
			Description: fmt.Sprintf("A leading player in the %s sector known for automated production lines.", industry),
			Website:     "https://example.com",
			Distance:    "5 km from center",
			MapsURL:     mapsSearchURL(destination + " Industry"),
			Coordinates: coords(20.5937, 78.9629),
		},
		{
			Name:        "Global Tech Solutions",
			Description: "Innovative hub focusing on R&D and sustainable practices.",
			Website:     "https://example.com",
			Distance:    "8 km from center",
			MapsURL:     mapsSearchURL(destination + " Tech"),
			Coordinates: coords(20.6100, 78.9800),
		},
		{
			Name:        "Future Systems Corp",
			Description: "Specializes in export-quality goods and large-scale operations.",
			Website:     "https://example.com",
			Distance:    "12 km from center",
			MapsURL:     mapsSearchURL(destination + " Systems"),
			Coordinates: coords(20.5500, 78.9200),
		},
	}
}

// MockBudget returns the fixed per-person placeholder budget.
func MockBudget() models.BudgetBreakdown {
	return models.BudgetBreakdown{
		Travel:        1200,
		Accommodation: 2500,
		Food:          1500,
		Activities:    500,
		Buffer:        1000,
		Total:         6700,
		Currency:      models.DefaultCurrency,
		Tips: []string{
			"Book industrial visits in advance to save on entry fees.",
			"Use local public transport for commuting between zones.",
			"Look for corporate discounts at business hotels.",
			"Eat at factory canteens if permitted for subsidized meals.",
		},
	}
}
