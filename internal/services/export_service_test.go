package services

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleExport() TripExport {
	return TripExport{
		TripID: "trip-1",
		Itinerary: models.ItineraryResult{
			Destination: "Pune",
			Overview:    "Auto hub tour",
			Days: []models.DayPlan{{
				Day:   1,
				Title: "Arrival",
				Activities: []models.Activity{{
					Time:        "09:00 AM",
					Description: "Plant tour",
					Location:    "Chakan",
					Type:        models.ActivityVisit,
					MapsURL:     "https://maps.example/chakan",
				}},
			}},
		},
		Companies: []models.CompanyInfo{{Name: "Tata Motors", Description: "Car plant"}},
		Budget: &models.BudgetBreakdown{
			Travel: 1200, Accommodation: 2500, Food: 1500, Activities: 500, Buffer: 1000,
			Total: 6700, Currency: "INR",
		},
		TravelerCount: 3,
	}
}

func TestSummary(t *testing.T) {
	svc := ExportService{BaseURL: "https://planner.example/"}

	want := "AI-IV-PLANNER TRIP: Pune\n" +
		"View detailed plan here: https://planner.example?tripId=trip-1\n\n" +
		"Overview: Auto hub tour\n\n" +
		"--- ITINERARY ---\n" +
		"Day 1: Arrival\n" +
		"- [09:00 AM] Chakan: Plant tour (visit)\n" +
		"  Map: https://maps.example/chakan\n" +
		"\n" +
		"--- INDUSTRY VISITS ---\n" +
		"- Tata Motors: Car plant\n" +
		"\n" +
		"--- ESTIMATED BUDGET ---\n" +
		"Total per person: INR 6700\n" +
		"Travelers: 3\n" +
		"Grand Total: INR 20100\n" +
		"\nGenerated by AI-IV-Planner"

	assert.Equal(t, want, svc.Summary(sampleExport()))
}

func TestSummaryWithoutOptionalSections(t *testing.T) {
	exp := TripExport{Itinerary: models.ItineraryResult{Destination: "Goa", Overview: "Beach"}}
	got := ExportService{BaseURL: "https://planner.example"}.Summary(exp)

	assert.Equal(t, "AI-IV-PLANNER TRIP: Goa\nOverview: Beach\n\n\nGenerated by AI-IV-Planner", got)
	assert.NotContains(t, got, "View detailed plan")
	assert.NotContains(t, got, "ESTIMATED BUDGET")
}

func TestShareLinkAndFilename(t *testing.T) {
	svc := ExportService{BaseURL: "https://planner.example"}
	assert.Equal(t, "https://planner.example?tripId=abc", svc.ShareLink("abc"))
	assert.Empty(t, svc.ShareLink("  "))

	assert.Equal(t, "Pune,_Maharashtra_Itinerary.txt", Filename("Pune, Maharashtra", "txt"))
	assert.Equal(t, "New_Delhi_Itinerary.pdf", Filename("New Delhi", "pdf"))
}

func TestPDF(t *testing.T) {
	data, name, err := ExportService{BaseURL: "https://planner.example"}.PDF(sampleExport())
	require.NoError(t, err)
	assert.Equal(t, "Pune_Itinerary.pdf", name)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))
}

func TestJSON(t *testing.T) {
	trip := models.SavedTrip{
		ID:          "trip-9",
		UserID:      "u1",
		Destination: "Pune",
		CreatedAt:   time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
		Itinerary:   sampleExport().Itinerary,
	}
	data, name, err := ExportService{}.JSON(trip)
	require.NoError(t, err)
	assert.Equal(t, "Pune_Itinerary.json", name)
	assert.True(t, strings.Contains(string(data), "\n  \""), "output should be indented")

	var back models.SavedTrip
	require.NoError(t, json.Unmarshal(data, &back))
	assert.Equal(t, "trip-9", back.ID)
	assert.Equal(t, "Pune", back.Itinerary.Destination)
}
