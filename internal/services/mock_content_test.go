package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMockItineraryDayCount(t *testing.T) {
	for _, days := range []int{1, 2, 3, 5, 14} {
		res := MockItinerary("Pune", "Automotive", days)
		require.Len(t, res.Days, days)
		for i, d := range res.Days {
			assert.Equal(t, i+1, d.Day)
			assert.NotEmpty(t, d.Activities)
		}
	}

	res := MockItinerary("Pune", "Automotive", 3)
	assert.Equal(t, "Industry Orientation & City Scoping (Part 2)", res.Days[2].Title)
	assert.Equal(t, "Pune", res.Destination)
	assert.True(t, strings.Contains(res.Overview, "Automotive"))
}

func TestMockItineraryAtLeastOneDay(t *testing.T) {
	assert.Len(t, MockItinerary("Pune", "IT", 0).Days, 1)
}

func TestMockItineraryDoesNotShareActivities(t *testing.T) {
	res := MockItinerary("Pune", "IT", 3)
	res.Days[0].Activities[0].Location = "changed"
	assert.NotEqual(t, "changed", res.Days[2].Activities[0].Location)
}

func TestMockCompaniesAndBudget(t *testing.T) {
	companies := MockCompanies("Pune", "Textiles")
	require.Len(t, companies, 3)
	assert.Contains(t, companies[0].MapsURL, "query=Pune+Industry")

	b := MockBudget()
	assert.Equal(t, b.Sum(), b.Total)
	assert.Equal(t, 6700.0, b.Total)
	assert.Len(t, b.Tips, 4)
}
