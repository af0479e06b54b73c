package normalize

import (
	"testing"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractJSON(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"fenced object", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"fenced with prose", "Sure! Here it is:\n```json\n{\"a\":[1,2]}\n```\nEnjoy.", `{"a":[1,2]}`},
		{"bare fence", "```\n[1,2,3]\n```", `[1,2,3]`},
		{"array before object", `noise [{"x":1}] tail`, `[{"x":1}]`},
		{"no braces", "   nothing here  ", "nothing here"},
		{"closing before opening", "} oops {", "} oops {"},
		{"only opening", "  { unterminated ", "{ unterminated"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ExtractJSON(tc.in))
		})
	}
}

func TestItineraryDefaultsMissingLists(t *testing.T) {
	res, err := Itinerary("```json\n{\"destination\":\"Pune\",\"overview\":\"o\",\"days\":[{\"day\":2,\"title\":\"b\"},{\"day\":1,\"title\":\"a\",\"activities\":[{\"time\":\"09:00 AM\",\"type\":\"visit\"}]}]}\n```")
	require.NoError(t, err)

	require.Len(t, res.Days, 2)
	assert.Equal(t, 1, res.Days[0].Day)
	assert.Equal(t, 2, res.Days[1].Day)
	assert.NotNil(t, res.Days[1].Activities)
	assert.Empty(t, res.Days[1].Activities)
}

func TestItineraryWithoutDays(t *testing.T) {
	res, err := Itinerary(`{"destination":"Pune","overview":"o"}`)
	require.NoError(t, err)
	assert.NotNil(t, res.Days)
	assert.Empty(t, res.Days)
}

func TestItineraryParseError(t *testing.T) {
	_, err := Itinerary("I could not plan that trip.")
	require.Error(t, err)

	var parseErr domain.ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "itinerary", parseErr.Target)
	assert.Equal(t, "I could not plan that trip.", parseErr.Raw)
	assert.Equal(t, domain.FailureParse, domain.ClassifyGeneration(err))
}

func TestCompanies(t *testing.T) {
	list, err := Companies("```json\n[{\"name\":\"Apex\",\"description\":\"d\",\"coordinates\":{\"lat\":1.5,\"lng\":2.5}}]\n```")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Apex", list[0].Name)
	require.NotNil(t, list[0].Coordinates)
	assert.Equal(t, 2.5, list[0].Coordinates.Lng)

	empty, err := Companies("[]")
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	notArray, err := Companies(`{"companies":[]}`)
	require.NoError(t, err)
	assert.Empty(t, notArray)
}

func TestBudgetDefaults(t *testing.T) {
	b, err := Budget(`{"travel":100,"accommodation":200,"food":50,"activities":25,"buffer":25}`)
	require.NoError(t, err)
	assert.Equal(t, 400.0, b.Total)
	assert.Equal(t, "INR", b.Currency)
	assert.NotNil(t, b.Tips)
}
