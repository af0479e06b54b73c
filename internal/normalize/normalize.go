// Package normalize turns free-form provider text into typed trip content.
package normalize

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
)

var fencePattern = regexp.MustCompile("```json\\n?|\\n?```")

// ExtractJSON strips markdown code fences and returns the span between the
// first opening brace/bracket and the last closing one. When no such ordered
// span exists the trimmed text is returned. The result is not validated.
func ExtractJSON(text string) string {
	cleaned := fencePattern.ReplaceAllString(text, "")

	start := firstIndex(cleaned, "{", "[")
	end := lastIndex(cleaned, "}", "]")
	if start != -1 && end != -1 && end > start {
		return cleaned[start : end+1]
	}
	return strings.TrimSpace(cleaned)
}

func firstIndex(s string, seps ...string) int {
	best := -1
	for _, sep := range seps {
		if i := strings.Index(s, sep); i != -1 && (best == -1 || i < best) {
			best = i
		}
	}
	return best
}

func lastIndex(s string, seps ...string) int {
	best := -1
	for _, sep := range seps {
		if i := strings.LastIndex(s, sep); i > best {
			best = i
		}
	}
	return best
}

// Decode extracts the JSON payload from text and unmarshals it into dst.
func Decode(target, text string, dst any) error {
	payload := ExtractJSON(text)
	if err := json.Unmarshal([]byte(payload), dst); err != nil {
		return domain.ParseError{Target: target, Raw: payload, Err: err}
	}
	return nil
}

// Itinerary decodes an itinerary and repairs missing list fields.
func Itinerary(text string) (models.ItineraryResult, error) {
	var out models.ItineraryResult
	if err := Decode("itinerary", text, &out); err != nil {
		return models.ItineraryResult{}, err
	}
	out.Normalize()
	return out, nil
}

// Companies decodes a company list. A JSON value that is not an array yields
// an empty list, matching how an empty answer is treated.
func Companies(text string) ([]models.CompanyInfo, error) {
	var raw json.RawMessage
	if err := Decode("companies", text, &raw); err != nil {
		return nil, err
	}
	trimmed := strings.TrimSpace(string(raw))
	if !strings.HasPrefix(trimmed, "[") {
		return []models.CompanyInfo{}, nil
	}

	out := []models.CompanyInfo{}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, domain.ParseError{Target: "companies", Raw: trimmed, Err: err}
	}
	return out, nil
}

// Budget decodes a budget breakdown and applies its defaults.
func Budget(text string) (models.BudgetBreakdown, error) {
	var out models.BudgetBreakdown
	if err := Decode("budget", text, &out); err != nil {
		return models.BudgetBreakdown{}, err
	}
	out.Normalize()
	return out, nil
}
