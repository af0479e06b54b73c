package models

import "github.com/Omkar290703/Ai-IV-Planner/internal/domain"

// Plan is the complete result of one generation cycle.
type Plan struct {
	Itinerary ItineraryResult `json:"itinerary"`
	Companies []CompanyInfo   `json:"companies"`
	Budget    BudgetBreakdown `json:"budget"`
	Photos    []PhotoItem     `json:"photos"`
}

// SlotReport tells whether one slot of a Plan came from the provider or from
// placeholder content.
type SlotReport struct {
	Degraded bool               `json:"degraded"`
	Failure  domain.FailureKind `json:"failure,omitempty"`
}

// PlanReport describes how a Plan was assembled.
type PlanReport struct {
	Itinerary      SlotReport `json:"itinerary"`
	Companies      SlotReport `json:"companies"`
	Budget         SlotReport `json:"budget"`
	ImagesAsked    int        `json:"imagesAsked"`
	ImagesReturned int        `json:"imagesReturned"`
	QuotaExceeded  bool       `json:"quotaExceeded"`
}

// Degraded reports whether any textual slot fell back to placeholder content.
func (r PlanReport) Degraded() bool {
	return r.Itinerary.Degraded || r.Companies.Degraded || r.Budget.Degraded
}

// SavedTripFrom snapshots a plan for persistence. The record shares no
// slices with plan, so later session edits cannot reach it.
func SavedTripFrom(ownerID string, req TripRequest, plan Plan) SavedTrip {
	budget := plan.Budget
	budget.Tips = append([]string{}, plan.Budget.Tips...)
	photos := make([]PhotoItem, 0, len(plan.Photos))
	for _, p := range plan.Photos {
		p.Tags = append([]string{}, p.Tags...)
		photos = append(photos, p)
	}
	companies := append([]CompanyInfo{}, plan.Companies...)
	return SavedTrip{
		UserID:      ownerID,
		Destination: req.Destination,
		FormData:    req,
		Itinerary:   plan.Itinerary,
		Companies:   companies,
		Budget:      &budget,
		Photos:      photos,
	}
}
