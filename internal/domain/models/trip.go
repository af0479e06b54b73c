package models

import (
	"sort"
	"strings"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
)

// MaxTripDays bounds the itinerary length a single request may ask for.
const MaxTripDays = 14

type BudgetTier string

const (
	BudgetCheap    BudgetTier = "Cheap"
	BudgetModerate BudgetTier = "Moderate"
	BudgetLuxury   BudgetTier = "Luxury"
)

func (b BudgetTier) Valid() bool {
	switch b {
	case BudgetCheap, BudgetModerate, BudgetLuxury:
		return true
	}
	return false
}

type TravelerCategory string

const (
	TravelersSolo     TravelerCategory = "Solo"
	TravelersCouple   TravelerCategory = "Couple"
	TravelersFamily   TravelerCategory = "Family"
	TravelersFriends  TravelerCategory = "Friends"
	TravelersStudents TravelerCategory = "Students"
)

func (t TravelerCategory) Valid() bool {
	switch t {
	case TravelersSolo, TravelersCouple, TravelersFamily, TravelersFriends, TravelersStudents:
		return true
	}
	return false
}

type ActivityType string

const (
	ActivityVisit   ActivityType = "visit"
	ActivityFood    ActivityType = "food"
	ActivityTravel  ActivityType = "travel"
	ActivityLeisure ActivityType = "leisure"
)

// TripRequest is the form a user submits for one generation cycle.
type TripRequest struct {
	Destination   string           `json:"destination" bson:"destination"`
	Days          int              `json:"days" bson:"days"`
	Budget        BudgetTier       `json:"budget" bson:"budget"`
	Travelers     TravelerCategory `json:"travelers" bson:"travelers"`
	TravelerCount int              `json:"travelerCount" bson:"travelerCount"`
	Industry      string           `json:"industry" bson:"industry"`
}

// Validate trims free-text fields in place and checks every constraint.
func (r *TripRequest) Validate() error {
	r.Destination = strings.TrimSpace(r.Destination)
	r.Industry = strings.TrimSpace(r.Industry)

	switch {
	case r.Destination == "":
		return domain.ValidationError{Field: "destination", Msg: "is required"}
	case r.Industry == "":
		return domain.ValidationError{Field: "industry", Msg: "is required"}
	case r.Days < 1:
		return domain.ValidationError{Field: "days", Msg: "must be at least 1"}
	case r.Days > MaxTripDays:
		return domain.ValidationError{Field: "days", Msg: "must be at most 14"}
	case r.TravelerCount < 1:
		return domain.ValidationError{Field: "travelerCount", Msg: "must be at least 1"}
	case !r.Budget.Valid():
		return domain.ValidationError{Field: "budget", Msg: "must be one of Cheap, Moderate, Luxury"}
	case !r.Travelers.Valid():
		return domain.ValidationError{Field: "travelers", Msg: "must be one of Solo, Couple, Family, Friends, Students"}
	}
	return nil
}

type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

type Activity struct {
	Time        string       `json:"time" bson:"time"`
	Description string       `json:"description" bson:"description"`
	Location    string       `json:"location" bson:"location"`
	Type        ActivityType `json:"type" bson:"type"`
	MapsURL     string       `json:"mapsUrl,omitempty" bson:"mapsUrl,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

type DayPlan struct {
	Day        int        `json:"day" bson:"day"`
	Title      string     `json:"title" bson:"title"`
	Activities []Activity `json:"activities" bson:"activities"`
}

type ItineraryResult struct {
	Destination string    `json:"destination" bson:"destination"`
	Overview    string    `json:"overview" bson:"overview"`
	Days        []DayPlan `json:"days" bson:"days"`
}

// Normalize orders days by index, keeps the first plan for a repeated index
// and guarantees non-nil slices.
func (r *ItineraryResult) Normalize() {
	if r.Days == nil {
		r.Days = []DayPlan{}
	}
	sort.SliceStable(r.Days, func(i, j int) bool { return r.Days[i].Day < r.Days[j].Day })

	out := r.Days[:0]
	seen := map[int]bool{}
	for _, d := range r.Days {
		if seen[d.Day] {
			continue
		}
		seen[d.Day] = true
		if d.Activities == nil {
			d.Activities = []Activity{}
		}
		out = append(out, d)
	}
	r.Days = out
}

// Coordinates returns every activity coordinate in itinerary order.
func (r ItineraryResult) Coordinates() []Coordinates {
	out := []Coordinates{}
	for _, d := range r.Days {
		for _, a := range d.Activities {
			if a.Coordinates != nil {
				out = append(out, *a.Coordinates)
			}
		}
	}
	return out
}

type CompanyInfo struct {
	Name        string       `json:"name" bson:"name"`
	Description string       `json:"description" bson:"description"`
	Website     string       `json:"website,omitempty" bson:"website,omitempty"`
	Distance    string       `json:"distance,omitempty" bson:"distance,omitempty"`
	MapsURL     string       `json:"mapsUrl,omitempty" bson:"mapsUrl,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty" bson:"coordinates,omitempty"`
}

// DefaultCurrency is used when the provider omits a currency code.
const DefaultCurrency = "INR"

// BudgetBreakdown holds per-person amounts.
type BudgetBreakdown struct {
	Travel        float64  `json:"travel" bson:"travel"`
	Accommodation float64  `json:"accommodation" bson:"accommodation"`
	Food          float64  `json:"food" bson:"food"`
	Activities    float64  `json:"activities" bson:"activities"`
	Buffer        float64  `json:"buffer" bson:"buffer"`
	Total         float64  `json:"total" bson:"total"`
	Currency      string   `json:"currency" bson:"currency"`
	Tips          []string `json:"tips" bson:"tips"`
}

// Sum adds the five categories.
func (b BudgetBreakdown) Sum() float64 {
	return b.Travel + b.Accommodation + b.Food + b.Activities + b.Buffer
}

// Normalize clamps negative categories, recomputes a missing or miscomputed
// total and fills currency and tips defaults.
func (b *BudgetBreakdown) Normalize() {
	for _, v := range []*float64{&b.Travel, &b.Accommodation, &b.Food, &b.Activities, &b.Buffer} {
		if *v < 0 {
			*v = 0
		}
	}
	sum := b.Sum()
	if diff := b.Total - sum; b.Total <= 0 || diff > 1 || diff < -1 {
		b.Total = sum
	}
	if strings.TrimSpace(b.Currency) == "" {
		b.Currency = DefaultCurrency
	}
	if b.Tips == nil {
		b.Tips = []string{}
	}
}

// GroupTotal is the per-person total multiplied by the number of travelers.
func (b BudgetBreakdown) GroupTotal(travelers int) float64 {
	if travelers < 1 {
		travelers = 1
	}
	return b.Total * float64(travelers)
}

type PhotoItem struct {
	ID       string   `json:"id" bson:"id"`
	URL      string   `json:"url" bson:"url"`
	Date     string   `json:"date" bson:"date"`
	Location string   `json:"location" bson:"location"`
	Tags     []string `json:"tags" bson:"tags"`
}

// SavedTrip is the durable record of one planning session. Records are
// appended, never updated in place.
type SavedTrip struct {
	ID          string           `json:"id,omitempty" bson:"-"`
	UserID      string           `json:"userId" bson:"userId"`
	Destination string           `json:"destination" bson:"destination"`
	CreatedAt   time.Time        `json:"createdAt" bson:"createdAt"`
	FormData    TripRequest      `json:"formData" bson:"formData"`
	Itinerary   ItineraryResult  `json:"itinerary" bson:"itinerary"`
	Companies   []CompanyInfo    `json:"companies" bson:"companies"`
	Budget      *BudgetBreakdown `json:"budget" bson:"budget"`
	Photos      []PhotoItem      `json:"photos" bson:"photos"`
}
