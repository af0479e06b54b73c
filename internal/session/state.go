package session

import (
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
)

type View string

const (
	ViewLanding View = "landing"
	ViewForm    View = "form"
	ViewLoading View = "loading"
	ViewResults View = "results"
	ViewMyTrips View = "myTrips"
)

const (
	AlertTripNotFound   = "Trip not found or link is invalid."
	AlertGenerateFailed = "Something went wrong generating your trip. Please check your API key or try again."
	NoticeQuotaExceeded = "The AI quota is exhausted, so this plan uses sample content."
	NoticeDegraded      = "Parts of this plan use sample content because generation failed."
)

// State is a point-in-time copy of a session. Trip-scoped fields are empty
// until a plan is generated or a saved trip is opened.
type State struct {
	View          View                    `json:"view"`
	User          *models.Principal       `json:"user,omitempty"`
	FormData      *models.TripRequest     `json:"formData,omitempty"`
	Itinerary     *models.ItineraryResult `json:"itinerary,omitempty"`
	Companies     []models.CompanyInfo    `json:"companies"`
	Budget        *models.BudgetBreakdown `json:"budget,omitempty"`
	Photos        []models.PhotoItem      `json:"photos"`
	CurrentTripID string                  `json:"currentTripId,omitempty"`
	SavedTrips    []models.SavedTrip      `json:"savedTrips"`
	Report        *models.PlanReport      `json:"report,omitempty"`
	Notice        string                  `json:"notice,omitempty"`
	Alert         string                  `json:"alert,omitempty"`
	Saving        bool                    `json:"saving"`
}

func initialState() State {
	return State{
		View:       ViewLanding,
		Companies:  []models.CompanyInfo{},
		Photos:     []models.PhotoItem{},
		SavedTrips: []models.SavedTrip{},
	}
}

func (s *State) clearTrip() {
	s.FormData = nil
	s.Itinerary = nil
	s.Companies = []models.CompanyInfo{}
	s.Budget = nil
	s.Photos = []models.PhotoItem{}
	s.CurrentTripID = ""
	s.Report = nil
	s.Notice = ""
}

func (s State) clone() State {
	out := s
	if s.User != nil {
		u := *s.User
		out.User = &u
	}
	if s.FormData != nil {
		f := *s.FormData
		out.FormData = &f
	}
	if s.Itinerary != nil {
		it := *s.Itinerary
		it.Days = append([]models.DayPlan(nil), s.Itinerary.Days...)
		out.Itinerary = &it
	}
	if s.Budget != nil {
		b := *s.Budget
		b.Tips = append([]string(nil), s.Budget.Tips...)
		out.Budget = &b
	}
	if s.Report != nil {
		r := *s.Report
		out.Report = &r
	}
	out.Companies = append([]models.CompanyInfo{}, s.Companies...)
	out.Photos = append([]models.PhotoItem{}, s.Photos...)
	out.SavedTrips = append([]models.SavedTrip{}, s.SavedTrips...)
	return out
}
