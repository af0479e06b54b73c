package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/genai"
	"github.com/Omkar290703/Ai-IV-Planner/internal/normalize"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"
)

// PlannerService issues the generation calls for a trip. Every textual call
// is total: provider failures are logged and replaced with placeholder content.
type PlannerService struct {
	Provider  genai.Provider
	RequestID string
	Now       func() time.Time
}

func (s PlannerService) provider() genai.Provider {
	if s.Provider != nil {
		return s.Provider
	}
	return genai.Disabled{}
}

func (s PlannerService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s PlannerService) degrade(action string, err error) models.SlotReport {
	kind := domain.ClassifyGeneration(err)
	utils.LogEvent(s.RequestID, "planner", action, fmt.Sprintf("fallback=mock failure=%s err=%v", kind, err))
	return models.SlotReport{Degraded: true, Failure: kind}
}

// GenerateItinerary never fails; see ItineraryWithReport.
func (s PlannerService) GenerateItinerary(ctx context.Context, req models.TripRequest) models.ItineraryResult {
	out, _ := s.ItineraryWithReport(ctx, req)
	return out
}

// ItineraryWithReport asks the provider for an itinerary and reports whether
// it fell back to the placeholder itinerary.
func (s PlannerService) ItineraryWithReport(ctx context.Context, req models.TripRequest) (models.ItineraryResult, models.SlotReport) {
	text, err := s.provider().GenerateText(ctx, genai.TextRequest{Prompt: itineraryPrompt(req)})
	if err == nil {
		var res models.ItineraryResult
		if res, err = normalize.Itinerary(text); err == nil {
			if res.Destination == "" {
				res.Destination = req.Destination
			}
			return res, models.SlotReport{}
		}
	}
	return MockItinerary(req.Destination, req.Industry, req.Days), s.degrade("generate_itinerary", err)
}

// FindCompanies never fails; an empty list from the provider is kept as is.
func (s PlannerService) FindCompanies(ctx context.Context, req models.TripRequest) []models.CompanyInfo {
	out, _ := s.CompaniesWithReport(ctx, req)
	return out
}

func (s PlannerService) CompaniesWithReport(ctx context.Context, req models.TripRequest) ([]models.CompanyInfo, models.SlotReport) {
	text, err := s.provider().GenerateText(ctx, genai.TextRequest{Prompt: companiesPrompt(req)})
	if err == nil {
		var list []models.CompanyInfo
		if list, err = normalize.Companies(text); err == nil {
			return list, models.SlotReport{}
		}
	}
	return MockCompanies(req.Destination, req.Industry), s.degrade("find_companies", err)
}

// CalculateBudget never fails; the provider answer is schema constrained.
func (s PlannerService) CalculateBudget(ctx context.Context, req models.TripRequest) models.BudgetBreakdown {
	out, _ := s.BudgetWithReport(ctx, req)
	return out
}

func (s PlannerService) BudgetWithReport(ctx context.Context, req models.TripRequest) (models.BudgetBreakdown, models.SlotReport) {
	text, err := s.provider().GenerateText(ctx, genai.TextRequest{
		Prompt:     budgetPrompt(req),
		Schema:     budgetSchema(),
		SchemaName: "budget_breakdown",
	})
	if err == nil {
		var b models.BudgetBreakdown
		if b, err = normalize.Budget(text); err == nil {
			return b, models.SlotReport{}
		}
	}
	return MockBudget(), s.degrade("calculate_budget", err)
}

// GenerateImages requests both album images concurrently and keeps the ones
// that came back. A failing call never affects the other one.
func (s PlannerService) GenerateImages(ctx context.Context, req models.TripRequest) []models.PhotoItem {
	prompts := imagePrompts(req)
	urls := make([]string, len(prompts))

	var wg sync.WaitGroup
	for i, p := range prompts {
		wg.Add(1)
		go func(idx int, prompt string) {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					utils.LogEvent(s.RequestID, "planner", "generate_image", fmt.Sprintf("index=%d panic=%v", idx, r))
				}
			}()
			url, err := s.provider().GenerateImage(ctx, prompt)
			if err != nil {
				utils.LogEvent(s.RequestID, "planner", "generate_image", fmt.Sprintf("index=%d failure=%s err=%v", idx, domain.ClassifyGeneration(err), err))
				return
			}
			urls[idx] = url
		}(i, p.prompt)
	}
	wg.Wait()

	now := s.now()
	photos := []models.PhotoItem{}
	for i, url := range urls {
		if url == "" {
			continue
		}
		photos = append(photos, models.PhotoItem{
			ID:       fmt.Sprintf("gen-%d-%d", now.UnixMilli(), i),
			URL:      url,
			Date:     utils.ISOTimestamp(now),
			Location: req.Destination,
			Tags:     append([]string(nil), prompts[i].tags...),
		})
	}
	return photos
}

// GeneratePlan runs itinerary, companies and budget one after another, then
// the images. The result is always complete.
func (s PlannerService) GeneratePlan(ctx context.Context, req models.TripRequest) (models.Plan, models.PlanReport) {
	var report models.PlanReport

	itinerary, itReport := s.ItineraryWithReport(ctx, req)
	companies, coReport := s.CompaniesWithReport(ctx, req)
	budget, buReport := s.BudgetWithReport(ctx, req)
	photos := s.GenerateImages(ctx, req)

	report.Itinerary = itReport
	report.Companies = coReport
	report.Budget = buReport
	report.ImagesAsked = len(imagePrompts(req))
	report.ImagesReturned = len(photos)
	report.QuotaExceeded = itReport.Failure == domain.FailureQuota ||
		coReport.Failure == domain.FailureQuota ||
		buReport.Failure == domain.FailureQuota

	companies = FillCompanyDistances(itinerary, companies)

	utils.LogEvent(s.RequestID, "planner", "generate_plan", fmt.Sprintf("destination=%q days=%d degraded=%t images=%d",
		req.Destination, len(itinerary.Days), report.Degraded(), len(photos)))

	return models.Plan{
		Itinerary: itinerary,
		Companies: companies,
		Budget:    budget,
		Photos:    photos,
	}, report
}

// FillCompanyDistances labels companies that have coordinates but no distance
// with their distance from the itinerary centroid.
func FillCompanyDistances(itinerary models.ItineraryResult, companies []models.CompanyInfo) []models.CompanyInfo {
	points := [][2]float64{}
	for _, c := range itinerary.Coordinates() {
		points = append(points, [2]float64{c.Lat, c.Lng})
	}
	lat, lng, ok := utils.Centroid(points)
	if !ok {
		return companies
	}
	for i := range companies {
		c := &companies[i]
		if c.Distance != "" || c.Coordinates == nil {
			continue
		}
		c.Distance = utils.DistanceLabel(utils.DistanceKm(lat, lng, c.Coordinates.Lat, c.Coordinates.Lng))
	}
	return companies
}
