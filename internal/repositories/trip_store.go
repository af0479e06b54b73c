package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"

	"github.com/google/uuid"
)

// TripStore is the append-only trip history shared by both backends.
type TripStore interface {
	// Create stores trip and returns the store-assigned id. The id and
	// created-at fields of trip are ignored.
	Create(ctx context.Context, trip models.SavedTrip) (string, error)
	// ListByOwner returns the owner's trips, newest first.
	ListByOwner(ctx context.Context, ownerID string) ([]models.SavedTrip, error)
	// GetByID returns nil, nil when no trip has the id.
	GetByID(ctx context.Context, id string) (*models.SavedTrip, error)
}

// NewTripID returns a time-derived id such as "trip-1717171717171-3f2a9c1b".
func NewTripID(now time.Time) string {
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return fmt.Sprintf("trip-%d-%s", now.UnixMilli(), suffix)
}

func ensureSlices(t *models.SavedTrip) {
	if t.Companies == nil {
		t.Companies = []models.CompanyInfo{}
	}
	if t.Photos == nil {
		t.Photos = []models.PhotoItem{}
	}
	if t.Itinerary.Days == nil {
		t.Itinerary.Days = []models.DayPlan{}
	}
}
