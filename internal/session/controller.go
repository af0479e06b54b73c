// Package session holds the per-visitor trip state machine:
// landing -> form -> loading -> results, with myTrips reachable when signed in.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"

	"github.com/google/uuid"
)

// Planner produces a complete plan for a request.
type Planner interface {
	GeneratePlan(ctx context.Context, req models.TripRequest) (models.Plan, models.PlanReport)
}

// Store is the subset of the persistence shim a session uses.
type Store interface {
	SignIn(ctx context.Context, creds models.Credentials) (models.Principal, error)
	SignOut(ctx context.Context, p models.Principal)
	SaveTrip(ctx context.Context, trip models.SavedTrip) (string, error)
	GetTrips(ctx context.Context, ownerID string) ([]models.SavedTrip, error)
	GetTripByID(ctx context.Context, id string) (*models.SavedTrip, error)
}

type Controller struct {
	ID string

	planner Planner
	store   Store
	now     func() time.Time

	mu    sync.Mutex
	state State
	// gen changes whenever trip-scoped state is replaced; late results from
	// an older generation are dropped.
	gen   uint64
	saves sync.WaitGroup
}

func NewController(planner Planner, store Store) *Controller {
	return &Controller{
		ID:      uuid.NewString(),
		planner: planner,
		store:   store,
		now:     time.Now,
		state:   initialState(),
	}
}

func (c *Controller) log(action, msg string) {
	utils.LogEvent(c.ID, "session", action, msg)
}

func invalidTransition(action string, from View) error {
	return domain.ConflictError{Resource: "session", Msg: fmt.Sprintf("cannot %s from %s", action, from)}
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// WaitSaves blocks until every auto-save started so far has finished.
func (c *Controller) WaitSaves() {
	c.saves.Wait()
}

func (c *Controller) Start() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.View != ViewLanding && c.state.View != ViewForm {
		return invalidTransition("start", c.state.View)
	}
	c.state.View = ViewForm
	c.state.Alert = ""
	return nil
}

// Submit validates req, runs the planner and shows the results. A failure
// escaping the planner reverts to the form with an alert. When a user is
// signed in the trip is saved in the background.
func (c *Controller) Submit(ctx context.Context, req models.TripRequest) error {
	if err := req.Validate(); err != nil {
		return err
	}

	c.mu.Lock()
	if c.state.View == ViewLoading {
		c.mu.Unlock()
		return invalidTransition("submit", c.state.View)
	}
	c.gen++
	gen := c.gen
	formData := req
	c.state.View = ViewLoading
	c.state.FormData = &formData
	c.state.CurrentTripID = ""
	c.state.Alert = ""
	c.state.Notice = ""
	c.mu.Unlock()

	// generation runs to completion even if the caller goes away
	plan, report, err := c.generate(context.WithoutCancel(ctx), req)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		c.log("submit", "discarded stale plan")
		return nil
	}
	if err != nil {
		c.log("submit", fmt.Sprintf("generation aborted err=%v", err))
		c.state.View = ViewForm
		c.state.Alert = AlertGenerateFailed
		return nil
	}

	itinerary := plan.Itinerary
	budget := plan.Budget
	c.state.Itinerary = &itinerary
	c.state.Companies = append([]models.CompanyInfo{}, plan.Companies...)
	c.state.Budget = &budget
	c.state.Photos = append([]models.PhotoItem{}, plan.Photos...)
	c.state.Report = &report
	c.state.Notice = noticeFor(report)
	c.state.View = ViewResults

	if c.state.User != nil {
		trip := models.SavedTripFrom(c.state.User.UID, req, plan)
		c.startSave(gen, trip)
	}
	return nil
}

func noticeFor(r models.PlanReport) string {
	switch {
	case r.QuotaExceeded:
		return NoticeQuotaExceeded
	case r.Degraded():
		return NoticeDegraded
	default:
		return ""
	}
}

func (c *Controller) generate(ctx context.Context, req models.TripRequest) (plan models.Plan, report models.PlanReport, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = domain.InternalError{Msg: fmt.Sprintf("planner panic: %v", r)}
		}
	}()
	if c.planner == nil {
		return models.Plan{}, models.PlanReport{}, domain.InternalError{Msg: "no planner configured"}
	}
	plan, report = c.planner.GeneratePlan(ctx, req)
	return plan, report, nil
}

// startSave must be called with c.mu held.
func (c *Controller) startSave(gen uint64, trip models.SavedTrip) {
	c.state.Saving = true
	c.saves.Add(1)
	go func() {
		defer c.saves.Done()
		ctx := context.Background()

		id, err := c.store.SaveTrip(ctx, trip)
		if err != nil {
			c.log("auto_save", fmt.Sprintf("failed err=%v", err))
			c.mu.Lock()
			c.state.Saving = false
			c.mu.Unlock()
			return
		}

		trips, listErr := c.store.GetTrips(ctx, trip.UserID)
		if listErr != nil {
			c.log("auto_save", fmt.Sprintf("refresh trips failed err=%v", listErr))
		}

		c.mu.Lock()
		defer c.mu.Unlock()
		c.state.Saving = false
		if c.gen == gen {
			c.state.CurrentTripID = id
		}
		if listErr == nil && c.state.User != nil && c.state.User.UID == trip.UserID {
			c.state.SavedTrips = trips
		}
		c.log("auto_save", "trip_id="+id)
	}()
}

// LoadShared opens a trip by id regardless of owner. An unknown id leaves
// the session on the landing view with an alert and no trip state.
func (c *Controller) LoadShared(ctx context.Context, id string) error {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	c.state.clearTrip()
	c.state.View = ViewLoading
	c.state.Alert = ""
	c.mu.Unlock()

	trip, err := c.store.GetTripByID(ctx, strings.TrimSpace(id))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.gen != gen {
		return nil
	}
	if err != nil {
		c.log("load_shared", fmt.Sprintf("trip_id=%s err=%v", id, err))
		c.state.View = ViewLanding
		return err
	}
	if trip == nil {
		c.state.View = ViewLanding
		c.state.Alert = AlertTripNotFound
		return nil
	}
	c.applyTrip(*trip)
	return nil
}

// SelectTrip shows a saved trip.
func (c *Controller) SelectTrip(trip models.SavedTrip) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.applyTrip(trip)
}

// SelectTripByID shows one of the signed-in user's saved trips.
func (c *Controller) SelectTripByID(ctx context.Context, id string) error {
	c.mu.Lock()
	user := c.state.User
	var found *models.SavedTrip
	for i := range c.state.SavedTrips {
		if c.state.SavedTrips[i].ID == id {
			t := c.state.SavedTrips[i]
			found = &t
			break
		}
	}
	c.mu.Unlock()

	if user == nil {
		return domain.UnauthorizedError{Msg: "sign in to open saved trips"}
	}
	if found == nil {
		trip, err := c.store.GetTripByID(ctx, id)
		if err != nil {
			return err
		}
		if trip == nil || trip.UserID != user.UID {
			return domain.NotFoundError{Resource: "trip"}
		}
		found = trip
	}
	c.SelectTrip(*found)
	return nil
}

// applyTrip must be called with c.mu held.
func (c *Controller) applyTrip(trip models.SavedTrip) {
	c.state.clearTrip()
	formData := trip.FormData
	itinerary := trip.Itinerary
	c.state.FormData = &formData
	c.state.Itinerary = &itinerary
	if trip.Companies != nil {
		c.state.Companies = append([]models.CompanyInfo{}, trip.Companies...)
	}
	if trip.Budget != nil {
		b := *trip.Budget
		c.state.Budget = &b
	}
	if trip.Photos != nil {
		c.state.Photos = append([]models.PhotoItem{}, trip.Photos...)
	}
	c.state.CurrentTripID = trip.ID
	c.state.Alert = ""
	c.state.View = ViewResults
}

// ShowMyTrips refreshes the saved list and shows it. Signed-in users only.
func (c *Controller) ShowMyTrips(ctx context.Context) error {
	c.mu.Lock()
	user := c.state.User
	view := c.state.View
	c.mu.Unlock()

	if user == nil {
		return domain.UnauthorizedError{Msg: "sign in to see saved trips"}
	}
	if view != ViewLanding && view != ViewResults && view != ViewMyTrips {
		return invalidTransition("show saved trips", view)
	}

	trips, err := c.store.GetTrips(ctx, user.UID)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.SavedTrips = trips
	c.state.View = ViewMyTrips
	return nil
}

// Back follows the back button of each view.
func (c *Controller) Back() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	switch c.state.View {
	case ViewForm, ViewMyTrips:
		c.state.View = ViewLanding
	case ViewResults:
		if c.state.User != nil {
			c.state.View = ViewMyTrips
		} else {
			c.state.View = ViewForm
		}
	case ViewLanding:
	default:
		return invalidTransition("go back", c.state.View)
	}
	return nil
}

// Reset clears the current trip and opens an empty form.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	c.state.clearTrip()
	c.state.Alert = ""
	c.state.View = ViewForm
}

// SignIn authenticates through the store and loads the user's trips.
func (c *Controller) SignIn(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	p, err := c.store.SignIn(ctx, creds)
	if err != nil {
		return models.Principal{}, err
	}
	c.UsePrincipal(ctx, p)
	return p, nil
}

// UsePrincipal attaches an already authenticated identity to the session.
func (c *Controller) UsePrincipal(ctx context.Context, p models.Principal) {
	c.mu.Lock()
	if c.state.User != nil && c.state.User.UID == p.UID {
		c.mu.Unlock()
		return
	}
	user := p
	c.state.User = &user
	c.state.SavedTrips = []models.SavedTrip{}
	c.mu.Unlock()

	trips, err := c.store.GetTrips(ctx, p.UID)
	if err != nil {
		c.log("sign_in", fmt.Sprintf("load trips failed err=%v", err))
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.User != nil && c.state.User.UID == p.UID {
		c.state.SavedTrips = trips
	}
}

func (c *Controller) SignOut(ctx context.Context) {
	c.mu.Lock()
	user := c.state.User
	c.state.User = nil
	c.state.SavedTrips = []models.SavedTrip{}
	c.state.View = ViewLanding
	c.mu.Unlock()

	if user != nil {
		c.store.SignOut(ctx, *user)
	}
}

// AddPhoto puts photo at the front of the album. Album edits stay in the
// session; saved trips are not updated.
func (c *Controller) AddPhoto(photo models.PhotoItem) (models.PhotoItem, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state.Itinerary == nil {
		return models.PhotoItem{}, domain.ConflictError{Resource: "session", Msg: "no trip is open"}
	}
	if strings.TrimSpace(photo.URL) == "" {
		return models.PhotoItem{}, domain.ValidationError{Field: "url", Msg: "photo url is required"}
	}
	if photo.ID == "" {
		photo.ID = "photo-" + uuid.NewString()
	}
	for _, p := range c.state.Photos {
		if p.ID == photo.ID {
			return models.PhotoItem{}, domain.ConflictError{Resource: "photo", Msg: "id already used"}
		}
	}
	if photo.Date == "" {
		photo.Date = utils.ISOTimestamp(c.now())
	}
	if photo.Tags == nil {
		photo.Tags = []string{}
	}
	c.state.Photos = append([]models.PhotoItem{photo}, c.state.Photos...)
	return photo, nil
}

// UpdatePhoto replaces the photo with the same id.
func (c *Controller) UpdatePhoto(photo models.PhotoItem) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.state.Photos {
		if p.ID == photo.ID {
			if photo.Tags == nil {
				photo.Tags = []string{}
			}
			c.state.Photos[i] = photo
			return nil
		}
	}
	return domain.NotFoundError{Resource: "photo"}
}

func (c *Controller) RemovePhoto(id string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.state.Photos {
		if p.ID == id {
			c.state.Photos = append(c.state.Photos[:i:i], c.state.Photos[i+1:]...)
			return nil
		}
	}
	return domain.NotFoundError{Resource: "photo"}
}
