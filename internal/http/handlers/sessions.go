package handlers

import (
	"net/http"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"
	"github.com/Omkar290703/Ai-IV-Planner/internal/session"

	"github.com/gin-gonic/gin"
)

type sessionResponse struct {
	SessionID string        `json:"sessionId"`
	ShareLink string        `json:"shareLink,omitempty"`
	State     session.State `json:"state"`
}

func respondSession(c *gin.Context, status int, ctl *session.Controller) {
	st := ctl.Snapshot()
	c.JSON(status, sessionResponse{
		SessionID: ctl.ID,
		ShareLink: exporterFor(c).ShareLink(st.CurrentTripID),
		State:     st,
	})
}

// sessionFor resolves :sid and attaches the caller's principal to it.
func sessionFor(c *gin.Context) (*session.Controller, bool) {
	reg := current().Sessions
	if reg == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "sessions are not available", nil)
		return nil, false
	}
	ctl, ok := reg.Get(c.Param("sid"))
	if !ok {
		RespondDomainError(c, domain.NotFoundError{Resource: "session"})
		return nil, false
	}
	if p, ok := middleware.GetPrincipal(c); ok {
		ctl.UsePrincipal(c.Request.Context(), p)
	}
	return ctl, true
}

// POST /api/sessions[?tripId=]
// With tripId the new session replays a shared link.
func CreateSession(c *gin.Context) {
	reg := current().Sessions
	if reg == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "sessions are not available", nil)
		return
	}
	ctl := reg.Create()
	if p, ok := middleware.GetPrincipal(c); ok {
		ctl.UsePrincipal(c.Request.Context(), p)
	}

	if tripID := strings.TrimSpace(c.Query("tripId")); tripID != "" {
		if err := ctl.LoadShared(c.Request.Context(), tripID); err != nil {
			logHandlerError(c, err)
		}
	}
	respondSession(c, http.StatusCreated, ctl)
}

// GET /api/sessions/:sid
func GetSession(c *gin.Context) {
	ctl, ok := sessionFor(c)
	if !ok {
		return
	}
	respondSession(c, http.StatusOK, ctl)
}

// sessionAction wraps a controller call that only changes state.
func sessionAction(fn func(c *gin.Context, ctl *session.Controller) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctl, ok := sessionFor(c)
		if !ok {
			return
		}
		if err := fn(c, ctl); err != nil {
			RespondDomainError(c, err)
			return
		}
		respondSession(c, http.StatusOK, ctl)
	}
}

// POST /api/sessions/:sid/start
var StartSession = sessionAction(func(_ *gin.Context, ctl *session.Controller) error {
	return ctl.Start()
})

// POST /api/sessions/:sid/submit
// The response is sent after the plan is ready; pending saves are joined so
// the returned state carries the saved trip id.
var SubmitSession = sessionAction(func(c *gin.Context, ctl *session.Controller) error {
	var req models.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.ValidationError{Field: "body", Msg: "request body is not valid JSON", Err: err}
	}
	if err := ctl.Submit(c.Request.Context(), req); err != nil {
		return err
	}
	ctl.WaitSaves()
	return nil
})

// POST /api/sessions/:sid/reset
var ResetSession = sessionAction(func(_ *gin.Context, ctl *session.Controller) error {
	ctl.Reset()
	return nil
})

// POST /api/sessions/:sid/back
var BackSession = sessionAction(func(_ *gin.Context, ctl *session.Controller) error {
	return ctl.Back()
})

// POST /api/sessions/:sid/my-trips
var MyTripsSession = sessionAction(func(c *gin.Context, ctl *session.Controller) error {
	return ctl.ShowMyTrips(c.Request.Context())
})

// POST /api/sessions/:sid/select/:tripId
var SelectSessionTrip = sessionAction(func(c *gin.Context, ctl *session.Controller) error {
	return ctl.SelectTripByID(c.Request.Context(), c.Param("tripId"))
})

// POST /api/sessions/:sid/photos
func AddSessionPhoto(c *gin.Context) {
	ctl, ok := sessionFor(c)
	if !ok {
		return
	}
	var photo models.PhotoItem
	if !BindJSONOrError(c, &photo) {
		return
	}
	added, err := ctl.AddPhoto(photo)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"photo": added})
}

// PUT /api/sessions/:sid/photos/:photoId
func UpdateSessionPhoto(c *gin.Context) {
	ctl, ok := sessionFor(c)
	if !ok {
		return
	}
	var photo models.PhotoItem
	if !BindJSONOrError(c, &photo) {
		return
	}
	photo.ID = c.Param("photoId")
	if err := ctl.UpdatePhoto(photo); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"photo": photo})
}

// DELETE /api/sessions/:sid/photos/:photoId
func RemoveSessionPhoto(c *gin.Context) {
	ctl, ok := sessionFor(c)
	if !ok {
		return
	}
	if err := ctl.RemovePhoto(c.Param("photoId")); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
