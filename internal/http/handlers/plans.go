package handlers

import (
	"fmt"
	"net/http"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"

	"github.com/gin-gonic/gin"
)

type planResponse struct {
	models.Plan
	Report    models.PlanReport `json:"report"`
	TripID    string            `json:"tripId,omitempty"`
	ShareLink string            `json:"shareLink,omitempty"`
}

// POST /api/plans
// Generates a plan without a session. Signed-in callers get it saved; a
// failed save is logged and the plan is still returned.
func CreatePlan(c *gin.Context) {
	var req models.TripRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		RespondDomainError(c, err)
		return
	}

	ctx := c.Request.Context()
	plan, report := plannerFor(c).GeneratePlan(ctx, req)
	resp := planResponse{Plan: plan, Report: report}

	if p, ok := middleware.GetPrincipal(c); ok {
		id, err := current().Store.SaveTrip(ctx, models.SavedTripFrom(p.UID, req, plan))
		if err != nil {
			utils.LogEvent(requestID(c), "plans", "auto_save", fmt.Sprintf("uid=%s err=%v", p.UID, err))
		} else {
			resp.TripID = id
			resp.ShareLink = exporterFor(c).ShareLink(id)
		}
	}

	c.JSON(http.StatusOK, resp)
}
