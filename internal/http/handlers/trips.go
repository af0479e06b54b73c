package handlers

import (
	"net/http"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"
	"github.com/Omkar290703/Ai-IV-Planner/internal/services"

	"github.com/gin-gonic/gin"
)

// GET /api/trips
func ListTrips(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	trips, err := current().Store.GetTrips(c.Request.Context(), p.UID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"trips": trips})
}

func loadTrip(c *gin.Context) (*models.SavedTrip, bool) {
	trip, err := current().Store.GetTripByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return nil, false
	}
	if trip == nil {
		RespondDomainError(c, domain.NotFoundError{Resource: "trip"})
		return nil, false
	}
	return trip, true
}

// GET /api/trips/:id
// Anyone holding the id can read the trip; this backs shared links.
func GetTrip(c *gin.Context) {
	trip, ok := loadTrip(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"trip":      trip,
		"shareLink": exporterFor(c).ShareLink(trip.ID),
	})
}

// GET /api/trips/:id/export?format=txt|pdf|json
func ExportTrip(c *gin.Context) {
	trip, ok := loadTrip(c)
	if !ok {
		return
	}
	svc := exporterFor(c)

	format := strings.ToLower(strings.TrimSpace(c.DefaultQuery("format", "txt")))
	switch format {
	case "txt", "text":
		name := services.Filename(trip.Destination, "txt")
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(svc.Summary(services.ExportFromSaved(*trip))))
	case "pdf":
		data, name, err := svc.PDF(services.ExportFromSaved(*trip))
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "render pdf", Err: err})
			return
		}
		c.Header("Content-Disposition", `inline; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/pdf", data)
	case "json":
		data, name, err := svc.JSON(*trip)
		if err != nil {
			RespondDomainError(c, domain.InternalError{Msg: "render json", Err: err})
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
		c.Data(http.StatusOK, "application/json", data)
	default:
		RespondDomainError(c, domain.ValidationError{Field: "format", Msg: "must be txt, pdf or json"})
	}
}
