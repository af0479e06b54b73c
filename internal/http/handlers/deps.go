package handlers

import (
	"sync"

	"github.com/Omkar290703/Ai-IV-Planner/internal/genai"
	"github.com/Omkar290703/Ai-IV-Planner/internal/persistence"
	"github.com/Omkar290703/Ai-IV-Planner/internal/services"
	"github.com/Omkar290703/Ai-IV-Planner/internal/session"

	"github.com/gin-gonic/gin"
)

// Deps are the shared services handlers work with.
type Deps struct {
	Store         *persistence.Shim
	Provider      genai.Provider
	Sessions      *session.Registry
	PublicBaseURL string
}

var (
	depsMu sync.RWMutex
	deps   Deps
)

// Configure installs the dependencies used by every handler.
func Configure(d Deps) {
	depsMu.Lock()
	defer depsMu.Unlock()
	deps = d
}

func current() Deps {
	depsMu.RLock()
	defer depsMu.RUnlock()
	return deps
}

func plannerFor(c *gin.Context) services.PlannerService {
	return services.PlannerService{Provider: current().Provider, RequestID: requestID(c)}
}

func exporterFor(c *gin.Context) services.ExportService {
	return services.ExportService{BaseURL: current().PublicBaseURL, RequestID: requestID(c)}
}
