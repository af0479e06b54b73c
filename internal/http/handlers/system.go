package handlers

import (
	"net/http"
	"sync"

	"github.com/Omkar290703/Ai-IV-Planner/internal/genai"

	"github.com/gin-gonic/gin"
)

var (
	routerMu sync.RWMutex
	router   *gin.Engine
)

// SetRouter stores the active gin engine for later inspection (e.g., /api/routes).
func SetRouter(r *gin.Engine) {
	routerMu.Lock()
	defer routerMu.Unlock()
	router = r
}

func Health(c *gin.Context) {
	d := current()
	backend := ""
	if d.Store != nil {
		backend = d.Store.Backend()
	}
	_, disabled := d.Provider.(genai.Disabled)
	c.JSON(http.StatusOK, gin.H{
		"status":        "ok",
		"backend":       backend,
		"ai_configured": d.Provider != nil && !disabled,
	})
}

func Routes(c *gin.Context) {
	routerMu.RLock()
	r := router
	routerMu.RUnlock()
	if r == nil {
		respondError(c, http.StatusServiceUnavailable, "not_ready", "router not ready", nil)
		return
	}

	routes := r.Routes()
	out := make([]gin.H, 0, len(routes))
	for _, rt := range routes {
		out = append(out, gin.H{
			"method":  rt.Method,
			"path":    rt.Path,
			"handler": rt.Handler,
		})
	}
	c.JSON(http.StatusOK, gin.H{"routes": out})
}
