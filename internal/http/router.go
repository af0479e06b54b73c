package api

import (
	"log"
	stdhttp "net/http"
	"time"

	intconfig "github.com/Omkar290703/Ai-IV-Planner/internal/config"
	h "github.com/Omkar290703/Ai-IV-Planner/internal/http/handlers"
	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

// NewRouter wires middleware and routes. deps must already carry a store.
func NewRouter(env intconfig.Env, deps h.Deps) *gin.Engine {
	h.Configure(deps)

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.Logger(),
		gin.Recovery(),
		middleware.CORS(env.AllowedOrigins),
		middleware.AuthOptional(deps.Store.VerifyToken),
	)

	if err := r.SetTrustedProxies(nil); err != nil {
		log.Printf("warning: failed to set trusted proxies: %v", err)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(stdhttp.StatusNotFound, gin.H{
			"error":  "route not found",
			"path":   c.Request.URL.Path,
			"method": c.Request.Method,
		})
	})

	planLimiter := middleware.NewRateLimiter(env.PlanRateLimit, time.Minute)

	api := r.Group("/api")
	{
		api.GET("/health", h.Health)
		api.GET("/routes", h.Routes)

		auth := api.Group("/auth")
		auth.POST("/login", h.Login)
		auth.POST("/register", h.Register)
		auth.POST("/logout", h.Logout)
		auth.GET("/me", middleware.RequireAuth(), h.Me)

		api.POST("/plans", middleware.RateLimit(planLimiter), h.CreatePlan)

		trips := api.Group("/trips")
		trips.GET("", middleware.RequireAuth(), h.ListTrips)
		trips.GET("/:id", h.GetTrip)
		trips.GET("/:id/export", h.ExportTrip)

		sessions := api.Group("/sessions")
		sessions.POST("", h.CreateSession)
		sessions.GET("/:sid", h.GetSession)
		sessions.POST("/:sid/start", h.StartSession)
		sessions.POST("/:sid/submit", middleware.RateLimit(planLimiter), h.SubmitSession)
		sessions.POST("/:sid/reset", h.ResetSession)
		sessions.POST("/:sid/back", h.BackSession)
		sessions.POST("/:sid/my-trips", h.MyTripsSession)
		sessions.POST("/:sid/select/:tripId", h.SelectSessionTrip)
		sessions.POST("/:sid/photos", h.AddSessionPhoto)
		sessions.PUT("/:sid/photos/:photoId", h.UpdateSessionPhoto)
		sessions.DELETE("/:sid/photos/:photoId", h.RemoveSessionPhoto)
	}

	h.SetRouter(r)
	return r
}
