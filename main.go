package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	intconfig "github.com/Omkar290703/Ai-IV-Planner/internal/config"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/genai"
	router "github.com/Omkar290703/Ai-IV-Planner/internal/http"
	h "github.com/Omkar290703/Ai-IV-Planner/internal/http/handlers"
	"github.com/Omkar290703/Ai-IV-Planner/internal/persistence"
	"github.com/Omkar290703/Ai-IV-Planner/internal/services"
	"github.com/Omkar290703/Ai-IV-Planner/internal/session"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"

	"github.com/gin-gonic/gin"
)

func newProvider(cfg intconfig.AI) genai.Provider {
	if cfg.APIKey == "" {
		log.Println("AI_API_KEY not set; plans will use placeholder content")
		return genai.Disabled{}
	}
	opts := []genai.Option{
		genai.WithToken(cfg.APIKey),
		genai.WithHTTPClient(&http.Client{Timeout: 90 * time.Second}),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, genai.WithBaseURL(cfg.BaseURL))
	}
	if cfg.TextModel != "" {
		opts = append(opts, genai.WithTextModel(cfg.TextModel))
	}
	if cfg.ImageModel != "" {
		opts = append(opts, genai.WithImageModel(cfg.ImageModel))
	}
	p, err := genai.NewOpenAI(opts...)
	if err != nil {
		log.Printf("AI provider disabled: %v", err)
		return genai.Disabled{}
	}
	return p
}

func main() {
	env := intconfig.LoadEnv()
	if env.GinMode != "" {
		gin.SetMode(env.GinMode)
	}

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	openCtx, cancelOpen := context.WithTimeout(rootCtx, 15*time.Second)
	store, closeStore, err := persistence.Open(openCtx, env.Persistence)
	cancelOpen()
	if err != nil {
		log.Fatalf("failed to open %s persistence: %v", env.Persistence.Backend, err)
	}
	defer closeStore()

	unsubscribe := store.OnAuthChange(func(p *models.Principal) {
		if p == nil {
			utils.LogEvent("", "auth", "state", "signed_out")
			return
		}
		utils.LogEvent("", "auth", "state", "signed_in uid="+p.UID)
	})
	defer unsubscribe()

	provider := newProvider(env.AI)
	sessions := session.NewRegistry(services.PlannerService{Provider: provider}, store, env.SessionTTL)
	go sessions.Run(rootCtx)

	r := router.NewRouter(env, h.Deps{
		Store:         store,
		Provider:      provider,
		Sessions:      sessions,
		PublicBaseURL: env.PublicBaseURL,
	})

	// generation runs three text calls plus images, so writes get more room
	srv := &http.Server{
		Addr:              env.AppAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       20 * time.Second,
		WriteTimeout:      5 * time.Minute,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("server listening on http://localhost%s (backend=%s)", env.AppAddr, store.Backend())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("shutdown failed: %v", err)
	}
	stop()
	sessions.WaitSaves()

	log.Println("server stopped.")
}
