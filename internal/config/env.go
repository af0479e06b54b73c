package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	BackendLocal = "local"
	BackendCloud = "cloud"
)

// Persistence selects and configures the trip/identity backend.
type Persistence struct {
	Backend     string
	LocalDriver string
	LocalDSN    string
	MongoURI    string
	MongoDB     string
	AuthDelay   time.Duration
	JWTSecret   string
	TokenTTL    time.Duration
}

// AI configures the generation provider. An empty APIKey disables it and
// every plan is served from placeholder content.
type AI struct {
	APIKey     string
	BaseURL    string
	TextModel  string
	ImageModel string
}

type Env struct {
	AppAddr        string
	GinMode        string
	PublicBaseURL  string
	AllowedOrigins []string
	PlanRateLimit  int
	SessionTTL     time.Duration
	AI             AI
	Persistence    Persistence
}

var defaultOrigins = []string{
	"http://localhost:3000",
	"http://127.0.0.1:3000",
	"http://localhost:5173",
	"http://127.0.0.1:5173",
}

// LoadEnv reads the process environment after loading an optional .env file.
func LoadEnv() Env {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("warning: .env not loaded: %v", err)
	}
	return FromLookup(os.Getenv)
}

// FromLookup builds an Env from any key lookup; tests pass a map.
func FromLookup(get func(string) string) Env {
	str := func(key, def string) string {
		if v := strings.TrimSpace(get(key)); v != "" {
			return v
		}
		return def
	}
	num := func(key string, def int) int {
		v := strings.TrimSpace(get(key))
		if v == "" {
			return def
		}
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			log.Printf("warning: %s=%q is not a non-negative integer, using %d", key, v, def)
			return def
		}
		return n
	}

	origins := defaultOrigins
	if raw := strings.TrimSpace(get("CORS_ALLOWED_ORIGINS")); raw != "" {
		origins = nil
		for _, o := range strings.Split(raw, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
	}

	backend := strings.ToLower(str("PERSISTENCE_BACKEND", BackendLocal))
	if backend != BackendCloud {
		backend = BackendLocal
	}

	return Env{
		AppAddr:        str("APP_ADDR", ":8080"),
		GinMode:        str("GIN_MODE", ""),
		PublicBaseURL:  str("PUBLIC_BASE_URL", "http://localhost:5173"),
		AllowedOrigins: origins,
		PlanRateLimit:  num("PLAN_RATE_LIMIT", 10),
		SessionTTL:     time.Duration(num("SESSION_TTL_MINUTES", 60)) * time.Minute,
		AI: AI{
			APIKey:     str("AI_API_KEY", ""),
			BaseURL:    str("AI_BASE_URL", ""),
			TextModel:  str("AI_TEXT_MODEL", ""),
			ImageModel: str("AI_IMAGE_MODEL", ""),
		},
		Persistence: Persistence{
			Backend:     backend,
			LocalDriver: str("LOCAL_DB_DRIVER", "sqlite"),
			LocalDSN:    str("LOCAL_DB_DSN", "ivplanner.db"),
			MongoURI:    str("MONGODB_URI", ""),
			MongoDB:     str("MONGODB_DB", "ivplanner"),
			AuthDelay:   time.Duration(num("MOCK_AUTH_DELAY_MS", 800)) * time.Millisecond,
			JWTSecret:   str("JWT_SECRET", "change-me-in-production"),
			TokenTTL:    24 * time.Hour,
		},
	}
}
