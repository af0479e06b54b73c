// Package persistence hides which backend stores identities and trips.
// Callers use one Shim regardless of whether it is backed by the local SQL
// store or the cloud document store.
package persistence

import (
	"context"
	"fmt"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/config"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/repositories"
	"github.com/Omkar290703/Ai-IV-Planner/internal/utils"
)

type Shim struct {
	backend string
	auth    Authenticator
	trips   repositories.TripStore
	tokens  TokenIssuer
	events  *AuthEvents
}

// New assembles a shim from its parts.
func New(backend string, auth Authenticator, trips repositories.TripStore, tokens TokenIssuer) *Shim {
	return &Shim{
		backend: backend,
		auth:    auth,
		trips:   trips,
		tokens:  tokens,
		events:  NewAuthEvents(),
	}
}

// Open connects the backend selected by cfg and prepares its schema. The
// returned closer releases the connection.
func Open(ctx context.Context, cfg config.Persistence) (*Shim, func(), error) {
	tokens := TokenIssuer{Secret: []byte(cfg.JWTSecret), TTL: cfg.TokenTTL}

	switch cfg.Backend {
	case config.BackendCloud:
		client, err := config.ConnectMongo(ctx, cfg.MongoURI)
		if err != nil {
			return nil, nil, err
		}
		db := client.Database(cfg.MongoDB)
		trips := repositories.MongoTripStore{DB: db}
		users := repositories.UserRepository{DB: db}
		closer := func() { _ = client.Disconnect(context.Background()) }
		if err := trips.EnsureIndexes(ctx); err != nil {
			closer()
			return nil, nil, err
		}
		if err := users.EnsureIndexes(ctx); err != nil {
			closer()
			return nil, nil, err
		}
		return New(config.BackendCloud, CloudAuthenticator{Users: users}, trips, tokens), closer, nil

	default:
		db, err := config.OpenSQL(ctx, cfg.LocalDriver, cfg.LocalDSN)
		if err != nil {
			return nil, nil, err
		}
		trips := repositories.SQLTripStore{DB: db, Dialect: cfg.LocalDriver}
		if err := trips.EnsureSchema(ctx); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		closer := func() { _ = db.Close() }
		return New(config.BackendLocal, LocalAuthenticator{Delay: cfg.AuthDelay}, trips, tokens), closer, nil
	}
}

func (s *Shim) Backend() string { return s.backend }

// SignIn resolves creds to a principal and notifies auth listeners.
func (s *Shim) SignIn(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	p, err := s.auth.SignIn(ctx, creds)
	if err != nil {
		return models.Principal{}, err
	}
	utils.LogEvent("", "auth", "sign_in", fmt.Sprintf("backend=%s uid=%s", s.backend, p.UID))
	s.events.Publish(&p)
	return p, nil
}

// Register creates an account where the backend keeps accounts, then signs in.
func (s *Shim) Register(ctx context.Context, creds models.Credentials, displayName string) (models.Principal, error) {
	p, err := s.auth.Register(ctx, creds, displayName)
	if err != nil {
		return models.Principal{}, err
	}
	utils.LogEvent("", "auth", "register", fmt.Sprintf("backend=%s uid=%s", s.backend, p.UID))
	s.events.Publish(&p)
	return p, nil
}

func (s *Shim) SignOut(_ context.Context, p models.Principal) {
	utils.LogEvent("", "auth", "sign_out", fmt.Sprintf("backend=%s uid=%s", s.backend, p.UID))
	s.events.Publish(nil)
}

// OnAuthChange subscribes fn to auth changes; it is called right away with
// the current state.
func (s *Shim) OnAuthChange(fn AuthListener) (unsubscribe func()) {
	return s.events.Subscribe(fn)
}

// SaveTrip appends trip and returns its new id. The trip must have an owner.
func (s *Shim) SaveTrip(ctx context.Context, trip models.SavedTrip) (string, error) {
	if strings.TrimSpace(trip.UserID) == "" {
		return "", domain.UnauthorizedError{Msg: "sign in to save trips"}
	}
	id, err := s.trips.Create(ctx, trip)
	if err != nil {
		return "", err
	}
	utils.LogEvent("", "trips", "save", fmt.Sprintf("backend=%s trip_id=%s owner=%s", s.backend, id, trip.UserID))
	return id, nil
}

// GetTrips returns the owner's trips, newest first.
func (s *Shim) GetTrips(ctx context.Context, ownerID string) ([]models.SavedTrip, error) {
	if strings.TrimSpace(ownerID) == "" {
		return []models.SavedTrip{}, nil
	}
	return s.trips.ListByOwner(ctx, ownerID)
}

// GetTripByID returns nil, nil when the trip does not exist. Shared links
// rely on this lookup ignoring ownership.
func (s *Shim) GetTripByID(ctx context.Context, id string) (*models.SavedTrip, error) {
	if strings.TrimSpace(id) == "" {
		return nil, nil
	}
	return s.trips.GetByID(ctx, id)
}

func (s *Shim) IssueToken(p models.Principal) (string, error) {
	return s.tokens.Issue(p)
}

func (s *Shim) VerifyToken(raw string) (models.Principal, error) {
	return s.tokens.Verify(raw)
}
