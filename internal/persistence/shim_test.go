package persistence

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/config"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/crypto/bcrypt"
)

func openLocal(t *testing.T) *Shim {
	t.Helper()
	shim, closer, err := Open(context.Background(), config.Persistence{
		Backend:     config.BackendLocal,
		LocalDriver: "sqlite",
		LocalDSN:    filepath.Join(t.TempDir(), "shim.db"),
		JWTSecret:   "test-secret",
	})
	require.NoError(t, err)
	t.Cleanup(closer)
	return shim
}

func TestLocalShimSaveAndList(t *testing.T) {
	ctx := context.Background()
	shim := openLocal(t)
	assert.Equal(t, config.BackendLocal, shim.Backend())

	p, err := shim.SignIn(ctx, models.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, "mock-user-123", p.UID)

	id, err := shim.SaveTrip(ctx, models.SavedTrip{UserID: p.UID, Destination: "Pune"})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	trips, err := shim.GetTrips(ctx, p.UID)
	require.NoError(t, err)
	require.Len(t, trips, 1)
	assert.Equal(t, id, trips[0].ID)

	got, err := shim.GetTripByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Pune", got.Destination)

	missing, err := shim.GetTripByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestSaveTripRequiresOwner(t *testing.T) {
	_, err := openLocal(t).SaveTrip(context.Background(), models.SavedTrip{Destination: "Pune"})
	assert.True(t, domain.IsUnauthorized(err))
}

func TestGetTripsWithoutOwnerIsEmpty(t *testing.T) {
	trips, err := openLocal(t).GetTrips(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, trips)
}

func TestAuthListeners(t *testing.T) {
	ctx := context.Background()
	shim := openLocal(t)

	var seen []string
	record := func(tag string) AuthListener {
		return func(p *models.Principal) {
			if p == nil {
				seen = append(seen, tag+":out")
				return
			}
			seen = append(seen, tag+":"+p.UID)
		}
	}

	unsubA := shim.OnAuthChange(record("a"))
	unsubB := shim.OnAuthChange(record("b"))
	assert.Equal(t, []string{"a:out", "b:out"}, seen)

	p, err := shim.SignIn(ctx, models.Credentials{})
	require.NoError(t, err)
	assert.Equal(t, []string{"a:out", "b:out", "a:mock-user-123", "b:mock-user-123"}, seen)

	unsubA()
	unsubA()
	seen = nil
	shim.SignOut(ctx, p)
	assert.Equal(t, []string{"b:out"}, seen)

	// late subscribers get the current state
	seen = nil
	shim.OnAuthChange(record("c"))
	assert.Equal(t, []string{"c:out"}, seen)
	unsubB()
}

func TestLocalAuthDelayHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := LocalAuthenticator{Delay: time.Hour}.SignIn(ctx, models.Credentials{})
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestTokenRoundTrip(t *testing.T) {
	shim := openLocal(t)
	tok, err := shim.IssueToken(DemoPrincipal)
	require.NoError(t, err)

	p, err := shim.VerifyToken(tok)
	require.NoError(t, err)
	assert.Equal(t, DemoPrincipal, p)

	_, err = shim.VerifyToken(tok + "x")
	assert.True(t, domain.IsUnauthorized(err))
}

func TestTokenExpired(t *testing.T) {
	issued := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	issuer := TokenIssuer{Secret: []byte("s"), TTL: time.Hour, Now: func() time.Time { return issued }}
	tok, err := issuer.Issue(DemoPrincipal)
	require.NoError(t, err)

	later := TokenIssuer{Secret: []byte("s"), Now: func() time.Time { return issued.Add(2 * time.Hour) }}
	_, err = later.Verify(tok)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expired")
}

type memUsers struct {
	byEmail map[string]repositories.UserAccount
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (repositories.UserAccount, error) {
	acc, ok := m.byEmail[email]
	if !ok {
		return repositories.UserAccount{}, domain.NotFoundError{Resource: "user"}
	}
	return acc, nil
}

func (m *memUsers) Create(_ context.Context, acc repositories.UserAccount) (repositories.UserAccount, error) {
	if _, ok := m.byEmail[acc.Email]; ok {
		return repositories.UserAccount{}, domain.ConflictError{Resource: "user"}
	}
	acc.ID = primitive.NewObjectID()
	m.byEmail[acc.Email] = acc
	return acc, nil
}

func TestCloudAuthenticator(t *testing.T) {
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte("correct-horse"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &memUsers{byEmail: map[string]repositories.UserAccount{
		"ana@example.com": {ID: primitive.NewObjectID(), Email: "ana@example.com", DisplayName: "Ana", PasswordHash: string(hash)},
	}}
	auth := CloudAuthenticator{Users: users}

	p, err := auth.SignIn(ctx, models.Credentials{Email: "ana@example.com", Password: "correct-horse"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", p.DisplayName)
	assert.Len(t, p.UID, 24)

	_, err = auth.SignIn(ctx, models.Credentials{Email: "ana@example.com", Password: "wrong"})
	assert.True(t, domain.IsUnauthorized(err))

	_, err = auth.SignIn(ctx, models.Credentials{Email: "nobody@example.com", Password: "x"})
	assert.True(t, domain.IsUnauthorized(err))

	_, err = auth.SignIn(ctx, models.Credentials{})
	assert.True(t, domain.IsValidation(err))

	reg, err := auth.Register(ctx, models.Credentials{Email: "raj@example.com", Password: "longenough"}, "")
	require.NoError(t, err)
	assert.Equal(t, "raj", reg.DisplayName)

	_, err = auth.Register(ctx, models.Credentials{Email: "raj@example.com", Password: "longenough"}, "Raj")
	assert.True(t, domain.IsConflict(err))

	_, err = auth.Register(ctx, models.Credentials{Email: "x@example.com", Password: "short"}, "")
	assert.True(t, domain.IsValidation(err))
}
