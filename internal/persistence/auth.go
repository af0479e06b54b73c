package persistence

import (
	"context"
	"strings"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

// Authenticator resolves credentials to a principal.
type Authenticator interface {
	SignIn(ctx context.Context, creds models.Credentials) (models.Principal, error)
	Register(ctx context.Context, creds models.Credentials, displayName string) (models.Principal, error)
}

// DemoPrincipal is the fixed identity of the local backend.
var DemoPrincipal = models.Principal{
	UID:         "mock-user-123",
	DisplayName: "Demo Traveller",
	Email:       "demo@ivplanner.app",
}

// LocalAuthenticator signs everyone in as DemoPrincipal after Delay.
type LocalAuthenticator struct {
	Delay time.Duration
}

func (a LocalAuthenticator) wait(ctx context.Context) error {
	if a.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(a.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func (a LocalAuthenticator) SignIn(ctx context.Context, _ models.Credentials) (models.Principal, error) {
	if err := a.wait(ctx); err != nil {
		return models.Principal{}, err
	}
	return DemoPrincipal, nil
}

func (a LocalAuthenticator) Register(ctx context.Context, creds models.Credentials, _ string) (models.Principal, error) {
	return a.SignIn(ctx, creds)
}

// UserStore is the account lookup the cloud authenticator needs.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (repositories.UserAccount, error)
	Create(ctx context.Context, acc repositories.UserAccount) (repositories.UserAccount, error)
}

// CloudAuthenticator checks email and password against stored bcrypt hashes.
type CloudAuthenticator struct {
	Users UserStore
}

var errBadCredentials = domain.UnauthorizedError{Msg: "invalid email or password"}

func (a CloudAuthenticator) SignIn(ctx context.Context, creds models.Credentials) (models.Principal, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || creds.Password == "" {
		return models.Principal{}, domain.ValidationError{Field: "credentials", Msg: "email and password are required"}
	}

	acc, err := a.Users.FindByEmail(ctx, email)
	if domain.IsNotFound(err) {
		return models.Principal{}, errBadCredentials
	}
	if err != nil {
		return models.Principal{}, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(acc.PasswordHash), []byte(creds.Password)); err != nil {
		return models.Principal{}, errBadCredentials
	}
	return principalFromAccount(acc), nil
}

func (a CloudAuthenticator) Register(ctx context.Context, creds models.Credentials, displayName string) (models.Principal, error) {
	email := strings.TrimSpace(creds.Email)
	if email == "" || len(creds.Password) < 8 {
		return models.Principal{}, domain.ValidationError{Field: "credentials", Msg: "email and a password of at least 8 characters are required"}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(creds.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.Principal{}, domain.InternalError{Msg: "hash password", Err: err}
	}
	if strings.TrimSpace(displayName) == "" {
		displayName = strings.SplitN(email, "@", 2)[0]
	}

	acc, err := a.Users.Create(ctx, repositories.UserAccount{
		Email:        email,
		DisplayName:  strings.TrimSpace(displayName),
		PasswordHash: string(hash),
	})
	if err != nil {
		return models.Principal{}, err
	}
	return principalFromAccount(acc), nil
}

func principalFromAccount(acc repositories.UserAccount) models.Principal {
	return models.Principal{
		UID:         acc.ID.Hex(),
		DisplayName: acc.DisplayName,
		Email:       acc.Email,
		PhotoURL:    acc.PhotoURL,
	}
}
