package persistence

import (
	"errors"
	"time"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain"
	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = 24 * time.Hour

// TokenIssuer signs principals into HS256 tokens.
type TokenIssuer struct {
	Secret []byte
	TTL    time.Duration
	Now    func() time.Time
}

func (t TokenIssuer) now() time.Time {
	if t.Now != nil {
		return t.Now()
	}
	return time.Now()
}

func (t TokenIssuer) Issue(p models.Principal) (string, error) {
	if len(t.Secret) == 0 {
		return "", domain.InternalError{Msg: "token secret not configured"}
	}
	ttl := t.TTL
	if ttl <= 0 {
		ttl = defaultTokenTTL
	}
	now := t.now()

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub":   p.UID,
		"name":  p.DisplayName,
		"email": p.Email,
		"photo": p.PhotoURL,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	})
	return token.SignedString(t.Secret)
}

func (t TokenIssuer) Verify(raw string) (models.Principal, error) {
	if len(t.Secret) == 0 {
		return models.Principal{}, domain.InternalError{Msg: "token secret not configured"}
	}

	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return t.Secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(t.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return models.Principal{}, domain.UnauthorizedError{Msg: "token expired", Err: err}
		}
		return models.Principal{}, domain.UnauthorizedError{Msg: "invalid token", Err: err}
	}

	p := models.Principal{
		UID:         claimString(claims, "sub"),
		DisplayName: claimString(claims, "name"),
		Email:       claimString(claims, "email"),
		PhotoURL:    claimString(claims, "photo"),
	}
	if p.UID == "" {
		return models.Principal{}, domain.UnauthorizedError{Msg: "invalid token"}
	}
	return p, nil
}

func claimString(c jwt.MapClaims, key string) string {
	s, _ := c[key].(string)
	return s
}
