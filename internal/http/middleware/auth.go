package middleware

import (
	"net/http"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"

	"github.com/gin-gonic/gin"
)

const principalKey = "principal"

// TokenVerifier turns a bearer token into a principal.
type TokenVerifier func(token string) (models.Principal, error)

// AuthOptional attaches the principal of a valid bearer token. Requests
// without a token pass through; a token that fails verification is rejected.
func AuthOptional(verify TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := strings.TrimSpace(c.GetHeader("Authorization"))
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			abortUnauthorized(c, "malformed authorization header")
			return
		}
		p, err := verify(strings.TrimSpace(token))
		if err != nil {
			abortUnauthorized(c, err.Error())
			return
		}
		c.Set(principalKey, p)
		c.Next()
	}
}

// RequireAuth rejects requests that carry no principal.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := GetPrincipal(c); !ok {
			abortUnauthorized(c, "sign in required")
			return
		}
		c.Next()
	}
}

func GetPrincipal(c *gin.Context) (models.Principal, bool) {
	if c == nil {
		return models.Principal{}, false
	}
	v, ok := c.Get(principalKey)
	if !ok {
		return models.Principal{}, false
	}
	p, ok := v.(models.Principal)
	return p, ok
}

func abortUnauthorized(c *gin.Context, msg string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
		"error":      msg,
		"code":       "unauthorized",
		"request_id": GetRequestID(c),
	})
}
