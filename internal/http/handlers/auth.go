package handlers

import (
	"net/http"
	"strings"

	"github.com/Omkar290703/Ai-IV-Planner/internal/domain/models"
	"github.com/Omkar290703/Ai-IV-Planner/internal/http/middleware"

	"github.com/gin-gonic/gin"
)

type loginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	SessionID string `json:"sessionId"`
}

type registerRequest struct {
	loginRequest
	DisplayName string `json:"displayName"`
}

type authResponse struct {
	Token string           `json:"token"`
	User  models.Principal `json:"user"`
}

// POST /api/auth/login
func Login(c *gin.Context) {
	var req loginRequest
	// the local backend needs no credentials, so an empty body is allowed
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	d := current()

	p, err := d.Store.SignIn(c.Request.Context(), models.Credentials{Email: req.Email, Password: req.Password})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	finishAuth(c, http.StatusOK, p, req.SessionID)
}

// POST /api/auth/register
func Register(c *gin.Context) {
	var req registerRequest
	if !BindJSONOrError(c, &req) {
		return
	}
	d := current()

	p, err := d.Store.Register(c.Request.Context(), models.Credentials{Email: req.Email, Password: req.Password}, req.DisplayName)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	finishAuth(c, http.StatusCreated, p, req.SessionID)
}

func finishAuth(c *gin.Context, status int, p models.Principal, sessionID string) {
	d := current()
	token, err := d.Store.IssueToken(p)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if sid := strings.TrimSpace(sessionID); sid != "" && d.Sessions != nil {
		if ctl, ok := d.Sessions.Get(sid); ok {
			ctl.UsePrincipal(c.Request.Context(), p)
		}
	}
	c.JSON(status, authResponse{Token: token, User: p})
}

// POST /api/auth/logout
func Logout(c *gin.Context) {
	var req struct {
		SessionID string `json:"sessionId"`
	}
	if c.Request.ContentLength > 0 && !BindJSONOrError(c, &req) {
		return
	}
	d := current()

	if sid := strings.TrimSpace(req.SessionID); sid != "" && d.Sessions != nil {
		if ctl, ok := d.Sessions.Get(sid); ok {
			ctl.SignOut(c.Request.Context())
			c.JSON(http.StatusOK, gin.H{"message": "signed out"})
			return
		}
	}
	if p, ok := middleware.GetPrincipal(c); ok {
		d.Store.SignOut(c.Request.Context(), p)
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}

// GET /api/auth/me
func Me(c *gin.Context) {
	p, _ := middleware.GetPrincipal(c)
	c.JSON(http.StatusOK, gin.H{"user": p})
}
