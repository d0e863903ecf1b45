package auth

import (
	"encoding/json"
	"net/http"

	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles authentication API endpoints.
type Controller struct {
	services    *services.Collection
	builder     *response.Builder
	sessionName string
	logger      *zap.Logger
}

// NewController creates a new auth API controller.
func NewController(services *services.Collection, builder *response.Builder, sessionName string, logger *zap.Logger) *Controller {
	return &Controller{
		services:    services,
		builder:     builder,
		sessionName: sessionName,
		logger:      logger,
	}
}

// Register handles POST /api/v1/auth/register.
func (c *Controller) Register(w http.ResponseWriter, r *http.Request) {
	var req services.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.Error(w, r, services.NewValidationError("invalid JSON body", err))
		return
	}

	result, err := c.services.Auth.Register(r.Context(), &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Created(w, r, result)
}

// Login handles POST /api/v1/auth/login.
func (c *Controller) Login(w http.ResponseWriter, r *http.Request) {
	var req services.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.Error(w, r, services.NewValidationError("invalid JSON body", err))
		return
	}

	result, err := c.services.Auth.Login(r.Context(), &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// Logout handles POST /api/v1/auth/logout.
func (c *Controller) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get("X-Session-Token")
	if token == "" {
		if cookie, err := r.Cookie(c.sessionName); err == nil {
			token = cookie.Value
		}
	}
	if token == "" {
		c.builder.NoContent(w, r)
		return
	}

	if err := c.services.Auth.Logout(r.Context(), token); err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.NoContent(w, r)
}
