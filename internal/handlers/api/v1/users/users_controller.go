package users

import (
	"net/http"
	"strconv"

	"answerhub/internal/contextutils"
	"answerhub/internal/models"
	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles user and leaderboard API endpoints.
type Controller struct {
	services *services.Collection
	builder  *response.Builder
	logger   *zap.Logger
}

// NewController creates a new user API controller.
func NewController(services *services.Collection, builder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{
		services: services,
		builder:  builder,
		logger:   logger,
	}
}

// List handles GET /api/v1/users.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	result, err := c.services.User.List(r.Context(), c.pagination(r), r.URL.Query().Get("q"))
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// GetProfile handles GET /api/v1/users/{id}.
func (c *Controller) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.pathID(w, r)
	if !ok {
		return
	}

	profile, err := c.services.User.GetProfile(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, profile)
}

// Me handles GET /api/v1/users/me, the authenticated user's own profile.
func (c *Controller) Me(w http.ResponseWriter, r *http.Request) {
	userID := contextutils.GetUserID(r.Context())

	profile, err := c.services.User.GetProfile(r.Context(), userID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, profile)
}

// Questions handles GET /api/v1/users/{id}/questions.
func (c *Controller) Questions(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.pathID(w, r)
	if !ok {
		return
	}

	result, err := c.services.User.QuestionsByUser(r.Context(), userID, c.pagination(r))
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// Answers handles GET /api/v1/users/{id}/answers.
func (c *Controller) Answers(w http.ResponseWriter, r *http.Request) {
	userID, ok := c.pathID(w, r)
	if !ok {
		return
	}

	result, err := c.services.User.AnswersByUser(r.Context(), userID, c.pagination(r))
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// Leaderboard handles GET /api/v1/stats/leaderboard.
func (c *Controller) Leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	users, err := c.services.User.Leaderboard(r.Context(), limit)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, users)
}

func (c *Controller) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		c.builder.Error(w, r, services.NewValidationError("invalid id path parameter", err))
		return 0, false
	}
	return id, true
}

func (c *Controller) pagination(r *http.Request) models.PaginationParams {
	params := models.PaginationParams{}
	if page, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil {
		params.Page = page
	}
	if size, err := strconv.Atoi(r.URL.Query().Get("page_size")); err == nil {
		params.PageSize = size
	}
	params.Normalize()
	return params
}
