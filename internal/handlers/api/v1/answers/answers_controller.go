package answers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"answerhub/internal/contextutils"
	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles answer API endpoints.
type Controller struct {
	services *services.Collection
	builder  *response.Builder
	logger   *zap.Logger
}

// NewController creates a new answer API controller.
func NewController(services *services.Collection, builder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{
		services: services,
		builder:  builder,
		logger:   logger,
	}
}

// Vote handles POST /api/v1/answers/{id}/vote.
func (c *Controller) Vote(w http.ResponseWriter, r *http.Request) {
	answerID, ok := c.pathID(w, r)
	if !ok {
		return
	}

	var body struct {
		Value int `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		c.builder.Error(w, r, services.NewValidationError("invalid JSON body", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	result, err := c.services.Vote.CastVote(r.Context(), userID, &services.CastVoteRequest{
		AnswerID: &answerID,
		Value:    body.Value,
	})
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// Accept handles POST /api/v1/answers/{id}/accept.
func (c *Controller) Accept(w http.ResponseWriter, r *http.Request) {
	answerID, ok := c.pathID(w, r)
	if !ok {
		return
	}

	userID := contextutils.GetUserID(r.Context())
	answer, err := c.services.Answer.Accept(r.Context(), userID, answerID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, answer)
}

func (c *Controller) pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		c.builder.Error(w, r, services.NewValidationError("invalid id path parameter", err))
		return 0, false
	}
	return id, true
}
