package questions

import (
	"encoding/json"
	"net/http"
	"strconv"

	"answerhub/internal/contextutils"
	"answerhub/internal/models"
	"answerhub/internal/response"
	"answerhub/internal/services"

	"go.uber.org/zap"
)

// Controller handles question API endpoints, including votes and answers
// scoped to a question.
type Controller struct {
	services *services.Collection
	builder  *response.Builder
	logger   *zap.Logger
}

// NewController creates a new question API controller.
func NewController(services *services.Collection, builder *response.Builder, logger *zap.Logger) *Controller {
	return &Controller{
		services: services,
		builder:  builder,
		logger:   logger,
	}
}

// List handles GET /api/v1/questions.
func (c *Controller) List(w http.ResponseWriter, r *http.Request) {
	params := parsePagination(r)
	filters := services.QuestionListFilters{
		Tag:    r.URL.Query().Get("tag"),
		Search: r.URL.Query().Get("q"),
	}

	result, err := c.services.Question.List(r.Context(), params, filters)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// Create handles POST /api/v1/questions.
func (c *Controller) Create(w http.ResponseWriter, r *http.Request) {
	var req services.CreateQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.Error(w, r, services.NewValidationError("invalid JSON body", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	question, err := c.services.Question.Create(r.Context(), userID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Created(w, r, question)
}

// Get handles GET /api/v1/questions/{id}.
func (c *Controller) Get(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, c.builder, "id")
	if !ok {
		return
	}

	detail, err := c.services.Question.GetDetail(r.Context(), questionID)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, detail)
}

// Delete handles DELETE /api/v1/questions/{id}.
func (c *Controller) Delete(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, c.builder, "id")
	if !ok {
		return
	}

	userID := contextutils.GetUserID(r.Context())
	if err := c.services.Question.Delete(r.Context(), userID, questionID); err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.NoContent(w, r)
}

// CreateAnswer handles POST /api/v1/questions/{id}/answers.
func (c *Controller) CreateAnswer(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, c.builder, "id")
	if !ok {
		return
	}

	var req services.CreateAnswerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		c.builder.Error(w, r, services.NewValidationError("invalid JSON body", err))
		return
	}

	userID := contextutils.GetUserID(r.Context())
	answer, err := c.services.Answer.Create(r.Context(), userID, questionID, &req)
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Created(w, r, answer)
}

// Vote handles POST /api/v1/questions/{id}/vote.
func (c *Controller) Vote(w http.ResponseWriter, r *http.Request) {
	questionID, ok := pathID(w, r, c.builder, "id")
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
		QuestionID: &questionID,
		Value:      body.Value,
	})
	if err != nil {
		c.builder.Error(w, r, err)
		return
	}
	c.builder.Success(w, r, result)
}

// pathID parses a positive integer path value, writing a validation
// error on failure.
func pathID(w http.ResponseWriter, r *http.Request, builder *response.Builder, name string) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil || id <= 0 {
		builder.Error(w, r, services.NewValidationError("invalid "+name+" path parameter", err))
		return 0, false
	}
	return id, true
}

func parsePagination(r *http.Request) models.PaginationParams {
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
