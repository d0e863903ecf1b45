package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"answerhub/internal/cache"
	"answerhub/internal/models"
	"answerhub/internal/repositories"
	"answerhub/internal/validation"

	"go.uber.org/zap"
)

// listCacheTTL bounds staleness of cached question pages.
const listCacheTTL = 30 * time.Second

// questionService implements QuestionService.
type questionService struct {
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	cache        cache.Cache
	logger       *zap.Logger
}

// NewQuestionService creates a new instance of QuestionService.
func NewQuestionService(
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	cache cache.Cache,
	logger *zap.Logger,
) QuestionService {
	return &questionService{
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Create posts a new question with its tags. Tag names are normalized to
// lowercase and deduplicated.
func (s *questionService) Create(ctx context.Context, userID int64, req *CreateQuestionRequest) (*models.Question, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	question := &models.Question{
		UserID:  userID,
		Title:   strings.TrimSpace(req.Title),
		Content: req.Content,
	}
	if err := s.questionRepo.Create(ctx, question, req.Tags); err != nil {
		s.logger.Error("Failed to create question",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
		return nil, NewInternalError("Failed to create question", err)
	}

	s.invalidateListings(ctx)
	return question, nil
}

// GetDetail returns the question with its answers in display order.
func (s *questionService) GetDetail(ctx context.Context, questionID int64) (*QuestionDetail, error) {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return nil, NewNotFoundError("question")
	}

	answers, err := s.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, NewInternalError("Failed to load answers", err)
	}
	RankAnswers(answers)

	return &QuestionDetail{
		Question: question,
		Answers:  answers,
	}, nil
}

// List returns a page of questions, optionally filtered by tag or a
// search term matched against title, content and tag names. Pages are
// cached briefly and invalidated on any write.
func (s *questionService) List(ctx context.Context, params models.PaginationParams, filters QuestionListFilters) (*models.PaginatedResponse[*models.Question], error) {
	params.Normalize()
	tag := strings.ToLower(strings.TrimSpace(filters.Tag))
	search := strings.TrimSpace(filters.Search)

	cacheKey := fmt.Sprintf("questions:list:%d:%d:%s:%s", params.Page, params.PageSize, tag, search)
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, cacheKey); ok {
			var cached models.PaginatedResponse[*models.Question]
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	result, err := s.questionRepo.List(ctx, params, tag, search)
	if err != nil {
		return nil, NewInternalError("Failed to list questions", err)
	}

	if s.cache != nil {
		if data, err := json.Marshal(result); err == nil {
			if err := s.cache.Set(ctx, cacheKey, data, listCacheTTL); err != nil {
				s.logger.Warn("Failed to cache question listing", zap.Error(err))
			}
		}
	}
	return result, nil
}

// Delete removes a question. Only the author may delete it.
func (s *questionService) Delete(ctx context.Context, userID, questionID int64) error {
	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return NewNotFoundError("question")
	}
	if question.UserID != userID {
		return NewForbiddenError("only the question author can delete it")
	}

	if err := s.questionRepo.Delete(ctx, questionID); err != nil {
		return NewInternalError("Failed to delete question", err)
	}

	s.invalidateListings(ctx)
	return nil
}

func (s *questionService) invalidateListings(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeletePattern(ctx, "questions:*"); err != nil {
		s.logger.Warn("Failed to invalidate question cache", zap.Error(err))
	}
}
