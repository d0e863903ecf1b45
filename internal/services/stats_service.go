package services

import (
	"context"
	"encoding/json"
	"time"

	"answerhub/internal/cache"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

const (
	statsCacheKey = "stats:platform"
	statsCacheTTL = time.Minute
	topTagCount   = 5
)

// statsService implements StatsService.
type statsService struct {
	userRepo     repositories.UserRepository
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	tagRepo      repositories.TagRepository
	badgeRepo    repositories.BadgeRepository
	cache        cache.Cache
	logger       *zap.Logger
}

// NewStatsService creates a new instance of StatsService.
func NewStatsService(
	userRepo repositories.UserRepository,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	tagRepo repositories.TagRepository,
	badgeRepo repositories.BadgeRepository,
	cache cache.Cache,
	logger *zap.Logger,
) StatsService {
	return &statsService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		tagRepo:      tagRepo,
		badgeRepo:    badgeRepo,
		cache:        cache,
		logger:       logger,
	}
}

// PlatformStats returns sitewide totals. The result is cached for a
// minute since these counts back a public landing page.
func (s *statsService) PlatformStats(ctx context.Context) (*PlatformStats, error) {
	if s.cache != nil {
		if data, ok := s.cache.Get(ctx, statsCacheKey); ok {
			var cached PlatformStats
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	stats := &PlatformStats{}
	var err error
	if stats.Users, err = s.userRepo.Count(ctx); err != nil {
		return nil, NewInternalError("Failed to count users", err)
	}
	if stats.Questions, err = s.questionRepo.Count(ctx); err != nil {
		return nil, NewInternalError("Failed to count questions", err)
	}
	if stats.Answers, err = s.answerRepo.Count(ctx); err != nil {
		return nil, NewInternalError("Failed to count answers", err)
	}
	if stats.AcceptedAnswers, err = s.answerRepo.CountAccepted(ctx); err != nil {
		return nil, NewInternalError("Failed to count accepted answers", err)
	}
	if stats.UnansweredQuestions, err = s.questionRepo.CountUnanswered(ctx); err != nil {
		return nil, NewInternalError("Failed to count unanswered questions", err)
	}
	if stats.Tags, err = s.tagRepo.Count(ctx); err != nil {
		return nil, NewInternalError("Failed to count tags", err)
	}
	if stats.BadgesAwarded, err = s.badgeRepo.CountAwarded(ctx); err != nil {
		return nil, NewInternalError("Failed to count awarded badges", err)
	}

	topTags, err := s.tagRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, NewInternalError("Failed to load tags", err)
	}
	if len(topTags) > topTagCount {
		topTags = topTags[:topTagCount]
	}
	stats.TopTags = topTags

	if s.cache != nil {
		if data, err := json.Marshal(stats); err == nil {
			if err := s.cache.Set(ctx, statsCacheKey, data, statsCacheTTL); err != nil {
				s.logger.Warn("Failed to cache platform stats", zap.Error(err))
			}
		}
	}
	return stats, nil
}
