package services

import (
	"context"

	"answerhub/internal/models"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

const defaultLeaderboardLimit = 10

// userService implements UserService.
type userService struct {
	userRepo     repositories.UserRepository
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	badgeRepo    repositories.BadgeRepository
	reputation   ReputationService
	logger       *zap.Logger
}

// NewUserService creates a new instance of UserService.
func NewUserService(
	userRepo repositories.UserRepository,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	badgeRepo repositories.BadgeRepository,
	reputation ReputationService,
	logger *zap.Logger,
) UserService {
	return &userService{
		userRepo:     userRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		badgeRepo:    badgeRepo,
		reputation:   reputation,
		logger:       logger,
	}
}

// GetProfile returns a user's profile with their recent activity and
// badges. Viewing a profile bumps its view counter and refreshes the
// stored reputation from current activity, so the displayed score is
// never stale.
func (s *userService) GetProfile(ctx context.Context, userID int64) (*UserProfile, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, NewInternalError("Failed to load user", err)
	}
	if user == nil {
		return nil, NewNotFoundError("user")
	}

	if err := s.userRepo.IncrementProfileViews(ctx, userID); err != nil {
		s.logger.Warn("Failed to bump profile views",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	breakdown, err := s.reputation.Recompute(ctx, userID)
	if err != nil {
		return nil, err
	}
	user.Reputation = breakdown.Score
	user.BadgeTier = breakdown.Tier
	user.QuestionsCount = breakdown.Questions
	user.AnswersCount = breakdown.Answers
	user.AcceptedAnswersCount = breakdown.AcceptedAnswers

	if _, err := s.reputation.CheckAndAwardBadges(ctx, userID); err != nil {
		s.logger.Warn("Failed to evaluate badges",
			zap.Int64("user_id", userID),
			zap.Error(err),
		)
	}

	recentParams := models.PaginationParams{Page: 1, PageSize: 5}
	questions, err := s.questionRepo.GetByUserID(ctx, userID, recentParams)
	if err != nil {
		return nil, NewInternalError("Failed to load user questions", err)
	}
	answers, err := s.answerRepo.GetByUserID(ctx, userID, recentParams)
	if err != nil {
		return nil, NewInternalError("Failed to load user answers", err)
	}
	badges, err := s.badgeRepo.GetUserBadges(ctx, userID)
	if err != nil {
		return nil, NewInternalError("Failed to load user badges", err)
	}

	return &UserProfile{
		User:      user,
		Questions: questions.Data,
		Answers:   answers.Data,
		Badges:    badges,
	}, nil
}

// List returns a page of users, optionally matched by username.
func (s *userService) List(ctx context.Context, params models.PaginationParams, search string) (*models.PaginatedResponse[*models.User], error) {
	params.Normalize()
	result, err := s.userRepo.List(ctx, params, search)
	if err != nil {
		return nil, NewInternalError("Failed to list users", err)
	}
	return result, nil
}

// QuestionsByUser returns a page of the user's questions, newest first.
func (s *userService) QuestionsByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Question], error) {
	params.Normalize()
	result, err := s.questionRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, NewInternalError("Failed to load user questions", err)
	}
	return result, nil
}

// AnswersByUser returns a page of the user's answers, newest first.
func (s *userService) AnswersByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Answer], error) {
	params.Normalize()
	result, err := s.answerRepo.GetByUserID(ctx, userID, params)
	if err != nil {
		return nil, NewInternalError("Failed to load user answers", err)
	}
	return result, nil
}

// Leaderboard returns the top users by stored reputation.
func (s *userService) Leaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultLeaderboardLimit
	}
	users, err := s.userRepo.GetLeaderboard(ctx, limit)
	if err != nil {
		return nil, NewInternalError("Failed to load leaderboard", err)
	}
	return users, nil
}
