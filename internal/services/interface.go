package services

import (
	"context"

	"answerhub/internal/models"
)

// AuthService handles registration, login and session lookup.
type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*AuthResponse, error)
	Login(ctx context.Context, req *LoginRequest) (*AuthResponse, error)
	Logout(ctx context.Context, sessionToken string) error
	UserFromSession(ctx context.Context, sessionToken string) (*models.User, error)
	UserFromJWT(ctx context.Context, token string) (*models.User, error)
}

// QuestionService handles question creation, retrieval and listing.
type QuestionService interface {
	Create(ctx context.Context, userID int64, req *CreateQuestionRequest) (*models.Question, error)
	GetDetail(ctx context.Context, questionID int64) (*QuestionDetail, error)
	List(ctx context.Context, params models.PaginationParams, filters QuestionListFilters) (*models.PaginatedResponse[*models.Question], error)
	Delete(ctx context.Context, userID, questionID int64) error
}

// AnswerService handles answer creation, acceptance and ranking.
type AnswerService interface {
	Create(ctx context.Context, userID, questionID int64, req *CreateAnswerRequest) (*models.Answer, error)
	Accept(ctx context.Context, userID, answerID int64) (*models.Answer, error)
	RankedForQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error)
}

// VoteService records votes and reports aggregates.
type VoteService interface {
	CastVote(ctx context.Context, userID int64, req *CastVoteRequest) (*VoteResult, error)
}

// ReputationService recomputes reputation and awards badges.
type ReputationService interface {
	Recompute(ctx context.Context, userID int64) (*ReputationBreakdown, error)
	CheckAndAwardBadges(ctx context.Context, userID int64) ([]*models.Badge, error)
}

// UserService serves profiles, per-user activity listings and
// leaderboards.
type UserService interface {
	GetProfile(ctx context.Context, userID int64) (*UserProfile, error)
	List(ctx context.Context, params models.PaginationParams, search string) (*models.PaginatedResponse[*models.User], error)
	QuestionsByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Question], error)
	AnswersByUser(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Answer], error)
	Leaderboard(ctx context.Context, limit int) ([]*models.User, error)
}

// TagService lists tags.
type TagService interface {
	ListWithCounts(ctx context.Context) ([]*models.Tag, error)
}

// StatsService reports platform totals.
type StatsService interface {
	PlatformStats(ctx context.Context) (*PlatformStats, error)
}
