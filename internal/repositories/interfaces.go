package repositories

import (
	"context"

	"answerhub/internal/models"
)

// ===============================
// CORE REPOSITORY INTERFACES
// ===============================

// UserActivityCounts aggregates everything the reputation formula needs
// about a user in one round trip.
type UserActivityCounts struct {
	Questions       int `json:"questions"`
	Answers         int `json:"answers"`
	AcceptedAnswers int `json:"accepted_answers"`
	// PositiveVotes is the sum of all +1 votes received across the
	// user's questions and answers. Downvotes are not counted.
	PositiveVotes int `json:"positive_votes"`
}

// UserRepository defines the contract for user data operations.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByUsername(ctx context.Context, username string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context, params models.PaginationParams, search string) (*models.PaginatedResponse[*models.User], error)

	// Reputation support
	GetActivityCounts(ctx context.Context, userID int64) (*UserActivityCounts, error)
	UpdateReputation(ctx context.Context, userID int64, score int, tier models.BadgeTier) error
	IncrementProfileViews(ctx context.Context, userID int64) error
	GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error)

	Count(ctx context.Context) (int64, error)
}

// QuestionRepository defines the contract for question data operations.
type QuestionRepository interface {
	// Create inserts the question and attaches tags, creating missing
	// tags by name, all within one transaction.
	Create(ctx context.Context, question *models.Question, tagNames []string) error
	GetByID(ctx context.Context, id int64) (*models.Question, error)
	Exists(ctx context.Context, id int64) (bool, error)
	Delete(ctx context.Context, id int64) error

	List(ctx context.Context, params models.PaginationParams, tag, search string) (*models.PaginatedResponse[*models.Question], error)
	GetByUserID(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Question], error)

	Count(ctx context.Context) (int64, error)
	CountUnanswered(ctx context.Context) (int64, error)
}

// AnswerRepository defines the contract for answer data operations.
type AnswerRepository interface {
	Create(ctx context.Context, answer *models.Answer) error
	GetByID(ctx context.Context, id int64) (*models.Answer, error)
	Exists(ctx context.Context, id int64) (bool, error)

	// GetByQuestionID returns all answers for a question with their vote
	// sums, in insertion order.
	GetByQuestionID(ctx context.Context, questionID int64) ([]*models.Answer, error)
	GetByUserID(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Answer], error)

	// AcceptExclusive clears is_accepted on every answer of the question
	// and sets it on answerID, inside a single transaction.
	AcceptExclusive(ctx context.Context, questionID, answerID int64) error

	Count(ctx context.Context) (int64, error)
	CountAccepted(ctx context.Context) (int64, error)
}

// VoteRepository defines the contract for vote data operations.
type VoteRepository interface {
	// Upsert inserts the vote or overwrites the value of the existing
	// row for (user, target) in a single atomic statement.
	Upsert(ctx context.Context, vote *models.Vote) error
	GetByUserAndTarget(ctx context.Context, userID int64, target models.VoteTarget) (*models.Vote, error)

	// SumForTarget recomputes the aggregate by summing the vote rows of
	// the target. There is no cached counter.
	SumForTarget(ctx context.Context, target models.VoteTarget) (int, error)
}

// TagRepository defines the contract for tag data operations.
type TagRepository interface {
	GetOrCreate(ctx context.Context, name string) (*models.Tag, error)
	ListWithCounts(ctx context.Context) ([]*models.Tag, error)
	Count(ctx context.Context) (int64, error)
}

// BadgeRepository defines the contract for badge data operations.
type BadgeRepository interface {
	List(ctx context.Context) ([]*models.Badge, error)
	GetUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error)

	// Award grants the badge unless already held; reports whether a new
	// row was written.
	Award(ctx context.Context, userID, badgeID int64) (bool, error)

	Count(ctx context.Context) (int64, error)
	CountAwarded(ctx context.Context) (int64, error)
}

// SessionRepository defines the contract for session data operations.
type SessionRepository interface {
	Create(ctx context.Context, session *models.Session) error
	GetByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteByToken(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}
