package services

import "answerhub/internal/models"

// ===============================
// REQUEST TYPES
// ===============================

// RegisterRequest carries the fields for creating an account.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8,max=72"`
}

// LoginRequest carries login credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// CreateQuestionRequest carries the fields for posting a question.
type CreateQuestionRequest struct {
	Title   string   `json:"title" validate:"required,min=10,max=255"`
	Content string   `json:"content" validate:"required,min=20"`
	Tags    []string `json:"tags" validate:"max=5,dive,min=1,max=30"`
}

// CreateAnswerRequest carries the fields for posting an answer.
type CreateAnswerRequest struct {
	Content string `json:"content" validate:"required,min=10"`
}

// CastVoteRequest carries a vote submission. Value must be +1 or -1 and
// exactly one of QuestionID and AnswerID must be set.
type CastVoteRequest struct {
	QuestionID *int64 `json:"question_id,omitempty"`
	AnswerID   *int64 `json:"answer_id,omitempty"`
	Value      int    `json:"value" validate:"required"`
}

// Target converts the request's nullable IDs into a tagged vote target.
func (r *CastVoteRequest) Target() (models.VoteTarget, error) {
	switch {
	case r.QuestionID != nil && r.AnswerID != nil:
		return models.VoteTarget{}, NewValidationError("vote must target a question or an answer, not both", nil)
	case r.QuestionID != nil:
		return models.QuestionTarget(*r.QuestionID), nil
	case r.AnswerID != nil:
		return models.AnswerTarget(*r.AnswerID), nil
	default:
		return models.VoteTarget{}, NewValidationError("vote must target a question or an answer", nil)
	}
}

// QuestionListFilters narrows question listings.
type QuestionListFilters struct {
	Tag    string
	Search string
}

// ===============================
// RESPONSE TYPES
// ===============================

// AuthResponse is returned on successful register or login.
type AuthResponse struct {
	User         *models.User `json:"user"`
	Token        string       `json:"token"`
	SessionToken string       `json:"session_token"`
}

// VoteResult reports the state of a target after a vote lands.
type VoteResult struct {
	Target  models.VoteTarget `json:"target"`
	Value   int               `json:"value"`
	VoteSum int               `json:"vote_sum"`
}

// QuestionDetail is a question with its answers in display order.
type QuestionDetail struct {
	Question *models.Question `json:"question"`
	Answers  []*models.Answer `json:"answers"`
}

// UserProfile is a user with activity counts and earned badges.
type UserProfile struct {
	User      *models.User        `json:"user"`
	Questions []*models.Question  `json:"questions"`
	Answers   []*models.Answer    `json:"answers"`
	Badges    []*models.UserBadge `json:"badges"`
}

// ReputationBreakdown itemizes a user's recomputed reputation.
type ReputationBreakdown struct {
	UserID          int64            `json:"user_id"`
	Questions       int              `json:"questions"`
	Answers         int              `json:"answers"`
	AcceptedAnswers int              `json:"accepted_answers"`
	PositiveVotes   int              `json:"positive_votes"`
	Score           int              `json:"score"`
	Tier            models.BadgeTier `json:"tier"`
}

// PlatformStats summarizes sitewide activity.
type PlatformStats struct {
	Users               int64         `json:"users"`
	Questions           int64         `json:"questions"`
	Answers             int64         `json:"answers"`
	AcceptedAnswers     int64         `json:"accepted_answers"`
	UnansweredQuestions int64         `json:"unanswered_questions"`
	Tags                int64         `json:"tags"`
	BadgesAwarded       int64         `json:"badges_awarded"`
	TopTags             []*models.Tag `json:"top_tags"`
}
