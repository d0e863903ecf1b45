package models

import (
	"fmt"
	"time"
)

// ===============================
// CORE ENTITIES
// ===============================

// User represents a registered member of the platform.
type User struct {
	ID       int64  `json:"id" db:"id"`
	Username string `json:"username" db:"username" validate:"required,min=4,max=20,alphanum"`
	Email    string `json:"email" db:"email" validate:"required,email,max=320"`

	// Authentication
	PasswordHash string `json:"-" db:"password_hash"`

	// Derived fields, refreshed by reputation recompute. They hold the
	// values of the last recompute until the next profile view.
	Reputation   int       `json:"reputation" db:"reputation"`
	BadgeTier    BadgeTier `json:"badge_tier" db:"badge_tier"`
	ProfileViews int       `json:"profile_views" db:"profile_views"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Computed/joined fields (not in DB)
	QuestionsCount       int `json:"questions_count,omitempty" db:"-"`
	AnswersCount         int `json:"answers_count,omitempty" db:"-"`
	AcceptedAnswersCount int `json:"accepted_answers_count,omitempty" db:"-"`
}

// Question represents a question posted by a user.
type Question struct {
	ID      int64  `json:"id" db:"id"`
	UserID  int64  `json:"user_id" db:"user_id" validate:"required"`
	Title   string `json:"title" db:"title" validate:"required,max=200"`
	Content string `json:"content" db:"content" validate:"required"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Author information (joined)
	Username string `json:"username,omitempty" db:"-"`

	// Computed fields (not in DB)
	Tags         []string `json:"tags" db:"-"`
	AnswersCount int      `json:"answers_count" db:"-"`
	VoteSum      int      `json:"votes" db:"-"`
}

// Answer represents an answer to a question. For a given question at most
// one answer has IsAccepted set.
type Answer struct {
	ID         int64  `json:"id" db:"id"`
	QuestionID int64  `json:"question_id" db:"question_id" validate:"required"`
	UserID     int64  `json:"user_id" db:"user_id" validate:"required"`
	Content    string `json:"content" db:"content" validate:"required"`
	IsAccepted bool   `json:"is_accepted" db:"is_accepted"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`

	// Author information (joined)
	Username string `json:"username,omitempty" db:"-"`

	// Computed fields (not in DB)
	VoteSum int `json:"votes" db:"-"`
}

// Tag is a label attached to questions, unique by name.
type Tag struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name" validate:"required,max=50"`

	// Computed fields (not in DB)
	QuestionsCount int `json:"questions_count,omitempty" db:"-"`
}

// ===============================
// VOTING
// ===============================

// VoteTargetKind discriminates what a vote points at.
type VoteTargetKind string

const (
	VoteTargetQuestion VoteTargetKind = "question"
	VoteTargetAnswer   VoteTargetKind = "answer"
)

// VoteTarget identifies the single entity a vote applies to. The two
// nullable foreign keys in the votes table only exist at the repository
// boundary; everywhere else the target is this tagged pair, so a vote can
// never reference both a question and an answer.
type VoteTarget struct {
	Kind VoteTargetKind `json:"kind"`
	ID   int64          `json:"id"`
}

// QuestionTarget builds a vote target for a question.
func QuestionTarget(id int64) VoteTarget {
	return VoteTarget{Kind: VoteTargetQuestion, ID: id}
}

// AnswerTarget builds a vote target for an answer.
func AnswerTarget(id int64) VoteTarget {
	return VoteTarget{Kind: VoteTargetAnswer, ID: id}
}

// Validate checks the target references a known kind and a positive ID.
func (t VoteTarget) Validate() error {
	switch t.Kind {
	case VoteTargetQuestion, VoteTargetAnswer:
	default:
		return fmt.Errorf("unknown vote target kind %q", t.Kind)
	}
	if t.ID <= 0 {
		return fmt.Errorf("invalid vote target id %d", t.ID)
	}
	return nil
}

// Vote records a single signed vote by a user on one target. One row per
// (user, target); casting again overwrites the value.
type Vote struct {
	ID     int64      `json:"id" db:"id"`
	UserID int64      `json:"user_id" db:"user_id"`
	Target VoteTarget `json:"target" db:"-"`
	Value  int        `json:"value" db:"value"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// ValidVoteValue reports whether v is one of the two legal vote values.
func ValidVoteValue(v int) bool {
	return v == 1 || v == -1
}
