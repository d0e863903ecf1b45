package models

import "time"

// BadgeTier is the reputation level shown next to a user's name.
type BadgeTier string

const (
	TierBeginner     BadgeTier = "Beginner"
	TierApprentice   BadgeTier = "Apprentice"
	TierIntermediate BadgeTier = "Intermediate"
	TierAdvanced     BadgeTier = "Advanced"
	TierExpert       BadgeTier = "Expert"
)

// TierForScore maps a reputation score to its badge tier. Thresholds are
// inclusive lower bounds and the highest matching tier wins.
func TierForScore(score int) BadgeTier {
	switch {
	case score >= 1000:
		return TierExpert
	case score >= 500:
		return TierAdvanced
	case score >= 100:
		return TierIntermediate
	case score >= 50:
		return TierApprentice
	default:
		return TierBeginner
	}
}

// Badge criteria types. The criteria value is the threshold the matching
// activity counter must reach.
const (
	BadgeCriteriaQuestions  = "questions"
	BadgeCriteriaAnswers    = "answers"
	BadgeCriteriaVotes      = "votes"
	BadgeCriteriaReputation = "reputation"
)

// Badge represents an achievement badge that users can earn by reaching
// certain milestones.
type Badge struct {
	ID            int64     `json:"id" db:"id"`
	Name          string    `json:"name" db:"name" validate:"required,max=100"`
	Description   string    `json:"description" db:"description"`
	CriteriaType  string    `json:"criteria_type" db:"criteria_type" validate:"required,oneof=questions answers votes reputation"`
	CriteriaValue int       `json:"criteria_value" db:"criteria_value" validate:"min=1"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// UserBadge joins a user to a badge they earned. Unique per (user, badge).
type UserBadge struct {
	ID       int64     `json:"id" db:"id"`
	UserID   int64     `json:"user_id" db:"user_id"`
	BadgeID  int64     `json:"badge_id" db:"badge_id"`
	EarnedAt time.Time `json:"earned_at" db:"earned_at"`

	// Badge details (joined)
	Name        string `json:"name,omitempty" db:"-"`
	Description string `json:"description,omitempty" db:"-"`
}
