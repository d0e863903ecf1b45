package services

import (
	"context"
	"database/sql"
	"errors"

	"answerhub/internal/models"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

// Reputation point weights per activity kind.
const (
	pointsPerQuestion       = 5
	pointsPerAnswer         = 10
	pointsPerAcceptedAnswer = 15
	pointsPerPositiveVote   = 2
	baseReputation          = 1
)

// reputationService implements ReputationService.
type reputationService struct {
	userRepo  repositories.UserRepository
	badgeRepo repositories.BadgeRepository
	logger    *zap.Logger
}

// NewReputationService creates a new instance of ReputationService.
func NewReputationService(
	userRepo repositories.UserRepository,
	badgeRepo repositories.BadgeRepository,
	logger *zap.Logger,
) ReputationService {
	return &reputationService{
		userRepo:  userRepo,
		badgeRepo: badgeRepo,
		logger:    logger,
	}
}

// ReputationScore computes the reputation score from activity counts.
// Only positive votes received contribute; downvotes received do not
// subtract points. The score never drops below one.
func ReputationScore(counts repositories.UserActivityCounts) int {
	score := baseReputation +
		counts.Questions*pointsPerQuestion +
		counts.Answers*pointsPerAnswer +
		counts.AcceptedAnswers*pointsPerAcceptedAnswer +
		counts.PositiveVotes*pointsPerPositiveVote
	if score < 1 {
		score = 1
	}
	return score
}

// Recompute derives the user's reputation from their current activity
// and persists the score and badge tier back to the user row. The
// stored value is a cache of this derivation, never an incrementally
// maintained counter, so drift cannot accumulate.
func (s *reputationService) Recompute(ctx context.Context, userID int64) (*ReputationBreakdown, error) {
	counts, err := s.userRepo.GetActivityCounts(ctx, userID)
	if err != nil {
		return nil, NewInternalError("Failed to load activity counts", err)
	}

	score := ReputationScore(*counts)
	tier := models.TierForScore(score)

	if err := s.userRepo.UpdateReputation(ctx, userID, score, tier); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, NewNotFoundError("user")
		}
		return nil, NewInternalError("Failed to update reputation", err)
	}

	s.logger.Debug("Reputation recomputed",
		zap.Int64("user_id", userID),
		zap.Int("score", score),
		zap.String("tier", string(tier)),
	)

	return &ReputationBreakdown{
		UserID:          userID,
		Questions:       counts.Questions,
		Answers:         counts.Answers,
		AcceptedAnswers: counts.AcceptedAnswers,
		PositiveVotes:   counts.PositiveVotes,
		Score:           score,
		Tier:            tier,
	}, nil
}

// CheckAndAwardBadges evaluates every badge definition against the
// user's current activity and grants any newly met ones. Returns the
// badges awarded by this call.
func (s *reputationService) CheckAndAwardBadges(ctx context.Context, userID int64) ([]*models.Badge, error) {
	counts, err := s.userRepo.GetActivityCounts(ctx, userID)
	if err != nil {
		return nil, NewInternalError("Failed to load activity counts", err)
	}
	score := ReputationScore(*counts)

	badges, err := s.badgeRepo.List(ctx)
	if err != nil {
		return nil, NewInternalError("Failed to load badges", err)
	}

	var awarded []*models.Badge
	for _, badge := range badges {
		var have int
		switch badge.CriteriaType {
		case models.BadgeCriteriaQuestions:
			have = counts.Questions
		case models.BadgeCriteriaAnswers:
			have = counts.Answers
		case models.BadgeCriteriaVotes:
			have = counts.PositiveVotes
		case models.BadgeCriteriaReputation:
			have = score
		default:
			continue
		}
		if have < badge.CriteriaValue {
			continue
		}

		granted, err := s.badgeRepo.Award(ctx, userID, badge.ID)
		if err != nil {
			return nil, NewInternalError("Failed to award badge", err)
		}
		if granted {
			awarded = append(awarded, badge)
		}
	}
	return awarded, nil
}
