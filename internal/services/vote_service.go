package services

import (
	"context"

	"answerhub/internal/models"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

// voteService implements VoteService.
type voteService struct {
	voteRepo     repositories.VoteRepository
	questionRepo repositories.QuestionRepository
	answerRepo   repositories.AnswerRepository
	logger       *zap.Logger
}

// NewVoteService creates a new instance of VoteService.
func NewVoteService(
	voteRepo repositories.VoteRepository,
	questionRepo repositories.QuestionRepository,
	answerRepo repositories.AnswerRepository,
	logger *zap.Logger,
) VoteService {
	return &voteService{
		voteRepo:     voteRepo,
		questionRepo: questionRepo,
		answerRepo:   answerRepo,
		logger:       logger,
	}
}

// CastVote records a vote on a question or answer. Re-voting on the same
// target overwrites the previous value, so a user never holds more than
// one vote per target. Users may vote on their own posts.
func (s *voteService) CastVote(ctx context.Context, userID int64, req *CastVoteRequest) (*VoteResult, error) {
	if !models.ValidVoteValue(req.Value) {
		return nil, NewValidationError("vote value must be +1 or -1", nil)
	}

	target, err := req.Target()
	if err != nil {
		return nil, err
	}

	if err := s.checkTargetExists(ctx, target); err != nil {
		return nil, err
	}

	vote := &models.Vote{
		UserID: userID,
		Target: target,
		Value:  req.Value,
	}
	if err := s.voteRepo.Upsert(ctx, vote); err != nil {
		s.logger.Error("Failed to record vote",
			zap.Int64("user_id", userID),
			zap.String("target_kind", string(target.Kind)),
			zap.Int64("target_id", target.ID),
			zap.Error(err),
		)
		return nil, NewInternalError("Failed to record vote", err)
	}

	sum, err := s.voteRepo.SumForTarget(ctx, target)
	if err != nil {
		return nil, NewInternalError("Failed to compute vote sum", err)
	}

	return &VoteResult{
		Target:  target,
		Value:   req.Value,
		VoteSum: sum,
	}, nil
}

func (s *voteService) checkTargetExists(ctx context.Context, target models.VoteTarget) error {
	var (
		exists bool
		err    error
	)
	switch target.Kind {
	case models.VoteTargetQuestion:
		exists, err = s.questionRepo.Exists(ctx, target.ID)
	case models.VoteTargetAnswer:
		exists, err = s.answerRepo.Exists(ctx, target.ID)
	default:
		return NewValidationError("invalid vote target", nil)
	}
	if err != nil {
		return NewInternalError("Failed to check vote target", err)
	}
	if !exists {
		return NewNotFoundError(string(target.Kind))
	}
	return nil
}
