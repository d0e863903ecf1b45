package services

import (
	"context"
	"sort"

	"answerhub/internal/models"
	"answerhub/internal/repositories"
	"answerhub/internal/validation"

	"go.uber.org/zap"
)

// answerService implements AnswerService.
type answerService struct {
	answerRepo   repositories.AnswerRepository
	questionRepo repositories.QuestionRepository
	logger       *zap.Logger
}

// NewAnswerService creates a new instance of AnswerService.
func NewAnswerService(
	answerRepo repositories.AnswerRepository,
	questionRepo repositories.QuestionRepository,
	logger *zap.Logger,
) AnswerService {
	return &answerService{
		answerRepo:   answerRepo,
		questionRepo: questionRepo,
		logger:       logger,
	}
}

// Create posts an answer to a question.
func (s *answerService) Create(ctx context.Context, userID, questionID int64, req *CreateAnswerRequest) (*models.Answer, error) {
	if err := validation.ValidateStruct(req); err != nil {
		return nil, NewValidationError(err.Error(), err)
	}

	exists, err := s.questionRepo.Exists(ctx, questionID)
	if err != nil {
		return nil, NewInternalError("Failed to check question", err)
	}
	if !exists {
		return nil, NewNotFoundError("question")
	}

	answer := &models.Answer{
		QuestionID: questionID,
		UserID:     userID,
		Content:    req.Content,
	}
	if err := s.answerRepo.Create(ctx, answer); err != nil {
		s.logger.Error("Failed to create answer",
			zap.Int64("user_id", userID),
			zap.Int64("question_id", questionID),
			zap.Error(err),
		)
		return nil, NewInternalError("Failed to create answer", err)
	}
	return answer, nil
}

// Accept marks the answer as the accepted one for its question. Only the
// question author may accept, and at most one answer per question holds
// the flag afterwards. Accepting an already accepted answer is a no-op
// that still succeeds.
func (s *answerService) Accept(ctx context.Context, userID, answerID int64) (*models.Answer, error) {
	answer, err := s.answerRepo.GetByID(ctx, answerID)
	if err != nil {
		return nil, NewInternalError("Failed to load answer", err)
	}
	if answer == nil {
		return nil, NewNotFoundError("answer")
	}

	question, err := s.questionRepo.GetByID(ctx, answer.QuestionID)
	if err != nil {
		return nil, NewInternalError("Failed to load question", err)
	}
	if question == nil {
		return nil, NewNotFoundError("question")
	}

	if question.UserID != userID {
		return nil, NewForbiddenError("only the question author can accept an answer")
	}

	if answer.IsAccepted {
		return answer, nil
	}

	if err := s.answerRepo.AcceptExclusive(ctx, answer.QuestionID, answerID); err != nil {
		s.logger.Error("Failed to accept answer",
			zap.Int64("question_id", answer.QuestionID),
			zap.Int64("answer_id", answerID),
			zap.Error(err),
		)
		return nil, NewInternalError("Failed to accept answer", err)
	}

	answer.IsAccepted = true
	s.logger.Info("Answer accepted",
		zap.Int64("question_id", answer.QuestionID),
		zap.Int64("answer_id", answerID),
	)
	return answer, nil
}

// RankedForQuestion returns the question's answers in display order: the
// accepted answer first, the rest by descending vote sum, ties in
// insertion order.
func (s *answerService) RankedForQuestion(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	answers, err := s.answerRepo.GetByQuestionID(ctx, questionID)
	if err != nil {
		return nil, NewInternalError("Failed to load answers", err)
	}
	RankAnswers(answers)
	return answers, nil
}

// RankAnswers sorts answers in place into display order. The sort is
// stable, so answers with equal vote sums keep their insertion order.
func RankAnswers(answers []*models.Answer) {
	sort.SliceStable(answers, func(i, j int) bool {
		if answers[i].IsAccepted != answers[j].IsAccepted {
			return answers[i].IsAccepted
		}
		return answers[i].VoteSum > answers[j].VoteSum
	})
}
