package services

import (
	"context"
	"testing"

	"answerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newVoteFixture(t *testing.T) (VoteService, *fakeVoteRepo, *fakeQuestionRepo, *fakeAnswerRepo) {
	t.Helper()
	voteRepo := newFakeVoteRepo()
	questionRepo := newFakeQuestionRepo()
	answerRepo := newFakeAnswerRepo()
	svc := NewVoteService(voteRepo, questionRepo, answerRepo, zap.NewNop())
	return svc, voteRepo, questionRepo, answerRepo
}

func seedQuestion(t *testing.T, repo *fakeQuestionRepo, userID int64) *models.Question {
	t.Helper()
	q := &models.Question{UserID: userID, Title: "How do I test this?", Content: "details"}
	require.NoError(t, repo.Create(context.Background(), q, nil))
	return q
}

func seedAnswer(t *testing.T, repo *fakeAnswerRepo, questionID, userID int64) *models.Answer {
	t.Helper()
	a := &models.Answer{QuestionID: questionID, UserID: userID, Content: "try this"}
	require.NoError(t, repo.Create(context.Background(), a), "seed answer")
	return a
}

func TestCastVote_RejectsInvalidValues(t *testing.T) {
	svc, _, questionRepo, _ := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 1)

	for _, value := range []int{0, 2, -2, 10} {
		_, err := svc.CastVote(context.Background(), 2, &CastVoteRequest{
			QuestionID: &q.ID,
			Value:      value,
		})
		require.Error(t, err, "value %d", value)
		assert.True(t, IsValidationError(err), "value %d", value)
	}
}

func TestCastVote_RejectsAmbiguousTarget(t *testing.T) {
	svc, _, questionRepo, answerRepo := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 1)
	a := seedAnswer(t, answerRepo, q.ID, 2)

	_, err := svc.CastVote(context.Background(), 3, &CastVoteRequest{
		QuestionID: &q.ID,
		AnswerID:   &a.ID,
		Value:      1,
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))

	_, err = svc.CastVote(context.Background(), 3, &CastVoteRequest{Value: 1})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCastVote_UnknownTargetNotFound(t *testing.T) {
	svc, _, _, _ := newVoteFixture(t)

	missing := int64(99)
	_, err := svc.CastVote(context.Background(), 1, &CastVoteRequest{
		QuestionID: &missing,
		Value:      1,
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))

	_, err = svc.CastVote(context.Background(), 1, &CastVoteRequest{
		AnswerID: &missing,
		Value:    -1,
	})
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestCastVote_RevoteOverwritesInsteadOfStacking(t *testing.T) {
	svc, voteRepo, questionRepo, _ := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 1)

	result, err := svc.CastVote(context.Background(), 2, &CastVoteRequest{QuestionID: &q.ID, Value: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteSum)

	// Same user flips to a downvote: the row is overwritten, not added.
	result, err = svc.CastVote(context.Background(), 2, &CastVoteRequest{QuestionID: &q.ID, Value: -1})
	require.NoError(t, err)
	assert.Equal(t, -1, result.VoteSum)
	assert.Equal(t, 1, voteRepo.rowCount(models.QuestionTarget(q.ID)))

	// Re-casting the same value is a harmless no-op.
	result, err = svc.CastVote(context.Background(), 2, &CastVoteRequest{QuestionID: &q.ID, Value: -1})
	require.NoError(t, err)
	assert.Equal(t, -1, result.VoteSum)
	assert.Equal(t, 1, voteRepo.rowCount(models.QuestionTarget(q.ID)))
}

func TestCastVote_SumAggregatesAcrossUsers(t *testing.T) {
	svc, _, questionRepo, answerRepo := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 1)
	a := seedAnswer(t, answerRepo, q.ID, 2)

	_, err := svc.CastVote(context.Background(), 10, &CastVoteRequest{AnswerID: &a.ID, Value: 1})
	require.NoError(t, err)
	_, err = svc.CastVote(context.Background(), 11, &CastVoteRequest{AnswerID: &a.ID, Value: 1})
	require.NoError(t, err)
	result, err := svc.CastVote(context.Background(), 12, &CastVoteRequest{AnswerID: &a.ID, Value: -1})
	require.NoError(t, err)

	assert.Equal(t, 1, result.VoteSum)
	assert.Equal(t, models.AnswerTarget(a.ID), result.Target)
}

func TestCastVote_SameUserVotesQuestionAndItsAnswerIndependently(t *testing.T) {
	svc, _, questionRepo, answerRepo := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 1)
	a := seedAnswer(t, answerRepo, q.ID, 2)

	qResult, err := svc.CastVote(context.Background(), 5, &CastVoteRequest{QuestionID: &q.ID, Value: 1})
	require.NoError(t, err)
	aResult, err := svc.CastVote(context.Background(), 5, &CastVoteRequest{AnswerID: &a.ID, Value: -1})
	require.NoError(t, err)

	assert.Equal(t, 1, qResult.VoteSum)
	assert.Equal(t, -1, aResult.VoteSum)
}

func TestCastVote_SelfVotingAllowed(t *testing.T) {
	svc, _, questionRepo, _ := newVoteFixture(t)
	q := seedQuestion(t, questionRepo, 7)

	result, err := svc.CastVote(context.Background(), 7, &CastVoteRequest{QuestionID: &q.ID, Value: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, result.VoteSum)
}
