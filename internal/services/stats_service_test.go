package services

import (
	"context"
	"testing"

	"answerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTagRepo backs the stats tests; the service only calls Count.
type fakeTagRepo struct {
	count int64
}

func (f *fakeTagRepo) GetOrCreate(_ context.Context, name string) (*models.Tag, error) {
	return nil, nil
}

func (f *fakeTagRepo) ListWithCounts(_ context.Context) ([]*models.Tag, error) {
	return nil, nil
}

func (f *fakeTagRepo) Count(_ context.Context) (int64, error) {
	return f.count, nil
}

func TestPlatformStats(t *testing.T) {
	userRepo := newFakeUserRepo()
	questionRepo := newFakeQuestionRepo()
	answerRepo := newFakeAnswerRepo()
	cache := newFakeCache()

	userRepo.addUser(&models.User{Username: "a", Email: "a@example.com"})
	userRepo.addUser(&models.User{Username: "b", Email: "b@example.com"})
	q := seedQuestion(t, questionRepo, 1)
	seedAnswer(t, answerRepo, q.ID, 2)
	accepted := seedAnswer(t, answerRepo, q.ID, 2)
	require.NoError(t, answerRepo.AcceptExclusive(context.Background(), q.ID, accepted.ID))

	svc := NewStatsService(userRepo, questionRepo, answerRepo, &fakeTagRepo{count: 3}, newFakeBadgeRepo(), cache, zap.NewNop())

	stats, err := svc.PlatformStats(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(2), stats.Users)
	assert.Equal(t, int64(1), stats.Questions)
	assert.Equal(t, int64(2), stats.Answers)
	assert.Equal(t, int64(1), stats.AcceptedAnswers)
	assert.Equal(t, int64(3), stats.Tags)

	// The second read is served from cache even after new writes.
	userRepo.addUser(&models.User{Username: "c", Email: "c@example.com"})
	cached, err := svc.PlatformStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), cached.Users)
}
