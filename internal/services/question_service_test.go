package services

import (
	"context"
	"path"
	"testing"
	"time"

	"answerhub/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeCache is a minimal in-memory Cache for service tests.
type fakeCache struct {
	data map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{data: make(map[string][]byte)}
}

func (c *fakeCache) Get(_ context.Context, key string) ([]byte, bool) {
	v, ok := c.data[key]
	return v, ok
}

func (c *fakeCache) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	c.data[key] = value
	return nil
}

func (c *fakeCache) Delete(_ context.Context, key string) error {
	delete(c.data, key)
	return nil
}

func (c *fakeCache) DeletePattern(_ context.Context, pattern string) error {
	for key := range c.data {
		if ok, _ := path.Match(pattern, key); ok {
			delete(c.data, key)
		}
	}
	return nil
}

func (c *fakeCache) Exists(_ context.Context, key string) bool {
	_, ok := c.data[key]
	return ok
}

func (c *fakeCache) Clear(_ context.Context) error {
	c.data = make(map[string][]byte)
	return nil
}

func (c *fakeCache) Health(_ context.Context) error { return nil }
func (c *fakeCache) Close() error                   { return nil }

func newQuestionFixture(t *testing.T) (QuestionService, *fakeQuestionRepo, *fakeAnswerRepo, *fakeCache) {
	t.Helper()
	questionRepo := newFakeQuestionRepo()
	answerRepo := newFakeAnswerRepo()
	cache := newFakeCache()
	svc := NewQuestionService(questionRepo, answerRepo, cache, zap.NewNop())
	return svc, questionRepo, answerRepo, cache
}

func TestCreateQuestion_Validation(t *testing.T) {
	svc, _, _, _ := newQuestionFixture(t)

	_, err := svc.Create(context.Background(), 1, &CreateQuestionRequest{
		Title:   "short",
		Content: "too short",
	})
	require.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestCreateQuestion_Succeeds(t *testing.T) {
	svc, questionRepo, _, _ := newQuestionFixture(t)

	q, err := svc.Create(context.Background(), 1, &CreateQuestionRequest{
		Title:   "How do interfaces work in Go?",
		Content: "I keep reading about implicit satisfaction but do not get it.",
		Tags:    []string{"go", "interfaces"},
	})
	require.NoError(t, err)
	assert.NotZero(t, q.ID)

	exists, err := questionRepo.Exists(context.Background(), q.ID)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestGetDetail_RanksAnswers(t *testing.T) {
	svc, questionRepo, answerRepo, _ := newQuestionFixture(t)
	author := int64(1)
	q := seedQuestion(t, questionRepo, author)

	low := seedAnswer(t, answerRepo, q.ID, 2)
	high := seedAnswer(t, answerRepo, q.ID, 3)
	accepted := seedAnswer(t, answerRepo, q.ID, 4)

	answerRepo.answers[low.ID].VoteSum = 1
	answerRepo.answers[high.ID].VoteSum = 7
	answerRepo.answers[accepted.ID].VoteSum = 2
	answerRepo.answers[accepted.ID].IsAccepted = true

	detail, err := svc.GetDetail(context.Background(), q.ID)
	require.NoError(t, err)
	require.Len(t, detail.Answers, 3)
	assert.Equal(t, accepted.ID, detail.Answers[0].ID)
	assert.Equal(t, high.ID, detail.Answers[1].ID)
	assert.Equal(t, low.ID, detail.Answers[2].ID)
}

func TestGetDetail_NotFound(t *testing.T) {
	svc, _, _, _ := newQuestionFixture(t)

	_, err := svc.GetDetail(context.Background(), 404)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestDeleteQuestion_AuthorOnly(t *testing.T) {
	svc, questionRepo, _, _ := newQuestionFixture(t)
	q := seedQuestion(t, questionRepo, 1)

	err := svc.Delete(context.Background(), 2, q.ID)
	require.Error(t, err)
	assert.True(t, IsForbiddenError(err))

	require.NoError(t, svc.Delete(context.Background(), 1, q.ID))

	exists, err := questionRepo.Exists(context.Background(), q.ID)
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestList_CachesAndInvalidatesOnWrite(t *testing.T) {
	svc, _, _, cache := newQuestionFixture(t)

	_, err := svc.Create(context.Background(), 1, &CreateQuestionRequest{
		Title:   "How do interfaces work in Go?",
		Content: "I keep reading about implicit satisfaction but do not get it.",
	})
	require.NoError(t, err)

	params := models.PaginationParams{Page: 1, PageSize: 20}
	first, err := svc.List(context.Background(), params, QuestionListFilters{})
	require.NoError(t, err)
	assert.Len(t, first.Data, 1)
	assert.NotEmpty(t, cache.data)

	// A second create flushes the cached listings.
	_, err = svc.Create(context.Background(), 1, &CreateQuestionRequest{
		Title:   "What is the empty struct even for?",
		Content: "I see struct{}{} in channel code everywhere and wonder why.",
	})
	require.NoError(t, err)
	assert.Empty(t, cache.data)

	second, err := svc.List(context.Background(), params, QuestionListFilters{})
	require.NoError(t, err)
	assert.Len(t, second.Data, 2)
}
