package services

import (
	"context"
	"testing"

	"answerhub/internal/models"
	"answerhub/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestReputationScore(t *testing.T) {
	tests := []struct {
		name   string
		counts repositories.UserActivityCounts
		want   int
	}{
		{
			name: "no activity keeps the base point",
			want: 1,
		},
		{
			name:   "one of each",
			counts: repositories.UserActivityCounts{Questions: 1, Answers: 1, AcceptedAnswers: 1, PositiveVotes: 1},
			want:   1 + 5 + 10 + 15 + 2,
		},
		{
			name:   "questions only",
			counts: repositories.UserActivityCounts{Questions: 4},
			want:   21,
		},
		{
			name:   "accepted answers also count as answers",
			counts: repositories.UserActivityCounts{Answers: 3, AcceptedAnswers: 2},
			want:   1 + 30 + 30,
		},
		{
			name:   "popular contributor",
			counts: repositories.UserActivityCounts{Questions: 10, Answers: 20, AcceptedAnswers: 5, PositiveVotes: 50},
			want:   1 + 50 + 200 + 75 + 100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ReputationScore(tt.counts))
		})
	}
}

func TestTierForScore_Boundaries(t *testing.T) {
	tests := []struct {
		score int
		want  models.BadgeTier
	}{
		{1, models.TierBeginner},
		{49, models.TierBeginner},
		{50, models.TierApprentice},
		{99, models.TierApprentice},
		{100, models.TierIntermediate},
		{499, models.TierIntermediate},
		{500, models.TierAdvanced},
		{999, models.TierAdvanced},
		{1000, models.TierExpert},
		{5000, models.TierExpert},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, models.TierForScore(tt.score), "score %d", tt.score)
	}
}

func TestRecompute_PersistsScoreAndTier(t *testing.T) {
	userRepo := newFakeUserRepo()
	badgeRepo := newFakeBadgeRepo()
	svc := NewReputationService(userRepo, badgeRepo, zap.NewNop())

	user := userRepo.addUser(&models.User{Username: "gopher", Email: "gopher@example.com"})
	userRepo.counts[user.ID] = repositories.UserActivityCounts{
		Questions:       3,
		Answers:         8,
		AcceptedAnswers: 2,
		PositiveVotes:   12,
	}

	breakdown, err := svc.Recompute(context.Background(), user.ID)
	require.NoError(t, err)

	want := 1 + 3*5 + 8*10 + 2*15 + 12*2
	assert.Equal(t, want, breakdown.Score)
	assert.Equal(t, models.TierIntermediate, breakdown.Tier)

	stored, err := userRepo.GetByID(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, want, stored.Reputation)
	assert.Equal(t, models.TierIntermediate, stored.BadgeTier)
}

func TestRecompute_UnknownUser(t *testing.T) {
	svc := NewReputationService(newFakeUserRepo(), newFakeBadgeRepo(), zap.NewNop())

	_, err := svc.Recompute(context.Background(), 42)
	require.Error(t, err)
	assert.True(t, IsNotFoundError(err))
}

func TestRecompute_DownvotesDoNotSubtract(t *testing.T) {
	userRepo := newFakeUserRepo()
	svc := NewReputationService(userRepo, newFakeBadgeRepo(), zap.NewNop())

	user := userRepo.addUser(&models.User{Username: "downvoted", Email: "d@example.com"})
	// The activity query only counts positive votes, so a heavily
	// downvoted user still scores from their posts alone.
	userRepo.counts[user.ID] = repositories.UserActivityCounts{Answers: 2, PositiveVotes: 0}

	breakdown, err := svc.Recompute(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, 21, breakdown.Score)
}

func TestCheckAndAwardBadges(t *testing.T) {
	userRepo := newFakeUserRepo()
	badgeRepo := newFakeBadgeRepo(
		&models.Badge{ID: 1, Name: "Curious", CriteriaType: models.BadgeCriteriaQuestions, CriteriaValue: 1},
		&models.Badge{ID: 2, Name: "Inquisitive", CriteriaType: models.BadgeCriteriaQuestions, CriteriaValue: 10},
		&models.Badge{ID: 3, Name: "Helper", CriteriaType: models.BadgeCriteriaAnswers, CriteriaValue: 1},
		&models.Badge{ID: 4, Name: "Respected", CriteriaType: models.BadgeCriteriaReputation, CriteriaValue: 100},
	)
	svc := NewReputationService(userRepo, badgeRepo, zap.NewNop())

	user := userRepo.addUser(&models.User{Username: "active", Email: "a@example.com"})
	userRepo.counts[user.ID] = repositories.UserActivityCounts{
		Questions:       2,
		Answers:         9,
		AcceptedAnswers: 1,
	}

	awarded, err := svc.CheckAndAwardBadges(context.Background(), user.ID)
	require.NoError(t, err)

	names := make([]string, len(awarded))
	for i, b := range awarded {
		names[i] = b.Name
	}
	// Score is 1 + 10 + 90 + 15 = 116, so the reputation badge lands
	// too; the 10-question badge does not.
	assert.ElementsMatch(t, []string{"Curious", "Helper", "Respected"}, names)

	// A second pass awards nothing new.
	again, err := svc.CheckAndAwardBadges(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Empty(t, again)
}
