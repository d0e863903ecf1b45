package services

import (
	"answerhub/internal/cache"
	"answerhub/internal/config"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

// Collection bundles all services for dependency injection into the
// handler layer.
type Collection struct {
	Auth       AuthService
	Question   QuestionService
	Answer     AnswerService
	Vote       VoteService
	Reputation ReputationService
	User       UserService
	Tag        TagService
	Stats      StatsService
}

// NewCollection wires every service over the repository collection.
func NewCollection(repos *repositories.Collection, cache cache.Cache, cfg *config.Config, logger *zap.Logger) *Collection {
	reputation := NewReputationService(repos.User, repos.Badge, logger)

	return &Collection{
		Auth:       NewAuthService(repos.User, repos.Session, &cfg.Auth, logger),
		Question:   NewQuestionService(repos.Question, repos.Answer, cache, logger),
		Answer:     NewAnswerService(repos.Answer, repos.Question, logger),
		Vote:       NewVoteService(repos.Vote, repos.Question, repos.Answer, logger),
		Reputation: reputation,
		User:       NewUserService(repos.User, repos.Question, repos.Answer, repos.Badge, reputation, logger),
		Tag:        NewTagService(repos.Tag, logger),
		Stats:      NewStatsService(repos.User, repos.Question, repos.Answer, repos.Tag, repos.Badge, cache, logger),
	}
}
