package repositories

import (
	"answerhub/internal/database"

	"go.uber.org/zap"
)

// Collection bundles all repositories for dependency injection.
type Collection struct {
	User     UserRepository
	Question QuestionRepository
	Answer   AnswerRepository
	Vote     VoteRepository
	Tag      TagRepository
	Badge    BadgeRepository
	Session  SessionRepository
}

// NewCollection creates all repositories over one database manager.
func NewCollection(db *database.Manager, logger *zap.Logger) *Collection {
	return &Collection{
		User:     NewUserRepository(db, logger),
		Question: NewQuestionRepository(db, logger),
		Answer:   NewAnswerRepository(db, logger),
		Vote:     NewVoteRepository(db, logger),
		Tag:      NewTagRepository(db, logger),
		Badge:    NewBadgeRepository(db, logger),
		Session:  NewSessionRepository(db, logger),
	}
}
