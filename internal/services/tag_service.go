package services

import (
	"context"

	"answerhub/internal/models"
	"answerhub/internal/repositories"

	"go.uber.org/zap"
)

// tagService implements TagService.
type tagService struct {
	tagRepo repositories.TagRepository
	logger  *zap.Logger
}

// NewTagService creates a new instance of TagService.
func NewTagService(tagRepo repositories.TagRepository, logger *zap.Logger) TagService {
	return &tagService{tagRepo: tagRepo, logger: logger}
}

// ListWithCounts returns all tags with usage counts, most used first.
func (s *tagService) ListWithCounts(ctx context.Context) ([]*models.Tag, error) {
	tags, err := s.tagRepo.ListWithCounts(ctx)
	if err != nil {
		return nil, NewInternalError("Failed to list tags", err)
	}
	return tags, nil
}
