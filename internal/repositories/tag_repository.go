package repositories

import (
	"context"
	"fmt"
	"strings"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// tagRepository implements TagRepository.
type tagRepository struct {
	*BaseRepository
}

// NewTagRepository creates a new instance of TagRepository.
func NewTagRepository(db *database.Manager, logger *zap.Logger) TagRepository {
	return &tagRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// GetOrCreate returns the tag with the given name, creating it when
// missing. Names are normalized to lowercase.
func (r *tagRepository) GetOrCreate(ctx context.Context, name string) (*models.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return nil, fmt.Errorf("tag name is required")
	}

	query := `
		INSERT INTO tags (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name`

	var tag models.Tag
	if err := r.QueryRowContext(ctx, query, name).Scan(&tag.ID, &tag.Name); err != nil {
		return nil, fmt.Errorf("failed to get or create tag: %w", err)
	}
	return &tag, nil
}

// ListWithCounts returns all tags with their question usage counts, most
// used first.
func (r *tagRepository) ListWithCounts(ctx context.Context) ([]*models.Tag, error) {
	query := `
		SELECT t.id, t.name, COUNT(qt.question_id) AS questions_count
		FROM tags t
		LEFT JOIN question_tags qt ON qt.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY questions_count DESC, t.name ASC`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	defer rows.Close()

	var tags []*models.Tag
	for rows.Next() {
		var tag models.Tag
		if err := rows.Scan(&tag.ID, &tag.Name, &tag.QuestionsCount); err != nil {
			return nil, fmt.Errorf("failed to scan tag: %w", err)
		}
		tags = append(tags, &tag)
	}
	return tags, rows.Err()
}

// Count returns the total number of tags.
func (r *tagRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM tags`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count tags: %w", err)
	}
	return count, nil
}
