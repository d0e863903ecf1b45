package repositories

import (
	"context"
	"fmt"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// badgeRepository implements BadgeRepository.
type badgeRepository struct {
	*BaseRepository
}

// NewBadgeRepository creates a new instance of BadgeRepository.
func NewBadgeRepository(db *database.Manager, logger *zap.Logger) BadgeRepository {
	return &badgeRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// List returns all badge definitions.
func (r *badgeRepository) List(ctx context.Context) ([]*models.Badge, error) {
	query := `
		SELECT id, name, description, criteria_type, criteria_value, created_at
		FROM badges
		ORDER BY criteria_type, criteria_value`

	rows, err := r.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list badges: %w", err)
	}
	defer rows.Close()

	var badges []*models.Badge
	for rows.Next() {
		var badge models.Badge
		if err := rows.Scan(
			&badge.ID, &badge.Name, &badge.Description,
			&badge.CriteriaType, &badge.CriteriaValue, &badge.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan badge: %w", err)
		}
		badges = append(badges, &badge)
	}
	return badges, rows.Err()
}

// GetUserBadges returns the badges a user has earned, most recent first.
func (r *badgeRepository) GetUserBadges(ctx context.Context, userID int64) ([]*models.UserBadge, error) {
	query := `
		SELECT ub.id, ub.user_id, ub.badge_id, ub.earned_at, b.name, b.description
		FROM user_badges ub
		INNER JOIN badges b ON ub.badge_id = b.id
		WHERE ub.user_id = $1
		ORDER BY ub.earned_at DESC`

	rows, err := r.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user badges: %w", err)
	}
	defer rows.Close()

	var userBadges []*models.UserBadge
	for rows.Next() {
		var ub models.UserBadge
		if err := rows.Scan(
			&ub.ID, &ub.UserID, &ub.BadgeID, &ub.EarnedAt, &ub.Name, &ub.Description,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user badge: %w", err)
		}
		userBadges = append(userBadges, &ub)
	}
	return userBadges, rows.Err()
}

// Award grants the badge to the user unless already held. The unique
// (user_id, badge_id) constraint makes this idempotent.
func (r *badgeRepository) Award(ctx context.Context, userID, badgeID int64) (bool, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_id)
		VALUES ($1, $2)
		ON CONFLICT (user_id, badge_id) DO NOTHING`

	result, err := r.ExecContext(ctx, query, userID, badgeID)
	if err != nil {
		return false, fmt.Errorf("failed to award badge: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to check badge award: %w", err)
	}
	if n > 0 {
		r.GetLogger().Info("Badge awarded",
			zap.Int64("user_id", userID),
			zap.Int64("badge_id", badgeID),
		)
	}
	return n > 0, nil
}

// Count returns the total number of badge definitions.
func (r *badgeRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM badges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count badges: %w", err)
	}
	return count, nil
}

// CountAwarded returns how many badges have been earned in total.
func (r *badgeRepository) CountAwarded(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM user_badges`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count awarded badges: %w", err)
	}
	return count, nil
}
