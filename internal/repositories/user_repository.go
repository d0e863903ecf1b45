package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// userRepository implements UserRepository.
type userRepository struct {
	*BaseRepository
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *database.Manager, logger *zap.Logger) UserRepository {
	return &userRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const userColumns = `id, username, email, password_hash, reputation, badge_tier, profile_views, created_at, updated_at`

func scanUser(row interface{ Scan(...interface{}) error }) (*models.User, error) {
	var user models.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.Reputation, &user.BadgeTier, &user.ProfileViews,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Create inserts a new user row.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (username, email, password_hash)
		VALUES ($1, $2, $3)
		RETURNING id, reputation, badge_tier, profile_views, created_at, updated_at`

	err := r.QueryRowContext(ctx, query, user.Username, user.Email, user.PasswordHash).Scan(
		&user.ID, &user.Reputation, &user.BadgeTier, &user.ProfileViews,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.GetLogger().Info("User created",
		zap.Int64("user_id", user.ID),
		zap.String("username", user.Username),
	)
	return nil
}

// GetByID retrieves a user by ID. Returns (nil, nil) when not found.
func (r *userRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.QueryRowContext(ctx, query, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by id: %w", err)
	}
	return user, nil
}

// GetByUsername retrieves a user by username. Returns (nil, nil) when not found.
func (r *userRepository) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = $1`
	user, err := scanUser(r.QueryRowContext(ctx, query, username))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}
	return user, nil
}

// GetByEmail retrieves a user by email. Returns (nil, nil) when not found.
func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.QueryRowContext(ctx, query, email))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// List returns a page of users, optionally filtered by a username/email
// substring match, newest first.
func (r *userRepository) List(ctx context.Context, params models.PaginationParams, search string) (*models.PaginatedResponse[*models.User], error) {
	params.Normalize()

	where := ""
	args := []interface{}{}
	if search != "" {
		where = `WHERE username ILIKE $1 OR email ILIKE $1`
		args = append(args, "%"+search+"%")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM users ` + where
	if err := r.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT u.id, u.username, u.email, u.password_hash, u.reputation, u.badge_tier,
		       u.profile_views, u.created_at, u.updated_at,
		       (SELECT COUNT(*) FROM questions q WHERE q.user_id = u.id) AS questions_count,
		       (SELECT COUNT(*) FROM answers a WHERE a.user_id = u.id) AS answers_count
		FROM users u
		%s
		ORDER BY u.created_at DESC
		LIMIT $%d OFFSET $%d`, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.Reputation, &user.BadgeTier, &user.ProfileViews,
			&user.CreatedAt, &user.UpdatedAt,
			&user.QuestionsCount, &user.AnswersCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, &user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	return models.NewPaginatedResponse(users, params, total), nil
}

// GetActivityCounts aggregates the user's questions, answers, accepted
// answers and positive votes received in a single query.
func (r *userRepository) GetActivityCounts(ctx context.Context, userID int64) (*UserActivityCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM questions q WHERE q.user_id = $1),
			(SELECT COUNT(*) FROM answers a WHERE a.user_id = $1),
			(SELECT COUNT(*) FROM answers a WHERE a.user_id = $1 AND a.is_accepted),
			(SELECT COALESCE(SUM(v.value), 0)
			   FROM votes v
			   LEFT JOIN questions q ON v.question_id = q.id
			   LEFT JOIN answers a ON v.answer_id = a.id
			  WHERE v.value > 0
			    AND (q.user_id = $1 OR a.user_id = $1))`

	var counts UserActivityCounts
	err := r.QueryRowContext(ctx, query, userID).Scan(
		&counts.Questions, &counts.Answers, &counts.AcceptedAnswers, &counts.PositiveVotes,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get activity counts: %w", err)
	}
	return &counts, nil
}

// UpdateReputation writes the recomputed score and tier back to the user row.
func (r *userRepository) UpdateReputation(ctx context.Context, userID int64, score int, tier models.BadgeTier) error {
	query := `UPDATE users SET reputation = $1, badge_tier = $2, updated_at = NOW() WHERE id = $3`
	result, err := r.ExecContext(ctx, query, score, tier, userID)
	if err != nil {
		return fmt.Errorf("failed to update reputation: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// IncrementProfileViews bumps the user's profile view counter.
func (r *userRepository) IncrementProfileViews(ctx context.Context, userID int64) error {
	query := `UPDATE users SET profile_views = profile_views + 1 WHERE id = $1`
	if _, err := r.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("failed to increment profile views: %w", err)
	}
	return nil
}

// GetLeaderboard returns the top users by stored reputation.
func (r *userRepository) GetLeaderboard(ctx context.Context, limit int) ([]*models.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.reputation, u.badge_tier,
		       u.profile_views, u.created_at, u.updated_at,
		       (SELECT COUNT(*) FROM questions q WHERE q.user_id = u.id) AS questions_count,
		       (SELECT COUNT(*) FROM answers a WHERE a.user_id = u.id) AS answers_count,
		       (SELECT COUNT(*) FROM answers a WHERE a.user_id = u.id AND a.is_accepted) AS accepted_count
		FROM users u
		ORDER BY u.reputation DESC, u.id ASC
		LIMIT $1`

	rows, err := r.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	var users []*models.User
	for rows.Next() {
		var user models.User
		if err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.Reputation, &user.BadgeTier, &user.ProfileViews,
			&user.CreatedAt, &user.UpdatedAt,
			&user.QuestionsCount, &user.AnswersCount, &user.AcceptedAnswersCount,
		); err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard user: %w", err)
		}
		users = append(users, &user)
	}
	return users, rows.Err()
}

// Count returns the total number of users.
func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}
	return count, nil
}
