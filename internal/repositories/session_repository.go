package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// sessionRepository implements SessionRepository.
type sessionRepository struct {
	*BaseRepository
}

// NewSessionRepository creates a new instance of SessionRepository.
func NewSessionRepository(db *database.Manager, logger *zap.Logger) SessionRepository {
	return &sessionRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts a new session row.
func (r *sessionRepository) Create(ctx context.Context, session *models.Session) error {
	query := `
		INSERT INTO sessions (user_id, session_token, expires_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.QueryRowContext(ctx, query,
		session.UserID, session.SessionToken, session.ExpiresAt,
	).Scan(&session.ID, &session.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	return nil
}

// GetByToken returns the session with the given token, or (nil, nil)
// when not found.
func (r *sessionRepository) GetByToken(ctx context.Context, token string) (*models.Session, error) {
	query := `
		SELECT id, user_id, session_token, expires_at, created_at
		FROM sessions WHERE session_token = $1`

	var session models.Session
	err := r.QueryRowContext(ctx, query, token).Scan(
		&session.ID, &session.UserID, &session.SessionToken,
		&session.ExpiresAt, &session.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return &session, nil
}

// DeleteByToken removes the session with the given token.
func (r *sessionRepository) DeleteByToken(ctx context.Context, token string) error {
	if _, err := r.ExecContext(ctx, `DELETE FROM sessions WHERE session_token = $1`, token); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// DeleteExpired removes all expired sessions and reports how many were
// deleted.
func (r *sessionRepository) DeleteExpired(ctx context.Context) (int64, error) {
	result, err := r.ExecContext(ctx, `DELETE FROM sessions WHERE expires_at < NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to delete expired sessions: %w", err)
	}
	n, _ := result.RowsAffected()
	if n > 0 {
		r.GetLogger().Info("Expired sessions removed", zap.Int64("count", n))
	}
	return n, nil
}
