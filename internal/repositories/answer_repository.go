package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// answerRepository implements AnswerRepository.
type answerRepository struct {
	*BaseRepository
}

// NewAnswerRepository creates a new instance of AnswerRepository.
func NewAnswerRepository(db *database.Manager, logger *zap.Logger) AnswerRepository {
	return &answerRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

const answerSelect = `
	SELECT a.id, a.question_id, a.user_id, a.content, a.is_accepted,
	       a.created_at, a.updated_at, u.username,
	       (SELECT COALESCE(SUM(v.value), 0) FROM votes v WHERE v.answer_id = a.id) AS vote_sum
	FROM answers a
	INNER JOIN users u ON a.user_id = u.id`

func scanAnswerRows(rows *sql.Rows) ([]*models.Answer, error) {
	var answers []*models.Answer
	for rows.Next() {
		var a models.Answer
		if err := rows.Scan(
			&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.IsAccepted,
			&a.CreatedAt, &a.UpdatedAt, &a.Username, &a.VoteSum,
		); err != nil {
			return nil, fmt.Errorf("failed to scan answer: %w", err)
		}
		answers = append(answers, &a)
	}
	return answers, rows.Err()
}

// Create inserts a new answer row.
func (r *answerRepository) Create(ctx context.Context, answer *models.Answer) error {
	query := `
		INSERT INTO answers (question_id, user_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, is_accepted, created_at, updated_at`

	err := r.QueryRowContext(ctx, query,
		answer.QuestionID, answer.UserID, answer.Content,
	).Scan(&answer.ID, &answer.IsAccepted, &answer.CreatedAt, &answer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create answer: %w", err)
	}

	r.GetLogger().Info("Answer created",
		zap.Int64("answer_id", answer.ID),
		zap.Int64("question_id", answer.QuestionID),
		zap.Int64("user_id", answer.UserID),
	)
	return nil
}

// GetByID retrieves an answer with author and vote sum. Returns (nil, nil)
// when not found.
func (r *answerRepository) GetByID(ctx context.Context, id int64) (*models.Answer, error) {
	query := answerSelect + ` WHERE a.id = $1`

	var a models.Answer
	err := r.QueryRowContext(ctx, query, id).Scan(
		&a.ID, &a.QuestionID, &a.UserID, &a.Content, &a.IsAccepted,
		&a.CreatedAt, &a.UpdatedAt, &a.Username, &a.VoteSum,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get answer: %w", err)
	}
	return &a, nil
}

// Exists reports whether an answer with the given ID exists.
func (r *answerRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM answers WHERE id = $1)`
	if err := r.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check answer existence: %w", err)
	}
	return exists, nil
}

// GetByQuestionID returns all answers for a question in insertion order,
// with vote sums. Display ranking happens in the service layer.
func (r *answerRepository) GetByQuestionID(ctx context.Context, questionID int64) ([]*models.Answer, error) {
	query := answerSelect + `
	WHERE a.question_id = $1
	ORDER BY a.id ASC`

	rows, err := r.QueryContext(ctx, query, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to get answers for question: %w", err)
	}
	defer rows.Close()

	return scanAnswerRows(rows)
}

// GetByUserID returns a page of the user's answers, newest first.
func (r *answerRepository) GetByUserID(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Answer], error) {
	params.Normalize()

	var total int64
	if err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM answers WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count user answers: %w", err)
	}

	query := answerSelect + `
	WHERE a.user_id = $1
	ORDER BY a.created_at DESC, a.id DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get user answers: %w", err)
	}
	defer rows.Close()

	answers, err := scanAnswerRows(rows)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(answers, params, total), nil
}

// AcceptExclusive clears acceptance on every answer of the question and
// marks answerID accepted. Both statements run in one transaction so no
// reader observes two accepted answers. The clear runs first because the
// partial unique index on (question_id) WHERE is_accepted would reject
// the new row while the old one still holds the slot.
func (r *answerRepository) AcceptExclusive(ctx context.Context, questionID, answerID int64) error {
	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		clear := `
			UPDATE answers SET is_accepted = FALSE, updated_at = NOW()
			WHERE question_id = $1 AND is_accepted AND id <> $2`
		if _, err := tx.ExecContext(ctx, clear, questionID, answerID); err != nil {
			return fmt.Errorf("failed to clear accepted answers: %w", err)
		}

		set := `
			UPDATE answers SET is_accepted = TRUE, updated_at = NOW()
			WHERE id = $1 AND question_id = $2 AND NOT is_accepted`
		if _, err := tx.ExecContext(ctx, set, answerID, questionID); err != nil {
			return fmt.Errorf("failed to accept answer: %w", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	r.GetLogger().Info("Answer accepted",
		zap.Int64("answer_id", answerID),
		zap.Int64("question_id", questionID),
	)
	return nil
}

// Count returns the total number of answers.
func (r *answerRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count answers: %w", err)
	}
	return count, nil
}

// CountAccepted returns how many answers are currently accepted.
func (r *answerRepository) CountAccepted(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM answers WHERE is_accepted`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count accepted answers: %w", err)
	}
	return count, nil
}
