package repositories

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

// questionRepository implements QuestionRepository.
type questionRepository struct {
	*BaseRepository
}

// NewQuestionRepository creates a new instance of QuestionRepository.
func NewQuestionRepository(db *database.Manager, logger *zap.Logger) QuestionRepository {
	return &questionRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// Create inserts the question and attaches its tags inside one
// transaction. Tags are looked up by name and created when missing.
func (r *questionRepository) Create(ctx context.Context, question *models.Question, tagNames []string) error {
	cleaned := make([]string, 0, len(tagNames))
	seen := make(map[string]bool, len(tagNames))
	for _, name := range tagNames {
		name = strings.ToLower(strings.TrimSpace(name))
		if name == "" || seen[name] {
			continue
		}
		seen[name] = true
		cleaned = append(cleaned, name)
	}

	err := r.WithTx(ctx, func(tx *sql.Tx) error {
		insertQuestion := `
			INSERT INTO questions (user_id, title, content)
			VALUES ($1, $2, $3)
			RETURNING id, created_at, updated_at`

		if err := tx.QueryRowContext(ctx, insertQuestion,
			question.UserID, question.Title, question.Content,
		).Scan(&question.ID, &question.CreatedAt, &question.UpdatedAt); err != nil {
			return fmt.Errorf("failed to insert question: %w", err)
		}

		for _, name := range cleaned {
			var tagID int64
			// Upsert keyed on the unique name so concurrent creates of
			// the same tag cannot race.
			getOrCreate := `
				INSERT INTO tags (name) VALUES ($1)
				ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
				RETURNING id`
			if err := tx.QueryRowContext(ctx, getOrCreate, name).Scan(&tagID); err != nil {
				return fmt.Errorf("failed to get or create tag %q: %w", name, err)
			}

			attach := `
				INSERT INTO question_tags (question_id, tag_id)
				VALUES ($1, $2)
				ON CONFLICT DO NOTHING`
			if _, err := tx.ExecContext(ctx, attach, question.ID, tagID); err != nil {
				return fmt.Errorf("failed to attach tag %q: %w", name, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	question.Tags = cleaned
	r.GetLogger().Info("Question created",
		zap.Int64("question_id", question.ID),
		zap.Int64("user_id", question.UserID),
		zap.Strings("tags", cleaned),
	)
	return nil
}

const questionSelect = `
	SELECT q.id, q.user_id, q.title, q.content, q.created_at, q.updated_at,
	       u.username,
	       COALESCE(ARRAY_AGG(t.name ORDER BY t.name) FILTER (WHERE t.name IS NOT NULL), '{}') AS tags,
	       (SELECT COUNT(*) FROM answers a WHERE a.question_id = q.id) AS answers_count,
	       (SELECT COALESCE(SUM(v.value), 0) FROM votes v WHERE v.question_id = q.id) AS vote_sum
	FROM questions q
	INNER JOIN users u ON q.user_id = u.id
	LEFT JOIN question_tags qt ON qt.question_id = q.id
	LEFT JOIN tags t ON t.id = qt.tag_id`

func scanQuestionRows(rows *sql.Rows) ([]*models.Question, error) {
	var questions []*models.Question
	for rows.Next() {
		var q models.Question
		var tags pq.StringArray
		if err := rows.Scan(
			&q.ID, &q.UserID, &q.Title, &q.Content, &q.CreatedAt, &q.UpdatedAt,
			&q.Username, &tags, &q.AnswersCount, &q.VoteSum,
		); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		q.Tags = []string(tags)
		questions = append(questions, &q)
	}
	return questions, rows.Err()
}

// GetByID retrieves a question with author, tags, answer count and vote
// sum. Returns (nil, nil) when not found.
func (r *questionRepository) GetByID(ctx context.Context, id int64) (*models.Question, error) {
	query := questionSelect + `
	WHERE q.id = $1
	GROUP BY q.id, u.username`

	rows, err := r.QueryContext(ctx, query, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get question: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestionRows(rows)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, nil
	}
	return questions[0], nil
}

// Exists reports whether a question with the given ID exists.
func (r *questionRepository) Exists(ctx context.Context, id int64) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM questions WHERE id = $1)`
	if err := r.QueryRowContext(ctx, query, id).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check question existence: %w", err)
	}
	return exists, nil
}

// Delete removes a question. Answers, votes and tag links cascade at the
// store level.
func (r *questionRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.ExecContext(ctx, `DELETE FROM questions WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete question: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// List returns a page of questions, newest first, optionally filtered by
// tag name and a title/content substring match.
func (r *questionRepository) List(ctx context.Context, params models.PaginationParams, tag, search string) (*models.PaginatedResponse[*models.Question], error) {
	params.Normalize()

	var conditions []string
	var args []interface{}

	if tag != "" {
		args = append(args, strings.ToLower(tag))
		conditions = append(conditions, fmt.Sprintf(
			`q.id IN (SELECT qt2.question_id FROM question_tags qt2
			          INNER JOIN tags t2 ON t2.id = qt2.tag_id WHERE t2.name = $%d)`, len(args)))
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		conditions = append(conditions, fmt.Sprintf(
			`(q.title ILIKE $%d OR q.content ILIKE $%d
			  OR q.id IN (SELECT qt3.question_id FROM question_tags qt3
			              INNER JOIN tags t3 ON t3.id = qt3.tag_id WHERE t3.name ILIKE $%d))`,
			len(args), len(args), len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM questions q ` + where
	if err := r.QueryRowContext(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count questions: %w", err)
	}

	query := fmt.Sprintf(`%s
	%s
	GROUP BY q.id, u.username
	ORDER BY q.created_at DESC, q.id DESC
	LIMIT $%d OFFSET $%d`, questionSelect, where, len(args)+1, len(args)+2)
	args = append(args, params.PageSize, params.Offset())

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestionRows(rows)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(questions, params, total), nil
}

// GetByUserID returns a page of the user's questions, newest first.
func (r *questionRepository) GetByUserID(ctx context.Context, userID int64, params models.PaginationParams) (*models.PaginatedResponse[*models.Question], error) {
	params.Normalize()

	var total int64
	if err := r.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM questions WHERE user_id = $1`, userID,
	).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to count user questions: %w", err)
	}

	query := questionSelect + `
	WHERE q.user_id = $1
	GROUP BY q.id, u.username
	ORDER BY q.created_at DESC, q.id DESC
	LIMIT $2 OFFSET $3`

	rows, err := r.QueryContext(ctx, query, userID, params.PageSize, params.Offset())
	if err != nil {
		return nil, fmt.Errorf("failed to get user questions: %w", err)
	}
	defer rows.Close()

	questions, err := scanQuestionRows(rows)
	if err != nil {
		return nil, err
	}
	return models.NewPaginatedResponse(questions, params, total), nil
}

// Count returns the total number of questions.
func (r *questionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.QueryRowContext(ctx, `SELECT COUNT(*) FROM questions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count questions: %w", err)
	}
	return count, nil
}

// CountUnanswered returns how many questions have no answers yet.
func (r *questionRepository) CountUnanswered(ctx context.Context) (int64, error) {
	var count int64
	query := `
		SELECT COUNT(*) FROM questions q
		WHERE NOT EXISTS (SELECT 1 FROM answers a WHERE a.question_id = q.id)`
	if err := r.QueryRowContext(ctx, query).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count unanswered questions: %w", err)
	}
	return count, nil
}
