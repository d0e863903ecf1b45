package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"answerhub/internal/database"
	"answerhub/internal/models"

	"go.uber.org/zap"
)

// voteRepository implements VoteRepository. The tagged VoteTarget maps to
// the two nullable foreign key columns only inside this file.
type voteRepository struct {
	*BaseRepository
}

// NewVoteRepository creates a new instance of VoteRepository.
func NewVoteRepository(db *database.Manager, logger *zap.Logger) VoteRepository {
	return &voteRepository{
		BaseRepository: NewBaseRepository(db, logger),
	}
}

// targetColumns splits a target into (question_id, answer_id) values with
// exactly one of them set.
func targetColumns(target models.VoteTarget) (questionID, answerID sql.NullInt64) {
	switch target.Kind {
	case models.VoteTargetQuestion:
		questionID = sql.NullInt64{Int64: target.ID, Valid: true}
	case models.VoteTargetAnswer:
		answerID = sql.NullInt64{Int64: target.ID, Valid: true}
	}
	return questionID, answerID
}

// Upsert inserts the vote or overwrites the value of the existing row for
// (user, target). The conflict target is the partial unique index for the
// vote's kind, so the lookup-then-write race of a naive implementation
// cannot produce duplicate rows.
func (r *voteRepository) Upsert(ctx context.Context, vote *models.Vote) error {
	if err := vote.Target.Validate(); err != nil {
		return err
	}
	questionID, answerID := targetColumns(vote.Target)

	var query string
	switch vote.Target.Kind {
	case models.VoteTargetQuestion:
		query = `
			INSERT INTO votes (user_id, question_id, answer_id, value)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, question_id) WHERE question_id IS NOT NULL
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
			RETURNING id, created_at, updated_at`
	case models.VoteTargetAnswer:
		query = `
			INSERT INTO votes (user_id, question_id, answer_id, value)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, answer_id) WHERE answer_id IS NOT NULL
			DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
			RETURNING id, created_at, updated_at`
	}

	err := r.QueryRowContext(ctx, query,
		vote.UserID, questionID, answerID, vote.Value,
	).Scan(&vote.ID, &vote.CreatedAt, &vote.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to upsert vote: %w", err)
	}

	r.GetLogger().Info("Vote recorded",
		zap.Int64("user_id", vote.UserID),
		zap.String("target_kind", string(vote.Target.Kind)),
		zap.Int64("target_id", vote.Target.ID),
		zap.Int("value", vote.Value),
	)
	return nil
}

// GetByUserAndTarget returns the user's vote on the target, or (nil, nil)
// when the user has not voted on it.
func (r *voteRepository) GetByUserAndTarget(ctx context.Context, userID int64, target models.VoteTarget) (*models.Vote, error) {
	if err := target.Validate(); err != nil {
		return nil, err
	}

	var query string
	switch target.Kind {
	case models.VoteTargetQuestion:
		query = `SELECT id, user_id, value, created_at, updated_at
		         FROM votes WHERE user_id = $1 AND question_id = $2`
	case models.VoteTargetAnswer:
		query = `SELECT id, user_id, value, created_at, updated_at
		         FROM votes WHERE user_id = $1 AND answer_id = $2`
	}

	var vote models.Vote
	err := r.QueryRowContext(ctx, query, userID, target.ID).Scan(
		&vote.ID, &vote.UserID, &vote.Value, &vote.CreatedAt, &vote.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get vote: %w", err)
	}
	vote.Target = target
	return &vote, nil
}

// SumForTarget recomputes the aggregate vote count by summing all vote
// rows for the target.
func (r *voteRepository) SumForTarget(ctx context.Context, target models.VoteTarget) (int, error) {
	if err := target.Validate(); err != nil {
		return 0, err
	}

	var query string
	switch target.Kind {
	case models.VoteTargetQuestion:
		query = `SELECT COALESCE(SUM(value), 0) FROM votes WHERE question_id = $1`
	case models.VoteTargetAnswer:
		query = `SELECT COALESCE(SUM(value), 0) FROM votes WHERE answer_id = $1`
	}

	var sum int
	if err := r.QueryRowContext(ctx, query, target.ID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("failed to sum votes: %w", err)
	}
	return sum, nil
}
