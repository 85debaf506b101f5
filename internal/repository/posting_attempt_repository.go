package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
)

type PostingAttemptRepository interface {
	Create(ctx context.Context, attempt *models.PostingAttempt) (int64, error)
	GetByPostID(ctx context.Context, postID int64) ([]*models.PostingAttempt, error)
}

type postingAttemptRepository struct {
	db *sql.DB
}

func NewPostingAttemptRepository(db *sql.DB) PostingAttemptRepository {
	return &postingAttemptRepository{db: db}
}

func (r *postingAttemptRepository) Create(ctx context.Context, attempt *models.PostingAttempt) (int64, error) {
	query := `
		INSERT INTO posting_attempts (post_id, team_member_id, platform, error_message)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, attempt.PostID, attempt.TeamMemberID, attempt.Platform, attempt.ErrorMessage).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postingAttemptRepository) GetByPostID(ctx context.Context, postID int64) ([]*models.PostingAttempt, error) {
	query := `SELECT id, post_id, team_member_id, platform, error_message, created_at FROM posting_attempts WHERE post_id = $1 ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var attempts []*models.PostingAttempt
	for rows.Next() {
		var attempt models.PostingAttempt
		err := rows.Scan(&attempt.ID, &attempt.PostID, &attempt.TeamMemberID, &attempt.Platform, &attempt.ErrorMessage, &attempt.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		attempts = append(attempts, &attempt)
	}
	return attempts, nil
}
