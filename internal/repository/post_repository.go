package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
)

type PostRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Post, error)
	Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error)
	GetByStrategyID(ctx context.Context, strategyID int64) ([]*models.Post, error)
	UpdateStatus(ctx context.Context, status models.PostStatus, postID int64) error
	MarkPublished(ctx context.Context, postID int64) error
}

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	query := `
		INSERT INTO posts (strategy_id, team_member_id, title, description, tags, category, emoji, image_url, programming_date_to_post, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`

	var id int64
	var err error

	if tx != nil {
		err = tx.QueryRowContext(ctx, query, post.StrategyID, post.TeamMemberID, post.Title, post.Description, post.Tags, post.Category, post.Emoji, post.ImageURL, post.ProgrammingDateToPost, post.Status).Scan(&id)
	} else {
		err = r.db.QueryRowContext(ctx, query, post.StrategyID, post.TeamMemberID, post.Title, post.Description, post.Tags, post.Category, post.Emoji, post.ImageURL, post.ProgrammingDateToPost, post.Status).Scan(&id)
	}
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *postRepository) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	query := `SELECT id, strategy_id, team_member_id, title, description, tags, category, emoji, image_url, programming_date_to_post, status, is_published, created_at, updated_at FROM posts WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var post models.Post
	err := row.Scan(&post.ID, &post.StrategyID, &post.TeamMemberID, &post.Title, &post.Description, &post.Tags, &post.Category, &post.Emoji, &post.ImageURL, &post.ProgrammingDateToPost, &post.Status, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &post, nil
}

func (r *postRepository) GetByStrategyID(ctx context.Context, strategyID int64) ([]*models.Post, error) {
	query := `SELECT id, strategy_id, team_member_id, title, description, tags, category, emoji, image_url, programming_date_to_post, status, is_published, created_at, updated_at FROM posts WHERE strategy_id = $1 ORDER BY programming_date_to_post`

	rows, err := r.db.QueryContext(ctx, query, strategyID)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var posts []*models.Post
	for rows.Next() {
		var post models.Post
		err := rows.Scan(&post.ID, &post.StrategyID, &post.TeamMemberID, &post.Title, &post.Description, &post.Tags, &post.Category, &post.Emoji, &post.ImageURL, &post.ProgrammingDateToPost, &post.Status, &post.IsPublished, &post.CreatedAt, &post.UpdatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		posts = append(posts, &post)
	}
	return posts, nil
}

func (r *postRepository) UpdateStatus(ctx context.Context, status models.PostStatus, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *postRepository) MarkPublished(ctx context.Context, postID int64) error {
	query := `
		UPDATE posts
		SET status = $1,
			is_published = TRUE,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, models.PostPublished, time.Now(), postID)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
