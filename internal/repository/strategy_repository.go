package repository

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
)

type StrategyRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Strategy, error)
	Create(ctx context.Context, strategy *models.Strategy) (int64, error)
	UpdateStatus(ctx context.Context, status models.StrategyStatus, id int64) error
	SetFailure(ctx context.Context, status models.StrategyStatus, message string, id int64) error
	ResolveOutcome(ctx context.Context, failure models.StrategyStatus, id int64) error
}

type strategyRepository struct {
	db *sql.DB
}

func NewStrategyRepository(db *sql.DB) StrategyRepository {
	return &strategyRepository{db: db}
}

func (r *strategyRepository) GetByID(ctx context.Context, id int64) (*models.Strategy, error) {
	query := `SELECT id, company_id, team_member_id, description, from_schedule, to_schedule, status, error_message, created_at, updated_at FROM strategies WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)

	var st models.Strategy
	err := row.Scan(&st.ID, &st.CompanyID, &st.TeamMemberID, &st.Description, &st.FromSchedule, &st.ToSchedule, &st.Status, &st.ErrorMessage, &st.CreatedAt, &st.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		slog.Info(err.Error())
		return nil, err
	}

	return &st, nil
}

func (r *strategyRepository) Create(ctx context.Context, strategy *models.Strategy) (int64, error) {
	query := `
		INSERT INTO strategies (company_id, team_member_id, description, from_schedule, to_schedule, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		strategy.CompanyID,
		strategy.TeamMemberID,
		strategy.Description,
		strategy.FromSchedule,
		strategy.ToSchedule,
		strategy.Status,
	).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *strategyRepository) UpdateStatus(ctx context.Context, status models.StrategyStatus, id int64) error {
	query := `
		UPDATE strategies
		SET status = $1,
			updated_at = $2
		WHERE id = $3
	`
	_, err := r.db.ExecContext(ctx, query, status, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

func (r *strategyRepository) SetFailure(ctx context.Context, status models.StrategyStatus, message string, id int64) error {
	query := `
		UPDATE strategies
		SET status = $1,
			error_message = $2,
			updated_at = $3
		WHERE id = $4
	`
	_, err := r.db.ExecContext(ctx, query, status, message, time.Now(), id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}

// ResolveOutcome settles the strategy status after one publish worker
// finished its post, in a single statement so concurrently firing workers
// never lose each other's updates. While sibling posts are still open the
// strategy stays in posting; once every post is published it becomes posted.
// Otherwise the caller's failure class wins, and a caller with no failure of
// its own (it succeeded, or its class was swallowed while siblings were still
// open) falls back to the failure class derived from the latest failed
// sibling post, so an early failure survives being settled last by a
// succeeding worker.
func (r *strategyRepository) ResolveOutcome(ctx context.Context, failure models.StrategyStatus, id int64) error {
	query := `
		UPDATE strategies SET status = CASE
			WHEN EXISTS (SELECT 1 FROM posts WHERE strategy_id = $1 AND status IN ('pending', 'publishing')) THEN 'posting'
			WHEN NOT EXISTS (SELECT 1 FROM posts WHERE strategy_id = $1 AND status <> 'published') THEN 'posted'
			ELSE COALESCE(
				NULLIF($2, ''),
				(SELECT CASE p.status
					WHEN 'failed_auth' THEN 'failed_credentials'
					WHEN 'failed_image' THEN 'failed_network'
					WHEN 'failed_network' THEN 'failed_network'
					WHEN 'failed_publish' THEN 'failed_social_network'
					ELSE 'failed'
				END
				FROM posts p
				WHERE p.strategy_id = $1 AND p.status NOT IN ('pending', 'publishing', 'published')
				ORDER BY p.updated_at DESC
				LIMIT 1),
				strategies.status)
		END, updated_at = $3
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query, id, string(failure), time.Now())
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
