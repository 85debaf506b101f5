package repository

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
)

type ScheduledJobRepository interface {
	Create(ctx context.Context, job *models.ScheduledJob) (int64, error)
	List(ctx context.Context) ([]*models.ScheduledJob, error)
	Remove(ctx context.Context, id int64) error
}

type scheduledJobRepository struct {
	db *sql.DB
}

func NewScheduledJobRepository(db *sql.DB) ScheduledJobRepository {
	return &scheduledJobRepository{db: db}
}

func (r *scheduledJobRepository) Create(ctx context.Context, job *models.ScheduledJob) (int64, error) {
	query := `
		INSERT INTO scheduled_jobs (name, cron_expr, handler, args)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`

	var id int64
	err := r.db.QueryRowContext(ctx, query, job.Name, job.CronExpr, job.Handler, job.Args).Scan(&id)
	if err != nil {
		slog.Info(err.Error())
		return 0, err
	}

	return id, nil
}

func (r *scheduledJobRepository) List(ctx context.Context) ([]*models.ScheduledJob, error) {
	query := `SELECT id, name, cron_expr, handler, args, created_at FROM scheduled_jobs ORDER BY id`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer rows.Close()

	var jobs []*models.ScheduledJob
	for rows.Next() {
		var job models.ScheduledJob
		err := rows.Scan(&job.ID, &job.Name, &job.CronExpr, &job.Handler, &job.Args, &job.CreatedAt)
		if err != nil {
			slog.Info(err.Error())
			return nil, err
		}
		jobs = append(jobs, &job)
	}
	return jobs, nil
}

func (r *scheduledJobRepository) Remove(ctx context.Context, id int64) error {
	query := `DELETE FROM scheduled_jobs WHERE id = $1`
	_, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		slog.Info(err.Error())
		return err
	}
	return nil
}
