package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/robfig/cron/v3"
)

// SchedulerService is the write side of the scheduling registry: it derives
// cron expressions from post timestamps and registers uniquely named one-shot
// jobs. Firing is the dispatcher's business.
type SchedulerService interface {
	Schedule(ctx context.Context, name, cronExpr, handler string, payload any) bool
}

type schedulerService struct {
	jr repository.ScheduledJobRepository
}

func NewSchedulerService(jr repository.ScheduledJobRepository) SchedulerService {
	return &schedulerService{jr: jr}
}

// CronExpr renders the exact wall-clock minute of t (UTC) as a 5-field cron
// expression. The dialect has no year field, so the expression alone would
// recur yearly; entries are one-shot because the dispatcher removes them
// after firing.
func CronExpr(t time.Time) string {
	return t.UTC().Format("04 15 02 01 *")
}

// JobName derives a registry name unique across re-runs of the same strategy.
func JobName(handler string, postID int64, now time.Time) string {
	return fmt.Sprintf("%s-%d-%d", handler, postID, now.Unix())
}

// DueSince reports whether the expression's first fire at or after the
// registration minute is no later than at. Entries are removed once fired, so
// a fire minute that passed while the dispatcher was down, or whose fire
// previously failed, still counts as due and is retried on the next tick.
func DueSince(cronExpr string, registered, at time.Time) bool {
	sched, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return false
	}
	from := registered.UTC().Truncate(time.Minute).Add(-time.Second)
	return !sched.Next(from).After(at.UTC())
}

// Schedule registers a named job. It returns acceptance, not completion: an
// invalid expression or a storage failure yields false so callers can skip
// the item without failing their batch.
func (s *schedulerService) Schedule(ctx context.Context, name, cronExpr, handler string, payload any) bool {
	if _, err := cron.ParseStandard(cronExpr); err != nil {
		slog.Error("invalid cron expression, skipping job", "name", name, "cron", cronExpr, "error", err.Error())
		return false
	}

	args, err := json.Marshal(payload)
	if err != nil {
		slog.Error("failed to encode job args", "name", name, "error", err.Error())
		return false
	}

	job := models.ScheduledJob{
		Name:     name,
		CronExpr: cronExpr,
		Handler:  handler,
		Args:     string(args),
	}

	if _, err := s.jr.Create(ctx, &job); err != nil {
		slog.Error("failed to register scheduled job", "name", name, "error", err.Error())
		return false
	}

	slog.Info("scheduled job registered", "name", name, "cron", cronExpr, "handler", handler)
	return true
}
