package job

import (
	"context"
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
)

// Handler consumes the argument payload of a fired registry entry.
type Handler func(ctx context.Context, args string) error

// DispatchJob is the read side of the scheduling registry: every minute it
// fires the entries whose fire time has been reached and removes them, making
// each entry one-shot despite the yearly-recurring 5-field dialect. An entry
// whose fire fails stays in the registry and is retried on the next tick; a
// fire minute missed entirely is caught up the same way.
type DispatchJob struct {
	jr       repository.ScheduledJobRepository
	handlers map[string]Handler
	now      func() time.Time
}

func NewDispatchJob(jr repository.ScheduledJobRepository) *DispatchJob {
	return &DispatchJob{
		jr:       jr,
		handlers: make(map[string]Handler),
		now:      time.Now,
	}
}

// Register binds a handler identifier to its typed consumer. Entries with an
// unknown handler are left in place and logged.
func (d *DispatchJob) Register(handler string, fn Handler) {
	d.handlers[handler] = fn
}

func (d *DispatchJob) DispatchDue() {
	ctx := context.Background()

	jobs, err := d.jr.List(ctx)
	if err != nil {
		slog.Info(err.Error())
		return
	}

	now := d.now()
	for _, job := range jobs {
		if !service.DueSince(job.CronExpr, job.CreatedAt, now) {
			continue
		}
		d.fire(ctx, job)
	}
}

func (d *DispatchJob) fire(ctx context.Context, job *models.ScheduledJob) {
	fn, ok := d.handlers[job.Handler]
	if !ok {
		slog.Error("no handler registered for scheduled job", "name", job.Name, "handler", job.Handler)
		return
	}

	if err := fn(ctx, job.Args); err != nil {
		slog.Error("scheduled job failed to fire", "name", job.Name, "error", err.Error())
		return
	}

	slog.Info("scheduled job fired", "name", job.Name, "handler", job.Handler)

	if err := d.jr.Remove(ctx, job.ID); err != nil {
		slog.Error("failed to remove fired job", "name", job.Name, "error", err.Error())
	}
}
