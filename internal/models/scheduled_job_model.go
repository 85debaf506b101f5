package models

import "time"

// ScheduledJob is one entry of the scheduling registry: a named cron-keyed
// trigger for a queue task. Entries are one-shot and removed after firing.
type ScheduledJob struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	CronExpr  string    `db:"cron_expr" json:"cron_expr"`
	Handler   string    `db:"handler" json:"handler"`
	Args      string    `db:"args" json:"args"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
