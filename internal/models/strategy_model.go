package models

import (
	"database/sql"
	"time"
)

// StrategyStatus is the closed set of strategy lifecycle states. The three
// in-progress states exist so observers can tell which stage failed.
type StrategyStatus string

const (
	StrategyPending             StrategyStatus = "pending"
	StrategyGenerating          StrategyStatus = "generating"
	StrategyScheduling          StrategyStatus = "scheduling"
	StrategyPosting             StrategyStatus = "posting"
	StrategyScheduled           StrategyStatus = "scheduled"
	StrategyPosted              StrategyStatus = "posted"
	StrategyFailed              StrategyStatus = "failed"
	StrategyFailedCredentials   StrategyStatus = "failed_credentials"
	StrategyFailedNetwork       StrategyStatus = "failed_network"
	StrategyFailedSocialNetwork StrategyStatus = "failed_social_network"
	StrategyFailedSystem        StrategyStatus = "failed_system"
)

func (s StrategyStatus) Valid() bool {
	switch s {
	case StrategyPending, StrategyGenerating, StrategyScheduling, StrategyPosting,
		StrategyScheduled, StrategyPosted, StrategyFailed, StrategyFailedCredentials,
		StrategyFailedNetwork, StrategyFailedSocialNetwork, StrategyFailedSystem:
		return true
	}
	return false
}

// Terminal reports whether no further pipeline stage will touch the strategy.
func (s StrategyStatus) Terminal() bool {
	switch s {
	case StrategyPosted, StrategyFailed, StrategyFailedCredentials,
		StrategyFailedNetwork, StrategyFailedSocialNetwork, StrategyFailedSystem:
		return true
	case StrategyPending, StrategyGenerating, StrategyScheduling, StrategyPosting,
		StrategyScheduled:
		return false
	}
	return false
}

type Strategy struct {
	ID           int64          `db:"id" json:"id"`
	CompanyID    int64          `db:"company_id" json:"company_id"`
	TeamMemberID int64          `db:"team_member_id" json:"team_member_id"`
	Description  string         `db:"description" json:"description"`
	FromSchedule time.Time      `db:"from_schedule" json:"from_schedule"`
	ToSchedule   time.Time      `db:"to_schedule" json:"to_schedule"`
	Status       StrategyStatus `db:"status" json:"status"`
	ErrorMessage sql.NullString `db:"error_message" json:"error_message"`
	CreatedAt    time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at" json:"updated_at"`
}
