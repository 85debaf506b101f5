package transfer

// StrategyCreation is the request body accepted at the pipeline boundary.
type StrategyCreation struct {
	CompanyID    int64  `json:"company_id"`
	TeamMemberID int64  `json:"team_member_id"`
	Description  string `json:"description"`
	FromSchedule string `json:"from_schedule"`
	ToSchedule   string `json:"to_schedule"`
}

// OrchestrationResult is what one orchestrator run reports back.
type OrchestrationResult struct {
	Status         string `json:"status"`
	Message        string `json:"message,omitempty"`
	StrategyID     int64  `json:"strategy_id"`
	ScheduledCount int    `json:"scheduled_count"`
}
