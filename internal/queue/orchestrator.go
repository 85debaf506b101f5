package queue

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/transfer"
	"github.com/hibiken/asynq"
)

var ErrStrategyNotFound = errors.New("strategy not found")

func (q *Queue) HandleCreateStrategyTask(ctx context.Context, task *asynq.Task) error {
	var payload CreateStrategyPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		slog.Error("invalid strategy task payload", "error", err.Error())
		return nil
	}

	result, err := q.RunStrategy(ctx, payload.StrategyID, payload.TeamMemberID, payload.Description)
	if err != nil {
		slog.Error("strategy orchestration failed", "strategy_id", payload.StrategyID, "error", err.Error())
		return nil
	}

	slog.Info("strategy orchestration finished",
		"strategy_id", result.StrategyID,
		"status", result.Status,
		"scheduled_count", result.ScheduledCount)
	return nil
}

// RunStrategy drives one strategy through generation and scheduling. A
// missing strategy fails fast without mutating anything; any later error
// leaves the strategy in failed with the cause recorded.
func (q *Queue) RunStrategy(ctx context.Context, strategyID, teamMemberID int64, brief string) (*transfer.OrchestrationResult, error) {
	strategy, err := q.sr.GetByID(ctx, strategyID)
	if err != nil {
		return nil, err
	}
	if strategy == nil {
		return nil, ErrStrategyNotFound
	}

	result, err := q.runStrategy(ctx, strategy, teamMemberID, brief)
	if err != nil {
		if ferr := q.sr.SetFailure(ctx, models.StrategyFailed, err.Error(), strategyID); ferr != nil {
			slog.Error("failed to record strategy failure", "strategy_id", strategyID, "error", ferr.Error())
		}
		return nil, err
	}
	return result, nil
}

func (q *Queue) runStrategy(ctx context.Context, strategy *models.Strategy, teamMemberID int64, brief string) (*transfer.OrchestrationResult, error) {
	slog.Info("processing strategy",
		"strategy_id", strategy.ID,
		"from", strategy.FromSchedule,
		"to", strategy.ToSchedule,
		"description", strategy.Description)

	if err := q.sr.UpdateStatus(ctx, models.StrategyGenerating, strategy.ID); err != nil {
		return nil, err
	}

	build, err := q.gen.BuildPosts(ctx, brief, service.BuildOptions{
		StrategyID:   strategy.ID,
		TeamMemberID: teamMemberID,
		FromSchedule: strategy.FromSchedule,
		ToSchedule:   strategy.ToSchedule,
	})
	if err != nil {
		return nil, err
	}
	if build.Status != transfer.BuildStatusSuccess || len(build.PostIDs) == 0 {
		message := "No posts created"
		if err := q.sr.SetFailure(ctx, models.StrategyFailed, message, strategy.ID); err != nil {
			return nil, err
		}
		return &transfer.OrchestrationResult{
			Status:     "error",
			Message:    message,
			StrategyID: strategy.ID,
		}, nil
	}

	if err := q.sr.UpdateStatus(ctx, models.StrategyScheduling, strategy.ID); err != nil {
		return nil, err
	}

	scheduled := 0
	for _, postID := range build.PostIDs {
		post, err := q.pr.GetByID(ctx, postID)
		if err != nil || post == nil {
			slog.Error("generated post missing, skipping schedule", "post_id", postID)
			continue
		}

		name := service.JobName(TaskTypePublishPost, postID, time.Now())
		expr := service.CronExpr(post.ProgrammingDateToPost)
		payload := PublishPostPayload{
			PostID:       postID,
			TeamMemberID: teamMemberID,
			Platform:     PlatformTwitter,
		}

		if !q.scheduler.Schedule(ctx, name, expr, TaskTypePublishPost, payload) {
			slog.Error("failed to schedule post, continuing with batch", "post_id", postID)
			continue
		}
		scheduled++
	}

	if err := q.sr.UpdateStatus(ctx, models.StrategyScheduled, strategy.ID); err != nil {
		return nil, err
	}

	return &transfer.OrchestrationResult{
		Status:         "success",
		StrategyID:     strategy.ID,
		ScheduledCount: scheduled,
	}, nil
}
