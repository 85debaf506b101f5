package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
	"github.com/hibiken/asynq"
)

func (q *Queue) HandlePublishPostTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPostPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		slog.Error("invalid publish task payload", "error", err.Error())
		return nil
	}

	// Failures become status values, never retries.
	q.PublishPost(ctx, payload)
	return nil
}

// PublishPost publishes a single post at its scheduled time. Each branch
// resolves into a post status plus a strategy failure class; sibling posts
// are untouched.
func (q *Queue) PublishPost(ctx context.Context, payload PublishPostPayload) {
	post, err := q.pr.GetByID(ctx, payload.PostID)
	if err != nil {
		slog.Error("failed to load post", "post_id", payload.PostID, "error", err.Error())
		return
	}
	if post == nil {
		slog.Error("post not found", "post_id", payload.PostID)
		return
	}

	if !post.StrategyID.Valid {
		slog.Error("post has no strategy, nowhere to report status", "post_id", post.ID)
		return
	}
	strategy, err := q.sr.GetByID(ctx, post.StrategyID.Int64)
	if err != nil || strategy == nil {
		slog.Error("strategy not found for post", "post_id", post.ID)
		return
	}

	if err := q.sr.UpdateStatus(ctx, models.StrategyPosting, strategy.ID); err != nil {
		slog.Error("failed to mark strategy posting", "strategy_id", strategy.ID, "error", err.Error())
		return
	}
	if err := q.pr.UpdateStatus(ctx, models.PostPublishing, post.ID); err != nil {
		slog.Error("failed to mark post publishing", "post_id", post.ID, "error", err.Error())
		return
	}

	switch payload.Platform {
	case PlatformTwitter:
		q.publishToTwitter(ctx, post, strategy, payload)
	default:
		slog.Error("unsupported platform", "platform", payload.Platform, "team_member_id", payload.TeamMemberID)
		q.settle(ctx, post, strategy, payload,
			models.PostFailedPublish, models.StrategyFailed,
			fmt.Sprintf("unsupported platform: %s", payload.Platform))
	}
}

func (q *Queue) publishToTwitter(ctx context.Context, post *models.Post, strategy *models.Strategy, payload PublishPostPayload) {
	creds, err := q.creds.ResolveTwitter(ctx, strategy.CompanyID)
	if err != nil {
		q.settle(ctx, post, strategy, payload,
			models.PostFailedAuth, models.StrategyFailedCredentials,
			fmt.Sprintf("failed to resolve credentials: %v", err))
		return
	}
	if !creds.HasCredentials() {
		slog.Error("missing twitter credentials, skipping publish", "company_id", strategy.CompanyID, "post_id", post.ID)
		q.settle(ctx, post, strategy, payload,
			models.PostFailedAuth, models.StrategyFailedCredentials,
			"missing or incomplete twitter credentials")
		return
	}

	client := q.newPlatform(creds)

	var mediaIDs []string
	if post.ImageURL.Valid {
		media, err := q.downloadImage(ctx, post.ImageURL.String)
		if err != nil {
			q.settle(ctx, post, strategy, payload,
				models.PostFailedImage, models.StrategyFailedNetwork,
				fmt.Sprintf("failed to download image: %v", err))
			return
		}

		mediaID, err := client.UploadMedia(ctx, media, service.MediaCategoryTweetImage)
		if err != nil {
			postStatus, strategyStatus := classifyPublishError(err)
			q.settle(ctx, post, strategy, payload, postStatus, strategyStatus,
				fmt.Sprintf("failed to upload media: %v", err))
			return
		}
		mediaIDs = append(mediaIDs, mediaID)
	}

	tweetID, err := client.CreateTweet(ctx, post.Description, mediaIDs)
	if err != nil {
		postStatus, strategyStatus := classifyPublishError(err)
		q.settle(ctx, post, strategy, payload, postStatus, strategyStatus,
			fmt.Sprintf("failed to create tweet: %v", err))
		return
	}

	slog.Info("post published", "post_id", post.ID, "tweet_id", tweetID)

	if err := q.pr.MarkPublished(ctx, post.ID); err != nil {
		slog.Error("failed to mark post published", "post_id", post.ID, "error", err.Error())
	}
	q.recordAttempt(ctx, post, payload, "")
	if err := q.sr.ResolveOutcome(ctx, "", strategy.ID); err != nil {
		slog.Error("failed to resolve strategy outcome", "strategy_id", strategy.ID, "error", err.Error())
	}
}

// settle writes the terminal post status, records the attempt, and settles
// the strategy with this worker's failure class.
func (q *Queue) settle(ctx context.Context, post *models.Post, strategy *models.Strategy, payload PublishPostPayload, postStatus models.PostStatus, strategyStatus models.StrategyStatus, message string) {
	slog.Error("publish attempt failed",
		"post_id", post.ID,
		"strategy_id", strategy.ID,
		"post_status", string(postStatus),
		"error", message)

	if err := q.pr.UpdateStatus(ctx, postStatus, post.ID); err != nil {
		slog.Error("failed to update post status", "post_id", post.ID, "error", err.Error())
	}
	q.recordAttempt(ctx, post, payload, message)
	if err := q.sr.ResolveOutcome(ctx, strategyStatus, strategy.ID); err != nil {
		slog.Error("failed to resolve strategy outcome", "strategy_id", strategy.ID, "error", err.Error())
	}
}

func (q *Queue) recordAttempt(ctx context.Context, post *models.Post, payload PublishPostPayload, errorMessage string) {
	attempt := models.PostingAttempt{
		PostID:       post.ID,
		TeamMemberID: payload.TeamMemberID,
		Platform:     payload.Platform,
		ErrorMessage: errorMessage,
	}
	if _, err := q.pa.Create(ctx, &attempt); err != nil {
		slog.Error("failed to record posting attempt", "post_id", post.ID, "error", err.Error())
	}
}

func (q *Queue) downloadImage(ctx context.Context, imageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return nil, err
	}

	resp, err := q.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image download returned status %d", resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// classifyPublishError buckets a publish failure so operators can tell a
// platform rejection from transient infrastructure from a code defect.
func classifyPublishError(err error) (models.PostStatus, models.StrategyStatus) {
	var apiErr *service.PlatformAPIError
	var urlErr *url.Error
	switch {
	case errors.As(err, &apiErr):
		return models.PostFailedPublish, models.StrategyFailedSocialNetwork
	case errors.As(err, &urlErr):
		return models.PostFailedNetwork, models.StrategyFailedNetwork
	default:
		return models.PostFailedPublish, models.StrategyFailedSystem
	}
}
