package queue

import (
	"net/http"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
)

const (
	TaskTypeCreateStrategy = "strategy:create"
	TaskTypePublishPost    = "post:publish"

	PlatformTwitter = "twitter"
)

// CreateStrategyPayload triggers one orchestrator run for a pending strategy.
type CreateStrategyPayload struct {
	StrategyID   int64  `json:"strategy_id"`
	TeamMemberID int64  `json:"team_member_id"`
	Description  string `json:"description"`
}

// PublishPostPayload is the argument envelope of one scheduled publish job.
type PublishPostPayload struct {
	PostID       int64  `json:"post_id"`
	TeamMemberID int64  `json:"team_member_id"`
	Platform     string `json:"platform"`
}

// PlatformClientFactory builds a platform client from resolved credentials.
// Injected so workers never reach for ambient global clients.
type PlatformClientFactory func(creds *models.TwitterCredentials) service.PlatformClient

type Queue struct {
	sr          repository.StrategyRepository
	pr          repository.PostRepository
	pa          repository.PostingAttemptRepository
	gen         service.GeneratorService
	scheduler   service.SchedulerService
	creds       service.CredentialsService
	newPlatform PlatformClientFactory
	httpClient  *http.Client
}

func NewQueue(
	sr repository.StrategyRepository,
	pr repository.PostRepository,
	pa repository.PostingAttemptRepository,
	gen service.GeneratorService,
	scheduler service.SchedulerService,
	creds service.CredentialsService,
	newPlatform PlatformClientFactory) *Queue {
	return &Queue{
		sr:          sr,
		pr:          pr,
		pa:          pa,
		gen:         gen,
		scheduler:   scheduler,
		creds:       creds,
		newPlatform: newPlatform,
		httpClient:  &http.Client{Timeout: 1 * time.Minute},
	}
}
