package handlers

import (
	"log/slog"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/queue"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/transfer"
	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
)

type StrategyHandler struct {
	sr          repository.StrategyRepository
	pr          repository.PostRepository
	pa          repository.PostingAttemptRepository
	AsynqClient *asynq.Client
}

func NewStrategyHandler(sr repository.StrategyRepository, pr repository.PostRepository, pa repository.PostingAttemptRepository, asynqClient *asynq.Client) *StrategyHandler {
	return &StrategyHandler{sr: sr, pr: pr, pa: pa, AsynqClient: asynqClient}
}

// postStatusView is a post plus its publish attempt history, the unit of the
// status projection.
type postStatusView struct {
	*models.Post
	Attempts []*models.PostingAttempt `json:"attempts"`
}

// CreateStrategy accepts a campaign request and hands it to the orchestrator.
// The caller gets the strategy id back and polls status from then on.
func (h *StrategyHandler) CreateStrategy(c *fiber.Ctx) error {
	var sc transfer.StrategyCreation
	if err := c.BodyParser(&sc); err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	if missing := missingParams(&sc); missing != "" {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Missing parameters: " + missing,
		})
	}

	fromSchedule, err := parseScheduleDate(sc.FromSchedule)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Invalid from_schedule",
		})
	}
	toSchedule, err := parseScheduleDate(sc.ToSchedule)
	if err != nil {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"error": "Invalid to_schedule",
		})
	}

	strategy := models.Strategy{
		CompanyID:    sc.CompanyID,
		TeamMemberID: sc.TeamMemberID,
		Description:  sc.Description,
		FromSchedule: fromSchedule,
		ToSchedule:   toSchedule,
		Status:       models.StrategyPending,
	}

	strategyID, err := h.sr.Create(c.Context(), &strategy)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	err = queue.EnqueueCreateStrategy(h.AsynqClient, queue.CreateStrategyPayload{
		StrategyID:   strategyID,
		TeamMemberID: sc.TeamMemberID,
		Description:  sc.Description,
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Error enqueueing strategy",
		})
	}

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"message":     "Strategy accepted",
		"strategy_id": strategyID,
	})
}

// GetStrategy is the status-polling surface: strategy status plus its posts.
func (h *StrategyHandler) GetStrategy(c *fiber.Ctx) error {
	strategyID, err := c.ParamsInt("id")
	if err != nil || strategyID <= 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid strategy id",
		})
	}

	strategy, err := h.sr.GetByID(c.Context(), int64(strategyID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if strategy == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Strategy not found",
		})
	}

	posts, err := h.pr.GetByStrategyID(c.Context(), strategy.ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list strategy posts",
		})
	}

	views := make([]postStatusView, 0, len(posts))
	for _, post := range posts {
		attempts, err := h.pa.GetByPostID(c.Context(), post.ID)
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Unable to list posting attempts",
			})
		}
		views = append(views, postStatusView{Post: post, Attempts: attempts})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"strategy": strategy,
		"posts":    views,
	})
}

func missingParams(sc *transfer.StrategyCreation) string {
	missing := ""
	appendMissing := func(name string) {
		if missing != "" {
			missing += ", "
		}
		missing += name
	}

	if sc.Description == "" {
		appendMissing("description")
	}
	if sc.FromSchedule == "" {
		appendMissing("from_schedule")
	}
	if sc.ToSchedule == "" {
		appendMissing("to_schedule")
	}
	return missing
}

func parseScheduleDate(value string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
