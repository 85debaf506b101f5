package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"regexp"
	"strings"
	"time"

	cfg "github.com/easy-post-ia-1/easy-post-ia-backend/configs"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/repository"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/transfer"
	"github.com/google/uuid"
)

// ImageOptions are the generation parameters forwarded to the image model.
type ImageOptions struct {
	CfgScale int
	Seed     int
	Steps    int
	Width    int
	Height   int
}

// BuildOptions attribute generated posts to a strategy and its requesting actor.
type BuildOptions struct {
	StrategyID   int64
	TeamMemberID int64
	FromSchedule time.Time
	ToSchedule   time.Time
}

type GeneratorService interface {
	GenerateText(ctx context.Context, prompt string) ([]transfer.PostDescriptor, error)
	GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (string, error)
	BuildPosts(ctx context.Context, userPrompt string, opts BuildOptions) (*transfer.BuildResult, error)
}

type generatorService struct {
	cfg     cfg.Config
	pr      repository.PostRepository
	storage StorageService
	client  *http.Client
}

func NewGeneratorService(cfg cfg.Config, pr repository.PostRepository, storage StorageService) GeneratorService {
	return &generatorService{
		cfg:     cfg,
		pr:      pr,
		storage: storage,
		client:  &http.Client{Timeout: 2 * time.Minute},
	}
}

// jsonArrayPattern pulls the descriptor array out of the model output, which
// may wrap it in prose.
var jsonArrayPattern = regexp.MustCompile(`(?s)\[.*\]`)

func (s *generatorService) GenerateText(ctx context.Context, prompt string) ([]transfer.PostDescriptor, error) {
	reqBody := transfer.TextGenerationRequest{
		Model:       s.cfg.Generator.TextModelID,
		Prompt:      prompt,
		Temperature: 0.7,
		TopP:        1,
	}

	body, err := s.invokeModel(ctx, "/model/invoke-text", reqBody)
	if err != nil {
		return nil, err
	}

	var res transfer.TextGenerationResponse
	if err := json.Unmarshal(body, &res); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("malformed text generation response: %w", err)
	}

	raw := jsonArrayPattern.FindString(res.Generation)
	if raw == "" {
		return nil, errors.New("text generation response contains no post array")
	}

	var descriptors []transfer.PostDescriptor
	if err := json.Unmarshal([]byte(raw), &descriptors); err != nil {
		slog.Info(err.Error())
		return nil, fmt.Errorf("malformed post descriptors: %w", err)
	}

	return descriptors, nil
}

func (s *generatorService) GenerateImage(ctx context.Context, prompt string, opts ImageOptions) (string, error) {
	if opts.CfgScale == 0 {
		opts.CfgScale = 8
	}
	if opts.Seed == 0 {
		opts.Seed = 42
	}
	if opts.Steps == 0 {
		opts.Steps = 50
	}
	if opts.Width == 0 {
		opts.Width = 512
	}
	if opts.Height == 0 {
		opts.Height = 512
	}

	reqBody := transfer.ImageGenerationRequest{
		Model:       s.cfg.Generator.ImageModelID,
		TextPrompts: []transfer.TextPrompt{{Text: prompt, Weight: 1}},
		CfgScale:    opts.CfgScale,
		Seed:        opts.Seed,
		Steps:       opts.Steps,
		Width:       opts.Width,
		Height:      opts.Height,
	}

	body, err := s.invokeModel(ctx, "/model/invoke-image", reqBody)
	if err != nil {
		return "", err
	}

	var res transfer.ImageGenerationResponse
	if err := json.Unmarshal(body, &res); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("malformed image generation response: %w", err)
	}
	if len(res.Artifacts) == 0 {
		return "", errors.New("image generation returned no artifacts")
	}

	key := fmt.Sprintf("post-img-%s.jpg", uuid.NewString())
	url, err := s.storage.UploadBase64(ctx, res.Artifacts[0].Base64, key)
	if err != nil {
		return "", err
	}

	slog.Info("generated image", "url", url)
	return url, nil
}

// BuildPosts maps each generated descriptor 1:1 to a persisted post. Image
// failures degrade to a post without an image; a failed or empty text
// generation fails the whole build.
func (s *generatorService) BuildPosts(ctx context.Context, userPrompt string, opts BuildOptions) (*transfer.BuildResult, error) {
	prompt := MarketingStrategyTemplate(2, opts.FromSchedule, opts.ToSchedule) + userPrompt

	descriptors, err := s.GenerateText(ctx, prompt)
	if err != nil {
		return &transfer.BuildResult{Status: transfer.BuildStatusFailed, PostIDs: []int64{}, Error: err.Error()}, err
	}
	if len(descriptors) == 0 {
		return &transfer.BuildResult{Status: transfer.BuildStatusFailed, PostIDs: []int64{}, Error: "no posts generated"}, nil
	}

	postIDs := make([]int64, 0, len(descriptors))
	for _, d := range descriptors {
		scheduledAt, err := time.Parse(time.RFC3339, d.ProgrammingDateToPost)
		if err != nil {
			slog.Error("skipping post with invalid programming date", "title", d.Title, "date", d.ProgrammingDateToPost)
			continue
		}

		post := models.Post{
			StrategyID:            nullInt64(opts.StrategyID),
			TeamMemberID:          opts.TeamMemberID,
			Title:                 d.Title,
			Description:           d.Description,
			Tags:                  strings.Join(d.Tags, ", "),
			Category:              defaultString(d.Category, "Marketing"),
			Emoji:                 defaultString(d.Emoji, "🚀"),
			ProgrammingDateToPost: scheduledAt.UTC(),
			Status:                models.PostPending,
		}

		imageURL, err := s.GenerateImage(ctx, d.ImagePrompt, ImageOptions{})
		if err != nil {
			slog.Error("image generation failed, creating post without image", "title", d.Title, "error", err.Error())
		} else {
			post.ImageURL = nullString(imageURL)
		}

		postID, err := s.pr.Create(ctx, nil, &post)
		if err != nil {
			slog.Error("failed to create post", "title", d.Title, "error", err.Error())
			continue
		}

		postIDs = append(postIDs, postID)
		slog.Info("post created", "post_id", postID, "title", d.Title)
	}

	return &transfer.BuildResult{Status: transfer.BuildStatusSuccess, PostIDs: postIDs}, nil
}

func (s *generatorService) invokeModel(ctx context.Context, path string, payload any) ([]byte, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.cfg.Generator.BaseURL+path, bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if s.cfg.Generator.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+s.cfg.Generator.APIKey)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		slog.Info(err.Error())
		return nil, err
	}

	if resp.StatusCode != http.StatusOK {
		err := fmt.Errorf("model invocation failed with status %d: %s", resp.StatusCode, string(body))
		slog.Info(err.Error())
		return nil, err
	}

	return body, nil
}
