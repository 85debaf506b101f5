package queue

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/transfer"
)

type fakeStrategyRepo struct {
	strategies map[int64]*models.Strategy
	history    []models.StrategyStatus
	failures   []string
	outcomes   []models.StrategyStatus
}

func newFakeStrategyRepo(strategies ...*models.Strategy) *fakeStrategyRepo {
	repo := &fakeStrategyRepo{strategies: make(map[int64]*models.Strategy)}
	for _, st := range strategies {
		repo.strategies[st.ID] = st
	}
	return repo
}

func (f *fakeStrategyRepo) GetByID(ctx context.Context, id int64) (*models.Strategy, error) {
	return f.strategies[id], nil
}

func (f *fakeStrategyRepo) Create(ctx context.Context, strategy *models.Strategy) (int64, error) {
	id := int64(len(f.strategies) + 1)
	strategy.ID = id
	f.strategies[id] = strategy
	return id, nil
}

func (f *fakeStrategyRepo) UpdateStatus(ctx context.Context, status models.StrategyStatus, id int64) error {
	f.history = append(f.history, status)
	if st, ok := f.strategies[id]; ok {
		st.Status = status
	}
	return nil
}

func (f *fakeStrategyRepo) SetFailure(ctx context.Context, status models.StrategyStatus, message string, id int64) error {
	f.history = append(f.history, status)
	f.failures = append(f.failures, message)
	if st, ok := f.strategies[id]; ok {
		st.Status = status
		st.ErrorMessage = sql.NullString{String: message, Valid: true}
	}
	return nil
}

func (f *fakeStrategyRepo) ResolveOutcome(ctx context.Context, failure models.StrategyStatus, id int64) error {
	f.outcomes = append(f.outcomes, failure)
	return nil
}

type fakePostRepo struct {
	posts     map[int64]*models.Post
	statuses  map[int64]models.PostStatus
	published []int64
}

func newFakePostRepo(posts ...*models.Post) *fakePostRepo {
	repo := &fakePostRepo{
		posts:    make(map[int64]*models.Post),
		statuses: make(map[int64]models.PostStatus),
	}
	for _, post := range posts {
		repo.posts[post.ID] = post
	}
	return repo
}

func (f *fakePostRepo) GetByID(ctx context.Context, id int64) (*models.Post, error) {
	return f.posts[id], nil
}

func (f *fakePostRepo) Create(ctx context.Context, tx *sql.Tx, post *models.Post) (int64, error) {
	id := int64(len(f.posts) + 1)
	post.ID = id
	f.posts[id] = post
	return id, nil
}

func (f *fakePostRepo) GetByStrategyID(ctx context.Context, strategyID int64) ([]*models.Post, error) {
	var posts []*models.Post
	for _, post := range f.posts {
		if post.StrategyID.Valid && post.StrategyID.Int64 == strategyID {
			posts = append(posts, post)
		}
	}
	return posts, nil
}

func (f *fakePostRepo) UpdateStatus(ctx context.Context, status models.PostStatus, postID int64) error {
	f.statuses[postID] = status
	if post, ok := f.posts[postID]; ok {
		post.Status = status
	}
	return nil
}

func (f *fakePostRepo) MarkPublished(ctx context.Context, postID int64) error {
	f.published = append(f.published, postID)
	if post, ok := f.posts[postID]; ok {
		post.Status = models.PostPublished
		post.IsPublished = true
	}
	return nil
}

type fakeAttemptRepo struct {
	attempts []*models.PostingAttempt
}

func (f *fakeAttemptRepo) Create(ctx context.Context, attempt *models.PostingAttempt) (int64, error) {
	f.attempts = append(f.attempts, attempt)
	return int64(len(f.attempts)), nil
}

func (f *fakeAttemptRepo) GetByPostID(ctx context.Context, postID int64) ([]*models.PostingAttempt, error) {
	return f.attempts, nil
}

type fakeGenerator struct {
	result *transfer.BuildResult
	err    error
}

func (f *fakeGenerator) GenerateText(ctx context.Context, prompt string) ([]transfer.PostDescriptor, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeGenerator) GenerateImage(ctx context.Context, prompt string, opts service.ImageOptions) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeGenerator) BuildPosts(ctx context.Context, userPrompt string, opts service.BuildOptions) (*transfer.BuildResult, error) {
	return f.result, f.err
}

type scheduledCall struct {
	name     string
	cronExpr string
	handler  string
	payload  any
}

type fakeScheduler struct {
	calls  []scheduledCall
	reject bool
}

func (f *fakeScheduler) Schedule(ctx context.Context, name, cronExpr, handler string, payload any) bool {
	if f.reject {
		return false
	}
	f.calls = append(f.calls, scheduledCall{name: name, cronExpr: cronExpr, handler: handler, payload: payload})
	return true
}

type fakeCredentials struct {
	creds *models.TwitterCredentials
	err   error
}

func (f *fakeCredentials) ResolveTwitter(ctx context.Context, companyID int64) (*models.TwitterCredentials, error) {
	return f.creds, f.err
}

type fakePlatformClient struct {
	uploadedMedia [][]byte
	tweets        []string
	mediaErr      error
	tweetErr      error
}

func (f *fakePlatformClient) UploadMedia(ctx context.Context, media []byte, category string) (string, error) {
	if f.mediaErr != nil {
		return "", f.mediaErr
	}
	f.uploadedMedia = append(f.uploadedMedia, media)
	return "media123", nil
}

func (f *fakePlatformClient) CreateTweet(ctx context.Context, text string, mediaIDs []string) (string, error) {
	if f.tweetErr != nil {
		return "", f.tweetErr
	}
	f.tweets = append(f.tweets, text)
	return "tweet123", nil
}

func testStrategy(id, companyID int64) *models.Strategy {
	return &models.Strategy{
		ID:           id,
		CompanyID:    companyID,
		TeamMemberID: 7,
		Description:  "cars",
		FromSchedule: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		ToSchedule:   time.Date(2025, 1, 14, 0, 0, 0, 0, time.UTC),
		Status:       models.StrategyPending,
	}
}

func testPost(id, strategyID int64, imageURL string) *models.Post {
	return &models.Post{
		ID:                    id,
		StrategyID:            sql.NullInt64{Int64: strategyID, Valid: strategyID != 0},
		TeamMemberID:          7,
		Title:                 "Boost Your Business!",
		Description:           "Stay ahead of the competition with our expert marketing strategies.",
		Tags:                  "#marketing, #business",
		Category:              "Marketing",
		Emoji:                 "🚀",
		ImageURL:              sql.NullString{String: imageURL, Valid: imageURL != ""},
		ProgrammingDateToPost: time.Date(2025, 3, 15, 14, 30, 0, 0, time.UTC),
		Status:                models.PostPending,
	}
}
