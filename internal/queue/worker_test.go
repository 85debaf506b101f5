package queue

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validCredentials() *models.TwitterCredentials {
	return &models.TwitterCredentials{
		CompanyID:         10,
		APIKey:            "key",
		APIKeySecret:      "secret",
		AccessToken:       "token",
		AccessTokenSecret: "token_secret",
	}
}

func newPublishQueue(sr *fakeStrategyRepo, pr *fakePostRepo, creds *fakeCredentials, platform *fakePlatformClient) (*Queue, *fakeAttemptRepo) {
	attempts := &fakeAttemptRepo{}
	factory := func(c *models.TwitterCredentials) service.PlatformClient { return platform }
	q := NewQueue(sr, pr, attempts, &fakeGenerator{}, &fakeScheduler{}, creds, factory)
	return q, attempts
}

func TestPublishPost_Success(t *testing.T) {
	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	pr := newFakePostRepo(post)
	platform := &fakePlatformClient{}

	q, attempts := newPublishQueue(sr, pr, &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	require.Len(t, platform.tweets, 1)
	assert.Equal(t, post.Description, platform.tweets[0])
	assert.Equal(t, []int64{1001}, pr.published)
	assert.True(t, post.IsPublished)

	require.Len(t, attempts.attempts, 1)
	assert.Empty(t, attempts.attempts[0].ErrorMessage)

	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyStatus(""), sr.outcomes[0], "a successful publish proposes no failure class")
}

func TestPublishPost_SuccessWithImage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("image_data"))
	}))
	defer server.Close()

	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, server.URL+"/img.jpg")
	sr := newFakeStrategyRepo(strategy)
	pr := newFakePostRepo(post)
	platform := &fakePlatformClient{}

	q, _ := newPublishQueue(sr, pr, &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	require.Len(t, platform.uploadedMedia, 1)
	assert.Equal(t, []byte("image_data"), platform.uploadedMedia[0])
	assert.Equal(t, []int64{1001}, pr.published)
}

func TestPublishPost_MissingCredentials(t *testing.T) {
	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	pr := newFakePostRepo(post)
	platform := &fakePlatformClient{}

	q, attempts := newPublishQueue(sr, pr, &fakeCredentials{creds: nil}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Empty(t, platform.tweets, "no publish attempt without credentials")
	assert.Empty(t, platform.uploadedMedia)
	assert.Equal(t, models.PostFailedAuth, post.Status)

	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyFailedCredentials, sr.outcomes[0])

	require.Len(t, attempts.attempts, 1)
	assert.Contains(t, attempts.attempts[0].ErrorMessage, "credentials")
}

func TestPublishPost_IncompleteCredentials(t *testing.T) {
	creds := validCredentials()
	creds.AccessTokenSecret = ""

	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	platform := &fakePlatformClient{}

	q, _ := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: creds}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Empty(t, platform.tweets)
	assert.Equal(t, models.PostFailedAuth, post.Status)
}

func TestPublishPost_PostNotFound(t *testing.T) {
	sr := newFakeStrategyRepo(testStrategy(1, 10))
	platform := &fakePlatformClient{}

	q, attempts := newPublishQueue(sr, newFakePostRepo(), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 404, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Empty(t, sr.history, "a missing post must not touch any strategy")
	assert.Empty(t, platform.tweets)
	assert.Empty(t, attempts.attempts)
}

func TestPublishPost_PostWithoutStrategy(t *testing.T) {
	post := testPost(1001, 0, "")
	sr := newFakeStrategyRepo()
	platform := &fakePlatformClient{}

	q, _ := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Empty(t, sr.history)
	assert.Empty(t, platform.tweets)
}

func TestPublishPost_PlatformAPIError(t *testing.T) {
	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	platform := &fakePlatformClient{tweetErr: &service.PlatformAPIError{StatusCode: 403, Message: "duplicate content"}}

	q, attempts := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Equal(t, models.PostFailedPublish, post.Status)
	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyFailedSocialNetwork, sr.outcomes[0])
	require.Len(t, attempts.attempts, 1)
	assert.Contains(t, attempts.attempts[0].ErrorMessage, "duplicate content")
}

func TestPublishPost_TransportError(t *testing.T) {
	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	platform := &fakePlatformClient{tweetErr: &url.Error{Op: "Post", URL: "https://api.twitter.com/2/tweets", Err: context.DeadlineExceeded}}

	q, _ := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Equal(t, models.PostFailedNetwork, post.Status)
	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyFailedNetwork, sr.outcomes[0])
}

func TestPublishPost_ImageDownloadFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, server.URL+"/missing.jpg")
	sr := newFakeStrategyRepo(strategy)
	platform := &fakePlatformClient{}

	q, _ := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: PlatformTwitter})

	assert.Empty(t, platform.tweets, "no tweet after a failed media download")
	assert.Equal(t, models.PostFailedImage, post.Status)
	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyFailedNetwork, sr.outcomes[0])
}

func TestPublishPost_UnsupportedPlatform(t *testing.T) {
	strategy := testStrategy(1, 10)
	post := testPost(1001, 1, "")
	sr := newFakeStrategyRepo(strategy)
	platform := &fakePlatformClient{}

	q, _ := newPublishQueue(sr, newFakePostRepo(post), &fakeCredentials{creds: validCredentials()}, platform)

	q.PublishPost(context.Background(), PublishPostPayload{PostID: 1001, TeamMemberID: 7, Platform: "myspace"})

	assert.Empty(t, platform.tweets)
	assert.Equal(t, models.PostFailedPublish, post.Status)
	require.Len(t, sr.outcomes, 1)
	assert.Equal(t, models.StrategyFailed, sr.outcomes[0])
}
