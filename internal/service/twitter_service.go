package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/dghubble/oauth1"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/models"
	"github.com/easy-post-ia-1/easy-post-ia-backend/internal/transfer"
	"github.com/h2non/filetype"
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	twitterMediaUploadURL = "https://upload.twitter.com/1.1/media/upload.json"
	twitterTweetURL       = "https://api.twitter.com/2/tweets"

	MediaCategoryTweetImage = "tweet_image"
)

// PlatformAPIError is an error reported by the social platform itself, as
// opposed to a transport failure reaching it.
type PlatformAPIError struct {
	StatusCode int
	Message    string
}

func (e *PlatformAPIError) Error() string {
	return fmt.Sprintf("platform API error (status %d): %s", e.StatusCode, e.Message)
}

// PlatformClient publishes content to one social platform. Constructed per
// publish attempt from the owning company's resolved credentials.
type PlatformClient interface {
	UploadMedia(ctx context.Context, media []byte, category string) (string, error)
	CreateTweet(ctx context.Context, text string, mediaIDs []string) (string, error)
}

type twitterClient struct {
	httpClient *http.Client
	uploadURL  string
	tweetURL   string
}

// NewTwitterClient builds an OAuth 1.0a user-context client from the given
// credential set.
func NewTwitterClient(creds *models.TwitterCredentials) PlatformClient {
	oauthConfig := oauth1.NewConfig(creds.APIKey, creds.APIKeySecret)
	token := oauth1.NewToken(creds.AccessToken, creds.AccessTokenSecret)

	httpClient := oauthConfig.Client(oauth1.NoContext, token)
	httpClient.Timeout = 2 * time.Minute

	return &twitterClient{
		httpClient: httpClient,
		uploadURL:  twitterMediaUploadURL,
		tweetURL:   twitterTweetURL,
	}
}

func (c *twitterClient) UploadMedia(ctx context.Context, media []byte, category string) (string, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	ext := "bin"
	if kind, err := filetype.Match(media); err == nil && kind.Extension != "" {
		ext = kind.Extension
	}

	name, err := gonanoid.New()
	if err != nil {
		return "", err
	}

	part, err := writer.CreateFormFile("media", fmt.Sprintf("media-%s.%s", name, ext))
	if err != nil {
		return "", err
	}
	if _, err := part.Write(media); err != nil {
		return "", err
	}
	if err := writer.WriteField("media_category", category); err != nil {
		return "", err
	}
	if err := writer.Close(); err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.uploadURL, &buf)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var res transfer.TwitterMediaUploadResponse
	if err := json.Unmarshal(body, &res); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("malformed media upload response: %w", err)
	}

	return res.MediaIDString, nil
}

func (c *twitterClient) CreateTweet(ctx context.Context, text string, mediaIDs []string) (string, error) {
	tweet := transfer.TwitterTweetRequest{Text: text}
	if len(mediaIDs) > 0 {
		tweet.Media = &transfer.TwitterTweetMedia{MediaIDs: mediaIDs}
	}

	data, err := json.Marshal(tweet)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.tweetURL, bytes.NewReader(data))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := c.do(req)
	if err != nil {
		return "", err
	}

	var res transfer.TwitterTweetResponse
	if err := json.Unmarshal(body, &res); err != nil {
		slog.Info(err.Error())
		return "", fmt.Errorf("malformed tweet response: %w", err)
	}

	slog.Info("tweet posted", "tweet_id", res.Data.ID)
	return res.Data.ID, nil
}

func (c *twitterClient) do(req *http.Request) ([]byte, error) {
	resp, err := c.httpClient.Do(req)
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

	if resp.StatusCode >= http.StatusBadRequest {
		message := string(body)
		var errRes transfer.TwitterErrorResponse
		if err := json.Unmarshal(body, &errRes); err == nil {
			if errRes.Detail != "" {
				message = errRes.Detail
			} else if len(errRes.Errors) > 0 {
				message = errRes.Errors[0].Message
			}
		}
		return nil, &PlatformAPIError{StatusCode: resp.StatusCode, Message: message}
	}

	return body, nil
}
