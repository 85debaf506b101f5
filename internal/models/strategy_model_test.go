package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStrategyStatus_Valid(t *testing.T) {
	for _, s := range []StrategyStatus{
		StrategyPending, StrategyGenerating, StrategyScheduling, StrategyPosting,
		StrategyScheduled, StrategyPosted, StrategyFailed, StrategyFailedCredentials,
		StrategyFailedNetwork, StrategyFailedSocialNetwork, StrategyFailedSystem,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, StrategyStatus("").Valid())
	assert.False(t, StrategyStatus("done").Valid())
}

func TestStrategyStatus_Terminal(t *testing.T) {
	terminal := []StrategyStatus{
		StrategyPosted, StrategyFailed, StrategyFailedCredentials,
		StrategyFailedNetwork, StrategyFailedSocialNetwork, StrategyFailedSystem,
	}
	for _, s := range terminal {
		assert.True(t, s.Terminal(), string(s))
	}

	open := []StrategyStatus{
		StrategyPending, StrategyGenerating, StrategyScheduling,
		StrategyPosting, StrategyScheduled,
	}
	for _, s := range open {
		assert.False(t, s.Terminal(), string(s))
	}
}

func TestPostStatus_Valid(t *testing.T) {
	for _, s := range []PostStatus{
		PostPending, PostPublishing, PostPublished,
		PostFailedImage, PostFailedPublish, PostFailedNetwork, PostFailedAuth,
	} {
		assert.True(t, s.Valid(), string(s))
	}

	assert.False(t, PostStatus("archived").Valid())
}

func TestTwitterCredentials_HasCredentials(t *testing.T) {
	var nilCreds *TwitterCredentials
	assert.False(t, nilCreds.HasCredentials())

	full := &TwitterCredentials{
		APIKey:            "key",
		APIKeySecret:      "secret",
		AccessToken:       "token",
		AccessTokenSecret: "token_secret",
	}
	assert.True(t, full.HasCredentials())

	partial := *full
	partial.AccessTokenSecret = " "
	assert.False(t, partial.HasCredentials())
}
