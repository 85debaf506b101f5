package models

import (
	"strings"
	"time"
)

// TwitterCredentials is the per-company X/Twitter API key set. The four
// secrets are AES-GCM encrypted at rest; a row is usable only when all four
// decrypt to non-blank values.
type TwitterCredentials struct {
	ID                int64     `db:"id" json:"id"`
	CompanyID         int64     `db:"company_id" json:"company_id"`
	APIKey            string    `db:"api_key" json:"-"`
	APIKeySecret      string    `db:"api_key_secret" json:"-"`
	AccessToken       string    `db:"access_token" json:"-"`
	AccessTokenSecret string    `db:"access_token_secret" json:"-"`
	CreatedAt         time.Time `db:"created_at" json:"created_at"`
	UpdatedAt         time.Time `db:"updated_at" json:"updated_at"`
}

func (c *TwitterCredentials) HasCredentials() bool {
	if c == nil {
		return false
	}
	for _, v := range []string{c.APIKey, c.APIKeySecret, c.AccessToken, c.AccessTokenSecret} {
		if strings.TrimSpace(v) == "" {
			return false
		}
	}
	return true
}
