package models

import (
	"database/sql"
	"time"
)

// PostStatus is the closed set of post lifecycle states.
type PostStatus string

const (
	PostPending       PostStatus = "pending"
	PostPublishing    PostStatus = "publishing"
	PostPublished     PostStatus = "published"
	PostFailedImage   PostStatus = "failed_image"
	PostFailedPublish PostStatus = "failed_publish"
	PostFailedNetwork PostStatus = "failed_network"
	PostFailedAuth    PostStatus = "failed_auth"
)

func (s PostStatus) Valid() bool {
	switch s {
	case PostPending, PostPublishing, PostPublished, PostFailedImage,
		PostFailedPublish, PostFailedNetwork, PostFailedAuth:
		return true
	}
	return false
}

// Terminal reports whether a publish worker already resolved this post.
func (s PostStatus) Terminal() bool {
	switch s {
	case PostPublished, PostFailedImage, PostFailedPublish, PostFailedNetwork, PostFailedAuth:
		return true
	case PostPending, PostPublishing:
		return false
	}
	return false
}

type Post struct {
	ID                    int64          `db:"id" json:"id"`
	StrategyID            sql.NullInt64  `db:"strategy_id" json:"strategy_id"`
	TeamMemberID          int64          `db:"team_member_id" json:"team_member_id"`
	Title                 string         `db:"title" json:"title"`
	Description           string         `db:"description" json:"description"`
	Tags                  string         `db:"tags" json:"tags"`
	Category              string         `db:"category" json:"category"`
	Emoji                 string         `db:"emoji" json:"emoji"`
	ImageURL              sql.NullString `db:"image_url" json:"image_url"`
	ProgrammingDateToPost time.Time      `db:"programming_date_to_post" json:"programming_date_to_post"`
	Status                PostStatus     `db:"status" json:"status"`
	IsPublished           bool           `db:"is_published" json:"is_published"`
	CreatedAt             time.Time      `db:"created_at" json:"created_at"`
	UpdatedAt             time.Time      `db:"updated_at" json:"updated_at"`
}
