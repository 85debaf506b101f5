package models

import "time"

// PostingAttempt records one publish attempt for a post, success or failure.
type PostingAttempt struct {
	ID           int64     `db:"id" json:"id"`
	PostID       int64     `db:"post_id" json:"post_id"`
	TeamMemberID int64     `db:"team_member_id" json:"team_member_id"`
	Platform     string    `db:"platform" json:"platform"`
	ErrorMessage string    `db:"error_message" json:"error_message"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
