package model

import "time"

// Comment : комментарий к арту, может быть ответом на другой комментарий
type Comment struct {
	ID              string    `db:"id" json:"id"`
	ArtID           string    `db:"art_id" json:"art_id"`
	UserID          string    `db:"user_id" json:"user_id"`
	ParentCommentID *string   `db:"parent_comment_id" json:"parent_comment_id,omitempty"`
	Text            string    `db:"text" json:"text"`
	CreatedAt       time.Time `db:"created_at" json:"created_at"`
}
