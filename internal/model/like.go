package model

import "time"

// Like : лайк, составной ключ (user_id, art_id)
type Like struct {
	UserID    string    `db:"user_id" json:"user_id"`
	ArtID     string    `db:"art_id" json:"art_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}
