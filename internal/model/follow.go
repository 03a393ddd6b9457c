package model

import "time"

// Follow : подписка follower -> following
type Follow struct {
	FollowerID  string    `db:"follower_id" json:"follower_id"`
	FollowingID string    `db:"following_id" json:"following_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}
