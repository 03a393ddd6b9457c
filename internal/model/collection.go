package model

import "time"

// Collection : подборка артов пользователя
type Collection struct {
	ID            string    `db:"id" json:"id"`
	UserID        string    `db:"user_id" json:"user_id"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	CoverImageURL string    `db:"cover_image_url" json:"cover_image_url"`
	IsPublic      bool      `db:"is_public" json:"is_public"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
}

// CollectionArt : арт внутри подборки
type CollectionArt struct {
	CollectionID string    `db:"collection_id" json:"collection_id"`
	ArtID        string    `db:"art_id" json:"art_id"`
	SavedAt      time.Time `db:"saved_at" json:"saved_at"`
}
