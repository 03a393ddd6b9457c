package model

import "time"

// Art : публикация ("арт")
type Art struct {
	ID             string    `db:"id" json:"id"`
	AuthorID       string    `db:"author_id" json:"author_id"`
	Title          string    `db:"title" json:"title"`
	Description    string    `db:"description" json:"description"`
	ImageURL       string    `db:"image_url" json:"image_url"`
	ProjectDataURL string    `db:"project_data_url" json:"project_data_url"`
	IsPublic       bool      `db:"is_public" json:"is_public"`
	CreatedAt      time.Time `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}
