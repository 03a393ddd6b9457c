package requestresponse

import (
	"time"

	"artship-backend/internal/model"
)

// CreateCollectionRequest : тело запроса на создание подборки
type CreateCollectionRequest struct {
	Title         string `json:"title" example:"Акварель"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	IsPublic      bool   `json:"is_public" example:"true"`
}

// UpdateCollectionRequest : тело запроса на обновление подборки
type UpdateCollectionRequest struct {
	Title         string `json:"title" example:"Акварель"`
	Description   string `json:"description"`
	CoverImageURL string `json:"cover_image_url"`
	IsPublic      *bool  `json:"is_public"`
}

// CollectionResponse : подборка для JSON-ответа
type CollectionResponse struct {
	ID            string `json:"id"`
	UserID        string `json:"user_id"`
	Title         string `json:"title" example:"Акварель"`
	Description   string `json:"description,omitempty"`
	CoverImageURL string `json:"cover_image_url,omitempty"`
	IsPublic      bool   `json:"is_public" example:"true"`
	CreatedAt     string `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

// CollectionResponseFromModel : конвертирует model.Collection в CollectionResponse
func CollectionResponseFromModel(collection *model.Collection) CollectionResponse {
	return CollectionResponse{
		ID:            collection.ID,
		UserID:        collection.UserID,
		Title:         collection.Title,
		Description:   collection.Description,
		CoverImageURL: collection.CoverImageURL,
		IsPublic:      collection.IsPublic,
		CreatedAt:     collection.CreatedAt.Format(time.RFC3339),
	}
}

// ListCollectionsResponse : список подборок
type ListCollectionsResponse struct {
	Data struct {
		Collections []CollectionResponse `json:"collections"`
		NextCursor  string               `json:"next_cursor,omitempty"`
	} `json:"data"`
}

// SaveArtRequest : тело запроса на добавление арта в подборку
type SaveArtRequest struct {
	ArtID string `json:"art_id" example:"123e4567-e89b-12d3-a456-426614174000"`
}
