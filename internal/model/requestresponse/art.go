package requestresponse

import (
	"time"

	"artship-backend/internal/model"
)

// CreateArtRequest : тело запроса на публикацию арта
type CreateArtRequest struct {
	Title          string   `json:"title" example:"Закат над мостом"`
	Description    string   `json:"description" example:"акварель, 30 минут"`
	ImageURL       string   `json:"image_url"`
	ProjectDataURL string   `json:"project_data_url,omitempty"`
	IsPublic       bool     `json:"is_public" example:"true"`
	Tags           []string `json:"tags" example:"['watercolor','sunset']"`
}

// UpdateArtRequest : тело запроса на обновление арта
type UpdateArtRequest struct {
	Title       string `json:"title" example:"Закат над мостом"`
	Description string `json:"description"`
	IsPublic    *bool  `json:"is_public"`
}

// ArtResponse : арт для JSON-ответа
type ArtResponse struct {
	ID             string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	AuthorID       string `json:"author_id"`
	Title          string `json:"title" example:"Закат над мостом"`
	Description    string `json:"description,omitempty"`
	ImageURL       string `json:"image_url"`
	ProjectDataURL string `json:"project_data_url,omitempty"`
	IsPublic       bool   `json:"is_public" example:"true"`
	CreatedAt      string `json:"created_at" example:"2025-08-23T12:34:56Z"`
	LikesCount     int64  `json:"likes_count" example:"7"`
	CommentsCount  int64  `json:"comments_count" example:"3"`
	IsLiked        bool   `json:"is_liked"`
}

// ArtResponseFromModel : конвертирует model.Art в ArtResponse
func ArtResponseFromModel(art *model.Art, likes int64, comments int64) ArtResponse {
	return ArtResponse{
		ID:             art.ID,
		AuthorID:       art.AuthorID,
		Title:          art.Title,
		Description:    art.Description,
		ImageURL:       art.ImageURL,
		ProjectDataURL: art.ProjectDataURL,
		IsPublic:       art.IsPublic,
		CreatedAt:      art.CreatedAt.Format(time.RFC3339),
		LikesCount:     likes,
		CommentsCount:  comments,
	}
}

// ListArtsResponse : постраничный список артов
type ListArtsResponse struct {
	Data struct {
		Arts       []ArtResponse `json:"arts"`
		NextCursor string        `json:"next_cursor,omitempty"`
	} `json:"data"`
}
