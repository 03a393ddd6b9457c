package requestresponse

import (
	"time"

	"artship-backend/internal/model"
)

// LikeResponse : лайк для JSON-ответа
type LikeResponse struct {
	UserID    string `json:"user_id"`
	ArtID     string `json:"art_id"`
	CreatedAt string `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

func LikeResponseFromModel(like *model.Like) LikeResponse {
	return LikeResponse{
		UserID:    like.UserID,
		ArtID:     like.ArtID,
		CreatedAt: like.CreatedAt.Format(time.RFC3339),
	}
}

// ListLikesResponse : список лайков
type ListLikesResponse struct {
	Data struct {
		Likes []LikeResponse `json:"likes"`
		Total int64          `json:"total"`
	} `json:"data"`
}
