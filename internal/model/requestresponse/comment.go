package requestresponse

import (
	"time"

	"artship-backend/internal/model"
)

// CreateCommentRequest : тело запроса на комментарий.
// ParentCommentID указывается для ответа на другой комментарий.
type CreateCommentRequest struct {
	Text            string  `json:"text" example:"отличная работа!"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
}

// UpdateCommentRequest : тело запроса на редактирование
type UpdateCommentRequest struct {
	Text string `json:"text" example:"отличная работа!"`
}

// CommentResponse : комментарий для JSON-ответа
type CommentResponse struct {
	ID              string  `json:"id"`
	ArtID           string  `json:"art_id"`
	UserID          string  `json:"user_id"`
	ParentCommentID *string `json:"parent_comment_id,omitempty"`
	Text            string  `json:"text" example:"отличная работа!"`
	CreatedAt       string  `json:"created_at" example:"2025-08-23T12:34:56Z"`
}

// CommentResponseFromModel : конвертирует model.Comment в CommentResponse
func CommentResponseFromModel(comment *model.Comment) CommentResponse {
	return CommentResponse{
		ID:              comment.ID,
		ArtID:           comment.ArtID,
		UserID:          comment.UserID,
		ParentCommentID: comment.ParentCommentID,
		Text:            comment.Text,
		CreatedAt:       comment.CreatedAt.Format(time.RFC3339),
	}
}

// ListCommentsResponse : список комментариев
type ListCommentsResponse struct {
	Data struct {
		Comments []CommentResponse `json:"comments"`
	} `json:"data"`
}
