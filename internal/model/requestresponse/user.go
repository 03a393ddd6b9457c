package requestresponse

import (
	"time"

	"artship-backend/internal/model"
)

// UserProfileResponse : публичный профиль пользователя
type UserProfileResponse struct {
	ID             string `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	Username       string `json:"username" example:"artlover42"`
	DisplayName    string `json:"display_name" example:"Art Lover"`
	AvatarURL      string `json:"avatar_url,omitempty"`
	Bio            string `json:"bio,omitempty"`
	IsPublic       bool   `json:"is_public" example:"true"`
	CreatedAt      string `json:"created_at" example:"2025-08-23T12:34:56Z"`
	FollowersCount int64  `json:"followers_count" example:"12"`
	FollowingCount int64  `json:"following_count" example:"34"`
	IsFollowing    bool   `json:"is_following"`
}

// UserProfileFromModel : конвертирует model.User в UserProfileResponse
func UserProfileFromModel(user *model.User, followers int64, following int64) UserProfileResponse {
	return UserProfileResponse{
		ID:             user.ID,
		Username:       user.Username,
		DisplayName:    user.DisplayName,
		AvatarURL:      user.AvatarURL,
		Bio:            user.Bio,
		IsPublic:       user.IsPublic,
		CreatedAt:      user.CreatedAt.Format(time.RFC3339),
		FollowersCount: followers,
		FollowingCount: following,
	}
}

// UpdateProfileRequest : тело запроса на обновление профиля
type UpdateProfileRequest struct {
	DisplayName string `json:"display_name" example:"Art Lover"`
	AvatarURL   string `json:"avatar_url"`
	Bio         string `json:"bio" example:"рисую по вечерам"`
	IsPublic    *bool  `json:"is_public"`
}

// ListUsersResponse : постраничный список пользователей
type ListUsersResponse struct {
	Data struct {
		Users      []UserProfileResponse `json:"users"`
		NextCursor string                `json:"next_cursor,omitempty"`
	} `json:"data"`
}
