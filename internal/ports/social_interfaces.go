package ports

import (
	"context"

	"artship-backend/internal/model"
)

type LikeRepository interface {
	Add(ctx context.Context, userID string, artID string) error
	Remove(ctx context.Context, userID string, artID string) error
	Exists(ctx context.Context, userID string, artID string) (bool, error)
	ListByArt(ctx context.Context, artID string) ([]*model.Like, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Like, error)
	CountByArt(ctx context.Context, artID string) (int64, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type CommentRepository interface {
	Create(ctx context.Context, comment *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	Update(ctx context.Context, id string, userID string, text string) error
	Delete(ctx context.Context, id string, userID string) error
	ListByArt(ctx context.Context, artID string) ([]*model.Comment, error)
	ListRootByArt(ctx context.Context, artID string) ([]*model.Comment, error)
	ListReplies(ctx context.Context, parentID string) ([]*model.Comment, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Comment, error)
	CountByArt(ctx context.Context, artID string) (int64, error)
}

type FollowRepository interface {
	Add(ctx context.Context, followerID string, followingID string) error
	Remove(ctx context.Context, followerID string, followingID string) error
	Exists(ctx context.Context, followerID string, followingID string) (bool, error)
	ListFollowers(ctx context.Context, userID string) ([]*model.User, error)
	ListFollowing(ctx context.Context, userID string) ([]*model.User, error)
	CountFollowers(ctx context.Context, userID string) (int64, error)
	CountFollowing(ctx context.Context, userID string) (int64, error)
}
