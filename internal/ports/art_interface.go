package ports

import (
	"context"

	"artship-backend/internal/model"
)

type ArtRepository interface {
	Create(ctx context.Context, art *model.Art) error
	GetByID(ctx context.Context, id string) (*model.Art, error)
	Update(ctx context.Context, art *model.Art) error
	Delete(ctx context.Context, id string, authorID string) error
	ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Art, string, error)
	ListByAuthor(ctx context.Context, authorID string, includePrivate bool, cursor string, limit int) ([]*model.Art, string, error)
	ListFeed(ctx context.Context, userID string, cursor string, limit int) ([]*model.Art, string, error)
	Search(ctx context.Context, query string, cursor string, limit int) ([]*model.Art, string, error)
	ListByTag(ctx context.Context, tagName string, cursor string, limit int) ([]*model.Art, string, error)
}

type ArtService interface {
	CreateArt(ctx context.Context, art *model.Art) (*model.Art, error)
	GetArt(ctx context.Context, id string, viewerID string) (*model.Art, error)
	UpdateArt(ctx context.Context, art *model.Art) (*model.Art, error)
	DeleteArt(ctx context.Context, id string, requesterID string) error
	ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Art, string, error)
	ListByAuthor(ctx context.Context, authorID string, viewerID string, cursor string, limit int) ([]*model.Art, string, error)
	Feed(ctx context.Context, userID string, cursor string, limit int) ([]*model.Art, string, error)
	Search(ctx context.Context, query string, cursor string, limit int) ([]*model.Art, string, error)
	ListByTag(ctx context.Context, tagName string, cursor string, limit int) ([]*model.Art, string, error)
	HasAccess(ctx context.Context, artID string, viewerID string) (bool, error)
}

// ArtCache : Redis слой для горячих артов
type ArtCache interface {
	SetArt(ctx context.Context, art *model.Art) error
	GetArt(ctx context.Context, id string) (*model.Art, error)
	DeleteArt(ctx context.Context, id string) error
}
