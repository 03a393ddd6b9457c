package ports

import (
	"context"

	"artship-backend/internal/model"
)

type CollectionRepository interface {
	Create(ctx context.Context, collection *model.Collection) error
	GetByID(ctx context.Context, id string) (*model.Collection, error)
	Update(ctx context.Context, collection *model.Collection) error
	Delete(ctx context.Context, id string, userID string) error
	ListByUser(ctx context.Context, userID string, onlyPublic bool) ([]*model.Collection, error)
	ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Collection, string, error)
	Search(ctx context.Context, query string, limit int) ([]*model.Collection, error)
	AddArt(ctx context.Context, collectionID string, artID string) error
	RemoveArt(ctx context.Context, collectionID string, artID string) error
	ListArts(ctx context.Context, collectionID string) ([]*model.Art, error)
}

type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	List(ctx context.Context) ([]*model.Tag, error)
	Search(ctx context.Context, query string, limit int) ([]*model.Tag, error)
	Popular(ctx context.Context, limit int) ([]*model.TagWithCount, error)
	ListByArt(ctx context.Context, artID string) ([]*model.Tag, error)
	AttachToArt(ctx context.Context, artID string, tagID string) error
	DetachFromArt(ctx context.Context, artID string, tagID string) error
	Delete(ctx context.Context, id string) error
	ArtCount(ctx context.Context, id string) (int64, error)
}
