package service

import (
	"context"
	"strings"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"

	"github.com/google/uuid"
)

// CollectionService : подборки артов. Приватную подборку видит и меняет
// только владелец; добавить в подборку можно только доступный владельцу арт.
type CollectionService struct {
	collectionRepository ports.CollectionRepository
	artService           ports.ArtService
	now                  func() time.Time
}

func NewCollectionService(collectionRepo ports.CollectionRepository, artService ports.ArtService) *CollectionService {
	return &CollectionService{
		collectionRepository: collectionRepo,
		artService:           artService,
		now:                  time.Now,
	}
}

func (s *CollectionService) CreateCollection(ctx context.Context, collection *model.Collection) (*model.Collection, error) {
	if strings.TrimSpace(collection.Title) == "" || len(collection.Title) > 200 {
		return nil, model.ErrValidation
	}
	collection.ID = uuid.New().String()
	collection.CreatedAt = s.now()
	if err := s.collectionRepository.Create(ctx, collection); err != nil {
		return nil, err
	}
	return collection, nil
}

func (s *CollectionService) GetCollection(ctx context.Context, id string, viewerID string) (*model.Collection, error) {
	collection, err := s.collectionRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !collection.IsPublic && collection.UserID != viewerID {
		return nil, model.ErrAccessDenied
	}
	return collection, nil
}

func (s *CollectionService) UpdateCollection(ctx context.Context, collection *model.Collection) error {
	if strings.TrimSpace(collection.Title) == "" || len(collection.Title) > 200 {
		return model.ErrValidation
	}
	return s.collectionRepository.Update(ctx, collection)
}

func (s *CollectionService) DeleteCollection(ctx context.Context, id string, userID string) error {
	return s.collectionRepository.Delete(ctx, id, userID)
}

func (s *CollectionService) ListForUser(ctx context.Context, userID string, viewerID string) ([]*model.Collection, error) {
	onlyPublic := userID != viewerID
	return s.collectionRepository.ListByUser(ctx, userID, onlyPublic)
}

func (s *CollectionService) ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Collection, string, error) {
	return s.collectionRepository.ListPublic(ctx, cursor, normalizeLimit(limit))
}

func (s *CollectionService) Search(ctx context.Context, query string, limit int) ([]*model.Collection, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, model.ErrValidation
	}
	return s.collectionRepository.Search(ctx, query, normalizeLimit(limit))
}

func (s *CollectionService) SaveArt(ctx context.Context, collectionID string, artID string, userID string) error {
	collection, err := s.collectionRepository.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.UserID != userID {
		return model.ErrAccessDenied
	}
	ok, err := s.artService.HasAccess(ctx, artID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAccessDenied
	}
	return s.collectionRepository.AddArt(ctx, collectionID, artID)
}

func (s *CollectionService) RemoveArt(ctx context.Context, collectionID string, artID string, userID string) error {
	collection, err := s.collectionRepository.GetByID(ctx, collectionID)
	if err != nil {
		return err
	}
	if collection.UserID != userID {
		return model.ErrAccessDenied
	}
	return s.collectionRepository.RemoveArt(ctx, collectionID, artID)
}

func (s *CollectionService) ListArts(ctx context.Context, collectionID string, viewerID string) ([]*model.Art, error) {
	if _, err := s.GetCollection(ctx, collectionID, viewerID); err != nil {
		return nil, err
	}
	return s.collectionRepository.ListArts(ctx, collectionID)
}
