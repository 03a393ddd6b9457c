package service

import (
	"context"
	"log"
	"strings"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"

	"github.com/google/uuid"
)

// ArtServiceImpl — сервис артов с кэшированием горячих записей в Redis.
// Кэш best-effort: его недоступность не ломает чтение из Postgres.
type ArtServiceImpl struct {
	artRepository ports.ArtRepository
	cache         ports.ArtCache
	now           func() time.Time
}

func NewArtService(artRepo ports.ArtRepository, cache ports.ArtCache) *ArtServiceImpl {
	return &ArtServiceImpl{
		artRepository: artRepo,
		cache:         cache,
		now:           time.Now,
	}
}

func (s *ArtServiceImpl) CreateArt(ctx context.Context, art *model.Art) (*model.Art, error) {
	if strings.TrimSpace(art.Title) == "" || len(art.Title) > 200 {
		return nil, model.ErrValidation
	}
	art.ID = uuid.New().String()
	art.CreatedAt = s.now()
	art.UpdatedAt = art.CreatedAt
	if err := s.artRepository.Create(ctx, art); err != nil {
		return nil, err
	}
	return art, nil
}

// GetArt возвращает арт с учётом видимости: приватный арт видит только
// автор. Публичные арты читаются через кэш.
func (s *ArtServiceImpl) GetArt(ctx context.Context, id string, viewerID string) (*model.Art, error) {
	if cached, err := s.cache.GetArt(ctx, id); err != nil {
		log.Printf("ошибка чтения арта из кэша: %v", err)
	} else if cached != nil {
		if !cached.IsPublic && cached.AuthorID != viewerID {
			return nil, model.ErrAccessDenied
		}
		return cached, nil
	}

	art, err := s.artRepository.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !art.IsPublic && art.AuthorID != viewerID {
		return nil, model.ErrAccessDenied
	}

	if art.IsPublic {
		if err := s.cache.SetArt(ctx, art); err != nil {
			log.Printf("ошибка записи арта в кэш: %v", err)
		}
	}
	return art, nil
}

func (s *ArtServiceImpl) UpdateArt(ctx context.Context, art *model.Art) (*model.Art, error) {
	if strings.TrimSpace(art.Title) == "" || len(art.Title) > 200 {
		return nil, model.ErrValidation
	}
	art.UpdatedAt = s.now()
	if err := s.artRepository.Update(ctx, art); err != nil {
		return nil, err
	}
	s.invalidate(ctx, art.ID)
	return art, nil
}

func (s *ArtServiceImpl) DeleteArt(ctx context.Context, id string, requesterID string) error {
	if err := s.artRepository.Delete(ctx, id, requesterID); err != nil {
		return err
	}
	s.invalidate(ctx, id)
	return nil
}

func (s *ArtServiceImpl) ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Art, string, error) {
	return s.artRepository.ListPublic(ctx, cursor, normalizeLimit(limit))
}

func (s *ArtServiceImpl) ListByAuthor(ctx context.Context, authorID string, viewerID string, cursor string, limit int) ([]*model.Art, string, error) {
	includePrivate := authorID == viewerID
	return s.artRepository.ListByAuthor(ctx, authorID, includePrivate, cursor, normalizeLimit(limit))
}

func (s *ArtServiceImpl) Feed(ctx context.Context, userID string, cursor string, limit int) ([]*model.Art, string, error) {
	return s.artRepository.ListFeed(ctx, userID, cursor, normalizeLimit(limit))
}

func (s *ArtServiceImpl) Search(ctx context.Context, query string, cursor string, limit int) ([]*model.Art, string, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, "", model.ErrValidation
	}
	return s.artRepository.Search(ctx, query, cursor, normalizeLimit(limit))
}

func (s *ArtServiceImpl) ListByTag(ctx context.Context, tagName string, cursor string, limit int) ([]*model.Art, string, error) {
	return s.artRepository.ListByTag(ctx, tagName, cursor, normalizeLimit(limit))
}

// HasAccess : может ли зритель видеть арт
func (s *ArtServiceImpl) HasAccess(ctx context.Context, artID string, viewerID string) (bool, error) {
	art, err := s.artRepository.GetByID(ctx, artID)
	if err != nil {
		return false, err
	}
	return art.IsPublic || art.AuthorID == viewerID, nil
}

func (s *ArtServiceImpl) invalidate(ctx context.Context, id string) {
	if err := s.cache.DeleteArt(ctx, id); err != nil {
		log.Printf("ошибка инвалидации кэша арта %s: %v", id, err)
	}
}

func normalizeLimit(limit int) int {
	if limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
