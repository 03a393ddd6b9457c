package service

import (
	"context"
	"errors"
	"log"
	"regexp"
	"strings"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"

	"github.com/google/uuid"
)

var tagNamePattern = regexp.MustCompile(`^[a-zа-я0-9_-]{1,50}$`)

// TagService : теги артов. Имена нормализуются в нижний регистр,
// создание существующего тега возвращает его же.
type TagService struct {
	tagRepository ports.TagRepository
	artService    ports.ArtService
}

func NewTagService(tagRepo ports.TagRepository, artService ports.ArtService) *TagService {
	return &TagService{tagRepository: tagRepo, artService: artService}
}

func (s *TagService) GetOrCreate(ctx context.Context, name string) (*model.Tag, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if !tagNamePattern.MatchString(name) {
		return nil, model.ErrValidation
	}

	if tag, err := s.tagRepository.GetByName(ctx, name); err == nil {
		return tag, nil
	}

	tag := &model.Tag{ID: uuid.New().String(), Name: name}
	err := s.tagRepository.Create(ctx, tag)
	if errors.Is(err, model.ErrAlreadyExists) {
		// гонка с параллельным созданием того же тега
		return s.tagRepository.GetByName(ctx, name)
	}
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// TagArt вешает тег на арт; тег создаётся при необходимости
func (s *TagService) TagArt(ctx context.Context, artID string, userID string, name string) error {
	art, err := s.artService.GetArt(ctx, artID, userID)
	if err != nil {
		return err
	}
	if art.AuthorID != userID {
		return model.ErrAccessDenied
	}

	tag, err := s.GetOrCreate(ctx, name)
	if err != nil {
		return err
	}
	return s.tagRepository.AttachToArt(ctx, artID, tag.ID)
}

func (s *TagService) UntagArt(ctx context.Context, artID string, userID string, name string) error {
	art, err := s.artService.GetArt(ctx, artID, userID)
	if err != nil {
		return err
	}
	if art.AuthorID != userID {
		return model.ErrAccessDenied
	}

	tag, err := s.tagRepository.GetByName(ctx, strings.ToLower(strings.TrimSpace(name)))
	if err != nil {
		return err
	}
	if err := s.tagRepository.DetachFromArt(ctx, artID, tag.ID); err != nil {
		return err
	}

	// осиротевший тег удаляется, чтобы не копить мусор в поиске
	count, err := s.tagRepository.ArtCount(ctx, tag.ID)
	if err != nil {
		log.Printf("ошибка подсчёта артов тега %s: %v", tag.Name, err)
		return nil
	}
	if count == 0 {
		if err := s.tagRepository.Delete(ctx, tag.ID); err != nil {
			log.Printf("ошибка удаления осиротевшего тега %s: %v", tag.Name, err)
		}
	}
	return nil
}

func (s *TagService) List(ctx context.Context) ([]*model.Tag, error) {
	return s.tagRepository.List(ctx)
}

func (s *TagService) ListForArt(ctx context.Context, artID string) ([]*model.Tag, error) {
	return s.tagRepository.ListByArt(ctx, artID)
}

func (s *TagService) Search(ctx context.Context, query string, limit int) ([]*model.Tag, error) {
	return s.tagRepository.Search(ctx, strings.ToLower(strings.TrimSpace(query)), normalizeLimit(limit))
}

func (s *TagService) Popular(ctx context.Context, limit int) ([]*model.TagWithCount, error) {
	return s.tagRepository.Popular(ctx, normalizeLimit(limit))
}
