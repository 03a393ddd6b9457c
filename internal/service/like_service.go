package service

import (
	"context"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"
)

// LikeService : лайки артов. Повторный лайк и снятие несуществующего
// лайка идемпотентны.
type LikeService struct {
	likeRepository ports.LikeRepository
	artService     ports.ArtService
}

func NewLikeService(likeRepo ports.LikeRepository, artService ports.ArtService) *LikeService {
	return &LikeService{likeRepository: likeRepo, artService: artService}
}

func (s *LikeService) Like(ctx context.Context, userID string, artID string) error {
	ok, err := s.artService.HasAccess(ctx, artID, userID)
	if err != nil {
		return err
	}
	if !ok {
		return model.ErrAccessDenied
	}
	return s.likeRepository.Add(ctx, userID, artID)
}

func (s *LikeService) Unlike(ctx context.Context, userID string, artID string) error {
	return s.likeRepository.Remove(ctx, userID, artID)
}

func (s *LikeService) IsLiked(ctx context.Context, userID string, artID string) (bool, error) {
	return s.likeRepository.Exists(ctx, userID, artID)
}

func (s *LikeService) CountForArt(ctx context.Context, artID string) (int64, error) {
	return s.likeRepository.CountByArt(ctx, artID)
}

func (s *LikeService) ListForArt(ctx context.Context, artID string, viewerID string) ([]*model.Like, error) {
	ok, err := s.artService.HasAccess(ctx, artID, viewerID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, model.ErrAccessDenied
	}
	return s.likeRepository.ListByArt(ctx, artID)
}

func (s *LikeService) ListForUser(ctx context.Context, userID string) ([]*model.Like, error) {
	return s.likeRepository.ListByUser(ctx, userID)
}

func (s *LikeService) CountForUser(ctx context.Context, userID string) (int64, error) {
	return s.likeRepository.CountByUser(ctx, userID)
}
