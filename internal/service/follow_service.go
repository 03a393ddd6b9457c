package service

import (
	"context"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"
)

// FollowService : подписки между пользователями
type FollowService struct {
	followRepository ports.FollowRepository
	userRepository   ports.UserRepository
}

func NewFollowService(followRepo ports.FollowRepository, userRepo ports.UserRepository) *FollowService {
	return &FollowService{followRepository: followRepo, userRepository: userRepo}
}

func (s *FollowService) Follow(ctx context.Context, followerID string, followingID string) error {
	if followerID == followingID {
		return model.ErrValidation
	}
	// подписаться можно только на существующего пользователя
	if _, err := s.userRepository.FindByID(ctx, followingID); err != nil {
		return err
	}
	return s.followRepository.Add(ctx, followerID, followingID)
}

func (s *FollowService) Unfollow(ctx context.Context, followerID string, followingID string) error {
	return s.followRepository.Remove(ctx, followerID, followingID)
}

func (s *FollowService) IsFollowing(ctx context.Context, followerID string, followingID string) (bool, error) {
	return s.followRepository.Exists(ctx, followerID, followingID)
}

func (s *FollowService) Followers(ctx context.Context, userID string) ([]*model.User, error) {
	return s.followRepository.ListFollowers(ctx, userID)
}

func (s *FollowService) Following(ctx context.Context, userID string) ([]*model.User, error) {
	return s.followRepository.ListFollowing(ctx, userID)
}

func (s *FollowService) Counters(ctx context.Context, userID string) (followers int64, following int64, err error) {
	followers, err = s.followRepository.CountFollowers(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	following, err = s.followRepository.CountFollowing(ctx, userID)
	if err != nil {
		return 0, 0, err
	}
	return followers, following, nil
}
