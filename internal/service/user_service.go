package service

import (
	"context"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"
)

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepo ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepo}
}

func (s *UserService) GetUser(ctx context.Context, id string) (*model.User, error) {
	return s.userRepository.FindByID(ctx, id)
}

func (s *UserService) GetUserByUsername(ctx context.Context, username string) (*model.User, error) {
	return s.userRepository.FindByUsername(ctx, username)
}

// UpdateProfile обновляет только профильные поля: display_name, avatar,
// bio, видимость. Логин, email и пароль этим путём не меняются.
func (s *UserService) UpdateProfile(ctx context.Context, updatedUser *model.User) error {
	if len(updatedUser.DisplayName) > 100 || len(updatedUser.Bio) > 1000 {
		return model.ErrValidation
	}
	return s.userRepository.UpdateUser(ctx, updatedUser)
}

func (s *UserService) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	return s.userRepository.ListUsers(ctx, cursor, limit)
}
