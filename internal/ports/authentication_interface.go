package ports

import (
	"context"

	"artship-backend/internal/model"
	"artship-backend/internal/security"
)

type AuthenticationService interface {
	Login(ctx context.Context, identifier string, password string, device model.DeviceContext) (*model.AuthResult, error)
	Refresh(ctx context.Context, raw security.RawSecret, device model.DeviceContext) (*model.AuthResult, error)
	Logout(ctx context.Context, raw security.RawSecret) error
	LogoutAll(ctx context.Context, userID string) error
	Register(ctx context.Context, username string, email string, password string) (*model.User, error)
	ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error
}
