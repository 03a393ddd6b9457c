package ports

import (
	"context"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/security"
)

// RefreshTokenRepositoryInterface : персистентный слой refresh-токенов.
// Consume обязан быть единственным условным UPDATE на уровне БД —
// никаких read-modify-write в два запроса.
type RefreshTokenRepositoryInterface interface {
	Create(ctx context.Context, token *model.RefreshToken) error
	FindByDigest(ctx context.Context, digest security.SecretDigest) (*model.RefreshToken, error)
	Consume(ctx context.Context, digest security.SecretDigest, now time.Time) (*model.RefreshToken, error)
	Revoke(ctx context.Context, digest security.SecretDigest) error
	RevokeAllByUser(ctx context.Context, userID string) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
	ListActiveByUser(ctx context.Context, userID string) ([]*model.RefreshToken, error)
	CountActiveByUser(ctx context.Context, userID string) (int64, error)
}

type RefreshTokenServiceInterface interface {
	Issue(ctx context.Context, userID string, device model.DeviceContext) (security.RawSecret, *model.RefreshToken, error)
	Lookup(ctx context.Context, raw security.RawSecret) (*model.RefreshToken, error)
	ValidateAndConsume(ctx context.Context, raw security.RawSecret) (*model.RefreshToken, error)
	Revoke(ctx context.Context, raw security.RawSecret) error
	RevokeAllForUser(ctx context.Context, userID string) error
	SweepExpired(ctx context.Context)
	ActiveSessions(ctx context.Context, userID string) ([]*model.RefreshToken, error)
	ActiveSessionCount(ctx context.Context, userID string) (int64, error)
}

type JWTServiceInterface interface {
	GenerateAccessToken(userID string, username string) (string, time.Time, error)
	ValidateAccessToken(tokenString string) (*security.Claims, error)
}
