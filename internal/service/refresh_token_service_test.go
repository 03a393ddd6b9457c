package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/security"
	"artship-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRefreshTokenRepository struct{ mock.Mock }

func (m *MockRefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	return m.Called(ctx, token).Error(0)
}

func (m *MockRefreshTokenRepository) FindByDigest(ctx context.Context, digest security.SecretDigest) (*model.RefreshToken, error) {
	args := m.Called(ctx, digest)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Consume(ctx context.Context, digest security.SecretDigest, now time.Time) (*model.RefreshToken, error) {
	args := m.Called(ctx, digest, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) Revoke(ctx context.Context, digest security.SecretDigest) error {
	return m.Called(ctx, digest).Error(0)
}

func (m *MockRefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockRefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockRefreshTokenRepository) ListActiveByUser(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*model.RefreshToken), args.Error(1)
}

func (m *MockRefreshTokenRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).(int64), args.Error(1)
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

func TestRefreshTokenService_Issue(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	now := time.Date(2025, 8, 23, 12, 0, 0, 0, time.UTC)
	ttl := 30 * 24 * time.Hour
	svc := service.NewRefreshTokenServiceWithClock(repo, ttl, fixedClock(now))

	var stored *model.RefreshToken
	repo.On("Create", mock.Anything, mock.AnythingOfType("*model.RefreshToken")).
		Run(func(args mock.Arguments) { stored = args.Get(1).(*model.RefreshToken) }).
		Return(nil).Once()

	device := model.DeviceContext{DeviceInfo: "Mozilla/5.0", IpAddress: "203.0.113.10", UserAgent: "Mozilla/5.0"}
	raw, token, err := svc.Issue(context.Background(), "user-1", device)
	require.NoError(t, err)
	require.NotNil(t, stored)

	// в БД уходит только хэш, сырой секрет остаётся у вызывающего
	assert.NotEqual(t, raw.Reveal(), stored.TokenHash)
	assert.Equal(t, string(security.HashRefreshSecret(raw)), stored.TokenHash)
	assert.Equal(t, "user-1", stored.UserID)
	assert.Equal(t, now.Add(ttl), stored.ExpiryDate)
	assert.False(t, stored.Revoked)
	assert.Equal(t, stored, token)
	repo.AssertExpectations(t)
}

func TestRefreshTokenService_Issue_RetriesOnceOnCollision(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, time.Now)

	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrHashCollision).Once()
	repo.On("Create", mock.Anything, mock.Anything).Return(nil).Once()

	raw, _, err := svc.Issue(context.Background(), "user-1", model.DeviceContext{})
	require.NoError(t, err)
	assert.NotEmpty(t, raw.Reveal())
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestRefreshTokenService_Issue_GivesUpAfterSecondCollision(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, time.Now)

	repo.On("Create", mock.Anything, mock.Anything).Return(model.ErrHashCollision).Twice()

	_, _, err := svc.Issue(context.Background(), "user-1", model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrHashCollision)
	repo.AssertNumberOfCalls(t, "Create", 2)
}

func TestRefreshTokenService_Issue_PropagatesOtherErrors(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, time.Now)

	dbErr := errors.New("соединение потеряно")
	repo.On("Create", mock.Anything, mock.Anything).Return(dbErr).Once()

	_, _, err := svc.Issue(context.Background(), "user-1", model.DeviceContext{})
	assert.ErrorIs(t, err, dbErr)
	repo.AssertNumberOfCalls(t, "Create", 1)
}

func TestRefreshTokenService_ValidateAndConsume_HashesBeforeLookup(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	now := time.Date(2025, 8, 23, 12, 0, 0, 0, time.UTC)
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, fixedClock(now))

	raw := security.RawSecret("raw-secret-value")
	digest := security.HashRefreshSecret(raw)
	expected := &model.RefreshToken{ID: "token-1", UserID: "user-1"}

	repo.On("Consume", mock.Anything, digest, now).Return(expected, nil).Once()

	token, err := svc.ValidateAndConsume(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, expected, token)
	repo.AssertExpectations(t)
}

func TestRefreshTokenService_Lookup_DoesNotConsume(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, time.Now)

	raw := security.RawSecret("raw-secret-value")
	expected := &model.RefreshToken{ID: "token-1", UserID: "user-1"}

	repo.On("FindByDigest", mock.Anything, security.HashRefreshSecret(raw)).Return(expected, nil).Once()

	token, err := svc.Lookup(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, expected, token)
	repo.AssertNotCalled(t, "Consume", mock.Anything, mock.Anything, mock.Anything)
}

// просроченный токен отклоняется как Expired, а после фоновой очистки
// та же попытка классифицируется как NotFound: строка удалена физически
func TestRefreshTokenService_ExpiredThenSweptToken(t *testing.T) {
	tokenRepo := newMemoryTokenRepo()
	current := time.Date(2025, 8, 23, 12, 0, 0, 0, time.UTC)
	svc := service.NewRefreshTokenServiceWithClock(tokenRepo, 30*24*time.Hour, func() time.Time { return current })

	raw, _, err := svc.Issue(context.Background(), "user-1", model.DeviceContext{})
	require.NoError(t, err)

	current = current.Add(31 * 24 * time.Hour)

	_, err = svc.ValidateAndConsume(context.Background(), raw)
	assert.ErrorIs(t, err, model.ErrRefreshTokenExpired)

	svc.SweepExpired(context.Background())

	_, err = svc.ValidateAndConsume(context.Background(), raw)
	assert.ErrorIs(t, err, model.ErrRefreshTokenNotFound)
}

func TestRefreshTokenService_SweepExpired_SwallowsErrors(t *testing.T) {
	repo := new(MockRefreshTokenRepository)
	now := time.Now()
	svc := service.NewRefreshTokenServiceWithClock(repo, time.Hour, fixedClock(now))

	repo.On("DeleteExpired", mock.Anything, now).Return(int64(0), errors.New("БД недоступна")).Once()

	// фоновая очистка не должна паниковать и не возвращает ошибку
	svc.SweepExpired(context.Background())
	repo.AssertExpectations(t)
}
