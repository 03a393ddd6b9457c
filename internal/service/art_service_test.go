package service_test

import (
	"context"
	"errors"
	"testing"

	"artship-backend/internal/model"
	"artship-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockArtRepository struct{ mock.Mock }

func (m *MockArtRepository) Create(ctx context.Context, art *model.Art) error {
	return m.Called(ctx, art).Error(0)
}

func (m *MockArtRepository) GetByID(ctx context.Context, id string) (*model.Art, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Art), args.Error(1)
}

func (m *MockArtRepository) Update(ctx context.Context, art *model.Art) error {
	return m.Called(ctx, art).Error(0)
}

func (m *MockArtRepository) Delete(ctx context.Context, id string, authorID string) error {
	return m.Called(ctx, id, authorID).Error(0)
}

func (m *MockArtRepository) ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Art, string, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.Art), args.String(1), args.Error(2)
}

func (m *MockArtRepository) ListByAuthor(ctx context.Context, authorID string, includePrivate bool, cursor string, limit int) ([]*model.Art, string, error) {
	args := m.Called(ctx, authorID, includePrivate, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.Art), args.String(1), args.Error(2)
}

func (m *MockArtRepository) ListFeed(ctx context.Context, userID string, cursor string, limit int) ([]*model.Art, string, error) {
	args := m.Called(ctx, userID, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.Art), args.String(1), args.Error(2)
}

func (m *MockArtRepository) Search(ctx context.Context, query string, cursor string, limit int) ([]*model.Art, string, error) {
	args := m.Called(ctx, query, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.Art), args.String(1), args.Error(2)
}

func (m *MockArtRepository) ListByTag(ctx context.Context, tagName string, cursor string, limit int) ([]*model.Art, string, error) {
	args := m.Called(ctx, tagName, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.Art), args.String(1), args.Error(2)
}

type MockArtCache struct{ mock.Mock }

func (m *MockArtCache) SetArt(ctx context.Context, art *model.Art) error {
	return m.Called(ctx, art).Error(0)
}

func (m *MockArtCache) GetArt(ctx context.Context, id string) (*model.Art, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Art), args.Error(1)
}

func (m *MockArtCache) DeleteArt(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func publicArt() *model.Art {
	return &model.Art{
		ID:       "art-1",
		AuthorID: "author-1",
		Title:    "Закат над гаванью",
		IsPublic: true,
	}
}

func TestArtService_GetArt_CacheHit(t *testing.T) {
	artRepo := new(MockArtRepository)
	cache := new(MockArtCache)
	cache.On("GetArt", mock.Anything, "art-1").Return(publicArt(), nil)

	artService := service.NewArtService(artRepo, cache)

	art, err := artService.GetArt(context.Background(), "art-1", "")
	require.NoError(t, err)
	assert.Equal(t, "art-1", art.ID)
	// до базы не дошли
	artRepo.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
}

func TestArtService_GetArt_CacheMissFillsCache(t *testing.T) {
	art := publicArt()
	artRepo := new(MockArtRepository)
	artRepo.On("GetByID", mock.Anything, "art-1").Return(art, nil)
	cache := new(MockArtCache)
	cache.On("GetArt", mock.Anything, "art-1").Return(nil, nil)
	cache.On("SetArt", mock.Anything, art).Return(nil)

	artService := service.NewArtService(artRepo, cache)

	got, err := artService.GetArt(context.Background(), "art-1", "")
	require.NoError(t, err)
	assert.Equal(t, art.ID, got.ID)
	cache.AssertCalled(t, "SetArt", mock.Anything, art)
}

// недоступный Redis не ломает чтение из Postgres
func TestArtService_GetArt_CacheErrorFallsBack(t *testing.T) {
	art := publicArt()
	artRepo := new(MockArtRepository)
	artRepo.On("GetByID", mock.Anything, "art-1").Return(art, nil)
	cache := new(MockArtCache)
	cache.On("GetArt", mock.Anything, "art-1").Return(nil, errors.New("connection refused"))
	cache.On("SetArt", mock.Anything, art).Return(errors.New("connection refused"))

	artService := service.NewArtService(artRepo, cache)

	got, err := artService.GetArt(context.Background(), "art-1", "")
	require.NoError(t, err)
	assert.Equal(t, art.ID, got.ID)
}

func TestArtService_GetArt_PrivateHiddenFromStranger(t *testing.T) {
	art := publicArt()
	art.IsPublic = false
	artRepo := new(MockArtRepository)
	artRepo.On("GetByID", mock.Anything, "art-1").Return(art, nil)
	cache := new(MockArtCache)
	cache.On("GetArt", mock.Anything, "art-1").Return(nil, nil)

	artService := service.NewArtService(artRepo, cache)

	_, err := artService.GetArt(context.Background(), "art-1", "stranger")
	assert.ErrorIs(t, err, model.ErrAccessDenied)

	// автор свой приватный арт видит, в кэш он не попадает
	got, err := artService.GetArt(context.Background(), "art-1", "author-1")
	require.NoError(t, err)
	assert.Equal(t, "art-1", got.ID)
	cache.AssertNotCalled(t, "SetArt", mock.Anything, mock.Anything)
}

func TestArtService_UpdateArt_InvalidatesCache(t *testing.T) {
	art := publicArt()
	artRepo := new(MockArtRepository)
	artRepo.On("Update", mock.Anything, art).Return(nil)
	cache := new(MockArtCache)
	cache.On("DeleteArt", mock.Anything, "art-1").Return(nil)

	artService := service.NewArtService(artRepo, cache)

	_, err := artService.UpdateArt(context.Background(), art)
	require.NoError(t, err)
	cache.AssertCalled(t, "DeleteArt", mock.Anything, "art-1")
}

func TestArtService_CreateArt_RejectsEmptyTitle(t *testing.T) {
	artService := service.NewArtService(new(MockArtRepository), new(MockArtCache))

	_, err := artService.CreateArt(context.Background(), &model.Art{Title: "   "})
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestArtService_ListByAuthor_PrivateOnlyForOwner(t *testing.T) {
	artRepo := new(MockArtRepository)
	artRepo.On("ListByAuthor", mock.Anything, "author-1", true, "", 20).
		Return([]*model.Art{publicArt()}, "", nil)
	artRepo.On("ListByAuthor", mock.Anything, "author-1", false, "", 20).
		Return([]*model.Art{}, "", nil)

	artService := service.NewArtService(artRepo, new(MockArtCache))

	_, _, err := artService.ListByAuthor(context.Background(), "author-1", "author-1", "", 0)
	require.NoError(t, err)
	artRepo.AssertCalled(t, "ListByAuthor", mock.Anything, "author-1", true, "", 20)

	_, _, err = artService.ListByAuthor(context.Background(), "author-1", "stranger", "", 0)
	require.NoError(t, err)
	artRepo.AssertCalled(t, "ListByAuthor", mock.Anything, "author-1", false, "", 20)
}
