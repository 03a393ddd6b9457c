package service_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/security"
	"artship-backend/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockUserRepository struct{ mock.Mock }

func (m *MockUserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	args := m.Called(ctx, user)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.User), args.Error(1)
}

func (m *MockUserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	args := m.Called(ctx, username)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	args := m.Called(ctx, email)
	return args.Bool(0), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id string, newPasswordHash string) error {
	return m.Called(ctx, id, newPasswordHash).Error(0)
}

func (m *MockUserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	args := m.Called(ctx, cursor, limit)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).([]*model.User), args.String(1), args.Error(2)
}

type MockJWTService struct{ mock.Mock }

func (m *MockJWTService) GenerateAccessToken(userID string, username string) (string, time.Time, error) {
	args := m.Called(userID, username)
	return args.String(0), args.Get(1).(time.Time), args.Error(2)
}

func (m *MockJWTService) ValidateAccessToken(tokenString string) (*security.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*security.Claims), args.Error(1)
}

// memoryTokenRepo : хранилище в памяти с той же семантикой условного
// UPDATE, что и у Postgres-реализации. Мьютекс делает Consume атомарным.
type memoryTokenRepo struct {
	mu   sync.Mutex
	rows map[string]*model.RefreshToken
}

func newMemoryTokenRepo() *memoryTokenRepo {
	return &memoryTokenRepo{rows: make(map[string]*model.RefreshToken)}
}

func (r *memoryTokenRepo) Create(ctx context.Context, token *model.RefreshToken) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rows[token.TokenHash]; exists {
		return model.ErrHashCollision
	}
	copied := *token
	r.rows[token.TokenHash] = &copied
	return nil
}

func (r *memoryTokenRepo) FindByDigest(ctx context.Context, digest security.SecretDigest) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[string(digest)]
	if !ok {
		return nil, model.ErrRefreshTokenNotFound
	}
	copied := *row
	return &copied, nil
}

func (r *memoryTokenRepo) Consume(ctx context.Context, digest security.SecretDigest, now time.Time) (*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	row, ok := r.rows[string(digest)]
	if !ok {
		return nil, model.ErrRefreshTokenNotFound
	}
	if row.Revoked {
		return nil, model.ErrRefreshTokenRevoked
	}
	if !now.Before(row.ExpiryDate) {
		return nil, model.ErrRefreshTokenExpired
	}
	row.Revoked = true
	copied := *row
	return &copied, nil
}

func (r *memoryTokenRepo) Revoke(ctx context.Context, digest security.SecretDigest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if row, ok := r.rows[string(digest)]; ok {
		row.Revoked = true
	}
	return nil
}

func (r *memoryTokenRepo) RevokeAllByUser(ctx context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for digest, row := range r.rows {
		if row.UserID == userID {
			delete(r.rows, digest)
		}
	}
	return nil
}

func (r *memoryTokenRepo) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var deleted int64
	for digest, row := range r.rows {
		if row.ExpiryDate.Before(now) {
			delete(r.rows, digest)
			deleted++
		}
	}
	return deleted, nil
}

func (r *memoryTokenRepo) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var count int64
	for _, row := range r.rows {
		if row.UserID == userID && !row.Revoked {
			count++
		}
	}
	return count, nil
}

func (r *memoryTokenRepo) ListActiveByUser(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var tokens []*model.RefreshToken
	for _, row := range r.rows {
		if row.UserID == userID && !row.Revoked {
			copied := *row
			tokens = append(tokens, &copied)
		}
	}
	return tokens, nil
}

func testUser(t *testing.T) *model.User {
	t.Helper()
	hash, err := security.HashPassword("correct-password")
	require.NoError(t, err)
	return &model.User{
		ID:           "user-1",
		Username:     "artlover42",
		Email:        "artlover@example.com",
		PasswordHash: hash,
		DisplayName:  "Art Lover",
	}
}

func newAuthService(t *testing.T, userRepo *MockUserRepository) (*service.AuthenticationService, *memoryTokenRepo) {
	t.Helper()
	tokenRepo := newMemoryTokenRepo()
	tokenService := service.NewRefreshTokenServiceWithClock(tokenRepo, 30*24*time.Hour, time.Now)

	jwtService := new(MockJWTService)
	jwtService.On("GenerateAccessToken", mock.Anything, mock.Anything).
		Return("access-token", time.Now().Add(15*time.Minute), nil)

	return service.NewAuthenticationService(userRepo, tokenService, jwtService), tokenRepo
}

func TestAuthenticationService_Login_Success(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)

	result, err := authService.Login(context.Background(), "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	assert.Equal(t, "access-token", result.AccessToken)
	assert.NotEmpty(t, result.RefreshToken)
	assert.Equal(t, user.ID, result.User.ID)
	assert.Greater(t, result.ExpiresIn, int64(0), "expires_in — оставшиеся миллисекунды")
	assert.LessOrEqual(t, result.ExpiresIn, int64(15*time.Minute/time.Millisecond))
}

func TestAuthenticationService_Login_ByEmail(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByEmail", mock.Anything, "artlover@example.com").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)

	result, err := authService.Login(context.Background(), "artlover@example.com", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	assert.Equal(t, user.ID, result.User.ID)
}

func TestAuthenticationService_Login_WrongPassword(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)

	_, err := authService.Login(context.Background(), "artlover42", "wrong-password", model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

// неизвестный пользователь и неверный пароль дают один и тот же ответ
func TestAuthenticationService_Login_UnknownUser(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "ghost").Return(nil, model.ErrNotFound)

	authService, _ := newAuthService(t, userRepo)

	_, err := authService.Login(context.Background(), "ghost", "any-password", model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidCredentials)
}

func TestAuthenticationService_Refresh_RotationChain(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)
	ctx := context.Background()

	login, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	refresh1 := security.RawSecret(login.RefreshToken)

	// первая ротация проходит
	second, err := authService.Refresh(ctx, refresh1, model.DeviceContext{})
	require.NoError(t, err)
	refresh2 := security.RawSecret(second.RefreshToken)
	assert.NotEqual(t, refresh1, refresh2)

	// повтор со сгоревшим токеном отклоняется
	_, err = authService.Refresh(ctx, refresh1, model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)

	// свежий токен продолжает цепочку
	_, err = authService.Refresh(ctx, refresh2, model.DeviceContext{})
	assert.NoError(t, err)
}

// при конкурентных refresh с одним секретом выигрывает ровно один
func TestAuthenticationService_Refresh_SingleWinner(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)
	ctx := context.Background()

	login, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	raw := security.RawSecret(login.RefreshToken)

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := authService.Refresh(ctx, raw, model.DeviceContext{})
			results <- err
		}()
	}
	wg.Wait()
	close(results)

	var succeeded int
	for err := range results {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
		}
	}
	assert.Equal(t, 1, succeeded)
}

func TestAuthenticationService_Logout_Idempotent(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)

	authService, _ := newAuthService(t, userRepo)
	ctx := context.Background()

	login, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	raw := security.RawSecret(login.RefreshToken)

	assert.NoError(t, authService.Logout(ctx, raw))
	assert.NoError(t, authService.Logout(ctx, raw), "повторный выход не ошибка")
	assert.NoError(t, authService.Logout(ctx, security.RawSecret("никогда не существовал")))

	// отозванный токен больше не работает
	_, err = authService.Refresh(ctx, raw, model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
}

func TestAuthenticationService_LogoutAll(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)

	authService, tokenRepo := newAuthService(t, userRepo)
	ctx := context.Background()

	first, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)
	second, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)

	require.NoError(t, authService.LogoutAll(ctx, user.ID))

	// обе сессии мертвы, строки удалены физически
	_, err = authService.Refresh(ctx, security.RawSecret(first.RefreshToken), model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	_, err = authService.Refresh(ctx, security.RawSecret(second.RefreshToken), model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
	assert.Empty(t, tokenRepo.rows)
}

func TestAuthenticationService_Register_Validation(t *testing.T) {
	userRepo := new(MockUserRepository)
	authService, _ := newAuthService(t, userRepo)
	ctx := context.Background()

	_, err := authService.Register(ctx, "ab", "user@example.com", "P@ssw0rd!")
	assert.ErrorIs(t, err, model.ErrValidation, "имя короче 3 символов")

	_, err = authService.Register(ctx, "validname", "без-собаки", "P@ssw0rd!")
	assert.ErrorIs(t, err, model.ErrValidation, "email без @")

	_, err = authService.Register(ctx, "validname", "user@example.com", "12345")
	assert.ErrorIs(t, err, model.ErrValidation, "пароль короче 6 символов")
}

func TestAuthenticationService_Register_TakenUsername(t *testing.T) {
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByUsername", mock.Anything, "taken").Return(true, nil)

	authService, _ := newAuthService(t, userRepo)

	_, err := authService.Register(context.Background(), "taken", "user@example.com", "P@ssw0rd!")
	assert.ErrorIs(t, err, model.ErrAlreadyExists)
}

func TestAuthenticationService_Register_Success(t *testing.T) {
	var created *model.User
	userRepo := new(MockUserRepository)
	userRepo.On("ExistsByUsername", mock.Anything, "newuser").Return(false, nil)
	userRepo.On("ExistsByEmail", mock.Anything, "new@example.com").Return(false, nil)
	userRepo.On("CreateUser", mock.Anything, mock.AnythingOfType("*model.User")).
		Return(nil, nil).
		Run(func(args mock.Arguments) { created = args.Get(1).(*model.User) })

	authService, _ := newAuthService(t, userRepo)

	_, err := authService.Register(context.Background(), "newuser", "New@Example.com", "P@ssw0rd!")
	require.NoError(t, err)
	require.NotNil(t, created)
	assert.Equal(t, "newuser", created.Username)
	assert.Equal(t, "new@example.com", created.Email, "email нормализуется в нижний регистр")
	assert.NotEqual(t, "P@ssw0rd!", created.PasswordHash)
	assert.True(t, security.CheckPassword("P@ssw0rd!", created.PasswordHash))
}

func TestAuthenticationService_ChangePassword_RevokesSessions(t *testing.T) {
	user := testUser(t)
	userRepo := new(MockUserRepository)
	userRepo.On("FindByUsername", mock.Anything, "artlover42").Return(user, nil)
	userRepo.On("FindByID", mock.Anything, "user-1").Return(user, nil)
	userRepo.On("UpdatePassword", mock.Anything, "user-1", mock.AnythingOfType("string")).Return(nil)

	authService, tokenRepo := newAuthService(t, userRepo)
	ctx := context.Background()

	login, err := authService.Login(ctx, "artlover42", "correct-password", model.DeviceContext{})
	require.NoError(t, err)

	require.NoError(t, authService.ChangePassword(ctx, "user-1", "correct-password", "new-password-1"))

	// смена пароля завершает все сессии
	assert.Empty(t, tokenRepo.rows)
	_, err = authService.Refresh(ctx, security.RawSecret(login.RefreshToken), model.DeviceContext{})
	assert.ErrorIs(t, err, model.ErrInvalidRefreshToken)
}
