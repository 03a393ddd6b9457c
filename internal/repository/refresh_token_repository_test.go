package repository_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/repository"
	"artship-backend/internal/security"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tokenColumns = []string{"id", "token_hash", "user_id", "issued_at", "expiry_date", "device_info", "ip_address", "user_agent", "revoked"}

func newMockRepository(t *testing.T) (*repository.RefreshTokenRepository, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	return repository.NewRefreshTokenRepository(&config.Database{DB: sqlxDB}), mock
}

func sampleToken(now time.Time) *model.RefreshToken {
	return &model.RefreshToken{
		ID:         "token-id-1",
		TokenHash:  "abcd1234",
		UserID:     "user-1",
		IssuedAt:   now,
		ExpiryDate: now.Add(30 * 24 * time.Hour),
		DeviceInfo: "Mozilla/5.0",
		IpAddress:  "203.0.113.10",
		UserAgent:  "Mozilla/5.0",
		Revoked:    false,
	}
}

func TestRefreshTokenRepository_Create(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	token := sampleToken(now)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WithArgs(token.ID, token.TokenHash, token.UserID, token.IssuedAt, token.ExpiryDate,
			token.DeviceInfo, token.IpAddress, token.UserAgent, token.Revoked).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Create(context.Background(), token)
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Create_HashCollision(t *testing.T) {
	repo, mock := newMockRepository(t)
	token := sampleToken(time.Now())

	// нарушение уникального индекса на token_hash
	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnError(&pq.Error{Code: "23505"})

	err := repo.Create(context.Background(), token)
	assert.ErrorIs(t, err, model.ErrHashCollision)
}

func TestRefreshTokenRepository_Consume_Success(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	token := sampleToken(now)

	mock.ExpectQuery("UPDATE refresh_tokens").
		WithArgs(token.TokenHash, now).
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow(token.ID, token.TokenHash, token.UserID, token.IssuedAt, token.ExpiryDate,
				token.DeviceInfo, token.IpAddress, token.UserAgent, true))

	consumed, err := repo.Consume(context.Background(), security.SecretDigest(token.TokenHash), now)
	require.NoError(t, err)
	assert.Equal(t, token.UserID, consumed.UserID)
	assert.True(t, consumed.Revoked, "использованный токен возвращается уже отозванным")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRefreshTokenRepository_Consume_NotFound(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectQuery("SELECT revoked, expiry_date FROM refresh_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"revoked", "expiry_date"}))

	_, err := repo.Consume(context.Background(), "unknown-digest", now)
	assert.ErrorIs(t, err, model.ErrRefreshTokenNotFound)
}

func TestRefreshTokenRepository_Consume_Revoked(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectQuery("SELECT revoked, expiry_date FROM refresh_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"revoked", "expiry_date"}).
			AddRow(true, now.Add(time.Hour)))

	_, err := repo.Consume(context.Background(), "revoked-digest", now)
	assert.ErrorIs(t, err, model.ErrRefreshTokenRevoked)
}

func TestRefreshTokenRepository_Consume_Expired(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectQuery("SELECT revoked, expiry_date FROM refresh_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"revoked", "expiry_date"}).
			AddRow(false, now.Add(-time.Hour)))

	_, err := repo.Consume(context.Background(), "expired-digest", now)
	assert.ErrorIs(t, err, model.ErrRefreshTokenExpired)
}

// между неудачным UPDATE и классифицирующим SELECT токен успели
// использовать конкурентно — отказ трактуется как "уже отозван"
func TestRefreshTokenRepository_Consume_RaceFallback(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectQuery("UPDATE refresh_tokens").
		WillReturnRows(sqlmock.NewRows(tokenColumns))
	mock.ExpectQuery("SELECT revoked, expiry_date FROM refresh_tokens").
		WillReturnRows(sqlmock.NewRows([]string{"revoked", "expiry_date"}).
			AddRow(false, now.Add(time.Hour)))

	_, err := repo.Consume(context.Background(), "raced-digest", now)
	assert.ErrorIs(t, err, model.ErrRefreshTokenRevoked)
}

func TestRefreshTokenRepository_Revoke_Idempotent(t *testing.T) {
	repo, mock := newMockRepository(t)

	// ни одна строка не подошла под условие — это не ошибка
	mock.ExpectExec("UPDATE refresh_tokens SET revoked").
		WithArgs("some-digest").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Revoke(context.Background(), "some-digest")
	assert.NoError(t, err)
}

func TestRefreshTokenRepository_RevokeAllByUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE user_id").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 3))

	err := repo.RevokeAllByUser(context.Background(), "user-1")
	assert.NoError(t, err)
}

func TestRefreshTokenRepository_DeleteExpired(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()

	mock.ExpectExec("DELETE FROM refresh_tokens WHERE expiry_date").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 5))

	deleted, err := repo.DeleteExpired(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, int64(5), deleted)
}

func TestRefreshTokenRepository_ListActiveByUser(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	token := sampleToken(now)

	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow(token.ID, token.TokenHash, token.UserID, token.IssuedAt, token.ExpiryDate,
				token.DeviceInfo, token.IpAddress, token.UserAgent, false))

	tokens, err := repo.ListActiveByUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, token.ID, tokens[0].ID)
}

// ошибка посреди выборки не должна превращаться в укороченный список
func TestRefreshTokenRepository_ListActiveByUser_RowError(t *testing.T) {
	repo, mock := newMockRepository(t)
	now := time.Now()
	token := sampleToken(now)

	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows(tokenColumns).
			AddRow(token.ID, token.TokenHash, token.UserID, token.IssuedAt, token.ExpiryDate,
				token.DeviceInfo, token.IpAddress, token.UserAgent, false).
			RowError(0, errors.New("соединение разорвано")))

	_, err := repo.ListActiveByUser(context.Background(), "user-1")
	assert.Error(t, err)
}

func TestRefreshTokenRepository_CountActiveByUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery("SELECT COUNT").
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountActiveByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)
}
