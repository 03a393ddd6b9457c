package security_test

import (
	"testing"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testJWTConfig() *config.JWTConfig {
	return &config.JWTConfig{
		SecretKey:       "test-secret-key",
		AccessTokenTTL:  "15m",
		RefreshTokenTTL: "720h",
	}
}

func TestGenerateAccessToken_Roundtrip(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	token, expiresAt, err := jwtService.GenerateAccessToken("user-1", "artlover42")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	assert.WithinDuration(t, time.Now().Add(15*time.Minute), expiresAt, 5*time.Second)

	claims, err := jwtService.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "artlover42", claims.Subject)
	assert.NotEmpty(t, claims.ID, "jti должен быть заполнен")
}

func TestGenerateAccessToken_UniqueJTI(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	first, _, err := jwtService.GenerateAccessToken("user-1", "artlover42")
	require.NoError(t, err)
	second, _, err := jwtService.GenerateAccessToken("user-1", "artlover42")
	require.NoError(t, err)

	// jti гарантирует различие токенов даже при одинаковом времени выдачи
	assert.NotEqual(t, first, second)
}

func TestValidateAccessToken_Expired(t *testing.T) {
	issuedAt := time.Now()
	issuer := security.NewJWTServiceWithClock(testJWTConfig(), func() time.Time { return issuedAt })

	token, _, err := issuer.GenerateAccessToken("user-1", "artlover42")
	require.NoError(t, err)

	// часы уходят за срок действия токена
	verifier := security.NewJWTServiceWithClock(testJWTConfig(), func() time.Time {
		return issuedAt.Add(16 * time.Minute)
	})

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, model.ErrTokenExpired)
}

func TestValidateAccessToken_WrongKey(t *testing.T) {
	issuer := security.NewJWTService(testJWTConfig())
	token, _, err := issuer.GenerateAccessToken("user-1", "artlover42")
	require.NoError(t, err)

	otherCfg := testJWTConfig()
	otherCfg.SecretKey = "another-secret-key"
	verifier := security.NewJWTService(otherCfg)

	_, err = verifier.ValidateAccessToken(token)
	assert.ErrorIs(t, err, model.ErrInvalidSignature)
}

func TestValidateAccessToken_Malformed(t *testing.T) {
	jwtService := security.NewJWTService(testJWTConfig())

	_, err := jwtService.ValidateAccessToken("не.jwt.вовсе")
	assert.ErrorIs(t, err, model.ErrTokenMalformed)

	_, err = jwtService.ValidateAccessToken("")
	assert.ErrorIs(t, err, model.ErrTokenMalformed)
}
