package security_test

import (
	"encoding/base64"
	"fmt"
	"testing"

	"artship-backend/internal/security"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateRefreshSecret_Entropy(t *testing.T) {
	raw, err := security.GenerateRefreshSecret()
	require.NoError(t, err)

	decoded, err := base64.RawURLEncoding.DecodeString(raw.Reveal())
	require.NoError(t, err)
	assert.Equal(t, 64, len(decoded), "секрет должен содержать 64 байта энтропии")
}

func TestGenerateRefreshSecret_Unique(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		raw, err := security.GenerateRefreshSecret()
		require.NoError(t, err)

		_, duplicate := seen[raw.Reveal()]
		require.False(t, duplicate, "секреты не должны повторяться")
		seen[raw.Reveal()] = struct{}{}
	}
}

func TestHashRefreshSecret_Deterministic(t *testing.T) {
	raw, err := security.GenerateRefreshSecret()
	require.NoError(t, err)

	first := security.HashRefreshSecret(raw)
	second := security.HashRefreshSecret(raw)

	assert.Equal(t, first, second, "хэш одного секрета должен быть стабильным")
	assert.Equal(t, 64, len(first), "SHA-256 в hex — 64 символа")
}

func TestHashRefreshSecret_DiffersFromRaw(t *testing.T) {
	raw, err := security.GenerateRefreshSecret()
	require.NoError(t, err)

	digest := security.HashRefreshSecret(raw)
	assert.NotEqual(t, raw.Reveal(), string(digest))
}

func TestHashRefreshSecret_DifferentSecrets(t *testing.T) {
	first := security.HashRefreshSecret(security.RawSecret("secret-one"))
	second := security.HashRefreshSecret(security.RawSecret("secret-two"))
	assert.NotEqual(t, first, second)
}

// RawSecret не должен раскрывать значение через String/печать
func TestRawSecret_Redacted(t *testing.T) {
	raw := security.RawSecret("super-secret-value")

	assert.NotContains(t, raw.String(), "super-secret-value")
	assert.NotContains(t, fmt.Sprintf("%v", raw), "super-secret-value")
	assert.NotContains(t, fmt.Sprintf("%s", raw), "super-secret-value")
	assert.Equal(t, "super-secret-value", raw.Reveal())
}
