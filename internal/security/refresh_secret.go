package security

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"

	"artship-backend/internal/util"
)

// RawSecret : сырой refresh-секрет. Отдаётся клиенту один раз и никогда
// не пишется ни в БД, ни в логи — String() возвращает заглушку, чтобы
// случайный %v/%s не раскрыл значение.
type RawSecret string

func (s RawSecret) String() string {
	return "<refresh-secret>"
}

// Reveal : явный доступ к значению для выдачи клиенту и хэширования
func (s RawSecret) Reveal() string {
	return string(s)
}

// SecretDigest : SHA-256 хэш секрета в hex, именно он хранится в БД
type SecretDigest string

// GenerateRefreshSecret генерирует 64 байта (512 бит) криптостойкой
// случайности в base64url. Ошибка источника энтропии — повод аварийно
// завершить операцию, отдавать слабый секрет нельзя.
func GenerateRefreshSecret() (RawSecret, error) {
	buf := make([]byte, 64)
	if _, err := rand.Read(buf); err != nil {
		return "", util.LogError("ошибка чтения источника энтропии", err)
	}
	return RawSecret(base64.RawURLEncoding.EncodeToString(buf)), nil
}

// HashRefreshSecret : детерминированный односторонний хэш секрета.
// Секрет и так высокоэнтропийный, поэтому быстрый SHA-256 достаточен
// и нужен — по хэшу идёт поиск в таблице.
func HashRefreshSecret(secret RawSecret) SecretDigest {
	sum := sha256.Sum256([]byte(secret.Reveal()))
	return SecretDigest(hex.EncodeToString(sum[:]))
}
