package security

import (
	"artship-backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// HashPassword : bcrypt-хэш пароля пользователя.
// Медленный адаптивный хэш нужен только для паролей; refresh-секреты
// хэшируются быстрым SHA-256 (см. refresh_secret.go).
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", util.LogError("ошибка хэширования пароля", err)
	}
	return string(hash), nil
}

func CheckPassword(password string, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
