package model

import "time"

// RefreshToken : строка таблицы refresh_tokens.
// Сырой секрет в БД не попадает никогда — хранится только SHA-256 хэш.
type RefreshToken struct {
	ID         string    `db:"id"`
	TokenHash  string    `db:"token_hash"`
	UserID     string    `db:"user_id"`
	IssuedAt   time.Time `db:"issued_at"`
	ExpiryDate time.Time `db:"expiry_date"`
	DeviceInfo string    `db:"device_info"`
	IpAddress  string    `db:"ip_address"`
	UserAgent  string    `db:"user_agent"`
	Revoked    bool      `db:"revoked"`
}

// IsValid : токен годен, если не отозван и срок не вышел
func (t *RefreshToken) IsValid(now time.Time) bool {
	return !t.Revoked && now.Before(t.ExpiryDate)
}

// DeviceContext : сведения об устройстве, с которого пришёл запрос
type DeviceContext struct {
	DeviceInfo string
	IpAddress  string
	UserAgent  string
}

// AuthResult : результат login/refresh.
// ExpiresIn — ОСТАВШЕЕСЯ время жизни access-токена в миллисекундах,
// не абсолютная метка времени.
type AuthResult struct {
	AccessToken  string
	RefreshToken string
	ExpiresIn    int64
	User         *User
}
