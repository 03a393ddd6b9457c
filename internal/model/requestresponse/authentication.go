package requestresponse

import "artship-backend/internal/model"

// LoginRequest : тело запроса на аутентификацию.
// Identifier — имя пользователя или email.
type LoginRequest struct {
	Identifier string `json:"identifier" example:"artlover42"`
	Password   string `json:"password" example:"P@ssw0rd123"`
}

// AuthResponse : ответ на успешный login/refresh.
// RefreshToken возвращается клиенту ровно один раз — повторно получить
// его нельзя, сервер хранит только хэш.
type AuthResponse struct {
	AccessToken  string       `json:"access_token" example:"eyJhbGciOiJIUzUxMiIsInR5cCI6IkpXVCJ9..."`
	RefreshToken string       `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
	ExpiresIn    int64        `json:"expires_in" example:"900000"` // оставшиеся миллисекунды
	User         *UserSummary `json:"user"`
}

// UserSummary : минимальные сведения о пользователе в ответе аутентификации
type UserSummary struct {
	ID          string `json:"id" example:"b6a1e1c4-4b1d-4f1e-8b29-1234567890ab"`
	Username    string `json:"username" example:"artlover42"`
	DisplayName string `json:"display_name" example:"Art Lover"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

// AuthResponseFromResult : конвертирует model.AuthResult в AuthResponse
func AuthResponseFromResult(result *model.AuthResult) AuthResponse {
	return AuthResponse{
		AccessToken:  result.AccessToken,
		RefreshToken: result.RefreshToken,
		ExpiresIn:    result.ExpiresIn,
		User: &UserSummary{
			ID:          result.User.ID,
			Username:    result.User.Username,
			DisplayName: result.User.DisplayName,
			AvatarURL:   result.User.AvatarURL,
		},
	}
}

// RefreshRequest : запрос на ротацию refresh-токена
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
}

// LogoutRequest : запрос на завершение сессии
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" example:"sfuqwejqjoiu93e29"`
}

// RegisterRequest : тело запроса регистрации
type RegisterRequest struct {
	Username string `json:"username" example:"newuser123"`
	Email    string `json:"email" example:"newuser@example.com"`
	Password string `json:"password" example:"P@ssw0rd!"`
}

// ChangePasswordRequest : тело запроса смены пароля
type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"P@ssw0rd!"`
	NewPassword string `json:"new_password" example:"P@ssw0rd123"`
}

// SessionResponse : активная сессия пользователя
type SessionResponse struct {
	ID         string `json:"id"`
	DeviceInfo string `json:"device_info" example:"Mozilla/5.0 ..."`
	IpAddress  string `json:"ip_address" example:"203.0.113.10"`
	IssuedAt   string `json:"issued_at" example:"2025-08-23T12:34:56Z"`
	ExpiryDate string `json:"expiry_date" example:"2025-09-22T12:34:56Z"`
}

// SessionListResponse : список активных сессий
type SessionListResponse struct {
	Data struct {
		Sessions []SessionResponse `json:"sessions"`
		Total    int64             `json:"total"`
	} `json:"data"`
}
