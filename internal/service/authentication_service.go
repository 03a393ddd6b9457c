package service

import (
	"context"
	"log"
	"regexp"
	"strings"
	"time"

	"artship-backend/internal/model"
	"artship-backend/internal/ports"
	"artship-backend/internal/security"
	"artship-backend/internal/util"

	"github.com/google/uuid"
)

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_]{3,50}$`)

// AuthenticationService — оркестратор аутентификации: связывает
// проверку пароля, выдачу access-токена и ротацию refresh-токена.
// Наружу при любом провале входа уходит один и тот же
// ErrInvalidCredentials, чтобы не раскрывать существование аккаунта.
type AuthenticationService struct {
	userRepository      ports.UserRepository
	refreshTokenService ports.RefreshTokenServiceInterface
	jwtService          ports.JWTServiceInterface
	now                 func() time.Time
}

func NewAuthenticationService(
	userRepo ports.UserRepository,
	refreshTokenService ports.RefreshTokenServiceInterface,
	jwtService ports.JWTServiceInterface,
) *AuthenticationService {
	return &AuthenticationService{
		userRepository:      userRepo,
		refreshTokenService: refreshTokenService,
		jwtService:          jwtService,
		now:                 time.Now,
	}
}

// Login проверяет учётные данные и открывает новую сессию.
// Идентификатором может быть имя пользователя или email.
func (s *AuthenticationService) Login(ctx context.Context, identifier string, password string, device model.DeviceContext) (*model.AuthResult, error) {
	user, err := s.findByIdentifier(ctx, identifier)
	if err != nil {
		log.Printf("неудачная попытка входа: пользователь не найден")
		return nil, model.ErrInvalidCredentials
	}

	if !security.CheckPassword(password, user.PasswordHash) {
		log.Printf("неудачная попытка входа: неверный пароль, пользователь %s", user.ID)
		return nil, model.ErrInvalidCredentials
	}

	return s.openSession(ctx, user, device)
}

// Refresh ротирует refresh-токен: старый атомарно сжигается, клиенту
// выдаётся новая пара. Повторное предъявление уже использованного
// секрета отклоняется на уровне хранилища.
func (s *AuthenticationService) Refresh(ctx context.Context, raw security.RawSecret, device model.DeviceContext) (*model.AuthResult, error) {
	consumed, err := s.refreshTokenService.ValidateAndConsume(ctx, raw)
	if err != nil {
		// конкретная причина остаётся в логах, клиент видит единый ответ
		log.Printf("отклонён refresh токен: %v", err)
		return nil, model.ErrInvalidRefreshToken
	}

	user, err := s.userRepository.FindByID(ctx, consumed.UserID)
	if err != nil {
		log.Printf("владелец refresh токена не найден: %s", consumed.UserID)
		return nil, model.ErrInvalidRefreshToken
	}

	return s.openSession(ctx, user, device)
}

// Logout отзывает refresh-токен. Выход всегда успешен: неизвестный или
// уже отозванный секрет не ошибка с точки зрения клиента.
func (s *AuthenticationService) Logout(ctx context.Context, raw security.RawSecret) error {
	if err := s.refreshTokenService.Revoke(ctx, raw); err != nil {
		log.Printf("ошибка отзыва refresh токена при выходе: %v", err)
	}
	return nil
}

// LogoutAll завершает все сессии пользователя
func (s *AuthenticationService) LogoutAll(ctx context.Context, userID string) error {
	return s.refreshTokenService.RevokeAllForUser(ctx, userID)
}

// Register создаёт нового пользователя
func (s *AuthenticationService) Register(ctx context.Context, username string, email string, password string) (*model.User, error) {
	username = strings.TrimSpace(username)
	email = strings.TrimSpace(strings.ToLower(email))

	if !usernamePattern.MatchString(username) {
		return nil, model.ErrValidation
	}
	if !strings.Contains(email, "@") {
		return nil, model.ErrValidation
	}
	if len(password) < 6 || len(password) > 72 {
		return nil, model.ErrValidation
	}

	exists, err := s.userRepository.ExistsByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAlreadyExists
	}
	exists, err = s.userRepository.ExistsByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, model.ErrAlreadyExists
	}

	passwordHash, err := security.HashPassword(password)
	if err != nil {
		return nil, util.LogError("ошибка хэширования пароля", err)
	}

	user := &model.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    s.now(),
	}
	return s.userRepository.CreateUser(ctx, user)
}

// ChangePassword меняет пароль и завершает все сессии пользователя
func (s *AuthenticationService) ChangePassword(ctx context.Context, userID string, oldPassword string, newPassword string) error {
	user, err := s.userRepository.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if !security.CheckPassword(oldPassword, user.PasswordHash) {
		return model.ErrInvalidCredentials
	}
	if len(newPassword) < 6 || len(newPassword) > 72 {
		return model.ErrValidation
	}

	passwordHash, err := security.HashPassword(newPassword)
	if err != nil {
		return util.LogError("ошибка хэширования пароля", err)
	}
	if err := s.userRepository.UpdatePassword(ctx, userID, passwordHash); err != nil {
		return err
	}
	return s.refreshTokenService.RevokeAllForUser(ctx, userID)
}

func (s *AuthenticationService) findByIdentifier(ctx context.Context, identifier string) (*model.User, error) {
	if strings.Contains(identifier, "@") {
		if user, err := s.userRepository.FindByEmail(ctx, identifier); err == nil {
			return user, nil
		}
	}
	return s.userRepository.FindByUsername(ctx, identifier)
}

// openSession выдаёт пару токенов для уже прошедшего проверку
// пользователя. ExpiresIn — оставшееся время жизни access-токена
// в миллисекундах, не абсолютная метка.
func (s *AuthenticationService) openSession(ctx context.Context, user *model.User, device model.DeviceContext) (*model.AuthResult, error) {
	raw, _, err := s.refreshTokenService.Issue(ctx, user.ID, device)
	if err != nil {
		return nil, util.LogError("ошибка выдачи refresh токена", err)
	}

	accessToken, expiresAt, err := s.jwtService.GenerateAccessToken(user.ID, user.Username)
	if err != nil {
		return nil, util.LogError("ошибка выдачи access токена", err)
	}

	return &model.AuthResult{
		AccessToken:  accessToken,
		RefreshToken: raw.Reveal(),
		ExpiresIn:    expiresAt.Sub(s.now()).Milliseconds(),
		User:         user,
	}, nil
}
