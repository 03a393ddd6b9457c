package service

import (
	"context"
	"errors"
	"log"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/ports"
	"artship-backend/internal/security"
	"artship-backend/internal/util"

	"github.com/google/uuid"
)

// RefreshTokenService владеет жизненным циклом refresh-токенов:
// генерация секрета, хэширование, выдача, ротация, отзыв и фоновая
// очистка. Сырой секрет живёт только в пределах вызова Issue.
type RefreshTokenService struct {
	tokenRepository ports.RefreshTokenRepositoryInterface
	ttl             time.Duration
	now             func() time.Time
}

func NewRefreshTokenService(repo ports.RefreshTokenRepositoryInterface, cfg *config.JWTConfig) (*RefreshTokenService, error) {
	ttl, err := time.ParseDuration(cfg.RefreshTokenTTL)
	if err != nil {
		return nil, util.LogError("ошибка парсинга refresh_token_ttl", err)
	}
	return &RefreshTokenService{
		tokenRepository: repo,
		ttl:             ttl,
		now:             time.Now,
	}, nil
}

// NewRefreshTokenServiceWithClock : для тестов логики истечения срока
func NewRefreshTokenServiceWithClock(repo ports.RefreshTokenRepositoryInterface, ttl time.Duration, now func() time.Time) *RefreshTokenService {
	return &RefreshTokenService{tokenRepository: repo, ttl: ttl, now: now}
}

// Issue выдаёт новый refresh-токен: генерирует секрет, сохраняет только
// его хэш и возвращает сырое значение — второй раз его получить нельзя.
// Коллизия хэша повторяется один раз со свежей генерацией.
func (s *RefreshTokenService) Issue(ctx context.Context, userID string, device model.DeviceContext) (security.RawSecret, *model.RefreshToken, error) {
	for attempt := 0; attempt < 2; attempt++ {
		raw, err := security.GenerateRefreshSecret()
		if err != nil {
			return "", nil, err
		}

		token := &model.RefreshToken{
			ID:         uuid.New().String(),
			TokenHash:  string(security.HashRefreshSecret(raw)),
			UserID:     userID,
			IssuedAt:   s.now(),
			ExpiryDate: s.now().Add(s.ttl),
			DeviceInfo: device.DeviceInfo,
			IpAddress:  device.IpAddress,
			UserAgent:  device.UserAgent,
			Revoked:    false,
		}

		err = s.tokenRepository.Create(ctx, token)
		if err == nil {
			return raw, token, nil
		}
		if errors.Is(err, model.ErrHashCollision) {
			log.Printf("коллизия хэша refresh токена, повторная генерация")
			continue
		}
		return "", nil, err
	}

	return "", nil, model.ErrHashCollision
}

// Lookup ищет токен по сырому секрету, не меняя его состояния
func (s *RefreshTokenService) Lookup(ctx context.Context, raw security.RawSecret) (*model.RefreshToken, error) {
	return s.tokenRepository.FindByDigest(ctx, security.HashRefreshSecret(raw))
}

// ValidateAndConsume проверяет и атомарно "сжигает" токен (ротация при
// использовании). Победитель среди конкурирующих вызовов с одним
// секретом ровно один — это гарантирует условный UPDATE в репозитории.
func (s *RefreshTokenService) ValidateAndConsume(ctx context.Context, raw security.RawSecret) (*model.RefreshToken, error) {
	return s.tokenRepository.Consume(ctx, security.HashRefreshSecret(raw), s.now())
}

// Revoke отзывает токен; идемпотентен
func (s *RefreshTokenService) Revoke(ctx context.Context, raw security.RawSecret) error {
	return s.tokenRepository.Revoke(ctx, security.HashRefreshSecret(raw))
}

// RevokeAllForUser : "выйти везде"
func (s *RefreshTokenService) RevokeAllForUser(ctx context.Context, userID string) error {
	return s.tokenRepository.RevokeAllByUser(ctx, userID)
}

// SweepExpired удаляет просроченные строки. Ошибки здесь только
// логируются — фоновая очистка не должна ронять запросы пользователей.
func (s *RefreshTokenService) SweepExpired(ctx context.Context) {
	deleted, err := s.tokenRepository.DeleteExpired(ctx, s.now())
	if err != nil {
		log.Printf("ошибка очистки просроченных refresh токенов: %v", err)
		return
	}
	if deleted > 0 {
		log.Printf("удалено просроченных refresh токенов: %d", deleted)
	}
}

// ActiveSessions возвращает активные сессии пользователя
func (s *RefreshTokenService) ActiveSessions(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	return s.tokenRepository.ListActiveByUser(ctx, userID)
}

func (s *RefreshTokenService) ActiveSessionCount(ctx context.Context, userID string) (int64, error) {
	return s.tokenRepository.CountActiveByUser(ctx, userID)
}

// StartSweeper запускает периодическую очистку. Работает независимо от
// запросов и останавливается по отмене контекста.
func (s *RefreshTokenService) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.SweepExpired(ctx)
			}
		}
	}()
}
