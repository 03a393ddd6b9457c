package security

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

type contextKey string

const (
	UserContextKey contextKey = "user"
)

type Claims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

type JWTService struct {
	*config.JWTConfig
	now func() time.Time
}

func NewJWTService(cfg *config.JWTConfig) *JWTService {
	return &JWTService{cfg, time.Now}
}

// NewJWTServiceWithClock : для тестов логики истечения срока
func NewJWTServiceWithClock(cfg *config.JWTConfig, now func() time.Time) *JWTService {
	return &JWTService{cfg, now}
}

// GenerateAccessToken собирает и подписывает access-токен.
// jti (RegisteredClaims.ID) гарантирует, что два токена, выданные одному
// пользователю в одну миллисекунду, не совпадут байт в байт.
func (service *JWTService) GenerateAccessToken(userID string, username string) (string, time.Time, error) {
	ttl, err := time.ParseDuration(service.AccessTokenTTL)
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка парсинга access_token_ttl", err)
	}

	now := service.now()
	expiresAt := now.Add(ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			ID:        uuid.New().String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			Issuer:    "artship-backend",
		},
	}

	jwtToken := jwt.NewWithClaims(jwt.SigningMethodHS512, claims)
	accessToken, err := jwtToken.SignedString([]byte(service.SecretKey))
	if err != nil {
		return "", time.Time{}, util.LogError("ошибка подписи токена", err)
	}

	return accessToken, expiresAt, nil
}

// ValidateAccessToken проверяет подпись и срок действия.
// Возвращает типизированную ошибку, чтобы вызывающий мог отличить
// "токен истёк, попробуй refresh" от "токен мусорный".
func (service *JWTService) ValidateAccessToken(jwtTokenStr string) (*Claims, error) {
	var claims = &Claims{}

	jwtToken, err := jwt.ParseWithClaims(jwtTokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Header["alg"] != jwt.SigningMethodHS512.Alg() {
			return nil, fmt.Errorf("неверный способ подписи токена: %v", token.Header["alg"])
		}
		return []byte(service.SecretKey), nil
	}, jwt.WithTimeFunc(service.now))

	switch {
	case err == nil && jwtToken.Valid:
		return claims, nil
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, model.ErrTokenExpired
	case errors.Is(err, jwt.ErrTokenMalformed):
		return nil, model.ErrTokenMalformed
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, model.ErrInvalidSignature
	default:
		log.Printf("невалидный токен: %v", err)
		return nil, model.ErrTokenMalformed
	}
}

func JWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if !strings.HasPrefix(authorizationHeader, "Bearer ") {
				util.HandleError(writer, "unauthorized", http.StatusUnauthorized)
				return
			}

			token := strings.TrimPrefix(authorizationHeader, "Bearer ")

			claims, err := jwtService.ValidateAccessToken(token)
			if err != nil {
				log.Printf("невалидный токен: %v", err)
				util.HandleError(writer, "невалидный токен", http.StatusUnauthorized)
				return
			}

			req := request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
			next.ServeHTTP(writer, req)
		})
	}
}

// OptionalJWTMiddleware кладёт claims в контекст, если токен предъявлен
// и валиден, но не отклоняет анонимные запросы. Используется на публичных
// маршрутах, где авторизованный зритель видит больше (свои приватные арты).
func OptionalJWTMiddleware(jwtService *JWTService) func(handler http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
			authorizationHeader := request.Header.Get("Authorization")
			if strings.HasPrefix(authorizationHeader, "Bearer ") {
				token := strings.TrimPrefix(authorizationHeader, "Bearer ")
				if claims, err := jwtService.ValidateAccessToken(token); err == nil {
					request = request.WithContext(context.WithValue(request.Context(), UserContextKey, claims))
				}
			}
			next.ServeHTTP(writer, request)
		})
	}
}

func GetClaimsFromContext(ctx context.Context) (*Claims, error) {
	claims, ok := ctx.Value(UserContextKey).(*Claims)
	if !ok || claims == nil {
		return nil, fmt.Errorf("пользователь не авторизован")
	}
	return claims, nil
}
