package model

import "errors"

// Ошибки аутентификации, видимые клиенту. Текст намеренно общий:
// по ответу нельзя понять, что именно было неверным.
var (
	ErrInvalidCredentials  = errors.New("неверный логин или пароль")
	ErrInvalidRefreshToken = errors.New("невалидный refresh токен")
)

// Внутренние причины отказа по refresh-токену. Наружу не отдаются,
// оркестратор сводит их к ErrInvalidRefreshToken, но пишет в лог.
var (
	ErrRefreshTokenNotFound = errors.New("refresh токен не найден")
	ErrRefreshTokenRevoked  = errors.New("refresh токен уже отозван")
	ErrRefreshTokenExpired  = errors.New("refresh токен просрочен")
)

// ErrHashCollision : хэш сгенерированного секрета уже есть в базе.
// Сервис повторяет генерацию один раз, прежде чем вернуть ошибку.
var ErrHashCollision = errors.New("коллизия хэша refresh токена")

// Ошибки проверки access-токена
var (
	ErrTokenExpired     = errors.New("access токен просрочен")
	ErrTokenMalformed   = errors.New("access токен повреждён")
	ErrInvalidSignature = errors.New("неверная подпись access токена")
)

var (
	ErrNotFound      = errors.New("не найдено")
	ErrAccessDenied  = errors.New("доступ запрещён")
	ErrAlreadyExists = errors.New("уже существует")
	ErrValidation    = errors.New("некорректные данные запроса")
)
