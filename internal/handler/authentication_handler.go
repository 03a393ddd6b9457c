package handler

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"
	"unicode/utf8"

	"artship-backend/internal/model"
	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/ports"
	"artship-backend/internal/security"

	"artship-backend/internal/util"
)

const maxDeviceInfoLength = 500

type AuthenticationHandler struct {
	authenticationService ports.AuthenticationService
	refreshTokenService   ports.RefreshTokenServiceInterface
}

func NewAuthenticationHandler(
	authenticationService ports.AuthenticationService,
	refreshTokenService ports.RefreshTokenServiceInterface,
) *AuthenticationHandler {
	return &AuthenticationHandler{
		authenticationService: authenticationService,
		refreshTokenService:   refreshTokenService,
	}
}

// extractDeviceContext собирает сведения об устройстве из запроса.
// User-Agent обрезается до 500 символов перед записью в БД; граница
// обрезки проходит по рунам, иначе разрезанный UTF-8 отвергнет Postgres.
func extractDeviceContext(r *http.Request) model.DeviceContext {
	userAgent := r.UserAgent()
	deviceInfo := userAgent
	if utf8.RuneCountInString(deviceInfo) > maxDeviceInfoLength {
		deviceInfo = string([]rune(deviceInfo)[:maxDeviceInfoLength])
	}

	ip := r.Header.Get("X-Forwarded-For")
	if ip == "" {
		ip = r.RemoteAddr
	} else if idx := strings.Index(ip, ","); idx >= 0 {
		ip = strings.TrimSpace(ip[:idx])
	}

	return model.DeviceContext{
		DeviceInfo: deviceInfo,
		IpAddress:  ip,
		UserAgent:  userAgent,
	}
}

// Register godoc
// @Summary Регистрация пользователя
// @Description Создание нового аккаунта по имени пользователя, email и паролю
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RegisterRequest true "Тело запроса"
// @Success 201 {object} requestresponse.UserSummary "Пользователь создан"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 409 {object} requestresponse.ErrorResponse "Имя или email заняты"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/register [post]
func (h *AuthenticationHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	user, err := h.authenticationService.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.UserSummary{
		ID:          user.ID,
		Username:    user.Username,
		DisplayName: user.DisplayName,
	})
}

// Login godoc
// @Summary Аутентификация пользователя
// @Description Вход по имени пользователя или email. Возвращает access токен,
// @Description refresh токен (отдаётся один раз) и оставшееся время жизни access токена в мс.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LoginRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse "Успешная аутентификация"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON или пустые поля"
// @Failure 401 {object} requestresponse.ErrorResponse "Неверный логин или пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/login [post]
func (h *AuthenticationHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}
	if req.Identifier == "" || req.Password == "" {
		sendErrorResponse(w, 400, "identifier и password обязательны")
		return
	}

	result, err := h.authenticationService.Login(r.Context(), req.Identifier, req.Password, extractDeviceContext(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AuthResponseFromResult(result))
}

// Refresh godoc
// @Summary Ротация refresh токена
// @Description Обменивает действующий refresh токен на новую пару токенов.
// @Description Предъявленный токен атомарно отзывается: повторное использование невозможно.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.RefreshRequest true "Тело запроса"
// @Success 200 {object} requestresponse.AuthResponse "Новая пара токенов"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Failure 401 {object} requestresponse.ErrorResponse "Невалидный refresh токен"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/refresh [post]
func (h *AuthenticationHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}
	if req.RefreshToken == "" {
		sendErrorResponse(w, 400, "refresh_token обязателен")
		return
	}

	result, err := h.authenticationService.Refresh(r.Context(), security.RawSecret(req.RefreshToken), extractDeviceContext(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.AuthResponseFromResult(result))
}

// Logout godoc
// @Summary Завершение сессии
// @Description Отзывает refresh токен. Операция идемпотентна: неизвестный
// @Description или уже отозванный токен не считается ошибкой.
// @Tags Authentication
// @Accept json
// @Produce json
// @Param body body requestresponse.LogoutRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SuccessResponse "Сессия завершена"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный JSON"
// @Router /api/auth/logout [post]
func (h *AuthenticationHandler) Logout(w http.ResponseWriter, r *http.Request) {
	var req requestresponse.LogoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	_ = h.authenticationService.Logout(r.Context(), security.RawSecret(req.RefreshToken))
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "сессия завершена"})
}

// LogoutAll godoc
// @Summary Завершение всех сессий
// @Description Отзывает все refresh токены текущего пользователя ("выйти везде")
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SuccessResponse "Все сессии завершены"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/logout-all [post]
func (h *AuthenticationHandler) LogoutAll(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.authenticationService.LogoutAll(r.Context(), claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "все сессии завершены"})
}

// ChangePassword godoc
// @Summary Смена пароля
// @Description Меняет пароль и завершает все сессии пользователя
// @Tags Authentication
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.ChangePasswordRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SuccessResponse "Пароль обновлён"
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован или неверный старый пароль"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/password [put]
func (h *AuthenticationHandler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.authenticationService.ChangePassword(r.Context(), claims.UserID, req.OldPassword, req.NewPassword); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "пароль обновлён"})
}

// Sessions godoc
// @Summary Активные сессии
// @Description Список действующих refresh токенов текущего пользователя
// @Tags Authentication
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.SessionListResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/auth/sessions [get]
func (h *AuthenticationHandler) Sessions(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	tokens, err := h.refreshTokenService.ActiveSessions(r.Context(), claims.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	total, err := h.refreshTokenService.ActiveSessionCount(r.Context(), claims.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.SessionListResponse
	resp.Data.Total = total
	resp.Data.Sessions = make([]requestresponse.SessionResponse, 0, len(tokens))
	for _, t := range tokens {
		resp.Data.Sessions = append(resp.Data.Sessions, requestresponse.SessionResponse{
			ID:         t.ID,
			DeviceInfo: t.DeviceInfo,
			IpAddress:  t.IpAddress,
			IssuedAt:   t.IssuedAt.Format(time.RFC3339),
			ExpiryDate: t.ExpiryDate.Format(time.RFC3339),
		})
	}
	util.WriteJSON(w, http.StatusOK, resp)
}
