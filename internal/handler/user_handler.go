package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"artship-backend/internal/model"
	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/security"
	"artship-backend/internal/service"
	"artship-backend/internal/util"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService   *service.UserService
	followService *service.FollowService
}

func NewUserHandler(userService *service.UserService, followService *service.FollowService) *UserHandler {
	return &UserHandler{userService: userService, followService: followService}
}

// GetProfile godoc
// @Summary Профиль пользователя
// @Description Возвращает публичный профиль со счётчиками подписок
// @Tags Users
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.UserProfileResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/{id} [get]
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	user, err := h.userService.GetUser(r.Context(), id)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	h.writeProfile(w, r, user)
}

// writeProfile дополняет профиль счётчиками подписок и флагом
// is_following для авторизованного зрителя
func (h *UserHandler) writeProfile(w http.ResponseWriter, r *http.Request, user *model.User) {
	followers, following, err := h.followService.Counters(r.Context(), user.ID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	resp := requestresponse.UserProfileFromModel(user, followers, following)
	if viewer := viewerID(r); viewer != "" && viewer != user.ID {
		isFollowing, err := h.followService.IsFollowing(r.Context(), viewer, user.ID)
		if err != nil {
			log.Printf("ошибка проверки подписки на пользователя %s: %v", user.ID, err)
		}
		resp.IsFollowing = isFollowing
	}
	util.WriteJSON(w, http.StatusOK, resp)
}

// GetProfileByUsername godoc
// @Summary Профиль по имени пользователя
// @Tags Users
// @Produce json
// @Param username path string true "Имя пользователя"
// @Success 200 {object} requestresponse.UserProfileResponse
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Router /api/users/by-username/{username} [get]
func (h *UserHandler) GetProfileByUsername(w http.ResponseWriter, r *http.Request) {
	username := chi.URLParam(r, "username")

	user, err := h.userService.GetUserByUsername(r.Context(), username)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	h.writeProfile(w, r, user)
}

// UpdateProfile godoc
// @Summary Обновление профиля
// @Description Меняет отображаемое имя, аватар, описание и видимость профиля
// @Tags Users
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.UpdateProfileRequest true "Тело запроса"
// @Success 200 {object} requestresponse.UserProfileResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users/me [put]
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	user, err := h.userService.GetUser(r.Context(), claims.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	user.DisplayName = req.DisplayName
	user.AvatarURL = req.AvatarURL
	user.Bio = req.Bio
	if req.IsPublic != nil {
		user.IsPublic = *req.IsPublic
	}

	if err := h.userService.UpdateProfile(r.Context(), user); err != nil {
		mapServiceError(w, err)
		return
	}

	followers, following, err := h.followService.Counters(r.Context(), user.ID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.UserProfileFromModel(user, followers, following))
}

// ListUsers godoc
// @Summary Список пользователей
// @Description Постраничный список по курсору created_at
// @Tags Users
// @Produce json
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы (по умолчанию 20, максимум 100)"
// @Success 200 {object} requestresponse.ListUsersResponse
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/users [get]
func (h *UserHandler) ListUsers(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)

	users, nextCursor, err := h.userService.ListUsers(r.Context(), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListUsersResponse
	resp.Data.Users = make([]requestresponse.UserProfileResponse, 0, len(users))
	for _, user := range users {
		resp.Data.Users = append(resp.Data.Users, requestresponse.UserProfileFromModel(user, 0, 0))
	}
	resp.Data.NextCursor = nextCursor
	util.WriteJSON(w, http.StatusOK, resp)
}
