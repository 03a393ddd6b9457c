package handler

import (
	"encoding/json"
	"net/http"

	"artship-backend/internal/model"
	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/security"
	"artship-backend/internal/service"
	"artship-backend/internal/util"

	"github.com/go-chi/chi/v5"
)

// SocialHandler : лайки, комментарии и подписки
type SocialHandler struct {
	likeService    *service.LikeService
	commentService *service.CommentService
	followService  *service.FollowService
}

func NewSocialHandler(
	likeService *service.LikeService,
	commentService *service.CommentService,
	followService *service.FollowService,
) *SocialHandler {
	return &SocialHandler{
		likeService:    likeService,
		commentService: commentService,
		followService:  followService,
	}
}

// Like godoc
// @Summary Поставить лайк
// @Description Повторный лайк того же арта не ошибка
// @Tags Social
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Арт недоступен"
// @Router /api/arts/{id}/like [post]
func (h *SocialHandler) Like(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.likeService.Like(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "лайк поставлен"})
}

// Unlike godoc
// @Summary Снять лайк
// @Tags Social
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Router /api/arts/{id}/like [delete]
func (h *SocialHandler) Unlike(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.likeService.Unlike(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "лайк снят"})
}

// AddComment godoc
// @Summary Добавить комментарий
// @Description Указание parent_comment_id делает комментарий ответом
// @Tags Social
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Param body body requestresponse.CreateCommentRequest true "Тело запроса"
// @Success 201 {object} requestresponse.CommentResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Арт недоступен"
// @Router /api/arts/{id}/comments [post]
func (h *SocialHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.CreateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	comment, err := h.commentService.AddComment(r.Context(), claims.UserID, chi.URLParam(r, "id"), req.Text, req.ParentCommentID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, requestresponse.CommentResponseFromModel(comment))
}

// ListComments godoc
// @Summary Комментарии арта
// @Tags Social
// @Produce json
// @Param id path string true "ID арта"
// @Param root query bool false "Только корневые комментарии, без ответов"
// @Success 200 {object} requestresponse.ListCommentsResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Арт недоступен"
// @Router /api/arts/{id}/comments [get]
func (h *SocialHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	rootOnly := r.URL.Query().Get("root") == "true"
	comments, err := h.commentService.ListForArt(r.Context(), chi.URLParam(r, "id"), viewerID(r), rootOnly)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeComments(w, comments)
}

// ListCommentReplies godoc
// @Summary Ответы на комментарий
// @Tags Social
// @Produce json
// @Param id path string true "ID корневого комментария"
// @Success 200 {object} requestresponse.ListCommentsResponse
// @Router /api/comments/{id}/replies [get]
func (h *SocialHandler) ListCommentReplies(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListReplies(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeComments(w, comments)
}

// UserComments godoc
// @Summary Комментарии пользователя
// @Tags Social
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.ListCommentsResponse
// @Router /api/users/{id}/comments [get]
func (h *SocialHandler) UserComments(w http.ResponseWriter, r *http.Request) {
	comments, err := h.commentService.ListForUser(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeComments(w, comments)
}

func writeComments(w http.ResponseWriter, comments []*model.Comment) {
	var resp requestresponse.ListCommentsResponse
	resp.Data.Comments = make([]requestresponse.CommentResponse, 0, len(comments))
	for _, comment := range comments {
		resp.Data.Comments = append(resp.Data.Comments, requestresponse.CommentResponseFromModel(comment))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}

// ListLikes godoc
// @Summary Лайки арта
// @Tags Social
// @Produce json
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.ListLikesResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Арт недоступен"
// @Router /api/arts/{id}/likes [get]
func (h *SocialHandler) ListLikes(w http.ResponseWriter, r *http.Request) {
	likes, err := h.likeService.ListForArt(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeLikes(w, likes, int64(len(likes)))
}

// UserLikes godoc
// @Summary Лайки пользователя
// @Tags Social
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.ListLikesResponse
// @Router /api/users/{id}/likes [get]
func (h *SocialHandler) UserLikes(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")
	likes, err := h.likeService.ListForUser(r.Context(), userID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	total, err := h.likeService.CountForUser(r.Context(), userID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	writeLikes(w, likes, total)
}

func writeLikes(w http.ResponseWriter, likes []*model.Like, total int64) {
	var resp requestresponse.ListLikesResponse
	resp.Data.Likes = make([]requestresponse.LikeResponse, 0, len(likes))
	for _, like := range likes {
		resp.Data.Likes = append(resp.Data.Likes, requestresponse.LikeResponseFromModel(like))
	}
	resp.Data.Total = total
	util.WriteJSON(w, http.StatusOK, resp)
}

// EditComment godoc
// @Summary Редактировать комментарий
// @Tags Social
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID комментария"
// @Param body body requestresponse.UpdateCommentRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Комментарий не найден или чужой"
// @Router /api/comments/{id} [put]
func (h *SocialHandler) EditComment(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.commentService.EditComment(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Text); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "комментарий обновлён"})
}

// DeleteComment godoc
// @Summary Удалить комментарий
// @Tags Social
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID комментария"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Комментарий не найден или чужой"
// @Router /api/comments/{id} [delete]
func (h *SocialHandler) DeleteComment(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.commentService.DeleteComment(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "комментарий удалён"})
}

// Follow godoc
// @Summary Подписаться на пользователя
// @Tags Social
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Подписка на самого себя"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Пользователь не найден"
// @Router /api/users/{id}/follow [post]
func (h *SocialHandler) Follow(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.followService.Follow(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "подписка оформлена"})
}

// Unfollow godoc
// @Summary Отписаться от пользователя
// @Tags Social
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Router /api/users/{id}/follow [delete]
func (h *SocialHandler) Unfollow(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.followService.Unfollow(r.Context(), claims.UserID, chi.URLParam(r, "id")); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "подписка отменена"})
}

// Followers godoc
// @Summary Подписчики пользователя
// @Tags Social
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.ListUsersResponse
// @Router /api/users/{id}/followers [get]
func (h *SocialHandler) Followers(w http.ResponseWriter, r *http.Request) {
	users, err := h.followService.Followers(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListUsersResponse
	resp.Data.Users = make([]requestresponse.UserProfileResponse, 0, len(users))
	for _, user := range users {
		resp.Data.Users = append(resp.Data.Users, requestresponse.UserProfileFromModel(user, 0, 0))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}

// Following godoc
// @Summary Подписки пользователя
// @Tags Social
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.ListUsersResponse
// @Router /api/users/{id}/following [get]
func (h *SocialHandler) Following(w http.ResponseWriter, r *http.Request) {
	users, err := h.followService.Following(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListUsersResponse
	resp.Data.Users = make([]requestresponse.UserProfileResponse, 0, len(users))
	for _, user := range users {
		resp.Data.Users = append(resp.Data.Users, requestresponse.UserProfileFromModel(user, 0, 0))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}
