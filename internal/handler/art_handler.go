package handler

import (
	"encoding/json"
	"log"
	"net/http"

	"artship-backend/internal/model"
	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/ports"
	"artship-backend/internal/security"
	"artship-backend/internal/service"
	"artship-backend/internal/util"

	"github.com/go-chi/chi/v5"
)

type ArtHandler struct {
	artService     ports.ArtService
	likeService    *service.LikeService
	commentService *service.CommentService
	tagService     *service.TagService
}

func NewArtHandler(
	artService ports.ArtService,
	likeService *service.LikeService,
	commentService *service.CommentService,
	tagService *service.TagService,
) *ArtHandler {
	return &ArtHandler{
		artService:     artService,
		likeService:    likeService,
		commentService: commentService,
		tagService:     tagService,
	}
}

// viewerID возвращает ID пользователя из контекста или пустую строку
// для анонимного запроса
func viewerID(r *http.Request) string {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		return ""
	}
	return claims.UserID
}

func (h *ArtHandler) artResponse(r *http.Request, art *model.Art) requestresponse.ArtResponse {
	likes, err := h.likeService.CountForArt(r.Context(), art.ID)
	if err != nil {
		log.Printf("ошибка подсчёта лайков арта %s: %v", art.ID, err)
	}
	comments, err := h.commentService.CountForArt(r.Context(), art.ID)
	if err != nil {
		log.Printf("ошибка подсчёта комментариев арта %s: %v", art.ID, err)
	}

	resp := requestresponse.ArtResponseFromModel(art, likes, comments)
	if viewer := viewerID(r); viewer != "" {
		liked, err := h.likeService.IsLiked(r.Context(), viewer, art.ID)
		if err != nil {
			log.Printf("ошибка проверки лайка арта %s: %v", art.ID, err)
		}
		resp.IsLiked = liked
	}
	return resp
}

func (h *ArtHandler) listResponse(r *http.Request, arts []*model.Art, nextCursor string) requestresponse.ListArtsResponse {
	var resp requestresponse.ListArtsResponse
	resp.Data.Arts = make([]requestresponse.ArtResponse, 0, len(arts))
	for _, art := range arts {
		resp.Data.Arts = append(resp.Data.Arts, h.artResponse(r, art))
	}
	resp.Data.NextCursor = nextCursor
	return resp
}

// CreateArt godoc
// @Summary Публикация арта
// @Description Создаёт арт; переданные теги создаются при необходимости
// @Tags Arts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateArtRequest true "Тело запроса"
// @Success 201 {object} requestresponse.ArtResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/arts [post]
func (h *ArtHandler) CreateArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.CreateArtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	art, err := h.artService.CreateArt(r.Context(), &model.Art{
		AuthorID:       claims.UserID,
		Title:          req.Title,
		Description:    req.Description,
		ImageURL:       req.ImageURL,
		ProjectDataURL: req.ProjectDataURL,
		IsPublic:       req.IsPublic,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}

	for _, name := range req.Tags {
		if err := h.tagService.TagArt(r.Context(), art.ID, claims.UserID, name); err != nil {
			log.Printf("не удалось добавить тег %q к арту %s: %v", name, art.ID, err)
		}
	}

	util.WriteJSON(w, http.StatusCreated, h.artResponse(r, art))
}

// GetArt godoc
// @Summary Получение арта
// @Description Приватный арт доступен только автору. Публичные арты кэшируются.
// @Tags Arts
// @Produce json
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.ArtResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Арт не найден"
// @Router /api/arts/{id} [get]
func (h *ArtHandler) GetArt(w http.ResponseWriter, r *http.Request) {
	art, err := h.artService.GetArt(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.artResponse(r, art))
}

// UpdateArt godoc
// @Summary Обновление арта
// @Tags Arts
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Param body body requestresponse.UpdateArtRequest true "Тело запроса"
// @Success 200 {object} requestresponse.ArtResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Арт не найден или принадлежит другому автору"
// @Router /api/arts/{id} [put]
func (h *ArtHandler) UpdateArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateArtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	art, err := h.artService.GetArt(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	if art.AuthorID != claims.UserID {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	art.Title = req.Title
	art.Description = req.Description
	if req.IsPublic != nil {
		art.IsPublic = *req.IsPublic
	}

	updated, err := h.artService.UpdateArt(r.Context(), art)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.artResponse(r, updated))
}

// DeleteArt godoc
// @Summary Удаление арта
// @Tags Arts
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Арт не найден"
// @Router /api/arts/{id} [delete]
func (h *ArtHandler) DeleteArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.artService.DeleteArt(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "арт удалён"})
}

// ListPublic godoc
// @Summary Лента публичных артов
// @Tags Arts
// @Produce json
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Router /api/arts [get]
func (h *ArtHandler) ListPublic(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)
	arts, nextCursor, err := h.artService.ListPublic(r.Context(), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.listResponse(r, arts, nextCursor))
}

// ListByAuthor godoc
// @Summary Арты автора
// @Description Автор видит и свои приватные арты, остальные — только публичные
// @Tags Arts
// @Produce json
// @Param id path string true "ID автора"
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Router /api/users/{id}/arts [get]
func (h *ArtHandler) ListByAuthor(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)
	arts, nextCursor, err := h.artService.ListByAuthor(r.Context(), chi.URLParam(r, "id"), viewerID(r), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.listResponse(r, arts, nextCursor))
}

// Feed godoc
// @Summary Лента подписок
// @Description Публичные арты авторов, на которых подписан пользователь
// @Tags Arts
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Router /api/feed [get]
func (h *ArtHandler) Feed(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	cursor, limit := paginationParams(r)
	arts, nextCursor, err := h.artService.Feed(r.Context(), claims.UserID, cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.listResponse(r, arts, nextCursor))
}

// Search godoc
// @Summary Поиск артов
// @Tags Arts
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Пустой запрос"
// @Router /api/arts/search [get]
func (h *ArtHandler) Search(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)
	arts, nextCursor, err := h.artService.Search(r.Context(), r.URL.Query().Get("q"), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.listResponse(r, arts, nextCursor))
}

// ListByTag godoc
// @Summary Арты по тегу
// @Tags Arts
// @Produce json
// @Param name path string true "Имя тега"
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Router /api/tags/{name}/arts [get]
func (h *ArtHandler) ListByTag(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)
	arts, nextCursor, err := h.artService.ListByTag(r.Context(), chi.URLParam(r, "name"), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, h.listResponse(r, arts, nextCursor))
}
