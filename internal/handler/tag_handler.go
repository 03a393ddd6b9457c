package handler

import (
	"encoding/json"
	"net/http"

	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/security"
	"artship-backend/internal/service"
	"artship-backend/internal/util"

	"github.com/go-chi/chi/v5"
)

type TagHandler struct {
	tagService *service.TagService
}

func NewTagHandler(tagService *service.TagService) *TagHandler {
	return &TagHandler{tagService: tagService}
}

// TagArt godoc
// @Summary Добавить тег к арту
// @Description Доступно только автору арта; тег создаётся при необходимости
// @Tags Tags
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Param body body requestresponse.TagRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Недопустимое имя тега"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Чужой арт"
// @Router /api/arts/{id}/tags [post]
func (h *TagHandler) TagArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.TagRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.tagService.TagArt(r.Context(), chi.URLParam(r, "id"), claims.UserID, req.Name); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "тег добавлен"})
}

// UntagArt godoc
// @Summary Снять тег с арта
// @Tags Tags
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID арта"
// @Param name path string true "Имя тега"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Тег не найден"
// @Router /api/arts/{id}/tags/{name} [delete]
func (h *TagHandler) UntagArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.tagService.UntagArt(r.Context(), chi.URLParam(r, "id"), claims.UserID, chi.URLParam(r, "name")); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "тег снят"})
}

// ListForArt godoc
// @Summary Теги арта
// @Tags Tags
// @Produce json
// @Param id path string true "ID арта"
// @Success 200 {object} requestresponse.ListTagsResponse
// @Router /api/arts/{id}/tags [get]
func (h *TagHandler) ListForArt(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.ListForArt(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListTagsResponse
	resp.Data.Tags = requestresponse.TagsFromModels(tags)
	util.WriteJSON(w, http.StatusOK, resp)
}

// ListAll godoc
// @Summary Все теги
// @Tags Tags
// @Produce json
// @Success 200 {object} requestresponse.ListTagsResponse
// @Router /api/tags [get]
func (h *TagHandler) ListAll(w http.ResponseWriter, r *http.Request) {
	tags, err := h.tagService.List(r.Context())
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListTagsResponse
	resp.Data.Tags = requestresponse.TagsFromModels(tags)
	util.WriteJSON(w, http.StatusOK, resp)
}

// Search godoc
// @Summary Поиск тегов
// @Tags Tags
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Максимум результатов"
// @Success 200 {object} requestresponse.ListTagsResponse
// @Router /api/tags/search [get]
func (h *TagHandler) Search(w http.ResponseWriter, r *http.Request) {
	_, limit := paginationParams(r)
	tags, err := h.tagService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListTagsResponse
	resp.Data.Tags = requestresponse.TagsFromModels(tags)
	util.WriteJSON(w, http.StatusOK, resp)
}

// Popular godoc
// @Summary Популярные теги
// @Description Теги, отсортированные по числу публичных артов
// @Tags Tags
// @Produce json
// @Param limit query int false "Максимум результатов"
// @Success 200 {array} requestresponse.PopularTagResponse
// @Router /api/tags/popular [get]
func (h *TagHandler) Popular(w http.ResponseWriter, r *http.Request) {
	_, limit := paginationParams(r)
	tags, err := h.tagService.Popular(r.Context(), limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	out := make([]requestresponse.PopularTagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, requestresponse.PopularTagResponse{ID: tag.ID, Name: tag.Name, ArtCount: tag.ArtCount})
	}
	util.WriteJSON(w, http.StatusOK, out)
}
