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

type CollectionHandler struct {
	collectionService *service.CollectionService
}

func NewCollectionHandler(collectionService *service.CollectionService) *CollectionHandler {
	return &CollectionHandler{collectionService: collectionService}
}

// CreateCollection godoc
// @Summary Создание подборки
// @Tags Collections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param body body requestresponse.CreateCollectionRequest true "Тело запроса"
// @Success 201 {object} requestresponse.CollectionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Router /api/collections [post]
func (h *CollectionHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	collection, err := h.collectionService.CreateCollection(r.Context(), &model.Collection{
		UserID:        claims.UserID,
		Title:         req.Title,
		Description:   req.Description,
		CoverImageURL: req.CoverImageURL,
		IsPublic:      req.IsPublic,
	})
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusCreated, requestresponse.CollectionResponseFromModel(collection))
}

// GetCollection godoc
// @Summary Получение подборки
// @Description Приватную подборку видит только владелец
// @Tags Collections
// @Produce json
// @Param id path string true "ID подборки"
// @Success 200 {object} requestresponse.CollectionResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Подборка не найдена"
// @Router /api/collections/{id} [get]
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	collection, err := h.collectionService.GetCollection(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.CollectionResponseFromModel(collection))
}

// UpdateCollection godoc
// @Summary Обновление подборки
// @Tags Collections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID подборки"
// @Param body body requestresponse.UpdateCollectionRequest true "Тело запроса"
// @Success 200 {object} requestresponse.CollectionResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректные данные"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Подборка не найдена или чужая"
// @Router /api/collections/{id} [put]
func (h *CollectionHandler) UpdateCollection(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.UpdateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	collection, err := h.collectionService.GetCollection(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		mapServiceError(w, err)
		return
	}
	if collection.UserID != claims.UserID {
		sendErrorResponse(w, 403, "доступ запрещён")
		return
	}

	collection.Title = req.Title
	collection.Description = req.Description
	collection.CoverImageURL = req.CoverImageURL
	if req.IsPublic != nil {
		collection.IsPublic = *req.IsPublic
	}

	if err := h.collectionService.UpdateCollection(r.Context(), collection); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.CollectionResponseFromModel(collection))
}

// DeleteCollection godoc
// @Summary Удаление подборки
// @Tags Collections
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID подборки"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 404 {object} requestresponse.ErrorResponse "Подборка не найдена или чужая"
// @Router /api/collections/{id} [delete]
func (h *CollectionHandler) DeleteCollection(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.collectionService.DeleteCollection(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "подборка удалена"})
}

// ListUserCollections godoc
// @Summary Подборки пользователя
// @Description Владелец видит и приватные подборки
// @Tags Collections
// @Produce json
// @Param id path string true "ID пользователя"
// @Success 200 {object} requestresponse.ListCollectionsResponse
// @Router /api/users/{id}/collections [get]
func (h *CollectionHandler) ListUserCollections(w http.ResponseWriter, r *http.Request) {
	collections, err := h.collectionService.ListForUser(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListCollectionsResponse
	resp.Data.Collections = make([]requestresponse.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp.Data.Collections = append(resp.Data.Collections, requestresponse.CollectionResponseFromModel(collection))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}

// ListPublicCollections godoc
// @Summary Лента публичных подборок
// @Tags Collections
// @Produce json
// @Param cursor query string false "Курсор предыдущей страницы"
// @Param limit query int false "Размер страницы"
// @Success 200 {object} requestresponse.ListCollectionsResponse
// @Router /api/collections [get]
func (h *CollectionHandler) ListPublicCollections(w http.ResponseWriter, r *http.Request) {
	cursor, limit := paginationParams(r)
	collections, nextCursor, err := h.collectionService.ListPublic(r.Context(), cursor, limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListCollectionsResponse
	resp.Data.Collections = make([]requestresponse.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp.Data.Collections = append(resp.Data.Collections, requestresponse.CollectionResponseFromModel(collection))
	}
	resp.Data.NextCursor = nextCursor
	util.WriteJSON(w, http.StatusOK, resp)
}

// Search godoc
// @Summary Поиск публичных подборок
// @Tags Collections
// @Produce json
// @Param q query string true "Поисковый запрос"
// @Param limit query int false "Максимум результатов"
// @Success 200 {object} requestresponse.ListCollectionsResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Пустой запрос"
// @Router /api/collections/search [get]
func (h *CollectionHandler) Search(w http.ResponseWriter, r *http.Request) {
	_, limit := paginationParams(r)
	collections, err := h.collectionService.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListCollectionsResponse
	resp.Data.Collections = make([]requestresponse.CollectionResponse, 0, len(collections))
	for _, collection := range collections {
		resp.Data.Collections = append(resp.Data.Collections, requestresponse.CollectionResponseFromModel(collection))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}

// SaveArt godoc
// @Summary Добавить арт в подборку
// @Tags Collections
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID подборки"
// @Param body body requestresponse.SaveArtRequest true "Тело запроса"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Чужая подборка или недоступный арт"
// @Router /api/collections/{id}/arts [post]
func (h *CollectionHandler) SaveArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	var req requestresponse.SaveArtRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		sendErrorResponse(w, 400, "некорректный JSON")
		return
	}

	if err := h.collectionService.SaveArt(r.Context(), chi.URLParam(r, "id"), req.ArtID, claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "арт добавлен в подборку"})
}

// RemoveArt godoc
// @Summary Убрать арт из подборки
// @Tags Collections
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param id path string true "ID подборки"
// @Param artID path string true "ID арта"
// @Success 200 {object} requestresponse.SuccessResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 403 {object} requestresponse.ErrorResponse "Чужая подборка"
// @Router /api/collections/{id}/arts/{artID} [delete]
func (h *CollectionHandler) RemoveArt(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	if err := h.collectionService.RemoveArt(r.Context(), chi.URLParam(r, "id"), chi.URLParam(r, "artID"), claims.UserID); err != nil {
		mapServiceError(w, err)
		return
	}
	util.WriteJSON(w, http.StatusOK, requestresponse.SuccessResponse{Message: "арт убран из подборки"})
}

// ListArts godoc
// @Summary Арты подборки
// @Tags Collections
// @Produce json
// @Param id path string true "ID подборки"
// @Success 200 {object} requestresponse.ListArtsResponse
// @Failure 403 {object} requestresponse.ErrorResponse "Доступ запрещён"
// @Failure 404 {object} requestresponse.ErrorResponse "Подборка не найдена"
// @Router /api/collections/{id}/arts [get]
func (h *CollectionHandler) ListArts(w http.ResponseWriter, r *http.Request) {
	arts, err := h.collectionService.ListArts(r.Context(), chi.URLParam(r, "id"), viewerID(r))
	if err != nil {
		mapServiceError(w, err)
		return
	}

	var resp requestresponse.ListArtsResponse
	resp.Data.Arts = make([]requestresponse.ArtResponse, 0, len(arts))
	for _, art := range arts {
		resp.Data.Arts = append(resp.Data.Arts, requestresponse.ArtResponseFromModel(art, 0, 0))
	}
	util.WriteJSON(w, http.StatusOK, resp)
}
