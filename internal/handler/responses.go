package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"artship-backend/internal/model"
	"artship-backend/internal/model/requestresponse"
)

// paginationParams читает курсор и размер страницы из query-параметров.
// Некорректный limit нормализуется в сервисном слое.
func paginationParams(r *http.Request) (cursor string, limit int) {
	cursor = r.URL.Query().Get("cursor")
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	return cursor, limit
}

func sendErrorResponse(w http.ResponseWriter, statusCode int, text string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(requestresponse.ErrorResponse{
		Error: requestresponse.ErrorDetail{Code: statusCode, Text: text},
	})
}

// mapServiceError переводит ошибки сервисного слоя в HTTP-статусы.
// Сопоставление только через errors.Is — текст ошибки не разбирается.
func mapServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrValidation):
		sendErrorResponse(w, http.StatusBadRequest, "некорректные данные запроса")
	case errors.Is(err, model.ErrInvalidCredentials):
		sendErrorResponse(w, http.StatusUnauthorized, "неверный логин или пароль")
	case errors.Is(err, model.ErrInvalidRefreshToken):
		sendErrorResponse(w, http.StatusUnauthorized, "невалидный refresh токен")
	case errors.Is(err, model.ErrAccessDenied):
		sendErrorResponse(w, http.StatusForbidden, "доступ запрещён")
	case errors.Is(err, model.ErrNotFound):
		sendErrorResponse(w, http.StatusNotFound, "не найдено")
	case errors.Is(err, model.ErrAlreadyExists):
		sendErrorResponse(w, http.StatusConflict, "уже существует")
	default:
		sendErrorResponse(w, http.StatusInternalServerError, "внутренняя ошибка сервера")
	}
}
