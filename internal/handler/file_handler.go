package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"artship-backend/internal/model/requestresponse"
	"artship-backend/internal/ports"
	"artship-backend/internal/security"
	"artship-backend/internal/util"

	"github.com/google/uuid"
)

const (
	maxUploadSize   = 10 << 20 // 10 MB на прямую загрузку
	presignedGetTTL = 15 * time.Minute
	presignedPutTTL = 15 * time.Minute
)

// FileHandler : загрузка изображений и выдача временных ссылок на объекты
// в S3. Маленькие файлы (аватары, превью) идут через сервер, исходники
// проектов клиент загружает напрямую по presigned PUT URL.
type FileHandler struct {
	storage ports.S3Storage
}

func NewFileHandler(storage ports.S3Storage) *FileHandler {
	return &FileHandler{storage: storage}
}

// UploadImage godoc
// @Summary Загрузка изображения
// @Description Принимает multipart-файл и возвращает временную ссылку на объект
// @Tags Files
// @Accept mpfd
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Param file formData file true "Изображение (jpeg/png/webp, до 10 МБ)"
// @Success 201 {object} requestresponse.PresignedURLResponse
// @Failure 400 {object} requestresponse.ErrorResponse "Некорректный файл"
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/files/images [post]
func (h *FileHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		sendErrorResponse(w, 400, "некорректный файл")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !isAllowedImageType(contentType) {
		sendErrorResponse(w, 400, "недопустимый тип файла")
		return
	}

	key := fmt.Sprintf("images/%s/%s%s", claims.UserID, uuid.New().String(), filepath.Ext(header.Filename))
	if err := h.storage.UploadObject(r.Context(), key, contentType, file); err != nil {
		sendErrorResponse(w, 500, "не удалось сохранить файл")
		return
	}

	url, err := h.storage.GeneratePresignedGetURL(r.Context(), key, presignedGetTTL)
	if err != nil {
		sendErrorResponse(w, 500, "не удалось сгенерировать ссылку")
		return
	}

	util.WriteJSON(w, http.StatusCreated, requestresponse.PresignedURLResponse{
		URL:       url,
		ExpiresIn: int64(presignedGetTTL.Seconds()),
	})
}

// ProjectUploadURL godoc
// @Summary Ссылка для загрузки исходника проекта
// @Description Возвращает presigned PUT URL: клиент загружает файл напрямую в бакет
// @Tags Files
// @Produce json
// @Param Authorization header string true "Bearer токен" default(Bearer <access_token>)
// @Success 200 {object} requestresponse.PresignedURLResponse
// @Failure 401 {object} requestresponse.ErrorResponse "Не авторизован"
// @Failure 500 {object} requestresponse.ErrorResponse "Внутренняя ошибка сервера"
// @Router /api/files/projects/upload-url [post]
func (h *FileHandler) ProjectUploadURL(w http.ResponseWriter, r *http.Request) {
	claims, err := security.GetClaimsFromContext(r.Context())
	if err != nil {
		sendErrorResponse(w, 401, "не авторизован")
		return
	}

	key := fmt.Sprintf("projects/%s/%s", claims.UserID, uuid.New().String())
	url, err := h.storage.GeneratePresignedPutURL(r.Context(), key, presignedPutTTL)
	if err != nil {
		sendErrorResponse(w, 500, "не удалось сгенерировать ссылку")
		return
	}

	util.WriteJSON(w, http.StatusOK, requestresponse.PresignedURLResponse{
		URL:       url,
		ExpiresIn: int64(presignedPutTTL.Seconds()),
	})
}

func isAllowedImageType(contentType string) bool {
	switch strings.ToLower(contentType) {
	case "image/jpeg", "image/png", "image/webp":
		return true
	}
	return false
}
