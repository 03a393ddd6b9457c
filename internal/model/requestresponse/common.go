package requestresponse

// ErrorDetail : детальная информация об ошибке
type ErrorDetail struct {
	Code int    `json:"code" example:"400"`
	Text string `json:"text" example:"описание ошибки"`
}

// ErrorResponse : стандартная структура ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// SuccessResponse : стандартный ответ успешного выполнения операции
type SuccessResponse struct {
	Message string `json:"message" example:"операция выполнена успешно"`
}

// PresignedURLResponse : ответ с временной ссылкой на объект в хранилище
type PresignedURLResponse struct {
	URL       string `json:"url"`
	ExpiresIn int64  `json:"expires_in" example:"900"` // секунды
}
