package requestresponse

import "artship-backend/internal/model"

// TagRequest : тело запроса на добавление/снятие тега
type TagRequest struct {
	Name string `json:"name" example:"watercolor"`
}

// TagResponse : тег для JSON-ответа
type TagResponse struct {
	ID   string `json:"id"`
	Name string `json:"name" example:"watercolor"`
}

// PopularTagResponse : тег с числом артов
type PopularTagResponse struct {
	ID       string `json:"id"`
	Name     string `json:"name" example:"watercolor"`
	ArtCount int    `json:"art_count" example:"42"`
}

// ListTagsResponse : список тегов
type ListTagsResponse struct {
	Data struct {
		Tags []TagResponse `json:"tags"`
	} `json:"data"`
}

// TagsFromModels : конвертирует срез model.Tag
func TagsFromModels(tags []*model.Tag) []TagResponse {
	out := make([]TagResponse, 0, len(tags))
	for _, tag := range tags {
		out = append(out, TagResponse{ID: tag.ID, Name: tag.Name})
	}
	return out
}
