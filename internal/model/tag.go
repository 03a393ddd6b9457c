package model

// Tag : тег, имя хранится в нижнем регистре
type Tag struct {
	ID   string `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// TagWithCount : тег с количеством артов (для списка популярных)
type TagWithCount struct {
	ID       string `db:"id" json:"id"`
	Name     string `db:"name" json:"name"`
	ArtCount int    `db:"art_count" json:"art_count"`
}
