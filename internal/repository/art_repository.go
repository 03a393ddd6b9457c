package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"
)

const artColumns = `id, author_id, title, description, image_url, project_data_url, is_public, created_at, updated_at`

type ArtRepository struct {
	*config.Database
}

func NewArtRepository(database *config.Database) *ArtRepository {
	return &ArtRepository{database}
}

// Create : сохраняет новый арт
func (r *ArtRepository) Create(ctx context.Context, art *model.Art) error {
	query := `
		INSERT INTO arts (id, author_id, title, description, image_url, project_data_url, is_public)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.DB.ExecContext(ctx, query,
		art.ID, art.AuthorID, art.Title, art.Description,
		art.ImageURL, art.ProjectDataURL, art.IsPublic,
	)
	if err != nil {
		return util.LogError("[ArtRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

// GetByID : возвращает арт без проверки доступа — её делает сервис
func (r *ArtRepository) GetByID(ctx context.Context, id string) (*model.Art, error) {
	query := `SELECT ` + artColumns + ` FROM arts WHERE id = $1`

	art := &model.Art{}
	err := r.DB.QueryRowxContext(ctx, query, id).StructScan(art)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[ArtRepo] ошибка при выполнении запроса", err)
	}
	return art, nil
}

// Update : только автор может изменить арт
func (r *ArtRepository) Update(ctx context.Context, art *model.Art) error {
	query := `
		UPDATE arts
		SET title = $3, description = $4, image_url = $5, project_data_url = $6, is_public = $7, updated_at = NOW()
		WHERE id = $1 AND author_id = $2
	`
	result, err := r.DB.ExecContext(ctx, query,
		art.ID, art.AuthorID, art.Title, art.Description,
		art.ImageURL, art.ProjectDataURL, art.IsPublic,
	)
	if err != nil {
		return util.LogError("[ArtRepo] не удалось обновить арт", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ArtRepo] не удалось проверить результат обновления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete : только автор может удалить арт
func (r *ArtRepository) Delete(ctx context.Context, id string, authorID string) error {
	query := `DELETE FROM arts WHERE id = $1 AND author_id = $2`

	result, err := r.DB.ExecContext(ctx, query, id, authorID)
	if err != nil {
		return util.LogError("[ArtRepo] не удалось удалить арт", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[ArtRepo] не удалось проверить результат удаления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// ListPublic : публичная лента всех артов
func (r *ArtRepository) ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Art, string, error) {
	query := `SELECT ` + artColumns + `
		FROM arts
		WHERE is_public = TRUE AND created_at < $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.listWithCursor(ctx, query, cursor, limit)
}

// ListByAuthor : арты автора; приватные видны только самому автору
func (r *ArtRepository) ListByAuthor(ctx context.Context, authorID string, includePrivate bool, cursor string, limit int) ([]*model.Art, string, error) {
	query := `SELECT ` + artColumns + `
		FROM arts
		WHERE author_id = $3 AND (is_public = TRUE OR $4) AND created_at < $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.listWithCursor(ctx, query, cursor, limit, authorID, includePrivate)
}

// ListFeed : лента из артов авторов, на которых подписан пользователь
func (r *ArtRepository) ListFeed(ctx context.Context, userID string, cursor string, limit int) ([]*model.Art, string, error) {
	query := `SELECT a.id, a.author_id, a.title, a.description, a.image_url, a.project_data_url, a.is_public, a.created_at, a.updated_at
		FROM arts AS a
		JOIN follows AS f ON f.following_id = a.author_id
		WHERE f.follower_id = $3 AND a.is_public = TRUE AND a.created_at < $1
		ORDER BY a.created_at DESC
		LIMIT $2`
	return r.listWithCursor(ctx, query, cursor, limit, userID)
}

// Search : поиск по названию и описанию
func (r *ArtRepository) Search(ctx context.Context, searchQuery string, cursor string, limit int) ([]*model.Art, string, error) {
	query := `SELECT ` + artColumns + `
		FROM arts
		WHERE is_public = TRUE AND (title ILIKE $3 OR description ILIKE $3) AND created_at < $1
		ORDER BY created_at DESC
		LIMIT $2`
	return r.listWithCursor(ctx, query, cursor, limit, "%"+searchQuery+"%")
}

// ListByTag : публичные арты с заданным тегом
func (r *ArtRepository) ListByTag(ctx context.Context, tagName string, cursor string, limit int) ([]*model.Art, string, error) {
	query := `SELECT a.id, a.author_id, a.title, a.description, a.image_url, a.project_data_url, a.is_public, a.created_at, a.updated_at
		FROM arts AS a
		JOIN art_tags AS at ON at.art_id = a.id
		JOIN tags AS t ON t.id = at.tag_id
		WHERE t.name = $3 AND a.is_public = TRUE AND a.created_at < $1
		ORDER BY a.created_at DESC
		LIMIT $2`
	return r.listWithCursor(ctx, query, cursor, limit, tagName)
}

// listWithCursor : общая cursor-based пагинация по created_at (DESC).
// cursor — created_at последнего арта из предыдущей выборки.
func (r *ArtRepository) listWithCursor(ctx context.Context, query string, cursor string, limit int, extraArgs ...interface{}) ([]*model.Art, string, error) {
	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Now().Add(time.Hour) // с самого свежего
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("неверный формат курсора: %w", err)
		}
	}

	args := append([]interface{}{cursorTime, limit + 1}, extraArgs...)

	rows, err := r.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, "", util.LogError("[ArtRepo] не удалось получить список артов", err)
	}
	defer rows.Close()

	arts := []*model.Art{}
	for rows.Next() {
		art := &model.Art{}
		if err := rows.StructScan(art); err != nil {
			return nil, "", util.LogError("[ArtRepo] ошибка чтения строки", err)
		}
		arts = append(arts, art)
	}
	if err := rows.Err(); err != nil {
		return nil, "", util.LogError("[ArtRepo] ошибка обхода строк", err)
	}

	var nextCursor string
	if len(arts) > limit {
		arts = arts[:limit]
		nextCursor = arts[len(arts)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return arts, nextCursor, nil
}
