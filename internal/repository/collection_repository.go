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

	"github.com/jmoiron/sqlx"
)

const collectionColumns = `id, user_id, title, description, cover_image_url, is_public, created_at`

type CollectionRepository struct {
	*config.Database
}

func NewCollectionRepository(database *config.Database) *CollectionRepository {
	return &CollectionRepository{database}
}

// Create : сохраняет новую подборку
func (r *CollectionRepository) Create(ctx context.Context, collection *model.Collection) error {
	query := `
		INSERT INTO collections (id, user_id, title, description, cover_image_url, is_public)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.DB.ExecContext(ctx, query,
		collection.ID, collection.UserID, collection.Title,
		collection.Description, collection.CoverImageURL, collection.IsPublic,
	)
	if err != nil {
		return util.LogError("[CollectionRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

func (r *CollectionRepository) GetByID(ctx context.Context, id string) (*model.Collection, error) {
	query := `SELECT ` + collectionColumns + ` FROM collections WHERE id = $1`

	collection := &model.Collection{}
	err := r.DB.QueryRowxContext(ctx, query, id).StructScan(collection)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[CollectionRepo] ошибка при выполнении запроса", err)
	}
	return collection, nil
}

// Update : менять подборку может только её владелец
func (r *CollectionRepository) Update(ctx context.Context, collection *model.Collection) error {
	query := `
		UPDATE collections
		SET title = $3, description = $4, cover_image_url = $5, is_public = $6
		WHERE id = $1 AND user_id = $2
	`
	result, err := r.DB.ExecContext(ctx, query,
		collection.ID, collection.UserID, collection.Title,
		collection.Description, collection.CoverImageURL, collection.IsPublic,
	)
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось обновить подборку", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось проверить результат обновления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CollectionRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `DELETE FROM collections WHERE id = $1 AND user_id = $2`

	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось удалить подборку", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось проверить результат удаления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CollectionRepository) ListByUser(ctx context.Context, userID string, onlyPublic bool) ([]*model.Collection, error) {
	query := `SELECT ` + collectionColumns + `
		FROM collections
		WHERE user_id = $1 AND (is_public = TRUE OR $2 = FALSE)
		ORDER BY created_at DESC`

	rows, err := r.DB.QueryxContext(ctx, query, userID, onlyPublic)
	if err != nil {
		return nil, util.LogError("[CollectionRepo] не удалось получить список подборок", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

// ListPublic : публичные подборки с cursor-based пагинацией
func (r *CollectionRepository) ListPublic(ctx context.Context, cursor string, limit int) ([]*model.Collection, string, error) {
	query := `SELECT ` + collectionColumns + `
		FROM collections
		WHERE is_public = TRUE AND created_at < $1
		ORDER BY created_at DESC
		LIMIT $2`

	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Now().Add(time.Hour)
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("неверный формат курсора: %w", err)
		}
	}

	rows, err := r.DB.QueryxContext(ctx, query, cursorTime, limit+1)
	if err != nil {
		return nil, "", util.LogError("[CollectionRepo] не удалось получить список подборок", err)
	}
	defer rows.Close()

	collections, err := scanCollections(rows)
	if err != nil {
		return nil, "", err
	}

	var nextCursor string
	if len(collections) > limit {
		collections = collections[:limit]
		nextCursor = collections[len(collections)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return collections, nextCursor, nil
}

func (r *CollectionRepository) Search(ctx context.Context, searchQuery string, limit int) ([]*model.Collection, error) {
	query := `SELECT ` + collectionColumns + `
		FROM collections
		WHERE is_public = TRUE AND (title ILIKE $1 OR description ILIKE $1)
		ORDER BY created_at DESC
		LIMIT $2`

	rows, err := r.DB.QueryxContext(ctx, query, "%"+searchQuery+"%", limit)
	if err != nil {
		return nil, util.LogError("[CollectionRepo] ошибка поиска подборок", err)
	}
	defer rows.Close()

	return scanCollections(rows)
}

// AddArt : добавляет арт в подборку, повторное добавление обновляет saved_at
func (r *CollectionRepository) AddArt(ctx context.Context, collectionID string, artID string) error {
	query := `
		INSERT INTO collection_arts (collection_id, art_id, saved_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (collection_id, art_id) DO UPDATE SET saved_at = NOW()
	`
	_, err := r.DB.ExecContext(ctx, query, collectionID, artID)
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось добавить арт в подборку", err)
	}
	return nil
}

func (r *CollectionRepository) RemoveArt(ctx context.Context, collectionID string, artID string) error {
	query := `DELETE FROM collection_arts WHERE collection_id = $1 AND art_id = $2`
	_, err := r.DB.ExecContext(ctx, query, collectionID, artID)
	if err != nil {
		return util.LogError("[CollectionRepo] не удалось удалить арт из подборки", err)
	}
	return nil
}

func (r *CollectionRepository) ListArts(ctx context.Context, collectionID string) ([]*model.Art, error) {
	query := `
		SELECT a.id, a.author_id, a.title, a.description, a.image_url, a.project_data_url, a.is_public, a.created_at, a.updated_at
		FROM arts AS a
		JOIN collection_arts AS ca ON ca.art_id = a.id
		WHERE ca.collection_id = $1
		ORDER BY ca.saved_at DESC
	`
	rows, err := r.DB.QueryxContext(ctx, query, collectionID)
	if err != nil {
		return nil, util.LogError("[CollectionRepo] не удалось получить арты подборки", err)
	}
	defer rows.Close()

	arts := []*model.Art{}
	for rows.Next() {
		art := &model.Art{}
		if err := rows.StructScan(art); err != nil {
			return nil, util.LogError("[CollectionRepo] ошибка чтения строки", err)
		}
		arts = append(arts, art)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[CollectionRepo] ошибка обхода строк", err)
	}
	return arts, nil
}

func scanCollections(rows *sqlx.Rows) ([]*model.Collection, error) {
	collections := []*model.Collection{}
	for rows.Next() {
		collection := &model.Collection{}
		if err := rows.StructScan(collection); err != nil {
			return nil, util.LogError("[CollectionRepo] ошибка чтения строки", err)
		}
		collections = append(collections, collection)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[CollectionRepo] ошибка обхода строк", err)
	}
	return collections, nil
}
