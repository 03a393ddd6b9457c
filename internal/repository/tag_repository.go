package repository

import (
	"context"
	"database/sql"
	"errors"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

type TagRepository struct {
	*config.Database
}

func NewTagRepository(database *config.Database) *TagRepository {
	return &TagRepository{database}
}

// Create : сохраняет тег, имя уникально
func (r *TagRepository) Create(ctx context.Context, tag *model.Tag) error {
	query := `INSERT INTO tags (id, name) VALUES ($1, $2)`

	_, err := r.DB.ExecContext(ctx, query, tag.ID, tag.Name)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.ErrAlreadyExists
		}
		return util.LogError("[TagRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

func (r *TagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	tag := &model.Tag{}
	err := r.DB.QueryRowxContext(ctx, `SELECT id, name FROM tags WHERE name = $1`, name).StructScan(tag)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[TagRepo] ошибка при выполнении запроса", err)
	}
	return tag, nil
}

func (r *TagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	return r.listTags(ctx, `SELECT id, name FROM tags ORDER BY name ASC`)
}

func (r *TagRepository) Search(ctx context.Context, query string, limit int) ([]*model.Tag, error) {
	return r.listTags(ctx, `SELECT id, name FROM tags WHERE name ILIKE $1 ORDER BY name ASC LIMIT $2`,
		"%"+query+"%", limit)
}

func (r *TagRepository) listTags(ctx context.Context, query string, args ...interface{}) ([]*model.Tag, error) {
	rows, err := r.DB.QueryxContext(ctx, query, args...)
	if err != nil {
		return nil, util.LogError("[TagRepo] не удалось получить список тегов", err)
	}
	defer rows.Close()

	return scanTags(rows)
}

// Popular : теги по числу артов
func (r *TagRepository) Popular(ctx context.Context, limit int) ([]*model.TagWithCount, error) {
	query := `
		SELECT t.id, t.name, COUNT(at.art_id) AS art_count
		FROM tags AS t
		LEFT JOIN art_tags AS at ON at.tag_id = t.id
		GROUP BY t.id, t.name
		ORDER BY art_count DESC, t.name ASC
		LIMIT $1
	`
	rows, err := r.DB.QueryxContext(ctx, query, limit)
	if err != nil {
		return nil, util.LogError("[TagRepo] не удалось получить популярные теги", err)
	}
	defer rows.Close()

	tags := []*model.TagWithCount{}
	for rows.Next() {
		tag := &model.TagWithCount{}
		if err := rows.StructScan(tag); err != nil {
			return nil, util.LogError("[TagRepo] ошибка чтения строки", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[TagRepo] ошибка обхода строк", err)
	}
	return tags, nil
}

func (r *TagRepository) ListByArt(ctx context.Context, artID string) ([]*model.Tag, error) {
	query := `
		SELECT t.id, t.name
		FROM tags AS t
		JOIN art_tags AS at ON at.tag_id = t.id
		WHERE at.art_id = $1
		ORDER BY t.name ASC
	`
	return r.listTags(ctx, query, artID)
}

// AttachToArt : привязывает тег к арту, повторная привязка не ошибка
func (r *TagRepository) AttachToArt(ctx context.Context, artID string, tagID string) error {
	query := `
		INSERT INTO art_tags (art_id, tag_id)
		VALUES ($1, $2)
		ON CONFLICT (art_id, tag_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, artID, tagID)
	if err != nil {
		return util.LogError("[TagRepo] не удалось привязать тег к арту", err)
	}
	return nil
}

func (r *TagRepository) DetachFromArt(ctx context.Context, artID string, tagID string) error {
	query := `DELETE FROM art_tags WHERE art_id = $1 AND tag_id = $2`
	_, err := r.DB.ExecContext(ctx, query, artID, tagID)
	if err != nil {
		return util.LogError("[TagRepo] не удалось отвязать тег от арта", err)
	}
	return nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM tags WHERE id = $1`

	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return util.LogError("[TagRepo] не удалось удалить тег", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[TagRepo] не удалось проверить результат удаления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *TagRepository) ArtCount(ctx context.Context, id string) (int64, error) {
	var count int64
	err := r.DB.QueryRowxContext(ctx, `SELECT COUNT(*) FROM art_tags WHERE tag_id = $1`, id).Scan(&count)
	if err != nil {
		return 0, util.LogError("[TagRepo] ошибка подсчёта артов тега", err)
	}
	return count, nil
}

func scanTags(rows *sqlx.Rows) ([]*model.Tag, error) {
	tags := []*model.Tag{}
	for rows.Next() {
		tag := &model.Tag{}
		if err := rows.StructScan(tag); err != nil {
			return nil, util.LogError("[TagRepo] ошибка чтения строки", err)
		}
		tags = append(tags, tag)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[TagRepo] ошибка обхода строк", err)
	}
	return tags, nil
}
