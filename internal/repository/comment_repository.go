package repository

import (
	"context"
	"database/sql"
	"errors"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"
)

const commentColumns = `id, art_id, user_id, parent_comment_id, text, created_at`

type CommentRepository struct {
	*config.Database
}

func NewCommentRepository(database *config.Database) *CommentRepository {
	return &CommentRepository{database}
}

// Create : сохраняет комментарий (или ответ, если задан parent_comment_id)
func (r *CommentRepository) Create(ctx context.Context, comment *model.Comment) error {
	query := `
		INSERT INTO comments (id, art_id, user_id, parent_comment_id, text)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.DB.ExecContext(ctx, query,
		comment.ID, comment.ArtID, comment.UserID, comment.ParentCommentID, comment.Text,
	)
	if err != nil {
		return util.LogError("[CommentRepo] ошибка вставки данных в БД", err)
	}
	return nil
}

func (r *CommentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE id = $1`

	comment := &model.Comment{}
	err := r.DB.QueryRowxContext(ctx, query, id).StructScan(comment)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[CommentRepo] ошибка при выполнении запроса", err)
	}
	return comment, nil
}

// Update : редактировать комментарий может только его автор
func (r *CommentRepository) Update(ctx context.Context, id string, userID string, text string) error {
	query := `UPDATE comments SET text = $3 WHERE id = $1 AND user_id = $2`

	result, err := r.DB.ExecContext(ctx, query, id, userID, text)
	if err != nil {
		return util.LogError("[CommentRepo] не удалось обновить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CommentRepo] не удалось проверить результат обновления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// Delete : удалить комментарий может только его автор
func (r *CommentRepository) Delete(ctx context.Context, id string, userID string) error {
	query := `DELETE FROM comments WHERE id = $1 AND user_id = $2`

	result, err := r.DB.ExecContext(ctx, query, id, userID)
	if err != nil {
		return util.LogError("[CommentRepo] не удалось удалить комментарий", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[CommentRepo] не удалось проверить результат удаления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

func (r *CommentRepository) ListByArt(ctx context.Context, artID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE art_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, artID)
}

// ListRootByArt : только комментарии верхнего уровня
func (r *CommentRepository) ListRootByArt(ctx context.Context, artID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE art_id = $1 AND parent_comment_id IS NULL ORDER BY created_at ASC`
	return r.list(ctx, query, artID)
}

func (r *CommentRepository) ListReplies(ctx context.Context, parentID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE parent_comment_id = $1 ORDER BY created_at ASC`
	return r.list(ctx, query, parentID)
}

func (r *CommentRepository) ListByUser(ctx context.Context, userID string) ([]*model.Comment, error) {
	query := `SELECT ` + commentColumns + ` FROM comments WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *CommentRepository) list(ctx context.Context, query string, arg string) ([]*model.Comment, error) {
	rows, err := r.DB.QueryxContext(ctx, query, arg)
	if err != nil {
		return nil, util.LogError("[CommentRepo] не удалось получить список комментариев", err)
	}
	defer rows.Close()

	comments := []*model.Comment{}
	for rows.Next() {
		comment := &model.Comment{}
		if err := rows.StructScan(comment); err != nil {
			return nil, util.LogError("[CommentRepo] ошибка чтения строки", err)
		}
		comments = append(comments, comment)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[CommentRepo] ошибка обхода строк", err)
	}
	return comments, nil
}

func (r *CommentRepository) CountByArt(ctx context.Context, artID string) (int64, error) {
	var count int64
	err := r.DB.QueryRowxContext(ctx, `SELECT COUNT(*) FROM comments WHERE art_id = $1`, artID).Scan(&count)
	if err != nil {
		return 0, util.LogError("[CommentRepo] ошибка подсчёта комментариев", err)
	}
	return count, nil
}
