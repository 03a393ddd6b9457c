package repository

import (
	"context"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"
)

type LikeRepository struct {
	*config.Database
}

func NewLikeRepository(database *config.Database) *LikeRepository {
	return &LikeRepository{database}
}

// Add : ставит лайк, повторный лайк не ошибка
func (r *LikeRepository) Add(ctx context.Context, userID string, artID string) error {
	query := `
		INSERT INTO likes (user_id, art_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (user_id, art_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, userID, artID)
	if err != nil {
		return util.LogError("[LikeRepo] не удалось сохранить лайк", err)
	}
	return nil
}

// Remove : снимает лайк, отсутствие лайка не ошибка
func (r *LikeRepository) Remove(ctx context.Context, userID string, artID string) error {
	query := `DELETE FROM likes WHERE user_id = $1 AND art_id = $2`
	_, err := r.DB.ExecContext(ctx, query, userID, artID)
	if err != nil {
		return util.LogError("[LikeRepo] не удалось удалить лайк", err)
	}
	return nil
}

func (r *LikeRepository) Exists(ctx context.Context, userID string, artID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM likes WHERE user_id = $1 AND art_id = $2)`
	err := r.DB.QueryRowxContext(ctx, query, userID, artID).Scan(&exists)
	if err != nil {
		return false, util.LogError("[LikeRepo] ошибка проверки лайка", err)
	}
	return exists, nil
}

func (r *LikeRepository) ListByArt(ctx context.Context, artID string) ([]*model.Like, error) {
	query := `SELECT user_id, art_id, created_at FROM likes WHERE art_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, artID)
}

func (r *LikeRepository) ListByUser(ctx context.Context, userID string) ([]*model.Like, error) {
	query := `SELECT user_id, art_id, created_at FROM likes WHERE user_id = $1 ORDER BY created_at DESC`
	return r.list(ctx, query, userID)
}

func (r *LikeRepository) list(ctx context.Context, query string, arg string) ([]*model.Like, error) {
	rows, err := r.DB.QueryxContext(ctx, query, arg)
	if err != nil {
		return nil, util.LogError("[LikeRepo] не удалось получить список лайков", err)
	}
	defer rows.Close()

	likes := []*model.Like{}
	for rows.Next() {
		like := &model.Like{}
		if err := rows.StructScan(like); err != nil {
			return nil, util.LogError("[LikeRepo] ошибка чтения строки", err)
		}
		likes = append(likes, like)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[LikeRepo] ошибка обхода строк", err)
	}
	return likes, nil
}

func (r *LikeRepository) CountByArt(ctx context.Context, artID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM likes WHERE art_id = $1`, artID)
}

func (r *LikeRepository) CountByUser(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM likes WHERE user_id = $1`, userID)
}

func (r *LikeRepository) count(ctx context.Context, query string, arg string) (int64, error) {
	var count int64
	err := r.DB.QueryRowxContext(ctx, query, arg).Scan(&count)
	if err != nil {
		return 0, util.LogError("[LikeRepo] ошибка подсчёта лайков", err)
	}
	return count, nil
}
