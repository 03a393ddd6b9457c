package repository

import (
	"context"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"
)

type FollowRepository struct {
	*config.Database
}

func NewFollowRepository(database *config.Database) *FollowRepository {
	return &FollowRepository{database}
}

// Add : подписка, повторная подписка не ошибка
func (r *FollowRepository) Add(ctx context.Context, followerID string, followingID string) error {
	query := `
		INSERT INTO follows (follower_id, following_id, created_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (follower_id, following_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return util.LogError("[FollowRepo] не удалось сохранить подписку", err)
	}
	return nil
}

// Remove : отписка, отсутствие подписки не ошибка
func (r *FollowRepository) Remove(ctx context.Context, followerID string, followingID string) error {
	query := `DELETE FROM follows WHERE follower_id = $1 AND following_id = $2`
	_, err := r.DB.ExecContext(ctx, query, followerID, followingID)
	if err != nil {
		return util.LogError("[FollowRepo] не удалось удалить подписку", err)
	}
	return nil
}

func (r *FollowRepository) Exists(ctx context.Context, followerID string, followingID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS (SELECT 1 FROM follows WHERE follower_id = $1 AND following_id = $2)`
	err := r.DB.QueryRowxContext(ctx, query, followerID, followingID).Scan(&exists)
	if err != nil {
		return false, util.LogError("[FollowRepo] ошибка проверки подписки", err)
	}
	return exists, nil
}

// ListFollowers : кто подписан на пользователя
func (r *FollowRepository) ListFollowers(ctx context.Context, userID string) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.display_name, u.avatar_url, u.bio, u.is_public, u.created_at, u.updated_at
		FROM users AS u
		JOIN follows AS f ON f.follower_id = u.id
		WHERE f.following_id = $1
		ORDER BY f.created_at DESC
	`
	return r.listUsers(ctx, query, userID)
}

// ListFollowing : на кого подписан пользователь
func (r *FollowRepository) ListFollowing(ctx context.Context, userID string) ([]*model.User, error) {
	query := `
		SELECT u.id, u.username, u.email, u.password_hash, u.display_name, u.avatar_url, u.bio, u.is_public, u.created_at, u.updated_at
		FROM users AS u
		JOIN follows AS f ON f.following_id = u.id
		WHERE f.follower_id = $1
		ORDER BY f.created_at DESC
	`
	return r.listUsers(ctx, query, userID)
}

func (r *FollowRepository) listUsers(ctx context.Context, query string, arg string) ([]*model.User, error) {
	rows, err := r.DB.QueryxContext(ctx, query, arg)
	if err != nil {
		return nil, util.LogError("[FollowRepo] не удалось получить список пользователей", err)
	}
	defer rows.Close()

	users := []*model.User{}
	for rows.Next() {
		user := &model.User{}
		if err := rows.StructScan(user); err != nil {
			return nil, util.LogError("[FollowRepo] ошибка чтения строки", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[FollowRepo] ошибка обхода строк", err)
	}
	return users, nil
}

func (r *FollowRepository) CountFollowers(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE following_id = $1`, userID)
}

func (r *FollowRepository) CountFollowing(ctx context.Context, userID string) (int64, error) {
	return r.count(ctx, `SELECT COUNT(*) FROM follows WHERE follower_id = $1`, userID)
}

func (r *FollowRepository) count(ctx context.Context, query string, arg string) (int64, error) {
	var count int64
	err := r.DB.QueryRowxContext(ctx, query, arg).Scan(&count)
	if err != nil {
		return 0, util.LogError("[FollowRepo] ошибка подсчёта подписок", err)
	}
	return count, nil
}
