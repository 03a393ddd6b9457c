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

type UserRepository struct {
	*config.Database
}

func NewUserRepository(database *config.Database) *UserRepository {
	return &UserRepository{database}
}

// CreateUser : сохраняет нового пользователя
func (r *UserRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	query := `
	INSERT INTO users (id, username, email, password_hash, display_name, avatar_url, bio, is_public)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING id, username, email, password_hash, display_name, avatar_url, bio, is_public, created_at, updated_at
	`

	createdUser := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query,
		user.ID, user.Username, user.Email, user.PasswordHash,
		user.DisplayName, user.AvatarURL, user.Bio, user.IsPublic,
	).StructScan(createdUser)

	if err != nil {
		return nil, util.LogError("[UserRepo] ошибка вставки данных в БД", err)
	}

	return createdUser, nil
}

// FindByID : ищет пользователя по id
func (r *UserRepository) FindByID(ctx context.Context, id string) (*model.User, error) {
	return r.findBy(ctx, "id", id)
}

// FindByUsername : ищет пользователя по username
func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*model.User, error) {
	return r.findBy(ctx, "username", username)
}

// FindByEmail : ищет пользователя по email
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findBy(ctx, "email", email)
}

func (r *UserRepository) findBy(ctx context.Context, column string, value string) (*model.User, error) {
	query := fmt.Sprintf(`SELECT id, username, email, password_hash, display_name, avatar_url, bio, is_public, created_at, updated_at
		FROM users WHERE %s = $1`, column)

	user := &model.User{}
	err := r.DB.QueryRowxContext(ctx, query, value).StructScan(user)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrNotFound
		}
		return nil, util.LogError("[UserRepo] не удалось найти пользователя в БД", err)
	}
	return user, nil
}

// ExistsByUsername : проверяет занятость имени пользователя
func (r *UserRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username)
}

// ExistsByEmail : проверяет занятость email
func (r *UserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email)
}

func (r *UserRepository) exists(ctx context.Context, query string, value string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowxContext(ctx, query, value).Scan(&exists)
	if err != nil {
		return false, util.LogError("[UserRepo] ошибка проверки существования пользователя", err)
	}
	return exists, nil
}

// UpdateUser : обновляет поля профиля
func (r *UserRepository) UpdateUser(ctx context.Context, user *model.User) error {
	query := `
		UPDATE users
		SET display_name = $2, avatar_url = $3, bio = $4, is_public = $5, updated_at = NOW()
		WHERE id = $1
	`
	result, err := r.DB.ExecContext(ctx, query, user.ID, user.DisplayName, user.AvatarURL, user.Bio, user.IsPublic)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пользователя", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return util.LogError("[UserRepo] не удалось проверить результат обновления", err)
	}
	if rowsAffected == 0 {
		return model.ErrNotFound
	}
	return nil
}

// UpdatePassword : меняет хэш пароля пользователя
func (r *UserRepository) UpdatePassword(ctx context.Context, id string, newPasswordHash string) error {
	query := `UPDATE users SET password_hash = $2, updated_at = NOW() WHERE id = $1`
	_, err := r.DB.ExecContext(ctx, query, id, newPasswordHash)
	if err != nil {
		return util.LogError("[UserRepo] не удалось обновить пароль", err)
	}
	return nil
}

// ListUsers : список пользователей с cursor-based пагинацией по created_at
func (r *UserRepository) ListUsers(ctx context.Context, cursor string, limit int) ([]*model.User, string, error) {
	query := `
        SELECT id, username, email, password_hash, display_name, avatar_url, bio, is_public, created_at, updated_at
        FROM users
        WHERE created_at > $1
        ORDER BY created_at ASC, id ASC
        LIMIT $2
    `

	var cursorTime time.Time
	var err error

	if cursor == "" {
		cursorTime = time.Time{}
	} else {
		cursorTime, err = time.Parse(time.RFC3339Nano, cursor)
		if err != nil {
			return nil, "", fmt.Errorf("неверный формат курсора: %w", err)
		}
	}

	var users []*model.User
	rows, err := r.DB.QueryxContext(ctx, query, cursorTime, limit+1) // +1 для проверки наличия следующей страницы
	if err != nil {
		return nil, "", util.LogError("[UserRepo] не удалось получить список пользователей", err)
	}
	defer rows.Close()

	for rows.Next() {
		user := &model.User{}
		if err := rows.StructScan(user); err != nil {
			return nil, "", util.LogError("[UserRepo] ошибка чтения строки", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, "", util.LogError("[UserRepo] ошибка обхода строк", err)
	}

	var nextCursor string
	if len(users) > limit {
		users = users[:limit]
		nextCursor = users[len(users)-1].CreatedAt.Format(time.RFC3339Nano)
	}

	return users, nextCursor, nil
}
