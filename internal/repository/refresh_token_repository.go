package repository

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/security"
	"artship-backend/internal/util"

	"github.com/lib/pq"
)

const pqUniqueViolation = "23505"

type RefreshTokenRepository struct {
	*config.Database
}

func NewRefreshTokenRepository(database *config.Database) *RefreshTokenRepository {
	return &RefreshTokenRepository{database}
}

// Create сохраняет новую строку refresh-токена.
// Уникальный индекс на token_hash — страховка от коллизии хэша:
// нарушение превращается в model.ErrHashCollision, а не в тихую перезапись.
func (r *RefreshTokenRepository) Create(ctx context.Context, token *model.RefreshToken) error {
	query := `INSERT INTO refresh_tokens (id, token_hash, user_id, issued_at, expiry_date, device_info, ip_address, user_agent, revoked)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	_, err := r.DB.ExecContext(ctx, query,
		token.ID,
		token.TokenHash,
		token.UserID,
		token.IssuedAt,
		token.ExpiryDate,
		token.DeviceInfo,
		token.IpAddress,
		token.UserAgent,
		token.Revoked,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation {
			return model.ErrHashCollision
		}
		return util.LogError("[RefreshTokenRepo] ошибка вставки данных в БД", err)
	}

	return nil
}

// FindByDigest ищет refresh-токен по хэшу секрета
func (r *RefreshTokenRepository) FindByDigest(ctx context.Context, digest security.SecretDigest) (*model.RefreshToken, error) {
	query := `SELECT id, token_hash, user_id, issued_at, expiry_date, device_info, ip_address, user_agent, revoked
				FROM refresh_tokens WHERE token_hash = $1`

	token := &model.RefreshToken{}
	err := r.DB.QueryRowxContext(ctx, query, string(digest)).StructScan(token)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, model.ErrRefreshTokenNotFound
		}
		return nil, util.LogError("[RefreshTokenRepo] ошибка при выполнении запроса", err)
	}

	return token, nil
}

// Consume атомарно отзывает токен при использовании (ротация).
// Вся защита от повторного использования держится на одном условном
// UPDATE: из конкурирующих запросов с одним и тем же секретом строку
// получает ровно один, остальные попадают в классификацию отказа.
func (r *RefreshTokenRepository) Consume(ctx context.Context, digest security.SecretDigest, now time.Time) (*model.RefreshToken, error) {
	query := `UPDATE refresh_tokens
				SET revoked = TRUE
				WHERE token_hash = $1 AND revoked = FALSE AND expiry_date > $2
				RETURNING id, token_hash, user_id, issued_at, expiry_date, device_info, ip_address, user_agent, revoked`

	token := &model.RefreshToken{}
	err := r.DB.QueryRowxContext(ctx, query, string(digest), now).StructScan(token)
	if err == nil {
		return token, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, util.LogError("[RefreshTokenRepo] не удалось использовать токен", err)
	}

	// Условие UPDATE не выполнилось. Дочитываем строку только ради
	// причины отказа для лога — на корректность это чтение не влияет.
	return nil, r.classifyConsumeFailure(ctx, digest, now)
}

func (r *RefreshTokenRepository) classifyConsumeFailure(ctx context.Context, digest security.SecretDigest, now time.Time) error {
	var row struct {
		Revoked    bool      `db:"revoked"`
		ExpiryDate time.Time `db:"expiry_date"`
	}

	query := `SELECT revoked, expiry_date FROM refresh_tokens WHERE token_hash = $1`
	err := r.DB.QueryRowxContext(ctx, query, string(digest)).StructScan(&row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return model.ErrRefreshTokenNotFound
		}
		return util.LogError("[RefreshTokenRepo] ошибка при выполнении запроса", err)
	}

	if row.Revoked {
		return model.ErrRefreshTokenRevoked
	}
	if !now.Before(row.ExpiryDate) {
		return model.ErrRefreshTokenExpired
	}
	// Гонка: между UPDATE и SELECT токен успели использовать
	return model.ErrRefreshTokenRevoked
}

// Revoke помечает токен отозванным. Идемпотентен: отзыв уже отозванного
// или несуществующего токена ошибкой не считается.
func (r *RefreshTokenRepository) Revoke(ctx context.Context, digest security.SecretDigest) error {
	query := `UPDATE refresh_tokens SET revoked = TRUE WHERE token_hash = $1 AND revoked = FALSE`

	_, err := r.DB.ExecContext(ctx, query, string(digest))
	if err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось отозвать токен", err)
	}

	return nil
}

// RevokeAllByUser жёстко удаляет все токены пользователя ("выйти везде")
func (r *RefreshTokenRepository) RevokeAllByUser(ctx context.Context, userID string) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`

	_, err := r.DB.ExecContext(ctx, query, userID)
	if err != nil {
		return util.LogError("[RefreshTokenRepo] не удалось удалить токены пользователя", err)
	}

	return nil
}

// DeleteExpired удаляет строки с истёкшим сроком. Вызывается фоновой
// задачей, удаляет только логически мёртвые строки, поэтому с
// легитимным refresh не конфликтует.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expiry_date < $1`

	result, err := r.DB.ExecContext(ctx, query, now)
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] не удалось удалить просроченные токены", err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, util.LogError("[RefreshTokenRepo] не удалось получить число удалённых строк", err)
	}

	return deleted, nil
}

// ListActiveByUser возвращает активные сессии пользователя
func (r *RefreshTokenRepository) ListActiveByUser(ctx context.Context, userID string) ([]*model.RefreshToken, error) {
	query := `SELECT id, token_hash, user_id, issued_at, expiry_date, device_info, ip_address, user_agent, revoked
				FROM refresh_tokens
				WHERE user_id = $1 AND revoked = FALSE
				ORDER BY issued_at DESC`

	var tokens []*model.RefreshToken
	rows, err := r.DB.QueryxContext(ctx, query, userID)
	if err != nil {
		return nil, util.LogError("[RefreshTokenRepo] не удалось получить сессии пользователя", err)
	}
	defer rows.Close()

	for rows.Next() {
		token := &model.RefreshToken{}
		if err := rows.StructScan(token); err != nil {
			return nil, util.LogError("[RefreshTokenRepo] ошибка чтения строки", err)
		}
		tokens = append(tokens, token)
	}
	if err := rows.Err(); err != nil {
		return nil, util.LogError("[RefreshTokenRepo] ошибка обхода строк", err)
	}

	return tokens, nil
}

func (r *RefreshTokenRepository) CountActiveByUser(ctx context.Context, userID string) (int64, error) {
	query := `SELECT COUNT(*) FROM refresh_tokens WHERE user_id = $1 AND revoked = FALSE`

	var count int64
	if err := r.DB.QueryRowxContext(ctx, query, userID).Scan(&count); err != nil {
		return 0, util.LogError("[RefreshTokenRepo] не удалось посчитать сессии пользователя", err)
	}
	return count, nil
}
