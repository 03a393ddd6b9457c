package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"artship-backend/config"
	"artship-backend/internal/model"
	"artship-backend/internal/util"

	"github.com/redis/go-redis/v9"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetArt(ctx context.Context, art *model.Art) error {
	data, err := json.Marshal(art)
	if err != nil {
		return util.LogError("ошибка сериализации арта", err)
	}

	cmd := r.client.Client.Set(ctx, r.key(art.ID), data, r.ttl)
	if err = cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения в Redis", err)
	}

	return nil
}

func (r *CacheRepository) GetArt(ctx context.Context, id string) (*model.Art, error) {
	val, err := r.client.Client.Get(ctx, r.key(id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения арта из Redis", err)
	}

	var art model.Art
	if err := json.Unmarshal([]byte(val), &art); err != nil {
		return nil, util.LogError("ошибка десериализации арта из кэша", err)
	}
	return &art, nil
}

func (r *CacheRepository) DeleteArt(ctx context.Context, id string) error {
	if err := r.client.Client.Del(ctx, r.key(id)).Err(); err != nil {
		return util.LogError("ошибка удаления арта из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(id string) string {
	return fmt.Sprintf("art:%s", id)
}
