package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/portal-admin/internal/domain/entity"
	"github.com/jhoicas/portal-admin/internal/domain/repository"
)

var _ repository.StateRepository = (*RedisStateRepo)(nil)

// RedisStateRepo guarda la instantánea como un string JSON bajo repository.StateKey, sin expiración.
type RedisStateRepo struct {
	rdb *redis.Client
	key string
}

// NewRedisStateRepository construye el adaptador sobre un cliente ya conectado.
func NewRedisStateRepository(rdb *redis.Client) *RedisStateRepo {
	return &RedisStateRepo{rdb: rdb, key: repository.StateKey}
}

// NewRedis crea y valida una conexión go-redis a partir de una URL.
func NewRedis(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// Load lee la instantánea. Devuelve (nil, nil) si la clave no existe.
func (r *RedisStateRepo) Load(ctx context.Context) (*entity.State, error) {
	raw, err := r.rdb.Get(ctx, r.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("redis get: %w", err)
	}
	var state entity.State
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, fmt.Errorf("decodificar instantánea: %w", err)
	}
	return &state, nil
}

// Save reemplaza la instantánea.
func (r *RedisStateRepo) Save(ctx context.Context, state *entity.State) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("codificar instantánea: %w", err)
	}
	if err := r.rdb.Set(ctx, r.key, raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set: %w", err)
	}
	return nil
}

// Reset borra la instantánea.
func (r *RedisStateRepo) Reset(ctx context.Context) error {
	if err := r.rdb.Del(ctx, r.key).Err(); err != nil {
		return fmt.Errorf("redis del: %w", err)
	}
	return nil
}
