package idempotency

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const pendingMarker = "pending"

// RedisStore implementa Store con SETNX y TTL, compartido entre instancias de la API.
type RedisStore struct {
	rdb    *redis.Client
	ttl    time.Duration
	prefix string
}

// NewRedisStore construye el store. ttl es cuánto se recuerda cada clave.
func NewRedisStore(rdb *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{rdb: rdb, ttl: ttl, prefix: "idem:"}
}

func (s *RedisStore) Begin(ctx context.Context, key string) (*Response, error) {
	k := s.prefix + key
	ok, err := s.rdb.SetNX(ctx, k, pendingMarker, s.ttl).Result()
	if err != nil {
		return nil, fmt.Errorf("idempotency: reservar clave: %w", err)
	}
	if ok {
		return nil, nil
	}
	val, err := s.rdb.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		// expiró entre SETNX y GET
		return nil, ErrInProgress
	}
	if err != nil {
		return nil, fmt.Errorf("idempotency: leer clave: %w", err)
	}
	if val == pendingMarker {
		return nil, ErrInProgress
	}
	var resp Response
	if err := json.Unmarshal([]byte(val), &resp); err != nil {
		return nil, fmt.Errorf("idempotency: decodificar respuesta: %w", err)
	}
	return &resp, nil
}

func (s *RedisStore) Complete(ctx context.Context, key string, resp Response) error {
	b, err := json.Marshal(resp)
	if err != nil {
		return fmt.Errorf("idempotency: codificar respuesta: %w", err)
	}
	if err := s.rdb.Set(ctx, s.prefix+key, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("idempotency: guardar respuesta: %w", err)
	}
	return nil
}

func (s *RedisStore) Abort(ctx context.Context, key string) error {
	if err := s.rdb.Del(ctx, s.prefix+key).Err(); err != nil {
		return fmt.Errorf("idempotency: liberar clave: %w", err)
	}
	return nil
}
