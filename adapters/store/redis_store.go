package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/reconnectedcc/kromer/core"
	"github.com/reconnectedcc/kromer/ports"
)

// RedisStore is a Redis implementation of the TokenStore interface.
// Expiry rides on Redis key TTLs; GETDEL keeps redemption exactly-once
// across gateway instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis token store
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "kromer:wstoken:",
	}
}

// Put stores a pending token with a TTL
func (s *RedisStore) Put(ctx context.Context, id uuid.UUID, data core.TokenData, ttl time.Duration) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to marshal token data: %w", err)
	}

	key := s.prefix + id.String()
	if err := s.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("failed to store token: %w", err)
	}

	return nil
}

// Take atomically removes and returns a pending token
func (s *RedisStore) Take(ctx context.Context, id uuid.UUID) (core.TokenData, error) {
	key := s.prefix + id.String()

	payload, err := s.client.GetDel(ctx, key).Result()
	if err == redis.Nil {
		return core.TokenData{}, core.ErrTokenNotFound
	}
	if err != nil {
		return core.TokenData{}, fmt.Errorf("failed to take token: %w", err)
	}

	var data core.TokenData
	if err := json.Unmarshal([]byte(payload), &data); err != nil {
		return core.TokenData{}, fmt.Errorf("failed to unmarshal token data: %w", err)
	}

	return data, nil
}

var _ ports.TokenStore = (*RedisStore)(nil)
