package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reconnectedcc/kromer/core"
)

func newRedisStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return NewRedisStore(client), mr
}

func TestRedisStorePutTake(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	id := uuid.New()
	data := core.NewTokenData("k1234567890", "secret")

	require.NoError(t, s.Put(ctx, id, data, time.Minute))

	got, err := s.Take(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, data, got)
}

func TestRedisStoreTakeConsumesExactlyOnce(t *testing.T) {
	s, _ := newRedisStore(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, s.Put(ctx, id, core.NewGuestTokenData(), time.Minute))

	_, err := s.Take(ctx, id)
	require.NoError(t, err)

	_, err = s.Take(ctx, id)
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}

func TestRedisStoreExpiry(t *testing.T) {
	s, mr := newRedisStore(t)
	ctx := context.Background()

	id := uuid.New()
	require.NoError(t, s.Put(ctx, id, core.NewGuestTokenData(), 30*time.Second))

	mr.FastForward(31 * time.Second)

	_, err := s.Take(ctx, id)
	assert.ErrorIs(t, err, core.ErrTokenNotFound)
}
