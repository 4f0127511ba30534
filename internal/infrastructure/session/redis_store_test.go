package session

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewRedisStore(rdb), mr
}

func TestRedisStore_SaveExistsDelete(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	ok, err := s.Exists(ctx, "u-1", "s-1")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Save(ctx, "u-1", "s-1", time.Hour))
	ok, err = s.Exists(ctx, "u-1", "s-1")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "u-1", mr.HGet(Key("u-1", "s-1"), "user_id"))
	require.Equal(t, time.Hour, mr.TTL(Key("u-1", "s-1")))

	require.NoError(t, s.Delete(ctx, "u-1", "s-1"))
	ok, err = s.Exists(ctx, "u-1", "s-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_SessionExpires(t *testing.T) {
	s, mr := newStore(t)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, "u-1", "s-1", time.Minute))
	mr.FastForward(2 * time.Minute)

	ok, err := s.Exists(ctx, "u-1", "s-1")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRedisStore_Unreachable(t *testing.T) {
	s, mr := newStore(t)
	mr.Close()

	_, err := s.Exists(context.Background(), "u-1", "s-1")
	require.Error(t, err)
}
