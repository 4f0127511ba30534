// Package session records issued sessions in Redis so logout can revoke them.
package session

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/go-music-catalog/internal/domain/repository"
)

type RedisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) *RedisStore {
	return &RedisStore{rdb: rdb}
}

func Key(userID, sessionID string) string {
	return "user:session:" + userID + ":" + sessionID
}

func (s *RedisStore) Save(ctx context.Context, userID, sessionID string, ttl time.Duration) error {
	key := Key(userID, sessionID)
	pipe := s.rdb.Pipeline()
	pipe.HSet(ctx, key, map[string]any{
		"user_id":    userID,
		"sid":        sessionID,
		"created_at": time.Now().UTC().Format(time.RFC3339Nano),
	})
	pipe.Expire(ctx, key, ttl)
	_, err := pipe.Exec(ctx)
	return err
}

func (s *RedisStore) Exists(ctx context.Context, userID, sessionID string) (bool, error) {
	n, err := s.rdb.Exists(ctx, Key(userID, sessionID)).Result()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}

func (s *RedisStore) Delete(ctx context.Context, userID, sessionID string) error {
	return s.rdb.Del(ctx, Key(userID, sessionID)).Err()
}

var _ repository.SessionStore = (*RedisStore)(nil)
