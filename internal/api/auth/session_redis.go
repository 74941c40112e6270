package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/cuongbtq/job-board/internal/api/domain"
	"github.com/redis/go-redis/v9"
)

// RedisSessionStore keeps sessions in Redis. Both keys of a session are
// written and deleted in one MULTI/EXEC.
type RedisSessionStore struct {
	client redis.Cmdable
	prefix string
	ttl    time.Duration
}

func NewRedisSessionStore(client redis.Cmdable, prefix string, ttl time.Duration) *RedisSessionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &RedisSessionStore{client: client, prefix: prefix, ttl: ttl}
}

func (s *RedisSessionStore) Save(ctx context.Context, token string, user *domain.User) error {
	raw, err := json.Marshal(user)
	if err != nil {
		return fmt.Errorf("failed to encode session user: %w", err)
	}

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, UserKey(s.prefix, token), raw, s.ttl)
		pipe.Set(ctx, TokenKey(s.prefix, token), token, s.ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (s *RedisSessionStore) Load(ctx context.Context, token string) (*domain.User, error) {
	vals, err := s.client.MGet(ctx, UserKey(s.prefix, token), TokenKey(s.prefix, token)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	rawUser, ok := vals[0].(string)
	if !ok {
		return nil, ErrNoSession
	}
	rawToken, _ := vals[1].(string)
	return decodeSession(token, rawUser, rawToken)
}

func (s *RedisSessionStore) Delete(ctx context.Context, token string) error {
	err := s.client.Del(ctx, UserKey(s.prefix, token), TokenKey(s.prefix, token)).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
