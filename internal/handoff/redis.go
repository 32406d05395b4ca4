package handoff

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore shares hand-off values between server replicas.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	prefix string
}

func NewRedisStore(addr, password string, db int, ttl time.Duration, prefix string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return NewRedisStoreWithClient(client, ttl, prefix), nil
}

func NewRedisStoreWithClient(client *redis.Client, ttl time.Duration, prefix string) *RedisStore {
	return &RedisStore{client: client, ttl: ttl, prefix: prefix}
}

func (s *RedisStore) key(session string, key Key) string {
	return s.prefix + storeKey(session, key)
}

func (s *RedisStore) Put(ctx context.Context, session string, key Key, value string) error {
	if err := checkSession(session); err != nil {
		return err
	}
	if err := s.client.Set(ctx, s.key(session, key), value, s.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

func (s *RedisStore) Take(ctx context.Context, session string, key Key) (string, bool, error) {
	if err := checkSession(session); err != nil {
		return "", false, err
	}
	v, err := s.client.GetDel(ctx, s.key(session, key)).Result()
	if err == redis.Nil {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("failed to take %s: %w", key, err)
	}
	return v, true, nil
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}
