package credstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore persists credentials in Redis, for server-side holders of
// exchange sessions (trading bots, back-office daemons) that share one
// logical session across replicas. An optional TTL expires the mirror so a
// dead token is not rehydrated forever.
type RedisStore struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisStore creates a RedisStore writing under the given key. A zero
// ttl means the mirror never expires.
func NewRedisStore(client *redis.Client, key string, ttl time.Duration) *RedisStore {
	if key == "" {
		key = "quantex:credentials"
	}
	return &RedisStore{
		client: client,
		key:    key,
		ttl:    ttl,
	}
}

// Load reads the persisted credentials.
func (s *RedisStore) Load(ctx context.Context) (Credentials, error) {
	data, err := s.client.Get(ctx, s.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Credentials{}, ErrNotFound
		}
		return Credentials{}, fmt.Errorf("redis get credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("decode credentials: %w", err)
	}
	return creds, nil
}

// Save writes the credentials, refreshing the TTL when one is configured.
func (s *RedisStore) Save(ctx context.Context, creds Credentials) error {
	data, err := json.Marshal(creds)
	if err != nil {
		return fmt.Errorf("encode credentials: %w", err)
	}
	if err := s.client.Set(ctx, s.key, data, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set credentials: %w", err)
	}
	return nil
}

// Clear removes the persisted credentials.
func (s *RedisStore) Clear(ctx context.Context) error {
	if err := s.client.Del(ctx, s.key).Err(); err != nil {
		return fmt.Errorf("redis del credentials: %w", err)
	}
	return nil
}
