package archive

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisKey is the fixed storage key for the serialized archive.
const DefaultRedisKey = "towline:saved_invoices"

// RedisBackend stores the serialized archive as a single Redis string.
type RedisBackend struct {
	client *redis.Client
	key    string
}

// NewRedisBackend creates a Redis-backed archive store. An empty key
// selects DefaultRedisKey.
func NewRedisBackend(client *redis.Client, key string) *RedisBackend {
	if key == "" {
		key = DefaultRedisKey
	}
	return &RedisBackend{client: client, key: key}
}

// Read fetches the serialized archive; a missing key means no store yet.
func (b *RedisBackend) Read(ctx context.Context) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("archive/redis: get %s: %w", b.key, err)
	}
	return data, nil
}

// Write replaces the serialized archive.
func (b *RedisBackend) Write(ctx context.Context, data []byte) error {
	if err := b.client.Set(ctx, b.key, data, 0).Err(); err != nil {
		return fmt.Errorf("archive/redis: set %s: %w", b.key, err)
	}
	return nil
}
