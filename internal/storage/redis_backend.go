package storage

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// RedisBackend хранит каждую таблицу одним ключом <prefix><table>.
type RedisBackend struct {
	client redis.Cmdable
	prefix string
}

// NewRedisBackend создаёт Redis-бэкенд.
func NewRedisBackend(client redis.Cmdable, prefix string) *RedisBackend {
	return &RedisBackend{client: client, prefix: prefix}
}

func (b *RedisBackend) key(table string) string {
	return b.prefix + table
}

func (b *RedisBackend) Load(ctx context.Context, table string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.key(table)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTableNotFound
		}
		return nil, err
	}
	return data, nil
}

func (b *RedisBackend) Save(ctx context.Context, table string, data []byte) error {
	return b.client.Set(ctx, b.key(table), data, 0).Err()
}
