package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"

	domainErrors "github.com/yuzvak/storefront-service/internal/domain/errors"
)

// LocalStorage stores each key as a plain string value under "<prefix>:<key>",
// without expiry.
type LocalStorage struct {
	client *redis.Client
	prefix string
}

func NewLocalStorage(conn *Connection, prefix string) *LocalStorage {
	return &LocalStorage{
		client: conn.GetClient(),
		prefix: prefix,
	}
}

func (s *LocalStorage) key(key string) string {
	if s.prefix == "" {
		return key
	}
	return s.prefix + ":" + key
}

func (s *LocalStorage) GetItem(ctx context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, domainErrors.ErrStorageKeyEmpty
	}

	value, err := s.client.Get(ctx, s.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", false, nil
		}
		return "", false, err
	}

	return value, true, nil
}

func (s *LocalStorage) SetItem(ctx context.Context, key, value string) error {
	if key == "" {
		return domainErrors.ErrStorageKeyEmpty
	}
	return s.client.Set(ctx, s.key(key), value, 0).Err()
}

func (s *LocalStorage) RemoveItem(ctx context.Context, key string) error {
	return s.client.Del(ctx, s.key(key)).Err()
}

func (s *LocalStorage) Ping(ctx context.Context) error {
	return s.client.Ping(ctx).Err()
}
