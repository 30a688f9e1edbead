package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/yuzvak/storefront-service/internal/config"
	"github.com/yuzvak/storefront-service/internal/infrastructure/monitoring"
)

type Connection struct {
	client *redis.Client
}

func NewConnection(ctx context.Context, cfg config.RedisConfig) (*Connection, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr(),
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, err
	}

	return &Connection{
		client: monitoring.InstrumentRedisClient(client),
	}, nil
}

func NewConnectionFromClient(client *redis.Client) *Connection {
	return &Connection{client: client}
}

func (c *Connection) Close() error {
	return c.client.Close()
}

func (c *Connection) GetClient() *redis.Client {
	return c.client
}
