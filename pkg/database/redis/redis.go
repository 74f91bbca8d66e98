package redis

import (
	"context"
	"fmt"
	"shopReco/pkg/config"
	"time"

	"github.com/redis/go-redis/v9"
)

func NewRedisClient(config *config.Config) (*redis.Client, error) {
	poolSize, minIdle := poolSettings(config.Redis)

	client := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%s", config.Redis.RedisHost, config.Redis.RedisPort),
		Password:     config.Redis.RedisPassword,
		Username:     "default",
		DB:           config.Redis.RedisDB,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     poolSize,
		MinIdleConns: minIdle,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// test connection
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return client, nil
}

// poolSettings resolves the connection pool knobs. Unset values fall back
// to 10 connections with 5 idle, and the idle floor never exceeds the pool.
func poolSettings(cfg config.RedisConfig) (poolSize, minIdle int) {
	poolSize = cfg.PoolSize
	if poolSize <= 0 {
		poolSize = 10
	}

	minIdle = cfg.MinIdleConns
	if minIdle <= 0 {
		minIdle = 5
	}
	if minIdle > poolSize {
		minIdle = poolSize
	}

	return poolSize, minIdle
}

// CloseRedisClient closes the Redis connection
func CloseRedisClient(client *redis.Client) error {
	if client != nil {
		return client.Close()
	}

	return nil
}
