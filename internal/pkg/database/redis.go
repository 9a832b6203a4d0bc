package database

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

// RedisPoolConfig holds client pool and timeout settings.
type RedisPoolConfig struct {
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	IOTimeout    time.Duration
}

func DefaultRedisPoolConfig() RedisPoolConfig {
	return RedisPoolConfig{
		PoolSize:     20,
		MinIdleConns: 4,
		DialTimeout:  5 * time.Second,
		IOTimeout:    2 * time.Second,
	}
}

// NewRedis connects with the default pool. An empty URL returns a nil client,
// which turns refresh tokens and rate limiting off.
func NewRedis(redisURL string) (*redis.Client, error) {
	return NewRedisWithPool(redisURL, DefaultRedisPoolConfig())
}

func NewRedisWithPool(redisURL string, pool RedisPoolConfig) (*redis.Client, error) {
	if redisURL == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	opt.PoolSize = pool.PoolSize
	opt.MinIdleConns = pool.MinIdleConns
	opt.DialTimeout = pool.DialTimeout
	opt.ReadTimeout = pool.IOTimeout
	opt.WriteTimeout = pool.IOTimeout

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), pool.DialTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}

	log.Info().Str("addr", opt.Addr).Int("db", opt.DB).Msg("Connected to Redis")
	return client, nil
}

func CloseRedis(client *redis.Client) {
	if client == nil {
		return
	}
	if err := client.Close(); err != nil {
		log.Error().Err(err).Msg("Error closing Redis connection")
	}
}
