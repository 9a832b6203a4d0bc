package auth

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// TokenStore keeps hashed refresh tokens.
type TokenStore interface {
	Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error
	Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error)
	Delete(ctx context.Context, tokenHash string) error
}

// RedisTokenStore stores refresh tokens under refresh:<hash>. A nil client
// disables refresh: Save and Delete do nothing and Lookup always fails.
type RedisTokenStore struct {
	rdb *redis.Client
}

func NewRedisTokenStore(rdb *redis.Client) *RedisTokenStore {
	return &RedisTokenStore{rdb: rdb}
}

func (s *RedisTokenStore) Save(ctx context.Context, tokenHash string, userID uuid.UUID, ttl time.Duration) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Set(ctx, "refresh:"+tokenHash, userID.String(), ttl).Err()
}

func (s *RedisTokenStore) Lookup(ctx context.Context, tokenHash string) (uuid.UUID, error) {
	if s.rdb == nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	val, err := s.rdb.Get(ctx, "refresh:"+tokenHash).Result()
	if errors.Is(err, redis.Nil) {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, ErrInvalidRefreshToken
	}
	return id, nil
}

func (s *RedisTokenStore) Delete(ctx context.Context, tokenHash string) error {
	if s.rdb == nil {
		return nil
	}
	return s.rdb.Del(ctx, "refresh:"+tokenHash).Err()
}
