package cart

import (
	"context"
	"errors"
	"fmt"

	"gardenshop/internal/domain"
	"github.com/redis/go-redis/v9"
)

type redisRepo struct {
	client *redis.Client
}

// NewRedis stores each user's cart as a JSON array under one key. Carts
// survive restarts for as long as the redis instance keeps the key; no TTL
// is set.
func NewRedis(client *redis.Client) Repository {
	return &redisRepo{client: client}
}

func cacheKey(userID string) string {
	return "cart:" + userID
}

func (r *redisRepo) Load(ctx context.Context, userID string) ([]domain.CartLine, error) {
	raw, err := r.client.Get(ctx, cacheKey(userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}
	return decodeLines(raw), nil
}

func (r *redisRepo) Save(ctx context.Context, userID string, lines []domain.CartLine) error {
	raw, err := encodeLines(lines)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := r.client.Set(ctx, cacheKey(userID), raw, 0).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *redisRepo) Clear(ctx context.Context, userID string) error {
	if err := r.client.Del(ctx, cacheKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del failed: %w", err)
	}
	return nil
}
