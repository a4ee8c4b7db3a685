package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

const lastMealKey = "last_meal"

type redisLastMealRepository struct {
	client *redis.Client
	key    string
}

func NewRedisLastMealRepository(client *redis.Client, keyPrefix string) domain.LastMealRepository {
	return &redisLastMealRepository{
		client: client,
		key:    keyPrefix + lastMealKey,
	}
}

func (r *redisLastMealRepository) GetLastMeal(ctx context.Context) (*string, error) {
	val, err := r.client.Get(ctx, r.key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}

	return &val, nil
}

// SaveLastMeal overwrites the key without expiry; the value must survive
// until the next meal is announced.
func (r *redisLastMealRepository) SaveLastMeal(ctx context.Context, meal string) error {
	if err := r.client.Set(ctx, r.key, meal, 0).Err(); err != nil {
		return fmt.Errorf("%w: %w", ErrRedisConnection, err)
	}
	return nil
}
