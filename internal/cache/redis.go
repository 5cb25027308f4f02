package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/pkg/circuitbreaker"
	"github.com/redis/go-redis/v9"
)

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 15 * time.Minute,
		breaker: circuitbreaker.New("cart-cache", ErrCacheMiss),
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
	breaker *circuitbreaker.Breaker
}

func (r *RedisCache) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	key := cacheKey(cartID)

	v, err := r.breaker.Execute(func() (any, error) {
		data, err := r.client.Get(ctx, key).Bytes()
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		if err != nil {
			return nil, fmt.Errorf("redis get failed: %w", err)
		}
		return data, nil
	})
	if err != nil {
		return nil, err
	}

	var cart domain.Cart
	if err := json.Unmarshal(v.([]byte), &cart); err != nil {
		return nil, fmt.Errorf("unmarshal cart failed: %w", err)
	}

	return &cart, nil
}

func (r *RedisCache) Set(ctx context.Context, cartID string, cart *domain.Cart) error {
	key := cacheKey(cartID)
	jsonCart, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}

	jitter := time.Duration(rand.Intn(5)) * time.Minute
	ttl := r.baseTTL + jitter

	_, err = r.breaker.Execute(func() (any, error) {
		if err := r.client.Set(ctx, key, string(jsonCart), ttl).Err(); err != nil {
			return nil, fmt.Errorf("redis set failed: %w", err)
		}
		return nil, nil
	})
	return err
}

func (r *RedisCache) Delete(ctx context.Context, cartID string) error {
	key := cacheKey(cartID)

	_, err := r.breaker.Execute(func() (any, error) {
		if err := r.client.Del(ctx, key).Err(); err != nil {
			return nil, fmt.Errorf("redis delete failed: %w", err)
		}
		return nil, nil
	})
	return err
}

func cacheKey(cartID string) string {
	return fmt.Sprintf("cart:%s", cartID)
}
