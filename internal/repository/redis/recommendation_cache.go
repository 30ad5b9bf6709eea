package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"smartMarket/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

// RecommendationCache stores full recommendation responses keyed by
// request shape. A hit replays the stored response verbatim.
type RecommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) *RecommendationCache {
	return &RecommendationCache{
		client: client,
	}
}

// Get returns (nil, nil) on a cache miss.
func (c *RecommendationCache) Get(ctx context.Context, key string) (*domain.RecommendationResponse, error) {
	val, err := c.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get cached recommendations: %w", err)
	}

	var response domain.RecommendationResponse
	if err := json.Unmarshal([]byte(val), &response); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cached recommendations: %w", err)
	}

	return &response, nil
}

func (c *RecommendationCache) Set(ctx context.Context, key string, response *domain.RecommendationResponse, ttl time.Duration) error {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return fmt.Errorf("failed to marshal recommendations: %w", err)
	}

	if err := c.client.Set(ctx, key, jsonData, ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache recommendations: %w", err)
	}

	return nil
}
