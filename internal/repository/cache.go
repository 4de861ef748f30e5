package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/jardelbordignon/gorestaurant-details-service/internal/config"
	"github.com/jardelbordignon/gorestaurant-details-service/internal/models"
)

const (
	foodKeyPrefix   = "food:"
	defaultCacheTTL = 5 * time.Minute
)

// FoodCache caches remote food lookups so reopening a detail screen
// does not hit the store again.
type FoodCache interface {
	Get(ctx context.Context, id int64) (*models.Food, error)
	Set(ctx context.Context, food *models.Food) error
	Delete(ctx context.Context, id int64) error
}

// RedisFoodCache implements FoodCache using Redis.
type RedisFoodCache struct {
	client *redis.Client
	ttl    time.Duration
	logger *zap.Logger
}

// NewRedisFoodCache creates a new Redis-based food cache.
func NewRedisFoodCache(cfg config.RedisConfig, logger *zap.Logger) *RedisFoodCache {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ttl := cfg.TTL
	if ttl == 0 {
		ttl = defaultCacheTTL
	}

	return &RedisFoodCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// Get retrieves a food from cache. A miss returns (nil, nil).
func (c *RedisFoodCache) Get(ctx context.Context, id int64) (*models.Food, error) {
	key := fmt.Sprintf("%s%d", foodKeyPrefix, id)

	data, err := c.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		c.logger.Debug("Cache miss", zap.Int64("food_id", id))
		return nil, nil
	}
	if err != nil {
		c.logger.Error("Cache get error",
			zap.Int64("food_id", id),
			zap.Error(err),
		)
		return nil, err
	}

	var food models.Food
	if err := json.Unmarshal(data, &food); err != nil {
		return nil, err
	}

	c.logger.Debug("Cache hit", zap.Int64("food_id", id))
	return &food, nil
}

// Set stores a food in cache.
func (c *RedisFoodCache) Set(ctx context.Context, food *models.Food) error {
	key := fmt.Sprintf("%s%d", foodKeyPrefix, food.ID)

	data, err := json.Marshal(food)
	if err != nil {
		return err
	}

	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		c.logger.Error("Cache set error",
			zap.Int64("food_id", food.ID),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// Delete removes a food from cache.
func (c *RedisFoodCache) Delete(ctx context.Context, id int64) error {
	key := fmt.Sprintf("%s%d", foodKeyPrefix, id)

	if err := c.client.Del(ctx, key).Err(); err != nil {
		c.logger.Error("Cache delete error",
			zap.Int64("food_id", id),
			zap.Error(err),
		)
		return err
	}

	return nil
}

// MemoryFoodCache is an in-process FoodCache used when caching is
// disabled in config, and in tests.
type MemoryFoodCache struct {
	mu    sync.RWMutex
	foods map[int64]*models.Food
}

// NewMemoryFoodCache creates an in-process food cache.
func NewMemoryFoodCache() *MemoryFoodCache {
	return &MemoryFoodCache{
		foods: make(map[int64]*models.Food),
	}
}

func (c *MemoryFoodCache) Get(ctx context.Context, id int64) (*models.Food, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if food, ok := c.foods[id]; ok {
		copied := *food
		return &copied, nil
	}
	return nil, nil
}

func (c *MemoryFoodCache) Set(ctx context.Context, food *models.Food) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	copied := *food
	c.foods[food.ID] = &copied
	return nil
}

func (c *MemoryFoodCache) Delete(ctx context.Context, id int64) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.foods, id)
	return nil
}
