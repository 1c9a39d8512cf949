package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	catalogapp "github.com/wms/backend/internal/application/catalog"
	"github.com/wms/backend/internal/infrastructure/config"
	"go.uber.org/zap"
)

// RedisProductCache is a read-through cache for product code lookups
// backed by Redis. All failures degrade to cache misses; the database
// remains the source of truth.
type RedisProductCache struct {
	client     *redis.Client
	ownsClient bool // true if we created the client and should close it
	ttl        time.Duration
	logger     *zap.Logger
}

// NewRedisProductCache creates a product cache with its own Redis client.
func NewRedisProductCache(cfg config.RedisConfig, logger *zap.Logger) (*RedisProductCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisProductCache{
		client:     client,
		ownsClient: true,
		ttl:        cfg.CacheTTL,
		logger:     logger,
	}, nil
}

// NewRedisProductCacheWithClient creates a cache with an existing Redis client.
// Note: The caller retains ownership of the client and is responsible for closing it
func NewRedisProductCacheWithClient(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisProductCache {
	return &RedisProductCache{
		client: client,
		ttl:    ttl,
		logger: logger,
	}
}

// productCacheKey generates the cache key for a product code. Codes are
// folded so lookups hit regardless of the caller's casing.
func productCacheKey(code string) string {
	return "product:" + strings.ToLower(code)
}

// Get retrieves a product by code. A false return means cache miss.
func (c *RedisProductCache) Get(ctx context.Context, code string) (*catalogapp.ProductDTO, bool) {
	data, err := c.client.Get(ctx, productCacheKey(code)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		c.logger.Warn("Failed to get product from cache",
			zap.String("code", code),
			zap.Error(err))
		return nil, false
	}

	var dto catalogapp.ProductDTO
	if err := json.Unmarshal(data, &dto); err != nil {
		c.logger.Warn("Failed to unmarshal cached product",
			zap.String("code", code),
			zap.Error(err))
		return nil, false
	}
	return &dto, true
}

// Set stores a product under its code.
func (c *RedisProductCache) Set(ctx context.Context, code string, product catalogapp.ProductDTO) {
	data, err := json.Marshal(product)
	if err != nil {
		c.logger.Warn("Failed to marshal product for cache",
			zap.String("code", code),
			zap.Error(err))
		return
	}
	if err := c.client.Set(ctx, productCacheKey(code), data, c.ttl).Err(); err != nil {
		c.logger.Warn("Failed to set product in cache",
			zap.String("code", code),
			zap.Error(err))
	}
}

// Invalidate drops the cache entries for the given codes.
func (c *RedisProductCache) Invalidate(ctx context.Context, codes ...string) {
	if len(codes) == 0 {
		return
	}
	keys := make([]string, len(codes))
	for i, code := range codes {
		keys[i] = productCacheKey(code)
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached products",
			zap.Strings("codes", codes),
			zap.Error(err))
	}
}

// Close releases the Redis client if this cache owns it.
func (c *RedisProductCache) Close() error {
	if !c.ownsClient {
		return nil
	}
	return c.client.Close()
}

// Ensure RedisProductCache implements the catalog cache port
var _ catalogapp.ProductCache = (*RedisProductCache)(nil)
