package cache

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisCache handles caching and fast state storage
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache creates a new Redis cache connection
func NewRedisCache(redisURL string) (*RedisCache, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Test connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &RedisCache{
		client: client,
	}, nil
}

// Close closes the Redis connection
func (rc *RedisCache) Close() error {
	return rc.client.Close()
}

// Client returns the underlying Redis client
func (rc *RedisCache) Client() *redis.Client {
	return rc.client
}

// HealthCheck pings Redis to verify connection
func (rc *RedisCache) HealthCheck(ctx context.Context) error {
	return rc.client.Ping(ctx).Err()
}

// Set stores a key-value pair with TTL
func (rc *RedisCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return rc.client.Set(ctx, key, value, ttl).Err()
}

// Get retrieves a value by key
func (rc *RedisCache) Get(ctx context.Context, key string) (string, error) {
	return rc.client.Get(ctx, key).Result()
}

// Delete removes a key
func (rc *RedisCache) Delete(ctx context.Context, keys ...string) error {
	return rc.client.Del(ctx, keys...).Err()
}

// DefaultLineTTL keeps a cached totals line around long enough to survive
// an odds API outage mid-game
const DefaultLineTTL = 6 * time.Hour

// SetTotalLine caches the over/under line for a game
func (rc *RedisCache) SetTotalLine(ctx context.Context, gameID string, line float64) error {
	return rc.client.Set(ctx, lineKey(gameID), line, DefaultLineTTL).Err()
}

// GetTotalLine returns the cached line for a game. The second return is
// false on a miss.
func (rc *RedisCache) GetTotalLine(ctx context.Context, gameID string) (float64, bool, error) {
	val, err := rc.client.Get(ctx, lineKey(gameID)).Float64()
	if err == redis.Nil {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return val, true, nil
}

// MarkAlerted records that a trigger fired for a game. Returns false when
// the same trigger was already marked inside the TTL window.
func (rc *RedisCache) MarkAlerted(ctx context.Context, gameID, triggerType string, ttl time.Duration) (bool, error) {
	key := dedupKey(gameID, triggerType)

	exists, err := rc.client.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	if exists > 0 {
		return false, nil
	}

	if err := rc.client.Set(ctx, key, "1", ttl).Err(); err != nil {
		return false, err
	}
	return true, nil
}

// ClearAlerted removes a dedup entry (for testing)
func (rc *RedisCache) ClearAlerted(ctx context.Context, gameID, triggerType string) error {
	return rc.client.Del(ctx, dedupKey(gameID, triggerType)).Err()
}

func lineKey(gameID string) string {
	return "underwatch:line:" + gameID
}

func dedupKey(gameID, triggerType string) string {
	return "underwatch:dedup:" + gameID + ":" + triggerType
}

