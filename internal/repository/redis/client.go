package redis

import (
	"context"
	"log"

	"github.com/Gabo-araya/connect4-IA-agent/internal/config"
	"github.com/redis/go-redis/v9"
)

var RedisClient *redis.Client
var redisEnabled bool

// InitRedis initializes the Redis connection. Redis is an optional cache
// here: startup never fails because of it, difficulty adjustment just
// falls back to PostgreSQL.
func InitRedis() error {
	RedisClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisURL,
		Password: config.AppConfig.RedisPassword,
		DB:       0,
	})

	ctx := context.Background()
	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("[REDIS] Warning: Could not connect to Redis: %v. Falling back to PostgreSQL only.", err)
		redisEnabled = false
		return nil
	}

	redisEnabled = true
	log.Println("[REDIS] Connected successfully")
	return nil
}

// IsRedisEnabled returns whether Redis is available.
func IsRedisEnabled() bool {
	return redisEnabled
}

// CloseRedis closes the Redis connection.
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

const recentWinnersKey = "connect4:recent_winners"

// WinnerCache keeps the short list of recent game outcomes that the
// difficulty adjustment reads after every game, so the hot path does not
// hit PostgreSQL.
type WinnerCache struct {
	client *redis.Client
	keep   int64
}

// NewWinnerCache creates a cache that retains the last keep winners.
func NewWinnerCache(client *redis.Client, keep int) *WinnerCache {
	return &WinnerCache{client: client, keep: int64(keep)}
}

// PushWinner prepends a game outcome and trims the list to its capacity.
func (c *WinnerCache) PushWinner(ctx context.Context, winner string) error {
	pipe := c.client.TxPipeline()
	pipe.LPush(ctx, recentWinnersKey, winner)
	pipe.LTrim(ctx, recentWinnersKey, 0, c.keep-1)
	_, err := pipe.Exec(ctx)
	return err
}

// RecentWinners returns the cached outcomes, newest first.
func (c *WinnerCache) RecentWinners(ctx context.Context, limit int) ([]string, error) {
	if int64(limit) > c.keep {
		limit = int(c.keep)
	}
	return c.client.LRange(ctx, recentWinnersKey, 0, int64(limit)-1).Result()
}
