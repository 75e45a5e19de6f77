package redis

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// Connect opens the Redis client used for world snapshots and the
// world_events pub/sub channel.
func Connect(redisURL string) (*redis.Client, error) {
	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opt)

	// Verify connection
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return client, nil
}
