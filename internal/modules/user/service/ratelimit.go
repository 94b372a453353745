package user

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// checkAndSetRateLimit takes a short-lived lock keyed by the login name. A
// nil redis client disables throttling entirely.
func checkAndSetRateLimit(ctx context.Context, rdb *redis.Client, username string, limit time.Duration) (bool, error) {
	if rdb == nil {
		return true, nil
	}

	key := fmt.Sprintf("rate_limit:login:%s", username)

	wasSet, err := rdb.SetNX(ctx, key, "locked", limit).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check rate limit in redis: %w", err)
	}

	return wasSet, nil
}

func clearRateLimit(ctx context.Context, rdb *redis.Client, username string) error {
	if rdb == nil {
		return nil
	}
	key := fmt.Sprintf("rate_limit:login:%s", username)
	_, err := rdb.Del(ctx, key).Result()
	return err
}
