package sessions

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// package-level Redis client used for access-token revocation (optional)
var blacklistClient *redis.Client

// SetBlacklistClient configures the Redis client used for blacklist
// operations. Safe to call with nil to disable revocation.
func SetBlacklistClient(c *redis.Client) {
	blacklistClient = c
}

// BlacklistAccessToken marks an access token revoked until its natural
// expiry. No-op without a configured client.
func BlacklistAccessToken(ctx context.Context, token string, ttl time.Duration) error {
	if blacklistClient == nil {
		return nil
	}
	key := "blacklist:access:" + token
	return blacklistClient.Set(ctx, key, "1", ttl).Err()
}

// IsAccessTokenBlacklisted reports whether the token was revoked. Without
// a configured client it returns (false, nil).
func IsAccessTokenBlacklisted(ctx context.Context, token string) (bool, error) {
	if blacklistClient == nil {
		return false, nil
	}
	key := "blacklist:access:" + token
	exists, err := blacklistClient.Exists(ctx, key).Result()
	if err != nil {
		return false, err
	}
	return exists > 0, nil
}
