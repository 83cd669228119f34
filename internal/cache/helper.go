package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// GetJSON loads key and unmarshals it into dest. The boolean reports whether
// the key was present; with no client configured every lookup is a miss.
func GetJSON(ctx context.Context, key string, dest any) (bool, error) {
	if client == nil {
		return false, nil
	}

	raw, err := client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := json.Unmarshal(raw, dest); err != nil {
		return false, err
	}
	return true, nil
}

// SetJSON stores v under key for ttl. A nil client makes this a no-op.
func SetJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	if client == nil {
		return nil
	}

	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return client.Set(ctx, key, payload, ttl).Err()
}

// Aside implements the cache-aside read path: serve from the cache when the
// key is live, otherwise run fetch (which must fill dest) and write the
// result back. Cache read failures degrade to a plain fetch rather than
// surfacing; the write-back is best effort.
func Aside(ctx context.Context, key string, dest any, ttl time.Duration, fetch func() error) error {
	if found, err := GetJSON(ctx, key, dest); err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, key, dest, ttl)
	return nil
}
