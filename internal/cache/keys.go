package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"pawhaven/internal/observability"

	"github.com/redis/go-redis/v9"
)

const (
	PetKeyPrefix   = "pet:%d"
	StatsKey       = "applications:stats"
	LocationsKey   = "locations:all"
	PetListPrefix  = "pets:list:%s"
	BlacklistKeyFn = "blacklist:%s"
)

const (
	PetTTL       = 10 * time.Minute
	StatsTTL     = 30 * time.Second
	LocationsTTL = 15 * time.Minute
	PetListTTL   = time.Minute
)

func PetKey(petID uint) string {
	return fmt.Sprintf(PetKeyPrefix, petID)
}

func PetListKey(statusFilter string) string {
	if statusFilter == "" {
		statusFilter = "all"
	}
	return fmt.Sprintf(PetListPrefix, statusFilter)
}

func BlacklistKey(jti string) string {
	return fmt.Sprintf(BlacklistKeyFn, jti)
}

// GetJSON loads a cached value into dest. Returns false on miss, cache
// disabled, or decode failure. Lookup outcomes are recorded per key family.
func GetJSON(ctx context.Context, family, key string, dest interface{}) bool {
	if client == nil {
		return false
	}
	raw, err := client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			observability.CacheHits.WithLabelValues(family, "miss").Inc()
		} else {
			observability.CacheHits.WithLabelValues(family, "error").Inc()
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		observability.CacheHits.WithLabelValues(family, "decode_error").Inc()
		client.Del(ctx, key)
		return false
	}
	observability.CacheHits.WithLabelValues(family, "hit").Inc()
	return true
}

// SetJSON stores a value under key with the given TTL. Failures are
// silently dropped; the cache is best effort.
func SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) {
	if client == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return
	}
	client.Set(ctx, key, raw, ttl)
}

func Invalidate(ctx context.Context, keys ...string) {
	if client != nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

func InvalidatePet(ctx context.Context, petID uint) {
	Invalidate(ctx, PetKey(petID))
	InvalidatePetLists(ctx)
}

func InvalidatePetLists(ctx context.Context) {
	Invalidate(ctx,
		PetListKey(""),
		PetListKey("pending"),
		PetListKey("approved"),
		PetListKey("adopted"),
	)
}

func InvalidateStats(ctx context.Context) {
	Invalidate(ctx, StatsKey)
}

func InvalidateLocations(ctx context.Context) {
	Invalidate(ctx, LocationsKey)
}
