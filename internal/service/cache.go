package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	countriesCacheKey    = "recipes:countries"
	countriesCacheGenKey = "recipes:countries:gen"
	countriesCacheTTL    = 5 * time.Minute
)

// CountryCache stores the distinct recipe countries between writes.
//
// Get reports the cache generation it observed. Set only stores the list when
// no Invalidate happened since that generation, so a reader that loaded the
// database before a write cannot put the older list back.
type CountryCache interface {
	Get(ctx context.Context) (countries []string, generation int64, ok bool, err error)
	Set(ctx context.Context, countries []string, generation int64) error
	Invalidate(ctx context.Context) error
}

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[2].
var setIfGeneration = redis.NewScript(`
local current = tonumber(redis.call("GET", KEYS[2]) or "0")
if current ~= tonumber(ARGV[2]) then
	return 0
end
redis.call("SET", KEYS[1], ARGV[1], "PX", ARGV[3])
return 1
`)

// RedisCountryCache keeps the country list as a JSON array under a single key
// next to a generation counter bumped on every invalidation.
type RedisCountryCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ CountryCache = (*RedisCountryCache)(nil)

func NewRedisCountryCache(client *redis.Client) *RedisCountryCache {
	return &RedisCountryCache{client: client, ttl: countriesCacheTTL}
}

func (c *RedisCountryCache) Get(ctx context.Context) ([]string, int64, bool, error) {
	values, err := c.client.MGet(ctx, countriesCacheKey, countriesCacheGenKey).Result()
	if err != nil {
		return nil, 0, false, fmt.Errorf("failed to read countries cache: %w", err)
	}

	var generation int64
	if raw, ok := values[1].(string); ok {
		generation, err = strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, 0, false, fmt.Errorf("failed to decode countries cache generation: %w", err)
		}
	}

	raw, ok := values[0].(string)
	if !ok {
		return nil, generation, false, nil
	}
	var countries []string
	if err := json.Unmarshal([]byte(raw), &countries); err != nil {
		return nil, generation, false, fmt.Errorf("failed to decode countries cache: %w", err)
	}
	return countries, generation, true, nil
}

func (c *RedisCountryCache) Set(ctx context.Context, countries []string, generation int64) error {
	raw, err := json.Marshal(countries)
	if err != nil {
		return fmt.Errorf("failed to encode countries: %w", err)
	}
	err = setIfGeneration.Run(ctx, c.client,
		[]string{countriesCacheKey, countriesCacheGenKey},
		string(raw), generation, c.ttl.Milliseconds(),
	).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return fmt.Errorf("failed to write countries cache: %w", err)
	}
	return nil
}

func (c *RedisCountryCache) Invalidate(ctx context.Context) error {
	pipe := c.client.TxPipeline()
	pipe.Incr(ctx, countriesCacheGenKey)
	pipe.Del(ctx, countriesCacheKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to invalidate countries cache: %w", err)
	}
	return nil
}
