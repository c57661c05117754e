package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// ItemCacheTTL is the time-to-live for cached items.
	ItemCacheTTL = time.Hour

	itemCacheKeyPrefix = "item"

	// generationTTL outlives any fill that snapshotted the generation.
	generationTTL = 2 * ItemCacheTTL
)

// setIfGeneration writes KEYS[1] only while KEYS[2] still holds ARGV[1].
// A missing generation key reads as "0".
var setIfGeneration = redis.NewScript(`
local gen = redis.call('GET', KEYS[2]) or '0'
if gen ~= ARGV[1] then
	return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: miss")

// CachedParty is the public projection of an owner or claimer.
type CachedParty struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
	Phone string    `json:"phone"`
}

// CachedItem is the denormalized item view stored in Redis as JSON.
// Owner and claimer are resolved so a hit needs no user lookup.
type CachedItem struct {
	ID          uuid.UUID    `json:"id"`
	Title       string       `json:"title"`
	Description string       `json:"description,omitempty"`
	Type        string       `json:"type"`
	Category    string       `json:"category"`
	ImageURL    string       `json:"image_url,omitempty"`
	Longitude   float64      `json:"lng"`
	Latitude    float64      `json:"lat"`
	Radius      float64      `json:"radius"`
	Owner       CachedParty  `json:"owner"`
	Claimer     *CachedParty `json:"claimer,omitempty"`
	ClaimedAt   *time.Time   `json:"claimed_at,omitempty"`
	IsResolved  bool         `json:"is_resolved"`
	ExpiresAt   time.Time    `json:"expires_at"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

// ItemCache provides structured read/write operations for item cache entries.
// Key format: "item:{itemID}", with its generation under "item:{itemID}:gen".
//
// Delete bumps the generation. A fill that read the store before a change
// passes the generation it saw to SetIfGeneration and is dropped, so a
// slow reader cannot put an old view back after an eviction.
type ItemCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewItemCache creates a new ItemCache backed by the given RedisClient.
func NewItemCache(r *RedisClient) *ItemCache {
	return &ItemCache{client: r, ttl: ItemCacheTTL}
}

// Get retrieves a cached item by ID. Returns ErrCacheMiss when the key does
// not exist or has expired.
func (c *ItemCache) Get(ctx context.Context, itemID uuid.UUID) (*CachedItem, error) {
	raw, err := c.client.Client().Get(ctx, c.key(itemID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}

	var item CachedItem
	if err := json.Unmarshal(raw, &item); err != nil {
		return nil, fmt.Errorf("cache decode: %w", err)
	}
	return &item, nil
}

// Set writes a cached item with the cache TTL.
func (c *ItemCache) Set(ctx context.Context, item *CachedItem) error {
	raw, err := json.Marshal(item)
	if err != nil {
		return fmt.Errorf("cache encode: %w", err)
	}
	if err := c.client.Client().Set(ctx, c.key(item.ID), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Generation returns the current generation of itemID, 0 when none is set.
// Snapshot it before reading the store and hand it to SetIfGeneration.
func (c *ItemCache) Generation(ctx context.Context, itemID uuid.UUID) (int64, error) {
	gen, err := c.client.Client().Get(ctx, c.genKey(itemID)).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("cache generation: %w", err)
	}
	return gen, nil
}

// SetIfGeneration writes item only if its generation still equals gen. It
// reports whether the entry was written.
func (c *ItemCache) SetIfGeneration(ctx context.Context, item *CachedItem, gen int64) (bool, error) {
	raw, err := json.Marshal(item)
	if err != nil {
		return false, fmt.Errorf("cache encode: %w", err)
	}
	keys := []string{c.key(item.ID), c.genKey(item.ID)}
	n, err := setIfGeneration.Run(ctx, c.client.Client(), keys,
		strconv.FormatInt(gen, 10), raw, c.ttl.Milliseconds()).Int()
	if err != nil {
		return false, fmt.Errorf("cache set: %w", err)
	}
	return n == 1, nil
}

// Delete removes a cached item and bumps its generation.
func (c *ItemCache) Delete(ctx context.Context, itemID uuid.UUID) error {
	_, err := c.client.Client().TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, c.genKey(itemID))
		pipe.PExpire(ctx, c.genKey(itemID), generationTTL)
		pipe.Del(ctx, c.key(itemID))
		return nil
	})
	if err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// key builds the Redis key: "item:{itemID}"
func (c *ItemCache) key(itemID uuid.UUID) string {
	return fmt.Sprintf("%s:%s", itemCacheKeyPrefix, itemID)
}

func (c *ItemCache) genKey(itemID uuid.UUID) string {
	return c.key(itemID) + ":gen"
}
