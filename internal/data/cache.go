package data

import (
	"crypto/sha256"
	"encoding/hex"
	"os"
	"sync"
	"time"

	"lendsim/internal/model"
)

// CacheEntry is one cached subgraph response.
type CacheEntry struct {
	Response  *model.MarketsResponse
	ExpiresAt time.Time
}

// ResponseCache provides in-memory caching of subgraph responses.
//
// The cache is for LOCAL DEVELOPMENT only: it avoids hammering the hosted
// subgraph while iterating on the dashboard. It is automatically disabled
// when API_ENV=production.
type ResponseCache struct {
	mu    sync.RWMutex
	store map[string]*CacheEntry
	ttl   time.Duration
}

var globalCache *ResponseCache
var cacheOnce sync.Once

// GetCache returns the global cache instance if caching is enabled via
// ENABLE_SUBGRAPH_CACHE=true, or nil otherwise.
func GetCache() *ResponseCache {
	if os.Getenv("ENABLE_SUBGRAPH_CACHE") != "true" {
		return nil
	}
	if os.Getenv("API_ENV") == "production" {
		return nil
	}

	cacheOnce.Do(func() {
		ttl := 1 * time.Hour
		if ttlStr := os.Getenv("SUBGRAPH_CACHE_TTL"); ttlStr != "" {
			if parsed, err := time.ParseDuration(ttlStr); err == nil {
				ttl = parsed
			}
		}

		globalCache = &ResponseCache{
			store: make(map[string]*CacheEntry),
			ttl:   ttl,
		}

		go globalCache.cleanup()
	})

	return globalCache
}

// Get retrieves a cached response if present and not expired.
func (c *ResponseCache) Get(key string) (*model.MarketsResponse, bool) {
	if c == nil {
		return nil, false
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[key]
	if !exists {
		return nil, false
	}
	if time.Now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Response, true
}

// Set stores a response.
func (c *ResponseCache) Set(key string, response *model.MarketsResponse) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store[key] = &CacheEntry{
		Response:  response,
		ExpiresAt: time.Now().Add(c.ttl),
	}
}

// Clear removes all entries.
func (c *ResponseCache) Clear() {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
}

func (c *ResponseCache) cleanup() {
	ticker := time.NewTicker(5 * time.Minute)
	defer ticker.Stop()

	for range ticker.C {
		c.mu.Lock()
		now := time.Now()
		for key, entry := range c.store {
			if now.After(entry.ExpiresAt) {
				delete(c.store, key)
			}
		}
		c.mu.Unlock()
	}
}

// GenerateCacheKey creates a deterministic key for an endpoint/query pair.
func GenerateCacheKey(endpoint, query string) string {
	hash := sha256.Sum256([]byte(endpoint + "\n" + query))
	return hex.EncodeToString(hash[:])
}
