package cache

import "time"

// CacheService defines the behavior for in-memory caching mechanisms
type CacheService interface {
	// Get retrieves a value from the cache.
	// Returns the value and true if found, nil and false otherwise.
	Get(key string) (interface{}, bool)

	// Set adds a value to the cache with a TTL
	Set(key string, value interface{}, duration time.Duration)

	// Delete removes a value from the cache
	Delete(key string)

	// DeletePrefix removes every entry whose key starts with prefix
	DeletePrefix(prefix string)

	// Flush removes all items
	Flush()
}
