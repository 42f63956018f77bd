package dashboard

import (
	"net/url"
	"strings"
	"sync"
)

// Cache keeps raw API response bodies keyed by endpoint and query parameters.
// Entries live until Invalidate is called, which a manual refresh does.
type Cache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

func NewCache() *Cache {
	return &Cache{entries: make(map[string][]byte)}
}

// CacheKey builds the key for an endpoint and its parameters. Parameters are
// encoded in key order so equal queries share an entry.
func CacheKey(endpoint string, params url.Values) string {
	if len(params) == 0 {
		return endpoint
	}
	return endpoint + "?" + params.Encode()
}

func (c *Cache) Get(key string) ([]byte, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	body, ok := c.entries[key]
	return body, ok
}

func (c *Cache) Set(key string, body []byte) {
	c.mu.Lock()
	c.entries[key] = body
	c.mu.Unlock()
}

// Invalidate drops every entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	c.entries = make(map[string][]byte)
	c.mu.Unlock()
}

// InvalidateEndpoint drops the entries of one endpoint, whatever their parameters.
func (c *Cache) InvalidateEndpoint(endpoint string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if key == endpoint || strings.HasPrefix(key, endpoint+"?") {
			delete(c.entries, key)
		}
	}
}

func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
