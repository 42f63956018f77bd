package dashboard

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheKey(t *testing.T) {
	a := url.Values{}
	a.Set("limit", "100")
	a.Set("instance", "eu-1")
	b := url.Values{}
	b.Set("instance", "eu-1")
	b.Set("limit", "100")

	assert.Equal(t, CacheKey("/api/executions", a), CacheKey("/api/executions", b))
	assert.Equal(t, "/api/executions?instance=eu-1&limit=100", CacheKey("/api/executions", a))
	assert.Equal(t, "/api/instances", CacheKey("/api/instances", nil))
	assert.Equal(t, "/api/instances", CacheKey("/api/instances", url.Values{}))
}

func TestCache_Invalidate(t *testing.T) {
	c := NewCache()
	c.Set("/api/executions?instance=a", []byte("1"))
	c.Set("/api/executions", []byte("2"))
	c.Set("/api/executions/stats", []byte("3"))

	body, ok := c.Get("/api/executions")
	assert.True(t, ok)
	assert.Equal(t, []byte("2"), body)

	c.InvalidateEndpoint("/api/executions")
	assert.Equal(t, 1, c.Len())
	_, ok = c.Get("/api/executions/stats")
	assert.True(t, ok)

	c.Invalidate()
	assert.Zero(t, c.Len())
	_, ok = c.Get("/api/executions/stats")
	assert.False(t, ok)
}
