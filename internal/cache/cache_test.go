package cache

import (
	"testing"
	"time"

	"github.com/concavehq/concave/pkg/models"
	"github.com/stretchr/testify/assert"
)

func TestCache(t *testing.T) {

	var value = models.PublicLink{
		Token:        "abc123",
		ResourceType: models.ResourceFile,
		ResourceID:   "0f61a3f6-24e5-4b5e-9f8e-2b2f2e7a9f10",
	}
	var result models.PublicLink

	cache := NewMemoryCache(1 * 1024 * 1024)

	err := cache.Set("key", value, 1*time.Second)
	assert.NoError(t, err)

	err = cache.Get("key", &result)
	assert.NoError(t, err)
	assert.Equal(t, result, value)
}

func TestCacheDelete(t *testing.T) {
	cache := NewMemoryCache(1 * 1024 * 1024)

	assert.NoError(t, cache.Set("key", "value", time.Minute))
	assert.NoError(t, cache.Delete("key"))

	var result string
	assert.Error(t, cache.Get("key", &result))
}

func TestFetch(t *testing.T) {
	cache := NewMemoryCache(1 * 1024 * 1024)

	calls := 0
	load := func() (string, error) {
		calls++
		return "computed", nil
	}

	value, err := Fetch(cache, "key", time.Minute, load)
	assert.NoError(t, err)
	assert.Equal(t, "computed", value)

	value, err = Fetch(cache, "key", time.Minute, load)
	assert.NoError(t, err)
	assert.Equal(t, "computed", value)
	assert.Equal(t, 1, calls)
}
