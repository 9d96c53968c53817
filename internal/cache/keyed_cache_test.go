package cache

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestKeyedCacheSetGet(t *testing.T) {
	c := NewKeyedCache[string]()

	_, exists := c.Get("missing")
	require.False(t, exists)

	c.Set("a", "url-a")
	got, exists := c.Get("a")
	require.True(t, exists)
	require.Equal(t, "url-a", got)

	// overwrite is allowed, last write wins
	c.Set("a", "url-a2")
	got, _ = c.Get("a")
	require.Equal(t, "url-a2", got)
	require.Equal(t, 1, c.Len())
}

func TestKeyedCacheGetOrSet(t *testing.T) {
	c := NewKeyedCache[string]()
	calls := 0

	v := c.GetOrSet("k", func() string {
		calls++
		return "computed"
	})
	require.Equal(t, "computed", v)

	v = c.GetOrSet("k", func() string {
		calls++
		return "recomputed"
	})
	require.Equal(t, "computed", v)
	require.Equal(t, 1, calls)
}

func TestKeyedCacheDeleteClear(t *testing.T) {
	c := NewKeyedCache[int]()
	c.Set("a", 1)
	c.Set("b", 2)

	c.Delete("a")
	_, exists := c.Get("a")
	require.False(t, exists)
	require.Equal(t, 1, c.Len())

	c.Clear()
	require.Equal(t, 0, c.Len())
}

func TestKeyedCacheConcurrentAccess(t *testing.T) {
	c := NewKeyedCache[int]()
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			c.Set("shared", n)
			c.Get("shared")
			c.GetOrSet("once", func() int { return n })
		}(i)
	}
	wg.Wait()

	_, exists := c.Get("shared")
	require.True(t, exists)
	require.Equal(t, 2, c.Len())
}
