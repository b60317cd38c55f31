package cache

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestCache(size int, ttl time.Duration) (*LRUCache[string], *fakeClock) {
	clock := &fakeClock{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewLRUCache[string](size, ttl)
	c.now = clock.Now
	return c, clock
}

func TestLRUCache_GetSet(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("a", "1")
	got, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "1", got)

	c.Set("a", "2")
	got, _ = c.Get("a")
	assert.Equal(t, "2", got)
	assert.Equal(t, 1, c.Size())
}

func TestLRUCache_Expiry(t *testing.T) {
	c, clock := newTestCache(10, 30*time.Second)
	c.Set("a", "1")

	clock.Advance(29 * time.Second)
	_, ok := c.Get("a")
	assert.True(t, ok, "entry should be served before its ttl")

	clock.Advance(time.Second)
	_, ok = c.Get("a")
	assert.False(t, ok, "entry should expire at its ttl")
	assert.Zero(t, c.Size())
}

func TestLRUCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c, _ := newTestCache(2, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	_, _ = c.Get("a")
	c.Set("c", "3")

	_, ok := c.Get("b")
	assert.False(t, ok)
	_, ok = c.Get("a")
	assert.True(t, ok)
	_, ok = c.Get("c")
	assert.True(t, ok)
}

func TestLRUCache_DeleteAndPurge(t *testing.T) {
	c, _ := newTestCache(5, time.Minute)
	c.Set("a", "1")
	c.Set("b", "2")

	c.Delete("a")
	c.Delete("missing")
	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 1, c.Size())

	c.Purge()
	assert.Zero(t, c.Size())
}

func TestLRUCache_CleanExpired(t *testing.T) {
	c, clock := newTestCache(5, time.Minute)
	c.Set("a", "1")
	clock.Advance(30 * time.Second)
	c.Set("b", "2")
	clock.Advance(30 * time.Second)

	assert.Equal(t, 1, c.CleanExpired())
	assert.Equal(t, 1, c.Size())
}

func TestManager(t *testing.T) {
	t.Run("sweeps registered caches", func(t *testing.T) {
		c, clock := newTestCache(5, time.Second)
		c.Set("a", "1")
		c.Set("b", "2")
		clock.Advance(time.Second)

		m := NewManager()
		m.Register(c)

		assert.Equal(t, 2, m.CleanExpired())
	})

	t.Run("background sweep stops cleanly", func(t *testing.T) {
		c, clock := newTestCache(5, time.Second)
		c.Set("a", "1")
		clock.Advance(time.Second)

		m := NewManager()
		m.Register(c)
		m.StartCleanup(5 * time.Millisecond)
		m.StartCleanup(5 * time.Millisecond)

		assert.Eventually(t, func() bool { return c.Size() == 0 }, time.Second, 5*time.Millisecond)
		m.Stop()
		m.Stop()
	})

	t.Run("stop without start is a no-op", func(t *testing.T) {
		NewManager().Stop()
	})
}
