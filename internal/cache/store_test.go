package cache_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/puretable/internal/cache"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestKey(t *testing.T) {
	assert.Equal(t, cache.Key("a", "b"), cache.Key("a", "b"))
	assert.NotEqual(t, cache.Key("ab", "c"), cache.Key("a", "bc"))
	assert.NotEqual(t, cache.Key("a"), cache.Key("a", ""))
	assert.Len(t, cache.Key("x"), 64)
}

func TestMemoryStore_GetSet(t *testing.T) {
	s := cache.NewMemoryStore[int](4, time.Minute)

	_, ok := s.Get("missing")
	assert.False(t, ok)

	s.Set("one", 1)
	got, ok := s.Get("one")
	require.True(t, ok)
	assert.Equal(t, 1, got)

	s.Set("one", 11)
	got, _ = s.Get("one")
	assert.Equal(t, 11, got)

	st := s.Stats()
	assert.Equal(t, 2, st.Hits)
	assert.Equal(t, 1, st.Misses)
	assert.Equal(t, 1, st.Size)
}

func TestMemoryStore_TTLExpiry(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := cache.NewMemoryStore(4, time.Minute, cache.WithClock[string](clock.Now))

	s.Set("k", "v")
	clock.Advance(30 * time.Second)
	_, ok := s.Get("k")
	assert.True(t, ok)

	clock.Advance(31 * time.Second)
	_, ok = s.Get("k")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Stats().Size)
}

func TestMemoryStore_CleanupExpired(t *testing.T) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	s := cache.NewMemoryStore(8, time.Minute, cache.WithClock[int](clock.Now))

	s.Set("old1", 1)
	s.Set("old2", 2)
	clock.Advance(2 * time.Minute)
	s.Set("fresh", 3)

	assert.Equal(t, 2, s.CleanupExpired())
	assert.Equal(t, 1, s.Stats().Size)
}

func TestMemoryStore_EvictsLeastRecentlyUsed(t *testing.T) {
	s := cache.NewMemoryStore[int](2, 0)

	s.Set("a", 1)
	s.Set("b", 2)
	_, _ = s.Get("a")
	s.Set("c", 3)

	_, okA := s.Get("a")
	_, okB := s.Get("b")
	_, okC := s.Get("c")
	assert.True(t, okA)
	assert.False(t, okB)
	assert.True(t, okC)
	assert.Equal(t, 1, s.Stats().Evictions)
}

func TestMemoryStore_Disabled(t *testing.T) {
	s := cache.NewMemoryStore[int](0, time.Minute)
	assert.False(t, s.Enabled())

	s.Set("a", 1)
	_, ok := s.Get("a")
	assert.False(t, ok)
	assert.Equal(t, cache.Stats{}, s.Stats())

	var nilStore *cache.MemoryStore[int]
	assert.False(t, nilStore.Enabled())
	_, ok = nilStore.Get("a")
	assert.False(t, ok)
}

func TestMemoryStore_DeleteAndClear(t *testing.T) {
	s := cache.NewMemoryStore[int](4, 0)
	s.Set("a", 1)
	s.Set("b", 2)

	s.Delete("a")
	s.Delete("never-set")
	_, ok := s.Get("a")
	assert.False(t, ok)

	s.Clear()
	assert.Equal(t, 0, s.Stats().Size)
}

func TestMemoryStore_Concurrent(t *testing.T) {
	s := cache.NewMemoryStore[int](16, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := cache.Key(string(rune('a' + n)), string(rune('a' + j%4)))
				s.Set(key, j)
				_, _ = s.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, s.Stats().Size, 16)
}
