package cache

import (
	"testing"
	"time"

	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSetStats(t *testing.T) {
	c := NewCache(10, time.Minute)
	key := GenerateCacheKey(4)
	assert.Equal(t, "judge:4:cases", key)

	_, found := c.Get(key)
	assert.False(t, found)

	require.NoError(t, c.Set(key, []database.CaseRecord{{ID: "a"}}))
	got, found := c.Get(key)
	require.True(t, found)
	assert.Equal(t, "a", got[0].ID)

	stats := c.Stats()
	assert.EqualValues(t, 1, stats.Hits)
	assert.EqualValues(t, 1, stats.Misses)
	assert.Equal(t, 1, stats.Size)
	assert.Equal(t, 10, stats.MaxSize)
}

func TestEmptyListIsCached(t *testing.T) {
	c := NewCache(10, time.Minute)
	require.NoError(t, c.Set("k", []database.CaseRecord{}))

	got, found := c.Get("k")
	assert.True(t, found)
	assert.Empty(t, got)
}

func TestReturnedSlicesDoNotAlias(t *testing.T) {
	c := NewCache(10, time.Minute)
	in := []database.CaseRecord{{ID: "a"}}
	require.NoError(t, c.Set("k", in))
	in[0].ID = "mutated"

	got, _ := c.Get("k")
	got[0].ID = "also mutated"

	again, _ := c.Get("k")
	assert.Equal(t, "a", again[0].ID)
}

func TestEvictsWhenFull(t *testing.T) {
	c := NewCache(2, time.Minute)
	require.NoError(t, c.Set("first", nil))
	time.Sleep(10 * time.Millisecond)
	require.NoError(t, c.Set("second", nil))
	require.NoError(t, c.Set("third", nil))

	assert.Equal(t, 2, c.Stats().Size)
	_, found := c.Get("first")
	assert.False(t, found)
}

func TestOverwriteDoesNotEvict(t *testing.T) {
	c := NewCache(1, time.Minute)
	require.NoError(t, c.Set("k", []database.CaseRecord{{ID: "1"}}))
	require.NoError(t, c.Set("k", []database.CaseRecord{{ID: "2"}}))

	got, found := c.Get("k")
	require.True(t, found)
	assert.Equal(t, "2", got[0].ID)
}

func TestDeleteAndClear(t *testing.T) {
	c := NewCache(10, time.Minute)
	require.NoError(t, c.Set("a", nil))
	require.NoError(t, c.Set("b", nil))

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	stats := c.Stats()
	assert.Equal(t, 0, stats.Size)
	assert.Zero(t, stats.Misses)
}

func TestDisabledCacheRejectsSet(t *testing.T) {
	c := NewCache(0, time.Minute)
	assert.Error(t, c.Set("k", nil))
}
