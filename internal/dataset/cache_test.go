package dataset

import (
	"context"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func cacheSources(t *testing.T) (string, string, string) {
	t.Helper()
	dir := t.TempDir()
	pathA := writeSource(t, dir, "a.csv",
		"Indicator,Tahun,Value,Type\nGDP,2020,5.0,Actual\n")
	pathB := writeSource(t, dir, "b.csv",
		"Indicator,Tahun,Value,Type\nGDP,2020,-4.1,Actual\n")
	pathC := writeSource(t, dir, "c.csv",
		"Indicator,Tahun,Value,Type\nGDP,2020,-3.8,Actual\n")
	return pathA, pathB, pathC
}

func TestCache_LoadOnceThenHit(t *testing.T) {
	pathA, pathB, pathC := cacheSources(t)
	cache := NewCache()

	first, cached, err := cache.Load(context.Background(), pathA, pathB, pathC)
	require.NoError(t, err)
	assert.False(t, cached)
	require.Len(t, first, 3)

	second, cached, err := cache.Load(context.Background(), pathA, pathB, pathC)
	require.NoError(t, err)
	assert.True(t, cached)
	assert.Equal(t, first, second)

	hits, misses := cache.Stats()
	assert.Equal(t, int64(1), hits)
	assert.Equal(t, int64(1), misses)
	assert.Equal(t, 1, cache.Len())
}

func TestCache_DistinctTriplesLoadSeparately(t *testing.T) {
	pathA, pathB, pathC := cacheSources(t)
	cache := NewCache()

	_, cached, err := cache.Load(context.Background(), pathA, pathB, pathC)
	require.NoError(t, err)
	assert.False(t, cached)

	// A reordered triple is a different key
	_, cached, err = cache.Load(context.Background(), pathC, pathB, pathA)
	require.NoError(t, err)
	assert.False(t, cached)

	assert.Equal(t, 2, cache.Len())
}

func TestCache_LoadErrorIsNotCached(t *testing.T) {
	pathA, pathB, _ := cacheSources(t)
	missing := filepath.Join(t.TempDir(), "missing.csv")
	cache := NewCache()

	_, _, err := cache.Load(context.Background(), pathA, pathB, missing)
	require.Error(t, err)
	assert.Equal(t, 0, cache.Len())
}

func TestCache_ConcurrentLoads(t *testing.T) {
	pathA, pathB, pathC := cacheSources(t)
	cache := NewCache()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			records, _, err := cache.Load(context.Background(), pathA, pathB, pathC)
			assert.NoError(t, err)
			assert.Len(t, records, 3)
		}()
	}
	wg.Wait()

	// All goroutines share one entry built by a single load
	assert.Equal(t, 1, cache.Len())
	_, misses := cache.Stats()
	assert.Equal(t, int64(1), misses)
}
