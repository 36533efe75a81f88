package crawler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setOf(urls ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(urls))
	for _, u := range urls {
		set[u] = struct{}{}
	}
	return set
}

func TestNextBatchReturnsRemainder(t *testing.T) {
	pool := make(map[string]struct{})
	for i := 1; i <= 7; i++ {
		pool[fmt.Sprintf("https://site%d.in", i)] = struct{}{}
	}
	visited := setOf(
		"https://site1.in", "https://site2.in", "https://site3.in",
		"https://site4.in", "https://site5.in",
	)

	batch, err := NextBatch(pool, visited, 5)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://site6.in", "https://site7.in"}, batch)
}

func TestNextBatchTruncatesToSize(t *testing.T) {
	pool := setOf("https://a.in", "https://b.in", "https://c.in")

	batch, err := NextBatch(pool, nil, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.in", "https://b.in"}, batch)
}

func TestNextBatchDeterministic(t *testing.T) {
	pool := setOf("https://c.in", "https://a.in", "https://b.in")
	visited := setOf("https://b.in")

	first, err := NextBatch(pool, visited, 10)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := NextBatch(pool, visited, 10)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestNextBatchEmptyPool(t *testing.T) {
	_, err := NextBatch(nil, setOf("https://a.in"), 5)
	assert.ErrorIs(t, err, ErrNoPool)
}

func TestNextBatchExhaustedPool(t *testing.T) {
	pool := setOf("https://a.in", "https://b.in")
	visited := setOf("https://a.in", "https://b.in")

	_, err := NextBatch(pool, visited, 5)
	assert.ErrorIs(t, err, ErrPoolExhausted)
}
