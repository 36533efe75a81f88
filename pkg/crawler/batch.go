package crawler

import (
	"errors"
	"sort"
)

// Batch selection sentinels. ErrNoPool means no search has populated the
// candidate pool yet; ErrPoolExhausted means every pooled URL has been
// visited and only a reset opens new work.
var (
	ErrNoPool        = errors.New("candidate pool is empty")
	ErrPoolExhausted = errors.New("all candidate urls have been visited")
)

// NextBatch returns up to size URLs from pool minus visited, in sorted
// order so repeated calls over unchanged state pick the same batch.
func NextBatch(pool, visited map[string]struct{}, size int) ([]string, error) {
	if len(pool) == 0 {
		return nil, ErrNoPool
	}

	remaining := make([]string, 0, len(pool))
	for u := range pool {
		if _, ok := visited[u]; !ok {
			remaining = append(remaining, u)
		}
	}
	if len(remaining) == 0 {
		return nil, ErrPoolExhausted
	}

	sort.Strings(remaining)
	if len(remaining) > size {
		remaining = remaining[:size]
	}
	return remaining, nil
}
