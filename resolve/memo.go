// Package resolve implements the resolution pipeline: a linear sequence
// of Stages that classify, validate, canonicalize, and link mentions.
package resolve

import lru "github.com/hashicorp/golang-lru/v2"

// defaultMemoCapacity bounds each stage's memoization LRU.
const defaultMemoCapacity = 10000

// Memo is a process-wide, bounded memoization cache for one stage's pure
// per-name computation. Keys must be exactly the post-normalization input
// string.
type Memo[V any] struct {
	cache *lru.Cache[string, V]
}

// NewMemo creates a memo with the given capacity (defaultMemoCapacity
// when capacity <= 0).
func NewMemo[V any](capacity int) *Memo[V] {
	if capacity <= 0 {
		capacity = defaultMemoCapacity
	}
	c, _ := lru.New[string, V](capacity)
	return &Memo[V]{cache: c}
}

// Get returns the cached value for key, if present.
func (m *Memo[V]) Get(key string) (V, bool) {
	return m.cache.Get(key)
}

// Put stores value under key, evicting the least-recently-used entry if
// the memo is at capacity.
func (m *Memo[V]) Put(key string, value V) {
	m.cache.Add(key, value)
}

// Purge evicts every cached entry, forcing the next lookup for any key
// back out to the backing client.
func (m *Memo[V]) Purge() {
	m.cache.Purge()
}
