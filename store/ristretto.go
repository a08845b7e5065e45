package store

import (
	"fmt"
	"strings"

	"github.com/cespare/xxhash/v2"
	ristretto "github.com/dgraph-io/ristretto/v2"
)

var _ Store[int] = (*Ristretto[int])(nil)

// Ristretto is a bounded cache backed by ristretto. Unlike Trie it may evict
// entries or refuse to admit them, so a memoized function wired to it can be
// called again for a key it has already seen.
type Ristretto[V any] struct {
	cache *ristretto.Cache[string, V]
}

// NewRistretto returns a store holding roughly maxEntries values.
// Non-positive sizes fall back to 1.
func NewRistretto[V any](maxEntries int) (*Ristretto[V], error) {
	if maxEntries <= 0 {
		maxEntries = 1
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, V]{
		NumCounters:        int64(maxEntries) * 10,
		MaxCost:            int64(maxEntries),
		BufferItems:        64,
		IgnoreInternalCost: true,
		KeyToHash:          hashKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create ristretto cache: %w", err)
	}
	return &Ristretto[V]{cache: cache}, nil
}

// Load returns the value stored under keys and whether it was present.
func (r *Ristretto[V]) Load(keys []Key) (V, bool) {
	return r.cache.Get(encodeKeys(keys))
}

// Store puts value under keys. The write is flushed before Store returns so a
// following Load observes it, unless the admission policy rejected it.
func (r *Ristretto[V]) Store(keys []Key, value V) {
	r.cache.Set(encodeKeys(keys), value, 1)
	r.cache.Wait()
}

// Close stops the cache's background goroutines.
func (r *Ristretto[V]) Close() {
	r.cache.Close()
}

// encodeKeys flattens a key path into a single string. Every element is
// written as its type and its text, each prefixed with its length, so that
// 1 and "1" stay distinct and no element can pass for two.
func encodeKeys(keys []Key) string {
	var b strings.Builder
	for _, k := range keys {
		typ := fmt.Sprintf("%T", k)
		val := fmt.Sprint(k)
		fmt.Fprintf(&b, "%d:%s%d:%s", len(typ), typ, len(val), val)
	}
	return b.String()
}

// hashKey returns the bucket hash and the conflict hash ristretto uses to
// tell colliding keys apart.
func hashKey(key string) (uint64, uint64) {
	conflict := xxhash.New()
	_, _ = conflict.WriteString("conflict:")
	_, _ = conflict.WriteString(key)
	return xxhash.Sum64String(key), conflict.Sum64()
}
