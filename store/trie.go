package store

import (
	"sync"
	"sync/atomic"
)

var _ Store[int] = (*Trie[int])(nil)

// Trie is an unbounded cache where each key element selects one level.
// Entries are never evicted.
//
// All key paths stored under one node must have the same length, otherwise a
// leaf value and an inner level would compete for the same slot. Callers get
// that for free by starting every path with the arity of the call.
type Trie[V any] struct {
	root *sync.Map
	size atomic.Int64
}

// NewTrie returns an empty trie.
func NewTrie[V any]() *Trie[V] {
	return &Trie[V]{root: &sync.Map{}}
}

// Load returns the value stored under keys and whether it was present.
func (t *Trie[V]) Load(keys []Key) (V, bool) {
	var zero V
	m, k, ok := t.lookup(keys)
	if !ok {
		return zero, false
	}
	v, ok := m.Load(k)
	if !ok {
		return zero, false
	}
	return v.(V), true
}

// Store puts value under keys, replacing any previous value.
func (t *Trie[V]) Store(keys []Key, value V) {
	m, k := t.traverse(keys)
	if _, loaded := m.Swap(k, value); !loaded {
		t.size.Add(1)
	}
}

// Len reports the number of stored entries.
func (t *Trie[V]) Len() int {
	return int(t.size.Load())
}

// lookup walks the levels without creating missing ones.
func (t *Trie[V]) lookup(keys []Key) (*sync.Map, Key, bool) {
	length := len(keys)
	if length == 0 {
		panic("lookup: empty keys")
	}

	m := t.root
	for _, k := range keys[:length-1] {
		v, ok := m.Load(k)
		if !ok {
			return nil, nil, false
		}
		m = v.(*sync.Map)
	}
	return m, keys[length-1], true
}

func (t *Trie[V]) traverse(keys []Key) (*sync.Map, Key) {
	length := len(keys)
	if length == 0 {
		panic("traverse: empty keys")
	}

	m := t.root
	for _, k := range keys[:length-1] {
		v, _ := m.LoadOrStore(k, &sync.Map{})
		m = v.(*sync.Map)
	}
	return m, keys[length-1]
}
