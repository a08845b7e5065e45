// Package store holds the cache backends behind deco.Memo.
//
// A key is the ordered tuple of argument values of one call, already normalised
// to comparable values by the caller. Backends must tell "not cached" apart from
// "cached zero value": Load reports presence explicitly.
package store

// Key is one element of a cache key path.
type Key any

// Store is a memo cache keyed by argument tuples.
type Store[V any] interface {
	Load(keys []Key) (V, bool)
	Store(keys []Key, value V)
}
