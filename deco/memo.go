package deco

import (
	"fmt"

	"github.com/on-the-ground/deco_ive_go/store"
)

// MemoOption configures MemoWith.
type MemoOption[T, R any] func(*memoConfig[T, R])

type memoConfig[T, R any] struct {
	store store.Store[R]
	keyFn func(Args[T]) ([]store.Key, error)
}

// WithStore sets the cache backend. The default is an unbounded store.Trie
// private to each wrapper; a store passed here is shared by every function the
// resulting combinator is applied to.
func WithStore[T, R any](s store.Store[R]) MemoOption[T, R] {
	return func(cfg *memoConfig[T, R]) {
		cfg.store = s
	}
}

// WithKeyFunc replaces the structural key derivation. keyFn must return
// comparable values.
func WithKeyFunc[T, R any](keyFn func(Args[T]) []store.Key) MemoOption[T, R] {
	return func(cfg *memoConfig[T, R]) {
		cfg.keyFn = func(a Args[T]) ([]store.Key, error) {
			return arityPrefixed(keyFn(a)), nil
		}
	}
}

// Memo caches the results of f by argument values in an unbounded store.
func Memo[T, R any](f *Func[T, R]) *Func[T, R] {
	return MemoWith[T, R]()(f)
}

// MemoWith returns a memoizing combinator.
//
// A cached result is returned without calling f, zero values included.
// Failed calls are not cached.
func MemoWith[T, R any](opts ...MemoOption[T, R]) Combinator[T, R] {
	return func(f *Func[T, R]) *Func[T, R] {
		cfg := memoConfig[T, R]{keyFn: argsKey[T]}
		for _, opt := range opts {
			opt(&cfg)
		}
		if cfg.store == nil {
			cfg.store = store.NewTrie[R]()
		}

		var g *Func[T, R]
		g = Wrap(f, func(a Args[T]) (R, error) {
			keys, err := cfg.keyFn(a)
			if err != nil {
				var zero R
				return zero, fmt.Errorf("%s: %w", g.Name(), err)
			}
			if v, ok := cfg.store.Load(keys); ok {
				g.State().cacheHits.Add(1)
				return v, nil
			}
			g.State().cacheMisses.Add(1)
			v, err := f.call(a)
			if err != nil {
				return v, err
			}
			cfg.store.Store(keys, v)
			return v, nil
		})
		Logger().Sugar().Debugf("created memo wrapper: name: %v, stateId: %v", g.Name(), g.State().ID())
		return g
	}
}
