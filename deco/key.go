package deco

import (
	"fmt"
	"reflect"

	"github.com/on-the-ground/deco_ive_go/store"
)

// stringerKey keeps a stringified argument apart from a plain string argument
// with the same text.
type stringerKey struct {
	s string
}

// argsKey builds the cache key of a call: the arity, then every value in call
// order. Names of named arguments are not part of the key, so the same values
// passed under different names share an entry.
func argsKey[T any](a Args[T]) ([]store.Key, error) {
	vals := a.Values()
	keys := make([]store.Key, 0, len(vals)+1)
	keys = append(keys, len(vals))
	for _, v := range vals {
		k, err := tableKey(v)
		if err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, nil
}

// tableKey turns one argument into a comparable key element.
// Comparable values are their own key. Only fmt.Stringer values that cannot
// be compared are keyed by their string form.
func tableKey(v any) (store.Key, error) {
	if v == nil {
		return nil, nil
	}
	if reflect.TypeOf(v).Comparable() {
		return v, nil
	}
	if stringer, ok := v.(fmt.Stringer); ok {
		return stringerKey{s: stringer.String()}, nil
	}
	return nil, fmt.Errorf("%w: %T", ErrUnhashableArg, v)
}

// arityPrefixed guards a caller-supplied key path the same way argsKey does.
func arityPrefixed(keys []store.Key) []store.Key {
	return append([]store.Key{len(keys)}, keys...)
}
