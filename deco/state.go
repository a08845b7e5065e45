package deco

import (
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// State is the mutable bag shared by every wrapper stacked around one
// function. Each combinator owns a named field in it.
type State struct {
	id uuid.UUID

	calls   atomic.Int64
	counted atomic.Bool

	cacheHits   atomic.Int64
	cacheMisses atomic.Int64

	attrs sync.Map
}

func newState() *State {
	return &State{id: uuid.New()}
}

// ID identifies the bag. Wrappers sharing a bag report the same ID.
func (s *State) ID() string {
	return s.id.String()
}

// Calls returns the number of counted invocations, 0 if none were counted.
func (s *State) Calls() int64 {
	return s.calls.Load()
}

// LookupCalls returns the call counter and whether any CountCalls layer has
// recorded a call yet.
func (s *State) LookupCalls() (int64, bool) {
	return s.calls.Load(), s.counted.Load()
}

// CacheHits returns the number of calls answered from a memo cache.
func (s *State) CacheHits() int64 {
	return s.cacheHits.Load()
}

// CacheMisses returns the number of calls a memo cache had to compute.
func (s *State) CacheMisses() int64 {
	return s.cacheMisses.Load()
}

// SetAttr stores a custom attribute, for combinators built outside this package.
func (s *State) SetAttr(name string, value any) {
	s.attrs.Store(name, value)
}

// Attr returns a custom attribute and whether it is set.
func (s *State) Attr(name string) (any, bool) {
	return s.attrs.Load(name)
}

// AttrOf returns a custom attribute asserted to T.
// ok is false if the attribute is missing or has another type.
func AttrOf[T any](s *State, name string) (res T, ok bool) {
	var raw any
	if raw, ok = s.Attr(name); ok {
		res, ok = raw.(T)
	}
	return
}

func (s *State) countCall() {
	s.counted.Store(true)
	s.calls.Add(1)
}
