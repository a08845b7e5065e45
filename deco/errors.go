package deco

import "errors"

// ErrArity is returned when a function is called with a number of arguments it
// cannot accept.
var ErrArity = errors.New("wrong number of arguments")

// ErrUnhashableArg is returned by Memo when an argument can neither be used as
// a cache key nor stringified into one.
var ErrUnhashableArg = errors.New("argument cannot be used as cache key")
