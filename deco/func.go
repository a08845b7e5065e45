package deco

import (
	"fmt"
	"slices"
	"strings"
)

// NamedArg is an argument passed by name.
type NamedArg[T any] struct {
	Name  string
	Value T
}

// Named builds a NamedArg.
func Named[T any](name string, value T) NamedArg[T] {
	return NamedArg[T]{Name: name, Value: value}
}

// Args is the argument list of a single call.
type Args[T any] struct {
	Positional []T
	Named      []NamedArg[T]
}

// ArgsOf returns positional-only arguments.
func ArgsOf[T any](positional ...T) Args[T] {
	return Args[T]{Positional: positional}
}

// With returns a copy of a with named arguments appended.
func (a Args[T]) With(named ...NamedArg[T]) Args[T] {
	return Args[T]{
		Positional: a.Positional,
		Named:      append(slices.Clone(a.Named), named...),
	}
}

// Len returns the total number of arguments.
func (a Args[T]) Len() int {
	return len(a.Positional) + len(a.Named)
}

// Values returns positional values followed by named values, both in call
// order. Names are dropped.
func (a Args[T]) Values() []T {
	vals := make([]T, 0, a.Len())
	vals = append(vals, a.Positional...)
	for _, n := range a.Named {
		vals = append(vals, n.Value)
	}
	return vals
}

// String renders the positional arguments as "(a, b, c)".
func (a Args[T]) String() string {
	strs := make([]string, len(a.Positional))
	for i, v := range a.Positional {
		strs[i] = fmt.Sprint(v)
	}
	return "(" + strings.Join(strs, ", ") + ")"
}

// Func is a function together with its identity.
// Use the constructors; the zero value is not callable.
type Func[T, R any] struct {
	Identity
	call func(Args[T]) (R, error)
}

// NewFunc wraps fn, which receives the full argument list including names.
func NewFunc[T, R any](name, doc string, fn func(Args[T]) (R, error)) *Func[T, R] {
	f := &Func[T, R]{
		Identity: newIdentity(name, doc),
		call:     fn,
	}
	Logger().Sugar().Debugf("created func: name: %v, stateId: %v", name, f.State().ID())
	return f
}

// New wraps a variadic fn. Named arguments reach fn as trailing values.
func New[T, R any](name, doc string, fn func(args ...T) (R, error)) *Func[T, R] {
	return NewFunc(name, doc, func(a Args[T]) (R, error) {
		return fn(a.Values()...)
	})
}

// Unary wraps a one-argument fn. Any other arity fails with ErrArity.
func Unary[T, R any](name, doc string, fn func(T) (R, error)) *Func[T, R] {
	return NewFunc(name, doc, func(a Args[T]) (R, error) {
		vals := a.Values()
		if len(vals) != 1 {
			var zero R
			return zero, fmt.Errorf("%w: %s takes 1 argument, got %d", ErrArity, name, len(vals))
		}
		return fn(vals[0])
	})
}

// Binary wraps a two-argument fn. Any other arity fails with ErrArity.
func Binary[T, R any](name, doc string, fn func(T, T) (R, error)) *Func[T, R] {
	return NewFunc(name, doc, func(a Args[T]) (R, error) {
		vals := a.Values()
		if len(vals) != 2 {
			var zero R
			return zero, fmt.Errorf("%w: %s takes 2 arguments, got %d", ErrArity, name, len(vals))
		}
		return fn(vals[0], vals[1])
	})
}

// Wrap builds a wrapper around src whose body is call, and propagates src's
// identity onto it. It is the building block of every combinator.
func Wrap[T, R, U, S any](src *Func[T, R], call func(Args[U]) (S, error)) *Func[U, S] {
	g := &Func[U, S]{call: call}
	Propagate(&g.Identity, &src.Identity)
	return g
}

// Call invokes f with positional arguments.
func (f *Func[T, R]) Call(args ...T) (R, error) {
	return f.call(ArgsOf(args...))
}

// CallArgs invokes f with a full argument list.
func (f *Func[T, R]) CallArgs(a Args[T]) (R, error) {
	return f.call(a)
}

// Fn returns f as a plain Go function value.
func (f *Func[T, R]) Fn() func(args ...T) (R, error) {
	return f.Call
}
