package deco

import "fmt"

// NAry generalizes a binary f to one or more positional arguments:
//
//	g(x)          == x
//	g(x, y)       == f(x, y)
//	g(x, y, z...) == f(x, g(y, z...))
//
// The fold is to the right and f is not checked for associativity.
// Calling g without arguments, or with named ones, fails with ErrArity.
func NAry[T any](f *Func[T, T]) *Func[T, T] {
	var g *Func[T, T]
	g = Wrap(f, func(a Args[T]) (T, error) {
		var zero T
		if len(a.Named) > 0 {
			return zero, fmt.Errorf("%w: %s does not accept named arguments", ErrArity, g.Name())
		}

		args := a.Positional
		switch len(args) {
		case 0:
			return zero, fmt.Errorf("%w: %s needs at least 1 argument", ErrArity, g.Name())
		case 1:
			return args[0], nil
		case 2:
			return f.call(ArgsOf(args[0], args[1]))
		}

		rest, err := g.call(ArgsOf(args[1:]...))
		if err != nil {
			return zero, err
		}
		return f.call(ArgsOf(args[0], rest))
	})
	Logger().Sugar().Debugf("created n-ary wrapper: name: %v, stateId: %v", g.Name(), g.State().ID())
	return g
}
