package deco

// Combinator wraps a function and returns the wrapper.
type Combinator[T, R any] func(*Func[T, R]) *Func[T, R]

// Chain applies cs to f in stacked-decorator order: the first combinator ends
// up outermost, the last one wraps f directly.
func Chain[T, R any](f *Func[T, R], cs ...Combinator[T, R]) *Func[T, R] {
	for i := len(cs) - 1; i >= 0; i-- {
		f = cs[i](f)
	}
	return f
}

// Disable calls f for its effects and discards the result. Binding a
// combinator variable to Disable switches off the whole decorated function
// while keeping its errors visible.
func Disable[T, R any](f *Func[T, R]) *Func[T, R] {
	return Wrap(f, func(a Args[T]) (R, error) {
		var zero R
		_, err := f.call(a)
		return zero, err
	})
}

// Decorator is the identity combinator: it forwards every call to f and
// keeps f's identity. It serves as a template for new combinators and as a
// no-op replacement for one.
func Decorator[T, R any](f *Func[T, R]) *Func[T, R] {
	return Wrap(f, f.call)
}
