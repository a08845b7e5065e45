package deco

// CountCalls counts every call to the returned wrapper before delegating to f.
// Attempts are counted, so calls that fail or panic are included.
// Stacked counters on the same function share one counter.
func CountCalls[T, R any](f *Func[T, R]) *Func[T, R] {
	var g *Func[T, R]
	g = Wrap(f, func(a Args[T]) (R, error) {
		g.State().countCall()
		return f.call(a)
	})
	Logger().Sugar().Debugf("created countcalls wrapper: name: %v, stateId: %v", g.Name(), g.State().ID())
	return g
}
