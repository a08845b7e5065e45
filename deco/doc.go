// Package deco provides function-wrapping combinators ("decorators") that add
// cross-cutting behavior to a function without touching its logic.
//
// A decorator is only useful if it can be stacked. Every combinator here takes
// a *Func and returns a new *Func that keeps the identity of what it wrapped:
//
//	→ the name and documentation of the innermost function,
//	→ the State bag holding call counters and cache statistics.
//
// The State bag is shared by pointer, not copied. A counter attached by an inner
// CountCalls stays readable through any number of outer wrappers, and each
// combinator keeps its own named field in the bag so they never collide.
//
// Combinators:
//   - CountCalls: counts invocation attempts.
//   - Memo / MemoWith: caches results by argument values, presence-checked.
//   - NAry: turns a binary function into a right fold over 1..N arguments.
//   - Trace: prints an indented enter/exit line per call.
//   - Disable and Decorator: the neutral elements used to switch a combinator off
//     at the binding site or as a template for new ones.
//
// Chain applies combinators in the order they would be written as stacked
// decorators, outermost first:
//
//	foo := deco.Chain(
//	    deco.Binary("foo", "adds two numbers", add),
//	    deco.NAry[int],
//	    deco.Memo[int, int],
//	    deco.CountCalls[int, int],
//	)
//
// Recursive functions are traced and memoized at every level only if they call
// themselves through the wrapped binding, not through the raw function:
//
//	var fib *deco.Func[int, int]
//	fib = deco.Chain(deco.Unary("fib", "", func(n int) (int, error) {
//	    ...
//	    a, err := fib.Call(n - 1)
//	    ...
//	}), deco.Trace[int, int]("####"), deco.Memo[int, int])
//
// WARNING: the package makes no thread-safety promise. Counters are atomic, but
// trace depth and output interleaving assume one caller at a time.
package deco
