package deco

import (
	"io"
	"os"
	"time"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// TraceOption configures Trace.
type TraceOption func(*traceConfig)

type traceConfig struct {
	out   io.Writer
	sinks []TraceSink
}

// WithWriter sends trace lines to w instead of standard output.
// A nil writer turns line output off.
func WithWriter(w io.Writer) TraceOption {
	return func(cfg *traceConfig) {
		cfg.out = w
	}
}

// WithLogger also reports every trace event to logger.
func WithLogger(logger *zap.Logger) TraceOption {
	return func(cfg *traceConfig) {
		if logger != nil {
			cfg.sinks = append(cfg.sinks, zapSink{logger: logger})
		}
	}
}

// WithSink also reports every trace event to sink.
func WithSink(sink TraceSink) TraceOption {
	return func(cfg *traceConfig) {
		if sink != nil {
			cfg.sinks = append(cfg.sinks, sink)
		}
	}
}

// Trace returns a combinator printing an enter line before and an exit line
// after every call, indented by indent once per level of nesting.
//
// Depth belongs to each wrapper the combinator produces. It goes up after the
// enter line and back down when the call returns, on every path including
// panics, so a failure never skews later indentation. Recursive calls are only
// nested if they go through the wrapper.
func Trace[T, R any](indent string, opts ...TraceOption) Combinator[T, R] {
	cfg := traceConfig{out: os.Stdout}
	for _, opt := range opts {
		opt(&cfg)
	}
	sinks := cfg.sinks
	if cfg.out != nil {
		sinks = append([]TraceSink{writerSink{w: cfg.out}}, sinks...)
	}
	emit := func(e TraceEvent) {
		for _, s := range sinks {
			s.Emit(e)
		}
	}

	return func(f *Func[T, R]) *Func[T, R] {
		depth := 0

		var g *Func[T, R]
		g = Wrap(f, func(a Args[T]) (R, error) {
			args := a.String()
			start := time.Now()
			emit(TraceEvent{
				Kind:   TraceEnter,
				Indent: indent,
				Depth:  depth,
				Name:   g.Name(),
				Args:   args,
				Span:   timespan.BetweenTimes(start, start),
			})

			res, err := func() (R, error) {
				depth++
				defer func() { depth-- }()
				return f.call(a)
			}()

			emit(TraceEvent{
				Kind:   TraceExit,
				Indent: indent,
				Depth:  depth,
				Name:   g.Name(),
				Args:   args,
				Result: res,
				Err:    err,
				Span:   timespan.BetweenTimes(start, time.Now()),
			})
			return res, err
		})
		Logger().Sugar().Debugf("created trace wrapper: name: %v, stateId: %v", g.Name(), g.State().ID())
		return g
	}
}
