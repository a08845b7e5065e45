package deco

import (
	"fmt"
	"io"
	"strings"

	"github.com/rickb777/date/v2/timespan"
	"go.uber.org/zap"
)

// TimeSpan is the interval a traced call took.
type TimeSpan = timespan.TimeSpan

// TraceKind tells an entry event from an exit event.
type TraceKind int

const (
	// TraceEnter is emitted before the traced function runs.
	TraceEnter TraceKind = iota
	// TraceExit is emitted after it returned.
	TraceExit
)

// TraceEvent is one line of a call trace.
type TraceEvent struct {
	Kind   TraceKind
	Indent string
	Depth  int
	Name   string
	Args   string
	Result any
	Err    error
	// Span covers the call on exit events and is empty on entry events.
	Span TimeSpan
}

// Line renders the event in trace format:
//
//	<indent*depth> --> name(args)
//	<indent*depth> <-- name(args) == result
//
// A failed call ends in " !! <error>" instead of " == <result>".
func (e TraceEvent) Line() string {
	prefix := strings.Repeat(e.Indent, e.Depth)
	if e.Kind == TraceEnter {
		return prefix + " --> " + e.Name + e.Args
	}
	if e.Err != nil {
		return prefix + " <-- " + e.Name + e.Args + " !! " + e.Err.Error()
	}
	return prefix + " <-- " + e.Name + e.Args + " == " + fmt.Sprint(e.Result)
}

// TraceSink receives trace events in call order.
type TraceSink interface {
	Emit(TraceEvent)
}

type writerSink struct {
	w io.Writer
}

func (s writerSink) Emit(e TraceEvent) {
	if _, err := io.WriteString(s.w, e.Line()+"\n"); err != nil {
		Logger().Warn("failed to write trace line", zap.Error(err))
	}
}

type zapSink struct {
	logger *zap.Logger
}

func (s zapSink) Emit(e TraceEvent) {
	fields := []zap.Field{
		zap.String("function", e.Name),
		zap.String("args", e.Args),
		zap.Int("depth", e.Depth),
	}

	switch {
	case e.Kind == TraceEnter:
		s.logger.Debug("enter", fields...)
	case e.Err != nil:
		fields = append(fields, zap.Duration("elapsed", e.Span.Duration()), zap.Error(e.Err))
		s.logger.Warn("exit with error", fields...)
	default:
		fields = append(fields, zap.Duration("elapsed", e.Span.Duration()), zap.Any("result", e.Result))
		s.logger.Debug("exit", fields...)
	}
}
