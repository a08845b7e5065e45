package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/on-the-ground/deco_ive_go/deco"
	"github.com/on-the-ground/deco_ive_go/metrics"
	"github.com/on-the-ground/deco_ive_go/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.uber.org/zap"
)

type config struct {
	indent  string
	fibArg  int
	noMemo  bool
	report  bool
	metrics bool
	verbose bool
}

func parseFlags(args []string) (config, error) {
	var cfg config
	fs := flag.NewFlagSet("decodemo", flag.ContinueOnError)
	fs.StringVar(&cfg.indent, "indent", "####", "indentation token of the fib trace")
	fs.IntVar(&cfg.fibArg, "fib", 6, "argument passed to fib")
	fs.BoolVar(&cfg.noMemo, "no-memo", false, "replace memoization with a pass-through")
	fs.BoolVar(&cfg.report, "report", false, "print a per-function counter report")
	fs.BoolVar(&cfg.metrics, "metrics", false, "dump Prometheus metrics of the demo functions")
	fs.BoolVar(&cfg.verbose, "v", false, "log debug output")
	if err := fs.Parse(args); err != nil {
		return config{}, err
	}
	if cfg.fibArg < 1 {
		cfg.fibArg = 1
	}
	return cfg, nil
}

func main() {
	cfg, err := parseFlags(os.Args[1:])
	if err != nil {
		os.Exit(2)
	}

	logger, _ := zap.NewProduction()
	if cfg.verbose {
		logger, _ = zap.NewDevelopment()
	}
	defer func() {
		_ = logger.Sync()
	}()
	deco.SetLogger(logger)

	if err := run(os.Stdout, cfg); err != nil {
		logger.Fatal("demo failed", zap.Error(err))
	}
}

func run(out io.Writer, cfg config) error {
	memo := deco.Combinator[int, int](deco.Memo[int, int])
	if cfg.noMemo {
		memo = deco.Decorator[int, int]
	}

	reg, err := registry.New()
	if err != nil {
		return err
	}

	var (
		promReg   *prometheus.Registry
		collector *metrics.Collector
	)
	instrument := deco.Combinator[int, int](deco.Decorator[int, int])
	if cfg.metrics {
		promReg = prometheus.NewRegistry()
		collector = metrics.NewCollectorWithRegistry(promReg)
		instrument = metrics.Instrument[int, int](collector)
	}

	foo := deco.Chain(
		deco.Binary("foo", "Adds two numbers.", func(a, b int) (int, error) { return a + b, nil }),
		instrument,
		deco.NAry[int],
		memo,
		deco.CountCalls[int, int],
	)

	bar := deco.Chain(
		deco.Binary("bar", "Multiplies two numbers.", func(a, b int) (int, error) { return a * b, nil }),
		instrument,
		memo,
		deco.NAry[int],
		deco.CountCalls[int, int],
	)

	var fib *deco.Func[int, int]
	fib = deco.Chain(
		deco.Unary("fib", "Some doc", func(n int) (int, error) {
			if n <= 2 {
				return 1, nil
			}
			a, err := fib.Call(n - 1)
			if err != nil {
				return 0, err
			}
			b, err := fib.Call(n - 2)
			if err != nil {
				return 0, err
			}
			return a + b, nil
		}),
		instrument,
		deco.Trace[int, int](cfg.indent, deco.WithWriter(out)),
		memo,
		deco.CountCalls[int, int],
	)

	for _, f := range []*deco.Func[int, int]{foo, bar, fib} {
		if _, err := reg.Register(f); err != nil {
			return err
		}
		if err := collector.Watch(f); err != nil {
			return err
		}
	}

	for _, args := range [][]int{{4, 3, 2}, {4, 3}, {4}} {
		if err := printCall(out, foo, args...); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "foo was called", foo.Calls(), "times")

	for _, args := range [][]int{{4, 3}, {4, 3, 2}, {4, 3, 2, 1}} {
		if err := printCall(out, bar, args...); err != nil {
			return err
		}
	}
	fmt.Fprintln(out, "bar was called", bar.Calls(), "times")

	if _, err := fib.Call(cfg.fibArg); err != nil {
		return err
	}
	fmt.Fprintln(out, fib.Calls(), "calls made")

	if cfg.report {
		if err := printReport(out, reg); err != nil {
			return err
		}
	}
	if cfg.metrics {
		return printMetrics(out, promReg)
	}
	return nil
}

func printCall(out io.Writer, f *deco.Func[int, int], args ...int) error {
	res, err := f.Call(args...)
	if err != nil {
		return err
	}
	fmt.Fprintln(out, res)
	return nil
}

func printReport(out io.Writer, reg *registry.Registry) error {
	entries, err := reg.All()
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "%-6s %6s %6s %6s\n", "name", "calls", "hits", "misses")
	for _, e := range entries {
		fmt.Fprintf(out, "%-6s %6d %6d %6d\n", e.Name, e.State.Calls(), e.State.CacheHits(), e.State.CacheMisses())
	}
	return nil
}

func printMetrics(out io.Writer, reg prometheus.Gatherer) error {
	families, err := reg.Gather()
	if err != nil {
		return fmt.Errorf("failed to gather metrics: %w", err)
	}
	for _, mf := range families {
		if _, err := expfmt.MetricFamilyToText(out, mf); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}
	return nil
}
