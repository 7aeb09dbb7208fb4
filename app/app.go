// Package app holds the terminal program plumbing shared by the orrery binaries
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/trace"

	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/observability"
	"github.com/lixenwraith/orrery/parameter"
)

// Flags are the options every program accepts
type Flags struct {
	FPS         int
	LogPath     string
	LogLevel    string
	LogFormat   string
	TracePath   string
	MetricsPath string
	Mute        bool
}

// Register binds the common flags to fs
func (f *Flags) Register(fs *flag.FlagSet) {
	fs.IntVar(&f.FPS, "fps", parameter.DefaultFPS, "Frames per second")
	fs.StringVar(&f.LogPath, "log", "", "Log file path (empty discards logs)")
	fs.StringVar(&f.LogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	fs.StringVar(&f.LogFormat, "log-format", "text", "Log format: text or json")
	fs.StringVar(&f.TracePath, "trace", "", "Write trace spans to this file")
	fs.StringVar(&f.MetricsPath, "metrics", "", "Write a metrics snapshot to this file on exit")
	fs.BoolVar(&f.Mute, "mute", false, "Disable audio")
}

// Interval converts the frame rate into a loop period clamped to [1, MaxFPS] frames per second
func (f Flags) Interval() time.Duration {
	fps := f.FPS
	if fps <= 0 {
		fps = parameter.DefaultFPS
	}
	fps = min(fps, parameter.MaxFPS)
	return time.Second / time.Duration(fps)
}

// Runtime is the ambient stack of one program run
type Runtime struct {
	Name     string
	Logger   logging.Logger
	Registry *prometheus.Registry
	Metrics  *observability.Collector
	Tracer   trace.Tracer

	metricsPath string
	closers     []func(context.Context) error
}

// Start opens the log and trace files and registers metrics
// Files opened before a failure are closed before returning
func Start(ctx context.Context, name string, f Flags) (*Runtime, error) {
	rt := &Runtime{Name: name, metricsPath: f.MetricsPath}

	logOut, err := logging.OpenFile(f.LogPath)
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}
	rt.closers = append(rt.closers, func(context.Context) error { return logOut.Close() })

	base := logging.New(logging.Config{Level: f.LogLevel, Format: f.LogFormat, Writer: logOut})
	logger, session := logging.WithSession(base.With(logging.String("program", name)))
	rt.Logger = logger

	var traceOut io.WriteCloser
	if f.TracePath != "" {
		if traceOut, err = os.OpenFile(f.TracePath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644); err != nil {
			rt.Close(ctx)
			return nil, fmt.Errorf("open trace output: %w", err)
		}
	}
	shutdown, err := observability.InitTracing(ctx, observability.TracingConfig{
		Enabled:     traceOut != nil,
		ServiceName: name,
		Writer:      traceOut,
		SampleRatio: 1,
	}, logger)
	if err != nil {
		if traceOut != nil {
			traceOut.Close()
		}
		rt.Close(ctx)
		return nil, fmt.Errorf("init tracing: %w", err)
	}
	// Flush spans before the file closes; closers run in reverse
	if traceOut != nil {
		rt.closers = append(rt.closers, func(context.Context) error { return traceOut.Close() })
	}
	rt.closers = append(rt.closers, func(ctx context.Context) error {
		observability.ShutdownWithTimeout(ctx, shutdown, logger)
		return nil
	})
	rt.Tracer = observability.Tracer()

	rt.Registry = prometheus.NewRegistry()
	if rt.Metrics, err = observability.NewCollector(rt.Registry); err != nil {
		rt.Close(ctx)
		return nil, fmt.Errorf("register metrics: %w", err)
	}

	logger.Info(ctx, "starting", logging.String("session", session), logging.Duration("interval", f.Interval()))
	return rt, nil
}

// Close writes the metrics snapshot and releases files in reverse order of opening
func (rt *Runtime) Close(ctx context.Context) error {
	var errs []error
	if rt.metricsPath != "" && rt.Registry != nil {
		if err := prometheus.WriteToTextfile(rt.metricsPath, rt.Registry); err != nil {
			errs = append(errs, fmt.Errorf("write metrics: %w", err))
		}
		rt.metricsPath = ""
	}
	if rt.Logger != nil {
		rt.Logger.Info(ctx, "stopped")
	}
	for i := len(rt.closers) - 1; i >= 0; i-- {
		if err := rt.closers[i](ctx); err != nil {
			errs = append(errs, err)
		}
	}
	rt.closers = nil
	return errors.Join(errs...)
}

// OpenScreen initializes the terminal with mouse reporting
func OpenScreen() (tcell.Screen, error) {
	screen, err := tcell.NewScreen()
	if err != nil {
		return nil, err
	}
	if err := screen.Init(); err != nil {
		return nil, err
	}
	screen.EnableMouse()
	screen.HideCursor()
	screen.Clear()
	return screen, nil
}

// Crash is the unified panic handler: it restores the terminal and prints the stack trace
func Crash(screen tcell.Screen, what string, r any) {
	if r == nil {
		return
	}
	if screen != nil {
		screen.Fini()
	}

	os.Stdout.Sync()
	fmt.Fprintf(os.Stderr, "\n\x1b[31m%s CRASHED: %v\x1b[0m\n", what, r)
	fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
	os.Stderr.Sync()

	os.Exit(1)
}

// Go runs fn in a new goroutine with panic recovery
// Use this instead of the 'go' keyword so a crash still resets the terminal
func Go(screen tcell.Screen, what string, fn func()) {
	go func() {
		defer func() {
			if r := recover(); r != nil {
				Crash(screen, what, r)
			}
		}()
		fn()
	}()
}

// Poll forwards screen events until the screen is finalized, then closes events
func Poll(screen tcell.Screen, events chan<- tcell.Event) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			close(events)
			return
		}
		events <- ev
	}
}
