package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/orrery/app"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/sim"
)

var (
	presetFlag = flag.String("preset", "", "Initial preset (default from the preset table)")
	speedFlag  = flag.Float64("speed", parameter.SpeedDefault, "Simulation speed multiplier")
)

func main() {
	var flags app.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "threebody: %v\n", err)
		os.Exit(1)
	}
}

func run(flags app.Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Start(ctx, "threebody", flags)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())
	log := rt.Logger

	presets, err := catalog.DefaultPresets()
	if err != nil {
		return fmt.Errorf("load presets: %w", err)
	}
	tb, err := sim.NewThreeBody(presets, sim.ThreeBodyOptions{
		Preset:  *presetFlag,
		Speed:   *speedFlag,
		Logger:  log,
		Metrics: rt.Metrics,
		Tracer:  rt.Tracer,
	})
	if err != nil {
		return err
	}

	screen, err := app.OpenScreen()
	if err != nil {
		return fmt.Errorf("initialize terminal: %w", err)
	}
	defer screen.Fini()
	// Panic Recovery: Ensure terminal is reset even if the loop crashes
	defer func() {
		if r := recover(); r != nil {
			app.Crash(screen, "THREEBODY", r)
		}
	}()

	renderer := render.NewRenderer(screen, nil)
	ed := newEditor(tb)

	events := make(chan tcell.Event, parameter.EventChannelSize)
	app.Go(screen, "EVENT POLLER", func() { app.Poll(screen, events) })

	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider(), parameter.MaxFrameDelta)
	loop := engine.NewLoop[tcell.Event](clock, flags.Interval())
	loop.OnEvent = func(ev tcell.Event) bool {
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		return ed.handle(ev)
	}
	loop.OnFrame = func(dt time.Duration) bool {
		renderer.Draw(ctx, tb.Tick(ctx, dt), ed.overlay())
		return true
	}

	err = loop.Run(ctx, events)
	log.Info(ctx, "session ended", logging.Int("frames", int(loop.Frames())))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
