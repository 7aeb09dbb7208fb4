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
	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/catalog"
	"github.com/lixenwraith/orrery/engine"
	"github.com/lixenwraith/orrery/logging"
	"github.com/lixenwraith/orrery/parameter"
	"github.com/lixenwraith/orrery/render"
	"github.com/lixenwraith/orrery/sim"
)

var (
	timeScaleFlag = flag.Float64("timescale", 1, "Initial time scale (simulated seconds per real second multiplier)")
	seedFlag      = flag.Uint64("seed", parameter.DefaultSeed, "Seed for orbital phases and the asteroid belt")
	texturesFlag  = flag.String("textures", "", "Directory holding body texture images")
)

func main() {
	var flags app.Flags
	flags.Register(flag.CommandLine)
	flag.Parse()

	if err := run(flags); err != nil {
		fmt.Fprintf(os.Stderr, "orrery: %v\n", err)
		os.Exit(1)
	}
}

func run(flags app.Flags) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rt, err := app.Start(ctx, "orrery", flags)
	if err != nil {
		return err
	}
	defer rt.Close(context.Background())
	log := rt.Logger

	cat, err := catalog.DefaultSolarSystem()
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}
	cat.Sanitize(ctx, log)

	player := audio.NewPlayer(flags.Mute)
	if err := player.Init(); err != nil {
		log.Warn(ctx, "audio unavailable, continuing without sound", logging.Err(err))
	}
	defer player.Close()

	orr, err := sim.NewOrrery(cat, sim.OrreryOptions{
		TimeScale: *timeScaleFlag,
		Seed:      *seedFlag,
		Logger:    log,
		Metrics:   rt.Metrics,
		Tracer:    rt.Tracer,
		OnArrive: func(stop string) {
			if err := player.Chime(stop == cat.Sun.Name); err != nil {
				log.Warn(ctx, "chime failed", logging.Err(err))
			}
		},
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
			app.Crash(screen, "ORRERY", r)
		}
	}()

	renderer := render.NewRenderer(screen, render.NewTextureLoader(*texturesFlag, log))
	ctl := newController(orr, renderer)

	events := make(chan tcell.Event, parameter.EventChannelSize)
	app.Go(screen, "EVENT POLLER", func() { app.Poll(screen, events) })

	clock := engine.NewFrameClock(engine.NewMonotonicTimeProvider(), parameter.MaxFrameDelta)
	loop := engine.NewLoop[tcell.Event](clock, flags.Interval())
	loop.OnEvent = func(ev tcell.Event) bool {
		if _, ok := ev.(*tcell.EventResize); ok {
			screen.Sync()
		}
		return ctl.handle(ev)
	}
	loop.OnFrame = func(dt time.Duration) bool {
		renderer.Draw(ctx, orr.Tick(ctx, dt), render.Overlay{})
		return true
	}

	err = loop.Run(ctx, events)
	log.Info(ctx, "session ended", logging.Int("frames", int(loop.Frames())))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
