package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"

	"github.com/zeusync/statesched/internal/config"
	"github.com/zeusync/statesched/internal/core/events/bus"
	"github.com/zeusync/statesched/internal/core/observability/log"
	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/internal/injector"
	"github.com/zeusync/statesched/internal/sim"
	"github.com/zeusync/statesched/pkg/sequence"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := config.Path()
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	app, err := injector.InitializeApp(cfg)
	if err != nil {
		return fmt.Errorf("initialize: %w", err)
	}
	logger := app.Log
	defer func() { _ = logger.Sync() }()

	reg := app.World.Registry()
	logger.Info("state catalog ready",
		log.String("config", cfgPath),
		log.Int("kinds", reg.Len()),
		log.Int("abilities", len(reg.Abilities())),
		log.Uint64("fingerprint", reg.Fingerprint()),
	)
	logger.Debug("global update order", log.Strings("order", reg.Order()))

	if err := sim.Populate(app.World, cfg.Spawn); err != nil {
		return fmt.Errorf("spawn: %w", err)
	}
	logger.Info("objects spawned", log.Strings("objects", app.World.Names()))
	logger.Info("simulation starting",
		log.Duration("tick_rate", cfg.Simulation.TickRate),
		log.Int("ticks", cfg.Simulation.Ticks),
		log.Bool("parallel", cfg.Simulation.Parallel),
	)

	var failures atomic.Uint64
	sub, err := app.Bus.Subscribe(states.EventUpdateFailed, func(bus.Event) error {
		failures.Add(1)
		return nil
	})
	if err != nil {
		return fmt.Errorf("subscribe: %w", err)
	}
	defer func() { _ = app.Bus.Unsubscribe(sub) }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := sim.Run(ctx, app.World, cfg.Simulation, nil); err != nil {
		return fmt.Errorf("simulate: %w", err)
	}

	effects := app.World.AllEffects()
	for name := range sequence.Keys(effects).Seq() {
		fx := effects[name]
		logger.Info("object effects",
			log.String("object", name),
			log.Bool("fire", fx.Fire),
			log.Bool("steam", fx.Steam),
			log.String("texture", fx.Texture),
		)
	}

	metrics := app.Bus.GetMetrics()
	logger.Info("simulation finished",
		log.Int("frames", int(app.World.Frame())),
		log.Float64("elapsed", app.World.Elapsed()),
		log.Uint64("events", metrics.Published),
		log.Uint64("failed_updates", failures.Load()),
	)
	return nil
}
