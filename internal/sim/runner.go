package sim

import (
	"context"
	"time"

	"github.com/zeusync/statesched/internal/config"
	"github.com/zeusync/statesched/internal/core/observability/log"
)

// Populate spawns every configured object. Explicit abilities take precedence
// over the category's taxonomy abilities.
func Populate(w *World, entries []config.SpawnConfig) error {
	for _, entry := range entries {
		abilities := entry.Abilities
		if abilities == nil {
			abilities = w.taxonomy.Abilities(entry.Category)
		}
		if _, err := w.spawn(entry.Name, entry.Category, abilities); err != nil {
			return err
		}
	}
	return nil
}

// Run steps w once per cfg.TickRate with dt = cfg.Step() until cfg.Ticks
// steps have completed, or forever when cfg.Ticks is 0. It returns nil when
// ctx is cancelled. onStep observes every completed step and may be nil.
func Run(ctx context.Context, w *World, cfg config.SimulationConfig, onStep func(StepReport)) error {
	ticker := time.NewTicker(cfg.TickRate)
	defer ticker.Stop()

	dt := cfg.Step()
	for n := 0; cfg.Ticks == 0 || n < cfg.Ticks; n++ {
		if ctx.Err() == nil {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			}
		}
		if ctx.Err() != nil {
			w.log.Info("simulation stopped", log.Int("steps", n))
			return nil
		}

		report, err := w.Step(ctx, dt)
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
		if failed, skipped := report.Failures(); failed > 0 || skipped > 0 {
			w.log.Debug("step completed with isolated failures",
				log.Int("frame", int(report.Frame)), log.Int("failed", failed), log.Int("skipped", skipped))
		}
		if onStep != nil {
			onStep(report)
		}
	}
	return nil
}
