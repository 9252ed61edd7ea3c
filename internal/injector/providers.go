package injector

import (
	"github.com/google/wire"

	"github.com/zeusync/statesched/internal/config"
	"github.com/zeusync/statesched/internal/core/events/bus"
	"github.com/zeusync/statesched/internal/core/observability/log"
	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/internal/core/states/catalog"
	"github.com/zeusync/statesched/internal/sim"
	"github.com/zeusync/statesched/internal/taxonomy"
)

// App is the fully wired host.
type App struct {
	Config *config.Config
	Log    log.Log
	Bus    bus.EventBus
	World  *sim.World
}

var ProviderSet = wire.NewSet(
	ProvideLogger,
	ProvideBus,
	ProvideRegistry,
	ProvideTaxonomy,
	ProvideWorld,
)

func ProvideLogger(cfg *config.Config) log.Log {
	return log.NewWithEncoding(log.ParseLevel(cfg.Logging.Level), cfg.Logging.Encoding)
}

func ProvideBus() bus.EventBus {
	return bus.New()
}

// ProvideRegistry builds and freezes the standard catalog.
func ProvideRegistry(l log.Log) (*states.Registry, error) {
	return catalog.New(states.WithLogger(l.Named("states")))
}

// ProvideTaxonomy loads the configured taxonomy and checks it against the
// catalog. No path means no category lookup.
func ProvideTaxonomy(cfg *config.Config, reg *states.Registry) (*taxonomy.Taxonomy, error) {
	if cfg.Taxonomy.Path == "" {
		return taxonomy.Empty(), nil
	}
	tax, err := taxonomy.Load(cfg.Taxonomy.Path)
	if err != nil {
		return nil, err
	}
	if err := tax.Validate(reg); err != nil {
		return nil, err
	}
	return tax, nil
}

func ProvideWorld(cfg *config.Config, reg *states.Registry, tax *taxonomy.Taxonomy, b bus.EventBus, l log.Log) (*sim.World, error) {
	opts := []sim.Option{
		sim.WithTaxonomy(tax),
		sim.WithBus(b),
		sim.WithLogger(l.Named("sim")),
	}
	if cfg.Simulation.Parallel {
		opts = append(opts, sim.WithParallel(cfg.Simulation.Workers))
	}
	return sim.NewWorld(reg, opts...)
}
