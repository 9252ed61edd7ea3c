// Package sim is the reference host: it owns the simulated objects, attaches
// their state instances through the scheduler, and steps them every tick.
package sim

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/zeusync/statesched/internal/core/events/bus"
	"github.com/zeusync/statesched/internal/core/observability/log"
	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/internal/taxonomy"
	"github.com/zeusync/statesched/pkg/concurrent"
	"github.com/zeusync/statesched/pkg/sequence"
)

var (
	ErrUnknownObject   = errors.New("unknown object")
	ErrDuplicateObject = errors.New("duplicate object")
)

// Object is one simulated object and the entity carrying its states.
type Object struct {
	Name      string
	Category  string
	Abilities map[string]states.Params
	Entity    *states.Entity
}

// StepReport is the outcome of one world tick, one TickReport per object in
// spawn order.
type StepReport struct {
	Frame   int64
	Reports []states.TickReport
}

// Failures returns the number of failed and skipped updates across objects.
func (r StepReport) Failures() (failed, skipped int) {
	for _, rep := range r.Reports {
		failed += len(rep.Failed)
		skipped += len(rep.Skipped)
	}
	return failed, skipped
}

type World struct {
	mu      sync.RWMutex
	objects map[string]*Object
	spawned []string
	frame   int64
	elapsed float64

	reg       *states.Registry
	resolver  *states.Resolver
	factory   *states.Factory
	updater   *states.Updater
	snapshots *states.Snapshotter

	taxonomy *taxonomy.Taxonomy
	bus      bus.EventBus
	log      log.Log
	workers  int
	parallel bool
}

type Option func(*World)

func WithTaxonomy(t *taxonomy.Taxonomy) Option {
	return func(w *World) {
		if t != nil {
			w.taxonomy = t
		}
	}
}

func WithBus(b bus.EventBus) Option {
	return func(w *World) { w.bus = b }
}

func WithLogger(l log.Log) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithParallel ticks objects concurrently, at most workers at a time.
func WithParallel(workers int) Option {
	return func(w *World) {
		w.parallel = true
		w.workers = workers
	}
}

// NewWorld builds a world over a frozen registry.
func NewWorld(reg *states.Registry, opts ...Option) (*World, error) {
	if !reg.Frozen() {
		return nil, states.ErrRegistryNotFrozen
	}
	w := &World{
		objects:  make(map[string]*Object, 64),
		reg:      reg,
		taxonomy: taxonomy.Empty(),
		log:      log.Provide().Named("sim"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.bus == nil {
		w.bus = bus.New()
	}

	w.resolver = states.NewResolver(reg)
	w.factory = states.NewFactory(reg, states.WithFactoryBus(w.bus))
	w.updater = states.NewUpdater(reg, states.WithUpdaterBus(w.bus))
	w.snapshots = states.NewSnapshotter(reg)
	return w, nil
}

// Spawn creates an object with the given abilities and attaches its states.
// Kinds that fail instantiation are logged and left out; the object is still
// added.
func (w *World) Spawn(name string, abilities map[string]states.Params) (*Object, error) {
	return w.spawn(name, "", abilities)
}

// SpawnCategory creates an object whose abilities come from the taxonomy.
// A category the taxonomy does not know yields an object with only the
// default states.
func (w *World) SpawnCategory(name, category string) (*Object, error) {
	return w.spawn(name, category, w.taxonomy.Abilities(category))
}

func (w *World) spawn(name, category string, abilities map[string]states.Params) (*Object, error) {
	res, err := w.resolver.Resolve(abilities)
	if err != nil {
		return nil, fmt.Errorf("spawn %s: %w", name, err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if _, exists := w.objects[name]; exists {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateObject, name)
	}

	obj := &Object{
		Name:      name,
		Category:  category,
		Abilities: abilities,
		Entity:    states.NewEntity(uuid.NewString()),
	}
	if err := w.factory.Prepare(obj.Entity, res); err != nil {
		w.log.Warn("object spawned with missing states",
			log.String("object", name), log.String("entity", obj.Entity.ID()), log.Error(err))
	}

	w.objects[name] = obj
	w.spawned = append(w.spawned, name)
	w.log.Debug("object spawned",
		log.String("object", name),
		log.String("entity", obj.Entity.ID()),
		log.Strings("states", w.updater.Sequence(obj.Entity)),
	)
	return obj, nil
}

// Despawn removes the object and drops its instances.
func (w *World) Despawn(name string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	obj, ok := w.objects[name]
	if !ok {
		return false
	}
	obj.Entity.Clear()
	delete(w.objects, name)
	for i, n := range w.spawned {
		if n == name {
			w.spawned = append(w.spawned[:i], w.spawned[i+1:]...)
			break
		}
	}
	return true
}

func (w *World) Object(name string) (*Object, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[name]
	return obj, ok
}

// Names returns object names in ascending order.
func (w *World) Names() []string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return sequence.Keys(w.objects).Collect()
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.objects)
}

// Step advances every object by dt seconds. Objects are independent, so with
// WithParallel they are ticked concurrently; each object's own states are
// still updated in global order.
func (w *World) Step(ctx context.Context, dt float64) (StepReport, error) {
	if err := ctx.Err(); err != nil {
		return StepReport{}, err
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	objects := make([]*Object, len(w.spawned))
	for i, name := range w.spawned {
		objects[i] = w.objects[name]
	}
	reports := make([]states.TickReport, len(objects))
	indexes := make([]int, len(objects))
	for i := range indexes {
		indexes[i] = i
	}

	tick := func(_ context.Context, i int) error {
		rep, err := w.updater.Tick(objects[i].Entity, dt)
		if err != nil {
			return fmt.Errorf("tick %s: %w", objects[i].Name, err)
		}
		reports[i] = rep
		return nil
	}

	var err error
	if w.parallel {
		err = concurrent.ForEach(ctx, indexes, w.workers, tick)
	} else {
		for _, i := range indexes {
			if err = ctx.Err(); err != nil {
				break
			}
			if err = tick(ctx, i); err != nil {
				break
			}
		}
	}
	if err != nil {
		return StepReport{}, err
	}

	w.frame++
	w.elapsed += dt
	return StepReport{Frame: w.frame, Reports: reports}, nil
}

// Frame returns the number of completed steps.
func (w *World) Frame() int64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.frame
}

// Elapsed returns the simulated seconds across completed steps.
func (w *World) Elapsed() float64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.elapsed
}

// Effects resolves emitter and texture effects for one object.
func (w *World) Effects(name string) (states.Effects, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[name]
	if !ok {
		return states.Effects{}, fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	return states.ResolveEffects(w.reg.Classifier(), obj.Entity), nil
}

// AllEffects resolves effects for every object.
func (w *World) AllEffects() map[string]states.Effects {
	w.mu.RLock()
	defer w.mu.RUnlock()

	names := sequence.Keys(w.objects).Collect()
	effects := concurrent.Map(names, w.workers, func(name string) states.Effects {
		return states.ResolveEffects(w.reg.Classifier(), w.objects[name].Entity)
	})
	out := make(map[string]states.Effects, len(names))
	for i, name := range names {
		out[name] = effects[i]
	}
	return out
}

// Snapshot dumps the state values of one object.
func (w *World) Snapshot(name string) (*states.Snapshot, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	obj, ok := w.objects[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	return w.snapshots.Dump(obj.Entity)
}

// Restore loads state values into one object.
func (w *World) Restore(name string, snap *states.Snapshot) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	obj, ok := w.objects[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownObject, name)
	}
	return w.snapshots.Load(obj.Entity, snap)
}

func (w *World) Registry() *states.Registry { return w.reg }

func (w *World) Bus() bus.EventBus { return w.bus }
