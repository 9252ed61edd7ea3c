package states

import (
	"fmt"

	"github.com/zeusync/statesched/internal/core/events/bus"
	"github.com/zeusync/statesched/internal/core/observability/log"
	"github.com/zeusync/statesched/pkg/generic"
)

var brokenSets = generic.NewSetPool(16)

// Failure records an instance whose update returned an error or panicked.
type Failure struct {
	Kind string
	Err  error
}

// Skip records an instance left untouched because a required dependency was
// absent, failed, or was itself skipped this tick.
type Skip struct {
	Kind  string
	Cause string
}

// TickReport summarizes one entity's update pass.
type TickReport struct {
	Entity  string
	Updated []string
	Failed  []Failure
	Skipped []Skip
}

func (r TickReport) OK() bool { return len(r.Failed) == 0 && len(r.Skipped) == 0 }

// Updater steps an entity's instances in global order. It mutates only the
// instances, so distinct entities may be ticked from different goroutines.
type Updater struct {
	reg *Registry
	bus bus.EventBus
	log log.Log
}

type UpdaterOption func(*Updater)

// WithUpdaterBus publishes failures and skips on b.
func WithUpdaterBus(b bus.EventBus) UpdaterOption {
	return func(u *Updater) { u.bus = b }
}

func NewUpdater(reg *Registry, opts ...UpdaterOption) *Updater {
	u := &Updater{
		reg: reg,
		log: reg.Logger().Named("updater"),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Sequence returns the global order restricted to the kinds instantiated on e.
func (u *Updater) Sequence(e *Entity) []string {
	return u.reg.order.Restrict(e)
}

// Tick updates every Updatable instance of e once, in Sequence order. A failing
// instance is recorded and does not stop the pass; kinds that require it are
// skipped for this tick. Missing optional dependencies are ignored. Events are
// published as one batch once the pass is over.
func (u *Updater) Tick(e *Entity, dt float64) (TickReport, error) {
	if !u.reg.Frozen() {
		return TickReport{}, ErrRegistryNotFrozen
	}

	report := TickReport{Entity: e.ID()}
	broken := brokenSets.Get()
	defer brokenSets.Put(broken)
	var pending []bus.Event

	for _, name := range u.Sequence(e) {
		if cause, blocked := u.blockedBy(e, name, broken); blocked {
			broken[name] = struct{}{}
			report.Skipped = append(report.Skipped, Skip{Kind: name, Cause: cause})
			u.log.Debug("skipping state update, required dependency unavailable",
				log.String("entity", e.ID()), log.String("kind", name), log.String("cause", cause))
			pending = append(pending, newStateEvent(EventUpdateSkipped, "updater", StateEvent{Entity: e.ID(), Kind: name, Cause: cause}))
			continue
		}

		inst, _ := e.State(name)
		updatable, ok := inst.(Updatable)
		if !ok {
			report.Updated = append(report.Updated, name)
			continue
		}

		if err := safeUpdate(updatable, dt); err != nil {
			broken[name] = struct{}{}
			report.Failed = append(report.Failed, Failure{Kind: name, Err: err})
			u.log.Warn("state update failed",
				log.String("entity", e.ID()), log.String("kind", name), log.Error(err))
			pending = append(pending, newStateEvent(EventUpdateFailed, "updater", StateEvent{Entity: e.ID(), Kind: name, Err: err}))
			continue
		}
		report.Updated = append(report.Updated, name)
	}

	u.flush(pending)
	return report, nil
}

func (u *Updater) blockedBy(e *Entity, name string, broken map[string]struct{}) (string, bool) {
	for _, dep := range u.reg.kinds[name].Required {
		if !e.Has(dep) {
			return dep, true
		}
		if _, failed := broken[dep]; failed {
			return dep, true
		}
	}
	return "", false
}

func (u *Updater) flush(events []bus.Event) {
	if u.bus == nil || len(events) == 0 {
		return
	}
	if err := u.bus.PublishBatch(events...); err != nil {
		u.log.Warn("event handler failed", log.Int("events", len(events)), log.Error(err))
	}
}

func safeUpdate(inst Updatable, dt float64) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("update panicked: %v", r)
		}
	}()
	return inst.Update(dt)
}
