package states

import "github.com/zeusync/statesched/internal/core/events/bus"

// Event types published on the bus by the factory and the updater.
const (
	EventInstantiateRejected = "state.instantiate.rejected"
	EventUpdateFailed        = "state.update.failed"
	EventUpdateSkipped       = "state.update.skipped"
)

// StateEvent is the payload of every event published by this package.
type StateEvent struct {
	Entity string
	Kind   string
	// Cause is the failing or missing prerequisite for skips, empty otherwise.
	Cause string
	Err   error
}

func newStateEvent(typ, source string, ev StateEvent) bus.Event {
	return bus.NewEvent(typ, source, ev, map[string]any{"entity": ev.Entity, "kind": ev.Kind})
}

func publish(b bus.EventBus, typ, source string, ev StateEvent) error {
	if b == nil {
		return nil
	}
	return b.Publish(newStateEvent(typ, source, ev))
}
