package states

import (
	"fmt"
	"sort"
)

// Entity is the state-instance map the core attaches to an externally owned
// simulated object. The host creates and destroys it alongside that object.
type Entity struct {
	id        string
	instances map[string]Instance
}

func NewEntity(id string) *Entity {
	return &Entity{
		id:        id,
		instances: make(map[string]Instance, 16),
	}
}

func (e *Entity) ID() string { return e.id }

// State returns the instance of kind name, if any.
func (e *Entity) State(name string) (Instance, bool) {
	inst, ok := e.instances[name]
	return inst, ok
}

func (e *Entity) Has(name string) bool {
	_, ok := e.instances[name]
	return ok
}

// Names returns the instantiated kind names in ascending order.
func (e *Entity) Names() []string {
	names := make([]string, 0, len(e.instances))
	for name := range e.instances {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (e *Entity) Len() int { return len(e.instances) }

// Detach removes the instance of kind name and reports whether one was present.
func (e *Entity) Detach(name string) bool {
	if _, ok := e.instances[name]; !ok {
		return false
	}
	delete(e.instances, name)
	return true
}

// Clear drops every instance.
func (e *Entity) Clear() {
	clear(e.instances)
}

func (e *Entity) attach(name string, inst Instance) error {
	if _, ok := e.instances[name]; ok {
		return fmt.Errorf("%w: %s already instantiated on entity %s", ErrDuplicateState, name, e.id)
	}
	e.instances[name] = inst
	return nil
}
