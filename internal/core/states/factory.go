package states

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/zeusync/statesched/internal/core/events/bus"
	"github.com/zeusync/statesched/internal/core/observability/log"
)

// Factory constructs state instances and attaches them to entities.
type Factory struct {
	reg *Registry
	bus bus.EventBus
	log log.Log
}

type FactoryOption func(*Factory)

// WithFactoryBus publishes rejected instantiations on b.
func WithFactoryBus(b bus.EventBus) FactoryOption {
	return func(f *Factory) { f.bus = b }
}

func NewFactory(reg *Registry, opts ...FactoryOption) *Factory {
	f := &Factory{
		reg: reg,
		log: reg.Logger().Named("factory"),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Instantiate constructs kind for e with params and attaches it under kind.Name.
// It fails with ErrDuplicateState if e already carries that kind and with
// ErrInvalidStateClass if the constructor is missing, fails, panics, or
// returns an instance that does not belong to kind.
func (f *Factory) Instantiate(kind Kind, e *Entity, params Params) (Instance, error) {
	if e.Has(kind.Name) {
		return nil, fmt.Errorf("%w: %s already instantiated on entity %s", ErrDuplicateState, kind.Name, e.ID())
	}
	if kind.Construct == nil {
		return nil, fmt.Errorf("%w: %s has no constructor", ErrInvalidStateClass, kind.Name)
	}
	if params == nil {
		params = Params{}
	}

	inst, err := construct(kind, e, params)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidStateClass, kind.Name, err)
	}

	if err := e.attach(kind.Name, inst); err != nil {
		return nil, err
	}
	return inst, nil
}

// construct runs the constructor and checks the instance it returns. Methods of
// the instance are only called under the recover.
func construct(kind Kind, e *Entity, params Params) (inst Instance, err error) {
	defer func() {
		if r := recover(); r != nil {
			inst, err = nil, fmt.Errorf("constructor panicked: %v", r)
		}
	}()

	inst, err = kind.Construct(e, params)
	if err != nil {
		return nil, err
	}
	if isNil(inst) {
		return nil, errors.New("constructor returned no instance")
	}
	if got := inst.Kind(); got != kind.Name {
		return nil, fmt.Errorf("constructor returned an instance of %s", got)
	}
	return inst, nil
}

func isNil(inst Instance) bool {
	if inst == nil {
		return true
	}
	v := reflect.ValueOf(inst)
	switch v.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan, reflect.Interface:
		return v.IsNil()
	default:
		return false
	}
}

// Prepare instantiates every kind of res on e in global order. Kinds that fail
// the capability contract are skipped, logged and reported in the joined error
// while the rest proceed; kinds already present on e are left untouched.
func (f *Factory) Prepare(e *Entity, res Resolution) error {
	if !f.reg.Frozen() {
		return ErrRegistryNotFrozen
	}

	var all error
	for _, name := range f.reg.order {
		params, wanted := res[name]
		if !wanted {
			continue
		}
		if e.Has(name) {
			f.log.Debug("state already present, keeping existing instance",
				log.String("entity", e.ID()), log.String("kind", name))
			continue
		}

		kind := f.reg.kinds[name]
		if _, err := f.Instantiate(kind, e, params); err != nil {
			f.log.Warn("skipping state that failed instantiation",
				log.String("entity", e.ID()), log.String("kind", name), log.Error(err))
			if perr := publish(f.bus, EventInstantiateRejected, "factory", StateEvent{Entity: e.ID(), Kind: name, Err: err}); perr != nil {
				f.log.Warn("event handler failed", log.Error(perr))
			}
			all = errors.Join(all, err)
		}
	}

	for _, name := range res.Names() {
		if _, ok := f.reg.kinds[name]; !ok {
			all = errors.Join(all, fmt.Errorf("%w: %s", ErrUnknownState, name))
		}
	}
	return all
}
