package states

import "github.com/zeusync/statesched/pkg/encoding"

// Instance is a concrete, mutable state bound to exactly one entity and one kind.
type Instance interface {
	Kind() string

	Value() any
	SetValue(v any) error

	encoding.Serializable
}

// Updatable instances are stepped once per tick in global order.
type Updatable interface {
	Update(dt float64) error
}

// Activatable instances report whether their state currently holds. Effects
// resolution only considers instances that implement it.
type Activatable interface {
	Active() bool
}
