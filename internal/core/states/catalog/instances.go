package catalog

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/pkg/encoding"
)

var ErrValueType = errors.New("state value has wrong type")

func valueTypeError(kind string, want string, got any) error {
	return fmt.Errorf("%w: %s expects %s, got %T", ErrValueType, kind, want, got)
}

// boolState is a flag that is active while true.
type boolState struct {
	kind  string
	value bool
}

func (s *boolState) Kind() string { return s.kind }
func (s *boolState) Value() any   { return s.value }
func (s *boolState) Active() bool { return s.value }

func (s *boolState) SetValue(v any) error {
	b, ok := v.(bool)
	if !ok {
		return valueTypeError(s.kind, "bool", v)
	}
	s.value = b
	return nil
}

func (s *boolState) Serialize() ([]byte, error) { return encoding.Encode(s.value) }

func (s *boolState) Deserialize(data []byte) error { return encoding.DecodeInto(data, &s.value) }

type scalarState struct {
	kind  string
	value float64
}

func (s *scalarState) Kind() string { return s.kind }
func (s *scalarState) Value() any   { return s.value }

func (s *scalarState) SetValue(v any) error {
	f, ok := toFloat(v)
	if !ok {
		return valueTypeError(s.kind, "number", v)
	}
	s.value = f
	return nil
}

func (s *scalarState) Serialize() ([]byte, error) { return encoding.Encode(s.value) }

func (s *scalarState) Deserialize(data []byte) error { return encoding.DecodeInto(data, &s.value) }

// Vector is a position or extent in world coordinates.
type Vector [3]float64

type vectorState struct {
	kind  string
	value Vector
}

func (s *vectorState) Kind() string { return s.kind }
func (s *vectorState) Value() any   { return s.value }

func (s *vectorState) SetValue(v any) error {
	switch val := v.(type) {
	case Vector:
		s.value = val
	case [3]float64:
		s.value = val
	case []float64:
		if len(val) != 3 {
			return valueTypeError(s.kind, "3 coordinates", v)
		}
		copy(s.value[:], val)
	default:
		return valueTypeError(s.kind, "vector", v)
	}
	return nil
}

func (s *vectorState) Serialize() ([]byte, error) { return encoding.Encode(s.value) }

func (s *vectorState) Deserialize(data []byte) error { return encoding.DecodeInto(data, &s.value) }

// setState holds the IDs of related entities (or room types) maintained by the
// host. It is active while non-empty.
type setState struct {
	kind    string
	members []string
}

func (s *setState) Kind() string { return s.kind }
func (s *setState) Value() any   { return slices.Clone(s.members) }
func (s *setState) Active() bool { return len(s.members) > 0 }

func (s *setState) SetValue(v any) error {
	members, ok := v.([]string)
	if !ok {
		return valueTypeError(s.kind, "[]string", v)
	}
	s.members = normalize(members)
	return nil
}

func (s *setState) Contains(member string) bool {
	_, found := slices.BinarySearch(s.members, member)
	return found
}

func (s *setState) Serialize() ([]byte, error) { return encoding.Encode(s.members) }

func (s *setState) Deserialize(data []byte) error {
	var members []string
	if err := encoding.DecodeInto(data, &members); err != nil {
		return err
	}
	s.members = normalize(members)
	return nil
}

func normalize(members []string) []string {
	out := slices.Clone(members)
	slices.Sort(out)
	return slices.Compact(out)
}

// temperatureState relaxes toward the entity's own active heat source, or toward
// ambient temperature when there is none.
type temperatureState struct {
	scalarState
	e       *states.Entity
	ambient float64
	rate    float64
}

func (s *temperatureState) Update(dt float64) error {
	target := s.ambient
	if inst, ok := s.e.State(HeatSourceOrSink); ok {
		if src, ok := inst.(*heatSourceState); ok && src.Active() {
			target = src.temperature
		}
	}
	if k := s.rate * dt; k < 1 {
		s.value += (target - s.value) * k
	} else {
		s.value = target
	}
	return nil
}

// maxTemperatureState records the highest temperature seen.
type maxTemperatureState struct {
	scalarState
	e *states.Entity
}

func (s *maxTemperatureState) Update(float64) error {
	t, ok := scalarOf(s.e, Temperature)
	if !ok {
		return fmt.Errorf("%s: %w", MaxTemperature, states.ErrUnknownState)
	}
	s.value = math.Max(s.value, t)
	return nil
}

// thresholdState derives a flag from a scalar source state crossing a threshold.
type thresholdState struct {
	boolState
	e         *states.Entity
	source    string
	threshold float64
	above     bool
}

func (s *thresholdState) Update(float64) error {
	v, ok := scalarOf(s.e, s.source)
	if !ok {
		return fmt.Errorf("%s reads %s: %w", s.kind, s.source, states.ErrUnknownState)
	}
	if s.above {
		s.value = v >= s.threshold
	} else {
		s.value = v < s.threshold
	}
	return nil
}

// gate is satisfied when kind is absent from the entity or its activity equals want.
type gate struct {
	kind string
	want bool
}

// gatedState is active while every gate holds.
type gatedState struct {
	boolState
	e     *states.Entity
	gates []gate
}

func (s *gatedState) Update(float64) error {
	s.value = true
	for _, g := range s.gates {
		if active, present := activeOf(s.e, g.kind); present && active != g.want {
			s.value = false
			return nil
		}
	}
	return nil
}

// heatSourceState emits heat (or cold, for a negative temperature) while its
// gates hold.
type heatSourceState struct {
	gatedState
	temperature float64
}

// roomState is active while InsideRoomTypes lists its room type.
type roomState struct {
	boolState
	e    *states.Entity
	room string
}

func (s *roomState) Update(float64) error {
	inst, ok := s.e.State(InsideRoomTypes)
	if !ok {
		return fmt.Errorf("%s: %w", InsideRoomTypes, states.ErrUnknownState)
	}
	rooms, ok := inst.(*setState)
	if !ok {
		return valueTypeError(InsideRoomTypes, "room set", inst)
	}
	s.value = rooms.Contains(s.room)
	return nil
}

func activeOf(e *states.Entity, name string) (active, present bool) {
	inst, ok := e.State(name)
	if !ok {
		return false, false
	}
	a, ok := inst.(states.Activatable)
	return ok && a.Active(), true
}

func scalarOf(e *states.Entity, name string) (float64, bool) {
	inst, ok := e.State(name)
	if !ok {
		return 0, false
	}
	return toFloat(inst.Value())
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}

// mirrorState copies the members of a source set state every tick.
type mirrorState struct {
	setState
	e      *states.Entity
	source string
}

func (s *mirrorState) Update(float64) error {
	inst, ok := s.e.State(s.source)
	if !ok {
		return fmt.Errorf("%s reads %s: %w", s.kind, s.source, states.ErrUnknownState)
	}
	src, ok := inst.(*setState)
	if !ok {
		return valueTypeError(s.source, "entity set", inst)
	}
	s.members = slices.Clone(src.members)
	return nil
}
