package states

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"

	"github.com/zeusync/statesched/internal/core/observability/log"
)

// Snapshot holds the serialized instances of one entity, keyed by kind name and
// stamped with the fingerprint of the catalog that produced them.
type Snapshot struct {
	Entity      string
	Fingerprint uint64
	States      map[string][]byte
}

// snapshotWire drops the Snapshot methods so gob encodes the fields directly.
type snapshotWire Snapshot

func (s *Snapshot) MarshalBinary() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode((*snapshotWire)(s)); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (s *Snapshot) UnmarshalBinary(data []byte) error {
	var out snapshotWire
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&out); err != nil {
		return fmt.Errorf("%w: %w", ErrSnapshotCorrupted, err)
	}
	*s = Snapshot(out)
	return nil
}

// Snapshotter saves and restores entity instance values through each
// instance's serialize capability.
type Snapshotter struct {
	reg *Registry
	log log.Log
}

func NewSnapshotter(reg *Registry) *Snapshotter {
	return &Snapshotter{reg: reg, log: reg.Logger().Named("snapshot")}
}

// Dump serializes every instance of e.
func (s *Snapshotter) Dump(e *Entity) (*Snapshot, error) {
	if !s.reg.Frozen() {
		return nil, ErrRegistryNotFrozen
	}
	snap := &Snapshot{
		Entity:      e.ID(),
		Fingerprint: s.reg.Fingerprint(),
		States:      make(map[string][]byte, e.Len()),
	}
	for _, name := range e.Names() {
		inst, _ := e.State(name)
		data, err := inst.Serialize()
		if err != nil {
			return nil, fmt.Errorf("serialize %s on entity %s: %w", name, e.ID(), err)
		}
		snap.States[name] = data
	}
	return snap, nil
}

// Load restores instance values of e from snap. A snapshot taken against a
// different catalog is rejected. Instances absent from the snapshot keep their
// current value and are logged; snapshot entries for kinds e does not carry are
// ignored the same way. If any instance fails to restore, every instance is put
// back to its value from before the call.
func (s *Snapshotter) Load(e *Entity, snap *Snapshot) error {
	if !s.reg.Frozen() {
		return ErrRegistryNotFrozen
	}
	if snap.Fingerprint != s.reg.Fingerprint() {
		return fmt.Errorf("%w: snapshot %x, registry %x", ErrSnapshotMismatch, snap.Fingerprint, s.reg.Fingerprint())
	}

	var restore []string
	previous := make(map[string][]byte)
	for _, name := range s.reg.order.Restrict(e) {
		if _, ok := snap.States[name]; !ok {
			s.log.Warn("state missing from snapshot",
				log.String("entity", e.ID()), log.String("kind", name))
			continue
		}
		inst, _ := e.State(name)
		data, err := inst.Serialize()
		if err != nil {
			return fmt.Errorf("serialize %s on entity %s: %w", name, e.ID(), err)
		}
		previous[name] = data
		restore = append(restore, name)
	}

	for i, name := range restore {
		inst, _ := e.State(name)
		if err := inst.Deserialize(snap.States[name]); err != nil {
			err = fmt.Errorf("deserialize %s on entity %s: %w", name, e.ID(), err)
			return errors.Join(err, s.rollback(e, restore[:i+1], previous))
		}
	}

	for name := range snap.States {
		if !e.Has(name) {
			s.log.Warn("snapshot carries state not present on entity",
				log.String("entity", e.ID()), log.String("kind", name))
		}
	}
	return nil
}

// rollback puts back the values e held before a failed Load.
func (s *Snapshotter) rollback(e *Entity, names []string, previous map[string][]byte) error {
	var all error
	for _, name := range names {
		inst, _ := e.State(name)
		if err := inst.Deserialize(previous[name]); err != nil {
			all = errors.Join(all, fmt.Errorf("roll back %s on entity %s: %w", name, e.ID(), err))
		}
	}
	return all
}
