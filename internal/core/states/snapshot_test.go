package states

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotRoundTrip(t *testing.T) {
	r := kitchenRegistry(t)
	s := NewSnapshotter(r)
	e := NewEntity("pot")
	require.NoError(t, NewFactory(r).Prepare(e, Resolution{"Pose": {"value": 1.5}, "Soaked": {"value": true}}))

	snap, err := s.Dump(e)
	require.NoError(t, err)
	assert.Equal(t, r.Fingerprint(), snap.Fingerprint)

	data, err := snap.MarshalBinary()
	require.NoError(t, err)
	var decoded Snapshot
	require.NoError(t, decoded.UnmarshalBinary(data))

	require.NoError(t, stubOf(t, e, "Pose").SetValue(9.0))
	require.NoError(t, s.Load(e, &decoded))
	assert.Equal(t, 1.5, stubOf(t, e, "Pose").Value())
	assert.Equal(t, true, stubOf(t, e, "Soaked").Value())
}

func TestSnapshotRejectsForeignCatalog(t *testing.T) {
	r := kitchenRegistry(t)
	e := NewEntity("pot")
	require.NoError(t, NewFactory(r).Prepare(e, Resolution{"Pose": nil}))
	snap, err := NewSnapshotter(r).Dump(e)
	require.NoError(t, err)

	other := frozenRegistry(t, nil, kitchenKinds()...)
	assert.ErrorIs(t, NewSnapshotter(other).Load(e, snap), ErrSnapshotMismatch)
}

func TestSnapshotToleratesMissingStates(t *testing.T) {
	r := kitchenRegistry(t)
	e := NewEntity("pot")
	require.NoError(t, NewFactory(r).Prepare(e, Resolution{"Pose": {"value": 2.0}, "Soaked": {"value": false}}))

	snap := &Snapshot{Entity: "pot", Fingerprint: r.Fingerprint(), States: map[string][]byte{
		"Pose":   []byte("3"),
		"Frozen": []byte("true"),
	}}
	require.NoError(t, NewSnapshotter(r).Load(e, snap))
	assert.Equal(t, 3.0, stubOf(t, e, "Pose").Value())
	assert.Equal(t, false, stubOf(t, e, "Soaked").Value())
}

func TestSnapshotLoadIsAllOrNothing(t *testing.T) {
	r := kitchenRegistry(t)
	e := NewEntity("pot")
	require.NoError(t, NewFactory(r).Prepare(e, Resolution{"Pose": {"value": 2.0}, "Soaked": {"value": false}}))

	snap := &Snapshot{Entity: "pot", Fingerprint: r.Fingerprint(), States: map[string][]byte{
		"Pose":   []byte("3"),
		"Soaked": []byte("{"),
	}}
	err := NewSnapshotter(r).Load(e, snap)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deserialize Soaked")

	assert.Equal(t, 2.0, stubOf(t, e, "Pose").Value())
	assert.Equal(t, false, stubOf(t, e, "Soaked").Value())
}

func TestSnapshotCorruptedPayload(t *testing.T) {
	var snap Snapshot
	assert.ErrorIs(t, snap.UnmarshalBinary([]byte("not gob")), ErrSnapshotCorrupted)
}
