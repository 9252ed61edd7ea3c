package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/statesched/internal/core/states"
)

func TestSetValueRejectsWrongTypes(t *testing.T) {
	cases := []struct {
		inst states.Instance
		bad  any
		good any
	}{
		{inst: &boolState{kind: Open}, bad: 1, good: true},
		{inst: &scalarState{kind: Temperature}, bad: "hot", good: 12},
		{inst: &vectorState{kind: Pose}, bad: []float64{1, 2}, good: []float64{1, 2, 3}},
		{inst: &setState{kind: Inside}, bad: "cabinet", good: []string{"cabinet"}},
	}
	for _, tc := range cases {
		t.Run(tc.inst.Kind(), func(t *testing.T) {
			assert.ErrorIs(t, tc.inst.SetValue(tc.bad), ErrValueType)
			assert.NoError(t, tc.inst.SetValue(tc.good))
		})
	}
}

func TestInstancesSerializeRoundTrip(t *testing.T) {
	cases := []struct {
		src, dst states.Instance
		value    any
	}{
		{src: &boolState{kind: Open}, dst: &boolState{kind: Open}, value: true},
		{src: &scalarState{kind: Temperature}, dst: &scalarState{kind: Temperature}, value: 42.5},
		{src: &vectorState{kind: Pose}, dst: &vectorState{kind: Pose}, value: Vector{1, 2, 3}},
		{src: &setState{kind: Inside}, dst: &setState{kind: Inside}, value: []string{"box", "cabinet"}},
	}
	for _, tc := range cases {
		t.Run(tc.src.Kind(), func(t *testing.T) {
			require.NoError(t, tc.src.SetValue(tc.value))
			data, err := tc.src.Serialize()
			require.NoError(t, err)
			require.NoError(t, tc.dst.Deserialize(data))
			assert.Equal(t, tc.src.Value(), tc.dst.Value())
		})
	}
}

func TestSetStateNormalizes(t *testing.T) {
	s := &setState{kind: NextTo}
	require.NoError(t, s.SetValue([]string{"b", "a", "b"}))
	assert.Equal(t, []string{"a", "b"}, s.Value())
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))
	assert.True(t, s.Active())
}

func TestSetConstructorAcceptsDecodedLists(t *testing.T) {
	inst, err := set(Inside)(states.NewEntity("cup"), states.Params{ParamValue: []any{"cabinet"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"cabinet"}, inst.Value())

	_, err = set(Inside)(states.NewEntity("cup"), states.Params{ParamValue: []any{1}})
	assert.ErrorIs(t, err, ErrValueType)
}

func TestThresholdBelow(t *testing.T) {
	e := states.NewEntity("ice")
	reg := newCatalog(t)
	k, err := reg.Get(Pose)
	require.NoError(t, err)
	f := states.NewFactory(reg)
	_, err = f.Instantiate(k, e, nil)
	require.NoError(t, err)
	tk, _ := reg.Get(Temperature)
	temp, err := f.Instantiate(tk, e, states.Params{ParamValue: -5.0})
	require.NoError(t, err)

	frozen := &thresholdState{boolState: boolState{kind: Frozen}, e: e, source: Temperature, threshold: 0}
	require.NoError(t, frozen.Update(0))
	assert.True(t, frozen.Active())

	require.NoError(t, temp.SetValue(5.0))
	require.NoError(t, frozen.Update(0))
	assert.False(t, frozen.Active())
}
