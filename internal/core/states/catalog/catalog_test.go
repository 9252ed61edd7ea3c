package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeusync/statesched/internal/core/observability/log"
	"github.com/zeusync/statesched/internal/core/states"
)

func newCatalog(t *testing.T) *states.Registry {
	t.Helper()
	reg, err := New(states.WithLogger(log.NewNop()))
	require.NoError(t, err)
	return reg
}

func spawn(t *testing.T, reg *states.Registry, abilities map[string]states.Params) *states.Entity {
	t.Helper()
	res, err := states.NewResolver(reg).Resolve(abilities)
	require.NoError(t, err)
	e := states.NewEntity("obj")
	require.NoError(t, states.NewFactory(reg).Prepare(e, res))
	return e
}

func tick(t *testing.T, reg *states.Registry, e *states.Entity, dt float64) {
	t.Helper()
	report, err := states.NewUpdater(reg).Tick(e, dt)
	require.NoError(t, err)
	require.True(t, report.OK(), "%+v", report)
}

func value(t *testing.T, e *states.Entity, name string) any {
	t.Helper()
	inst, ok := e.State(name)
	require.True(t, ok, name)
	return inst.Value()
}

func TestCatalogFreezes(t *testing.T) {
	reg := newCatalog(t)
	assert.Equal(t, len(Kinds()), reg.Len())
	assert.ElementsMatch(t, []string{
		"attachable", "burnable", "cleaningTool", "coldSource", "cookable", "dustyable", "fillable",
		"freezable", "heatable", "heatSource", "openable", "robot", "sliceable", "slicer", "soakable",
		"stainable", "toggleable", "waterSink", "waterSource",
	}, reg.Abilities())

	again := newCatalog(t)
	assert.Equal(t, reg.Fingerprint(), again.Fingerprint())
	assert.Equal(t, reg.Order(), again.Order())
}

func TestCatalogOrder(t *testing.T) {
	order := newCatalog(t).Order()
	chains := [][]string{
		{Pose, Temperature, MaxTemperature, Cooked},
		{MaxTemperature, Burnt},
		{Temperature, Frozen},
		{ToggledOn, HeatSourceOrSink, Temperature, Heated},
		{Pose, AABB, VerticalAdjacency, OnTop},
		{ContactBodies, Touching},
		{InsideRoomTypes, IsInKitchen},
	}
	for _, chain := range chains {
		for i := 1; i < len(chain); i++ {
			assert.Less(t, order.Index(chain[i-1]), order.Index(chain[i]), "%s before %s", chain[i-1], chain[i])
		}
	}
}

func TestCatalogCategories(t *testing.T) {
	c := newCatalog(t).Classifier()

	assert.Equal(t, []string{HeatSourceOrSink}, c.FireStates())
	assert.Equal(t, []string{Heated}, c.SteamStates())
	assert.Equal(t, []string{ToggledOn, Soaked, Cooked, Burnt, Frozen}, c.TextureAffectingStates())
	assert.Equal(t, []string{WaterSource}, c.FluidSourceStates())
	assert.Equal(t, []string{
		InFOVOfRobot, InHandOfRobot, InReachOfRobot, InSameRoomAsRobot,
		Inside, NextTo, OnFloor, OnTop, Touching, Under,
	}, c.DefaultStates())
}

func TestRobotAbility(t *testing.T) {
	kinds, err := newCatalog(t).Ability("robot")
	require.NoError(t, err)
	assert.Len(t, kinds, len(roomTypes)+1)
	assert.Contains(t, kinds, ObjectsInFOVOfRobot)
	assert.Contains(t, kinds, IsInKitchen)
}

func TestCookingOnOwnHeatSource(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{
		"heatSource": {ParamSourceTemperature: 100.0},
		"cookable":   nil,
		"burnable":   nil,
	})

	tick(t, reg, e, 2)
	assert.Equal(t, 100.0, value(t, e, Temperature))
	assert.Equal(t, 100.0, value(t, e, MaxTemperature))
	assert.Equal(t, true, value(t, e, Cooked))
	assert.Equal(t, false, value(t, e, Burnt))
	assert.Equal(t, states.Effects{Fire: true, Texture: Cooked}, states.ResolveEffects(reg.Classifier(), e))
}

func TestBurntOutranksCooked(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{
		"heatSource": {ParamSourceTemperature: 250.0},
		"cookable":   nil,
		"burnable":   nil,
	})

	tick(t, reg, e, 2)
	assert.Equal(t, []string{Burnt, Cooked}, intersect(states.ActiveStates(e), Burnt, Cooked))
	assert.Equal(t, Burnt, states.ResolveEffects(reg.Classifier(), e).Texture)
}

func TestCookedSurvivesCooling(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{"cookable": nil})

	temp, _ := e.State(Temperature)
	require.NoError(t, temp.SetValue(90.0))
	tick(t, reg, e, 0.1)
	require.Equal(t, true, value(t, e, Cooked))

	tick(t, reg, e, 10)
	assert.Equal(t, DefaultAmbientTemperature, value(t, e, Temperature))
	assert.Equal(t, true, value(t, e, Cooked))
}

func TestColdSourceFreezes(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{
		"coldSource": {ParamSourceTemperature: -20.0},
		"freezable":  nil,
	})

	tick(t, reg, e, 2)
	assert.Equal(t, true, value(t, e, Frozen))
	assert.Equal(t, Frozen, states.ResolveEffects(reg.Classifier(), e).Texture)
}

func TestToggledHeatSource(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{
		"heatSource": {ParamRequiresToggledOn: true},
		"toggleable": nil,
		"heatable":   nil,
	})

	tick(t, reg, e, 2)
	assert.Equal(t, false, value(t, e, HeatSourceOrSink))
	assert.Equal(t, DefaultAmbientTemperature, value(t, e, Temperature))
	assert.Equal(t, states.Effects{}, states.ResolveEffects(reg.Classifier(), e))

	toggle, _ := e.State(ToggledOn)
	require.NoError(t, toggle.SetValue(true))
	tick(t, reg, e, 2)
	assert.Equal(t, true, value(t, e, Heated))
	assert.Equal(t, states.Effects{Fire: true, Steam: true, Texture: ToggledOn}, states.ResolveEffects(reg.Classifier(), e))
}

func TestWaterSourceFollowsToggle(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{"waterSource": nil, "toggleable": nil})

	tick(t, reg, e, 1)
	assert.Equal(t, false, value(t, e, WaterSource))

	toggle, _ := e.State(ToggledOn)
	require.NoError(t, toggle.SetValue(true))
	tick(t, reg, e, 1)
	assert.Equal(t, true, value(t, e, WaterSource))
}

func TestRoomStates(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, map[string]states.Params{"robot": nil})

	rooms, _ := e.State(InsideRoomTypes)
	require.NoError(t, rooms.SetValue([]string{"kitchen"}))
	tick(t, reg, e, 1)

	assert.Equal(t, true, value(t, e, IsInKitchen))
	assert.Equal(t, false, value(t, e, IsInBathroom))
}

func TestTouchingMirrorsContacts(t *testing.T) {
	reg := newCatalog(t)
	e := spawn(t, reg, nil)

	contacts, _ := e.State(ContactBodies)
	require.NoError(t, contacts.SetValue([]string{"table", "cup", "table"}))
	tick(t, reg, e, 1)

	assert.Equal(t, []string{"cup", "table"}, value(t, e, Touching))
}

func TestSnapshotRestoresCatalogValues(t *testing.T) {
	reg := newCatalog(t)
	abilities := map[string]states.Params{"heatSource": {ParamSourceTemperature: 100.0}, "cookable": nil}
	cooked := spawn(t, reg, abilities)
	tick(t, reg, cooked, 2)

	s := states.NewSnapshotter(reg)
	snap, err := s.Dump(cooked)
	require.NoError(t, err)

	fresh := spawn(t, reg, abilities)
	require.NoError(t, s.Load(fresh, snap))
	assert.Equal(t, 100.0, value(t, fresh, Temperature))
	assert.Equal(t, true, value(t, fresh, Cooked))
}

func intersect(active []string, names ...string) []string {
	var out []string
	for _, name := range active {
		for _, want := range names {
			if name == want {
				out = append(out, name)
			}
		}
	}
	return out
}
