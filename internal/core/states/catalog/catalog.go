// Package catalog is the standard object-state catalog: the kinds a
// simulated household object can carry, their dependencies and categories,
// and the ability table mapping object capabilities to kinds.
package catalog

import (
	"errors"

	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/pkg/sequence"
)

// Texture ranks; a higher rank wins the texture overlay.
const (
	RankToggledOn = iota
	RankSoaked
	RankCooked
	RankBurnt
	RankFrozen
)

// RoomStates returns the room membership kinds in ascending name order.
func RoomStates() []string {
	return sequence.Keys(roomTypes).Collect()
}

// Kinds returns every kind of the standard catalog.
func Kinds() []states.Kind {
	kinds := []states.Kind{
		// kinematics
		{Name: Pose, Construct: vector(Pose)},
		{Name: AABB, Required: []string{Pose}, Construct: vector(AABB)},
		{Name: ContactBodies, Construct: set(ContactBodies)},
		{Name: VerticalAdjacency, Required: []string{AABB}, Construct: set(VerticalAdjacency)},
		{Name: HorizontalAdjacency, Required: []string{AABB}, Construct: set(HorizontalAdjacency)},
		defaults(states.Kind{Name: Touching, Required: []string{ContactBodies}, Construct: mirror(Touching, ContactBodies)}),
		defaults(states.Kind{Name: Inside, Required: []string{AABB, HorizontalAdjacency, VerticalAdjacency}, Construct: set(Inside)}),
		defaults(states.Kind{Name: NextTo, Required: []string{HorizontalAdjacency}, Construct: set(NextTo)}),
		defaults(states.Kind{Name: OnTop, Required: []string{VerticalAdjacency}, Construct: set(OnTop)}),
		defaults(states.Kind{Name: Under, Required: []string{VerticalAdjacency}, Construct: set(Under)}),
		defaults(states.Kind{Name: OnFloor, Required: []string{Pose}, Construct: flag(OnFloor)}),
		{Name: Attached, Required: []string{ContactBodies}, Construct: set(Attached)},

		// robot and rooms
		{Name: ObjectsInFOVOfRobot, Construct: set(ObjectsInFOVOfRobot)},
		{Name: InsideRoomTypes, Required: []string{Pose}, Construct: set(InsideRoomTypes)},
		defaults(states.Kind{Name: InFOVOfRobot, Optional: []string{ObjectsInFOVOfRobot}, Construct: flag(InFOVOfRobot)}),
		defaults(states.Kind{Name: InHandOfRobot, Construct: flag(InHandOfRobot)}),
		defaults(states.Kind{Name: InReachOfRobot, Required: []string{Pose}, Construct: flag(InReachOfRobot)}),
		defaults(states.Kind{Name: InSameRoomAsRobot, Required: []string{Pose, InsideRoomTypes}, Construct: flag(InSameRoomAsRobot)}),

		// thermal
		{Name: Temperature, Required: []string{Pose}, Optional: []string{HeatSourceOrSink}, Construct: temperature},
		{Name: MaxTemperature, Required: []string{Temperature}, Construct: maxTemperature},
		{
			Name: HeatSourceOrSink, Optional: []string{ToggledOn, Open},
			Categories: []states.Category{states.CategoryFire},
			Construct:  heatSource,
		},
		{
			Name: Heated, Required: []string{Temperature},
			Categories: []states.Category{states.CategorySteam},
			Construct:  threshold(Heated, Temperature, ParamHeatedTemperature, DefaultHeatedTemperature, true),
		},
		texture(states.Kind{
			Name: Cooked, Required: []string{MaxTemperature},
			Construct: threshold(Cooked, MaxTemperature, ParamCookTemperature, DefaultCookTemperature, true),
		}, RankCooked),
		texture(states.Kind{
			Name: Burnt, Required: []string{MaxTemperature},
			Construct: threshold(Burnt, MaxTemperature, ParamBurnTemperature, DefaultBurnTemperature, true),
		}, RankBurnt),
		texture(states.Kind{
			Name: Frozen, Required: []string{Temperature},
			Construct: threshold(Frozen, Temperature, ParamFreezeTemperature, DefaultFreezeTemperature, false),
		}, RankFrozen),

		// appearance, fluids, articulation
		{Name: Open, Construct: flag(Open)},
		texture(states.Kind{Name: ToggledOn, Construct: flag(ToggledOn)}, RankToggledOn),
		texture(states.Kind{Name: Soaked, Construct: flag(Soaked)}, RankSoaked),
		{Name: Sliced, Construct: flag(Sliced)},
		{Name: Slicer, Construct: flag(Slicer)},
		{Name: Dusty, Construct: flag(Dusty)},
		{Name: Stained, Construct: flag(Stained)},
		{Name: CleaningTool, Optional: []string{Soaked, ToggledOn}, Construct: flag(CleaningTool)},
		{Name: WaterSource, Optional: []string{ToggledOn}, Traits: states.TraitFluidSource, Construct: waterSource},
		{Name: WaterSink, Construct: flag(WaterSink)},
		{Name: Filled, Construct: flag(Filled)},
	}

	for _, name := range RoomStates() {
		kinds = append(kinds, states.Kind{Name: name, Required: []string{InsideRoomTypes}, Construct: room(name)})
	}
	return kinds
}

// Abilities returns the ability table of the standard catalog.
func Abilities() map[string][]string {
	return map[string][]string{
		"attachable":   {Attached},
		"burnable":     {Burnt},
		"cleaningTool": {CleaningTool},
		"coldSource":   {HeatSourceOrSink},
		"cookable":     {Cooked},
		"dustyable":    {Dusty},
		"fillable":     {Filled},
		"freezable":    {Frozen},
		"heatable":     {Heated},
		"heatSource":   {HeatSourceOrSink},
		"openable":     {Open},
		"robot":        append(RoomStates(), ObjectsInFOVOfRobot),
		"sliceable":    {Sliced},
		"slicer":       {Slicer},
		"soakable":     {Soaked},
		"stainable":    {Stained},
		"toggleable":   {ToggledOn},
		"waterSink":    {WaterSink},
		"waterSource":  {WaterSource},
	}
}

// Register adds the standard kinds and abilities to reg. Every failure is
// reported.
func Register(reg *states.Registry) error {
	var errs []error
	for _, kind := range Kinds() {
		errs = append(errs, reg.Register(kind))
	}
	abilities := Abilities()
	for ability := range sequence.Keys(abilities).Seq() {
		errs = append(errs, reg.RegisterAbility(ability, abilities[ability]...))
	}
	return errors.Join(errs...)
}

// New returns a frozen registry holding the standard catalog.
func New(opts ...states.Option) (*states.Registry, error) {
	reg := states.NewRegistry(opts...)
	if err := Register(reg); err != nil {
		return nil, err
	}
	if err := reg.Freeze(); err != nil {
		return nil, err
	}
	return reg, nil
}

func defaults(k states.Kind) states.Kind {
	k.Categories = append(k.Categories, states.CategoryDefault)
	return k
}

func texture(k states.Kind, rank int) states.Kind {
	k.Categories = append(k.Categories, states.CategoryTexture)
	k.TexturePriority = rank
	return k
}
