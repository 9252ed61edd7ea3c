package states

import (
	"maps"
	"slices"
)

// Params is the construction payload forwarded from an ability to the states it grants.
type Params map[string]any

// Category tags a kind for external effect and renderer collaborators.
type Category string

const (
	// CategoryDefault kinds are instantiated on every entity regardless of abilities.
	CategoryDefault Category = "default"
	// CategoryFire kinds are interpreted as heat/fire emitters while active.
	CategoryFire Category = "fire"
	// CategorySteam kinds are interpreted as steam/vapor emitters while active.
	CategorySteam Category = "steam"
	// CategoryTexture kinds compete for the texture overlay slot by TexturePriority.
	CategoryTexture Category = "texture"
)

// Trait is a kind-level capability marker.
type Trait uint8

const (
	// TraitFluidSource marks kinds whose instances can emit simulated fluid particles.
	TraitFluidSource Trait = 1 << iota
)

// Constructor builds an instance of a kind bound to entity e.
type Constructor func(e *Entity, params Params) (Instance, error)

// Kind is the immutable descriptor of one semantic state.
type Kind struct {
	Name string

	// Required kinds are updated before this one and are always instantiated with it.
	Required []string
	// Optional kinds are updated before this one when present on the entity.
	Optional []string

	Categories []Category
	// TexturePriority ranks kinds tagged CategoryTexture; higher wins.
	TexturePriority int
	Traits          Trait

	Construct Constructor
}

// Dependencies returns required followed by optional dependency names.
func (k Kind) Dependencies() []string {
	deps := make([]string, 0, len(k.Required)+len(k.Optional))
	deps = append(deps, k.Required...)
	return append(deps, k.Optional...)
}

func (k Kind) HasCategory(c Category) bool {
	return slices.Contains(k.Categories, c)
}

func (k Kind) HasTrait(t Trait) bool {
	return k.Traits&t != 0
}

func (k Kind) clone() Kind {
	k.Required = slices.Clone(k.Required)
	k.Optional = slices.Clone(k.Optional)
	k.Categories = slices.Clone(k.Categories)
	return k
}

// Clone copies params so that kinds sharing an ability payload never alias it.
func (p Params) Clone() Params {
	if p == nil {
		return Params{}
	}
	return maps.Clone(p)
}

// Float reads a numeric param, accepting the int and float types YAML and JSON decode into.
func (p Params) Float(key string, def float64) float64 {
	switch v := p[key].(type) {
	case float64:
		return v
	case float32:
		return float64(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	default:
		return def
	}
}

func (p Params) String(key, def string) string {
	if v, ok := p[key].(string); ok {
		return v
	}
	return def
}

func (p Params) Bool(key string, def bool) bool {
	if v, ok := p[key].(bool); ok {
		return v
	}
	return def
}
