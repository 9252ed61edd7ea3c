package states

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zeusync/statesched/internal/core/observability/log"
)

// stub is a configurable Instance used across the package tests.
type stub struct {
	kind    string
	value   any
	active  bool
	fail    error
	panics  bool
	journal *[]string
}

func (p *stub) Kind() string { return p.kind }
func (p *stub) Value() any   { return p.value }

func (p *stub) SetValue(v any) error {
	p.value = v
	return nil
}

func (p *stub) Serialize() ([]byte, error) { return json.Marshal(p.value) }

func (p *stub) Deserialize(data []byte) error {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	p.value = v
	return nil
}

func (p *stub) Active() bool { return p.active }

func (p *stub) Update(float64) error {
	if p.journal != nil {
		*p.journal = append(*p.journal, p.kind)
	}
	if p.panics {
		panic("stub exploded")
	}
	return p.fail
}

func stubConstructor(name string) Constructor {
	return func(_ *Entity, params Params) (Instance, error) {
		return &stub{kind: name, value: params["value"]}, nil
	}
}

func kind(name string, required []string, optional []string, categories ...Category) Kind {
	return Kind{
		Name:       name,
		Required:   required,
		Optional:   optional,
		Categories: categories,
		Construct:  stubConstructor(name),
	}
}

func textureKind(name string, rank int) Kind {
	k := kind(name, nil, nil, CategoryTexture)
	k.TexturePriority = rank
	return k
}

func newRegistry(t *testing.T, kinds ...Kind) *Registry {
	t.Helper()
	r := NewRegistry(WithLogger(log.NewNop()))
	for _, k := range kinds {
		require.NoError(t, r.Register(k))
	}
	return r
}

func frozenRegistry(t *testing.T, abilities map[string][]string, kinds ...Kind) *Registry {
	t.Helper()
	r := newRegistry(t, kinds...)
	for ability, granted := range abilities {
		require.NoError(t, r.RegisterAbility(ability, granted...))
	}
	require.NoError(t, r.Freeze())
	return r
}

// kitchenKinds is a small catalog shaped like the thermal part of the standard one.
func kitchenKinds() []Kind {
	kinds := []Kind{
		kind("Pose", nil, nil),
		kind("Touching", nil, nil, CategoryDefault),
		kind("Temperature", []string{"Pose"}, nil),
		kind("ToggledOn", nil, nil, CategoryTexture),
		kind("HeatSource", nil, []string{"ToggledOn"}, CategoryFire),
		kind("Heated", []string{"Temperature"}, nil, CategorySteam),
		kind("Cooked", []string{"Temperature"}, nil, CategoryTexture),
		kind("Burnt", []string{"Temperature"}, nil, CategoryTexture),
		kind("Frozen", []string{"Temperature"}, nil, CategoryTexture),
		kind("Soaked", nil, nil, CategoryTexture),
	}
	ranks := map[string]int{"Frozen": 4, "Burnt": 3, "Cooked": 2, "Soaked": 1, "ToggledOn": 0}
	for i := range kinds {
		if rank, ok := ranks[kinds[i].Name]; ok {
			kinds[i].TexturePriority = rank
		}
	}
	return kinds
}

func kitchenRegistry(t *testing.T) *Registry {
	t.Helper()
	return frozenRegistry(t, map[string][]string{
		"cookable":   {"Cooked"},
		"burnable":   {"Burnt"},
		"freezable":  {"Frozen"},
		"heatable":   {"Heated"},
		"heatSource": {"HeatSource"},
		"soakable":   {"Soaked"},
		"toggleable": {"ToggledOn"},
	}, kitchenKinds()...)
}

var errStub = errors.New("stub failure")
