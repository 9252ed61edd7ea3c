package states

import (
	"github.com/zeusync/statesched/pkg/sequence"
)

// Resolution maps each kind an entity must instantiate to its construction params.
type Resolution map[string]Params

// Names returns the resolved kind names in ascending order.
func (r Resolution) Names() []string {
	return sequence.Keys(r).Collect()
}

// Resolver turns declared abilities into the set of kinds an entity must carry.
type Resolver struct {
	reg *Registry
}

func NewResolver(reg *Registry) *Resolver {
	return &Resolver{reg: reg}
}

// Resolve starts from the default states, adds every kind granted by each
// ability with that ability's params, then closes the set under required
// dependencies (added with empty params). Optional dependencies are never
// pulled in.
//
// Abilities are applied in ascending name order; when two abilities grant the
// same kind the later one's params win.
func (r *Resolver) Resolve(abilities map[string]Params) (Resolution, error) {
	if !r.reg.Frozen() {
		return nil, ErrRegistryNotFrozen
	}

	out := make(Resolution, len(abilities)*2+8)
	for _, name := range r.reg.classifier.DefaultStates() {
		out[name] = Params{}
	}

	for ability := range sequence.Keys(abilities).Seq() {
		kinds, err := r.reg.Ability(ability)
		if err != nil {
			return nil, err
		}
		for _, name := range kinds {
			out[name] = abilities[ability].Clone()
		}
	}

	pending := out.Names()
	for len(pending) > 0 {
		name := pending[len(pending)-1]
		pending = pending[:len(pending)-1]
		for _, dep := range r.reg.kinds[name].Required {
			if _, ok := out[dep]; ok {
				continue
			}
			out[dep] = Params{}
			pending = append(pending, dep)
		}
	}

	return out, nil
}
