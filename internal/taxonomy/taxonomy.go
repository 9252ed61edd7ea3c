// Package taxonomy maps object categories to the abilities (and ability
// params) objects of that category are spawned with.
package taxonomy

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/zeusync/statesched/internal/core/states"
	"github.com/zeusync/statesched/pkg/sequence"
)

const currentVersion = 1

// Taxonomy is read-only after Load/Parse.
type Taxonomy struct {
	classes map[string]map[string]states.Params
	aliases map[string]string
}

type document struct {
	Version int                                 `yaml:"version"`
	Classes map[string]map[string]states.Params `yaml:"classes"`
	// Aliases maps simulator categories onto taxonomy class names.
	Aliases map[string]string `yaml:"aliases"`
}

// Empty returns a taxonomy with no classes; every lookup yields no abilities.
func Empty() *Taxonomy {
	return &Taxonomy{
		classes: map[string]map[string]states.Params{},
		aliases: map[string]string{},
	}
}

func Load(path string) (*Taxonomy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read taxonomy %s", path)
	}
	t, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "taxonomy %s", path)
	}
	return t, nil
}

func Parse(data []byte) (*Taxonomy, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, errors.Wrap(err, "parse")
	}
	if doc.Version != currentVersion {
		return nil, errors.Errorf("unsupported taxonomy version: %d", doc.Version)
	}

	t := Empty()
	for class, abilities := range doc.Classes {
		t.classes[class] = cloneAbilities(abilities)
	}
	for category, class := range doc.Aliases {
		if _, ok := t.classes[class]; !ok {
			return nil, errors.Errorf("alias %q refers to unknown class %q", category, class)
		}
		t.aliases[category] = class
	}
	return t, nil
}

// Class returns the taxonomy class for category: its alias if one is
// declared, otherwise category itself when it names a class.
func (t *Taxonomy) Class(category string) (string, bool) {
	if class, ok := t.aliases[category]; ok {
		return class, true
	}
	if _, ok := t.classes[category]; ok {
		return category, true
	}
	return "", false
}

// Abilities returns a copy of the abilities of category. Unknown categories
// have no abilities.
func (t *Taxonomy) Abilities(category string) map[string]states.Params {
	class, ok := t.Class(category)
	if !ok {
		return map[string]states.Params{}
	}
	return cloneAbilities(t.classes[class])
}

// Classes returns every class name in ascending order.
func (t *Taxonomy) Classes() []string {
	return sequence.Keys(t.classes).Collect()
}

// Validate reports every ability used by the taxonomy that reg does not know.
func (t *Taxonomy) Validate(reg *states.Registry) error {
	var problems []string
	for _, class := range t.Classes() {
		for ability := range sequence.Keys(t.classes[class]).Seq() {
			if _, err := reg.Ability(ability); err != nil {
				problems = append(problems, "class "+class+": "+err.Error())
			}
		}
	}
	if len(problems) > 0 {
		return &states.RegistrationError{Problems: problems}
	}
	return nil
}

func cloneAbilities(in map[string]states.Params) map[string]states.Params {
	out := make(map[string]states.Params, len(in))
	for ability, params := range in {
		out[ability] = params.Clone()
	}
	return out
}
