package states

import (
	"fmt"
	"slices"

	"github.com/zeusync/statesched/pkg/sequence"
)

// Classifier holds the static category tables of a frozen registry. It is
// queried by renderer and effect collaborators and never takes part in
// update ordering.
type Classifier struct {
	byKind     map[string][]Category
	byCategory map[Category][]string
	priority   map[string]int
	texture    []string
	fluid      []string
}

func newClassifier(kinds []Kind) *Classifier {
	c := &Classifier{
		byKind:     make(map[string][]Category, len(kinds)),
		byCategory: make(map[Category][]string),
		priority:   make(map[string]int),
	}

	for _, kind := range kinds {
		c.byKind[kind.Name] = slices.Clone(kind.Categories)
		for _, category := range kind.Categories {
			if !slices.Contains(c.byCategory[category], kind.Name) {
				c.byCategory[category] = append(c.byCategory[category], kind.Name)
			}
		}
		if kind.HasCategory(CategoryTexture) {
			c.priority[kind.Name] = kind.TexturePriority
		}
	}

	c.texture = sequence.From(c.byCategory[CategoryTexture]).
		Sort(func(a, b string) bool { return c.priority[a] < c.priority[b] }).
		Collect()

	c.fluid = sequence.Map(
		sequence.From(kinds).Filter(func(k Kind) bool { return k.HasTrait(TraitFluidSource) }),
		func(k Kind) string { return k.Name },
	).Collect()

	return c
}

// Classify returns the categories declared on kind name at registration.
func (c *Classifier) Classify(name string) ([]Category, error) {
	categories, ok := c.byKind[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	return slices.Clone(categories), nil
}

// InCategory reports whether kind name carries category.
func (c *Classifier) InCategory(name string, category Category) bool {
	return slices.Contains(c.byKind[name], category)
}

// Category returns the kinds tagged with category in ascending name order.
func (c *Classifier) Category(category Category) []string {
	return slices.Clone(c.byCategory[category])
}

// DefaultStates are instantiated on every entity regardless of abilities.
func (c *Classifier) DefaultStates() []string { return c.Category(CategoryDefault) }

func (c *Classifier) FireStates() []string { return c.Category(CategoryFire) }

func (c *Classifier) SteamStates() []string { return c.Category(CategorySteam) }

// TextureAffectingStates returns the texture kinds by ascending priority.
func (c *Classifier) TextureAffectingStates() []string { return slices.Clone(c.texture) }

// TexturePriority returns the rank of a texture-affecting kind.
func (c *Classifier) TexturePriority(name string) (int, error) {
	rank, ok := c.priority[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s is not texture-affecting", ErrUnknownState, name)
	}
	return rank, nil
}

// TextureWinner picks the highest-ranked texture-affecting kind among active.
// Kinds outside the texture category are ignored; ok is false if none qualify.
func (c *Classifier) TextureWinner(active []string) (winner string, ok bool) {
	best := 0
	for _, name := range active {
		rank, isTexture := c.priority[name]
		if !isTexture {
			continue
		}
		if !ok || rank > best {
			winner, best, ok = name, rank, true
		}
	}
	return winner, ok
}

// FluidSourceStates returns the kinds carrying TraitFluidSource, in ascending name order.
func (c *Classifier) FluidSourceStates() []string { return slices.Clone(c.fluid) }
