package states

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"github.com/zeusync/statesched/internal/core/observability/log"
)

// Registry is the catalog of state kinds and the ability table. It is built
// once at startup through Register/RegisterAbility and frozen with Freeze;
// after a successful Freeze it is read-only and safe to share across goroutines.
type Registry struct {
	kinds     map[string]Kind
	abilities map[string][]string
	frozen    bool

	graph       *Graph
	order       Order
	classifier  *Classifier
	fingerprint uint64

	log log.Log
}

type Option func(*Registry)

// WithLogger sets the logger used for freeze diagnostics.
func WithLogger(l log.Log) Option {
	return func(r *Registry) {
		if l != nil {
			r.log = l
		}
	}
}

func NewRegistry(opts ...Option) *Registry {
	r := &Registry{
		kinds:     make(map[string]Kind, 64),
		abilities: make(map[string][]string, 32),
		log:       log.Provide().Named("states"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds kind to the catalog. Dependencies are resolved at Freeze.
func (r *Registry) Register(kind Kind) error {
	if r.frozen {
		return registrationError(fmt.Sprintf("registry is frozen; cannot register %q", kind.Name))
	}
	if kind.Name == "" {
		return registrationError("state kind with empty name")
	}
	if _, exists := r.kinds[kind.Name]; exists {
		return registrationError(fmt.Sprintf("state %q already registered", kind.Name))
	}
	r.kinds[kind.Name] = kind.clone()
	return nil
}

// RegisterAbility maps ability to the kinds an entity gains by declaring it.
func (r *Registry) RegisterAbility(ability string, kinds ...string) error {
	if r.frozen {
		return registrationError(fmt.Sprintf("registry is frozen; cannot register ability %q", ability))
	}
	if ability == "" {
		return registrationError("ability with empty name")
	}
	if _, exists := r.abilities[ability]; exists {
		return registrationError(fmt.Sprintf("ability %q already registered", ability))
	}
	r.abilities[ability] = slices.Clone(kinds)
	return nil
}

// Freeze validates the catalog, computes the global update order and the
// category tables, and makes the registry immutable. Every unresolved name and
// duplicate texture rank is reported at once. A registry whose Freeze failed
// stays unfrozen.
func (r *Registry) Freeze() error {
	if r.frozen {
		return registrationError("registry already frozen")
	}

	if problems := r.validate(); len(problems) > 0 {
		r.log.Error("state registry validation failed", log.Strings("problems", problems))
		return registrationError(problems...)
	}

	graph := BuildGraph(r)
	order, err := ComputeOrder(graph)
	if err != nil {
		r.log.Error("state dependency graph is not schedulable", log.Error(err))
		return err
	}

	r.graph = graph
	r.order = order
	r.classifier = newClassifier(r.All())
	r.fingerprint = r.computeFingerprint()
	r.frozen = true

	r.log.Info("state registry frozen",
		log.Int("kinds", len(r.kinds)),
		log.Int("abilities", len(r.abilities)),
		log.Uint64("fingerprint", r.fingerprint),
	)
	r.log.Debug("global update order", log.Strings("order", order))
	return nil
}

func (r *Registry) validate() []string {
	var problems []string
	for _, kind := range r.All() {
		for _, dep := range kind.Required {
			if _, ok := r.kinds[dep]; !ok {
				problems = append(problems, fmt.Sprintf("state %q: unknown required dependency %q", kind.Name, dep))
			}
		}
		for _, dep := range kind.Optional {
			if _, ok := r.kinds[dep]; !ok {
				problems = append(problems, fmt.Sprintf("state %q: unknown optional dependency %q", kind.Name, dep))
			}
		}
	}

	for _, ability := range r.Abilities() {
		for _, name := range r.abilities[ability] {
			if _, ok := r.kinds[name]; !ok {
				problems = append(problems, fmt.Sprintf("ability %q: unknown state %q", ability, name))
			}
		}
	}

	ranks := make(map[int][]string)
	for _, kind := range r.All() {
		if kind.HasCategory(CategoryTexture) {
			ranks[kind.TexturePriority] = append(ranks[kind.TexturePriority], kind.Name)
		}
	}
	rankKeys := make([]int, 0, len(ranks))
	for rank := range ranks {
		rankKeys = append(rankKeys, rank)
	}
	sort.Ints(rankKeys)
	for _, rank := range rankKeys {
		if names := ranks[rank]; len(names) > 1 {
			problems = append(problems, fmt.Sprintf("texture priority %d shared by %s", rank, strings.Join(names, ", ")))
		}
	}

	return problems
}

// computeFingerprint digests everything that affects scheduling and snapshots:
// the global order, each kind's dependencies and categories, and the ability table.
func (r *Registry) computeFingerprint() uint64 {
	h := xxhash.New()
	for _, name := range r.order {
		kind := r.kinds[name]
		_, _ = h.WriteString(name)
		_, _ = h.WriteString("|r:" + strings.Join(kind.Required, ","))
		_, _ = h.WriteString("|o:" + strings.Join(kind.Optional, ","))
		categories := make([]string, len(kind.Categories))
		for i, c := range kind.Categories {
			categories[i] = string(c)
		}
		_, _ = h.WriteString("|c:" + strings.Join(categories, ","))
		_, _ = h.WriteString("|p:" + strconv.Itoa(kind.TexturePriority))
		_, _ = h.WriteString("\n")
	}
	for _, ability := range r.Abilities() {
		_, _ = h.WriteString("a:" + ability + "=" + strings.Join(r.abilities[ability], ",") + "\n")
	}
	return h.Sum64()
}

// Get returns a copy of the kind registered under name.
func (r *Registry) Get(name string) (Kind, error) {
	kind, ok := r.kinds[name]
	if !ok {
		return Kind{}, fmt.Errorf("%w: %s", ErrUnknownState, name)
	}
	return kind.clone(), nil
}

// All returns copies of every registered kind in ascending name order.
func (r *Registry) All() []Kind {
	out := make([]Kind, 0, len(r.kinds))
	for _, name := range r.Names() {
		out = append(out, r.kinds[name].clone())
	}
	return out
}

// Names returns every registered kind name in ascending order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.kinds))
	for name := range r.kinds {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Len() int { return len(r.kinds) }

// Ability returns the kinds granted by ability, in registration order.
func (r *Registry) Ability(ability string) ([]string, error) {
	kinds, ok := r.abilities[ability]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownAbility, ability)
	}
	return slices.Clone(kinds), nil
}

// Abilities returns every registered ability name in ascending order.
func (r *Registry) Abilities() []string {
	names := make([]string, 0, len(r.abilities))
	for name := range r.abilities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (r *Registry) Frozen() bool { return r.frozen }

// Graph returns the dependency graph cached at Freeze, or nil before.
func (r *Registry) Graph() *Graph { return r.graph }

// Order returns the global update order cached at Freeze, or nil before.
func (r *Registry) Order() Order { return slices.Clone(r.order) }

// Classifier returns the category tables built at Freeze, or nil before.
func (r *Registry) Classifier() *Classifier { return r.classifier }

// Fingerprint identifies the frozen catalog. Two registries built from the same
// registration calls share a fingerprint.
func (r *Registry) Fingerprint() uint64 { return r.fingerprint }

// Logger returns the logger the registry was built with, for components derived from it.
func (r *Registry) Logger() log.Log { return r.log }
