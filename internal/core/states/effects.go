package states

// Effects is what renderer and particle collaborators need to present an entity
// after its update pass.
type Effects struct {
	Fire  bool
	Steam bool
	// Texture is the winning texture-affecting kind, empty when none is active.
	Texture string
}

// ActiveStates returns the instantiated kinds of e that report themselves
// active, in ascending name order.
func ActiveStates(e *Entity) []string {
	var active []string
	for _, name := range e.Names() {
		inst, _ := e.State(name)
		if a, ok := inst.(Activatable); ok && a.Active() {
			active = append(active, name)
		}
	}
	return active
}

// ResolveEffects enables the fire and steam emitters if any active state of
// e is in the respective category and picks the texture overlay by priority.
func ResolveEffects(c *Classifier, e *Entity) Effects {
	active := ActiveStates(e)

	var fx Effects
	for _, name := range active {
		fx.Fire = fx.Fire || c.InCategory(name, CategoryFire)
		fx.Steam = fx.Steam || c.InCategory(name, CategorySteam)
	}
	if winner, ok := c.TextureWinner(active); ok {
		fx.Texture = winner
	}
	return fx
}
