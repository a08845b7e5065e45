package deco

// Identity is what a wrapper inherits from the function it wraps.
type Identity struct {
	name  string
	doc   string
	state *State
}

func newIdentity(name, doc string) Identity {
	return Identity{
		name:  name,
		doc:   doc,
		state: newState(),
	}
}

// Name returns the name of the innermost function.
func (id *Identity) Name() string { return id.name }

// Doc returns the documentation of the innermost function.
func (id *Identity) Doc() string { return id.doc }

// State returns the shared state bag.
func (id *Identity) State() *State { return id.state }

// Calls is a shortcut for State().Calls().
func (id *Identity) Calls() int64 { return id.state.Calls() }

// Propagate copies name and doc from src onto dst and makes dst share src's
// state bag. Repeating it with the same src changes nothing.
func Propagate(dst, src *Identity) {
	dst.name = src.name
	dst.doc = src.doc
	dst.state = src.state
}
