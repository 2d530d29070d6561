package helmsman

// navState is the mutable navigation state owned by exactly one Router.
// All mutation goes through Router methods; nothing else touches it.
type navState[R Route] struct {
	// root is the base destination shown when the stack is empty.
	root R
	// stack is the ordered push history; the last element is the
	// topmost pushed screen. The stack never contains root.
	stack []R
	// selectedTab indexes a sibling list; meaningful only for
	// tab-hosting coordinators.
	selectedTab int
	// presented is the route currently shown as a modal owned by this
	// router, nil when no modal is up.
	presented *R
	// detour is a cross-family overlay route, independent of presented.
	// Dismissing one never affects the other.
	detour Route
}

// Snapshot is a read-only copy of a router's navigation state.
type Snapshot[R Route] struct {
	Root        R
	Stack       []R
	SelectedTab int
	Presented   *R
	Detour      Route
}

// CurrentRoute returns the route the user is effectively looking at:
// the presented modal if any, otherwise the top of the stack, otherwise
// the root.
func (s Snapshot[R]) CurrentRoute() R {
	if s.Presented != nil {
		return *s.Presented
	}
	if n := len(s.Stack); n > 0 {
		return s.Stack[n-1]
	}
	return s.Root
}

// snapshot copies the state into an exported, caller-safe view.
func (st *navState[R]) snapshot() Snapshot[R] {
	snap := Snapshot[R]{
		Root:        st.root,
		SelectedTab: st.selectedTab,
		Detour:      st.detour,
	}
	if len(st.stack) > 0 {
		snap.Stack = make([]R, len(st.stack))
		copy(snap.Stack, st.stack)
	}
	if st.presented != nil {
		p := *st.presented
		snap.Presented = &p
	}
	return snap
}

// routes returns the ordered sequence [root] + stack, the payload of
// change notifications.
func (st *navState[R]) routes() []Route {
	out := make([]Route, 0, len(st.stack)+1)
	out = append(out, st.root)
	for _, r := range st.stack {
		out = append(out, r)
	}
	return out
}
