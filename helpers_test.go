package helmsman

// Test route families. Reference-identity of coordinators matters for
// tree membership, but routes compare by identifier only.

type mainRoute string

func (r mainRoute) ID() string { return string(r) }

type childRoute string

func (r childRoute) ID() string { return string(r) }

type overlayRoute string

func (r overlayRoute) ID() string { return string(r) }

// stubDelegate accepts every member of its family and pushes, unless
// overridden.
type stubDelegate[R Route] struct {
	accepts func(R) bool
	navType func(R) NavigationType
}

func (d stubDelegate[R]) CanHandle(route R) bool {
	if d.accepts == nil {
		return true
	}
	return d.accepts(route)
}

func (d stubDelegate[R]) NavigationType(route R) NavigationType {
	if d.navType == nil {
		return NavigatePush()
	}
	return d.navType(route)
}

// modalDelegate adds lazy modal coordinator construction.
type modalDelegate[R Route] struct {
	stubDelegate[R]
	modal func(R) (Node, error)
}

func (d modalDelegate[R]) ModalCoordinator(route R) (Node, error) {
	if d.modal == nil {
		return nil, nil
	}
	return d.modal(route)
}

// pathDelegate adds deep-link path reconstruction.
type pathDelegate[R Route] struct {
	stubDelegate[R]
	path func(R) []R
}

func (d pathDelegate[R]) NavigationPath(route R) []R {
	if d.path == nil {
		return nil
	}
	return d.path(route)
}

// flowDelegate adds flow-change handling.
type flowDelegate[R Route] struct {
	stubDelegate[R]
	handleFlow func(Route) bool
	probeFlow  func(Route) bool
}

func (d flowDelegate[R]) HandleFlowChange(route Route) bool {
	if d.handleFlow == nil {
		return false
	}
	return d.handleFlow(route)
}

func (d flowDelegate[R]) CanHandleFlowChange(route Route) bool {
	if d.probeFlow == nil {
		return false
	}
	return d.probeFlow(route)
}

// collectReporter records every reported error for assertions.
type collectReporter struct {
	errs []error
}

func (r *collectReporter) Report(err error) { r.errs = append(r.errs, err) }

func mustCoordinator[R Route](t interface{ Fatalf(string, ...any) }, cfg Config[R], opts ...Option) *Coordinator[R] {
	c, err := NewCoordinator(cfg, opts...)
	if err != nil {
		t.Fatalf("NewCoordinator failed: %v", err)
	}
	return c
}

func stackIDs[R Route](snap Snapshot[R]) []string {
	out := make([]string, 0, len(snap.Stack))
	for _, r := range snap.Stack {
		out = append(out, r.ID())
	}
	return out
}

func sameIDs(got []string, want ...string) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range got {
		if got[i] != want[i] {
			return false
		}
	}
	return true
}
