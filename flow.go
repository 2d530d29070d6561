package helmsman

// FlowOrchestrator specializes Coordinator with a single-slot "current
// flow": a top-level, mutually exclusive navigation mode such as
// logged-out versus logged-in. Major state transitions replace the flow
// wholesale, tearing down the outgoing subtree so it becomes collectible.
//
// A delegate implementing FlowHandler is consulted when a route bubbles
// all the way up without being handled, letting the orchestrator decide
// whether the route signals a flow switch or a genuine failure.
type FlowOrchestrator[R Route] struct {
	*Coordinator[R]
	current Node
}

// NewFlowOrchestrator creates a flow-orchestrating coordinator.
func NewFlowOrchestrator[R Route](cfg Config[R], opts ...Option) (*FlowOrchestrator[R], error) {
	base, err := NewCoordinator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	f := &FlowOrchestrator[R]{Coordinator: base}
	base.self = f
	base.defaultChildContext = ContextRoot
	return f, nil
}

// CurrentFlow returns the active flow coordinator, or nil before the
// first transition.
func (f *FlowOrchestrator[R]) CurrentFlow() Node { return f.current }

// TransitionToFlow replaces the current flow with next, rooted at root:
// the outgoing flow's entire subtree is detached and torn down, the
// orchestrator's own root changes (so the externally observed top-level
// mode changes), and next becomes the current flow.
func (f *FlowOrchestrator[R]) TransitionToFlow(next Node, root R) error {
	if next == nil {
		err := NewConfigurationError("cannot transition to nil flow", nil)
		f.report(err)
		return err
	}
	if f.current != nil {
		f.RemoveChild(f.current)
		f.current = nil
	}
	f.router.SetRoot(root)
	if err := f.AddChild(next, ContextRoot); err != nil {
		return err
	}
	f.current = next
	f.logger.Info("flow transition", "coordinator", f.id, "root", root.ID(), "flow", next.ID())
	return nil
}
