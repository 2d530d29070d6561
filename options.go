package helmsman

// settings holds optional per-coordinator policy configuration.
type settings struct {
	cleanOnBubble   func(Route) bool
	dismissModalFor func(Route) bool
}

// Option configures a Coordinator.
type Option func(*settings)

// WithBubbleCleanup sets the policy consulted when an unhandled route
// bubbles to the parent: returning true clears this coordinator's stack,
// modal, and detour before delegation, so leaving the branch leaves no
// dangling UI state. The same policy gates cleanup of abandoned sibling
// branches during cross-branch delegation. The default keeps all state.
func WithBubbleCleanup(policy func(Route) bool) Option {
	return func(s *settings) { s.cleanOnBubble = policy }
}

// WithCleanOnBubble is a convenience for an unconditional bubble-cleanup
// policy.
func WithCleanOnBubble(clean bool) Option {
	return func(s *settings) {
		s.cleanOnBubble = func(Route) bool { return clean }
	}
}

// WithModalDismissPolicy narrows the modal auto-dismiss rule. The policy
// is consulted when a presented modal's subtree cannot handle the
// in-flight route; returning false keeps the modal open (for example to
// preserve same-family modals). The default always dismisses.
func WithModalDismissPolicy(policy func(Route) bool) Option {
	return func(s *settings) { s.dismissModalFor = policy }
}
