package helmsman

// TabCoordinator specializes Coordinator for tab-hosting navigation:
// children added without an explicit presentation context are marked as
// tabs, and the selected tab index maps into the child list. Concrete
// delegates are expected to map routes to tab indices via NavigateTab in
// their NavigationType implementation.
type TabCoordinator[R Route] struct {
	*Coordinator[R]
}

// NewTabCoordinator creates a tab-hosting coordinator.
func NewTabCoordinator[R Route](cfg Config[R], opts ...Option) (*TabCoordinator[R], error) {
	base, err := NewCoordinator(cfg, opts...)
	if err != nil {
		return nil, err
	}
	t := &TabCoordinator[R]{Coordinator: base}
	base.self = t
	base.defaultChildContext = ContextTab
	return t, nil
}

// SwitchToTab activates the tab at index. The index is validated against
// the child list; out-of-range switches are rejected and reported.
func (t *TabCoordinator[R]) SwitchToTab(index int) error {
	if index < 0 || index >= len(t.children) {
		err := NewTabError(index, len(t.children))
		t.report(err)
		return err
	}
	return t.router.SelectTab(index)
}

// TabIndex returns the tab position of child, or -1 when child is not a
// direct child of this coordinator.
func (t *TabCoordinator[R]) TabIndex(child Node) int {
	for i, ch := range t.children {
		if ch == child {
			return i
		}
	}
	return -1
}

// SelectedTab returns the coordinator hosted at the currently selected
// tab, or nil when the selection is out of range.
func (t *TabCoordinator[R]) SelectedTab() Node {
	idx := t.router.State().SelectedTab
	if idx < 0 || idx >= len(t.children) {
		return nil
	}
	return t.children[idx]
}
