package helmsman

// Route is an immutable descriptor of a navigation destination.
//
// Implementations must return a stable identifier that is unique per
// logical destination, including any associated data: a profile route for
// user 42 and one for user 43 must produce different identifiers. Two
// routes with equal identifiers are interchangeable as navigation targets.
type Route interface {
	// ID returns the stable unique identifier for this destination.
	ID() string
}

// Match attempts to narrow a type-erased route into a coordinator's
// route family R. It is the explicit capability check used throughout the
// resolution algorithm instead of ambient dynamic typing.
func Match[R Route](route Route) (R, bool) {
	r, ok := route.(R)
	return r, ok
}

// RouteEqual reports whether two routes identify the same destination.
// Either route may be nil; two nil routes are not considered equal.
func RouteEqual(a, b Route) bool {
	if a == nil || b == nil {
		return false
	}
	return a.ID() == b.ID()
}

// NavKind identifies how a route should be presented.
type NavKind int

const (
	// NavPush appends the route to the navigation stack.
	NavPush NavKind = iota
	// NavReplace swaps the topmost pushed route for the new one.
	NavReplace
	// NavModal presents the route in a modal coordinator.
	NavModal
	// NavTabSwitch activates the tab at the associated index.
	NavTabSwitch
	// NavDetour overlays the route while preserving all underlying
	// state. Detour routes are rejected by Navigate and must go through
	// PresentDetour explicitly.
	NavDetour
)

// String returns the string representation of the navigation kind.
func (k NavKind) String() string {
	switch k {
	case NavPush:
		return "push"
	case NavReplace:
		return "replace"
	case NavModal:
		return "modal"
	case NavTabSwitch:
		return "tabSwitch"
	case NavDetour:
		return "detour"
	default:
		return "unknown"
	}
}

// NavigationType describes how a coordinator wants a route presented.
// Delegates return one from NavigationType(route).
type NavigationType struct {
	Kind NavKind
	// TabIndex is the target tab position, meaningful only for
	// NavTabSwitch.
	TabIndex int
}

// NavigatePush returns the navigation type for a stack push.
func NavigatePush() NavigationType { return NavigationType{Kind: NavPush} }

// NavigateReplace returns the navigation type for an in-place replacement.
func NavigateReplace() NavigationType { return NavigationType{Kind: NavReplace} }

// NavigateModal returns the navigation type for a modal presentation.
func NavigateModal() NavigationType { return NavigationType{Kind: NavModal} }

// NavigateTab returns the navigation type for switching to the tab at index.
func NavigateTab(index int) NavigationType {
	return NavigationType{Kind: NavTabSwitch, TabIndex: index}
}

// NavigateDetour returns the navigation type for a detour overlay.
func NavigateDetour() NavigationType { return NavigationType{Kind: NavDetour} }

// PresentationContext describes how a coordinator was attached to its
// parent. It is assigned by the framework during tree mutation and drives
// back-navigation affordances in the render layer.
type PresentationContext int

const (
	// ContextRoot marks a detached or top-level coordinator.
	ContextRoot PresentationContext = iota
	// ContextTab marks a coordinator hosted as a tab.
	ContextTab
	// ContextPushed marks a coordinator reached by a stack push.
	ContextPushed
	// ContextModal marks a coordinator presented modally.
	ContextModal
	// ContextDetour marks a coordinator presented as a detour overlay.
	ContextDetour
)

// String returns the string representation of the presentation context.
func (c PresentationContext) String() string {
	switch c {
	case ContextRoot:
		return "root"
	case ContextTab:
		return "tab"
	case ContextPushed:
		return "pushed"
	case ContextModal:
		return "modal"
	case ContextDetour:
		return "detour"
	default:
		return "unknown"
	}
}
