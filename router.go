package helmsman

import (
	"log/slog"
	"sync"
)

// View is whatever the render layer produces for a route: a bubbletea
// model, a widget tree, anything. The navigation core never inspects it.
type View any

// ViewBuilder maps routes of one family to renderable views. It is an
// external collaborator; BuildView returns nil to decline a route, which
// the router reports as a view-creation failure.
type ViewBuilder[R Route] interface {
	BuildView(route R) View
}

// ViewBuilderFunc adapts a function to the ViewBuilder interface.
type ViewBuilderFunc[R Route] func(route R) View

// BuildView calls f(route).
func (f ViewBuilderFunc[R]) BuildView(route R) View { return f(route) }

// RouterConfig holds the dependencies for creating a Router.
// Only Root is required.
type RouterConfig[R Route] struct {
	// Root is the base destination shown when the stack is empty.
	Root R
	// Views resolves routes to renderable views. Optional.
	Views ViewBuilder[R]
	// Logger receives debug output. Optional; discarded when nil.
	Logger *slog.Logger
	// Reporter receives structured errors. Optional; failures fall back
	// to return values when nil.
	Reporter ErrorReporter
}

// Router holds the navigation state for exactly one coordinator and
// exposes atomic mutation operations. Observers subscribed through
// Subscribe are notified after every stack-affecting mutation with the
// ordered sequence [root] + stack.
//
// All operations are synchronous and unconditional: given valid input
// they mutate state and return. State access is mutex-guarded, but
// callers are expected to drive a router from a single logical UI
// goroutine.
type Router[R Route] struct {
	mu        sync.Mutex
	st        navState[R]
	views     ViewBuilder[R]
	logger    *slog.Logger
	reporter  ErrorReporter
	observers *observerSet
}

// NewRouter creates a Router rooted at cfg.Root.
func NewRouter[R Route](cfg RouterConfig[R]) *Router[R] {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Router[R]{
		st:        navState[R]{root: cfg.Root},
		views:     cfg.Views,
		logger:    logger,
		reporter:  cfg.Reporter,
		observers: newObserverSet(logger),
	}
}

// State returns a read-only snapshot of the current navigation state.
func (r *Router[R]) State() Snapshot[R] {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st.snapshot()
}

// Push appends route to the navigation stack. Pushing the root route is
// treated as returning to the root: the stack is cleared instead, so the
// stack never contains the root.
func (r *Router[R]) Push(route R) {
	r.mu.Lock()
	if route.ID() == r.st.root.ID() {
		r.st.stack = r.st.stack[:0]
	} else {
		r.st.stack = append(r.st.stack, route)
	}
	routes := r.st.routes()
	r.mu.Unlock()

	r.logger.Debug("router push", "route", route.ID(), "depth", len(routes)-1)
	r.observers.notify(routes)
}

// Pop removes the topmost pushed route. It returns false, without
// mutating or notifying, when the stack is already empty; the owning
// coordinator treats that as "at root" and decides whether it means
// dismissal of the coordinator itself.
func (r *Router[R]) Pop() bool {
	r.mu.Lock()
	if len(r.st.stack) == 0 {
		r.mu.Unlock()
		return false
	}
	r.st.stack = r.st.stack[:len(r.st.stack)-1]
	routes := r.st.routes()
	r.mu.Unlock()

	r.observers.notify(routes)
	return true
}

// Replace swaps the topmost pushed route for route. On an empty stack the
// route is pushed instead; the root is never touched.
func (r *Router[R]) Replace(route R) {
	r.mu.Lock()
	if n := len(r.st.stack); n > 0 {
		r.st.stack = r.st.stack[:n-1]
	}
	if route.ID() != r.st.root.ID() {
		r.st.stack = append(r.st.stack, route)
	}
	routes := r.st.routes()
	r.mu.Unlock()

	r.observers.notify(routes)
}

// SetRoot replaces the base destination and clears the entire stack.
// Reserved for major flow transitions, not regular navigation.
func (r *Router[R]) SetRoot(route R) {
	r.mu.Lock()
	r.st.root = route
	r.st.stack = nil
	routes := r.st.routes()
	r.mu.Unlock()

	r.logger.Debug("router root changed", "route", route.ID())
	r.observers.notify(routes)
}

// PopToRoot clears the entire stack.
func (r *Router[R]) PopToRoot() {
	r.mu.Lock()
	r.st.stack = nil
	routes := r.st.routes()
	r.mu.Unlock()

	r.observers.notify(routes)
}

// Present records route as the currently presented modal.
func (r *Router[R]) Present(route R) {
	r.mu.Lock()
	r.st.presented = &route
	r.mu.Unlock()
}

// DismissModal clears the presented modal route. The detour, if any, is
// untouched.
func (r *Router[R]) DismissModal() {
	r.mu.Lock()
	r.st.presented = nil
	r.mu.Unlock()
}

// PresentDetour records a cross-family overlay route, independent of the
// modal slot.
func (r *Router[R]) PresentDetour(route Route) {
	r.mu.Lock()
	r.st.detour = route
	r.mu.Unlock()
}

// DismissDetour clears the detour route. The presented modal, if any, is
// untouched.
func (r *Router[R]) DismissDetour() {
	r.mu.Lock()
	r.st.detour = nil
	r.mu.Unlock()
}

// DismissAllModals clears both the presented modal and the detour.
func (r *Router[R]) DismissAllModals() {
	r.mu.Lock()
	r.st.presented = nil
	r.st.detour = nil
	r.mu.Unlock()
}

// SelectTab records the active tab index. Negative indices are rejected;
// range validation against the sibling list happens at the coordinator.
func (r *Router[R]) SelectTab(index int) error {
	if index < 0 {
		err := NewTabError(index, 0)
		r.report(err)
		return err
	}
	r.mu.Lock()
	r.st.selectedTab = index
	r.mu.Unlock()
	return nil
}

// ResetToRoot clears the stack, the presented modal, and the detour
// together. Used for cross-branch cleanup.
func (r *Router[R]) ResetToRoot() {
	r.mu.Lock()
	r.st.stack = nil
	r.st.presented = nil
	r.st.detour = nil
	routes := r.st.routes()
	r.mu.Unlock()

	r.observers.notify(routes)
}

// View resolves route to a renderable view via the external view builder.
// It returns nil, and reports a view-creation failure, when no builder is
// configured or the builder declines the route.
func (r *Router[R]) View(route R) View {
	if r.views == nil {
		r.report(NewViewError(route.ID()))
		return nil
	}
	v := r.views.BuildView(route)
	if v == nil {
		r.report(NewViewError(route.ID()))
	}
	return v
}

// Subscribe registers an observer for route changes and returns an
// identifier for Unsubscribe.
func (r *Router[R]) Subscribe(fn RouteObserver) string {
	return r.observers.subscribe(fn)
}

// Unsubscribe removes a previously registered observer.
func (r *Router[R]) Unsubscribe(id string) bool {
	return r.observers.unsubscribe(id)
}

func (r *Router[R]) report(err error) {
	if r.reporter != nil {
		r.reporter.Report(err)
	}
}
