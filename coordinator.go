package helmsman

import (
	"log/slog"

	"github.com/google/uuid"
)

// Delegate supplies the application-specific behavior of a coordinator
// for one route family. Implementations may additionally satisfy
// ModalProvider, PathProvider, or FlowHandler to opt into modal
// presentation, deep-link path reconstruction, or flow transitions.
type Delegate[R Route] interface {
	// CanHandle reports whether this coordinator accepts the specific
	// route variant. A coordinator may own a route family but still
	// decline members that only a child handles.
	CanHandle(route R) bool

	// NavigationType describes how an accepted route should be
	// presented.
	NavigationType(route R) NavigationType
}

// ModalProvider is implemented by delegates whose coordinators present
// modal routes. ModalCoordinator locates, or lazily constructs, the
// coordinator that will own the modal presentation of route.
type ModalProvider[R Route] interface {
	ModalCoordinator(route R) (Node, error)
}

// PathProvider is implemented by delegates that reconstruct intermediate
// navigation steps for deep destinations. NavigationPath returns the full
// ordered sequence of routes to push, ending in route itself, so the
// back-stack stays coherent for manual back-navigation. Returning nil or
// an empty slice means "navigate directly".
type PathProvider[R Route] interface {
	NavigationPath(route R) []R
}

// FlowHandler is implemented by delegates of flow-orchestrating
// coordinators. HandleFlowChange is invoked when a route bubbles all the
// way to the coordinator without being handled; returning true means the
// handler performed a flow transition for it. CanHandleFlowChange is the
// side-effect-free probe counterpart.
type FlowHandler interface {
	HandleFlowChange(route Route) bool
	CanHandleFlowChange(route Route) bool
}

// Node is the uniform interface over every coordinator in the tree,
// regardless of route family. The unexported protocol methods keep
// implementations inside this package; applications compose behavior
// through Delegate instead of implementing Node.
type Node interface {
	// ID returns the stable identity of this node.
	ID() string
	// Navigate attempts to display route somewhere in the tree
	// reachable from this node and reports whether any coordinator
	// accepted it.
	Navigate(route Route) bool
	// CanNavigate is a side-effect-free dry run of Navigate.
	CanNavigate(route Route) bool
	// HandleDeeplink resolves externally triggered routes: the whole
	// reachable tree is searched before local priority applies.
	HandleDeeplink(route Route) bool
	// Children returns the ordered child coordinators.
	Children() []Node
	// Parent returns the parent coordinator, nil for a detached root.
	Parent() Node
	// PresentationContext describes how this node was attached to its
	// parent.
	PresentationContext() PresentationContext
	// ResetToCleanState clears the stack, dismisses the modal and the
	// detour, and tears down their coordinators.
	ResetToCleanState()

	canHandle(route Route) bool
	acceptsNavigation(route Route) bool
	findHandler(route Route) Node
	navigateFrom(route Route, from Node) bool
	canNavigateFrom(route Route, from Node) bool
	deeplinkFrom(route Route, from Node) bool
	setParent(p Node)
	setContext(ctx PresentationContext)
	shouldCleanState(route Route) bool
	dismissModalChild(child Node)
	dismissDetourChild(child Node)
	teardown()
}

// Config holds the dependencies for creating a Coordinator.
// Root and Delegate are required.
type Config[R Route] struct {
	// Root is the coordinator's base destination.
	Root R
	// Delegate supplies route acceptance and navigation-type decisions.
	Delegate Delegate[R]
	// Views resolves this family's routes to renderable views. Optional.
	Views ViewBuilder[R]
	// Logger receives debug output. Optional; discarded when nil.
	Logger *slog.Logger
	// Reporter receives structured errors. Optional.
	Reporter ErrorReporter
}

// Coordinator is a tree node owning the navigation state for one route
// family. It wraps an exclusively owned Router and implements the
// route-resolution algorithm: local handling first, then exhaustive
// depth-first search of the subtree (children in order, then the modal
// slot), then bubbling to the parent.
//
// Coordinators form a single-ownership tree: a node is referenced as a
// child, modal, or detour of at most one parent at a time, and the
// parent reference is a back-pointer only, never ownership.
type Coordinator[R Route] struct {
	id       string
	router   *Router[R]
	delegate Delegate[R]
	logger   *slog.Logger
	reporter ErrorReporter

	// self is the outermost Node identity; specializations embedding
	// Coordinator set it so tree membership tests compare the wrapper,
	// not the embedded base.
	self Node

	parent   Node
	children []Node
	modal    Node
	detour   Node
	presCtx  PresentationContext

	// defaultChildContext is assigned to children attached without an
	// explicit presentation context.
	defaultChildContext PresentationContext

	flow            FlowHandler
	cleanOnBubble   func(Route) bool
	dismissModalFor func(Route) bool
}

// NewCoordinator creates a Coordinator for cfg.Root's route family. The
// coordinator's Router is created here and never replaced.
func NewCoordinator[R Route](cfg Config[R], opts ...Option) (*Coordinator[R], error) {
	if cfg.Delegate == nil {
		return nil, NewConfigurationError("coordinator requires a delegate", nil)
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}

	var s settings
	for _, opt := range opts {
		opt(&s)
	}

	c := &Coordinator[R]{
		id:                  uuid.NewString(),
		delegate:            cfg.Delegate,
		logger:              logger,
		reporter:            cfg.Reporter,
		presCtx:             ContextRoot,
		defaultChildContext: ContextPushed,
		cleanOnBubble:       s.cleanOnBubble,
		dismissModalFor:     s.dismissModalFor,
	}
	c.self = c
	c.router = NewRouter(RouterConfig[R]{
		Root:     cfg.Root,
		Views:    cfg.Views,
		Logger:   logger,
		Reporter: cfg.Reporter,
	})

	if fh, ok := cfg.Delegate.(FlowHandler); ok {
		c.flow = fh
	}
	return c, nil
}

// ID returns the coordinator's unique identity.
func (c *Coordinator[R]) ID() string { return c.id }

// Router returns the coordinator's exclusively owned router.
func (c *Coordinator[R]) Router() *Router[R] { return c.router }

// Parent returns the parent coordinator, or nil for a detached root.
func (c *Coordinator[R]) Parent() Node { return c.parent }

// Children returns a copy of the ordered child list.
func (c *Coordinator[R]) Children() []Node {
	out := make([]Node, len(c.children))
	copy(out, c.children)
	return out
}

// ModalCoordinator returns the currently presented modal coordinator,
// or nil.
func (c *Coordinator[R]) ModalCoordinator() Node { return c.modal }

// DetourCoordinator returns the currently presented detour coordinator,
// or nil.
func (c *Coordinator[R]) DetourCoordinator() Node { return c.detour }

// PresentationContext describes how this coordinator was attached to its
// parent.
func (c *Coordinator[R]) PresentationContext() PresentationContext { return c.presCtx }

// Navigate attempts to display route somewhere in the tree reachable
// from this coordinator. It returns whether any coordinator accepted it.
//
// Resolution is deterministic: local handling always wins over
// delegation, delegation to descendants always wins over bubbling, and
// among descendants the first match in child-list order wins, with the
// modal slot checked after sibling children.
func (c *Coordinator[R]) Navigate(route Route) bool {
	return c.navigateFrom(route, nil)
}

// CanNavigate reports whether Navigate would succeed for route, without
// mutating anything. UIs use it to decide affordance visibility.
func (c *Coordinator[R]) CanNavigate(route Route) bool {
	return c.canNavigateFrom(route, nil)
}

// HandleDeeplink resolves an externally triggered route (push
// notification, URL scheme). Unlike Navigate, the entry point is always
// "search the whole reachable tree starting here": this coordinator has
// no local priority beyond being first in the search order.
func (c *Coordinator[R]) HandleDeeplink(route Route) bool {
	return c.deeplinkFrom(route, nil)
}

// Pop removes the topmost pushed route. When the stack is already empty
// and this coordinator is presented as a modal or detour, the pop is
// treated as a request to dismiss the coordinator itself.
func (c *Coordinator[R]) Pop() {
	if c.router.Pop() {
		return
	}
	p := c.parent
	if p == nil {
		return
	}
	switch c.presCtx {
	case ContextModal:
		p.dismissModalChild(c.self)
	case ContextDetour:
		p.dismissDetourChild(c.self)
	}
}

// AddChild attaches child to this coordinator. Without an explicit
// presentation context the child is marked as pushed. The mutation is
// rejected, with no partial effect, if the child already has a parent or
// the attachment would create a cycle.
func (c *Coordinator[R]) AddChild(child Node, ctx ...PresentationContext) error {
	if child == nil {
		err := NewConfigurationError("cannot attach nil child", nil)
		c.report(err)
		return err
	}
	if err := c.checkAttachable(child); err != nil {
		return err
	}
	pctx := c.defaultChildContext
	if len(ctx) > 0 {
		pctx = ctx[0]
	}
	child.setParent(c.self)
	child.setContext(pctx)
	c.children = append(c.children, child)
	return nil
}

// RemoveChild detaches child and tears down its entire subtree, making
// it collectible. It returns false if child is not a direct child.
func (c *Coordinator[R]) RemoveChild(child Node) bool {
	for i, ch := range c.children {
		if ch == child {
			c.children = append(c.children[:i], c.children[i+1:]...)
			child.teardown()
			return true
		}
	}
	return false
}

// PresentModal presents child as this coordinator's modal, recording
// presenting as the presented route. An already presented modal is
// dismissed first; a coordinator has at most one modal at a time.
func (c *Coordinator[R]) PresentModal(child Node, presenting R) error {
	if child == nil {
		err := NewConfigurationError("cannot present nil modal coordinator", ErrModalNotConfigured)
		c.report(err)
		return err
	}
	if err := c.checkAttachable(child); err != nil {
		return err
	}
	if c.modal != nil {
		c.DismissModal()
	}
	child.setParent(c.self)
	child.setContext(ContextModal)
	c.modal = child
	c.router.Present(presenting)
	c.logger.Debug("modal presented", "coordinator", c.id, "route", presenting.ID())
	return nil
}

// DismissModal dismisses the presented modal, tearing down its subtree.
// The detour, if any, is untouched.
func (c *Coordinator[R]) DismissModal() {
	if c.modal != nil {
		c.modal.teardown()
		c.modal = nil
	}
	c.router.DismissModal()
}

// PresentDetour presents child as a detour overlay showing route. The
// detour slot is independent of the modal slot: presenting or dismissing
// one never affects the other. The route may belong to any family.
func (c *Coordinator[R]) PresentDetour(child Node, route Route) error {
	if child == nil {
		err := NewConfigurationError("cannot present nil detour coordinator", nil)
		c.report(err)
		return err
	}
	if err := c.checkAttachable(child); err != nil {
		return err
	}
	if c.detour != nil {
		c.DismissDetour()
	}
	child.setParent(c.self)
	child.setContext(ContextDetour)
	c.detour = child
	c.router.PresentDetour(route)
	return nil
}

// DismissDetour dismisses the detour overlay, tearing down its subtree.
// The presented modal, if any, is untouched.
func (c *Coordinator[R]) DismissDetour() {
	if c.detour != nil {
		c.detour.teardown()
		c.detour = nil
	}
	c.router.DismissDetour()
}

// ResetToCleanState clears the stack, dismisses the modal and detour,
// and tears down their coordinators.
func (c *Coordinator[R]) ResetToCleanState() {
	if c.modal != nil {
		c.modal.teardown()
		c.modal = nil
	}
	if c.detour != nil {
		c.detour.teardown()
		c.detour = nil
	}
	c.router.ResetToRoot()
}

// -----------------------------------------------------------------------------
// Resolution algorithm
// -----------------------------------------------------------------------------

func (c *Coordinator[R]) navigateFrom(route Route, from Node) bool {
	// Step 1: local handling always wins.
	if c.canHandle(route) {
		return c.handleLocal(route)
	}

	// Step 2: exhaustive subtree search, children in order, modal last.
	if target := c.searchChildren(route, from); target != nil {
		c.cleanupForDelegation(route, target)
		return target.navigateFrom(route, c.self)
	}

	// Step 3: bubble to the parent.
	if p := c.parent; p != nil && p != from {
		if c.shouldCleanState(route) {
			c.ResetToCleanState()
		} else {
			c.maybeDismissModal(route)
		}
		return p.navigateFrom(route, c.self)
	}

	// Step 4: a flow handler may treat the unhandled route as a flow
	// transition before this counts as failure.
	if c.flow != nil && c.flow.HandleFlowChange(route) {
		return true
	}

	c.logger.Debug("navigation failed", "coordinator", c.id, "route", route.ID())
	c.report(NewNavigationError("unhandled route", ErrNavigationFailed).
		WithCoordinator(c.id).
		WithRoute(route.ID()))
	return false
}

func (c *Coordinator[R]) canNavigateFrom(route Route, from Node) bool {
	if c.canHandle(route) {
		return c.acceptsNavigation(route)
	}
	if target := c.searchChildren(route, from); target != nil {
		return target.acceptsNavigation(route)
	}
	if p := c.parent; p != nil && p != from {
		return p.canNavigateFrom(route, c.self)
	}
	if c.flow != nil {
		return c.flow.CanHandleFlowChange(route)
	}
	return false
}

func (c *Coordinator[R]) deeplinkFrom(route Route, from Node) bool {
	if c.canHandle(route) {
		return c.handleLocal(route)
	}
	if target := c.searchChildren(route, from); target != nil {
		c.cleanupForDelegation(route, target)
		return target.navigateFrom(route, c.self)
	}
	if p := c.parent; p != nil && p != from {
		if c.shouldCleanState(route) {
			c.ResetToCleanState()
		} else {
			c.maybeDismissModal(route)
		}
		return p.deeplinkFrom(route, c.self)
	}
	c.report(NewNavigationError("unhandled deeplink", ErrNavigationFailed).
		WithCoordinator(c.id).
		WithRoute(route.ID()).
		WithContext("deeplink"))
	return false
}

// handleLocal dispatches an accepted route according to its navigation
// type. The modal auto-dismiss rule runs first: a presented modal whose
// subtree cannot handle the route no longer corresponds to the user's
// target and is dismissed before the transition.
func (c *Coordinator[R]) handleLocal(route Route) bool {
	r, ok := Match[R](route)
	if !ok {
		return false
	}

	c.maybeDismissModal(route)

	nt := c.delegate.NavigationType(r)
	c.logger.Debug("handling route", "coordinator", c.id, "route", r.ID(), "type", nt.Kind.String())

	if nt.Kind == NavPush {
		if path, ok := c.reconstructedPath(r); ok {
			for _, step := range path {
				c.router.Push(step)
			}
			return true
		}
	}

	switch nt.Kind {
	case NavPush:
		c.router.Push(r)
	case NavReplace:
		c.router.Replace(r)
	case NavTabSwitch:
		return c.selectTab(nt.TabIndex) == nil
	case NavModal:
		return c.presentModalFor(r)
	case NavDetour:
		c.report(NewNavigationError("detour route passed to Navigate", ErrInvalidDetourNavigation).
			WithCoordinator(c.id).
			WithRoute(r.ID()).
			WithRouteType(NavDetour))
		return false
	}
	return true
}

// reconstructedPath returns the full intermediate push sequence for a
// deep destination, computed before any mutation so path application is
// atomic.
func (c *Coordinator[R]) reconstructedPath(r R) ([]R, bool) {
	pp, ok := c.delegate.(PathProvider[R])
	if !ok {
		return nil, false
	}
	path := pp.NavigationPath(r)
	if len(path) == 0 {
		return nil, false
	}
	steps := make([]R, len(path))
	copy(steps, path)
	return steps, true
}

func (c *Coordinator[R]) presentModalFor(r R) bool {
	if c.modal == nil {
		mp, ok := c.delegate.(ModalProvider[R])
		if !ok {
			c.report(NewNavigationError("modal navigation without modal coordinator", ErrModalNotConfigured).
				WithCoordinator(c.id).
				WithRoute(r.ID()).
				WithRouteType(NavModal))
			return false
		}
		node, err := mp.ModalCoordinator(r)
		if err != nil {
			c.report(NewNavigationError("modal coordinator unavailable", err).
				WithCoordinator(c.id).
				WithRoute(r.ID()).
				WithRouteType(NavModal))
			return false
		}
		if node == nil {
			c.report(NewNavigationError("modal coordinator unavailable", ErrModalNotConfigured).
				WithCoordinator(c.id).
				WithRoute(r.ID()).
				WithRouteType(NavModal))
			return false
		}
		if err := c.PresentModal(node, r); err != nil {
			return false
		}
	} else {
		// The surviving modal can host the route; refresh the
		// presented record.
		c.router.Present(r)
	}

	// Drive the modal's own router to the matching sub-state.
	if !c.modal.navigateFrom(r, c.self) {
		c.logger.Debug("modal declined presented route", "coordinator", c.id, "route", r.ID())
	}
	return true
}

// maybeDismissModal enforces the modal auto-dismiss rule: when the
// presented modal's subtree cannot handle the in-flight route, the modal
// is dismissed so the UI never shows a modal whose content no longer
// corresponds to the navigation target. The per-coordinator dismiss
// policy can narrow this.
func (c *Coordinator[R]) maybeDismissModal(route Route) {
	if c.modal == nil {
		return
	}
	if c.modal.findHandler(route) != nil {
		return
	}
	if c.dismissModalFor != nil && !c.dismissModalFor(route) {
		return
	}
	c.logger.Debug("auto-dismissing modal", "coordinator", c.id, "route", route.ID())
	c.DismissModal()
}

// cleanupForDelegation runs before delegating to a descendant: the modal
// is dismissed unless the target lives inside it, and abandoned sibling
// branches along the delegation path are reset according to their own
// cleanup policies.
func (c *Coordinator[R]) cleanupForDelegation(route Route, target Node) {
	c.maybeDismissModal(route)

	path := pathBetween(c.self, target)
	for i := 0; i+1 < len(path); i++ {
		next := path[i+1]
		for _, ch := range path[i].Children() {
			if ch == next {
				continue
			}
			if ch.shouldCleanState(route) {
				ch.ResetToCleanState()
			}
		}
	}
}

// findHandler implements the uniform subtree search: self, then children
// in order, then the modal slot. Detour coordinators are deliberately
// outside the search; detours are explicit presentations, not
// resolution targets.
func (c *Coordinator[R]) findHandler(route Route) Node {
	if c.canHandle(route) {
		return c.self
	}
	for _, ch := range c.children {
		if n := ch.findHandler(route); n != nil {
			return n
		}
	}
	if c.modal != nil {
		if n := c.modal.findHandler(route); n != nil {
			return n
		}
	}
	return nil
}

// searchChildren searches the subtree excluding this node itself,
// skipping the already-rejected branch a bubbled call came from.
func (c *Coordinator[R]) searchChildren(route Route, skip Node) Node {
	for _, ch := range c.children {
		if ch == skip {
			continue
		}
		if n := ch.findHandler(route); n != nil {
			return n
		}
	}
	if c.modal != nil && c.modal != skip {
		if n := c.modal.findHandler(route); n != nil {
			return n
		}
	}
	return nil
}

func (c *Coordinator[R]) canHandle(route Route) bool {
	r, ok := Match[R](route)
	if !ok {
		return false
	}
	return c.delegate.CanHandle(r)
}

// acceptsNavigation reports whether this node would accept route through
// Navigate: it must handle the route and the route must not be
// detour-typed, since handleLocal rejects detours.
func (c *Coordinator[R]) acceptsNavigation(route Route) bool {
	r, ok := Match[R](route)
	if !ok {
		return false
	}
	return c.delegate.CanHandle(r) && c.delegate.NavigationType(r).Kind != NavDetour
}

func (c *Coordinator[R]) selectTab(index int) error {
	if index < 0 || index >= len(c.children) {
		err := NewTabError(index, len(c.children))
		c.report(err)
		return err
	}
	return c.router.SelectTab(index)
}

// -----------------------------------------------------------------------------
// Tree protocol
// -----------------------------------------------------------------------------

func (c *Coordinator[R]) setParent(p Node) { c.parent = p }

func (c *Coordinator[R]) setContext(ctx PresentationContext) { c.presCtx = ctx }

func (c *Coordinator[R]) shouldCleanState(route Route) bool {
	if c.cleanOnBubble == nil {
		return false
	}
	return c.cleanOnBubble(route)
}

func (c *Coordinator[R]) dismissModalChild(child Node) {
	if c.modal == child {
		c.DismissModal()
	}
}

func (c *Coordinator[R]) dismissDetourChild(child Node) {
	if c.detour == child {
		c.DismissDetour()
	}
}

// teardown recursively detaches the whole subtree so it becomes
// collectible: children, modal, and detour coordinators all lose their
// parent references together.
func (c *Coordinator[R]) teardown() {
	for _, ch := range c.children {
		ch.teardown()
	}
	c.children = nil
	if c.modal != nil {
		c.modal.teardown()
		c.modal = nil
	}
	if c.detour != nil {
		c.detour.teardown()
		c.detour = nil
	}
	c.parent = nil
	c.presCtx = ContextRoot
}

// checkAttachable rejects attachments that would violate the
// single-ownership tree: a child with an existing parent, or an
// attachment that would make this coordinator its own ancestor.
func (c *Coordinator[R]) checkAttachable(child Node) error {
	if child.Parent() != nil {
		err := NewTreeError("child already attached", ErrDuplicateChild).
			WithCoordinator(c.id).
			WithChild(child.ID())
		c.report(err)
		return err
	}
	for n := c.self; n != nil; n = n.Parent() {
		if n == child {
			err := NewTreeError("attachment would create a cycle", ErrCircularReference).
				WithCoordinator(c.id).
				WithChild(child.ID())
			c.report(err)
			return err
		}
	}
	return nil
}

func (c *Coordinator[R]) report(err error) {
	if c.reporter != nil {
		c.reporter.Report(err)
	}
}

// pathBetween returns the node sequence from ancestor down to
// descendant, inclusive. It returns nil if descendant is not reachable
// by following parent references up to ancestor.
func pathBetween(ancestor, descendant Node) []Node {
	var reversed []Node
	for n := descendant; n != nil; n = n.Parent() {
		reversed = append(reversed, n)
		if n == ancestor {
			break
		}
	}
	if len(reversed) == 0 || reversed[len(reversed)-1] != ancestor {
		return nil
	}
	path := make([]Node, 0, len(reversed))
	for i := len(reversed) - 1; i >= 0; i-- {
		path = append(path, reversed[i])
	}
	return path
}
